package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"reportTracker/internal/service"
	"reportTracker/internal/snapshot"
)

var backupOutput string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a full system snapshot to a file",
	RunE:  runBackup,
}

var restoreCmd = &cobra.Command{
	Use:   "restore [file]",
	Short: "Replace all data with a snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRestore,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every task collection",
	RunE:  runReset,
}

func init() {
	backupCmd.Flags().StringVarP(&backupOutput, "output", "o", "", "output file (default: the snapshot's own name)")
}

func runBackup(cmd *cobra.Command, args []string) error {
	svc, repo, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer repo.Close()

	doc, filename, err := svc.ExportSnapshot(cmd.Context())
	if err != nil {
		return err
	}

	data, err := snapshot.Encode(doc)
	if err != nil {
		return err
	}

	if backupOutput != "" {
		filename = backupOutput
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}

	fmt.Printf("Backup written to %s\n", filename)
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	doc, err := snapshot.Parse(data)
	if err != nil {
		return fmt.Errorf("%s is not a valid system backup: %w", args[0], err)
	}

	svc, repo, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer repo.Close()

	count, err := svc.ImportSnapshot(cmd.Context(), doc)
	if err != nil {
		return err
	}

	fmt.Printf("Restored %d tasks from %s\n", count, args[0])
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	fmt.Printf("This deletes every task for every user. Type %q to continue: ", service.ResetConfirmation)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return err
	}

	svc, repo, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer repo.Close()

	removed, err := svc.ResetAll(cmd.Context(), strings.TrimSpace(line))
	if err != nil {
		return err
	}

	fmt.Printf("Removed %d collections\n", removed)
	return nil
}
