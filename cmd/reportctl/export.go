package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reportTracker/internal/models/user"
)

var (
	exportUser   string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a user's tasks as CSV",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportUser, "user", "u", "admin", "username whose view to export (admin exports everything)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	usr, ok := user.ByUsername(exportUser)
	if !ok {
		return fmt.Errorf("unknown username %q", exportUser)
	}

	svc, repo, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer repo.Close()

	data, err := svc.ExportCSV(cmd.Context(), usr)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", exportOutput, err)
	}
	fmt.Printf("Exported %s's tasks to %s\n", usr.Username, exportOutput)
	return nil
}
