// Package snapshot implements the whole-system backup document: one
// JSON object mapping each owner's storage key to its task array.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"reportTracker/internal/models/task"
)

const (
	keyPrefix      = "tasks_"
	filenamePrefix = "SAO_LUU_HE_THONG_"
)

var (
	ErrNotAnObject = errors.New("backup is not a JSON object")
	ErrNoTaskKeys  = errors.New("backup contains no task data")
)

// Document is the backup payload keyed by tasks_<ownerId>. Values stay
// raw until Decode so a backup can be inspected without committing to
// its contents.
type Document map[string]json.RawMessage

// Filename returns the download name for a backup taken today.
func Filename(today task.Date) string {
	return filenamePrefix + today.String() + ".json"
}

// Build assembles a document from per-owner collections.
func Build(collections map[string][]*task.Task) (Document, error) {
	doc := Document{}
	for owner, tasks := range collections {
		if tasks == nil {
			tasks = []*task.Task{}
		}
		raw, err := json.Marshal(tasks)
		if err != nil {
			return nil, fmt.Errorf("encoding owner %s: %w", owner, err)
		}
		doc[keyPrefix+owner] = raw
	}
	return doc, nil
}

// Parse validates a backup before anything destructive happens: the
// top level must be a JSON object carrying at least one task key.
// Foreign keys are tolerated and ignored on decode.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnObject, err)
	}
	if doc == nil {
		return nil, ErrNotAnObject
	}

	hasTaskKey := false
	for key := range doc {
		if strings.HasPrefix(key, keyPrefix) {
			hasTaskKey = true
			break
		}
	}
	if !hasTaskKey {
		return nil, ErrNoTaskKeys
	}
	return doc, nil
}

// Decode turns the document into per-owner collections. Every task key
// must decode as a task array; a single undecodable collection rejects
// the whole batch, so a rejected restore never destroys existing data.
func Decode(doc Document) (map[string][]*task.Task, error) {
	collections := map[string][]*task.Task{}
	for key, raw := range doc {
		if !strings.HasPrefix(key, keyPrefix) {
			continue
		}
		owner := strings.TrimPrefix(key, keyPrefix)
		if owner == "" {
			return nil, fmt.Errorf("backup key %q has no owner id", key)
		}

		var tasks []*task.Task
		if err := json.Unmarshal(raw, &tasks); err != nil {
			return nil, fmt.Errorf("backup key %q does not hold a task array: %w", key, err)
		}
		if tasks == nil {
			tasks = []*task.Task{}
		}
		collections[owner] = tasks
	}
	return collections, nil
}

// Encode renders the document for download, indented the way the
// system has always written backups.
func Encode(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
