package services

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"cmcshell/internal/logger"
)

// TrashService owns the holding area for undoable deletes. Deleted items
// are moved here instead of being removed, so undo can restore them.
type TrashService struct {
	initialized bool
	dir         string
}

// NewTrashService creates a TrashService instance.
func NewTrashService() *TrashService {
	return &TrashService{}
}

// Name returns the service name "trash" for registration.
func (t *TrashService) Name() string { return "trash" }

// Initialize creates the holding area under the config directory.
func (t *TrashService) Initialize() error {
	t.dir = filepath.Join(ConfigDir(), "trash")
	if err := os.MkdirAll(t.dir, 0750); err != nil {
		return fmt.Errorf("cannot create trash directory: %w", err)
	}
	t.initialized = true
	logger.Debug("TrashService initialized", "dir", t.dir)
	return nil
}

// Discard moves a path into the holding area and returns the trash
// location. The entry name carries a timestamp plus a short unique
// suffix so repeated deletes of the same name never collide.
func (t *TrashService) Discard(path string) (string, error) {
	if !t.initialized {
		return "", fmt.Errorf("trash service not initialized")
	}
	stamp := time.Now().Format("20060102_150405")
	entry := fmt.Sprintf("%s_%s_%s", stamp, uuid.NewString()[:8], filepath.Base(path))
	dest := filepath.Join(t.dir, entry)
	if err := os.Rename(path, dest); err != nil {
		return "", fmt.Errorf("cannot move to trash: %w", err)
	}
	return dest, nil
}

// RestoreTo moves a trash entry back to its original path. The caller
// checks for conflicts first; this only performs the move.
func (t *TrashService) RestoreTo(trashPath, originalPath string) error {
	if err := os.MkdirAll(filepath.Dir(originalPath), 0750); err != nil {
		return err
	}
	return os.Rename(trashPath, originalPath)
}
