package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// Manager owns one staging directory for one output root.
type Manager struct {
	target    string
	parent    string
	tempDir   string
	committed bool
}

// NewManager returns a Manager that stages builds for target.
func NewManager(target string) *Manager {
	target = filepath.Clean(target)
	return &Manager{
		target: target,
		parent: filepath.Dir(target),
	}
}

// Create makes a fresh, empty staging directory next to the output root.
func (m *Manager) Create() error {
	if err := os.MkdirAll(m.parent, 0o750); err != nil {
		return fmt.Errorf("failed to create output parent directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	pattern := fmt.Sprintf(".%s-staging-%s-*", filepath.Base(m.target), timestamp)
	tempDir, err := os.MkdirTemp(m.parent, pattern)
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	// MkdirTemp creates 0o700; served output must be traversable.
	// #nosec G302 -- site output directory.
	if err := os.Chmod(tempDir, 0o755); err != nil {
		_ = os.RemoveAll(tempDir)
		return fmt.Errorf("failed to set staging directory mode: %w", err)
	}

	m.tempDir = tempDir
	m.committed = false
	slog.Debug("Created staging directory", logfields.Path(tempDir))
	return nil
}

// GetPath returns the staging directory.
func (m *Manager) GetPath() string {
	return m.tempDir
}

// Target returns the live output root.
func (m *Manager) Target() string {
	return m.target
}

// Commit replaces the output root with the staging directory. The previous
// tree is moved aside first and removed once the new tree is in place.
//
// The swap is two renames, so between them the output root does not exist
// and a concurrent reader may briefly get a not-found. A reader never sees a
// partially written tree.
func (m *Manager) Commit() error {
	if m.tempDir == "" {
		return fmt.Errorf("workspace not created")
	}

	var previous string
	if _, err := os.Lstat(m.target); err == nil {
		previous = filepath.Join(m.parent,
			fmt.Sprintf(".%s-old-%d", filepath.Base(m.target), time.Now().UnixNano()))
		if err := os.Rename(m.target, previous); err != nil {
			return fmt.Errorf("failed to move previous output aside: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat output directory: %w", err)
	}

	if err := os.Rename(m.tempDir, m.target); err != nil {
		if previous != "" {
			_ = os.Rename(previous, m.target)
		}
		return fmt.Errorf("failed to move staging directory into place: %w", err)
	}
	m.committed = true
	slog.Debug("Committed staging directory", logfields.Path(m.target))

	if previous != "" {
		if err := os.RemoveAll(previous); err != nil {
			slog.Warn("Failed to remove previous output", logfields.Path(previous), logfields.Error(err))
		}
	}
	m.tempDir = ""
	return nil
}

// Cleanup removes the staging directory unless it has been committed.
func (m *Manager) Cleanup() error {
	if m.tempDir == "" || m.committed {
		return nil
	}

	if err := os.RemoveAll(m.tempDir); err != nil {
		return fmt.Errorf("failed to cleanup workspace: %w", err)
	}

	slog.Debug("Cleaned up staging directory", logfields.Path(m.tempDir))
	m.tempDir = ""
	return nil
}
