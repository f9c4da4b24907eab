package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// MaxBackups is the maximum number of config backups to keep.
	MaxBackups = 3

	// BackupSuffix is the file extension for backup files.
	BackupSuffix = ".bak"
)

// BackupFile copies a config file to a timestamped backup next to it
// before it gets overwritten. Returns the backup path, or "" if path
// does not exist.
func BackupFile(path string) (string, error) {
	if !fileExists(path) {
		return "", nil
	}

	timestamp := time.Now().Format("20060102-150405.000000000")
	backupPath := fmt.Sprintf("%s%s.%s", path, BackupSuffix, timestamp)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read config for backup: %w", err)
	}

	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	// Best-effort; the backup itself succeeded.
	_ = cleanupOldBackups(path)

	return backupPath, nil
}

// ListBackups returns backups of path, newest first.
func ListBackups(path string) ([]string, error) {
	matches, err := filepath.Glob(path + BackupSuffix + ".*")
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	// Timestamps sort lexically.
	sort.Sort(sort.Reverse(sort.StringSlice(matches)))
	return matches, nil
}

// cleanupOldBackups removes all but the newest MaxBackups backups.
func cleanupOldBackups(path string) error {
	backups, err := ListBackups(path)
	if err != nil {
		return err
	}

	for i, b := range backups {
		if i < MaxBackups {
			continue
		}
		if !strings.HasPrefix(filepath.Base(b), filepath.Base(path)+BackupSuffix) {
			continue
		}
		if err := os.Remove(b); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", b, err)
		}
	}
	return nil
}
