package scaffold

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// IgnoredNames are entry names skipped at every level of the template copy:
// build caches, dependency trees, build and release output.
var IgnoredNames = map[string]bool{
	".turbo":       true,
	"dist":         true,
	"release":      true,
	"node_modules": true,
	"main.js":      true,
}

// shouldIgnore returns true if the name should be excluded during copy.
func shouldIgnore(name string) bool {
	return IgnoredNames[name]
}

// copyDir recursively copies src to dst, excluding entries in IgnoredNames.
func copyDir(src, dst string, log logrus.FieldLogger) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if shouldIgnore(entry.Name()) {
			log.WithField("path", srcPath).Debug("skipping ignored entry")
			continue
		}

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath, log); err != nil {
				return err
			}
		} else if entry.Type().IsRegular() {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
			log.WithField("path", dstPath).Debug("copied file")
		}
		// Skip symlinks and other special files during copy.
	}

	return nil
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, data, srcInfo.Mode().Perm())
}
