package testrunner

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var skippedDirs = []string{"vendor", "node_modules"}

// walkAndProcessFiles walks a path (file or directory) and invokes onFile for each file.
// Hidden directories and skippedDirs below root are not entered. When
// skipRootCheck is true the root itself is always entered.
func walkAndProcessFiles(root string, skipRootCheck bool, onFile func(p string, info os.FileInfo)) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		onFile(root, info)
		return nil
	}

	return filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			onFile(p, info)
			return nil
		}

		if p == root && skipRootCheck {
			return nil
		}

		name := info.Name()
		if strings.HasPrefix(name, ".") || slices.Contains(skippedDirs, name) {
			return filepath.SkipDir
		}

		return nil
	})
}
