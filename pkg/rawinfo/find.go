package rawinfo

import (
	"fmt"
	"path/filepath"

	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"
)

// RawExtensions are the file extensions processed. Matching is case-sensitive.
var RawExtensions = map[string]bool{
	".ARW": true, // Sony
	".CR2": true, // Canon
	".CR3": true, // Canon
}

// IsRaw reports whether path looks like a supported raw file.
func IsRaw(path string) bool {
	base := filepath.Base(path)
	if base == "" || base[0] == '.' {
		return false
	}
	return RawExtensions[filepath.Ext(base)]
}

func hidden(root string, path string) bool {
	if filepath.Clean(path) == filepath.Clean(root) {
		return false
	}
	return filepath.Base(path)[0] == '.'
}

// Find returns the raw files found below each directory in dirs.
func Find(dirs []string) ([]string, error) {
	found := []string{}

	for _, root := range dirs {
		err := godirwalk.Walk(root, &godirwalk.Options{
			Callback: func(path string, de *godirwalk.Dirent) error {
				if hidden(root, path) {
					return godirwalk.SkipThis
				}

				if !de.IsRegular() || !IsRaw(path) {
					return nil
				}

				klog.V(1).Infof("found %s", path)
				found = append(found, path)
				return nil
			},
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	return found, nil
}

// Dirs returns each directory in roots along with every non-hidden directory below it.
func Dirs(roots []string) ([]string, error) {
	dirs := []string{}

	for _, root := range roots {
		err := godirwalk.Walk(root, &godirwalk.Options{
			Callback: func(path string, de *godirwalk.Dirent) error {
				if hidden(root, path) {
					return godirwalk.SkipThis
				}
				if de.IsDir() {
					dirs = append(dirs, path)
				}
				return nil
			},
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	return dirs, nil
}
