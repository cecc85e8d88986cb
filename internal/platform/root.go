package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindProfile looks upwards from startDir for a profile root indicator:
// a souk.yaml file or a .souk directory. It returns the absolute path of
// the first directory carrying one.
func FindProfile(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, "souk.yaml") || hasFile(dir, ".souk") {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("no profile found above %s", abs)
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
