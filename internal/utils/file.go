package utils

import "os"

// PathExists reports whether the given path exists (works for both
// files and directories).
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
