//go:build windows

package lock

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// LockFile attempts to acquire an exclusive, non-blocking advisory lock on
// the already-open file f.
//
// On Windows this uses LockFileEx on the file's first byte. If the lock cannot
// be acquired, the store file is assumed to be mapped by another mmkv
// instance already.
func LockFile(f *os.File) error {
	ol := new(windows.Overlapped)
	err := windows.LockFileEx(
		windows.Handle(f.Fd()),
		windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY,
		0, 1, 0, ol,
	)
	if err != nil {
		return fmt.Errorf("store file already in use by another mmkv instance")
	}
	return nil
}

// UnlockFile releases a lock acquired via LockFile. It does not close f.
func UnlockFile(f *os.File) {
	ol := new(windows.Overlapped)
	windows.UnlockFileEx(windows.Handle(f.Fd()), 0, 1, 0, ol)
}
