//go:build unix

package lock

import (
	"fmt"
	"os"
	"syscall"
)

// LockFile attempts to acquire an exclusive, non-blocking advisory lock on
// the already-open file f.
//
// On Unix systems this uses flock(2) directly on f's descriptor. If the
// lock cannot be acquired, the store file is assumed to be mapped by
// another mmkv instance already.
func LockFile(f *os.File) error {
	err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
	if err != nil {
		return fmt.Errorf("store file already in use by another mmkv instance")
	}
	return nil
}

// UnlockFile releases a lock acquired via LockFile. It does not close f.
func UnlockFile(f *os.File) {
	syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
}
