package lock_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ripper-grove/mmkv/internal/lock"
)

func TestLockFileExcludesSecondLocker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	f1, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f1.Close()

	if err := lock.LockFile(f1); err != nil {
		t.Fatalf("first LockFile failed: %v", err)
	}

	f2, err := os.OpenFile(path, os.O_RDWR, 0644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f2.Close()

	if err := lock.LockFile(f2); err == nil {
		t.Fatal("expected second LockFile to fail while first holds the lock")
	}

	lock.UnlockFile(f1)

	if err := lock.LockFile(f2); err != nil {
		t.Fatalf("expected LockFile to succeed after Unlock: %v", err)
	}
	lock.UnlockFile(f2)
}
