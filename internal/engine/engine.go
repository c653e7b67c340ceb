// Package engine implements the append-only, mmap-backed storage core of
// mmkv: a fixed-size mapped file, a monotonic write cursor, and the
// volatile index that projects the file into an O(1) lookup structure.
//
// Every exported method takes the engine's single mutex, so operations on
// one Engine are totally ordered with each other — see the package-level
// comment on Engine for the reasoning.
package engine

import (
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/edsrzf/mmap-go"

	"github.com/ripper-grove/mmkv/internal/index"
	"github.com/ripper-grove/mmkv/internal/lock"
	"github.com/ripper-grove/mmkv/internal/record"
)

// FileSize is the fixed size of the mapped region. The engine never
// expands the backing file past this size.
const FileSize = 1 << 20 // 1,048,576 bytes

var (
	// ErrInvalidArgument is returned for a blank key, or a negative ttlMillis
	// passed to Expire.
	ErrInvalidArgument = errors.New("mmkv: invalid argument")
	// ErrCapacityExhausted is returned when an append would cross FileSize.
	ErrCapacityExhausted = errors.New("mmkv: capacity exhausted")
)

// Engine owns the mapped region, the write cursor, and the index for a
// single store file. All of its methods, including the recovery scan run
// by Open, execute under a single exclusive mutex: GET is not read-only
// because lazy expiry mutates the index, so there is no value in a
// separate read lock here. A finer-grained scheme (sharded index, RCU
// reads) would complicate the append-cursor invariant for no benefit at
// this scope.
type Engine struct {
	mu sync.Mutex

	file        *os.File
	region      mmap.MMap
	writeOffset int64
	index       index.Index
}

// Open maps the first FileSize bytes of path into memory, creating the
// file if absent and growing it to at least FileSize, then rebuilds the
// index by scanning the region from the start.
// Open takes an exclusive advisory lock on path so two Engines never map
// the same file at once.
func Open(path string) (*Engine, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}

	if err := lock.LockFile(f); err != nil {
		f.Close()
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.Size() < FileSize {
		if err := f.Truncate(FileSize); err != nil {
			f.Close()
			return nil, err
		}
	}

	region, err := mmap.MapRegion(f, FileSize, mmap.RDWR, 0, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	e := &Engine{
		file:   f,
		region: region,
		index:  index.New(),
	}

	e.mu.Lock()
	e.recover()
	e.mu.Unlock()

	return e, nil
}

// Close unmaps the region, releases the file lock, and closes the backing
// file. The store's durability contract does not require Close to be
// called — writes become durable on the OS's own schedule — but a
// complete program should still release the mapping and the advisory
// lock when it is done with the engine.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.region.Unmap()
	lock.UnlockFile(e.file)
	if closeErr := e.file.Close(); err == nil {
		err = closeErr
	}
	return err
}

// recover rebuilds writeOffset and the index by scanning the mapped
// region from offset 0. It tolerates a truncated trailing record: the
// scan halts without error and writeOffset is left at the first byte of
// the partial tail, which the next Set will overwrite.
func (e *Engine) recover() {
	now := nowMillis()
	var pos int64

	for {
		key, expireTs, next, ok := record.ScanStep(e.region, pos, int64(len(e.region)))
		if !ok {
			break
		}

		if expireTs == 0 || expireTs > now {
			e.index.Put(key, pos)
		}

		pos = next
	}

	e.writeOffset = pos
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

func isBlank(key string) bool {
	return strings.TrimSpace(key) == ""
}

// Set stores value under key. If ttlMillis > 0 the record expires
// ttlMillis from now; any ttlMillis <= 0 (including negative) means no
// expiry. Overwriting an existing key appends a new record and repoints
// the index; the previous record is left on disk but unreferenced.
func (e *Engine) Set(key, value string, ttlMillis int64) error {
	if isBlank(key) {
		return ErrInvalidArgument
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.append(key, value, ttlMillis)
}

// append writes a fresh record for key at the write cursor and repoints
// the index. Callers must hold e.mu.
func (e *Engine) append(key, value string, ttlMillis int64) error {
	var expireTs int64
	if ttlMillis > 0 {
		expireTs = nowMillis() + ttlMillis
	}

	need := record.Size(key, value)
	if e.writeOffset+need > FileSize {
		return ErrCapacityExhausted
	}

	at := e.writeOffset
	next := record.Encode(e.region, at, key, value, expireTs)

	e.index.Put(key, at)
	e.writeOffset = next

	return nil
}

// Get returns the value stored for key, or ok == false if the key is
// absent or its record has lazily expired. A lazily-expired key is
// removed from the index as a side effect.
func (e *Engine) Get(key string) (value string, ok bool, err error) {
	if isBlank(key) {
		return "", false, ErrInvalidArgument
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	offset, found := e.index.Get(key)
	if !found {
		return "", false, nil
	}

	value, expireTs := record.PeekValueAndExpiry(e.region, offset)

	if expireTs != 0 && expireTs < nowMillis() {
		e.index.Remove(key)
		return "", false, nil
	}

	return value, true, nil
}

// Del removes key from the index and reports whether it was present.
// The on-disk bytes are never modified.
func (e *Engine) Del(key string) (bool, error) {
	if isBlank(key) {
		return false, ErrInvalidArgument
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.index.Remove(key), nil
}

// Expire rewrites key's TTL to ttlMillis from now (or clears it, for
// ttlMillis == 0) by appending a fresh record with the current value and
// repointing the index. It reports false with no side effects if key is
// absent. Unlike Set, a negative ttlMillis is rejected: Expire has no
// "no expiry" sentinel among negative values because 0 already plays
// that role.
//
// Expire does not check whether the current record has already expired:
// a caller that Expires an expired-but-not-yet-evicted key resurrects it
// with a new TTL. This matches the store's lazy-expiry contract, where
// expiry is only observed by Get.
func (e *Engine) Expire(key string, ttlMillis int64) (bool, error) {
	if isBlank(key) {
		return false, ErrInvalidArgument
	}
	if ttlMillis < 0 {
		return false, ErrInvalidArgument
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	offset, found := e.index.Get(key)
	if !found {
		return false, nil
	}

	value, _ := record.PeekValueAndExpiry(e.region, offset)

	if err := e.append(key, value, ttlMillis); err != nil {
		return false, err
	}

	return true, nil
}
