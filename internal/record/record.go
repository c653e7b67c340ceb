// Package record implements the on-disk entry format for the mmkv store.
//
// Each entry interleaves its two length-prefixed payloads with their own
// length fields, followed by the expiry stamp:
//
//	[4-byte keyLen][key][4-byte valLen][value][8-byte expireTs]
//
// All integers are big-endian signed, so a store file written by one
// process can be read by any other regardless of host architecture.
package record

import "encoding/binary"

// HeaderSize is the fixed width of keyLen + valLen + expireTs.
const HeaderSize = 4 + 4 + 8

// Size returns the on-disk size in bytes of a record holding key and value.
func Size(key, value string) int64 {
	return HeaderSize + int64(len(key)) + int64(len(value))
}

// Encode writes a record at buf[at:] and returns the offset just past it.
// The caller must guarantee buf[at:] has room for Size(key, value) bytes;
// the engine enforces this via its capacity check before calling Encode.
func Encode(buf []byte, at int64, key, value string, expireTs int64) int64 {
	pos := at

	binary.BigEndian.PutUint32(buf[pos:], uint32(int32(len(key))))
	pos += 4
	pos += int64(copy(buf[pos:], key))

	binary.BigEndian.PutUint32(buf[pos:], uint32(int32(len(value))))
	pos += 4
	pos += int64(copy(buf[pos:], value))

	binary.BigEndian.PutUint64(buf[pos:], uint64(expireTs))
	pos += 8

	return pos
}

// DecodeAt reads a complete record at buf[at:] and returns its fields along
// with the offset just past it. It trusts the length fields it reads and
// does no bounds checking of its own. The engine does not call it: lookups
// go through PeekValueAndExpiry, and recovery (which does see untrusted
// tail bytes) uses ScanStep's bounds-checked walk.
func DecodeAt(buf []byte, at int64) (key, value string, expireTs, next int64) {
	pos := at

	keyLen := int64(int32(binary.BigEndian.Uint32(buf[pos:])))
	pos += 4
	key = string(buf[pos : pos+keyLen])
	pos += keyLen

	valLen := int64(int32(binary.BigEndian.Uint32(buf[pos:])))
	pos += 4
	value = string(buf[pos : pos+valLen])
	pos += valLen

	expireTs = int64(binary.BigEndian.Uint64(buf[pos:]))
	pos += 8

	return key, value, expireTs, pos
}

// PeekValueAndExpiry reads the value and expiry of the record at buf[at:]
// without materializing the key, for use by GET and EXPIRE.
func PeekValueAndExpiry(buf []byte, at int64) (value string, expireTs int64) {
	pos := at

	keyLen := int64(int32(binary.BigEndian.Uint32(buf[pos:])))
	pos += 4 + keyLen

	valLen := int64(int32(binary.BigEndian.Uint32(buf[pos:])))
	pos += 4
	value = string(buf[pos : pos+valLen])
	pos += valLen

	expireTs = int64(binary.BigEndian.Uint64(buf[pos:]))

	return value, expireTs
}

// ScanStep inspects the header at buf[pos:] during recovery, bounded by
// limit (the length of the mapped region). It reports whether a complete
// record starts there and, if so, its key, expiry, and the offset of the
// record after it. Recovery halts at the first position where ok is
// false, per the tail-truncation contract: a partially written record at
// the end of the file is silently discarded, not an error.
func ScanStep(buf []byte, pos, limit int64) (key string, expireTs, next int64, ok bool) {
	if limit-pos < 4 {
		return "", 0, 0, false
	}

	keyLen := int64(int32(binary.BigEndian.Uint32(buf[pos:])))
	if keyLen <= 0 || limit-pos < 4+keyLen+4 {
		return "", 0, 0, false
	}

	keyStart := pos + 4
	key = string(buf[keyStart : keyStart+keyLen])

	valLenPos := keyStart + keyLen
	valLen := int64(int32(binary.BigEndian.Uint32(buf[valLenPos:])))
	if valLen < 0 || limit-valLenPos < 4+valLen+8 {
		return "", 0, 0, false
	}

	valStart := valLenPos + 4
	expireTsPos := valStart + valLen
	expireTs = int64(binary.BigEndian.Uint64(buf[expireTsPos:]))

	next = expireTsPos + 8

	return key, expireTs, next, true
}
