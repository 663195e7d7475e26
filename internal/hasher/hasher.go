// Package hasher produces short content hashes for output filenames in
// batch mode, so re-running a batch with identical settings yields
// identical names.
package hasher

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// ContentHash returns the xxHash64 of data as a hex string truncated to
// hexLen characters. 16 chars is the full 64 bits; shorter prefixes are
// fine for the file counts a sort batch produces.
func ContentHash(data []byte, hexLen int) string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], xxhash.Sum64(data))
	full := hex.EncodeToString(buf[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
