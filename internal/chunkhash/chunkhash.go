// Package chunkhash computes stable content identifiers for matched
// chunks, used as the vault export's per-chunk filename. It needs a
// short, fast, collision-resistant-enough identifier for file naming,
// not a cryptographic digest, so only XXH3-64 is implemented here (see
// DESIGN.md).
package chunkhash

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/zeebo/xxh3"
)

// ID is an XXH3-64 digest of a chunk's index and content, formatted as
// lowercase hex.
type ID string

// New computes the ID of a chunk: the xxh3_64 digest of index encoded as
// 8 bytes big-endian, prefixed to the UTF-8 bytes of content. Hashing the
// index alongside content means two chunks with identical text (repeated
// headers, duplicate boilerplate) never collide on the same ID.
func New(index int, content string) ID {
	var prefix [8]byte
	binary.BigEndian.PutUint64(prefix[:], uint64(index))
	h := xxh3.New()
	h.Write(prefix[:])
	h.WriteString(content)
	sum := h.Sum64()

	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(sum >> (8 * (7 - i)))
	}
	return ID(hex.EncodeToString(buf[:]))
}

// FileName returns the vault export filename for a chunk with this ID,
// e.g. "3f9a2b7c91d4e8f0.json".
func (id ID) FileName() string {
	return fmt.Sprintf("%s.json", string(id))
}

func (id ID) String() string {
	return string(id)
}
