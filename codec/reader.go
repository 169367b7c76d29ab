package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// MalformedAccountError reports an account blob that cannot be decoded as
// the expected entity: a buffer shorter than the entity's minimum layout
// size, a string length prefix pointing past the end of the buffer, or a
// discriminator that belongs to a different entity. Offset is the byte
// position at which decoding failed, for debugging layout mismatches.
type MalformedAccountError struct {
	Entity string
	Offset int
	Reason string
}

func (e *MalformedAccountError) Error() string {
	return fmt.Sprintf("malformed %s account at offset %d: %s", e.Entity, e.Offset, e.Reason)
}

// accountReader walks an account blob field by field. Offsets are never
// hardcoded: each read advances the cursor by the width it consumed, so a
// variable-length string automatically shifts every later field. The
// first failure sticks; subsequent reads return zero values.
type accountReader struct {
	entity string
	data   []byte
	off    int
	err    error
}

func newAccountReader(entity string, data []byte, tag Discriminator, minSize int) (*accountReader, error) {
	if len(data) < minSize {
		return nil, &MalformedAccountError{
			Entity: entity,
			Offset: 0,
			Reason: fmt.Sprintf("buffer is %d bytes, minimum layout size is %d", len(data), minSize),
		}
	}
	if !bytes.Equal(data[:discriminatorLen], tag[:]) {
		return nil, &MalformedAccountError{
			Entity: entity,
			Offset: 0,
			Reason: "account discriminator mismatch",
		}
	}
	return &accountReader{entity: entity, data: data, off: discriminatorLen}, nil
}

const discriminatorLen = 8

func (r *accountReader) fail(reason string) {
	if r.err == nil {
		r.err = &MalformedAccountError{Entity: r.entity, Offset: r.off, Reason: reason}
	}
}

func (r *accountReader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if remaining := len(r.data) - r.off; remaining < n {
		r.fail(fmt.Sprintf("need %d bytes, %d remain", n, remaining))
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *accountReader) pubkey() solana.PublicKey {
	var pk solana.PublicKey
	if b := r.take(solana.PublicKeyLength); b != nil {
		copy(pk[:], b)
	}
	return pk
}

func (r *accountReader) u64() uint64 {
	if b := r.take(8); b != nil {
		return binary.LittleEndian.Uint64(b)
	}
	return 0
}

func (r *accountReader) i64() int64 {
	return int64(r.u64())
}

func (r *accountReader) u32() uint32 {
	if b := r.take(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (r *accountReader) u16() uint16 {
	if b := r.take(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

func (r *accountReader) u8() uint8 {
	if b := r.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (r *accountReader) boolean() bool {
	return r.u8() != 0
}

// str reads a 4-byte little-endian length prefix followed by that many raw
// bytes. An inconsistent prefix fails the whole decode.
func (r *accountReader) str() string {
	n := r.u32()
	if r.err != nil {
		return ""
	}
	if int(n) > len(r.data)-r.off {
		r.fail(fmt.Sprintf("string length prefix %d exceeds %d remaining bytes", n, len(r.data)-r.off))
		return ""
	}
	return string(r.take(int(n)))
}
