package codec

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// wireWriter appends fields in declaration order using the programs' byte
// conventions: fixed-width little-endian integers and 4-byte-length-
// prefixed strings.
type wireWriter struct {
	buf []byte
}

func newWireWriter(tag Discriminator) *wireWriter {
	w := &wireWriter{buf: make([]byte, 0, 64)}
	w.buf = append(w.buf, tag[:]...)
	return w
}

func (w *wireWriter) u8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *wireWriter) u16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

func (w *wireWriter) u32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *wireWriter) u64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

func (w *wireWriter) i64(v int64) {
	w.u64(uint64(v))
}

func (w *wireWriter) boolean(v bool) {
	if v {
		w.u8(1)
	} else {
		w.u8(0)
	}
}

func (w *wireWriter) pubkey(pk solana.PublicKey) {
	w.buf = append(w.buf, pk.Bytes()...)
}

func (w *wireWriter) str(s string) {
	w.u32(uint32(len(s)))
	w.buf = append(w.buf, s...)
}
