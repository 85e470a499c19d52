package utils

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// All values are stored in network byte order (big-endian), independent of the host: unsigned
// 64-bit integers for tags and counts, and raw IEEE-754 binary32 bits for floats.
var byteOrder = binary.BigEndian

// Writer writes fixed-width values in network byte order. The first error is sticky: every
// following write is a no-op and the error is reported by Err.
type Writer struct {
	w   io.Writer
	buf [8]byte
	err error
}

// NewWriter returns a Writer on top of w. It does no buffering of its own.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) write(b []byte) {
	if w.err != nil {
		return
	}

	if _, err := w.w.Write(b); err != nil {
		w.err = errors.Wrapf(err, "Failed to write %d bytes", len(b))
	}
}

// Uint64 writes v as 8 bytes.
func (w *Writer) Uint64(v uint64) {
	byteOrder.PutUint64(w.buf[:8], v)
	w.write(w.buf[:8])
}

// Int writes a non-negative count as a Uint64.
func (w *Writer) Int(v int) {
	if v < 0 && w.err == nil {
		w.err = errors.Errorf("Can't write negative count %d", v)
		return
	}

	w.Uint64(uint64(v))
}

// Float32 writes the bits of v as 4 bytes.
func (w *Writer) Float32(v float32) {
	byteOrder.PutUint32(w.buf[:4], math.Float32bits(v))
	w.write(w.buf[:4])
}

// Float32s writes each value of vs, in order.
func (w *Writer) Float32s(vs []float32) {
	for _, v := range vs {
		if w.err != nil {
			return
		}
		w.Float32(v)
	}
}

// Err returns the first error encountered, if any.
func (w *Writer) Err() error {
	return w.err
}

// Reader is the counterpart of Writer. Like Writer, its first error is sticky; reads after an
// error return zero values.
//
// Running out of input part-way through a value (or before any expected value) is reported as
// io.ErrUnexpectedEOF, because every format read with Reader knows how much it still expects.
type Reader struct {
	r   io.Reader
	buf [8]byte
	err error
}

// NewReader returns a Reader on top of r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

func (r *Reader) read(b []byte) bool {
	if r.err != nil {
		return false
	}

	if _, err := io.ReadFull(r.r, b); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		r.err = errors.Wrapf(err, "Failed to read %d bytes", len(b))
		return false
	}

	return true
}

// Uint64 reads 8 bytes.
func (r *Reader) Uint64() uint64 {
	if !r.read(r.buf[:8]) {
		return 0
	}

	return byteOrder.Uint64(r.buf[:8])
}

// Count reads a Uint64 that is used as a length, failing if it is larger than max. This keeps a
// corrupt or hostile header from turning into an enormous allocation.
func (r *Reader) Count(what string, max int) int {
	v := r.Uint64()
	if r.err != nil {
		return 0
	}

	if v > uint64(max) {
		r.err = errors.Errorf("%s out of range (%d > %d)", what, v, max)
		return 0
	}

	return int(v)
}

// Float32 reads 4 bytes as the bits of a float32.
func (r *Reader) Float32() float32 {
	if !r.read(r.buf[:4]) {
		return 0
	}

	return math.Float32frombits(byteOrder.Uint32(r.buf[:4]))
}

// Float32s fills dst with consecutive values.
func (r *Reader) Float32s(dst []float32) {
	for i := range dst {
		if r.err != nil {
			return
		}
		dst[i] = r.Float32()
	}
}

// Err returns the first error encountered, if any.
func (r *Reader) Err() error {
	return r.err
}
