package frame

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Delimiter terminates every frame. The compact JSON encoding never emits
// a raw newline, so the byte is reserved for message boundaries.
const Delimiter byte = '\n'

var (
	ErrFrameTooLarge  = errors.New("frame: frame too large")
	ErrTruncatedFrame = errors.New("frame: stream ended before delimiter")
	ErrFrameDecode    = errors.New("frame: undecodable frame")
	ErrFrameEncode    = errors.New("frame: unencodable message")
)

// Limits constrains frame decode/encode memory use.
type Limits struct {
	MaxFrameBytes  int
	ReadChunkBytes int
}

func DefaultLimits() Limits {
	return Limits{
		MaxFrameBytes:  128 * 1024,
		ReadChunkBytes: 4096,
	}
}

// Encode writes v to w as one delimiter-terminated frame.
func Encode(w io.Writer, v any, limits Limits) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFrameEncode, err)
	}
	if len(payload)+1 > limits.MaxFrameBytes {
		return ErrFrameTooLarge
	}
	payload = append(payload, Delimiter)
	if _, err := w.Write(payload); err != nil {
		return err
	}
	return nil
}

// Decoder scans delimiter-terminated frames out of a byte stream. Bytes
// read past a delimiter are retained for the next frame.
type Decoder struct {
	r      io.Reader
	buf    []byte
	limits Limits
}

func NewDecoder(r io.Reader, limits Limits) *Decoder {
	return &Decoder{r: r, limits: limits}
}

// Next blocks until one complete frame is available and decodes it into
// out. End-of-stream with buffered bytes but no delimiter is
// ErrTruncatedFrame; end-of-stream on an empty buffer surfaces as the
// reader's io.EOF.
func (d *Decoder) Next(out any) error {
	for {
		if i := bytes.IndexByte(d.buf, Delimiter); i >= 0 {
			decodeErr := json.Unmarshal(d.buf[:i], out)
			d.buf = append(d.buf[:0], d.buf[i+1:]...)
			if decodeErr != nil {
				return fmt.Errorf("%w: %v", ErrFrameDecode, decodeErr)
			}
			return nil
		}
		if len(d.buf) >= d.limits.MaxFrameBytes {
			return ErrFrameTooLarge
		}
		chunk := make([]byte, d.limits.ReadChunkBytes)
		n, err := d.r.Read(chunk)
		if n > 0 {
			d.buf = append(d.buf, chunk[:n]...)
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return err
			}
			if bytes.IndexByte(d.buf, Delimiter) >= 0 {
				continue
			}
			if len(d.buf) == 0 {
				return io.EOF
			}
			return ErrTruncatedFrame
		}
	}
}
