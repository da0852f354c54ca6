// Package console connects the machine's character instructions to byte
// streams.
package console

import (
	"bufio"
	"io"
)

// Console is the character device the machine reads from and writes to.
// ReadByte returns io.EOF once the input is exhausted.
type Console interface {
	ReadByte() (byte, error)
	WriteByte(c byte) error
}

// Stream is a Console over an io.Reader and an io.Writer. Input is buffered;
// every written byte goes straight to the underlying writer.
type Stream struct {
	in  *bufio.Reader
	out io.Writer
	buf [1]byte
}

// NewStream creates a console reading from r and writing to w. A nil reader
// behaves as an empty input.
func NewStream(r io.Reader, w io.Writer) *Stream {
	s := &Stream{out: w}
	if r != nil {
		s.in = bufio.NewReader(r)
	}
	return s
}

// ReadByte reads one input byte.
func (s *Stream) ReadByte() (byte, error) {
	if s.in == nil {
		return 0, io.EOF
	}
	return s.in.ReadByte()
}

// WriteByte emits one output byte.
func (s *Stream) WriteByte(c byte) error {
	s.buf[0] = c
	_, err := s.out.Write(s.buf[:])
	return err
}
