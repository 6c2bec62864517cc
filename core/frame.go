package core

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// MaxMessageSize is the largest payload a frame may carry, in bytes.
	MaxMessageSize = 256

	// headerSize is the width of the length prefix (a 64-bit size on the wire).
	headerSize = 8
)

// WriteFrame sends payload as one frame: an 8-byte little-endian length followed by the payload bytes.
// Header and body are written with a single Write, so a concurrent-safe writer never splits a frame.
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) > MaxMessageSize {
		return fmt.Errorf("%w: %d > %d bytes", ErrFrameTooLarge, len(payload), MaxMessageSize)
	}

	frame := make([]byte, headerSize+len(payload))
	binary.LittleEndian.PutUint64(frame, uint64(len(payload)))
	copy(frame[headerSize:], payload)

	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("%w: writing frame: %w", ErrIO, err)
	}
	return nil
}

// ReadFrame receives exactly one frame and returns its payload.
// The body is never read when the declared length is above MaxMessageSize.
func ReadFrame(r io.Reader) ([]byte, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("%w: reading frame header: %w", ErrIO, err)
	}

	length := binary.LittleEndian.Uint64(header[:])
	if length > MaxMessageSize {
		return nil, fmt.Errorf("%w: declared %d > %d bytes", ErrFrameTooLarge, length, MaxMessageSize)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("%w: reading frame body: %w", ErrIO, err)
	}
	return payload, nil
}
