package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	bit32Size = 4
	bit64Size = 8
)

////
// Decoding functions
////

// parseBlob parses an OSC blob from data. It returns the blob payload and the
// number of bytes consumed, padding included. The payload is a subslice of data.
func parseBlob(data []byte) ([]byte, int, error) {
	if len(data) < bit32Size {
		return nil, 0, fmt.Errorf("parseBlob: %w", io.ErrUnexpectedEOF)
	}

	// First, get the length
	blobLen := int(binary.BigEndian.Uint32(data[:bit32Size]))
	data = data[bit32Size:]

	if blobLen < 0 || blobLen > len(data) {
		return nil, 0, fmt.Errorf("parseBlob: invalid blob length %d", blobLen)
	}

	n := bit32Size + blobLen
	n += PadBytesNeeded(n)
	if n-bit32Size > len(data) {
		return nil, 0, fmt.Errorf("parseBlob: missing padding after blob of length %d", blobLen)
	}

	return data[:blobLen], n, nil
}

// parsePaddedString reads a padded string from the given slice and returns the string and the number of bytes read.
func parsePaddedString(data []byte) (string, int, error) {
	pos := bytes.IndexByte(data, 0)
	if pos == -1 {
		return "", 0, fmt.Errorf("parsePaddedString: %w", io.EOF)
	}

	n := pos + 1
	n += PadBytesNeeded(n)
	if n > len(data) {
		return "", 0, fmt.Errorf("parsePaddedString: %w", io.ErrUnexpectedEOF)
	}

	return string(data[:pos]), n, nil
}

// PadBytesNeeded determines how many bytes are needed to fill up to the next 4
// byte boundary.
func PadBytesNeeded(elementLen int) int {
	return (4 - (elementLen % 4)) % 4
}
