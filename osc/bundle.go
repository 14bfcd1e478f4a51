package osc

import (
	"encoding/binary"
	"fmt"
)

const (
	bundleTagString = "#bundle"
)

// Bundle represents an OSC bundle. It consists of the OSC-string "#bundle"
// followed by an OSC Time Tag, followed by zero or more OSC bundle/message
// elements. The OSC-timetag is a 64-bit fixed point time tag. See
// http://opensoundcontrol.org/spec-1_0.html for more information.
type Bundle struct {
	Timetag  Timetag
	Elements []Packet
}

// Verify that Bundle implements the Packet interface.
var _ Packet = (*Bundle)(nil)

func (b *Bundle) packet() {}

// NewBundleFromData returns a new OSC bundle created from the parsed data.
func NewBundleFromData(data []byte) (b *Bundle, err error) {
	b = &Bundle{}
	if err = b.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return b, nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (b *Bundle) UnmarshalBinary(data []byte) error {
	if (len(data) % bit32Size) != 0 {
		return fmt.Errorf("UnmarshalBinary: data isn't padded properly")
	}

	if len(data) < 16 {
		return fmt.Errorf("UnmarshalBinary: bundle is too short")
	}

	// Read the '#bundle' OSC string
	startTag, n, err := parsePaddedString(data)
	if err != nil {
		return fmt.Errorf("UnmarshalBinary: %w", err)
	}
	data = data[n:]

	if startTag != bundleTagString {
		return fmt.Errorf("invalid bundle start tag: %s", startTag)
	}

	// Read the timetag
	b.Timetag = Timetag(binary.BigEndian.Uint64(data[:bit64Size]))
	data = data[bit64Size:]
	b.Elements = nil

	// Read until the end of the buffer
	for len(data) > 0 {
		if len(data) < bit32Size {
			return fmt.Errorf("UnmarshalBinary: truncated bundle element size")
		}

		// Read the size of the bundle element
		length := int(binary.BigEndian.Uint32(data[:bit32Size]))
		data = data[bit32Size:]
		if length < 0 || len(data) < length {
			return fmt.Errorf("invalid bundle element length: %d", length)
		}

		p, err := ParsePacket(data[:length])
		if err != nil {
			return fmt.Errorf("UnmarshalBinary: %w", err)
		}
		data = data[length:]
		b.Elements = append(b.Elements, p)
	}

	return nil
}
