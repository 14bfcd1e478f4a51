package osc

import (
	"fmt"
)

// MaxPacketSize is the largest datagram the server will read.
const MaxPacketSize = 65507

// Packet is the interface for Message and Bundle.
type Packet interface {
	packet()
}

// ParsePacket parses the given data and returns either a *Message or a *Bundle.
func ParsePacket(data []byte) (Packet, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("ParsePacket: empty packet")
	}

	switch data[0] {
	case '/':
		return NewMessageFromData(data)
	case '#':
		return NewBundleFromData(data)
	default:
		return nil, fmt.Errorf("ParsePacket: invalid packet, starts with %q", data[0])
	}
}
