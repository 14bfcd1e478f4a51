package vcs

import (
	"encoding/binary"
	"fmt"
	"math"
)

// eventSize is the wire size of one EventID/value pair.
const eventSize = 8

// Event is a single widget change in the binary /vcs layout: a 32-bit
// EventID and the widget's new 32-bit float value, both big-endian.
type Event struct {
	EventID int32   `json:"event_id"`
	Value   float32 `json:"value"`
}

func (e Event) String() string {
	return fmt.Sprintf("Event{EventID: %d, Value: %v}", e.EventID, e.Value)
}

// ParseEvents decodes a sequence of EventID/value pairs.
func ParseEvents(data []byte) ([]Event, error) {
	if len(data)%eventSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrEventPairs, len(data))
	}

	events := make([]Event, 0, len(data)/eventSize)
	for ; len(data) > 0; data = data[eventSize:] {
		events = append(events, Event{
			EventID: int32(binary.BigEndian.Uint32(data[0:4])),
			Value:   math.Float32frombits(binary.BigEndian.Uint32(data[4:8])),
		})
	}

	return events, nil
}
