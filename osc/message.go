package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Message represents a single OSC message. An OSC message consists of an OSC
// address pattern and zero or more arguments.
type Message struct {
	Address   string
	Arguments []interface{}
}

// Verify that Messages implements the Packet interface.
var _ Packet = (*Message)(nil)

func (m *Message) packet() {}

// NewMessage returns a new Message. The address parameter is the OSC address.
func NewMessage(addr string, args ...interface{}) *Message {
	return &Message{Address: addr, Arguments: args}
}

// Match returns true, if the OSC address pattern of the OSC Message matches the given
// address. The match is case sensitive!
func (m *Message) Match(addr string) bool {
	r, err := getRegEx(m.Address)
	if err != nil {
		return false
	}
	return r.MatchString(addr)
}

// TypeTags returns the type tag string.
func (m *Message) TypeTags() (string, error) {
	if m == nil {
		return "", fmt.Errorf("TypeTags: message is nil")
	}

	tags := make([]byte, 0, len(m.Arguments)+1)
	tags = append(tags, ',')
	for _, arg := range m.Arguments {
		t := ToTypeTag(arg)
		if t == TypeInvalid {
			return "", fmt.Errorf("TypeTags: unsupported type: %T", arg)
		}
		tags = append(tags, byte(t))
	}

	return string(tags), nil
}

// String implements the fmt.Stringer interface.
func (m *Message) String() string {
	if m == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.Address)

	tags, err := m.TypeTags()
	if err != nil || len(m.Arguments) == 0 {
		return b.String()
	}

	b.WriteByte(' ')
	b.WriteString(tags)

	for _, arg := range m.Arguments {
		switch arg := arg.(type) {
		case bool, int32, int64, float32, float64, string:
			fmt.Fprintf(&b, " %v", arg)

		case nil:
			b.WriteString(" Nil")

		case []byte:
			fmt.Fprintf(&b, " blob(%d)", len(arg))

		case Timetag:
			fmt.Fprintf(&b, " %d", uint64(arg))
		}
	}

	return b.String()
}

// NewMessageFromData returns a new OSC message parsed from data.
func NewMessageFromData(data []byte) (msg *Message, err error) {
	msg = &Message{}
	if err = msg.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return msg, nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface. Blob
// arguments are copied, so data may be reused once it returns.
func (m *Message) UnmarshalBinary(data []byte) error {
	if len(data) == 0 || data[0] != '/' {
		return fmt.Errorf("UnmarshalBinary: data not a valid OSC message")
	}

	if (len(data) % bit32Size) != 0 {
		return fmt.Errorf("UnmarshalBinary: data isn't mod 4")
	}

	// First, read the OSC address
	addr, n, err := parsePaddedString(data)
	if err != nil {
		return fmt.Errorf("UnmarshalBinary: %w", err)
	}

	// Read all arguments
	m.Address = addr
	m.Arguments = nil
	if err = m.parseArguments(data[n:]); err != nil {
		return fmt.Errorf("UnmarshalBinary: %w", err)
	}

	return nil
}

// parseArguments reads the type tag string and the arguments it describes.
func (m *Message) parseArguments(data []byte) error {
	// Some senders omit the type tag string when there are no arguments.
	if len(data) == 0 {
		return nil
	}

	typetags, n, err := parsePaddedString(data)
	if err != nil {
		return fmt.Errorf("parseArguments: %w", err)
	}
	data = data[n:]

	if len(typetags) == 0 {
		return nil
	}

	// If the typetag doesn't start with ',', it's not valid
	if typetags[0] != ',' {
		return fmt.Errorf("unsupported typetag string: %s", typetags)
	}

	m.Arguments = make([]interface{}, 0, len(typetags)-1)

	for _, c := range []byte(typetags[1:]) {
		if size := argSize(TypeTag(c)); size > len(data) {
			return fmt.Errorf("parseArguments: not enough bytes to read %c", c)
		}

		switch TypeTag(c) {
		default:
			return fmt.Errorf("unsupported typetag: %c", c)

		case TypeInt32:
			m.Arguments = append(m.Arguments, int32(binary.BigEndian.Uint32(data)))
			data = data[bit32Size:]

		case TypeInt64:
			m.Arguments = append(m.Arguments, int64(binary.BigEndian.Uint64(data)))
			data = data[bit64Size:]

		case TypeFloat32:
			m.Arguments = append(m.Arguments, math.Float32frombits(binary.BigEndian.Uint32(data)))
			data = data[bit32Size:]

		case TypeFloat64:
			m.Arguments = append(m.Arguments, math.Float64frombits(binary.BigEndian.Uint64(data)))
			data = data[bit64Size:]

		case TypeString:
			str, n, err := parsePaddedString(data)
			if err != nil {
				return fmt.Errorf("parseArguments: %w", err)
			}
			m.Arguments = append(m.Arguments, str)
			data = data[n:]

		case TypeBlob:
			blob, n, err := parseBlob(data)
			if err != nil {
				return fmt.Errorf("parseArguments: %w", err)
			}
			m.Arguments = append(m.Arguments, bytes.Clone(blob))
			data = data[n:]

		case TypeTimeTag:
			m.Arguments = append(m.Arguments, Timetag(binary.BigEndian.Uint64(data)))
			data = data[bit64Size:]

		case TypeNil:
			m.Arguments = append(m.Arguments, nil)

		case TypeTrue:
			m.Arguments = append(m.Arguments, true)

		case TypeFalse:
			m.Arguments = append(m.Arguments, false)
		}
	}

	if len(data) != 0 {
		return fmt.Errorf("parseArguments: %d trailing bytes after arguments", len(data))
	}

	return nil
}

// getRegEx returns a regexp.Regexp for the given address pattern. The
// expression is anchored and wildcards never cross a '/'.
func getRegEx(pattern string) (*regexp.Regexp, error) {
	r := strings.NewReplacer(
		".", `\.`,
		"(", `\(`,
		")", `\)`,
		"*", "[^/]*",
		"{", "(",
		",", "|",
		"}", ")",
		"?", "[^/]",
		"!", "^",
	)
	pattern = r.Replace(pattern)

	return regexp.Compile("^" + pattern + "$")
}
