package vcs

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"

	"github.com/chabad360/kyma-vcs/osc"
)

const (
	gzipID1 = 0x1f
	gzipID2 = 0x8b

	// minGzipSize is the size of the fixed gzip member header.
	minGzipSize = 10

	// prefixSize is the size of the OSC blob length prefix.
	prefixSize = 4

	// headerlessMarker starts a blob Kyma sent as raw DEFLATE, with the gzip
	// header stripped.
	headerlessMarker = '?'

	// DefaultMaxDecodedSize bounds the inflated size of a blob. VCS updates
	// are a few hundred bytes; this only stops runaway streams.
	DefaultMaxDecodedSize = 1 << 20
)

// Decoder turns /vcs blobs into JSON text. A Decoder is immutable once
// built and safe for concurrent use.
type Decoder struct {
	maxDecodedSize int64
	headerless     bool
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithMaxDecodedSize limits how many bytes a blob may inflate to.
// Zero or a negative n removes the limit.
func WithMaxDecodedSize(n int64) Option {
	return func(d *Decoder) {
		if n < 0 {
			n = 0
		}
		d.maxDecodedSize = n
	}
}

// WithHeaderlessDeflate makes the Decoder accept payloads that begin with
// '?' followed by a raw DEFLATE stream. Off by default.
func WithHeaderlessDeflate(enabled bool) Option {
	return func(d *Decoder) {
		d.headerless = enabled
	}
}

// New returns a Decoder configured by opts.
func New(opts ...Option) *Decoder {
	d := &Decoder{
		maxDecodedSize: DefaultMaxDecodedSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDecoder = New()

// Decode decodes an extracted blob payload with the default Decoder.
func Decode(payload []byte) (string, error) {
	return defaultDecoder.Decode(payload)
}

// DecodeFramed decodes an OSC-framed blob argument with the default Decoder.
func DecodeFramed(arg []byte) (string, error) {
	return defaultDecoder.DecodeFramed(arg)
}

// Decode validates and inflates a blob payload and returns the JSON text it
// holds. payload is the N blob bytes, without the OSC length prefix or
// padding; that is what osc.Message carries for a 'b' argument.
//
// Decode does not parse the JSON. All failures are *DecodeError.
func (d *Decoder) Decode(payload []byte) (string, error) {
	data, err := d.inflate(payload)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(data) {
		return "", &DecodeError{Kind: InvalidUTF8}
	}

	return string(data), nil
}

// DecodeEvents inflates payload like Decode and parses the result as
// EventID/value pairs instead of text. Inflate failures are *DecodeError;
// a result that is not a whole number of pairs wraps ErrEventPairs.
//
// Blobs sent without compression are not accepted here; callers that see
// ErrNotGzip can hand the payload to ParseEvents directly.
func (d *Decoder) DecodeEvents(payload []byte) ([]Event, error) {
	data, err := d.inflate(payload)
	if err != nil {
		return nil, err
	}
	return ParseEvents(data)
}

// DecodeEvents decodes payload with the default Decoder.
func DecodeEvents(payload []byte) ([]Event, error) {
	return defaultDecoder.DecodeEvents(payload)
}

// DecodeFramed is Decode for the OSC wire form of a blob argument: a 4 byte
// big-endian length N, N bytes of payload, and optionally the zero padding
// to the next 4 byte boundary. The length must account for every byte that
// follows it.
func (d *Decoder) DecodeFramed(arg []byte) (string, error) {
	payload, err := unframe(arg)
	if err != nil {
		return "", err
	}
	return d.Decode(payload)
}

// DecodeJSON decodes payload like Decode and unmarshals the document into v.
// JSON errors are returned as is, not as a *DecodeError.
func (d *Decoder) DecodeJSON(payload []byte, v any) error {
	s, err := d.Decode(payload)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return fmt.Errorf("DecodeJSON: %w", err)
	}
	return nil
}

// inflate checks the payload header and returns the decompressed bytes.
func (d *Decoder) inflate(payload []byte) ([]byte, error) {
	if d.headerless && len(payload) > 0 && payload[0] == headerlessMarker {
		return d.inflateRaw(payload[1:])
	}

	if len(payload) < minGzipSize {
		return nil, &DecodeError{Kind: Truncated, Declared: minGzipSize, Actual: len(payload)}
	}

	if payload[0] != gzipID1 || payload[1] != gzipID2 {
		return nil, &DecodeError{Kind: NotGzip}
	}

	zr, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, &DecodeError{Kind: Decompression, Err: err}
	}
	defer zr.Close()

	return d.readAll(zr)
}

// inflateRaw inflates a bare DEFLATE stream. The stream must end at the
// end of b.
func (d *Decoder) inflateRaw(b []byte) ([]byte, error) {
	// flate reads a *bytes.Reader a byte at a time, so whatever is left
	// in br after the final block was never part of the stream.
	br := bytes.NewReader(b)
	fr := flate.NewReader(br)
	defer fr.Close()

	data, err := d.readAll(fr)
	if err != nil {
		return nil, err
	}

	if br.Len() != 0 {
		return nil, &DecodeError{
			Kind: Decompression,
			Err:  fmt.Errorf("%w: %d bytes", ErrTrailingData, br.Len()),
		}
	}

	return data, nil
}

// readAll reads r to the end, up to the decoded size limit.
func (d *Decoder) readAll(r io.Reader) ([]byte, error) {
	if d.maxDecodedSize > 0 {
		r = io.LimitReader(r, d.maxDecodedSize+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DecodeError{Kind: Decompression, Err: err}
	}

	if d.maxDecodedSize > 0 && int64(len(data)) > d.maxDecodedSize {
		return nil, &DecodeError{
			Kind: Decompression,
			Err:  fmt.Errorf("%w: limit is %d bytes", ErrDecodedTooLarge, d.maxDecodedSize),
		}
	}

	return data, nil
}

// unframe strips the OSC length prefix and padding from arg.
func unframe(arg []byte) ([]byte, error) {
	if len(arg) < prefixSize {
		return nil, &DecodeError{Kind: Truncated, Declared: prefixSize, Actual: len(arg)}
	}

	declared := uint64(binary.BigEndian.Uint32(arg))
	rest := arg[prefixSize:]
	actual := uint64(len(rest))

	if declared == actual {
		return rest, nil
	}

	if declared < actual {
		n := int(declared)
		pad := rest[n:]
		if len(pad) == osc.PadBytesNeeded(n) && allZero(pad) {
			return rest[:n], nil
		}
	}

	return nil, &DecodeError{Kind: LengthMismatch, Declared: int(declared), Actual: len(rest)}
}

func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
