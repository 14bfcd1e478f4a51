package osc

import (
	"context"
	"encoding/binary"
	"log/slog"
	"math"
)

type testCase struct {
	name    string
	raw     []byte
	obj     Packet
	wantErr bool
}

// oscString returns s null terminated and padded to 4 bytes.
func oscString(s string) []byte {
	b := append([]byte(s), 0)
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	return b
}

func be32(v uint32) []byte { return binary.BigEndian.AppendUint32(nil, v) }

func be64(v uint64) []byte { return binary.BigEndian.AppendUint64(nil, v) }

func join(parts ...[]byte) []byte {
	var b []byte
	for _, p := range parts {
		b = append(b, p...)
	}
	return b
}

// element prefixes a bundle element with its size.
func element(p []byte) []byte {
	return join(be32(uint32(len(p))), p)
}

var (
	rawInt = join(oscString("/osc/int"), oscString(",i"), be32(1234))
	rawVCS = join(oscString("/vcs"), oscString(",b"), be32(5), []byte{1, 2, 3, 4, 5, 0, 0, 0})
	rawAll = join(
		oscString("/all"),
		oscString(",ifsbhdtTFN"),
		be32(0xfffffffe),
		be32(math.Float32bits(0.5)),
		oscString("hello"),
		be32(3), []byte{1, 2, 3, 0},
		be64(1<<40),
		be64(math.Float64bits(0.25)),
		be64(1),
	)
)

var messageTestCases = []testCase{
	{"no_typetags", oscString("/a"), &Message{Address: "/a"}, false},
	{"empty_typetags", join(oscString("/a"), oscString(",")), &Message{Address: "/a", Arguments: []interface{}{}}, false},
	{"int32", rawInt, &Message{Address: "/osc/int", Arguments: []interface{}{int32(1234)}}, false},
	{"blob", rawVCS, &Message{Address: "/vcs", Arguments: []interface{}{[]byte{1, 2, 3, 4, 5}}}, false},
	{"empty_blob", join(oscString("/vcs"), oscString(",b"), be32(0)), &Message{Address: "/vcs", Arguments: []interface{}{[]byte{}}}, false},
	{"all_types", rawAll, &Message{Address: "/all", Arguments: []interface{}{
		int32(-2), float32(0.5), "hello", []byte{1, 2, 3}, int64(1 << 40), 0.25, Timetag(1), true, false, nil,
	}}, false},
	{"not_mod_4", []byte("/ab\x00\x00"), nil, true},
	{"no_address_terminator", []byte("/abc"), nil, true},
	{"bad_typetag_string", join(oscString("/a"), oscString("i"), be32(1)), nil, true},
	{"unknown_typetag", join(oscString("/a"), oscString(",x"), be32(1)), nil, true},
	{"short_int32", join(oscString("/a"), oscString(",i")), nil, true},
	{"short_int64", join(oscString("/a"), oscString(",h"), be32(1)), nil, true},
	{"unterminated_string", join(oscString("/a"), oscString(",s"), []byte("abcd")), nil, true},
	{"blob_too_long", join(oscString("/vcs"), oscString(",b"), be32(16), []byte("ab\x00\x00")), nil, true},
	{"missing_argument_after_blob", join(oscString("/vcs"), oscString(",bi"), be32(1), []byte{1, 0, 0, 0}), nil, true},
	{"trailing_bytes", join(rawInt, be32(1)), nil, true},
}

var bundleTestCases = []testCase{
	{"empty_bundle", join(oscString("#bundle"), be64(1)), &Bundle{Timetag: 1}, false},
	{"one_message", join(oscString("#bundle"), be64(1), element(rawVCS)), &Bundle{
		Timetag:  1,
		Elements: []Packet{&Message{Address: "/vcs", Arguments: []interface{}{[]byte{1, 2, 3, 4, 5}}}},
	}, false},
	{"nested", join(oscString("#bundle"), be64(1), element(rawInt), element(join(oscString("#bundle"), be64(2), element(rawInt)))), &Bundle{
		Timetag: 1,
		Elements: []Packet{
			&Message{Address: "/osc/int", Arguments: []interface{}{int32(1234)}},
			&Bundle{Timetag: 2, Elements: []Packet{&Message{Address: "/osc/int", Arguments: []interface{}{int32(1234)}}}},
		},
	}, false},
	{"too_short", join(oscString("#bundle"), be32(0)), nil, true},
	{"bad_start_tag", join(oscString("#bundlx"), be64(1)), nil, true},
	{"element_too_long", join(oscString("#bundle"), be64(1), be32(64), rawInt), nil, true},
	{"bad_element", join(oscString("#bundle"), be64(1), element([]byte("abcd"))), nil, true},
}

// recordHandler is a slog.Handler that forwards every record to a channel.
type recordHandler struct {
	records chan slog.Record
}

func newRecordHandler() *recordHandler {
	return &recordHandler{records: make(chan slog.Record, 16)}
}

func (h *recordHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordHandler) Handle(_ context.Context, r slog.Record) error {
	h.records <- r.Clone()
	return nil
}

func (h *recordHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *recordHandler) WithGroup(string) slog.Handler { return h }
