package vcs

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

// gzipBytes compresses data as a single gzip member.
func gzipBytes(t testing.TB, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// headerless compresses data the way Kyma does with the gzip header
// stripped: '?' followed by raw DEFLATE.
func headerless(t testing.TB, data []byte) []byte {
	t.Helper()

	buf := bytes.NewBuffer([]byte{headerlessMarker})
	fw, err := flate.NewWriter(buf, flate.DefaultCompression)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, fw.Close())
	return buf.Bytes()
}

// frame wraps payload as an OSC blob argument: length prefix, payload and
// zero padding to a 4 byte boundary.
func frame(payload []byte) []byte {
	b := binary.BigEndian.AppendUint32(nil, uint32(len(payload)))
	b = append(b, payload...)
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	return b
}

// vcsPacket builds a raw /vcs,b OSC message around blob.
func vcsPacket(addr string, blob []byte) []byte {
	b := appendPadded(nil, addr)
	b = appendPadded(b, ",b")
	return append(b, frame(blob)...)
}

func appendPadded(b []byte, s string) []byte {
	b = append(b, s...)
	b = append(b, 0)
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	return b
}
