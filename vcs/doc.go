// Package vcs decodes the blob Kyma sends with /vcs,b when "Optimize Kyma
// Control Communication" is on in the Performance Preferences: a gzip
// compressed UTF-8 JSON document describing VCS widget changes.
//
// The decoder only validates and inflates; parsing the JSON, modeling
// widgets and asking Kyma again after a failure are left to the caller.
// Every failure is a *DecodeError whose Kind says which stage rejected the
// blob:
//
//	s, err := vcs.Decode(blob)
//	switch {
//	case errors.Is(err, vcs.ErrNotGzip), errors.Is(err, vcs.ErrTruncated):
//		// optimization is probably off, treat blob as plain text
//	case err != nil:
//		// corrupt or mis-framed
//	}
//
// The size check runs before the magic check, so plain text shorter than a
// gzip header (10 bytes) is reported as Truncated rather than NotGzip.
//
// DecodeEvents inflates the same way but reads the result as big-endian
// int32 EventID and float32 value pairs.
//
// Decode takes the extracted blob payload, as found in osc.Message.Arguments.
// DecodeFramed takes the blob argument as it sits on the wire, with its
// 4 byte length prefix.
package vcs
