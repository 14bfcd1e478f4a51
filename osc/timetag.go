package osc

import (
	"time"
)

const (
	// secondsFrom1900To1970 is the offset between the NTP and Unix epochs.
	secondsFrom1900To1970 = 2208988800

	// immediately is the special time tag meaning "now".
	immediately = Timetag(1)
)

// Timetag represents an OSC Time Tag.
// An OSC Time Tag is defined as follows:
// Time tags are represented by a 64 bit fixed point number. The first 32 bits
// specify the number of seconds since midnight on January 1, 1900, and the
// last 32 bits specify fractional parts of a second to a precision of about
// 200 picoseconds. This is the representation used by Internet NTP timestamps.
type Timetag uint64

// NewTimetagFromTime returns a new OSC time tag object from a time.Time.
func NewTimetagFromTime(timeStamp time.Time) Timetag {
	secs := uint64(timeStamp.Unix()+secondsFrom1900To1970) << 32
	frac := (uint64(timeStamp.Nanosecond()) << 32) / uint64(time.Second)
	return Timetag(secs + frac)
}

// NewImmediateTimetag returns the time tag meaning "immediately".
func NewImmediateTimetag() Timetag {
	return immediately
}

// Time returns the time.
func (t Timetag) Time() time.Time {
	secs := int64(t>>32) - secondsFrom1900To1970
	nsec := (uint64(t&0xffffffff) * uint64(time.Second)) >> 32
	return time.Unix(secs, int64(nsec))
}

// ExpiresIn calculates the duration until the current time is the
// same as the value of the time tag. It returns zero if the value of the
// time tag is in the past or means "immediately".
func (t Timetag) ExpiresIn() time.Duration {
	if t <= immediately {
		return 0
	}

	d := time.Until(t.Time())
	if d <= 0 {
		return 0
	}

	return d
}
