package vcs

import (
	"fmt"

	"github.com/chabad360/kyma-vcs/osc"
)

// Address is the OSC address Kyma sends optimized VCS notifications to.
const Address = "/vcs"

// DecodeMessage decodes the blob carried by a /vcs,b message.
func (d *Decoder) DecodeMessage(msg *osc.Message) (string, error) {
	blob, err := MessageBlob(msg)
	if err != nil {
		return "", err
	}
	return d.Decode(blob)
}

// DecodePacket parses a raw OSC packet holding a single /vcs,b message and
// decodes its blob.
func (d *Decoder) DecodePacket(data []byte) (string, error) {
	p, err := osc.ParsePacket(data)
	if err != nil {
		return "", fmt.Errorf("DecodePacket: %w", err)
	}

	msg, ok := p.(*osc.Message)
	if !ok {
		return "", fmt.Errorf("DecodePacket: %w, got %T", ErrUnexpectedPacket, p)
	}

	return d.DecodeMessage(msg)
}

// MessageBlob returns the blob argument of a /vcs,b message.
func MessageBlob(msg *osc.Message) ([]byte, error) {
	if msg == nil {
		return nil, fmt.Errorf("%w: nil message", ErrUnexpectedArguments)
	}

	if msg.Address != Address {
		return nil, fmt.Errorf("%w: %q", ErrUnexpectedAddress, msg.Address)
	}

	if len(msg.Arguments) != 1 {
		return nil, fmt.Errorf("%w: got %d arguments", ErrUnexpectedArguments, len(msg.Arguments))
	}

	blob, ok := msg.Arguments[0].([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: got %c", ErrUnexpectedArguments, osc.ToTypeTag(msg.Arguments[0]))
	}

	return blob, nil
}
