package archive2

import "encoding/binary"

// message6Size is the fixed size of an RDA Control Commands message body:
// 26 halfwords of operational toggles sent from the RPG to the RDA.
const message6Size = 52

// Message6 is the RDA Control Commands message (User 3.2.4.7): a fixed
// block of command halfwords the RPG sends to change RDA operational
// state (clutter map regeneration, channel control, and similar one-shot
// commands). Command carries the leading command-code halfword; Raw gives
// access to the rest of the 52-byte body, whose remaining halfwords vary
// by which command is being issued.
type Message6 struct {
	command uint16
	raw     [message6Size]byte
}

// NewMessage6 decodes a Message Type 6 from r, which must present exactly
// one message's body (RDA Control Commands is never segmented).
func NewMessage6(r *SegmentReader) (*Message6, error) {
	raw, err := r.TakeSlice(message6Size)
	if err != nil {
		return nil, err
	}

	var m Message6
	copy(m.raw[:], raw)
	m.command = binary.BigEndian.Uint16(raw[0:2])
	return &m, nil
}

// Command is the leading command-code halfword of the message.
func (m *Message6) Command() uint16 { return m.command }

// Raw returns the complete 52-byte RDA Control Commands body.
func (m *Message6) Raw() []byte { return m.raw[:] }
