package archive2

import (
	"encoding/binary"
	"io"
	"time"
)

// variableLengthSentinel is the SegmentSize value that indicates a message's
// true length is carried elsewhere (in SegmentCount/MessageSegmentNum) rather
// than in SegmentSize itself. Only Message Type 31 uses this convention; the
// field is still called "segment size" for every other message type.
const variableLengthSentinel = 0xFFFF

// MessageHeader provides a high level description for a particular message (User 3.2.4.1).
type MessageHeader struct {
	MessageSize         uint16
	RDARedundantChannel uint8
	MessageType         uint8
	IDSequenceNumber    uint16
	JulianDate          uint16
	MillisOfDay         uint32
	NumMessageSegments  uint16
	MessageSegmentNum   uint16
}

// variableLength reports whether this message's true size must be computed
// from the segment count and number rather than read directly from
// MessageSize. Message Type 31 always reports itself this way, signalled by
// the sentinel value 0xFFFF in MessageSize (which for every other type is a
// literal halfword count).
func (h MessageHeader) variableLength() bool {
	return h.MessageType == 31 || h.MessageSize == variableLengthSentinel
}

// Segmented reports whether this message is one of several fixed segments
// assembled by N-of-M sequencing (NumMessageSegments/MessageSegmentNum), as
// opposed to variable-length framing where the body runs contiguously from
// this segment. This is the complement of variableLength: Message Type 31 is
// never Segmented, even when NumMessageSegments reports more than one.
func (h MessageHeader) Segmented() bool {
	return !h.variableLength()
}

// SegmentCountOK returns the total number of segments in this message, valid
// only when Segmented is true.
func (h MessageHeader) SegmentCountOK() (uint16, bool) {
	if !h.Segmented() {
		return 0, false
	}
	return h.NumMessageSegments, true
}

// SegmentNumberOK returns this segment's 1-based position among
// SegmentCountOK's total, valid only when Segmented is true.
func (h MessageHeader) SegmentNumberOK() (uint16, bool) {
	if !h.Segmented() {
		return 0, false
	}
	return h.MessageSegmentNum, true
}

// MessageSizeBytes returns the full size of this message's payload (header
// excluded) in bytes. For ordinary messages this is MessageSize halfwords.
// For variable-length messages (MessageSize == 0xFFFF) the real
// size is packed across NumMessageSegments and MessageSegmentNum:
// (NumMessageSegments << 16) | MessageSegmentNum.
func (h MessageHeader) MessageSizeBytes() uint32 {
	if h.MessageSize != variableLengthSentinel {
		return uint32(h.MessageSize) * 2
	}
	return uint32(h.NumMessageSegments)<<16 | uint32(h.MessageSegmentNum)
}

// DateTime is the message's collection time, derived from its Julian date
// (days since 1970-01-01, 1-indexed per RDA/RPG convention) and milliseconds
// of day.
func (h MessageHeader) DateTime() time.Time {
	return time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(h.JulianDate-1) * 24 * time.Hour).
		Add(time.Duration(h.MillisOfDay) * time.Millisecond)
}

// readMessageHeader reads a MessageHeader in the wire's big-endian encoding.
func readMessageHeader(r io.Reader) (MessageHeader, error) {
	var h MessageHeader
	if err := binary.Read(r, binary.BigEndian, &h); err != nil {
		return MessageHeader{}, err
	}
	return h, nil
}
