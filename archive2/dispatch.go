package archive2

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/wx88d/nexrad/model"
)

// ErrSegmentAssembly is returned when a multi-segment message's segments
// arrive out of order or with an inconsistent segment count.
var ErrSegmentAssembly = errors.New("archive2: inconsistent message segment sequence")

// frameLength is how many bytes of message payload a single 2432-byte
// record frame carries once its CTM header and message header are
// accounted for.
const frameLength = DefaultMetadataRecordLength - LegacyCTMHeaderLength - 16

// Message is a single decoded, reassembled message from a record. Exactly
// one of its typed fields is populated, selected by Type.
type Message struct {
	Type   uint8
	Header MessageHeader

	Status                 *Message2
	PerformanceMaintenance *Message3
	ControlCommand         *Message6
	ClutterFilterBypassMap *Message13
	AdaptationData         *Message18
	Radial                 *model.Radial
	VolumeCoveragePattern  *model.VolumeCoveragePattern

	// Other is set for message types this decoder recognizes by number but
	// does not further decode (see OtherMessage).
	Other *OtherMessage
}

// OtherMessage marks a recognized-but-opaque message: one whose type the
// decoder knows about but whose payload it passes through unparsed. Many
// RDA message types (console messages, loopback tests, clutter filter maps)
// carry operational detail that no scan-assembly consumer of this package
// needs.
type OtherMessage struct {
	Type    uint8
	Payload []byte
}

// segmentBuffer accumulates a multi-segment message's frame bodies, kept
// as separate slices rather than concatenated into one buffer so the
// eventual SegmentedSliceReader sees the same segment boundaries the wire
// did.
type segmentBuffer struct {
	messageType uint8
	total       uint16
	have        uint16
	segments    [][]byte
}

// MessageStream decodes the sequence of messages packed into one
// decompressed LDM record, reassembling any multi-segment messages (every
// type except 31, which instead signals its own length via the
// MessageSizeBytes formula and is never split across frames in the streams
// this package targets).
type MessageStream struct {
	r       io.Reader
	build   BuildNumber
	site    *model.Site
	pending map[uint16]*segmentBuffer
}

// NewMessageStream wraps r, which must yield the decompressed contents of
// one LDM record.
func NewMessageStream(r io.Reader) *MessageStream {
	return &MessageStream{r: r, pending: make(map[uint16]*segmentBuffer)}
}

// BuildNumber is the RDA build number latched from the first Message Type 2
// seen on this stream, or zero if none has been seen yet.
func (s *MessageStream) BuildNumber() BuildNumber {
	return s.build
}

// Site returns the station metadata reported by the first Message Type 31
// VOL data block seen on this stream, or nil if none has been seen yet.
func (s *MessageStream) Site() *model.Site {
	return s.site
}

// Next decodes and returns the next complete, reassembled message, or
// io.EOF once the record is exhausted.
func (s *MessageStream) Next() (*Message, error) {
	for {
		if _, err := io.CopyN(io.Discard, s.r, LegacyCTMHeaderLength); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, io.EOF
			}
			return nil, err
		}

		header, err := readMessageHeader(s.r)
		if err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, io.EOF
			}
			return nil, err
		}

		if header.MessageType == 31 {
			return s.decodeMessage31(header)
		}

		payload := make([]byte, frameLength)
		if _, err := io.ReadFull(s.r, payload); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTruncatedRecord, err)
		}

		if header.NumMessageSegments <= 1 {
			return s.decodeComplete(header, [][]byte{payload})
		}

		msg, err := s.accumulate(header, payload)
		if err != nil {
			return nil, err
		}
		if msg != nil {
			return msg, nil
		}
		// segment incomplete, read the next frame
	}
}

func (s *MessageStream) accumulate(header MessageHeader, payload []byte) (*Message, error) {
	sb, ok := s.pending[header.IDSequenceNumber]
	if !ok {
		sb = &segmentBuffer{messageType: header.MessageType, total: header.NumMessageSegments}
		s.pending[header.IDSequenceNumber] = sb
	}

	if sb.messageType != header.MessageType || header.MessageSegmentNum != sb.have+1 {
		delete(s.pending, header.IDSequenceNumber)
		return nil, ErrSegmentAssembly
	}

	segCopy := make([]byte, len(payload))
	copy(segCopy, payload)
	sb.segments = append(sb.segments, segCopy)
	sb.have++

	if sb.have < sb.total {
		return nil, nil
	}

	delete(s.pending, header.IDSequenceNumber)
	segments := trimSegments(sb.segments, int(header.MessageSizeBytes()))
	return s.decodeComplete(header, segments)
}

// trimSegments truncates segments to want total bytes, dropping or
// shortening trailing segments that carry only frame padding beyond the
// message's real size. want <= 0 means the real size is unknown and every
// segment is kept as-is.
func trimSegments(segments [][]byte, want int) [][]byte {
	if want <= 0 {
		return segments
	}

	total := 0
	for _, seg := range segments {
		total += len(seg)
	}
	if want >= total {
		return segments
	}

	out := make([][]byte, 0, len(segments))
	remaining := want
	for _, seg := range segments {
		if remaining <= 0 {
			break
		}
		if len(seg) <= remaining {
			out = append(out, seg)
			remaining -= len(seg)
		} else {
			out = append(out, seg[:remaining])
			remaining = 0
		}
	}
	return out
}

// flattenSegments concatenates segments into one contiguous buffer, for the
// opaque OtherMessage payload and any other call site that wants a single
// flat slice rather than the segment-cursor API.
func flattenSegments(segments [][]byte) []byte {
	total := 0
	for _, seg := range segments {
		total += len(seg)
	}
	out := make([]byte, 0, total)
	for _, seg := range segments {
		out = append(out, seg...)
	}
	return out
}

func (s *MessageStream) decodeComplete(header MessageHeader, segments [][]byte) (*Message, error) {
	r := NewSegmentedSliceReader(segments)

	switch header.MessageType {
	case 1:
		radial, err := NewMessage1(r)
		if err != nil {
			return nil, err
		}
		return &Message{Type: 1, Header: header, Radial: radial}, nil
	case 2:
		var m2 Message2
		if err := binary.Read(r, binary.BigEndian, &m2); err != nil {
			return nil, err
		}
		if s.build == 0 {
			s.build = m2.BuildNumber()
		}
		return &Message{Type: 2, Header: header, Status: &m2}, nil
	case 3:
		pm, err := NewMessage3(r)
		if err != nil {
			return nil, err
		}
		return &Message{Type: 3, Header: header, PerformanceMaintenance: pm}, nil
	case 5, 7:
		vcp, err := NewVolumeCoveragePattern(r)
		if err != nil {
			return nil, err
		}
		return &Message{Type: header.MessageType, Header: header, VolumeCoveragePattern: vcp}, nil
	case 6:
		cc, err := NewMessage6(r)
		if err != nil {
			return nil, err
		}
		return &Message{Type: 6, Header: header, ControlCommand: cc}, nil
	case 13:
		cfb, err := NewMessage13(r)
		if err != nil {
			return nil, err
		}
		return &Message{Type: 13, Header: header, ClutterFilterBypassMap: cfb}, nil
	case 18:
		ad, err := NewMessage18(r)
		if err != nil {
			return nil, err
		}
		return &Message{Type: 18, Header: header, AdaptationData: ad}, nil
	default:
		return &Message{
			Type:   header.MessageType,
			Header: header,
			Other:  &OtherMessage{Type: header.MessageType, Payload: flattenSegments(segments)},
		}, nil
	}
}

func (s *MessageStream) decodeMessage31(header MessageHeader) (*Message, error) {
	radial, site, err := NewMessage31(s.r, s.build)
	if err != nil {
		return nil, err
	}
	if site != nil && s.site == nil {
		s.site = site
	}
	return &Message{Type: 31, Header: header, Radial: radial}, nil
}
