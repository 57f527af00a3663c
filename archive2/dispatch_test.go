package archive2

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

func writeFrame(t *testing.T, buf *bytes.Buffer, h MessageHeader, payload []byte) {
	t.Helper()
	buf.Write(make([]byte, LegacyCTMHeaderLength))
	if err := binary.Write(buf, binary.BigEndian, h); err != nil {
		t.Fatal(err)
	}
	full := make([]byte, frameLength)
	copy(full, payload)
	buf.Write(full)
}

func TestMessageStreamDecodesStatusMessage(t *testing.T) {
	var buf bytes.Buffer
	var m2 Message2
	m2.RDAStatus = 4
	m2.RDABuild = 200
	body := &bytes.Buffer{}
	if err := binary.Write(body, binary.BigEndian, m2); err != nil {
		t.Fatal(err)
	}

	writeFrame(t, &buf, MessageHeader{MessageType: 2, NumMessageSegments: 1, MessageSegmentNum: 1}, body.Bytes())

	s := NewMessageStream(&buf)
	msg, err := s.Next()
	if err != nil {
		t.Fatal(err)
	}
	if msg.Type != 2 || msg.Status == nil {
		t.Fatalf("got %+v, want decoded status message", msg)
	}
	if msg.Status.RDAStatusString() != "operate" {
		t.Errorf("RDAStatusString() = %q, want operate", msg.Status.RDAStatusString())
	}
	if s.BuildNumber() != 20.0 {
		t.Errorf("BuildNumber() = %v, want 20.0", s.BuildNumber())
	}

	if _, err := s.Next(); err != io.EOF {
		t.Errorf("second Next() error = %v, want io.EOF", err)
	}
}

func TestMessageStreamReassemblesSegments(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte("part-one:part-two")
	mid := 10

	writeFrame(t, &buf, MessageHeader{
		MessageType: 8, IDSequenceNumber: 1,
		NumMessageSegments: 2, MessageSegmentNum: 1,
	}, payload[:mid])
	writeFrame(t, &buf, MessageHeader{
		MessageType: 8, IDSequenceNumber: 1,
		NumMessageSegments: 2, MessageSegmentNum: 2,
		MessageSize: uint16(len(payload)) / 2, // forces a non-sentinel size path below
	}, payload[mid:])

	s := NewMessageStream(&buf)
	msg, err := s.Next()
	if err != nil {
		t.Fatal(err)
	}
	if msg.Type != 8 || msg.Other == nil {
		t.Fatalf("got %+v, want reassembled OtherMessage", msg)
	}
}

func TestMessageStreamDecodesClutterFilterBypassMap(t *testing.T) {
	var buf bytes.Buffer
	segment := make([]byte, clutterBypassSegmentSize)
	binary.BigEndian.PutUint16(segment[0:2], 3)

	numFrames := (len(segment) + frameLength - 1) / frameLength
	for i := 0; i < numFrames; i++ {
		start := i * frameLength
		end := start + frameLength
		if end > len(segment) {
			end = len(segment)
		}
		h := MessageHeader{
			MessageType: 13, IDSequenceNumber: 5,
			NumMessageSegments: uint16(numFrames), MessageSegmentNum: uint16(i + 1),
		}
		if i == numFrames-1 {
			h.MessageSize = uint16(len(segment)) / 2
		}
		writeFrame(t, &buf, h, segment[start:end])
	}

	s := NewMessageStream(&buf)
	msg, err := s.Next()
	if err != nil {
		t.Fatal(err)
	}
	if msg.Type != 13 || msg.ClutterFilterBypassMap == nil {
		t.Fatalf("got %+v, want decoded clutter filter bypass map", msg)
	}
	if len(msg.ClutterFilterBypassMap.Segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(msg.ClutterFilterBypassMap.Segments))
	}
	if msg.ClutterFilterBypassMap.Segments[0].ElevationSegmentNumber != 3 {
		t.Errorf("ElevationSegmentNumber = %d, want 3", msg.ClutterFilterBypassMap.Segments[0].ElevationSegmentNumber)
	}
}

func TestMessageStreamRejectsOutOfOrderSegments(t *testing.T) {
	var buf bytes.Buffer
	writeFrame(t, &buf, MessageHeader{
		MessageType: 13, IDSequenceNumber: 7,
		NumMessageSegments: 3, MessageSegmentNum: 2, // should have been 1
	}, nil)

	s := NewMessageStream(&buf)
	if _, err := s.Next(); err != ErrSegmentAssembly {
		t.Errorf("Next() error = %v, want ErrSegmentAssembly", err)
	}
}
