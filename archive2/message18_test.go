package archive2

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func buildMessage18Bytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer

	header := message18IdentityHeader{}
	copy(header.AdapFileName[:], "ADAPT.DAT")
	copy(header.AdapFormat[:], "R1")
	copy(header.AdapRevision[:], "10")
	copy(header.AdapDate[:], "01/02/26")
	copy(header.AdapTime[:], "12:00:00")
	if err := binary.Write(&buf, binary.BigEndian, header); err != nil {
		t.Fatal(err)
	}

	var real4 [4]byte
	binary.BigEndian.PutUint32(real4[:], math.Float32bits(1.5))
	buf.Write(real4[:]) // lower_pre_limit at data offset 0
	buf.Write(make([]byte, 64))

	return buf.Bytes()
}

func TestNewMessage18DecodesIdentityAndParameters(t *testing.T) {
	data := buildMessage18Bytes(t)
	m, err := NewMessage18(NewContiguousReader(data))
	if err != nil {
		t.Fatal(err)
	}

	if m.AdapFileName() != "ADAPT.DAT" {
		t.Errorf("AdapFileName() = %q, want ADAPT.DAT", m.AdapFileName())
	}
	if m.AdapFormat() != "R1" {
		t.Errorf("AdapFormat() = %q, want R1", m.AdapFormat())
	}

	v, ok := m.LowerPreLimitDegrees()
	if !ok || v != 1.5 {
		t.Errorf("LowerPreLimitDegrees() = (%v, %v), want (1.5, true)", v, ok)
	}

	if _, ok := m.real4(len(m.Raw())); ok {
		t.Error("real4() should report false past the end of the buffer")
	}
}
