package archive2

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func buildMessage31Bytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer

	header := Message31Header{
		AzimuthNumber:   12,
		AzimuthAngle:    45.5,
		ElevationNumber: 1,
		ElevationAngle:  0.5,
		RadialStatus:    radialStatusIntermediateRadialData,
		DataBlockCount:  1,
	}
	copy(header.RadarIdentifier[:], "KMPX")
	if err := binary.Write(&buf, binary.BigEndian, header); err != nil {
		t.Fatal(err)
	}

	// default pointer count (build unset -> defaultPointerCount)
	if err := binary.Write(&buf, binary.BigEndian, make([]uint32, defaultPointerCount)); err != nil {
		t.Fatal(err)
	}

	var db dataBlock
	db.DataBlockType[0] = 'D'
	copy(db.DataName[:], "REF")
	if err := binary.Write(&buf, binary.BigEndian, db); err != nil {
		t.Fatal(err)
	}

	moment := genericDataMoment{
		NumberDataMomentGates: 4,
		DataWordSize:          8,
		Scale:                 2,
		Offset:                1,
	}
	if err := binary.Write(&buf, binary.BigEndian, moment); err != nil {
		t.Fatal(err)
	}
	buf.Write([]byte{0, 1, 5, 255}) // below-threshold, range-folded, then two real gates

	return buf.Bytes()
}

func TestNewMessage31DecodesRadialAndMoment(t *testing.T) {
	data := buildMessage31Bytes(t)
	radial, _, err := NewMessage31(bytes.NewReader(data), BuildNumber(0))
	if err != nil {
		t.Fatal(err)
	}

	if radial.AzimuthNumber != 12 || radial.ElevationNumber != 1 {
		t.Errorf("radial = %+v, unexpected header fields", radial)
	}
	if radial.Reflectivity == nil {
		t.Fatal("expected Reflectivity moment to be populated")
	}

	values := radial.Reflectivity.Values()
	if len(values) != 4 {
		t.Fatalf("got %d gate values, want 4", len(values))
	}
	if values[0].Kind.String() != "below-threshold" {
		t.Errorf("gate 0 = %v, want below-threshold", values[0].Kind)
	}
	if values[1].Kind.String() != "range-folded" {
		t.Errorf("gate 1 = %v, want range-folded", values[1].Kind)
	}
	// raw=5 -> (5-1)/2 = 2.0
	if values[2].Kind.String() != "numeric" || values[2].Value != 2.0 {
		t.Errorf("gate 2 = %+v, want numeric 2.0", values[2])
	}
}
