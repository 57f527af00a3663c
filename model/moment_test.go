package model

import "testing"

func TestMomentValuesStandard(t *testing.T) {
	// gates: below-threshold, range-folded, and one real value
	raw := []byte{0, 1, 20}
	block := NewMomentDataBlock(3, 0, 250, 8, 2.0, 64.0, raw)
	values := NewMomentData(block).Values()

	if values[0].Kind != MomentValueBelowThreshold {
		t.Errorf("gate 0 kind = %v, want BelowThreshold", values[0].Kind)
	}
	if values[1].Kind != MomentValueRangeFolded {
		t.Errorf("gate 1 kind = %v, want RangeFolded", values[1].Kind)
	}
	want := (float32(20) - 64.0) / 2.0
	if values[2].Kind != MomentValueNumeric || values[2].Value != want {
		t.Errorf("gate 2 = %+v, want numeric %v", values[2], want)
	}
}

func TestMomentValuesZeroScalePassesThrough(t *testing.T) {
	block := NewMomentDataBlock(1, 0, 250, 8, 0, 0, []byte{42})
	values := NewMomentData(block).Values()
	if values[0].Kind != MomentValueNumeric || values[0].Value != 42 {
		t.Errorf("zero-scale gate = %+v, want numeric 42", values[0])
	}
}

func TestCFPMomentValues(t *testing.T) {
	raw := []byte{0, 1, 2, 5, 20}
	block := NewMomentDataBlock(5, 0, 250, 8, 2.0, 64.0, raw)
	values := NewCFPMomentData(block).Values()

	if !values[0].IsStatus || values[0].Status != FilterNotApplied {
		t.Errorf("gate 0 = %+v, want FilterNotApplied", values[0])
	}
	if !values[1].IsStatus || values[1].Status != PointClutterFilterApplied {
		t.Errorf("gate 1 = %+v, want PointClutterFilterApplied", values[1])
	}
	if !values[2].IsStatus || values[2].Status != DualPolOnlyFilterApplied {
		t.Errorf("gate 2 = %+v, want DualPolOnlyFilterApplied", values[2])
	}
	if !values[3].IsStatus || values[3].Status != ReservedCFPStatus || values[3].ReservedRaw != 5 {
		t.Errorf("gate 3 = %+v, want Reserved(5)", values[3])
	}
	want := (float32(20) - 64.0) / 2.0
	if values[4].IsStatus || values[4].Value != want {
		t.Errorf("gate 4 = %+v, want numeric %v", values[4], want)
	}
}

func TestSixteenBitWordDecoding(t *testing.T) {
	raw := []byte{0x00, 0x0A, 0x01, 0x00} // 10, 256
	block := NewMomentDataBlock(2, 0, 250, 16, 0, 0, raw)
	values := NewMomentData(block).Values()
	if values[0].Value != 10 || values[1].Value != 256 {
		t.Errorf("16-bit decode = %v, %v; want 10, 256", values[0].Value, values[1].Value)
	}
}
