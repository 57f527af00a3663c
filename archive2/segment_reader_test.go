package archive2

import "testing"

func TestSegmentReaderTakeCrossesSegmentBoundary(t *testing.T) {
	segments := [][]byte{
		{0x00, 0x01},
		{0x02, 0x03},
	}
	r := NewSegmentedSliceReader(segments)

	var a uint16
	if err := r.Take(&a); err != nil {
		t.Fatal(err)
	}
	if a != 1 {
		t.Errorf("first halfword = %d, want 1", a)
	}

	var b uint16
	if err := r.Take(&b); err != nil {
		t.Fatal(err)
	}
	if b != 0x0203 {
		t.Errorf("second halfword (crosses segment boundary) = %#x, want 0x0203", b)
	}
}

func TestSegmentReaderTakeSlice(t *testing.T) {
	r := NewSegmentedSliceReader([][]byte{{1, 2, 3}, {4, 5}})

	got, err := r.TakeSlice(4)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{1, 2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("TakeSlice() = %v, want %v", got, want)
		}
	}
	if r.RemainingTotal() != 1 {
		t.Errorf("RemainingTotal() = %d, want 1", r.RemainingTotal())
	}
}

func TestSegmentReaderAdvanceAndRemaining(t *testing.T) {
	r := NewSegmentedSliceReader([][]byte{{1, 2, 3}, {4, 5, 6, 7}})

	if r.RemainingInCurrentSegment() != 3 {
		t.Errorf("RemainingInCurrentSegment() = %d, want 3", r.RemainingInCurrentSegment())
	}
	if r.RemainingTotal() != 7 {
		t.Errorf("RemainingTotal() = %d, want 7", r.RemainingTotal())
	}

	if err := r.Advance(5); err != nil {
		t.Fatal(err)
	}
	if r.RemainingTotal() != 2 {
		t.Errorf("after Advance(5), RemainingTotal() = %d, want 2", r.RemainingTotal())
	}

	r.AdvanceToNextSegment()
	if r.RemainingTotal() != 0 {
		t.Errorf("after AdvanceToNextSegment at last segment, RemainingTotal() = %d, want 0", r.RemainingTotal())
	}
}

func TestSegmentReaderReadBytesOwnedCrossesSegments(t *testing.T) {
	r := NewSegmentedSliceReader([][]byte{{1, 2}, {3}, {4, 5, 6}})

	got, err := r.ReadBytesOwned(5)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("ReadBytesOwned() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ReadBytesOwned() = %v, want %v", got, want)
		}
	}
	if r.RemainingTotal() != 1 {
		t.Errorf("RemainingTotal() after ReadBytesOwned = %d, want 1", r.RemainingTotal())
	}
}

func TestSegmentReaderExhausted(t *testing.T) {
	r := NewSegmentedSliceReader([][]byte{{1, 2}})
	if _, err := r.ReadBytesOwned(5); err != ErrSegmentReaderExhausted {
		t.Errorf("ReadBytesOwned() err = %v, want ErrSegmentReaderExhausted", err)
	}
}

func TestContiguousReader(t *testing.T) {
	r := NewContiguousReader([]byte{1, 2, 3, 4})
	if r.RemainingTotal() != 4 {
		t.Errorf("RemainingTotal() = %d, want 4", r.RemainingTotal())
	}
	var v uint32
	if err := r.Take(&v); err != nil {
		t.Fatal(err)
	}
	if v != 0x01020304 {
		t.Errorf("Take() = %#x, want 0x01020304", v)
	}
}
