package archive2

import "testing"

func TestNewMessage6DecodesCommand(t *testing.T) {
	raw := make([]byte, message6Size)
	raw[0] = 0x00
	raw[1] = 0x03 // command code 3

	m, err := NewMessage6(NewContiguousReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	if m.Command() != 3 {
		t.Errorf("Command() = %d, want 3", m.Command())
	}
	if len(m.Raw()) != message6Size {
		t.Errorf("Raw() len = %d, want %d", len(m.Raw()), message6Size)
	}
}
