package realtime

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/wx88d/nexrad/archive2"
)

func TestNewChunkClassifiesStartChunk(t *testing.T) {
	var buf bytes.Buffer
	vh := archive2.VolumeHeaderRecord{}
	copy(vh.TapeFilename[:], "AR2V0006")
	copy(vh.ExtensionNumber[:], "001")
	copy(vh.ICAO[:], "KMPX")
	if err := binary.Write(&buf, binary.BigEndian, vh); err != nil {
		t.Fatal(err)
	}

	chunk, err := NewChunk(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if chunk.Start == nil || chunk.IntermediateOrEnd != nil {
		t.Fatalf("got %+v, want a classified start chunk", chunk)
	}
	if chunk.Start.VolumeHeader.Site() != "KMPX" {
		t.Errorf("Site() = %q, want KMPX", chunk.Start.VolumeHeader.Site())
	}
}

func TestNewChunkClassifiesIntermediateChunk(t *testing.T) {
	data := append([]byte{0, 0, 0, 0}, []byte("BZsomecompressedpayload")...)

	chunk, err := NewChunk(data)
	if err != nil {
		t.Fatal(err)
	}
	if chunk.IntermediateOrEnd == nil || chunk.Start != nil {
		t.Fatalf("got %+v, want a classified intermediate/end chunk", chunk)
	}
	if chunk.IntermediateOrEnd.Size != int32(len(data)) {
		t.Errorf("Size = %d, want %d", chunk.IntermediateOrEnd.Size, len(data))
	}
}

func TestNewChunkRejectsUnrecognizedData(t *testing.T) {
	if _, err := NewChunk([]byte{1, 2}); err == nil {
		t.Error("expected an error for unrecognized, too-short chunk data")
	}
}
