package realtime

import (
	"context"
	"encoding/binary"
	"fmt"
	"testing"
	"time"

	"github.com/wx88d/nexrad/archive2"
	"github.com/wx88d/nexrad/objectstore"
)

func startChunkBytes(t *testing.T) []byte {
	t.Helper()
	var buf []byte
	w := newBufWriter(&buf)
	vh := archive2.VolumeHeaderRecord{}
	copy(vh.TapeFilename[:], "AR2V0006")
	copy(vh.ExtensionNumber[:], "001")
	copy(vh.ICAO[:], "KMPX")
	if err := binary.Write(w, binary.BigEndian, vh); err != nil {
		t.Fatal(err)
	}
	return buf
}

// newBufWriter is a tiny adapter so binary.Write can append into a plain
// []byte without pulling in bytes.Buffer boilerplate at each call site.
func newBufWriter(buf *[]byte) *sliceWriter { return &sliceWriter{buf: buf} }

type sliceWriter struct{ buf *[]byte }

func (w *sliceWriter) Write(p []byte) (int, error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}

func putChunk(client *objectstore.MemClient, site string, volume VolumeIndex, id ChunkIdentifier, data []byte) {
	key := fmt.Sprintf("%s/%s/%s", site, volume, id.Name())
	client.Put(objectstore.Object{Key: key}, data)
}

func TestChunkIteratorDiscoversStartAndAdvances(t *testing.T) {
	client := objectstore.NewMemClient()
	volume, _ := NewVolumeIndex(5)
	base := time.Date(2024, 5, 1, 13, 45, 30, 0, time.UTC)

	startID := NewChunkIdentifier("KMPX", volume, base, 1, ChunkStartType, nil)
	putChunk(client, "KMPX", volume, startID, startChunkBytes(t))

	it, err := Start(context.Background(), client, "KMPX")
	if err != nil {
		t.Fatal(err)
	}
	if it.Current().Sequence != 1 || it.Current().ChunkType != ChunkStartType {
		t.Fatalf("Current() = %+v, want the start chunk", it.Current())
	}

	// no sequence-2 chunk exists yet, so TryNext should exhaust retries and
	// report (nil, nil) rather than erroring.
	it2, err := StartWithPolicies(context.Background(), client, "KMPX",
		RetryPolicy{MaxAttempts: 1, Delay: time.Millisecond},
		RetryPolicy{MaxAttempts: 1, Delay: time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	dc, err := it2.TryNext(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if dc != nil {
		t.Fatalf("TryNext() = %+v, want nil (no chunk available yet)", dc)
	}

	// now publish sequence 2 (same volume DateTimePrefix, as all chunks in a
	// volume share it) and retry
	nextID := NewChunkIdentifier("KMPX", volume, base, 2, ChunkIntermediateType, nil)
	putChunk(client, "KMPX", volume, nextID, append([]byte{0, 0, 0, 0}, []byte("BZplaceholder")...))

	dc, err = it2.TryNext(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if dc == nil || dc.Identifier.Sequence != 2 {
		t.Fatalf("TryNext() = %+v, want sequence 2", dc)
	}
}
