package realtime

import (
	"bytes"
	"fmt"

	"github.com/wx88d/nexrad/archive2"
)

// ar2Magic is the leading bytes of an Archive II volume header's tape
// filename field ("AR2V...").
var ar2Magic = []byte("AR2")

// bz2Marker is the two-byte bzip2 stream marker ("BZ") found at a fixed
// offset in every non-Start chunk, which are raw LDM records rather than
// full Archive II files.
var bz2Marker = []byte("BZ")

// Chunk is the decoded payload of a single downloaded chunk object. Exactly
// one field is populated, chosen by what the chunk's bytes look like: a
// Start chunk is an entire (small) Archive II file including its volume
// header, while Intermediate and End chunks are bare LDM records.
type Chunk struct {
	Start              *archive2.Archive2
	IntermediateOrEnd  *archive2.LDMRecord
}

// NewChunk classifies and decodes a chunk's raw bytes.
func NewChunk(data []byte) (Chunk, error) {
	if len(data) >= 3 && bytes.Equal(data[:3], ar2Magic) {
		ar2, err := archive2.NewDecoder(bytes.NewReader(data)).Decode()
		if err != nil {
			return Chunk{}, fmt.Errorf("realtime: decoding start chunk: %w", err)
		}
		return Chunk{Start: ar2}, nil
	}

	if len(data) >= 6 && bytes.Equal(data[4:6], bz2Marker) {
		return Chunk{IntermediateOrEnd: &archive2.LDMRecord{
			Size:           int32(len(data)),
			MetaDataRecord: data,
		}}, nil
	}

	return Chunk{}, fmt.Errorf("realtime: chunk data (%d bytes) matches neither start nor intermediate/end format", len(data))
}
