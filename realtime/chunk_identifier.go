package realtime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ChunkIdentifier names and orders a single chunk within a volume: the site
// that produced it, the volume it belongs to, the timestamp prefix the RDA
// stamped on it, its sequence number within the volume, and its role
// (start/intermediate/end).
type ChunkIdentifier struct {
	Site             string
	Volume           VolumeIndex
	DateTimePrefix   time.Time
	Sequence         uint32
	ChunkType        ChunkType
	UploadTimestamp  *time.Time
}

// NewChunkIdentifier builds a ChunkIdentifier from its parts.
func NewChunkIdentifier(site string, volume VolumeIndex, dateTimePrefix time.Time, sequence uint32, chunkType ChunkType, uploadTimestamp *time.Time) ChunkIdentifier {
	return ChunkIdentifier{
		Site:            site,
		Volume:          volume,
		DateTimePrefix:  dateTimePrefix,
		Sequence:        sequence,
		ChunkType:       chunkType,
		UploadTimestamp: uploadTimestamp,
	}
}

// Name renders the chunk's object name, not including the site/volume
// prefix under which it is stored: "YYYYMMDD-HHMMSS-NNN-T".
func (c ChunkIdentifier) Name() string {
	return fmt.Sprintf("%s-%03d-%c",
		c.DateTimePrefix.Format("20060102-150405"),
		c.Sequence,
		c.ChunkType.Abbreviation(),
	)
}

// ParseChunkName parses a chunk's object name back into its sequence and
// chunk type components plus the timestamp prefix. site and volume are not
// recoverable from the name alone and must be supplied by the caller (they
// come from the object's key prefix).
func ParseChunkName(site string, volume VolumeIndex, name string) (ChunkIdentifier, error) {
	parts := strings.Split(name, "-")
	if len(parts) != 4 {
		return ChunkIdentifier{}, fmt.Errorf("realtime: chunk name %q missing expected dash-separated fields", name)
	}

	datePart, timePart, seqPart, typePart := parts[0], parts[1], parts[2], parts[3]

	prefix, err := time.Parse("20060102-150405", datePart+"-"+timePart)
	if err != nil {
		return ChunkIdentifier{}, fmt.Errorf("realtime: chunk name %q has invalid date/time: %w", name, err)
	}

	seq, err := strconv.ParseUint(seqPart, 10, 32)
	if err != nil {
		return ChunkIdentifier{}, fmt.Errorf("realtime: chunk name %q has non-numeric sequence: %w", name, err)
	}

	if len(typePart) != 1 {
		return ChunkIdentifier{}, fmt.Errorf("realtime: chunk name %q has invalid chunk type", name)
	}
	ct, err := ChunkTypeFromAbbreviation(typePart[0])
	if err != nil {
		return ChunkIdentifier{}, fmt.Errorf("realtime: chunk name %q: %w", name, err)
	}

	return NewChunkIdentifier(site, volume, prefix, uint32(seq), ct, nil), nil
}

// NextChunkResult discriminates whether the expected next chunk continues
// the current volume or starts a new one.
type NextChunkResult struct {
	// IsNewVolume is true when the current chunk is of type End, the final
	// one in its volume.
	IsNewVolume bool
	Sequence    uint32
	NextVolume  VolumeIndex
}

// NextChunk computes the identifying information (but not the timestamp,
// which is unknowable in advance) of the chunk expected to follow c. A
// chunk of type End is, by definition, the volume's last chunk: the next
// one belongs to the next volume, starting over at sequence 1.
func (c ChunkIdentifier) NextChunk() NextChunkResult {
	if c.ChunkType == ChunkEndType {
		return NextChunkResult{IsNewVolume: true, NextVolume: c.Volume.Next()}
	}
	return NextChunkResult{Sequence: c.Sequence + 1}
}
