package realtime

import (
	"sync"

	"github.com/wx88d/nexrad/model"
)

// ElevationChunkMapper learns, as chunks are decoded, which elevation cut
// of the active volume coverage pattern each chunk sequence number belongs
// to, so that timing statistics can be grouped by the characteristics of
// the cut being scanned rather than by raw sequence number (which is
// meaningless across volumes and VCPs).
type ElevationChunkMapper struct {
	vcp *model.VolumeCoveragePattern

	mu       sync.Mutex
	elevOf   map[uint32]uint8
}

// NewElevationChunkMapper builds a mapper bound to vcp.
func NewElevationChunkMapper(vcp *model.VolumeCoveragePattern) *ElevationChunkMapper {
	return &ElevationChunkMapper{vcp: vcp, elevOf: make(map[uint32]uint8)}
}

// Observe records that chunk sequence belongs to elevationNumber (1-based,
// matching Message 31's ElevationNumber field), learned from decoding a
// radial out of that chunk.
func (m *ElevationChunkMapper) Observe(sequence uint32, elevationNumber uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.elevOf[sequence] = elevationNumber
}

// CutFor returns the elevation cut a previously-observed sequence number
// belongs to.
func (m *ElevationChunkMapper) CutFor(sequence uint32) (model.ElevationCut, bool) {
	m.mu.Lock()
	elevationNumber, ok := m.elevOf[sequence]
	m.mu.Unlock()
	if !ok || m.vcp == nil {
		return model.ElevationCut{}, false
	}

	idx := int(elevationNumber) - 1
	if idx < 0 || idx >= len(m.vcp.ElevationCuts) {
		return model.ElevationCut{}, false
	}
	return m.vcp.ElevationCuts[idx], true
}

// Characteristics derives the ChunkCharacteristics for a chunk, falling
// back to an unknown waveform/channel configuration if the sequence's
// elevation cut has not yet been observed.
func (m *ElevationChunkMapper) Characteristics(chunkType ChunkType, sequence uint32) ChunkCharacteristics {
	cut, ok := m.CutFor(sequence)
	if !ok {
		return ChunkCharacteristics{ChunkType: chunkType, WaveformType: model.UnknownWaveform, ChannelConfiguration: model.UnknownPhase}
	}
	return ChunkCharacteristics{
		ChunkType:            chunkType,
		WaveformType:          cut.WaveformType,
		ChannelConfiguration: cut.ChannelConfiguration,
	}
}
