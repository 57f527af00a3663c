package realtime

import (
	"time"

	"github.com/wx88d/nexrad/model"
)

// maxTimingSamples bounds how many timing samples are kept per
// characteristics key; older samples are evicted first-in-first-out.
const maxTimingSamples = 10

// ChunkCharacteristics groups chunks that should behave similarly in
// timing: same role in the volume, same waveform, same channel
// configuration. A SAILS-cut intermediate chunk, for instance, arrives on
// a very different cadence than a routine surveillance-cut one.
type ChunkCharacteristics struct {
	ChunkType            ChunkType
	WaveformType         model.WaveformType
	ChannelConfiguration model.ChannelConfiguration
}

// timingSample is one observed (duration, attempts) pair: how long a chunk
// with some ChunkCharacteristics took to appear, and how many download
// attempts it took the iterator to find it.
type timingSample struct {
	duration time.Duration
	attempts int
}

// ChunkTimingStats accumulates recent inter-chunk arrival timings, keyed by
// ChunkCharacteristics, to estimate when the next chunk of a given kind
// should become available.
type ChunkTimingStats struct {
	samples map[ChunkCharacteristics][]timingSample
}

// NewChunkTimingStats returns an empty ChunkTimingStats.
func NewChunkTimingStats() *ChunkTimingStats {
	return &ChunkTimingStats{samples: make(map[ChunkCharacteristics][]timingSample)}
}

// AddTiming records how long it took to produce a chunk with the given
// characteristics, and how many download attempts that took, evicting the
// oldest sample if the bound is exceeded.
func (s *ChunkTimingStats) AddTiming(c ChunkCharacteristics, d time.Duration, attempts int) {
	list := append(s.samples[c], timingSample{duration: d, attempts: attempts})
	if len(list) > maxTimingSamples {
		list = list[len(list)-maxTimingSamples:]
	}
	s.samples[c] = list
}

// MeanDuration returns the mean recorded duration for c, or ok false if no
// samples have been recorded yet.
func (s *ChunkTimingStats) MeanDuration(c ChunkCharacteristics) (time.Duration, bool) {
	list := s.samples[c]
	if len(list) == 0 {
		return 0, false
	}
	var total time.Duration
	for _, sm := range list {
		total += sm.duration
	}
	return total / time.Duration(len(list)), true
}

// MeanAttempts returns the mean recorded attempt count for c, or ok false if
// no samples have been recorded yet.
func (s *ChunkTimingStats) MeanAttempts(c ChunkCharacteristics) (float64, bool) {
	list := s.samples[c]
	if len(list) == 0 {
		return 0, false
	}
	total := 0
	for _, sm := range list {
		total += sm.attempts
	}
	return float64(total) / float64(len(list)), true
}

// defaultProcessingTime is the fallback estimate used for a characteristics
// key with no recorded samples yet: a fixed table keyed by waveform type,
// with contiguous-surveillance cuts fastest and staggered-pulse-pair cuts
// slowest to complete a full elevation's worth of chunks. Waveforms the
// table doesn't single out (batch, unknown) get a middling default.
func defaultProcessingTime(c ChunkCharacteristics) time.Duration {
	switch c.WaveformType {
	case model.ContiguousSurveillance:
		return 4 * time.Second
	case model.ContiguousDopplerWithAmbiguityRes, model.ContiguousDopplerWithoutAmbiguityRes:
		return 7 * time.Second
	case model.StaggeredPulsePair:
		return 11 * time.Second
	default:
		return 5 * time.Second
	}
}

// EstimateProcessingTime predicts how long a chunk with characteristics c
// should take to appear. A volume's Start chunk is always estimated at a
// fixed 10 seconds, since it carries the whole prior elevation's wrap-up
// rather than one cut's worth of data. Otherwise, once samples exist for c
// the estimate is mean_duration plus one second per retry beyond the
// first (mean_attempts - 1); before any samples are recorded it falls back
// to defaultProcessingTime.
func (s *ChunkTimingStats) EstimateProcessingTime(c ChunkCharacteristics) time.Duration {
	if c.ChunkType == ChunkStartType {
		return 10 * time.Second
	}

	duration, ok := s.MeanDuration(c)
	if !ok {
		return defaultProcessingTime(c)
	}
	attempts, _ := s.MeanAttempts(c)
	return duration + time.Duration((attempts-1)*float64(time.Second))
}

// EstimateAvailabilityTime predicts when the next chunk with the given
// characteristics will be available, given the time the previous one of
// that kind became available.
func (s *ChunkTimingStats) EstimateAvailabilityTime(c ChunkCharacteristics, previous time.Time) time.Time {
	return previous.Add(s.EstimateProcessingTime(c))
}
