package realtime

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/wx88d/nexrad/model"
	"github.com/wx88d/nexrad/objectstore"
)

// RetryPolicy governs how long ChunkIterator waits, and how many times it
// retries, when a chunk it expects has not appeared in the object store
// yet (the RDA may simply not have uploaded it).
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryPolicy is a conservative policy suitable for polling a live
// feed: five attempts, two seconds apart.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 5, Delay: 2 * time.Second}

// RetryState tracks in-progress retry attempts against a RetryPolicy.
type RetryState struct {
	policy   RetryPolicy
	attempts int
}

// NewRetryState starts a fresh retry sequence under policy.
func NewRetryState(policy RetryPolicy) *RetryState {
	return &RetryState{policy: policy}
}

// Exhausted reports whether every attempt permitted by the policy has been
// used.
func (s *RetryState) Exhausted() bool {
	return s.attempts >= s.policy.MaxAttempts
}

// Advance records one more attempt and sleeps for the policy's delay,
// returning early if ctx is canceled.
func (s *RetryState) Advance(ctx context.Context) error {
	s.attempts++
	select {
	case <-time.After(s.policy.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// iteratorState discriminates whether the iterator still needs to locate
// the start of a volume, or is positioned on a known current chunk.
type iteratorState int

const (
	stateNeedVolumeStart iteratorState = iota
	stateReady
)

// DownloadedChunk is a chunk that has been fetched and decoded, along with
// the identifier used to fetch it and how many attempts it took.
type DownloadedChunk struct {
	Identifier ChunkIdentifier
	Chunk      Chunk
	Attempts   int
}

// ChunkIterator pulls chunks for one site's live volume scan in order,
// discovering the current volume on Start and then following the chunk
// sequence until a volume's End chunk, at which point it rolls over to the
// next volume automatically.
type ChunkIterator struct {
	client objectstore.Client
	site   string

	state   iteratorState
	current ChunkIdentifier

	vcp     *model.VolumeCoveragePattern
	mapper  *ElevationChunkMapper
	timing  *ChunkTimingStats

	downloadPolicy  RetryPolicy
	discoveryPolicy RetryPolicy

	lastChunkTime time.Time
}

// Start begins iterating a site's current volume using default retry
// policies.
func Start(ctx context.Context, client objectstore.Client, site string) (*ChunkIterator, error) {
	return StartWithPolicies(ctx, client, site, DefaultRetryPolicy, DefaultRetryPolicy)
}

// StartWithPolicies begins iterating a site's current volume, using
// downloadPolicy for individual chunk fetches and discoveryPolicy for
// locating a volume's Start chunk.
func StartWithPolicies(ctx context.Context, client objectstore.Client, site string, downloadPolicy, discoveryPolicy RetryPolicy) (*ChunkIterator, error) {
	it := &ChunkIterator{
		client:          client,
		site:            site,
		timing:          NewChunkTimingStats(),
		downloadPolicy:  downloadPolicy,
		discoveryPolicy: discoveryPolicy,
	}

	if err := it.fetchInitialChunks(ctx); err != nil {
		return nil, err
	}
	return it, nil
}

// FromChunk resumes iteration from a known chunk identifier, skipping
// discovery of the volume's start entirely.
func FromChunk(client objectstore.Client, site string, from ChunkIdentifier) *ChunkIterator {
	return &ChunkIterator{
		client:          client,
		site:            site,
		state:           stateReady,
		current:         from,
		timing:          NewChunkTimingStats(),
		downloadPolicy:  DefaultRetryPolicy,
		discoveryPolicy: DefaultRetryPolicy,
	}
}

func (it *ChunkIterator) fetchInitialChunks(ctx context.Context) error {
	latestID, latest, err := it.fetchLatestChunkInVolume(ctx)
	if err != nil {
		return err
	}

	if latest.Start != nil {
		it.vcp = extractVCP(latest)
		it.mapper = NewElevationChunkMapper(it.vcp)
		it.state = stateReady
		it.current = latestID
		return nil
	}

	// the latest chunk wasn't a Start chunk, so fetch sequence 1 of the
	// same volume separately to recover the VCP.
	startID := latestID
	startID.Sequence = 1
	startID.ChunkType = ChunkStartType

	startChunk, err := it.downloadChunk(ctx, startID)
	if err != nil {
		return fmt.Errorf("realtime: fetching volume start chunk for VCP: %w", err)
	}

	it.vcp = extractVCP(startChunk)
	it.mapper = NewElevationChunkMapper(it.vcp)
	it.state = stateReady
	it.current = latestID
	return nil
}

func (it *ChunkIterator) fetchLatestChunkInVolume(ctx context.Context) (ChunkIdentifier, Chunk, error) {
	prefix := it.site + "/"
	objects, err := it.client.List(ctx, prefix)
	if err != nil {
		return ChunkIdentifier{}, Chunk{}, err
	}
	if len(objects) == 0 {
		return ChunkIdentifier{}, Chunk{}, fmt.Errorf("realtime: no chunks found for site %s", it.site)
	}

	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	last := objects[len(objects)-1]

	id, chunk, err := it.downloadChunkByKey(ctx, last.Key)
	if err != nil {
		return ChunkIdentifier{}, Chunk{}, err
	}
	return id, chunk, nil
}

func extractVCP(c Chunk) *model.VolumeCoveragePattern {
	if c.Start != nil {
		return c.Start.VCP
	}
	return nil
}

// Current returns the most recently fetched chunk's identifier.
func (it *ChunkIterator) Current() ChunkIdentifier { return it.current }

// VCP returns the volume coverage pattern in effect for the current
// volume, if known.
func (it *ChunkIterator) VCP() *model.VolumeCoveragePattern { return it.vcp }

// ElevationMapper returns the iterator's elevation-chunk mapper.
func (it *ChunkIterator) ElevationMapper() *ElevationChunkMapper { return it.mapper }

// TimingStats returns the accumulated chunk timing statistics.
func (it *ChunkIterator) TimingStats() *ChunkTimingStats { return it.timing }

// NextExpectedTime estimates when the next chunk will become available,
// based on recorded timing statistics for the current chunk's
// characteristics.
func (it *ChunkIterator) NextExpectedTime() (time.Time, bool) {
	if it.mapper == nil || it.lastChunkTime.IsZero() {
		return time.Time{}, false
	}
	chars := it.mapper.Characteristics(it.current.ChunkType, it.current.Sequence)
	return it.timing.EstimateAvailabilityTime(chars, it.lastChunkTime), true
}

// TimeUntilNext is a convenience wrapper around NextExpectedTime that
// returns a duration relative to now rather than an absolute time.
func (it *ChunkIterator) TimeUntilNext(now time.Time) (time.Duration, bool) {
	t, ok := it.NextExpectedTime()
	if !ok {
		return 0, false
	}
	if t.Before(now) {
		return 0, true
	}
	return t.Sub(now), true
}

// TryNext attempts to fetch and decode the next chunk in sequence. It
// returns (nil, nil) if the chunk is not yet available after exhausting
// its retry policy (a normal condition when polling a live feed faster
// than the RDA produces data), and a non-nil error only for unexpected
// failures.
func (it *ChunkIterator) TryNext(ctx context.Context) (*DownloadedChunk, error) {
	next := it.current.NextChunk()

	if next.IsNewVolume {
		return it.tryFetchVolumeStart(ctx, next.NextVolume)
	}

	// Every chunk after a volume's Start is Intermediate except the final
	// one, whose ordinal position cannot be known in advance; guess
	// Intermediate first and fall back to End at the same sequence once
	// that guess's retries are exhausted.
	wantID := it.current
	wantID.Sequence = next.Sequence
	wantID.ChunkType = ChunkIntermediateType

	downloaded, err := it.tryFetchChunk(ctx, wantID, it.downloadPolicy)
	if err != nil {
		return nil, err
	}
	if downloaded == nil {
		wantID.ChunkType = ChunkEndType
		downloaded, err = it.tryFetchChunk(ctx, wantID, it.downloadPolicy)
		if err != nil || downloaded == nil {
			return downloaded, err
		}
	}

	it.recordArrival(downloaded)
	return downloaded, nil
}

func (it *ChunkIterator) tryFetchVolumeStart(ctx context.Context, volume VolumeIndex) (*DownloadedChunk, error) {
	state := NewRetryState(it.discoveryPolicy)

	for {
		id, chunk, err := it.fetchLatestChunkInVolume(ctx)
		if err == nil {
			it.vcp = extractVCP(chunk)
			it.mapper = NewElevationChunkMapper(it.vcp)
			dc := &DownloadedChunk{Identifier: id, Chunk: chunk, Attempts: state.attempts + 1}
			it.recordArrival(dc)
			return dc, nil
		}

		if state.Exhausted() {
			return nil, nil
		}
		if err := state.Advance(ctx); err != nil {
			return nil, err
		}
	}
}

func (it *ChunkIterator) tryFetchChunk(ctx context.Context, id ChunkIdentifier, policy RetryPolicy) (*DownloadedChunk, error) {
	state := NewRetryState(policy)

	for {
		chunk, err := it.downloadChunk(ctx, id)
		if err == nil {
			return &DownloadedChunk{Identifier: id, Chunk: chunk, Attempts: state.attempts + 1}, nil
		}
		if err != objectstore.ErrNotFound {
			return nil, err
		}
		if state.Exhausted() {
			return nil, nil
		}
		if err := state.Advance(ctx); err != nil {
			return nil, err
		}
	}
}

func (it *ChunkIterator) downloadChunk(ctx context.Context, id ChunkIdentifier) (Chunk, error) {
	key := fmt.Sprintf("%s/%s/%s", it.site, id.Volume, id.Name())
	return it.getAndDecode(ctx, key)
}

func (it *ChunkIterator) downloadChunkByKey(ctx context.Context, key string) (ChunkIdentifier, Chunk, error) {
	chunk, err := it.getAndDecode(ctx, key)
	if err != nil {
		return ChunkIdentifier{}, Chunk{}, err
	}

	id, err := identifierFromKey(it.site, key)
	if err != nil {
		return ChunkIdentifier{}, Chunk{}, err
	}
	return id, chunk, nil
}

func (it *ChunkIterator) getAndDecode(ctx context.Context, key string) (Chunk, error) {
	rc, err := it.client.Get(ctx, key)
	if err != nil {
		return Chunk{}, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return Chunk{}, err
	}

	return NewChunk(data)
}

// identifierFromKey recovers a ChunkIdentifier from a full object key of
// the form "site/volume/name".
func identifierFromKey(site, key string) (ChunkIdentifier, error) {
	parts := strings.Split(key, "/")
	if len(parts) != 3 {
		return ChunkIdentifier{}, fmt.Errorf("realtime: object key %q does not have the expected site/volume/name layout", key)
	}

	volNum, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil {
		return ChunkIdentifier{}, fmt.Errorf("realtime: object key %q has invalid volume segment: %w", key, err)
	}
	volume, err := NewVolumeIndex(uint16(volNum))
	if err != nil {
		return ChunkIdentifier{}, err
	}

	return ParseChunkName(site, volume, parts[2])
}

func (it *ChunkIterator) recordArrival(dc *DownloadedChunk) {
	now := time.Now()
	if !it.lastChunkTime.IsZero() && it.mapper != nil {
		chars := it.mapper.Characteristics(dc.Identifier.ChunkType, dc.Identifier.Sequence)
		it.timing.AddTiming(chars, now.Sub(it.lastChunkTime), dc.Attempts)
	}
	it.lastChunkTime = now
	it.current = dc.Identifier

	if it.mapper != nil && dc.Chunk.Start != nil {
		for _, radial := range dc.Chunk.Start.Radials {
			it.mapper.Observe(uint32(dc.Identifier.Sequence), radial.ElevationNumber)
		}
	}
}
