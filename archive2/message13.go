package archive2

// clutterBypassRadials and clutterBypassZonesPerRadial give the Clutter
// Filter Bypass Map's fixed shape: one bypass-enable word per range zone,
// 32 range zones per radial, 360 radials per elevation segment.
const (
	clutterBypassRadials          = 360
	clutterBypassZonesPerRadial   = 32
	clutterBypassSegmentHeaderLen = 2
	clutterBypassSegmentBodyLen   = clutterBypassRadials * clutterBypassZonesPerRadial * 2
	clutterBypassSegmentSize      = clutterBypassSegmentHeaderLen + clutterBypassSegmentBodyLen
)

// ClutterFilterBypassSegment is one elevation segment of a Clutter Filter
// Bypass Map: for each of 360 radials, 32 halfwords each flagging whether
// the clutter filter is bypassed in that range zone.
type ClutterFilterBypassSegment struct {
	ElevationSegmentNumber uint16
	Zones                  [clutterBypassRadials][clutterBypassZonesPerRadial]uint16
}

// Message13 is the Clutter Filter Bypass Map message (User 3.2.4.10): the
// set of range zones, by radial and elevation segment, where the RDA's
// clutter filter is disabled. The message is always segmented — typically
// large enough to span several 2432-byte frames — and may carry more than
// one elevation segment's worth of data back to back.
type Message13 struct {
	Segments []ClutterFilterBypassSegment
}

// NewMessage13 decodes a Message Type 13 from r, consuming one elevation
// segment's block at a time until fewer than one full segment's worth of
// bytes remain (the reassembled message is padded out to its containing
// frames, so a partial trailing segment is expected, not an error).
func NewMessage13(r *SegmentReader) (*Message13, error) {
	var m Message13
	for r.RemainingTotal() >= clutterBypassSegmentSize {
		var seg ClutterFilterBypassSegment
		if err := r.Take(&seg.ElevationSegmentNumber); err != nil {
			return nil, err
		}
		if err := r.Take(&seg.Zones); err != nil {
			return nil, err
		}
		m.Segments = append(m.Segments, seg)
	}
	return &m, nil
}
