package archive2

import (
	"encoding/binary"
	"math"
	"strings"
)

// message18IdentityHeader is the 44-byte identity block (ICD bytes 0-43)
// preceding an Adaptation Data message's ~9400 bytes of typed parameters.
type message18IdentityHeader struct {
	AdapFileName [12]byte
	AdapFormat   [4]byte
	AdapRevision [4]byte
	AdapDate     [12]byte
	AdapTime     [12]byte
}

func trimASCIIField(b []byte) string {
	return strings.TrimRight(strings.TrimSpace(string(b)), "\x00")
}

// Message18 is the RDA Adaptation Data message (ICD 2620002Y §3.2.4.16,
// Table XV): site-specific configuration for antenna/pedestal motion,
// shelter environment limits, RF path losses, and receiver calibration. The
// identity header is parsed into named fields; the roughly 9400 bytes that
// follow are kept as one flat buffer and read by ICD byte offset (ICD
// offset minus 44, since the header isn't part of that buffer) on demand —
// the message's ~230 parameters are far more than any consumer of this
// package actually needs named.
type Message18 struct {
	header message18IdentityHeader
	data   []byte
}

// NewMessage18 decodes a Message Type 18 from r, which must present the
// message's full reassembled body; Adaptation Data always spans many
// segments.
func NewMessage18(r *SegmentReader) (*Message18, error) {
	var m Message18
	if err := r.Take(&m.header); err != nil {
		return nil, err
	}

	data, err := r.ReadBytesOwned(r.RemainingTotal())
	if err != nil {
		return nil, err
	}
	m.data = data
	return &m, nil
}

// AdapFileName is the name of the adaptation data file (ICD bytes 0-11).
func (m *Message18) AdapFileName() string { return trimASCIIField(m.header.AdapFileName[:]) }

// AdapFormat is the adaptation data file's format tag (ICD bytes 12-15).
func (m *Message18) AdapFormat() string { return trimASCIIField(m.header.AdapFormat[:]) }

// AdapRevision is the adaptation data file's revision (ICD bytes 16-19).
func (m *Message18) AdapRevision() string { return trimASCIIField(m.header.AdapRevision[:]) }

// AdapDate is the adaptation data file's last-modified date, "mm/dd/yy"
// (ICD bytes 20-31).
func (m *Message18) AdapDate() string { return trimASCIIField(m.header.AdapDate[:]) }

// AdapTime is the adaptation data file's last-modified time, "hh:mm:ss"
// (ICD bytes 32-43).
func (m *Message18) AdapTime() string { return trimASCIIField(m.header.AdapTime[:]) }

func (m *Message18) real4(offset int) (float32, bool) {
	if offset < 0 || offset+4 > len(m.data) {
		return 0, false
	}
	bits := binary.BigEndian.Uint32(m.data[offset : offset+4])
	return math.Float32frombits(bits), true
}

// LowerPreLimitDegrees is the lower pre-limit switch angle (ICD bytes
// 44-47).
func (m *Message18) LowerPreLimitDegrees() (float32, bool) { return m.real4(0) }

// AzimuthEncoderLatencySeconds is the azimuth encoder measurement latency
// (ICD bytes 48-51).
func (m *Message18) AzimuthEncoderLatencySeconds() (float32, bool) { return m.real4(4) }

// UpperPreLimitDegrees is the upper pre-limit switch angle (ICD bytes
// 52-55).
func (m *Message18) UpperPreLimitDegrees() (float32, bool) { return m.real4(8) }

// ElevationEncoderLatencySeconds is the elevation encoder measurement
// latency (ICD bytes 56-59).
func (m *Message18) ElevationEncoderLatencySeconds() (float32, bool) { return m.real4(12) }

// ParkAzimuthDegrees is the pedestal's park position in azimuth (ICD bytes
// 60-63).
func (m *Message18) ParkAzimuthDegrees() (float32, bool) { return m.real4(16) }

// ParkElevationDegrees is the pedestal's park position in elevation (ICD
// bytes 64-67).
func (m *Message18) ParkElevationDegrees() (float32, bool) { return m.real4(20) }

// Raw returns the full adaptation data body (ICD bytes 44 onward) for
// fields this parser does not name individually.
func (m *Message18) Raw() []byte { return m.data }
