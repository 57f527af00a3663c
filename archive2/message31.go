package archive2

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/wx88d/nexrad/model"
)

// pointersPerBuild is the number of 4-byte data block pointers that precede
// a Message 31's data blocks, which grew as later builds added data block
// types.
var pointersPerBuild = map[BuildNumber]int{
	18: 9,
	19: 10,
}

const defaultPointerCount = 10

// Message31Header is the non-data portion of Message 31 (User 3.2.4.17).
type Message31Header struct {
	RadarIdentifier              [4]byte // ICAO (eg KMPX for Minneapolis)
	CollectionTime               uint32  // radial data collection time in milliseconds past midnight GMT
	CollectionDate               uint16  // Julian date minus 2440586.5
	AzimuthNumber                uint16  // radial number within elevation scan
	AzimuthAngle                 float32 // azimuth angle at which radial data was collected
	CompressionIndicator         uint8   // compression method, if any, applied beyond the data header block
	Spare                        uint8
	RadialLength                 uint16 // uncompressed length of the radial in bytes including the data header block
	AzimuthResolutionSpacingCode uint8  // 1 = .5 degrees, 2 = 1 degree
	RadialStatus                 uint8
	ElevationNumber               uint8
	CutSectorNumber              uint8
	ElevationAngle               float32
	RadialSpotBlankingStatus     uint8
	AzimuthIndexingMode          uint8
	DataBlockCount               uint16
}

func (h Message31Header) String() string {
	return fmt.Sprintf("Message 31 - %s @ %v deg=%.2f tilt=%.2f",
		string(h.RadarIdentifier[:]), h.Date(), h.AzimuthAngle, h.ElevationAngle)
}

// Date is the collection time for this radial.
func (h Message31Header) Date() time.Time {
	return time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(h.CollectionDate) * time.Hour * 24).
		Add(time.Duration(h.CollectionTime) * time.Millisecond)
}

// AzimuthResolutionSpacing returns the spacing in degrees.
func (h Message31Header) AzimuthResolutionSpacing() float32 {
	if h.AzimuthResolutionSpacingCode == 1 {
		return 0.5
	}
	return 1
}

func (h Message31Header) radialStatus() model.RadialStatus {
	switch h.RadialStatus {
	case radialStatusStartOfElevationScan:
		return model.ElevationStart
	case radialStatusIntermediateRadialData:
		return model.IntermediateRadialData
	case radialStatusEndOfElevation:
		return model.ElevationEnd
	case radialStatusBeginningOfVolumeScan:
		return model.VolumeScanStart
	case radialStatusEndOfVolumeScan:
		return model.VolumeScanEnd
	case radialStatusStartNewElevation:
		return model.ElevationStartVCPFinal
	default:
		return model.IntermediateRadialData
	}
}

// dataBlock is the 4-byte tag preceding every data block (data block type
// plus a 3-character name), found at the top of tables XVII-[B-H].
type dataBlock struct {
	DataBlockType [1]byte
	DataName      [3]byte
}

// genericDataMoment is the fixed-format header shared by every moment field
// (REF, VEL, SW, ZDR, PHI, RHO, CFP); its layout does not vary with build
// number (User 3.2.4.17.2).
type genericDataMoment struct {
	Reserved                      uint32
	NumberDataMomentGates         uint16
	DataMomentRange               uint16
	DataMomentRangeSampleInterval uint16
	TOVER                         uint16
	SNRThreshold                  uint16
	ControlFlags                  uint8
	DataWordSize                  uint8
	Scale                         float32
	Offset                        float32
}

// NewMessage31 decodes a Message Type 31 (Digital Radar Data Generic
// Format) from r into a model.Radial. build selects which wire layout the
// VOL and RAD data blocks use. If the radial carries a VOL data block (only
// the first radial of a volume does), site carries the station metadata
// that block reports — latitude, longitude, and antenna/feedhorn height —
// so callers can attach it to the assembled scan without a static site
// lookup table.
func NewMessage31(r io.Reader, build BuildNumber) (radial *model.Radial, site *model.Site, err error) {
	var header Message31Header
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, nil, err
	}

	pointerCount, ok := pointersPerBuild[build]
	if !ok {
		pointerCount = defaultPointerCount
	}
	if err := binary.Read(r, binary.BigEndian, make([]uint32, pointerCount)); err != nil {
		return nil, nil, err
	}

	radial = &model.Radial{
		CollectionTime:        header.Date(),
		AzimuthNumber:         header.AzimuthNumber,
		AzimuthAngleDegrees:   header.AzimuthAngle,
		AzimuthSpacingDegrees: header.AzimuthResolutionSpacing(),
		RadialStatus:          header.radialStatus(),
		ElevationNumber:       header.ElevationNumber,
		ElevationAngleDegrees: header.ElevationAngle,
	}

	for i := uint16(0); i < header.DataBlockCount; i++ {
		var db dataBlock
		if err := binary.Read(r, binary.BigEndian, &db); err != nil {
			return nil, nil, err
		}

		name := string(db.DataName[:])
		switch name {
		case "VOL":
			vol, err := readVolumeDataBlock(r, build)
			if err != nil {
				return nil, nil, err
			}
			site = &model.Site{
				LatitudeDegrees:   float64(vol.Lat),
				LongitudeDegrees:  float64(vol.Long),
				SiteHeightMeters:  vol.SiteHeight,
				TowerHeightMeters: int16(vol.FeedhornHeight),
			}
		case "ELV":
			if _, err := readElevationDataBlock(r); err != nil {
				return nil, nil, err
			}
		case "RAD":
			if _, err := readRadialDataBlock(r, build); err != nil {
				return nil, nil, err
			}
		case "REF", "VEL", "SW ", "ZDR", "PHI", "RHO", "CFP":
			moment, err := readGenericMoment(r)
			if err != nil {
				return nil, nil, err
			}
			assignMoment(radial, name, moment)
		default:
			return nil, nil, fmt.Errorf("archive2: message 31 data block - unknown type %q", name)
		}
	}

	return radial, site, nil
}

func readGenericMoment(r io.Reader) (model.MomentDataBlock, error) {
	var m genericDataMoment
	if err := binary.Read(r, binary.BigEndian, &m); err != nil {
		return model.MomentDataBlock{}, err
	}

	size := uint32(m.NumberDataMomentGates) * uint32(m.DataWordSize) / 8
	data := make([]byte, size)
	if _, err := io.ReadFull(r, data); err != nil {
		return model.MomentDataBlock{}, err
	}

	return model.NewMomentDataBlock(
		m.NumberDataMomentGates,
		m.DataMomentRange,
		m.DataMomentRangeSampleInterval,
		m.DataWordSize,
		m.Scale,
		m.Offset,
		data,
	), nil
}

func assignMoment(radial *model.Radial, name string, block model.MomentDataBlock) {
	switch name {
	case "REF":
		md := model.NewMomentData(block)
		radial.Reflectivity = &md
	case "VEL":
		md := model.NewMomentData(block)
		radial.Velocity = &md
	case "SW ":
		md := model.NewMomentData(block)
		radial.SpectrumWidth = &md
	case "ZDR":
		md := model.NewMomentData(block)
		radial.DifferentialReflectivity = &md
	case "PHI":
		md := model.NewMomentData(block)
		radial.DifferentialPhase = &md
	case "RHO":
		md := model.NewMomentData(block)
		radial.CorrelationCoefficient = &md
	case "CFP":
		md := model.NewCFPMomentData(block)
		radial.ClutterFilterPower = &md
	}
}

// volumeDataBlock carries the fields of Message 31's VOL data block that are
// common to both the legacy (build <= 19.0, 40 byte, lrtup 44) and modern
// (lrtup 52) wire layouts; the modern layout appends extra fields after
// InitialSystemDifferentialPhase that callers needing them can add later.
type volumeDataBlock struct {
	LRTUP                          uint16
	VersionMajor                   uint8
	VersionMinor                   uint8
	Lat                            float32
	Long                           float32
	SiteHeight                     int16
	FeedhornHeight                 uint16
	CalibrationConstant            float32
	SHVTXPowerHor                  float32
	SHVTXPowerVer                  float32
	SystemDifferentialReflectivity float32
	InitialSystemDifferentialPhase float32
	VolumeCoveragePatternNumber    uint16
	ProcessingStatus               uint16
}

// readVolumeDataBlock reads the VOL data block, honoring its lrtup-prefixed
// variable length (lrtup counts the 4-byte block name and the lrtup field
// itself): whatever trails the fields we decode is skipped so the reader
// stays aligned regardless of which fields a given build adds.
func readVolumeDataBlock(r io.Reader, build BuildNumber) (volumeDataBlock, error) {
	var lrtup uint16
	if err := binary.Read(r, binary.BigEndian, &lrtup); err != nil {
		return volumeDataBlock{}, err
	}

	payload := make([]byte, int(lrtup)-6)
	if _, err := io.ReadFull(r, payload); err != nil {
		return volumeDataBlock{}, err
	}

	br := bytes.NewReader(payload)
	var block volumeDataBlock
	block.LRTUP = lrtup

	fields := []interface{}{
		&block.VersionMajor, &block.VersionMinor, &block.Lat, &block.Long,
		&block.SiteHeight, &block.FeedhornHeight, &block.CalibrationConstant,
		&block.SHVTXPowerHor, &block.SHVTXPowerVer,
		&block.SystemDifferentialReflectivity, &block.InitialSystemDifferentialPhase,
	}
	if !build.usesLegacyVolumeDataBlock() {
		fields = append(fields, &block.VolumeCoveragePatternNumber, &block.ProcessingStatus)
	}
	for _, f := range fields {
		if err := binary.Read(br, binary.BigEndian, f); err != nil {
			return volumeDataBlock{}, err
		}
	}

	return block, nil
}

type elevationDataBlock struct {
	LRTUP      uint16
	ATMOS      int16
	CalibConst float32
}

func readElevationDataBlock(r io.Reader) (elevationDataBlock, error) {
	var block elevationDataBlock
	if err := binary.Read(r, binary.BigEndian, &block); err != nil {
		return elevationDataBlock{}, err
	}
	return block, nil
}

// radialDataBlock carries the fields of Message 31's RAD data block common
// to the legacy (build <= 12.0, lrtup 20) and modern (lrtup 28, adds
// per-channel calibration constants) layouts.
type radialDataBlock struct {
	LRTUP              uint16
	UnambiguousRange   uint16
	NoiseLevelHorz     float32
	NyquistVelocity    uint16
	NoiseLevelVert     float32
	CalibConstHorzChan float32
	CalibConstVertChan float32
}

func readRadialDataBlock(r io.Reader, build BuildNumber) (radialDataBlock, error) {
	var lrtup uint16
	if err := binary.Read(r, binary.BigEndian, &lrtup); err != nil {
		return radialDataBlock{}, err
	}

	payload := make([]byte, int(lrtup)-6)
	if _, err := io.ReadFull(r, payload); err != nil {
		return radialDataBlock{}, err
	}

	br := bytes.NewReader(payload)
	var block radialDataBlock
	block.LRTUP = lrtup

	if err := binary.Read(br, binary.BigEndian, &block.UnambiguousRange); err != nil {
		return radialDataBlock{}, err
	}
	if err := binary.Read(br, binary.BigEndian, &block.NoiseLevelHorz); err != nil {
		return radialDataBlock{}, err
	}
	if err := binary.Read(br, binary.BigEndian, &block.NoiseLevelVert); err != nil {
		return radialDataBlock{}, err
	}
	if build.usesLegacyRadialDataBlock() {
		var spares [2]byte
		binary.Read(br, binary.BigEndian, &block.NyquistVelocity)
		binary.Read(br, binary.BigEndian, &spares)
		return block, nil
	}

	binary.Read(br, binary.BigEndian, &block.NyquistVelocity)
	var spares [2]byte
	binary.Read(br, binary.BigEndian, &spares)
	binary.Read(br, binary.BigEndian, &block.CalibConstHorzChan)
	binary.Read(br, binary.BigEndian, &block.CalibConstVertChan)
	return block, nil
}

// decodeAngle converts a raw angle halfword into degrees using the
// documented 360/65536 scaling shared by every angle field in the format.
func decodeAngle(raw uint16) float64 {
	return float64(raw) * (360.0 / 65536.0)
}
