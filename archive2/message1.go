package archive2

import (
	"time"

	"github.com/wx88d/nexrad/model"
)

// message1Header is the 100-byte fixed header preceding a Message Type 1
// (legacy Digital Radar Data) radial's gate arrays. Message 1 predates the
// data-block-pointer table of Message 31: reflectivity, velocity and
// spectrum width gates instead sit at fixed byte offsets given by the
// pointer fields below, with surveillance (reflectivity) and Doppler
// (velocity/spectrum width) gates at different spacings.
type message1Header struct {
	CollectionTime             uint32
	ModifiedJulianDate         uint16
	UnambiguousRange           uint16
	AzimuthAngle               uint16
	AzimuthNumber              uint16
	RadialStatus               uint16
	ElevationAngle             uint16
	ElevationNumber            uint16
	SurveillanceFirstGateRange int16
	DopplerFirstGateRange      int16
	SurveillanceGateInterval   uint16
	DopplerGateInterval        uint16
	NumSurveillanceGates       uint16
	NumDopplerGates            uint16
	CutSectorNumber            uint16
	CalibrationConstant        float32
	SpotBlankingStatus         uint16
	VCPNumber                  uint16
	Reserved1                  [4]uint16
	ReflectivityPointer        uint16
	VelocityPointer            uint16
	SpectrumWidthPointer       uint16
	DopplerVelocityResolution  uint16
	Reserved2                  [22]uint16
}

const message1HeaderSize = 100

// Date is this radial's collection time in UTC.
func (h message1Header) Date() time.Time {
	return time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(h.ModifiedJulianDate-1) * 24 * time.Hour).
		Add(time.Duration(h.CollectionTime) * time.Millisecond)
}

func (h message1Header) radialStatus() model.RadialStatus {
	switch h.RadialStatus {
	case 0:
		return model.ElevationStart
	case 1:
		return model.IntermediateRadialData
	case 2:
		return model.ElevationEnd
	case 3:
		return model.VolumeScanStart
	case 4:
		return model.VolumeScanEnd
	default:
		return model.IntermediateRadialData
	}
}

// dopplerVelocityScale returns the velocity moment's scale: 1.0 (1.0 m/s
// resolution) when the header's resolution code is 4, 2.0 (0.5 m/s
// resolution) otherwise.
func (h message1Header) dopplerVelocityScale() float32 {
	if h.DopplerVelocityResolution == 4 {
		return 1.0
	}
	return 2.0
}

func absGateRange(r int16) uint16 {
	if r < 0 {
		return uint16(-r)
	}
	return uint16(r)
}

// NewMessage1 decodes a Message Type 1 (legacy Digital Radar Data) radial
// from r, which must hold exactly one message's reassembled body (Message 1
// is always fully contained in a single 2432-byte frame, never segmented).
// Reflectivity, velocity and spectrum width gates are read from fixed byte
// offsets (the pointer fields in the header) rather than the sequential
// data-block layout Message 31 uses; any gap between the end of the header
// (or a prior moment's gates) and the next pointer is skipped.
func NewMessage1(r *SegmentReader) (*model.Radial, error) {
	var header message1Header
	if err := r.Take(&header); err != nil {
		return nil, err
	}

	radial := &model.Radial{
		CollectionTime:        header.Date(),
		AzimuthNumber:         header.AzimuthNumber,
		AzimuthAngleDegrees:   float32(decodeAngle(header.AzimuthAngle)),
		AzimuthSpacingDegrees: 1.0,
		RadialStatus:          header.radialStatus(),
		ElevationNumber:       uint8(header.ElevationNumber),
		ElevationAngleDegrees: float32(decodeAngle(header.ElevationAngle)),
	}

	pos := message1HeaderSize

	numSurv := int(header.NumSurveillanceGates)
	refPtr := int(header.ReflectivityPointer)
	if refPtr > 0 && numSurv > 0 && refPtr >= pos {
		if gap := refPtr - pos; gap > 0 {
			if err := r.Advance(gap); err != nil {
				return nil, err
			}
		}
		gates, err := r.TakeSlice(numSurv)
		if err != nil {
			return nil, err
		}
		block := model.NewMomentDataBlock(
			header.NumSurveillanceGates,
			absGateRange(header.SurveillanceFirstGateRange),
			header.SurveillanceGateInterval,
			8, 2.0, 66.0, gates,
		)
		md := model.NewMomentData(block)
		radial.Reflectivity = &md
		pos = refPtr + numSurv
	}

	numDopp := int(header.NumDopplerGates)
	velPtr := int(header.VelocityPointer)
	if velPtr > 0 && numDopp > 0 {
		if gap := velPtr - pos; gap > 0 {
			if err := r.Advance(gap); err != nil {
				return nil, err
			}
		}
		gates, err := r.TakeSlice(numDopp)
		if err != nil {
			return nil, err
		}
		block := model.NewMomentDataBlock(
			header.NumDopplerGates,
			absGateRange(header.DopplerFirstGateRange),
			header.DopplerGateInterval,
			8, header.dopplerVelocityScale(), 129.0, gates,
		)
		md := model.NewMomentData(block)
		radial.Velocity = &md
		pos = velPtr + numDopp
	}

	swPtr := int(header.SpectrumWidthPointer)
	if swPtr > 0 && numDopp > 0 {
		if gap := swPtr - pos; gap > 0 {
			if err := r.Advance(gap); err != nil {
				return nil, err
			}
		}
		gates, err := r.TakeSlice(numDopp)
		if err != nil {
			return nil, err
		}
		block := model.NewMomentDataBlock(
			header.NumDopplerGates,
			absGateRange(header.DopplerFirstGateRange),
			header.DopplerGateInterval,
			8, 2.0, 129.0, gates,
		)
		md := model.NewMomentData(block)
		radial.SpectrumWidth = &md
	}

	return radial, nil
}
