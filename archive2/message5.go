package archive2

import (
	"encoding/binary"
	"io"

	"github.com/wx88d/nexrad/model"
)

// vcpHeader is the fixed portion of a Volume Coverage Pattern message
// (Message Type 5, sent RDA to RPG, and Message Type 7, sent RPG to RDA
// with the identical payload layout). (User 3.2.4.9)
type vcpHeader struct {
	MessageSize                     uint16
	PatternType                     uint16
	PatternNumber                   uint16
	NumberOfElevationCuts           uint16
	ClutterMapGroupNumber           uint16
	DopplerVelocityResolution       uint8 // 2 = 0.5 m/s, 4 = 1.0 m/s
	PulseWidth                      uint8 // 2 = short, 4 = long
	Spare1                          [10]byte
	VCPSequencingActiveChannels     uint8
	VCPSequencingTruncatedVCP       uint8
	VCPSequencingNumberOfElevations uint8
	VCPSequencingMaxSailsCuts       uint8
	VCPSupplementalData             uint16
	Spare2                          [2]byte
}

// elevationCutRaw is the fixed portion of one elevation cut's data block
// (User 3.2.4.9.1).
type elevationCutRaw struct {
	ElevationAngle                             uint16
	ChannelConfiguration                       uint8
	WaveformType                               uint8
	SuperResolutionControl                     uint8
	SurveillancePRFNumber                      uint8
	SurveillancePulseCountRadial               uint16
	AzimuthRate                                uint16
	ReflectivityThreshold                      int16
	VelocityThreshold                          int16
	SpectrumWidthThreshold                     int16
	DifferentialReflectivityThreshold          int16
	DifferentialPhaseThreshold                 int16
	CorrelationCoefficientThreshold            int16
	Sector1EdgeAngle                           uint16
	Sector1DopplerPRFNumber                    uint16
	Sector1DopplerPulseCountRadial             uint16
	SupplementalData                           uint16
	Sector2EdgeAngle                           uint16
	Sector2DopplerPRFNumber                    uint16
	Sector2DopplerPulseCountRadial             uint16
	EBCAngle                                   uint16
	Sector3EdgeAngle                           uint16
	Sector3DopplerPRFNumber                    uint16
	Sector3DopplerPulseCountRadial             uint16
	Spare                                      [2]byte
}

// NewVolumeCoveragePattern decodes a Message Type 5 or 7 from r.
func NewVolumeCoveragePattern(r io.Reader) (*model.VolumeCoveragePattern, error) {
	var h vcpHeader
	if err := binary.Read(r, binary.BigEndian, &h); err != nil {
		return nil, err
	}

	vcp := &model.VolumeCoveragePattern{
		PatternNumber:                   h.PatternNumber,
		PatternType:                     h.PatternType,
		NumberOfElevationCuts:           h.NumberOfElevationCuts,
		ClutterMapGroupNumber:           h.ClutterMapGroupNumber,
		DopplerVelocityResolutionMPS:    dopplerResolutionMPS(h.DopplerVelocityResolution),
		PulseWidth:                      pulseWidthFromRaw(h.PulseWidth),
		VCPSequencingSequenceActive:     uint16(h.VCPSequencingActiveChannels),
		VCPSequencingTruncatedVCP:       uint16(h.VCPSequencingTruncatedVCP),
		VCPSequencingNumberOfElevations: uint16(h.VCPSequencingNumberOfElevations),
		VCPSequencingMaxSailsCuts:       uint16(h.VCPSequencingMaxSailsCuts),
	}
	vcp.SAILSVCP = h.VCPSupplementalData&1 == 1
	vcp.NumberOfSAILSCuts = uint16((h.VCPSupplementalData >> 1) & 0x07)
	vcp.MRLEVCP = (h.VCPSupplementalData>>4)&1 == 1
	vcp.NumberOfMRLECuts = uint16((h.VCPSupplementalData >> 5) & 0x07)
	vcp.MPDAVCP = (h.VCPSupplementalData>>9)&1 == 1
	vcp.BaseTiltVCP = (h.VCPSupplementalData>>10)&1 == 1

	for i := uint16(0); i < h.NumberOfElevationCuts; i++ {
		var raw elevationCutRaw
		if err := binary.Read(r, binary.BigEndian, &raw); err != nil {
			return nil, err
		}
		vcp.ElevationCuts = append(vcp.ElevationCuts, elevationCutFromRaw(raw))
	}

	return vcp, nil
}

func dopplerResolutionMPS(raw uint8) float32 {
	if raw == 4 {
		return 1.0
	}
	return 0.5
}

func pulseWidthFromRaw(raw uint8) model.PulseWidth {
	switch raw {
	case 2:
		return model.PulseWidthShort
	case 4:
		return model.PulseWidthLong
	default:
		return model.PulseWidthUnknown
	}
}

func channelConfigurationFromRaw(raw uint8) model.ChannelConfiguration {
	switch raw {
	case 0:
		return model.ConstantPhase
	case 1:
		return model.RandomPhase
	case 2:
		return model.SZ2Phase
	default:
		return model.UnknownPhase
	}
}

func waveformTypeFromRaw(raw uint8) model.WaveformType {
	switch raw {
	case 1:
		return model.ContiguousSurveillance
	case 2:
		return model.ContiguousDopplerWithAmbiguityRes
	case 3:
		return model.ContiguousDopplerWithoutAmbiguityRes
	case 4:
		return model.Batch
	case 5:
		return model.StaggeredPulsePair
	default:
		return model.UnknownWaveform
	}
}

// decodeAngularVelocity uses the same 360/65536 scaling as decodeAngle; the
// RDA/RPG ICD documents azimuth rate with identical encoding to angle
// fields, just interpreted in degrees/second rather than degrees.
func decodeAngularVelocity(raw uint16) float64 {
	return decodeAngle(raw)
}

func elevationCutFromRaw(raw elevationCutRaw) model.ElevationCut {
	return model.ElevationCut{
		ElevationAngleDegrees:               decodeAngle(raw.ElevationAngle),
		ChannelConfiguration:                channelConfigurationFromRaw(raw.ChannelConfiguration),
		WaveformType:                        waveformTypeFromRaw(raw.WaveformType),
		SuperResolutionHalfDegreeAzimuth:     raw.SuperResolutionControl&1 == 1,
		SuperResolutionQuarterKmReflectivity: (raw.SuperResolutionControl>>1)&1 == 1,
		SuperResolutionDopplerTo300km:        (raw.SuperResolutionControl>>2)&1 == 1,
		SuperResolutionDualPolTo300km:        (raw.SuperResolutionControl>>3)&1 == 1,
		SurveillancePRFNumber:                raw.SurveillancePRFNumber,
		SurveillancePulseCountRadial:         raw.SurveillancePulseCountRadial,
		AzimuthRateDegreesPerSecond:          decodeAngularVelocity(raw.AzimuthRate),
		ReflectivityThresholdDB:              float32(raw.ReflectivityThreshold) / 8.0,
		VelocityThresholdDB:                  float32(raw.VelocityThreshold) / 8.0,
		SpectrumWidthThresholdDB:             float32(raw.SpectrumWidthThreshold) / 8.0,
		DifferentialReflectivityThresholdDB:  float32(raw.DifferentialReflectivityThreshold) / 8.0,
		DifferentialPhaseThresholdDB:         float32(raw.DifferentialPhaseThreshold) / 8.0,
		CorrelationCoefficientThresholdDB:    float32(raw.CorrelationCoefficientThreshold) / 8.0,
		Sector1EdgeAngleDegrees:              decodeAngle(raw.Sector1EdgeAngle),
		Sector1DopplerPRFNumber:              raw.Sector1DopplerPRFNumber,
		Sector1DopplerPulseCountRadial:       raw.Sector1DopplerPulseCountRadial,
		Sector2EdgeAngleDegrees:              decodeAngle(raw.Sector2EdgeAngle),
		Sector2DopplerPRFNumber:              raw.Sector2DopplerPRFNumber,
		Sector2DopplerPulseCountRadial:       raw.Sector2DopplerPulseCountRadial,
		Sector3EdgeAngleDegrees:              decodeAngle(raw.Sector3EdgeAngle),
		Sector3DopplerPRFNumber:              raw.Sector3DopplerPRFNumber,
		Sector3DopplerPulseCountRadial:       raw.Sector3DopplerPulseCountRadial,
		EBCAngleDegrees:                      decodeAngle(raw.EBCAngle),
		IsSAILSCut:                           raw.SupplementalData&1 == 1,
		SAILSSequenceNum:                     uint8((raw.SupplementalData >> 1) & 0x07),
		IsMRLECut:                            (raw.SupplementalData>>4)&1 == 1,
		MRLESequenceNum:                      uint8((raw.SupplementalData >> 5) & 0x07),
		IsMPDACut:                            (raw.SupplementalData>>9)&1 == 1,
		IsBaseTiltCut:                        (raw.SupplementalData>>10)&1 == 1,
	}
}
