package model

import "time"

// RadialStatus indicates a radial's position within its elevation cut and
// volume scan.
type RadialStatus int

const (
	ElevationStart RadialStatus = iota
	IntermediateRadialData
	ElevationEnd
	VolumeScanStart
	VolumeScanEnd
	ElevationStartVCPFinal
)

func (s RadialStatus) String() string {
	switch s {
	case ElevationStart:
		return "elevation-start"
	case IntermediateRadialData:
		return "intermediate"
	case ElevationEnd:
		return "elevation-end"
	case VolumeScanStart:
		return "volume-start"
	case VolumeScanEnd:
		return "volume-end"
	case ElevationStartVCPFinal:
		return "elevation-start-vcp-final"
	default:
		return "unknown"
	}
}

// Radial is a single beam of moment data collected at a fixed azimuth and
// elevation angle. Any moment field may be nil if the message that produced
// this radial did not carry that data block.
type Radial struct {
	CollectionTime          time.Time
	AzimuthNumber           uint16
	AzimuthAngleDegrees     float32
	AzimuthSpacingDegrees   float32
	RadialStatus            RadialStatus
	ElevationNumber         uint8
	ElevationAngleDegrees   float32

	Reflectivity             *MomentData
	Velocity                 *MomentData
	SpectrumWidth            *MomentData
	DifferentialReflectivity *MomentData
	DifferentialPhase        *MomentData
	CorrelationCoefficient   *MomentData
	ClutterFilterPower       *CFPMomentData
}
