package model

// ChannelConfiguration describes the RDA channel phase configuration used
// for an elevation cut.
type ChannelConfiguration int

const (
	ConstantPhase ChannelConfiguration = iota
	RandomPhase
	SZ2Phase
	UnknownPhase
)

// WaveformType describes the transmitted waveform used for an elevation cut.
type WaveformType int

const (
	ContiguousSurveillance WaveformType = iota
	ContiguousDopplerWithAmbiguityRes
	ContiguousDopplerWithoutAmbiguityRes
	Batch
	StaggeredPulsePair
	UnknownWaveform
)

// PulseWidth describes the transmitted pulse width for the volume.
type PulseWidth int

const (
	PulseWidthShort PulseWidth = iota
	PulseWidthLong
	PulseWidthUnknown
)

// ElevationCut carries one elevation scan's worth of scheduling metadata
// from a volume coverage pattern message.
type ElevationCut struct {
	ElevationAngleDegrees float64
	ChannelConfiguration  ChannelConfiguration
	WaveformType          WaveformType

	SuperResolutionHalfDegreeAzimuth     bool
	SuperResolutionQuarterKmReflectivity bool
	SuperResolutionDopplerTo300km        bool
	SuperResolutionDualPolTo300km        bool

	SurveillancePRFNumber        uint8
	SurveillancePulseCountRadial uint16
	AzimuthRateDegreesPerSecond  float64

	ReflectivityThresholdDB             float32
	VelocityThresholdDB                 float32
	SpectrumWidthThresholdDB            float32
	DifferentialReflectivityThresholdDB float32
	DifferentialPhaseThresholdDB        float32
	CorrelationCoefficientThresholdDB   float32

	Sector1EdgeAngleDegrees            float64
	Sector1DopplerPRFNumber            uint16
	Sector1DopplerPulseCountRadial     uint16
	Sector2EdgeAngleDegrees            float64
	Sector2DopplerPRFNumber            uint16
	Sector2DopplerPulseCountRadial     uint16
	Sector3EdgeAngleDegrees            float64
	Sector3DopplerPRFNumber            uint16
	Sector3DopplerPulseCountRadial     uint16

	EBCAngleDegrees float64

	IsSAILSCut        bool
	SAILSSequenceNum  uint8
	IsMRLECut         bool
	MRLESequenceNum   uint8
	IsMPDACut         bool
	IsBaseTiltCut     bool
}

// VolumeCoveragePattern is the decoded scan strategy in effect for a volume:
// the ordered list of elevation cuts the RDA will perform, plus the global
// scheduling flags that apply across the whole pattern.
type VolumeCoveragePattern struct {
	PatternNumber                    uint16
	PatternType                      uint16
	NumberOfElevationCuts             uint16
	Version                          uint8
	ClutterMapGroupNumber            uint16
	DopplerVelocityResolutionMPS     float32
	PulseWidth                       PulseWidth
	VCPSequencingSequenceActive      uint16
	VCPSequencingTruncatedVCP        uint16
	VCPSequencingNumberOfElevations  uint16
	VCPSequencingMaxSailsCuts        uint16
	SAILSVCP                         bool
	NumberOfSAILSCuts                uint16
	MRLEVCP                          bool
	NumberOfMRLECuts                 uint16
	MPDAVCP                          bool
	BaseTiltVCP                      bool

	ElevationCuts []ElevationCut
}
