package archive2

// Message2 is RDA Status Data (User 3.2.4.6). The RDA reports it
// periodically to describe its own operability, alarms and the active
// volume coverage pattern; it is also the only place a build number is
// reported, which every Message Type 31 decode in the same stream depends
// on.
type Message2 struct {
	RDAStatus                       uint16
	OperabilityStatus               uint16
	ControlStatus                   uint16
	AuxPowerGeneratorState          uint16
	AvgTxPower                      uint16
	HorizRefCalibCorr               uint16
	DataTxEnabled                   uint16
	VolumeCoveragePatternNum        uint16
	RDAControlAuth                  uint16
	RDABuild                        uint16
	OperationalMode                 uint16
	SuperResStatus                  uint16
	ClutterMitigationDecisionStatus uint16
	AvsetStatus                     uint16
	RDAAlarmSummary                 uint16
	CommandAck                      uint16
	ChannelControlStatus            uint16
	SpotBlankingStatus              uint16
	BypassMapGenDate                uint16
	BypassMapGenTime                uint16
	ClutterFilterMapGenDate         uint16
	ClutterFilterMapGenTime         uint16
	VertRefCalibCorr                uint16
	TransitionPwrSourceStatus       uint16
	RMSControlStatus                uint16
	PerformanceCheckStatus          uint16
	AlarmCodes                      uint16
	Spares                          [20]byte
}

// BuildNumber decodes RDABuild using the RDA's raw build number encoding.
func (m Message2) BuildNumber() BuildNumber {
	return decodeBuildNumber(m.RDABuild)
}

// RDAStatusString renders RDAStatus as its documented enumeration label.
func (m Message2) RDAStatusString() string {
	switch m.RDAStatus {
	case 1:
		return "start-up"
	case 2:
		return "standby"
	case 3:
		return "restart"
	case 4:
		return "operate"
	case 5:
		return "spare"
	case 6:
		return "off-line-operate"
	default:
		return "unknown"
	}
}

// OperabilityStatusString renders OperabilityStatus as its documented label.
func (m Message2) OperabilityStatusString() string {
	switch m.OperabilityStatus {
	case 1:
		return "on-line"
	case 2:
		return "maintenance-action-required"
	case 3:
		return "maintenance-action-mandatory"
	case 4:
		return "commanded-shutdown"
	case 6:
		return "inoperable"
	case 8:
		return "spare"
	default:
		return "unknown"
	}
}
