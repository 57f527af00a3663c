package archive2

import (
	"bytes"
	"encoding/binary"
)

// message3Size is the fixed size of a Performance/Maintenance Data message
// body (480 halfwords).
const message3Size = 960

// message3Communications is the leading Communications section of the
// Performance/Maintenance message, decoded in the order its fields are
// documented; everything after it is kept as a raw buffer (see Message3.Raw)
// rather than named field-by-field, matching how sparingly this package's
// other parsers expose hardware telemetry nobody here consumes.
type message3Communications struct {
	LoopBackTestStatus                    uint16
	T1OutputFrames                        uint32
	T1InputFrames                         uint32
	RouterMemoryUsed                      uint32
	RouterMemoryFree                      uint32
	RouterMemoryUtilization               uint16
	RouteToRPG                            uint16
	T1PortStatus                          uint16
	RouterDedicatedEthernetPortStatus     uint16
	RouterCommercialEthernetPortStatus    uint16
	CSU24HrErroredSeconds                 uint32
	CSU24HrSeverelyErroredSeconds         uint32
	CSU24HrSeverelyErroredFramingSeconds  uint32
	CSU24HrUnavailableSeconds             uint32
	CSU24HrControlledSlipSeconds          uint32
	CSU24HrPathCodingViolations           uint32
	CSU24HrLineErroredSeconds             uint32
	CSU24HrBurstyErroredSeconds           uint32
	CSU24HrDegradedMinutes                uint32
	LANSwitchCPUUtilization               uint32
	LANSwitchMemoryUtilization            uint16
	IFDRChassisTemperatureDegC            int16
}

// Message3 is the Performance/Maintenance Data message (User 3.2.4.9): RDA
// hardware telemetry across communications, AME, power, transmitter,
// tower/utilities, antenna/pedestal, RF, calibration and device status
// sections — roughly 230 individually documented fields in all. Only the
// leading Communications section is exposed as named fields; Raw gives
// access to the complete 960-byte body for anything else.
type Message3 struct {
	comm message3Communications
	raw  [message3Size]byte
}

// NewMessage3 decodes a Message Type 3 from r, which must present exactly
// one message's body (Performance/Maintenance is never segmented).
func NewMessage3(r *SegmentReader) (*Message3, error) {
	raw, err := r.TakeSlice(message3Size)
	if err != nil {
		return nil, err
	}

	var m Message3
	copy(m.raw[:], raw)
	if err := binary.Read(bytes.NewReader(raw), binary.BigEndian, &m.comm); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoopBackTestStatus is the T1 loop back test result: 0=Pass, 1=Fail,
// 2=Timeout, 3=Not Tested.
func (m *Message3) LoopBackTestStatus() uint16 { return m.comm.LoopBackTestStatus }

// T1OutputFrames is the count of T1 output frames.
func (m *Message3) T1OutputFrames() uint32 { return m.comm.T1OutputFrames }

// T1InputFrames is the count of T1 input frames.
func (m *Message3) T1InputFrames() uint32 { return m.comm.T1InputFrames }

// RouterMemoryUtilizationPercent is the RPG communications router's memory
// utilization, in percent.
func (m *Message3) RouterMemoryUtilizationPercent() uint16 { return m.comm.RouterMemoryUtilization }

// RouteToRPG is the route-to-RPG status: 0=Normal, 1=Backup in Use,
// 2=Down Failure, 3=Backup Commanded Down, 4=Not Installed.
func (m *Message3) RouteToRPG() uint16 { return m.comm.RouteToRPG }

// LANSwitchCPUUtilizationPercent is the LAN switch's CPU utilization, in
// percent.
func (m *Message3) LANSwitchCPUUtilizationPercent() uint32 { return m.comm.LANSwitchCPUUtilization }

// IFDRChassisTemperatureDegC is the IFDR chassis temperature in degrees C.
func (m *Message3) IFDRChassisTemperatureDegC() int16 { return m.comm.IFDRChassisTemperatureDegC }

// Raw returns the complete 960-byte Performance/Maintenance body for
// fields this parser does not name individually.
func (m *Message3) Raw() []byte { return m.raw[:] }
