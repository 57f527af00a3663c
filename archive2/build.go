package archive2

// BuildNumber is the RDA software build in effect for a stream, latched
// from the first Message Type 2 (RDA Status Data) seen. It governs which
// wire layout Message Type 31's VOL and RAD data blocks use.
type BuildNumber float32

// decodeBuildNumber applies the RDA build number encoding: a raw value
// whose value/100 is above 2.00 decodes as value/100 (e.g. raw 2100 ->
// 21.0); any smaller raw value decodes as value/10 (e.g. raw 190 -> 19.0,
// raw 200 -> 20.0). This mirrors the RDA Status Data message's documented
// rule.
func decodeBuildNumber(raw uint16) BuildNumber {
	scaled := float32(raw) / 100
	if scaled > 2 {
		return BuildNumber(scaled)
	}
	return BuildNumber(float32(raw) / 10)
}

// usesLegacyVolumeDataBlock reports whether Message Type 31's VOL data block
// uses the pre-dual-pol (40 byte, lrtup 44) layout rather than the modern
// (48 byte, lrtup 52) layout. The cutover is build 19.0.
func (b BuildNumber) usesLegacyVolumeDataBlock() bool {
	return b <= 19.0
}

// usesLegacyRadialDataBlock reports whether Message Type 31's RAD data
// block uses the pre-CFP (lrtup 20) layout rather than the modern (lrtup
// 28) layout. The cutover is build 12.0.
func (b BuildNumber) usesLegacyRadialDataBlock() bool {
	return b <= 12.0
}
