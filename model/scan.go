package model

// Site is the ground station that collected a scan, when known.
type Site struct {
	ID                string
	LatitudeDegrees   float64
	LongitudeDegrees  float64
	SiteHeightMeters  int16
	TowerHeightMeters int16
}

// Scan is a fully assembled volume scan: every sweep collected during one
// pass of the radar's volume coverage pattern, plus the pattern itself and,
// where available, the originating site.
type Scan struct {
	Site *Site
	VCP  *VolumeCoveragePattern
	Sweeps []Sweep
}

// New builds a Scan with no known site.
func New(vcp *VolumeCoveragePattern, sweeps []Sweep) *Scan {
	return &Scan{VCP: vcp, Sweeps: sweeps}
}

// WithSite builds a Scan with a known originating site.
func WithSite(site Site, vcp *VolumeCoveragePattern, sweeps []Sweep) *Scan {
	return &Scan{Site: &site, VCP: vcp, Sweeps: sweeps}
}
