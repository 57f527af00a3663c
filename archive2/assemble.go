package archive2

import (
	"errors"

	"github.com/wx88d/nexrad/model"
	"github.com/wx88d/nexrad/model/sitereg"
)

// ErrMissingCoveragePattern is returned by assembleScan when no Volume
// Coverage Pattern message was found among the records being assembled;
// without it, the elevation cut schedule that gives the radials their
// context is unknown.
var ErrMissingCoveragePattern = errors.New("archive2: no volume coverage pattern message found")

// assembleScan groups radials into sweeps and resolves site metadata via
// resolveSite: the static registry keyed by siteID supplies ID, latitude
// and longitude when it has the site, the VOL data block's own report
// (volSite, decoded straight off the wire) supplies the heights, and either
// source is used alone when the other is missing.
func assembleScan(siteID string, volSite *model.Site, radials []model.Radial, vcp *model.VolumeCoveragePattern) (*model.Scan, error) {
	if vcp == nil {
		return nil, ErrMissingCoveragePattern
	}

	sweeps := model.SweepsFromRadials(radials)

	site, ok := resolveSite(siteID, volSite)
	if !ok {
		return model.New(vcp, sweeps), nil
	}
	return model.WithSite(site, vcp, sweeps), nil
}

// resolveSite merges the static registry entry for siteID (authoritative
// for ID/lat/long, since the VOL block never carries the ICAO identifier)
// with a VOL data block's own lat/long/height report, when present. A VOL
// block alone, with no registry match, is still usable: it carries its own
// coordinates even if the site's call sign can't be confirmed.
func resolveSite(siteID string, volSite *model.Site) (model.Site, bool) {
	entry, haveEntry := sitereg.ByID(siteID)

	switch {
	case haveEntry && volSite != nil:
		site := model.Site{
			ID:                entry.ID,
			LatitudeDegrees:   entry.LatitudeDegrees,
			LongitudeDegrees:  entry.LongitudeDegrees,
			SiteHeightMeters:  volSite.SiteHeightMeters,
			TowerHeightMeters: volSite.TowerHeightMeters,
		}
		return site, true
	case haveEntry:
		return model.Site{
			ID:               entry.ID,
			LatitudeDegrees:  entry.LatitudeDegrees,
			LongitudeDegrees: entry.LongitudeDegrees,
		}, true
	case volSite != nil:
		site := *volSite
		site.ID = siteID
		return site, true
	default:
		return model.Site{}, false
	}
}
