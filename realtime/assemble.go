package realtime

import (
	"errors"

	"github.com/wx88d/nexrad/archive2"
	"github.com/wx88d/nexrad/model"
)

// ErrMissingCoveragePattern is returned by AssembleVolume when none of the
// supplied chunks carried a volume coverage pattern message.
var ErrMissingCoveragePattern = errors.New("realtime: no volume coverage pattern found among chunks")

// AssembleVolume merges a volume's worth of downloaded chunks, in order,
// into a single model.Scan: the Start chunk's volume header and any
// decoded radials contribute first, then each Intermediate/End chunk's
// LDM record is decompressed and its radials appended.
func AssembleVolume(chunks []DownloadedChunk) (*model.Scan, error) {
	var siteID string
	var radials []model.Radial
	var vcp *model.VolumeCoveragePattern
	var site *model.Site

	for _, dc := range chunks {
		switch {
		case dc.Chunk.Start != nil:
			if siteID == "" {
				siteID = dc.Chunk.Start.VolumeHeader.Site()
			}
			radials = append(radials, dc.Chunk.Start.Radials...)
			if vcp == nil {
				vcp = dc.Chunk.Start.VCP
			}
			if site == nil {
				site = dc.Chunk.Start.Site
			}
		case dc.Chunk.IntermediateOrEnd != nil:
			// the chunk holds the whole LDM record; DecodeRecord takes the
			// compressed payload that follows the 4-byte length prefix.
			record := dc.Chunk.IntermediateOrEnd.MetaDataRecord
			if len(record) >= 4 {
				record = record[4:]
			}
			rs, v, s, err := archive2.DecodeRecord(record)
			if err != nil {
				return nil, err
			}
			radials = append(radials, rs...)
			if vcp == nil {
				vcp = v
			}
			if site == nil {
				site = s
			}
		}
	}

	if vcp == nil {
		return nil, ErrMissingCoveragePattern
	}

	sweeps := model.SweepsFromRadials(radials)
	switch {
	case site != nil:
		resolved := *site
		if resolved.ID == "" {
			resolved.ID = siteID
		}
		return model.WithSite(resolved, vcp, sweeps), nil
	case siteID != "":
		return model.WithSite(model.Site{ID: siteID}, vcp, sweeps), nil
	}
	return model.New(vcp, sweeps), nil
}
