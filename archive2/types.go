// Package archive2 decodes NEXRAD Archive II Level II data streams: the
// volume header, the bzip2-compressed LDM records that follow it, and the
// RDA messages packed into each record. It also implements the real-time
// "chunk" variant of the same format served from the public AWS bucket (see
// package realtime for chunk discovery and reassembly).
//
// The documents used and referenced in this package:
//  • RDA/RPG: https://www.roc.noaa.gov/wsr88d/PublicDocs/ICDs/2620002T.pdf (high level details)
//  • User: https://www.roc.noaa.gov/wsr88d/PublicDocs/ICDs/2620010H.pdf (bulk of the format)
package archive2

import (
	"errors"
	"strings"
	"time"
)

const (
	radialStatusStartOfElevationScan   = 0
	radialStatusIntermediateRadialData = 1
	radialStatusEndOfElevation         = 2
	radialStatusBeginningOfVolumeScan  = 3
	radialStatusEndOfVolumeScan        = 4
	radialStatusStartNewElevation      = 5

	// LegacyCTMHeaderLength sits in front of every message header.
	LegacyCTMHeaderLength = 12

	// DefaultMetadataRecordLength is the size of every record regardless of its contents.
	DefaultMetadataRecordLength = 2432
)

// ErrTruncatedRecord is returned when a record or message ends before its
// declared length has been consumed.
var ErrTruncatedRecord = errors.New("archive2: truncated record")

// ErrCompressedFile describes an attempt to use a still-gzip-compressed file
// where decompressed data is needed. Decoder unwraps a gzip wrapper itself,
// so no function in this package returns this error.
var ErrCompressedFile = errors.New("archive2: file is still gzip compressed")

// VolumeHeaderRecord for NEXRAD Archive II Data Streams (RDA/RPG 7.3.3).
type VolumeHeaderRecord struct {
	TapeFilename    [9]byte // eg "AR2V0006"
	ExtensionNumber [3]byte // eg "001" (cycles through 0-999)
	ModifiedDate    int32   // data's valid date (julian day since 1970)
	ModifiedTime    int32   // data's valid time (milliseconds past midnight)
	ICAO            [4]byte // radar identifier
}

// Filename for this archive file.
func (vh VolumeHeaderRecord) Filename() string {
	return string(vh.TapeFilename[:]) + string(vh.ExtensionNumber[:])
}

// Site is the four-letter radar identifier, trimmed of any padding.
func (vh VolumeHeaderRecord) Site() string {
	return strings.TrimRight(string(vh.ICAO[:]), " \x00")
}

// Date and time this data is valid for.
func (vh VolumeHeaderRecord) Date() time.Time {
	return time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(vh.ModifiedDate) * time.Hour * 24).
		Add(time.Duration(vh.ModifiedTime) * time.Millisecond)
}

// LDMRecord (Local Data Manager) wraps a run of radar messages in bzip2
// compression (RDA/RPG 7.3.4). Size is always reported positive. The decoder
// takes the absolute value of a record's wire length and treats every
// payload as bzip2-compressed, whatever the sign; a record whose positive
// length marks an uncompressed payload is not handled separately.
type LDMRecord struct {
	Size           int32
	MetaDataRecord []byte
}
