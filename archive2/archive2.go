package archive2

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/sirupsen/logrus"

	"github.com/wx88d/nexrad/model"
)

// gzipMagic is the two leading bytes of a gzip stream; some archives
// distributed for bulk download wrap an Archive II file in gzip on top of
// its own internal bzip2-compressed LDM records.
var gzipMagic = [2]byte{0x1f, 0x8b}

// Archive2 is a decoded NEXRAD Archive II file: its volume header plus every
// radial and volume coverage pattern message recovered from its LDM
// records, organized for Assemble to turn into a model.Scan.
type Archive2 struct {
	VolumeHeader VolumeHeaderRecord

	Radials []model.Radial
	VCP     *model.VolumeCoveragePattern

	// Site is the station metadata reported by the volume's first Message
	// Type 31 VOL data block, if any radial carried one.
	Site *model.Site
}

// Open reads and decodes the Archive II file at path.
func Open(path string) (*Archive2, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return NewDecoder(f).Decode()
}

// Decoder decodes an Archive2 from an arbitrary reader, transparently
// un-gzipping the stream first if it was wrapped that way.
type Decoder struct {
	r io.Reader
}

// NewDecoder wraps r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode reads the volume header and every LDM record that follows it.
func (d *Decoder) Decode() (*Archive2, error) {
	magic := make([]byte, 2)
	n, err := io.ReadFull(d.r, magic)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}

	r := io.MultiReader(bytes.NewReader(magic[:n]), d.r)
	if n == 2 && magic[0] == gzipMagic[0] && magic[1] == gzipMagic[1] {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("archive2: opening gzip wrapper: %w", err)
		}
		defer gz.Close()
		return decodeStream(gz)
	}

	return decodeStream(r)
}

func decodeStream(r io.Reader) (*Archive2, error) {
	ar2 := &Archive2{}

	if err := binary.Read(r, binary.BigEndian, &ar2.VolumeHeader); err != nil {
		return nil, fmt.Errorf("archive2: reading volume header: %w", err)
	}
	logrus.Debugf("volume header: %s (%s)", ar2.VolumeHeader.Filename(), ar2.VolumeHeader.Site())

	for {
		var size int32
		if err := binary.Read(r, binary.BigEndian, &size); err != nil {
			if err == io.EOF {
				return ar2, nil
			}
			if err == io.ErrUnexpectedEOF {
				return nil, fmt.Errorf("%w: reading LDM record size: %v", ErrTruncatedRecord, err)
			}
			return nil, fmt.Errorf("archive2: reading LDM record size: %w", err)
		}
		if size < 0 {
			size = -size
		}

		compressed := make([]byte, size)
		if _, err := io.ReadFull(r, compressed); err != nil {
			return nil, fmt.Errorf("%w: reading LDM record: %v", ErrTruncatedRecord, err)
		}

		if err := decodeLDMRecord(ar2, compressed); err != nil {
			return nil, err
		}
	}
}

func decodeLDMRecord(ar2 *Archive2, compressed []byte) error {
	radials, vcp, site, err := DecodeRecord(compressed)
	if err != nil {
		return err
	}

	ar2.Radials = append(ar2.Radials, radials...)
	if ar2.VCP == nil {
		ar2.VCP = vcp
	}
	if ar2.Site == nil {
		ar2.Site = site
	}
	return nil
}

// DecodeRecord decodes every message in one bzip2-compressed LDM record —
// whether it came from an Archive II file's body or from a real-time
// intermediate/end chunk, which carries the identical compressed-record
// framing without a surrounding volume header — returning the radials, the
// volume coverage pattern message (if any), and the VOL-block site metadata
// (if any) it contains.
func DecodeRecord(compressed []byte) ([]model.Radial, *model.VolumeCoveragePattern, *model.Site, error) {
	bz, err := bzip2.NewReader(bytes.NewReader(compressed), nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("archive2: opening bzip2 record: %w", err)
	}
	defer bz.Close()

	stream := NewMessageStream(bz)
	var radials []model.Radial
	var vcp *model.VolumeCoveragePattern

	for {
		msg, err := stream.Next()
		if err == io.EOF {
			return radials, vcp, stream.Site(), nil
		}
		if err == ErrSegmentAssembly {
			logrus.Warn("archive2: discarding partially assembled message: ", err)
			continue
		}
		if err != nil {
			return nil, nil, nil, err
		}

		switch {
		case msg.Radial != nil:
			radials = append(radials, *msg.Radial)
		case msg.VolumeCoveragePattern != nil && vcp == nil:
			vcp = msg.VolumeCoveragePattern
		}
	}
}

// Assemble groups this archive's radials into sweeps and pairs them with
// whatever volume coverage pattern and site metadata were recovered,
// producing the uniform model.Scan consumers work with.
func (a *Archive2) Assemble() (*model.Scan, error) {
	return assembleScan(a.VolumeHeader.Site(), a.Site, a.Radials, a.VCP)
}
