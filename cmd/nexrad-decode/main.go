package main

import (
	"fmt"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/wx88d/nexrad/archive2"
)

var cli struct {
	Args struct {
		Filename string
	} `positional-args:"yes" required:"yes"`
	LogLevel         string `short:"l" long:"log-level" description:"logging level" choice:"error" choice:"info" choice:"debug" choice:"trace" default:"info"`
	ShowVolumeHeader bool   `long:"show-volume-header" description:"dumps out the contents of the Volume Header"`
}

func main() {
	if _, err := flags.Parse(&cli); err != nil {
		os.Exit(1)
	}

	errorLevels := map[string]logrus.Level{
		"error": logrus.ErrorLevel,
		"info":  logrus.InfoLevel,
		"debug": logrus.DebugLevel,
		"trace": logrus.TraceLevel,
	}
	logrus.SetLevel(errorLevels[cli.LogLevel])

	logrus.Info(color.CyanString("decoding %s", cli.Args.Filename))

	bar := pb.StartNew(0)
	bar.SetTemplateString(`{{counters . }} radials decoded {{ (cycle . "|" "/" "-" "\\") }}`)

	ar2, err := archive2.Open(cli.Args.Filename)
	if err != nil {
		logrus.Fatal(err)
	}
	bar.SetTotal(int64(len(ar2.Radials)))
	bar.SetCurrent(int64(len(ar2.Radials)))
	bar.Finish()

	if cli.ShowVolumeHeader {
		fmt.Printf("volume header: %s site=%s valid=%s\n",
			ar2.VolumeHeader.Filename(), ar2.VolumeHeader.Site(), ar2.VolumeHeader.Date())
	}

	scan, err := ar2.Assemble()
	if err != nil {
		logrus.Fatal(err)
	}

	logrus.Infof("assembled scan: %d sweeps, vcp=%d", len(scan.Sweeps), scan.VCP.PatternNumber)
	for _, sweep := range scan.Sweeps {
		logrus.Debugf("  elevation %d (%.2f deg): %d radials", sweep.ElevationNumber, sweep.ElevationAngleDegrees, len(sweep.Radials))
	}
}
