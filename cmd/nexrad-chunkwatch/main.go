// Command nexrad-chunkwatch follows a site's live NEXRAD Level II chunk
// feed, printing each chunk as it arrives and optionally serving a small
// HTTP status endpoint describing iterator health.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wx88d/nexrad/objectstore"
	"github.com/wx88d/nexrad/realtime"
)

const defaultBucket = "unidata-nexrad-level2-chunks"
const defaultRegion = "us-east-1"

var (
	site       string
	bucket     string
	region     string
	listenAddr string
)

func main() {
	root := &cobra.Command{
		Use:   "nexrad-chunkwatch",
		Short: "Follow a live NEXRAD Level II chunk feed",
	}
	root.PersistentFlags().StringVar(&site, "site", "", "four letter site identifier, e.g. KMPX")
	root.PersistentFlags().StringVar(&bucket, "bucket", defaultBucket, "S3 bucket serving chunks")
	root.PersistentFlags().StringVar(&region, "region", defaultRegion, "AWS region for the bucket")
	root.MarkPersistentFlagRequired("site")

	root.AddCommand(watchCmd(), statsCmd())

	if err := root.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print each chunk as it is discovered",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go cancelOnInterrupt(cancel)

			client, err := objectstore.NewS3Client(region, bucket)
			if err != nil {
				return err
			}

			it, err := realtime.Start(ctx, client, site)
			if err != nil {
				return err
			}

			if listenAddr != "" {
				go serveStatus(it)
			}

			for {
				select {
				case <-ctx.Done():
					return nil
				default:
				}

				dc, err := it.TryNext(ctx)
				if err != nil {
					return err
				}
				if dc == nil {
					time.Sleep(time.Second)
					continue
				}

				logrus.Infof("chunk %s volume=%s sequence=%d type=%s attempts=%d",
					dc.Identifier.Name(), dc.Identifier.Volume, dc.Identifier.Sequence, dc.Identifier.ChunkType, dc.Attempts)
			}
		},
	}
	cmd.Flags().StringVar(&listenAddr, "listen", "", "address to serve a JSON status endpoint on, e.g. :8080")
	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Fetch the current volume and print its scan strategy",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := objectstore.NewS3Client(region, bucket)
			if err != nil {
				return err
			}

			it, err := realtime.Start(ctx, client, site)
			if err != nil {
				return err
			}

			vcp := it.VCP()
			if vcp == nil {
				return fmt.Errorf("no volume coverage pattern known yet for %s", site)
			}

			fmt.Printf("site=%s vcp=%d cuts=%d current-chunk=%s\n",
				site, vcp.PatternNumber, len(vcp.ElevationCuts), it.Current().Name())
			return nil
		},
	}
}

type statusResponse struct {
	Site         string `json:"site"`
	CurrentChunk string `json:"current_chunk"`
	VolumeIndex  uint16 `json:"volume_index"`
	Sequence     uint32 `json:"sequence"`
	ChunkType    string `json:"chunk_type"`
}

func serveStatus(it *realtime.ChunkIterator) {
	router := mux.NewRouter()
	router.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		current := it.Current()
		resp := statusResponse{
			Site:         site,
			CurrentChunk: current.Name(),
			VolumeIndex:  current.Volume.AsNumber(),
			Sequence:     current.Sequence,
			ChunkType:    current.ChunkType.String(),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})

	logrus.Infof("serving status on %s", listenAddr)
	if err := http.ListenAndServe(listenAddr, router); err != nil {
		logrus.Error(err)
	}
}

func cancelOnInterrupt(cancel context.CancelFunc) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	<-ch
	cancel()
}
