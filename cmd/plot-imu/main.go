// Command plot-imu plots accelerometer and gyro columns side by side, each
// panel carrying the raw samples and their rolling mean.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/banshee-data/telemetry/internal/fsutil"
	"github.com/banshee-data/telemetry/internal/pipeline"
	"github.com/banshee-data/telemetry/internal/plotcli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := plotcli.Run(ctx, "plot-imu", pipeline.IMU, os.Args[1:], plotcli.Env{
		FS:     fsutil.OSFileSystem{},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("plot-imu: %v", err)
	}
}
