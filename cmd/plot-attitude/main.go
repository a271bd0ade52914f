// Command plot-attitude stacks pitch, roll and yaw panels from a CSV log.
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

	err := plotcli.Run(ctx, "plot-attitude", pipeline.Attitude, os.Args[1:], plotcli.Env{
		FS:     fsutil.OSFileSystem{},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("plot-attitude: %v", err)
	}
}
