// Command serial-test writes the fixed smoke-test frame to a serial device
// and exits. Nothing is read back.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/banshee-data/telemetry/internal/monitoring"
	"github.com/banshee-data/telemetry/internal/serialport"
	"github.com/banshee-data/telemetry/internal/smoketest"
	"github.com/banshee-data/telemetry/internal/version"
)

type app struct {
	factory serialport.Factory
	list    func() ([]serialport.Info, error)
	stdout  io.Writer
	stderr  io.Writer
}

func main() {
	a := app{
		factory: serialport.NewRealFactory(),
		list:    serialport.ListPorts,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	err := a.run(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("serial-test: %v", err)
	}
}

func (a app) run(args []string) error {
	fs := flag.NewFlagSet("serial-test", flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	var (
		port        string
		baud        int
		state       bool
		list        bool
		verbose     bool
		showVersion bool
	)
	fs.StringVar(&port, "port", "", "Serial port to write to (required)")
	fs.StringVar(&port, "p", "", "Shorthand for --port")
	fs.IntVar(&baud, "baud", serialport.DefaultBaudRate, "Baud rate")
	fs.IntVar(&baud, "b", serialport.DefaultBaudRate, "Shorthand for --baud")
	fs.BoolVar(&state, "state", false, "Requested state; accepted but not encoded in the frame")
	fs.BoolVar(&state, "s", false, "Shorthand for --state")
	fs.BoolVar(&list, "list", false, "List available serial ports and exit")
	fs.BoolVar(&verbose, "v", false, "Verbose logging")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showVersion {
		fmt.Fprintln(a.stdout, version.String("serial-test"))
		return nil
	}
	monitoring.SetVerbose(verbose)

	if list {
		ports, err := a.list()
		if err != nil {
			return err
		}
		if len(ports) == 0 {
			fmt.Fprintln(a.stdout, "no serial ports found")
		}
		for _, p := range ports {
			fmt.Fprintln(a.stdout, p)
		}
		return nil
	}

	if port == "" {
		return fmt.Errorf("--port is required")
	}
	if baud <= 0 {
		return fmt.Errorf("invalid baud rate %d", baud)
	}

	if err := smoketest.Send(a.factory, port, baud, state); err != nil {
		return err
	}
	monitoring.Logf("wrote % X to %s @ %d", smoketest.Frame[:], port, baud)
	return nil
}
