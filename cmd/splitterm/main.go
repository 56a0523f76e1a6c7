// Package main is the entry point for the splitterm serial console.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/splitterm/internal/app"
	"github.com/dshills/splitterm/internal/config"
	"github.com/dshills/splitterm/internal/transport"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() app.Options {
	base := config.Default()

	var opts app.Options
	var showVersion bool
	var showHelp bool
	var listPorts bool

	flag.StringVar(&opts.ConfigPath, "config", config.DefaultPath(), "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", config.DefaultPath(), "Path to configuration file (shorthand)")
	flag.StringVar(&base.Device, "device", base.Device, "Serial device to open")
	flag.StringVar(&base.Device, "d", base.Device, "Serial device to open (shorthand)")
	flag.IntVar(&base.Baud, "baud", base.Baud, "Serial baud rate")
	flag.IntVar(&base.Baud, "b", base.Baud, "Serial baud rate (shorthand)")
	flag.StringVar(&base.Remote.Host, "host", "", "Connect to a TCP serial bridge instead of a local device")
	flag.IntVar(&base.Remote.Port, "port", base.Remote.Port, "TCP port of the serial bridge")
	flag.IntVar(&base.Remote.Port, "p", base.Remote.Port, "TCP port of the serial bridge (shorthand)")
	flag.IntVar(&base.InputWindowHeight, "input-window-height", base.InputWindowHeight, "Height of the command input window")
	flag.IntVar(&base.InputWindowHeight, "iwl", base.InputWindowHeight, "Height of the command input window (shorthand)")
	flag.IntVar(&base.HistoryLength, "history-length", base.HistoryLength, "Lines of output scrollback to keep")
	flag.IntVar(&base.HistoryLength, "hl", base.HistoryLength, "Lines of output scrollback to keep (shorthand)")
	flag.StringVar(&base.Logfile, "logfile", base.Logfile, "Session log file (empty disables logging)")
	flag.StringVar(&base.Logfile, "l", base.Logfile, "Session log file (shorthand)")
	flag.StringVar(&base.DebugLog, "debug-log", "", "Debug log file")
	flag.StringVar(&base.DebugLog, "dl", "", "Debug log file (shorthand)")
	flag.BoolVar(&base.ShowTimestamp, "show-timestamp", false, "Prefix output lines with receive time and delta")
	flag.BoolVar(&base.ShowTimestamp, "t", false, "Prefix output lines with receive time and delta (shorthand)")
	flag.BoolVar(&listPorts, "list", false, "List serial ports and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Splitterm - split-screen serial console\n\n")
		fmt.Fprintf(os.Stderr, "Usage: splitterm [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  splitterm                          Open %s\n", config.DefaultDevice)
		fmt.Fprintf(os.Stderr, "  splitterm -d /dev/ttyACM0 -b 115200\n")
		fmt.Fprintf(os.Stderr, "  splitterm --host bridge.local -p 5001\n")
		fmt.Fprintf(os.Stderr, "  splitterm --list                   List serial ports\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Splitterm %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if listPorts {
		printPorts()
		os.Exit(0)
	}

	// A device and a host are two different sessions; refuse both.
	deviceSet := false
	hostSet := false
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "device", "d":
			deviceSet = true
		case "host":
			hostSet = true
		}
	})
	if deviceSet && hostSet {
		fmt.Fprintln(os.Stderr, "Error: --device and --host are mutually exclusive")
		os.Exit(1)
	}

	opts.Base = base
	return opts
}

func printPorts() {
	ports, err := transport.ListPorts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not list ports: %v\n", err)
		os.Exit(1)
	}
	if len(ports) == 0 {
		fmt.Println("No serial ports found")
		return
	}
	for _, p := range ports {
		fmt.Printf("%s", p.Path)
		if p.Description != "" {
			fmt.Printf("  %s", p.Description)
		}
		if p.VendorID != "" || p.ProductID != "" {
			fmt.Printf("  [%s:%s]", p.VendorID, p.ProductID)
		}
		if p.Serial != "" {
			fmt.Printf("  SN %s", p.Serial)
		}
		fmt.Println()
	}
}
