// This file is part of s100emu.
//
// s100emu is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// s100emu is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with s100emu.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/s100emu/s100emu/config"
	"github.com/s100emu/s100emu/endpoint/ptyendpoint"
	"github.com/s100emu/s100emu/hardware/bus"
	"github.com/s100emu/s100emu/hardware/cards/data"
	"github.com/s100emu/s100emu/hardware/cards/serial"
	"github.com/s100emu/s100emu/hardware/cpu"
	"github.com/s100emu/s100emu/hardware/cpu/registers"
	"github.com/s100emu/s100emu/logger"
	"github.com/s100emu/s100emu/modalflag"
	"github.com/s100emu/s100emu/paths"
	"github.com/s100emu/s100emu/statsview"
	"github.com/s100emu/s100emu/version"
)

// exit codes, per the "argument errors or file-not-found" rule: anything
// the emulator itself can diagnose before running exits non-zero; a
// program that runs to HLT exits zero regardless of what it printed.
const (
	exitOK            = 0
	exitArgumentError = 1
	exitRunError      = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	md := &modalflag.Modes{Output: stdout}
	md.NewArgs(args)

	configFile := md.AddString("config", "", "backplane configuration TOML file")
	printSinkPath := md.AddString("print-sink", "", "file to receive pseudo-BDOS output (default: stdout)")
	useStatsview := md.AddBool("statsview", false, "launch the runtime statistics HTTP endpoint")
	log := md.AddBool("log", false, "echo the internal log to stdout")
	showVersion := md.AddBool("version", false, "print version information and exit")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitOK
	case modalflag.ParseError:
		fmt.Fprintf(stdout, "! error: %v\n", err)
		return exitArgumentError
	}

	if *showVersion {
		v, rev, release := version.Version()
		fmt.Fprintf(stdout, "%s version %s (%s)\n", version.ApplicationName, v, rev)
		if release {
			fmt.Fprintln(stdout, "release build")
		}
		return exitOK
	}

	if *log {
		logger.SetEcho(os.Stdout, false)
	}

	// with no -config given, fall back to a config file in the standard
	// resource location, if one is there; otherwise a bare full-range RAM
	// card is used below.
	if *configFile == "" {
		if p := paths.ResourcePath("config.toml"); fileExists(p) {
			*configFile = p
		}
	}

	var b *bus.Bus
	pseudoBdosEnabled := false
	startAt := uint16(0)

	if *configFile != "" {
		cfg, err := config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(stdout, "! error: %v\n", err)
			return exitArgumentError
		}

		b, err = config.Build(cfg, newEndpoint)
		if err != nil {
			fmt.Fprintf(stdout, "! error: %v\n", err)
			return exitArgumentError
		}

		pseudoBdosEnabled = cfg.Emulator.PseudoBdosEnabled
		startAt = cfg.Emulator.StartWithPCAt
	} else {
		// no backplane description: fall back to a single full-range RAM
		// card, so `s100emu rom.bin 0` works without a TOML file.
		b = bus.NewBus()
		ram, err := data.NewRAM("ram", 0, 0x10000, nil)
		if err != nil {
			fmt.Fprintf(stdout, "! error: %v\n", err)
			return exitArgumentError
		}
		if err := b.Insert(ram, 0, false); err != nil {
			fmt.Fprintf(stdout, "! error: %v\n", err)
			return exitArgumentError
		}
	}

	pairs := md.RemainingArgs()
	if len(pairs)%2 != 0 {
		fmt.Fprintf(stdout, "! error: expected pairs of <rom-file> <load-address>\n")
		return exitArgumentError
	}

	sink, closeSink, err := printSink(*printSinkPath, stdout)
	if err != nil {
		fmt.Fprintf(stdout, "! error: %v\n", err)
		return exitArgumentError
	}
	defer closeSink()

	c := cpu.New(b, pseudoBdosEnabled, sink)
	c.Regs.Set16(registers.PC, startAt)

	for i := 0; i < len(pairs); i += 2 {
		romFile := pairs[i]
		adr, err := strconv.ParseUint(pairs[i+1], 0, 16)
		if err != nil {
			fmt.Fprintf(stdout, "! error: load address %q: %v\n", pairs[i+1], err)
			return exitArgumentError
		}

		romBytes, err := os.ReadFile(romFile)
		if err != nil {
			fmt.Fprintf(stdout, "! error: %v\n", err)
			return exitArgumentError
		}

		if err := cpu.Load(c, romBytes, uint16(adr), i == 0); err != nil {
			fmt.Fprintf(stdout, "! error: %v\n", err)
			return exitArgumentError
		}
	}

	if *useStatsview {
		statsview.Launch(stdout, b.BusMapS)
	}

	for !c.Halted {
		if err := c.Step(); err != nil {
			fmt.Fprintf(stdout, "! error: %v\n", err)
			return exitRunError
		}
		b.RefreshIfAny()
		if err := c.AcceptInterrupt(); err != nil {
			fmt.Fprintf(stdout, "! error: %v\n", err)
			return exitRunError
		}
	}
	return exitOK
}

// newEndpoint is the config.NewEndpoint used to bind serial cards to real
// pseudo-terminals when the emulator is launched from the command line.
func newEndpoint(slot int, cc config.Card) (serial.Endpoint, error) {
	ep := ptyendpoint.New()
	if err := ep.Open(); err != nil {
		return nil, err
	}
	fmt.Printf("serial card in slot %d: connect a terminal to %s\n", slot, ep.Name())
	return ep, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// printSink resolves the -print-sink flag to a writer, and a function to
// release whatever resource backs it.
func printSink(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
