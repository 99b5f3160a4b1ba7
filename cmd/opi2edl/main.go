// Command opi2edl converts CSS BOY .opi displays into EDM .edl displays.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
)

// Exit codes.
const (
	exitOK    = 0 // every file converted
	exitError = 1 // usage error or at least one failed file
)

const usage = `opi2edl - OPI to EDL display converter

Usage:
  opi2edl [options] <file|dir>...
  opi2edl <command> [arguments]

Commands:
  palette          Print the EDM colour palette
  match R G B      Print the palette index nearest to an RGB colour
  version          Show version

Convert options:
  -o DIR           Output directory (default: current directory)
  -config FILE     Read conversion settings from an XML config file
  -rules FILE      Panel rules YAML (units, indicator size, bar overrides)
  -layout          Pair units labels with their indicators
  -image-prefix P  Prefix prepended to image file names
  -workers N       Concurrent conversions (default: CPU count)
  -history FILE    Record results in a DuckDB history database
  -v               Enable debug logging
  -h, --help       Show help

Directories are scanned without recursion for .opi files. The exit status
is 1 when any file failed to convert.

Examples:
  opi2edl panel.opi
  opi2edl -layout -o edl/ displays/
  opi2edl match 255 0 0
`

type cli struct {
	stdout  io.Writer
	stderr  io.Writer
	verbose bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr}

	if len(args) == 0 {
		_, _ = fmt.Fprint(stderr, usage)
		return exitError
	}

	switch args[0] {
	case "palette":
		return c.cmdPalette(args[1:])
	case "match":
		return c.cmdMatch(args[1:])
	case "version":
		c.printVersion()
		return exitOK
	case "help", "-h", "--help":
		_, _ = fmt.Fprint(stdout, usage)
		return exitOK
	default:
		return c.cmdConvert(args)
	}
}

func (c *cli) setupLogger() *slog.Logger {
	if !c.verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func (c *cli) printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	_, _ = fmt.Fprintf(c.stdout, "opi2edl %s\n", version)
}

func (c *cli) printError(format string, args ...any) {
	_, _ = fmt.Fprintf(c.stderr, "error: "+format+"\n", args...)
}
