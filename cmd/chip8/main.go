// Package main implements the CHIP-8 emulator entry point
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/senojj/emul8"
	"github.com/senojj/emul8/internal/cli"
	"github.com/senojj/emul8/internal/config"
	"github.com/senojj/emul8/internal/disasm"
	"github.com/senojj/emul8/internal/options"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts, err := cli.ParseFlags(os.Args[1:])
	logger := config.CreateLogger(opts.Debug, opts.Quiet, nil)
	if err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts)
			fmt.Fprintln(os.Stderr, usageErr.Error())
			usageErr.ShowUsage(os.Stderr)
		} else {
			logger.Error("Invalid options", err)
		}
		os.Exit(1)
	}

	if err := run(ctx, logger, opts); err != nil {
		logger.Error("Emulation failed", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	rom, err := emul8.ReadROM(opts.Input)
	if err != nil {
		return err
	}

	if opts.Disasm {
		return disasm.Write(os.Stdout, rom)
	}

	printBanner(logger, opts)
	logger.Info("ROM loaded",
		log.String("file", opts.Input),
		log.Int("size", len(rom)))

	output, closeLog, err := config.LogOutput(opts.Terminal, opts.Log)
	if err != nil {
		return err
	}
	defer func() {
		_ = closeLog()
	}()
	if output != nil {
		logger = config.CreateLogger(opts.Debug, opts.Quiet, output)
	}

	var speaker emul8.Speaker
	if !opts.Mute {
		speaker = emul8.NewBeep(logger)
	}

	keys := emul8.NewKeyLatch()
	emu, err := emul8.New(logger, rom, keys, speaker, emul8.Config{
		ClockRate: cli.ClockRate(opts),
		Seed:      opts.Seed,
		Trace:     opts.Trace,
	})
	if err != nil {
		return err
	}

	if opts.Terminal {
		return emul8.RunTerminal(ctx, logger, emu, keys)
	}
	return emul8.RunWindow(ctx, logger, emu, keys, opts.Scale)
}

func printBanner(logger *log.Logger, opts options.Program) {
	if opts.Quiet {
		return
	}

	logger.Info("emul8 - CHIP-8 emulator", log.String("version", buildinfo.Version(version, commit, date)))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
