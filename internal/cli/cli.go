// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/senojj/emul8/internal/options"
)

// ParseFlags parses the command line arguments, without the program name,
// into program options.
func ParseFlags(args []string) (options.Program, error) {
	flags := flag.NewFlagSet("chip8", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	opts := options.Defaults()
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	positional := flags.Args()
	if len(positional) == 0 {
		return opts, &UsageError{flags: flags, msg: "no ROM file given"}
	}
	if err := validateArgs(positional); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	opts.Input = positional[0]

	if opts.Trace {
		opts.Debug = true
	}

	if err := validateOptions(opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// ClockRate converts the instructions per second option into the time
// between two instructions.
func ClockRate(opts options.Program) time.Duration {
	if opts.Hz <= 0 {
		return 0
	}
	return time.Second / time.Duration(opts.Hz)
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage text and all flag defaults to w.
func (e *UsageError) ShowUsage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "usage: chip8 [options] <rom file>\n\n")
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	_, _ = fmt.Fprintln(w)
}

// validateArgs checks that the ROM file is the only positional argument.
func validateArgs(args []string) error {
	for i, arg := range args {
		if i == 0 {
			continue
		}
		if arg != "" && arg[0] == '-' {
			return fmt.Errorf("potential argument %s found after ROM file, please pass the ROM file as last argument", arg)
		}
		return fmt.Errorf("unexpected argument %s, only one ROM file can be run", arg)
	}
	return nil
}

func validateOptions(opts options.Program) error {
	if opts.Scale < 1 {
		return fmt.Errorf("invalid scale %d, must be at least 1", opts.Scale)
	}
	if opts.Hz < 1 {
		return fmt.Errorf("invalid clock %d hz, must be at least 1", opts.Hz)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.BoolVar(&opts.Terminal, "term", false, "render into the terminal instead of opening a window")
	flags.IntVar(&opts.Scale, "scale", opts.Scale, "window pixel scale")
	flags.IntVar(&opts.Hz, "hz", opts.Hz, "instructions executed per second")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed for the random number instruction, 0 picks a random seed")
	flags.BoolVar(&opts.Mute, "mute", false, "do not play the sound timer tone")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print a disassembly listing of the ROM and exit")
	flags.StringVar(&opts.Log, "log", "", "write log output to this file while running, the terminal frontend logs nowhere otherwise")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
