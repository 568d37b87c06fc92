// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input string // ROM file to run or disassemble
	Log   string // file receiving log output while the emulator runs
}

// Flags contains behavior options.
type Flags struct {
	Terminal bool   // render into the terminal instead of a window
	Scale    int    // window pixel scale
	Hz       int    // instructions per second
	Seed     uint64 // random seed for CXNN, 0 picks a random seed
	Mute     bool   // do not open an audio device
	Disasm   bool   // print a listing of the ROM and exit
	Trace    bool   // log every executed instruction
	Debug    bool
	Quiet    bool
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
}

// Defaults returns the options used when no flag is given.
func Defaults() Program {
	return Program{
		Flags: Flags{
			Scale: 10,
			Hz:    700,
		},
	}
}
