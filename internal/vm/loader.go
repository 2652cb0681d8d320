package vm

// loader.go assembles a Machine from a decoded ROM image. Byte-level
// packing lives in the encoding package; this loader only ever sees a
// slice of words, so the two packages don't import each other.

import (
	"errors"
	"fmt"

	"github.com/td12dk/td12dk/internal/log"
)

// ErrROMSize is returned when a ROM image has more words than the ROM
// region can hold.
var ErrROMSize = errors.New("loader: rom image too large")

// Loader builds a Machine from a ROM image and the devices to wire into
// its memory-mapped window.
type Loader struct {
	log *log.Logger
}

// NewLoader returns a Loader using the package's default logger.
func NewLoader() *Loader {
	return &Loader{log: log.DefaultLogger()}
}

// Load validates rom and returns a Machine with it installed, starting at
// address zero with every register cleared. Images shorter than the ROM
// region are zero-padded by Memory itself; an image longer than the
// region is an error, since there is nowhere in the address space left to
// put it.
func (l *Loader) Load(rom []Word, devices ...Device) (*Machine, error) {
	if len(rom) > romSize {
		return nil, fmt.Errorf("%w: got %d words, want at most %d", ErrROMSize, len(rom), romSize)
	}

	l.log.Debug("loading rom", "words", len(rom), "devices", len(devices))

	return New(rom, devices...), nil
}
