package win32

import (
	"errors"
	"fmt"
)

// ErrFormat is the sentinel every structural decode failure wraps.
// Callers should use errors.Is(err, win32.ErrFormat) rather than
// matching on message text.
var ErrFormat = errors.New("win32: malformed container")

var (
	errBadMagic       = fmt.Errorf("%w: bad magic bytes", ErrFormat)
	errUnknownPackMode = fmt.Errorf("%w: unknown waveform pack mode", ErrFormat)
	errInvalidBCDDigit = fmt.Errorf("%w: invalid BCD digit", ErrFormat)
	errShortRead      = fmt.Errorf("%w: short read", ErrFormat)
)

func formatErrorf(base error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", base, fmt.Sprintf(format, args...))
}
