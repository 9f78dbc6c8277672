// Package win32 decodes the Kyoshin WIN32 binary container format used
// by K-NET/KiK-net strong-motion stations: a header block describing the
// recording station and its sensors, followed by a sequence of
// per-second blocks carrying differentially-packed waveform samples.
//
// Decode reads a container from a byte stream in one pass and returns an
// immutable [Data] value. Any structural mismatch — bad magic, an
// unknown waveform pack mode, an invalid BCD digit, or a short read —
// surfaces as an error wrapping [ErrFormat]; the decoder never attempts to
// resynchronize past a malformed record.
package win32
