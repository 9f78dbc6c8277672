// Command kwindump decodes a Kyoshin WIN32 (.kwin) file and runs its
// waveform through the JMA Shindo and LPGM pipelines, printing a
// per-second summary table.
//
// Usage:
//
//	kwindump [flags] file.kwin
//
// Examples:
//
//	kwindump station.kwin
//	kwindump -warmup 100 station.kwin
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"text/tabwriter"

	"github.com/hkasuga/knet-dsp/dsp/core"
	"github.com/hkasuga/knet-dsp/dsp/delay"
	"github.com/hkasuga/knet-dsp/dsp/filter/shindo"
	"github.com/hkasuga/knet-dsp/dsp/lpgm"
	"github.com/hkasuga/knet-dsp/dsp/vecop"
	"github.com/hkasuga/knet-dsp/win32"
)

// windowSeconds is the width of both bleeding delay lines: the Shindo
// magnitude damping window and the LPGM peak-over-window.
const windowSeconds = 60.0

func main() {
	warmup := flag.Int("warmup", 70, "samples the Shindo filter must see before intensity is reported")
	bleedFraction := flag.Float64("shindo-bleed", 0.3, "seconds of the Shindo window treated as noise to bleed off")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: kwindump [flags] file.kwin\n\n")
		fmt.Fprintf(os.Stderr, "Decodes a WIN32 file and prints per-second JMA intensity and LPGM peaks.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(flag.Arg(0), *warmup, *bleedFraction, logger); err != nil {
		logger.Error("kwindump failed", "error", err)
		os.Exit(1)
	}
}

func run(path string, warmup int, bleedFraction float64, logger *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	logger.Info("decoding container", "file", path)
	data, err := win32.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	logger.Info("decoded container", "seconds", len(data.Seconds))

	if data.StationInfo == nil {
		return fmt.Errorf("%s carries no StationInfo subrecord", path)
	}
	if data.StationInfo.SampleRate == 0 {
		return fmt.Errorf("%s: StationInfo.SampleRate is zero", path)
	}
	if len(data.StationInfo.Components) < 3 {
		return fmt.Errorf("%s: need 3 components (NS, EW, UD), got %d", path, len(data.StationInfo.Components))
	}
	components := data.StationInfo.Components[:3]

	sampleRate := float64(data.StationInfo.SampleRate)
	dt := 1 / sampleRate

	bleedFraction = core.Clamp(bleedFraction, 1/sampleRate, windowSeconds)

	shindoFilter := shindo.New[vecop.Vec3](dt, vecop.Vec3Ops{})
	shindoBleed, err := delay.NewBleeding(int(windowSeconds*sampleRate), maxInt(1, int(bleedFraction*sampleRate)), 0.0)
	if err != nil {
		return fmt.Errorf("building Shindo bleeding line: %w", err)
	}

	lpgmCalc, err := lpgm.New(sampleRate)
	if err != nil {
		return fmt.Errorf("building LPGM calculator: %w", err)
	}
	lpgmBleed, err := delay.NewBleeding(int(windowSeconds*sampleRate), 1, 0.0)
	if err != nil {
		return fmt.Errorf("building LPGM bleeding line: %w", err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Second\tSamples\tIntensity\tLPGM Peak (cm/s)\n")
	fmt.Fprintf(tw, "------\t-------\t---------\t-----------------\n")

	sampleIndex := 0
	physBuf := make([]float64, 0, 3)

	for secIdx, sec := range data.Seconds {
		count := shortestChannel(sec)
		if count == 0 {
			logger.Warn("skipping second block with no usable samples", "second", secIdx)
			continue
		}

		var intensity, lpgmPeak float64
		for i := 0; i < count; i++ {
			physBuf = core.EnsureLen(physBuf, 3)
			for c := 0; c < 3; c++ {
				physBuf[c] = components[c].ToPhysical(sec.Channels[c].Data[i])
			}
			accel := vecop.Vec3{X: physBuf[0], Y: physBuf[1], Z: physBuf[2]}

			filtered := shindoFilter.Update(accel)
			magnitudeGal := math.Sqrt(filtered.X*filtered.X+filtered.Y*filtered.Y+filtered.Z*filtered.Z) * 100
			shindoBleed.Add(magnitudeGal)

			lpgmCalc.Update(accel)
			lpgmBleed.Add(lpgmCalc.MaxSVA())

			sampleIndex++
		}

		if sampleIndex >= warmup {
			intensity = shindo.Intensity(shindoBleed.ComputedValue())
		} else {
			intensity = math.NaN()
		}
		lpgmPeak = lpgmBleed.ComputedValue() * 100 // m/s -> cm/s

		if math.IsNaN(intensity) {
			fmt.Fprintf(tw, "%d\t%d\t-\t%.4f\n", secIdx, count, lpgmPeak)
		} else {
			fmt.Fprintf(tw, "%d\t%d\t%.2f\t%.4f\n", secIdx, count, intensity, lpgmPeak)
		}
	}

	return tw.Flush()
}

// shortestChannel returns the number of samples common to the first three
// channels of a second block, so ragged or dropped-out channel data never
// causes an index panic. A block carrying fewer than 3 channels has no
// usable NS/EW/UD triple and reports 0.
func shortestChannel(sec win32.SecondBlock) int {
	have := min(len(sec.Channels), 3)
	if have < 3 {
		return 0
	}
	n := len(sec.Channels[0].Data)
	for _, ch := range sec.Channels[1:have] {
		if len(ch.Data) < n {
			n = len(ch.Data)
		}
	}
	return n
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
