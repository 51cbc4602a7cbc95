// SPDX-License-Identifier: EPL-2.0

// Command mpadec prints information about an audio file and decodes it to
// WAV or AIFF.
//
//	mpadec [-info] [-o out.wav|out.aiff] [-seek 0.5] [-mono] [-rate N] [-v] input
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/ik5/mpegaudio"
	"github.com/ik5/mpegaudio/formats/mp3"
	"github.com/ik5/mpegaudio/formats/vorbis"
	"github.com/ik5/mpegaudio/mpa"
)

type config struct {
	info    bool
	out     string
	seek    float64
	mono    bool
	channel string
	gapless bool
	rate    int
	verbose bool
	input   string
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var c config

	fs := flag.NewFlagSet("mpadec", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&c.info, "info", false, "print stream information")
	fs.StringVar(&c.out, "o", "", "write decoded audio to `file` (.wav, .aiff or .aif)")
	fs.Float64Var(&c.seek, "seek", 0, "start at this `fraction` (0..1) of the duration")
	fs.BoolVar(&c.mono, "mono", false, "mix down to one channel")
	fs.StringVar(&c.channel, "channel", "", "decode only the `left` or right channel")
	fs.BoolVar(&c.gapless, "gapless", false, "trim encoder delay and padding from a LAME tag")
	fs.IntVar(&c.rate, "rate", 0, "resample the output to `hz`")
	fs.BoolVar(&c.verbose, "v", false, "log decoder diagnostics to stderr")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: mpadec [flags] input")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return c, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return c, errors.New("expected exactly one input file")
	}
	c.input = fs.Arg(0)

	if c.seek < 0 || c.seek > 1 {
		return c, fmt.Errorf("-seek %v: outside 0..1", c.seek)
	}
	if !c.info && c.out == "" {
		c.info = true
	}

	return c, nil
}

func (c config) options(stderr io.Writer) (mpa.Options, error) {
	opts := mpa.Options{Mono: c.mono, Gapless: c.gapless}

	switch c.channel {
	case "":
	case "left":
		opts.Channel = mpa.LeftOnly
	case "right":
		opts.Channel = mpa.RightOnly
	default:
		return opts, fmt.Errorf("-channel %q: want left or right", c.channel)
	}

	if c.verbose {
		opts.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	return opts, nil
}

type seeker interface {
	Seek(fraction float64) error
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	c, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	opts, err := c.options(stderr)
	if err != nil {
		return err
	}

	f, err := mpegaudio.OpenFile(c.input, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if c.info {
		printInfo(stdout, f)
	}

	if c.seek > 0 {
		s, ok := f.Source.(seeker)
		if !ok {
			return fmt.Errorf("%s: format %s cannot seek", c.input, f.Format)
		}
		if err := s.Seek(c.seek); err != nil {
			return err
		}
	}

	if c.out == "" {
		return nil
	}

	return decodeTo(ctx, c, f, stdout)
}

func decodeTo(ctx context.Context, c config, f *mpegaudio.File, stdout io.Writer) error {
	out, err := os.Create(c.out)
	if err != nil {
		return err
	}
	defer out.Close()

	rate := c.rate
	if rate <= 0 {
		rate = f.SampleRate()
	}

	w, err := mpegaudio.NewWriter(mpegaudio.FormatOf(c.out), out, rate, f.Channels())
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := mpegaudio.Transcode(ctx, f, w, rate, f.Channels())
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%s: %w", c.out, err)
	}

	fmt.Fprintf(stdout, "wrote %s: %d frames at %d Hz in %s", c.out, res.Frames, rate,
		time.Since(start).Round(time.Millisecond))
	if res.Clipped > 0 {
		fmt.Fprintf(stdout, ", %d samples clipped", res.Clipped)
	}
	fmt.Fprintln(stdout)

	if ms, ok := f.Source.(*mp3.Source); ok {
		st := ms.Stats()
		if st.Resyncs+st.SkippedGranules+st.CorruptGranules+st.Truncated > 0 {
			fmt.Fprintf(stdout, "damage: %d resyncs, %d skipped granules, %d corrupt granules, %d truncated frames\n",
				st.Resyncs, st.SkippedGranules, st.CorruptGranules, st.Truncated)
		}
	}

	return out.Close()
}

func printInfo(w io.Writer, f *mpegaudio.File) {
	switch src := f.Source.(type) {
	case *mp3.Source:
		info := src.Info()
		mode := "CBR"
		if info.VBR {
			mode = "VBR"
		}
		fmt.Fprintf(w, "%s layer %d, %d Hz, %s, %d kbps %s\n",
			info.Version, info.Layer, info.SampleRate, info.Mode, info.Bitrate/1000, mode)
		fmt.Fprintf(w, "frames: %d, duration: %s\n", info.Frames, info.Duration.Round(time.Millisecond))
		if info.EncoderDelay > 0 || info.EncoderPadding > 0 {
			fmt.Fprintf(w, "encoder delay %d, padding %d\n", info.EncoderDelay, info.EncoderPadding)
		}
		if t := info.Tag; t != nil {
			fmt.Fprintf(w, "tag: %q by %q from %q (%s)\n", t.Title, t.Artist, t.Album, t.Year)
		}
	case *vorbis.Source:
		info := src.Info()
		fmt.Fprintf(w, "Ogg Vorbis, %d Hz, %d channels, %d kbps\n",
			info.SampleRate, info.Channels, info.Bitrate/1000)
		fmt.Fprintf(w, "duration: %s, vendor: %s\n", info.Duration.Round(time.Millisecond), info.Vendor)
	default:
		fmt.Fprintf(w, "%s, %d Hz, %d channels\n", f.Format, f.SampleRate(), f.Channels())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}
