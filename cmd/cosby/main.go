// Command cosby is a standalone TI-99/4A cassette-port FSK modem: it
// records a byte stream out of an audio waveform, or plays a byte
// stream into one, either against a live device or a WAV container.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cosby-modem/cosby/internal/audio"
	"github.com/cosby-modem/cosby/internal/session"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  cosby press record <data-out> [<wav-in>]")
	fmt.Fprintln(os.Stderr, "  cosby press play   <data-in>  [<wav-out>]")
	flag.PrintDefaults()
}

func main() {
	rate := flag.Int("rate", 44100, "sample rate in Hz")
	baseFreq := flag.Float64("f0", 1378.0, "base frequency in Hz")
	listDevices := flag.Bool("list-devices", false, "list audio devices and exit")
	targetRMS := flag.Float64("target-rms", 0.3, "AGC target RMS for live device capture")
	flag.Usage = usage
	flag.Parse()

	if err := audio.Init(); err != nil {
		log.Fatalf("initialize audio: %v", err)
	}
	defer audio.Terminate()

	if *listDevices {
		if err := audio.PrintDevices(); err != nil {
			log.Fatalf("list devices: %v", err)
		}
		return
	}

	args := flag.Args()
	if len(args) < 3 || args[0] != "press" {
		usage()
		os.Exit(1)
	}

	verb := args[1]
	if verb != "record" && verb != "play" {
		usage()
		os.Exit(1)
	}

	dataPath := args[2]
	var wavPath string
	if len(args) >= 4 {
		wavPath = args[3]
	}
	if len(args) > 4 {
		usage()
		os.Exit(1)
	}

	cfg := session.Config{
		SampleRate:      *rate,
		BaseFreq:        *baseFreq,
		PowerRatio:      16.0,
		NoSignalTimeout: session.DefaultConfig().NoSignalTimeout,
	}

	// Progress text goes to stderr whenever a standard stream carries
	// the data payload, otherwise to stdout, per the argument-shape
	// rule below.
	progress := os.Stdout
	if dataPath == "-" {
		progress = os.Stderr
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(progress, "\nshutting down...")
		cancel()
	}()

	var err error
	switch verb {
	case "record":
		err = runRecord(ctx, dataPath, wavPath, cfg, *targetRMS, progress)
	case "play":
		err = runPlay(dataPath, wavPath, cfg, progress)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "cosby: %v\n", err)
		os.Exit(1)
	}
}

func runRecord(ctx context.Context, dataPath, wavPath string, cfg session.Config, targetRMS float64, progress io.Writer) error {
	src, err := openSource(wavPath, cfg.SampleRate, targetRMS)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer src.Close()

	out, err := openDataWriter(dataPath)
	if err != nil {
		return fmt.Errorf("open data destination: %w", err)
	}
	defer out.Close()

	events := make(chan session.Event, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events {
			fmt.Fprintf(progress, "%s: %s\n", ev.Kind, ev.Message)
		}
	}()

	data, err := session.Record(ctx, src, cfg, events)
	close(events)
	<-done
	if err == session.ErrNoSignal {
		fmt.Fprintln(progress, "no signal detected, exiting")
		return nil
	}
	if err != nil {
		return err
	}

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write data: %w", err)
	}
	return nil
}

func runPlay(dataPath, wavPath string, cfg session.Config, progress io.Writer) error {
	data, err := readDataSource(dataPath)
	if err != nil {
		return fmt.Errorf("read data source: %w", err)
	}

	sink, err := openSink(wavPath, cfg.SampleRate)
	if err != nil {
		return fmt.Errorf("open sink: %w", err)
	}
	defer sink.Close()

	fmt.Fprintln(progress, "transmitting...")
	if err := session.Play(data, sink, cfg); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	fmt.Fprintln(progress, "done")
	return nil
}

// openSource opens the WAV file at wavPath, or, if wavPath is empty,
// the default input device wrapped with the same DC-removal and AGC
// conditioning the reference applies to a captured recording before
// demodulation -- a live cassette deck's input stage leaves a DC bias
// and swings in level that a WAV capture never has.
func openSource(wavPath string, rate int, targetRMS float64) (audio.Source, error) {
	if wavPath == "" {
		if !audio.HasInputDevice() {
			return nil, fmt.Errorf("no default input device available")
		}
		dev, err := audio.OpenDeviceSource(rate, audio.DefaultChunkFrames)
		if err != nil {
			return nil, err
		}
		return audio.NewAGC(audio.NewDCFilter(dev), targetRMS), nil
	}
	return audio.OpenWAVSource(wavPath, rate)
}

func openSink(wavPath string, rate int) (audio.Sink, error) {
	if wavPath == "" {
		if !audio.HasOutputDevice() {
			return nil, fmt.Errorf("no default output device available")
		}
		return audio.OpenDeviceSink(rate, audio.DefaultChunkFrames)
	}
	return audio.CreateWAVSink(wavPath, rate)
}

func openDataWriter(path string) (io.WriteCloser, error) {
	if path == "-" {
		return os.Stdout, nil
	}
	return os.Create(path)
}

func readDataSource(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
