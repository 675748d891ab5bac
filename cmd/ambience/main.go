// Command ambience plays the scroll experience's ambient audio engine
// through the default output device, sweeping progress along the
// canonical timeline on a wall clock as a stand-in for the scroll
// position.
//
// Usage:
//
//	ambience [flags]
//
// Examples:
//
//	ambience
//	ambience -duration 60
//	ambience -hold 0.45
//	ambience -rate 48000 -seed 7
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"github.com/guitargnarr/pattern-break-experience/audio/engine"
)

const channelCount = 2

func main() {
	var (
		duration   = flag.Float64("duration", 120, "seconds for one full 0..1 progress sweep")
		hold       = flag.Float64("hold", -1, "hold a fixed progress instead of sweeping (0..1)")
		sampleRate = flag.Int("rate", 44100, "output sample rate in Hz")
		blockSize  = flag.Int("block", 1024, "render block size in samples")
		seed       = flag.Int64("seed", 1, "deterministic synthesis seed")
	)
	flag.Parse()

	if err := run(*duration, *hold, *sampleRate, *blockSize, *seed); err != nil {
		fmt.Fprintln(os.Stderr, "ambience:", err)
		os.Exit(1)
	}
}

func run(duration, hold float64, sampleRate, blockSize int, seed int64) error {
	ctrl := engine.New(
		engine.WithSampleRate(float64(sampleRate)),
		engine.WithBlockSize(blockSize),
		engine.WithSeed(seed),
	)

	ctx, ready, err := oto.NewContext(sampleRate, channelCount, 0)
	if err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	player := ctx.NewPlayer(engine.NewStream(ctrl))
	defer player.Close()
	player.Play()

	ctrl.Start()
	defer ctrl.Dispose()

	if hold >= 0 {
		ctrl.OnProgress(hold)
		fmt.Printf("holding progress %.2f, ctrl-c to quit\n", hold)
		select {}
	}

	fmt.Printf("sweeping the timeline over %.0fs\n", duration)

	const tick = 50 * time.Millisecond
	start := time.Now()
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for now := range ticker.C {
		p := now.Sub(start).Seconds() / duration
		ctrl.OnProgress(p)
		if p >= 1 {
			break
		}
	}

	// Let the stop envelope and reverb tails breathe out.
	ctrl.Stop()
	time.Sleep(3 * time.Second)

	return nil
}
