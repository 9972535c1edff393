// Command gogtp runs the GTP driver against stdin/stdout, the way the
// teacher repo's (skybrian/gongo) main.go wired NewConfiguredRobot + Run.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"

	"github.com/tesuji/gocore/pkg/gocoreconfig"
	"github.com/tesuji/gocore/pkg/gtp"
	"github.com/tesuji/gocore/pkg/playout"
)

var version = build.NewVersion(0, 1, 0)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	selfplayMoves := flag.Int("selfplay-moves", 0, "if > 0, skip the GTP loop and self-play this many moves using the multi-worker move search instead")
	samplesPerCandidate := flag.Int("selfplay-samples", 20, "playouts sampled per candidate move in -selfplay-moves mode")
	flag.Parse()

	cfg, err := gocoreconfig.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gogtp: loading config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	logw.Infof(ctx, "gogtp %v: size=%d komi=%.1f seed=%d", version, cfg.BoardSize, cfg.Komi, cfg.RNGSeed)

	engine := gtp.NewEngine(cfg.BoardSize, playout.Config{
		Komi:           cfg.Komi,
		MoveCap:        cfg.PlayoutMoveCap,
		EnablePatterns: cfg.EnablePatterns,
	}, cfg.RNGSeed)

	if *selfplayMoves > 0 {
		runSelfplay(ctx, engine, *selfplayMoves, *samplesPerCandidate)
		return
	}

	if err := gtp.Run(ctx, engine, os.Stdin, os.Stdout); err != nil && err != io.EOF {
		fmt.Fprintf(os.Stderr, "gogtp: %v\n", err)
		os.Exit(1)
	}
}
