// Command ismcts-decide deals one hand of the cardgame fixture and plays it
// to completion, running an ISMCTS search for every decision of the player
// in seat 0 and a uniform-random fallback strategy for seat 1. It exists to
// exercise the ismcts package end to end against a concrete game and to
// give a worked example of wiring an Adapter into a host program.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/signalnine/ismcts"
	"github.com/signalnine/ismcts/cardgame"
)

var version = "dev"

// fileConfig mirrors ismcts.Config for YAML decoding; a zero field leaves
// the value already set from the command-line flags in place.
type fileConfig struct {
	Iterations         int   `yaml:"iterations"`
	MaxDepth           int   `yaml:"max_depth"`
	Seed               int64 `yaml:"seed"`
	DeterminizeRetries int   `yaml:"determinize_retries"`
}

func main() {
	iterations := flag.Int("iterations", 2000, "ISMCTS iterations per decision")
	maxDepth := flag.Int("max-depth", 64, "playout depth cap")
	seed := flag.Int64("seed", time.Now().UnixNano(), "root PRNG seed")
	verbose := flag.Bool("verbose", false, "debug-level logging")
	flag.Parse()

	logger := newLogger(*verbose)
	defer logger.Sync() //nolint:errcheck

	cfg := ismcts.Config{Iterations: *iterations, MaxDepth: *maxDepth, Seed: *seed}
	if path := os.Getenv("ISMCTS_CONFIG"); path != "" {
		loaded, err := loadConfig(path, cfg)
		if err != nil {
			logger.Fatalw("failed to load config file", "path", path, "error", err)
		}
		cfg = loaded
	}

	logger.Infow("starting hand", "version", version, "iterations", cfg.Iterations, "seed", cfg.Seed)

	if err := playHand(logger, cfg); err != nil {
		logger.Fatalw("hand failed", "error", err)
	}
}

func newLogger(verbose bool) *zap.SugaredLogger {
	zcfg := zap.NewProductionConfig()
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.TimeKey = ""
	logger, err := zcfg.Build()
	if err != nil {
		// zap's own construction failing means logging is unusable; there is
		// nothing to log this error to, so fall back to a no-op logger.
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

func loadConfig(path string, base ismcts.Config) (ismcts.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, errors.Wrap(err, "read config file")
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return base, errors.Wrap(err, "parse config yaml")
	}
	if fc.Iterations > 0 {
		base.Iterations = fc.Iterations
	}
	if fc.MaxDepth > 0 {
		base.MaxDepth = fc.MaxDepth
	}
	if fc.Seed != 0 {
		base.Seed = fc.Seed
	}
	if fc.DeterminizeRetries > 0 {
		base.DeterminizeRetries = fc.DeterminizeRetries
	}
	return base, nil
}

func playHand(logger *zap.SugaredLogger, cfg ismcts.Config) error {
	ctx := context.Background()
	adapter := cardgame.NewAdapter()
	rng := rand.New(rand.NewSource(cfg.Seed))

	deal := cardgame.NewDeal(func(deck []cardgame.Card) {
		rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	})

	var state cardgame.State = *deal
	s := &state

	for {
		driver, err := adapter.NewDriver(s, nil)
		if err != nil {
			return errors.Wrap(err, "build driver")
		}
		resumed, err := driver.AdvanceToDecision(s)
		if err != nil {
			return errors.Wrap(err, "advance to decision")
		}
		s = resumed.(*cardgame.State)
		if adapter.IsRoundEnded(s) {
			break
		}

		player := driver.CurrentPlayer(s)
		obs := s.ToObservation(player)

		var action cardgame.Action
		if player == 0 {
			result, err := ismcts.Decide[cardgame.Action, cardgame.Handler](ctx, adapter, obs, player, cfg, logger)
			if err != nil {
				return errors.Wrapf(err, "search failed for player %d", player)
			}
			if !result.HasAction {
				return errors.Errorf("search returned no action for player %d", player)
			}
			action = result.Action
			logger.Infow("searched decision", "player", player, "action", action.String(), "top_visits", topVisits(result))
		} else {
			candidates := adapter.GenerateCandidates(obs, player, driver.ExpectedTypes(s))
			if len(candidates) == 0 {
				return errors.Errorf("no candidate actions for player %d", player)
			}
			action = candidates[rng.Intn(len(candidates))]
			logger.Infow("random decision", "player", player, "action", action.String())
		}

		next, err := driver.ApplyAction(s, action, player)
		if err != nil {
			return errors.Wrap(err, "apply action")
		}
		s = next.(*cardgame.State)
	}

	fmt.Printf("hand complete: winner=player%d tricks=%v\n", s.WinnerID, s.TricksWon)
	return nil
}

func topVisits(r ismcts.Result[cardgame.Action]) int {
	if len(r.Stats) == 0 {
		return 0
	}
	return r.Stats[0].Visits
}
