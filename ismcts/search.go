package ismcts

import (
	"context"
	"math/rand"
	"sort"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// ChildStat is one root child's summary: the action it represents, how many
// times it was visited, and its average backpropagated reward. Stats are
// sorted by Visits descending in Result.
type ChildStat[A comparable] struct {
	Action        A
	Visits        int
	AverageReward float64
}

// Result is what Decide returns: the most-visited action at the root (the
// spec's "action | null" contract — a zero Result with HasAction false
// means no children survived any iteration) plus the full root child
// breakdown for callers that want to log or display search confidence.
type Result[A comparable] struct {
	Action    A
	HasAction bool
	Stats     []ChildStat[A]
}

// Decide runs Config.Iterations selection/expansion/simulation/backprop
// cycles from obs and returns the most-visited root action, or a zero
// Result when obs is already terminal. player is the acting player whose
// perspective every backpropagated reward is expressed from — it is the
// observation's own acting-player index, threaded explicitly here since the
// engine treats Observation as an opaque value.
func Decide[A comparable, C any](
	ctx context.Context,
	adapter Adapter[A, C],
	obs Observation,
	player int,
	cfg Config,
	logger *zap.SugaredLogger,
) (Result[A], error) {
	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewSource(cfg.Seed))
	decisionID := uuid.NewString()
	log := decisionLogger(logger, decisionID)

	_, terminal, err := peekDecision(adapter, obs)
	if err != nil {
		return Result[A]{}, ErrAdapterFailure(err)
	}
	if terminal {
		if log != nil {
			log.Debugw("observation already terminal, skipping search")
		}
		return Result[A]{}, nil
	}

	var debugLog *zap.SugaredLogger
	if legalActionsDebugEnabled() {
		debugLog = log
	}

	pool := newTypedNodePool[A]()
	root := pool.newRoot()
	defer pool.release(root)

	var failures *multierror.Error
	for i := 0; i < cfg.Iterations; i++ {
		if ctx != nil && ctx.Err() != nil {
			break
		}
		if err := runIteration(adapter, pool, root, obs, player, cfg, rng, debugLog); err != nil {
			failures = multierror.Append(failures, err)
			if log != nil {
				log.Warnw("iteration discarded", "error", err)
			}
		}
	}

	best := bestChildByVisits(root)
	if best == nil {
		return Result[A]{}, exhaustionError(failures)
	}

	return Result[A]{Action: best.LastAction, HasAction: true, Stats: collectStats(root)}, nil
}

// DecideWithFallback wraps Decide the way the spec's decision-strategy
// wrapper does: EngineExhaustion and any other search error are swallowed
// and a uniformly random validated action for obs is returned instead, so
// the hosting game can never deadlock on a misbehaving adapter.
func DecideWithFallback[A comparable, C any](
	ctx context.Context,
	adapter Adapter[A, C],
	obs Observation,
	player int,
	cfg Config,
	logger *zap.SugaredLogger,
) (Result[A], error) {
	result, err := Decide(ctx, adapter, obs, player, cfg, logger)
	if err == nil && result.HasAction {
		return result, nil
	}
	if err != nil && logger != nil {
		logger.Warnw("search failed, falling back to random legal action", "error", err)
	}

	expected, terminal, peekErr := peekDecision(adapter, obs)
	if peekErr != nil || terminal {
		return Result[A]{}, ErrNoLegalActions(peekErr)
	}

	rng := rand.New(rand.NewSource(cfg.withDefaults().Seed))
	legal, legalErr := legalActions(adapter, obs, player, expected, nil)
	if legalErr != nil || len(legal) == 0 {
		return Result[A]{}, ErrNoLegalActions(legalErr)
	}
	return Result[A]{Action: legal[rng.Intn(len(legal))], HasAction: true}, nil
}

// peekDecision reconstructs a runnable state from obs and reports whether
// it is already terminal. When it is not, it also advances a throw-away
// driver to the next decision point and returns the expected response
// types found there, the same way a real driver's pause would hand them to
// a caller.
func peekDecision[A comparable, C any](adapter Adapter[A, C], obs Observation) (ExpectedTypes, bool, error) {
	state, err := adapter.ReconstructFullState(obs)
	if err != nil {
		return nil, false, err
	}
	if adapter.IsRoundEnded(state) {
		return nil, true, nil
	}

	driver, err := adapter.NewDriver(state, nil)
	if err != nil {
		return nil, false, err
	}
	state, err = driver.AdvanceToDecision(state)
	if err != nil {
		return nil, false, err
	}
	if adapter.IsRoundEnded(state) {
		return nil, true, nil
	}
	return driver.ExpectedTypes(state), false, nil
}

func runIteration[A comparable, C any](
	adapter Adapter[A, C],
	pool *nodePool[A],
	root *Node[A],
	obs Observation,
	player int,
	cfg Config,
	rng *rand.Rand,
	log *zap.SugaredLogger,
) error {
	det, err := determinizeWithRetries(adapter, obs, rng, cfg.DeterminizeRetries)
	if err != nil {
		return err
	}

	driver, err := adapter.NewDriver(det, nil)
	if err != nil {
		return ErrAdapterFailure(err)
	}

	sel, err := selection(adapter, driver, root, det, log)
	if err != nil {
		return err
	}

	if sel.terminal {
		reward := adapter.RoundReward(sel.state, player)
		backpropagate(sel.node, reward, player)
		return nil
	}

	exp, err := expansion(adapter, driver, pool, sel.node, sel.state, sel.expected, rng, log)
	if err != nil {
		return err
	}
	if exp == nil {
		// Nothing left to expand under this determinization: no legal
		// action exists at sel.state. There is no terminal reward to read,
		// so we score this dead end the same way a depth-capped simulation
		// is scored.
		reward := adapter.TimeoutReward(sel.state, player)
		backpropagate(sel.node, reward, player)
		return nil
	}

	reward, err := simulate(adapter, driver, exp.state, player, cfg.MaxDepth, rng)
	if err != nil {
		return err
	}
	backpropagate(exp.child, reward, player)
	return nil
}

func determinizeWithRetries[A comparable, C any](adapter Adapter[A, C], obs Observation, rng *rand.Rand, retries int) (FullState, error) {
	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		state, err := adapter.Determinize(obs, rng)
		if err == nil {
			return state, nil
		}
		lastErr = err
	}
	return nil, ErrAdapterFailure(lastErr)
}

func collectStats[A comparable](root *Node[A]) []ChildStat[A] {
	stats := make([]ChildStat[A], 0, len(root.Children))
	for _, c := range root.Children {
		avg := 0.0
		if c.Visits > 0 {
			avg = c.TotalReward / float64(c.Visits)
		}
		stats = append(stats, ChildStat[A]{Action: c.LastAction, Visits: c.Visits, AverageReward: avg})
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Visits > stats[j].Visits })
	return stats
}
