package ismcts

import "go.uber.org/zap"

// legalActions asks adapter for candidates restricted to expected, then
// validates each one against a fresh throw-away driver built over a
// reconstruction of obs. Validation is the authority on legality: the
// adapter's generator may over-approximate, the driver decides. A
// candidate whose validation driver can't even be constructed is discarded,
// not treated as a call failure — enumeration continues with the rest.
func legalActions[A comparable, C any](adapter Adapter[A, C], obs Observation, currentPlayer int, expected ExpectedTypes, log *zap.SugaredLogger) ([]A, error) {
	candidates := adapter.GenerateCandidates(obs, currentPlayer, expected)

	validationState, err := adapter.ReconstructFullState(obs)
	if err != nil {
		return nil, ErrAdapterFailure(err)
	}

	validated := make([]A, 0, len(candidates))
	seen := make(map[A]struct{}, len(candidates))
	for _, action := range candidates {
		if _, dup := seen[action]; dup {
			continue
		}

		driver, err := adapter.NewDriver(validationState, nil)
		if err != nil {
			if log != nil {
				log.Debugw("discarding candidate: validation driver construction failed", "error", err)
			}
			continue
		}

		if driver.Validate(validationState, action, currentPlayer) {
			validated = append(validated, action)
			seen[action] = struct{}{}
		}
	}

	if log != nil {
		log.Debugw("legal action generation",
			"candidates", len(candidates),
			"validated", len(validated),
			"expected_types", expectedTypeNames(expected),
		)
	}

	return validated, nil
}

func expectedTypeNames(expected ExpectedTypes) []string {
	names := make([]string, 0, len(expected))
	for t := range expected {
		names = append(names, t)
	}
	return names
}
