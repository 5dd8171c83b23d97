package ismcts

import "go.uber.org/zap"

// decisionLogger tags every log line produced during one Decide call with
// its decision ID, so a host running many concurrent decisions (one per
// seat, one per tree if this package is ever used root-parallel) can
// separate their iteration-failure warnings in a shared log stream. base
// may be nil, in which case logging is a no-op throughout the call.
func decisionLogger(base *zap.SugaredLogger, decisionID string) *zap.SugaredLogger {
	if base == nil {
		return nil
	}
	return base.With("decision_id", decisionID)
}
