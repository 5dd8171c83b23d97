package ismcts

import "os"

// legalActionsDebugEnabled reports whether DEBUG_LEGAL_ACTIONS=true is set,
// the only environment variable this package reads. When enabled, the
// legal-action generator logs candidate and validated action counts plus
// the expected-type set at debug level for every node it visits.
func legalActionsDebugEnabled() bool {
	return os.Getenv("DEBUG_LEGAL_ACTIONS") == "true"
}
