package xtfa

import "errors"

var (
	// ErrDeadlock is returned by the feed-forward driver when every
	// remaining ready node postpones in the same sweep: no forward
	// progress is possible without more information materializing
	// elsewhere, which for a supposedly acyclic graph means an unresolved
	// ATS reference or a caller bug.
	ErrDeadlock = errors.New("xtfa: all ready nodes postponed in one sweep")

	// ErrFixPointDidNotConverge is returned by the cyclic driver when the
	// cut-edge situation has not stabilized after the configured
	// iteration cap.
	ErrFixPointDidNotConverge = errors.New("xtfa: fix-point iteration cap exceeded without convergence")
)
