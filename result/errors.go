package result

import "errors"

var (
	// ErrUnknownFlow names a flow the network doesn't know; no function in
	// this package returns it.
	ErrUnknownFlow = errors.New("result: unknown flow")

	// ErrUnknownServer is returned by FromXTFA when a flow's path names a
	// server that has no entry in the xtfa report.
	ErrUnknownServer = errors.New("result: unknown server")

	// ErrNoPath reports that a flow has no path to sum node delays over.
	ErrNoPath = errors.New("result: flow has no path")
)
