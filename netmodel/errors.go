package netmodel

import "errors"

// ErrInvalidNetwork is the sentinel wrapped by every network validation
// failure raised by NewNetwork; callers match it with errors.Is, and may
// inspect the wrapping error's message for which specific rule failed.
var ErrInvalidNetwork = errors.New("netmodel: invalid network")

var (
	// ErrUnknownServer indicates a flow path references a server name not
	// present in the network's server list.
	ErrUnknownServer = errors.New("netmodel: path references unknown server")

	// ErrRepeatedServerInPath indicates a flow path visits the same server
	// more than once.
	ErrRepeatedServerInPath = errors.New("netmodel: server repeated in flow path")

	// ErrNegativePacketLength indicates a negative min/max packet length.
	ErrNegativePacketLength = errors.New("netmodel: negative packet length")

	// ErrMissingServiceCurve indicates a server has no service curve.
	ErrMissingServiceCurve = errors.New("netmodel: server missing service curve")

	// ErrMissingArrivalCurve indicates a flow has no arrival curve.
	ErrMissingArrivalCurve = errors.New("netmodel: flow missing arrival curve")

	// ErrDuplicateName indicates two servers, or two flows, share a name.
	ErrDuplicateName = errors.New("netmodel: duplicate name")

	// ErrEmptyPath indicates a flow (or multicast path) has an empty path.
	ErrEmptyPath = errors.New("netmodel: flow path is empty")
)
