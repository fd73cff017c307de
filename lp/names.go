package lp

// ServerDelayVar returns the lp_solve variable name BuildTFA (and
// BuildTFAPlusPlus) uses for a server's delay bound, so callers parsing a
// Solution don't need to know the LP's internal naming scheme.
func ServerDelayVar(server string) string { return dVar(server) }

// SFADelayVar returns the lp_solve variable name BuildSFA uses for a flow's
// end-to-end delay.
func SFADelayVar(flow string) string { return "delay_" + sanitize(flow) }

// PLPDelayVar returns the lp_solve variable name BuildPLP uses for a flow's
// end-to-end delay.
func PLPDelayVar(flow string) string { return "delay_plp_" + sanitize(flow) }

// ELPDelayVar returns the lp_solve variable name BuildELP uses for a flow's
// end-to-end delay.
func ELPDelayVar(flow string) string { return "delay_elp_" + sanitize(flow) }
