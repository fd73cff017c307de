// Package lp builds lp_solve-dialect linear programs for the TFA, TFA++,
// SFA, PLP and ELP network-calculus delay-bound methods, and parses
// lp_solve's "-S2" solution output back into named variable values.
//
// A Problem is built by one of BuildTFA, BuildSFA, BuildPLP or BuildELP from
// a *netmodel.Network, rendered to lp_solve's text dialect with WriteTo, and
// solved by any Solver (LPSolveSolver shells out to the lp_solve binary).
// ParseSolution implements the original tool's stdout-scraping contract
// directly (original_source/src/saihu/panco/lpSolvePath.py): skip the
// header, read "name value" pairs until the trailing blank line.
package lp
