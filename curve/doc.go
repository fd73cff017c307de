// Package curve implements the min-plus curve algebra used by the rest of
// this module: arrival and service curve variants, their min-plus
// convolution/deconvolution, horizontal/vertical distances, clock-imperfection
// worsening, and packetization penalties.
//
// What:
//
//   - Curve variants: NoCurve, InfiniteCurve, LeakyBucket, GVBR,
//     RateLatency, MaxOfRateLatencies, BoundedDelay, DGVBR. Each is a
//     concrete type implementing the Curve interface; operations dispatch
//     on the concrete type via type switch rather than per-type virtual
//     methods, mirroring a closed tagged-variant design.
//   - Operations: Conv (⊗), Add (+), Deconv (⊘), HDist (horizontal distance,
//     i.e. delay bound), VDist (vertical distance, i.e. backlog bound),
//     WorsenArrival*/WorsenService* (clock-imperfection worsening),
//     PacketizationPenalty.
//   - ClockConfig carries the process-wide clock-model parameters (ρ, η, δ,
//     sync, perfect) as an explicit injected value, never a global singleton.
//
// Why:
//
//   - Every delay bound this module computes reduces, eventually, to a
//     horizontal distance between an arrival curve and a service curve;
//     this package is the single place that arithmetic happens.
//
// Errors:
//
//   - ErrArrivalCurveNotDefined  left-limit requested at t<=0
//   - ErrLocallyUnstable         arrival rate >= service rate (no finite bound)
//
// See DESIGN.md for the grounding of each operation on
// original_source/saihu/xtfa/minPlusToolbox.py and clocks.py.
package curve
