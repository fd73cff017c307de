package curve

// PacketizationPenalty returns the LeakyBucket to add to a service curve to
// account for non-preemptive packetization of a flow arriving at rate with
// maximum packet length lmax: when the output link capacity is known
// (capacity > 0), the tighter LB(0, (rate/capacity)*lmax); otherwise the
// conservative LB(0, lmax).
func PacketizationPenalty(rate, lmax float64, capacity float64) LeakyBucket {
	if capacity > 0 {
		return LeakyBucket{Rate: 0, Burst: (rate / capacity) * lmax}
	}
	return LeakyBucket{Rate: 0, Burst: lmax}
}

// PacketizationPenaltyGVBR applies PacketizationPenalty to every active
// segment of a GVBR arrival curve and convolves the results (min-plus
// convolution of burst-only leaky buckets), per spec.md §4.1: "GVBR:
// convolve penalties of each LB."
func PacketizationPenaltyGVBR(g GVBR, lmax float64, capacity float64) Curve {
	segs := make([]LeakyBucket, len(g.Segments))
	for i, s := range g.Segments {
		segs[i] = PacketizationPenalty(s.Rate, lmax, capacity)
	}
	return simplifyGVBR(NewGVBR(segs...))
}
