package curve

// ClockConfig carries the process-wide clock-imperfection parameters
// consumed by the Worsen* operations. It is an explicit injected value
// (constructed once by the config package from YAML, or defaulted via
// DefaultClockConfig), never a global mutable singleton.
type ClockConfig struct {
	// Rho (ρ) is the stability bound on clock drift, default 1+2e-4.
	Rho float64
	// Eta (η) is the time-jitter bound in seconds, default 4e-9.
	Eta float64
	// Delta (δ) is the synchronization precision in seconds, default 1e-6.
	Delta float64
	// Sync indicates the network is synchronized to Delta precision.
	Sync bool
	// Perfect makes every Worsen* operation an identity, for idealized
	// analysis runs.
	Perfect bool
}

// DefaultClockConfig returns the clock model defaults named in spec.md §4.1.
func DefaultClockConfig() ClockConfig {
	return ClockConfig{
		Rho:   1 + 2e-4,
		Eta:   4e-9,
		Delta: 1e-6,
		Sync:  false,
	}
}

// WorsenArrival replaces each LeakyBucket segment of c with its
// clock-worsened form: async worsening alone, or (when cfg.Sync) the
// convolution of the async-worsened curve with LB(r, b+2rδ), which is
// tighter than the async bound alone when the network is synchronized.
// A Perfect clock config makes this the identity.
func WorsenArrival(c Curve, cfg ClockConfig) Curve {
	if cfg.Perfect {
		return c
	}
	lbs, ok := leakyBucketsOf(c)
	if !ok {
		return c
	}

	var worsened []LeakyBucket
	for _, lb := range lbs {
		asyncRate := cfg.Rho * lb.Rate
		asyncBurst := lb.Burst + lb.Rate*cfg.Eta
		if !cfg.Sync {
			worsened = append(worsened, LeakyBucket{Rate: asyncRate, Burst: asyncBurst})
			continue
		}
		syncLB := LeakyBucket{Rate: lb.Rate, Burst: lb.Burst + 2*lb.Rate*cfg.Delta}
		asyncLB := LeakyBucket{Rate: asyncRate, Burst: asyncBurst}
		switch combined := Conv(asyncLB, syncLB).(type) {
		case LeakyBucket:
			worsened = append(worsened, combined)
		case GVBR:
			worsened = append(worsened, combined.Segments...)
		}
	}
	return simplifyGVBR(NewGVBR(worsened...))
}

// WorsenDelayUpperBound worsens a delay upper bound observed under one
// clock into the corresponding bound for any other clock: async worsening
// scales by Rho and adds Eta, tightened by the sync bound d+2δ when cfg.Sync
// holds. A Perfect clock config makes this the identity.
func WorsenDelayUpperBound(d float64, cfg ClockConfig) float64 {
	if cfg.Perfect {
		return d
	}
	worsened := cfg.Rho*d + cfg.Eta
	if cfg.Sync {
		if sync := d + 2*cfg.Delta; sync < worsened {
			worsened = sync
		}
	}
	return worsened
}

// WorsenDelayLowerBound is WorsenDelayUpperBound's dual for lower bounds:
// it shrinks rather than grows, and is clamped at 0 since a delay can never
// be negative. A Perfect clock config makes this the identity.
func WorsenDelayLowerBound(d float64, cfg ClockConfig) float64 {
	if cfg.Perfect {
		return d
	}
	worsened := (d - cfg.Eta) / cfg.Rho
	if worsened < 0 {
		worsened = 0
	}
	if cfg.Sync {
		if sync := d - 2*cfg.Delta; sync > worsened {
			worsened = sync
		}
	}
	return worsened
}

// WorsenService applies the dual worsening to a service curve: the
// async case shrinks the rate and grows the latency by the clock bounds;
// the sync case additionally builds a second candidate whose latency is
// widened by delta and combines both with NewMaxOfRateLatencies. That
// candidate has the async rate and a larger latency, so it is dominated and
// dropped: the sync result is the async curve as a single-segment
// MaxOfRateLatencies. A Perfect clock config makes this the identity.
func WorsenService(c Curve, cfg ClockConfig) Curve {
	if cfg.Perfect {
		return c
	}
	switch s := c.(type) {
	case RateLatency:
		asyncRL := RateLatency{Rate: s.Rate / cfg.Rho, Latency: cfg.Rho*s.Latency + cfg.Eta}
		if !cfg.Sync {
			return asyncRL
		}
		syncRL := RateLatency{Rate: s.Rate / cfg.Rho, Latency: cfg.Rho*s.Latency + cfg.Eta + cfg.Delta}
		return NewMaxOfRateLatencies(asyncRL, syncRL)
	case MaxOfRateLatencies:
		var worsened []RateLatency
		for _, seg := range s.Segments {
			switch ww := WorsenService(seg, cfg).(type) {
			case RateLatency:
				worsened = append(worsened, ww)
			case MaxOfRateLatencies:
				worsened = append(worsened, ww.Segments...)
			}
		}
		return NewMaxOfRateLatencies(worsened...)
	default:
		return c
	}
}
