package curve

// DGVBR is a time-shifted GVBR: the output curve of a BoundedDelay(latency)
// followed (in min-plus convolution) by a GVBR. It is its own curve variant
// rather than a generic Conv result because the xTFA pipelines construct
// and query it directly (regulator reference curves, DeltaDDeconvolution).
type DGVBR struct {
	Latency float64
	Base    GVBR
}

func NewDGVBR(latency float64, base GVBR) DGVBR {
	return DGVBR{Latency: latency, Base: base}
}

func (d DGVBR) Value(t float64) float64 {
	if t <= d.Latency {
		return 0
	}
	return d.Base.Value(t - d.Latency)
}

func (d DGVBR) ValueRight(t float64) float64 {
	if t < d.Latency {
		return 0
	}
	return d.Base.ValueRight(t - d.Latency)
}

func (d DGVBR) ValueLeft(t float64) (float64, error) {
	if t <= 0 {
		return 0, ErrArrivalCurveNotDefined
	}
	if t <= d.Latency {
		return 0, nil
	}
	return d.Base.Value(t - d.Latency), nil
}

func (d DGVBR) IsNoCurve() bool {
	return d.Base.IsNoCurve()
}
