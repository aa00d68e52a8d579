// Package smoothing provides optional jitter smoothing for auxiliary
// tracker positions (e.g. a wireless wrist tracker feeding the wheel
// rig): a simple per-axis Kalman filter trades responsiveness for
// stability.
package smoothing

import "github.com/go-gl/mathgl/mgl32"

// Filter implements a 1D Kalman filter for scalar measurement smoothing.
type Filter struct {
	x, p, q, r  float32
	initialized bool
}

// New builds a Filter tuned by factor: 0.0 is maximum smoothing (slow to
// respond), 1.0 is the lightest smoothing; even at 1.0 each update moves
// the estimate only part of the way toward the measurement.
func New(factor float32) *Filter {
	q := float32(0.1)
	r := 1.0 - factor*0.9 + 0.1

	return &Filter{p: 1.0, q: q, r: r}
}

// Update folds measurement into the filter's estimate and returns it.
func (f *Filter) Update(measurement float32) float32 {
	if !f.initialized {
		f.x = measurement
		f.initialized = true
		return measurement
	}

	pPred := f.p + f.q
	k := pPred / (pPred + f.r)

	f.x += k * (measurement - f.x)
	f.p = (1 - k) * pPred

	return f.x
}

// Reset clears the filter's state.
func (f *Filter) Reset() {
	f.x, f.p, f.initialized = 0, 1.0, false
}

// Vec3Filter applies a Filter independently to each axis of a mgl32.Vec3.
type Vec3Filter struct {
	x, y, z *Filter
}

// NewVec3 builds a Vec3Filter tuned by factor.
func NewVec3(factor float32) *Vec3Filter {
	return &Vec3Filter{New(factor), New(factor), New(factor)}
}

// Update folds a new position measurement and returns the smoothed point.
func (f *Vec3Filter) Update(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		f.x.Update(v.X()),
		f.y.Update(v.Y()),
		f.z.Update(v.Z()),
	}
}

// Reset clears all three axis filters.
func (f *Vec3Filter) Reset() {
	f.x.Reset()
	f.y.Reset()
	f.z.Reset()
}
