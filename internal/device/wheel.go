package device

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Barinzaya/remote-wheel/internal/quat"
)

// Technique decides how a Wheel's hands engage it: rigidly glued at fixed
// angles, or carried through a cross-over/release animation as the wheel
// turns.
type Technique interface {
	PoseForward(f ForwardFunc)
	PoseInverse(w *Wheel, pose PoseReader, f InverseFunc)
	Update(dt float32)
}

// Wheel is a steering wheel: a fixed position and base orientation, a
// radius, a current steering angle, and a Technique describing how hands
// attach to its rim.
type Wheel struct {
	pos     mgl32.Vec3
	baseRot mgl32.Quat
	radius  float32

	angle float32
	rot   mgl32.Quat

	tracker   string
	technique Technique
}

// NewWheel builds a Wheel at pos with the given base orientation (radians,
// Euler YXZ: yaw, pitch, roll) and radius, using technique to engage hands.
// tracker is an optional auxiliary tracker name (empty disables it).
func NewWheel(pos mgl32.Vec3, yaw, pitch, roll, radius float32, tracker string, technique Technique) (*Wheel, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("device: wheel radius must be positive, got %v", radius)
	}

	baseRot := quat.FromEuler(quat.OrderYXZ, yaw, pitch, roll)
	w := &Wheel{
		pos:       pos,
		baseRot:   baseRot,
		radius:    radius,
		rot:       baseRot,
		tracker:   tracker,
		technique: technique,
	}
	return w, nil
}

// Pos returns the wheel's fixed world position.
func (w *Wheel) Pos() mgl32.Vec3 { return w.pos }

// BaseRot returns the wheel's unrotated (zero steering angle) orientation.
func (w *Wheel) BaseRot() mgl32.Quat { return w.baseRot }

// Rot returns the wheel's current (steering-angle-adjusted) orientation.
func (w *Wheel) Rot() mgl32.Quat { return w.rot }

// Radius returns the wheel's rim radius.
func (w *Wheel) Radius() float32 { return w.radius }

// SetValue sets the steering angle in degrees, recomputes rot, and passes
// the angle on to a Rotational technique's rotation bookkeeping.
func (w *Wheel) SetValue(value float32) {
	w.angle = value
	w.rot = quat.Mul(w.baseRot, quat.FromAxisAngle(mgl32.Vec3{0, 0, 1}, -value*math.Pi/180))
	if r, ok := w.technique.(*Rotational); ok {
		r.SetRotation(value)
	}
}

// Trackers reports the wheel's optional auxiliary tracker.
func (w *Wheel) Trackers(f TrackerFunc) {
	if w.tracker == "" {
		return
	}
	f(w.tracker, w.pos, w.rot)
}

// PoseForward delegates to the wheel's technique.
func (w *Wheel) PoseForward(f ForwardFunc) {
	w.technique.PoseForward(f)
}

// PoseInverse delegates to the wheel's technique.
func (w *Wheel) PoseInverse(pose PoseReader, f InverseFunc) {
	w.technique.PoseInverse(w, pose, f)
}

// Update advances the wheel's technique.
func (w *Wheel) Update(dt float32, pose PoseReader) {
	w.technique.Update(dt)
}

// ParseWheelPosition converts a configured hand-angle in degrees, measured
// clockwise from north (0-360), into the radian representation used
// internally: 90deg - theta, wrapped into [0, tau).
func ParseWheelPosition(degrees float32) (float32, error) {
	if degrees < 0 || degrees > 360 {
		return 0, fmt.Errorf("device: wheel hand position must be within [0, 360], got %v", degrees)
	}
	rad := (90 - degrees) * math.Pi / 180
	return normalizeAngle2Pi(rad), nil
}

func normalizeAngle2Pi(x float32) float32 {
	r := float32(math.Mod(float64(x), tau))
	if r < 0 {
		r += tau
	}
	return r
}
