// Package curve provides the authored one-dimensional animation curve used by
// masked configuration animations.
//
// A Curve is a list of keyframes (time, value, in/out tangents) evaluated with
// cubic Hermite interpolation between neighbouring keys. Curves are authored in
// YAML either as explicit keys or as an easing preset sampled into keys.
package curve

import (
	"fmt"
	"sort"

	"github.com/gonewx/drillship/pkg/types"
)

// Keyframe is a single key of a curve.
type Keyframe struct {
	// Time is the key position on the curve domain (typically [0, 1])
	Time float64 `yaml:"time"`

	// Value is the curve value at Time
	Value float64 `yaml:"value"`

	// InTangent is the slope arriving at this key
	InTangent float64 `yaml:"in_tangent,omitempty"`

	// OutTangent is the slope leaving this key
	OutTangent float64 `yaml:"out_tangent,omitempty"`
}

// Curve is an ordered list of keyframes.
type Curve struct {
	Keys []Keyframe
}

// New builds a curve from the given keys, sorting them by time.
func New(keys ...Keyframe) *Curve {
	sorted := make([]Keyframe, len(keys))
	copy(sorted, keys)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})
	return &Curve{Keys: sorted}
}

// Linear returns a straight curve from (t0, v0) to (t1, v1).
func Linear(t0, v0, t1, v1 float64) *Curve {
	slope := 0.0
	if t1 != t0 {
		slope = (v1 - v0) / (t1 - t0)
	}
	return New(
		Keyframe{Time: t0, Value: v0, InTangent: slope, OutTangent: slope},
		Keyframe{Time: t1, Value: v1, InTangent: slope, OutTangent: slope},
	)
}

// FromEasing samples an easing function over [0, 1] into n+1 keys.
// Tangents are estimated with finite differences so the Hermite evaluation
// follows the easing closely.
func FromEasing(fn func(float64) float64, n int) *Curve {
	if n < 1 {
		n = 1
	}
	keys := make([]Keyframe, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		keys[i] = Keyframe{Time: t, Value: fn(t)}
	}
	for i := range keys {
		var slope float64
		switch {
		case i == 0:
			slope = (keys[1].Value - keys[0].Value) / (keys[1].Time - keys[0].Time)
		case i == n:
			slope = (keys[n].Value - keys[n-1].Value) / (keys[n].Time - keys[n-1].Time)
		default:
			slope = (keys[i+1].Value - keys[i-1].Value) / (keys[i+1].Time - keys[i-1].Time)
		}
		keys[i].InTangent = slope
		keys[i].OutTangent = slope
	}
	return &Curve{Keys: keys}
}

// Validate reports a configuration error when the curve cannot be evaluated:
// fewer than two keys, or key times that are not strictly increasing.
func (c *Curve) Validate() error {
	if c == nil || len(c.Keys) < 2 {
		n := 0
		if c != nil {
			n = len(c.Keys)
		}
		return fmt.Errorf("%w: curve needs at least 2 keyframes, got %d", types.ErrConfiguration, n)
	}
	for i := 1; i < len(c.Keys); i++ {
		if c.Keys[i].Time <= c.Keys[i-1].Time {
			return fmt.Errorf("%w: keyframe times must be strictly increasing (key %d at %v, key %d at %v)",
				types.ErrConfiguration, i-1, c.Keys[i-1].Time, i, c.Keys[i].Time)
		}
	}
	return nil
}

// Domain returns the first and last key times.
func (c *Curve) Domain() (start, end float64) {
	if c == nil || len(c.Keys) == 0 {
		return 0, 0
	}
	return c.Keys[0].Time, c.Keys[len(c.Keys)-1].Time
}

// Contains reports whether t lies inside the authored domain (inclusive).
func (c *Curve) Contains(t float64) bool {
	if c == nil || len(c.Keys) == 0 {
		return false
	}
	start, end := c.Domain()
	return t >= start && t <= end
}

// Evaluate returns the curve value at t. Outside the domain the nearest end
// value is held. Exact key times return the key value unchanged.
func (c *Curve) Evaluate(t float64) float64 {
	if c == nil || len(c.Keys) == 0 {
		return 0
	}
	keys := c.Keys
	if t <= keys[0].Time {
		return keys[0].Value
	}
	last := keys[len(keys)-1]
	if t >= last.Time {
		return last.Value
	}

	// 第一个时间大于 t 的关键帧
	i := sort.Search(len(keys), func(i int) bool {
		return keys[i].Time > t
	})
	k0, k1 := keys[i-1], keys[i]
	if t == k0.Time {
		return k0.Value
	}

	dt := k1.Time - k0.Time
	s := (t - k0.Time) / dt
	s2 := s * s
	s3 := s2 * s

	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2

	return h00*k0.Value + h10*dt*k0.OutTangent + h01*k1.Value + h11*dt*k1.InTangent
}
