package camera

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/configcam/components"
)

// Lookup resolves an entity to its transform.
type Lookup interface {
	Transform(e ecs.Entity) (components.Transform, bool)
}

// ResolvePrimary computes the focus point from the primary and external targets.
//
// Both resolvable: lerp between them. Target only: the target. Neither
// configured: the origin. A configured entity that no longer exists
// contributes nothing, and ok is false so the caller keeps its previous focus.
func ResolvePrimary(cfg *CameraConfig, lerp float32, lookup Lookup) (focus rl.Vector3, ok bool) {
	if !cfg.HasTarget {
		return rl.Vector3{}, true
	}
	target, found := lookup.Transform(cfg.Target)
	if !found {
		return rl.Vector3{}, false
	}
	if !cfg.HasExternal {
		return target.Translation, true
	}
	ext, found := lookup.Transform(cfg.External)
	if !found {
		return target.Translation, true
	}
	return rl.Vector3Lerp(target.Translation, ext.Translation, lerp), true
}

// ResolveCentroid returns the mean of points. With no points ok is false
// and the caller leaves its focus unchanged.
func ResolveCentroid(points []rl.Vector3) (rl.Vector3, bool) {
	switch len(points) {
	case 0:
		return rl.Vector3{}, false
	case 1:
		return points[0], true
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	zs := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i], zs[i] = float64(p.X), float64(p.Y), float64(p.Z)
	}
	return rl.Vector3{
		X: float32(stat.Mean(xs, nil)),
		Y: float32(stat.Mean(ys, nil)),
		Z: float32(stat.Mean(zs, nil)),
	}, true
}

// Smooth moves IsFocus toward ShouldFocus. Inside the dead zone (inclusive)
// nothing moves; outside it the step is diff * min(1, Speed*dt).
func Smooth(cfg *CameraConfig, dt float32) {
	diff := rl.Vector3Subtract(cfg.ShouldFocus, cfg.IsFocus)
	if rl.Vector3Length(diff) <= cfg.DeadZone {
		return
	}
	step := min(1, cfg.Speed*dt)
	cfg.IsFocus = rl.Vector3Add(cfg.IsFocus, rl.Vector3Scale(diff, step))
}
