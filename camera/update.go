package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/configcam/components"
)

// FpsEyeHeight is the Fps camera's height above the target.
const FpsEyeHeight = 1.0

// FollowBehindOffset is the FollowBehind camera position in the target's frame.
var FollowBehindOffset = rl.Vector3{Y: 1, Z: 4}

// Scene is the read side of a tick: transforms plus the ordered focus targets.
type Scene interface {
	Lookup
	TargetPoints() []rl.Vector3
}

// Context is everything a mode needs for one tick.
type Context struct {
	Config   *CameraConfig
	Movement *MovementSettings
	Scene    Scene
}

// Result is what a mode asks of the camera this tick.
type Result struct {
	Delta components.Transform
	// Override replaces the camera transform with Delta.
	Override bool
	// Relative means Delta is in the target's frame.
	Relative bool
	// Look turns the camera toward the smoothed focus point.
	Look bool
}

// Update runs mode m for one tick. Movement flags are reset before the
// mode-specific branch so nothing leaks from the previous mode.
func (m Mode) Update(ctx Context) Result {
	cfg, mv := ctx.Config, ctx.Movement
	mv.DisableMove = false
	mv.DisableLook = true
	mv.LockedToPlayer = false

	res := Result{Delta: components.Identity()}

	switch m {
	case Free:
		mv.DisableLook = false
		return res
	case Fps:
		mv.DisableMove = true
		mv.DisableLook = false
	case TopDown:
		mv.DisableMove = true
	case TopDownDirection, FollowBehind:
		mv.DisableMove = true
		mv.LockedToPlayer = true
	}

	switch m {
	case LookAt:
		res.Look = true
		if focus, ok := resolveLookAt(ctx); ok {
			cfg.ShouldFocus = focus
		}
		return res
	case FollowStatic:
		res.Look = true
		if focus, ok := resolveTargetOnly(ctx); ok {
			cfg.ShouldFocus = focus
		}
		return res
	}

	target, ok := lookupTarget(ctx)
	if !ok {
		// No target to attach to; keep looking at the last focus
		res.Look = true
		return res
	}
	cfg.ShouldFocus = target.Translation
	res.Override = true

	switch m {
	case Fps:
		res.Delta = components.Transform{
			Translation: rl.Vector3Add(target.Translation, rl.Vector3{Y: FpsEyeHeight}),
			Rotation:    target.Rotation,
		}
	case TopDown:
		res.Delta = components.Transform{
			Translation: rl.Vector3Add(target.Translation, rl.Vector3{Y: mv.Dist}),
			Rotation:    components.RotationX(-math.Pi / 2),
		}
	case TopDownDirection:
		res.Relative = true
		res.Delta = components.Transform{
			Translation: rl.Vector3{Y: mv.Dist},
			Rotation:    components.RotationX(-math.Pi / 2),
		}
	case FollowBehind:
		res.Relative = true
		res.Delta = components.Transform{
			Translation: FollowBehindOffset,
			Rotation:    rl.QuaternionIdentity(),
		}
	}
	return res
}

// Place computes the camera transform for a result. Free results leave the
// camera where it is.
func (r Result) Place(cam, target components.Transform, focus rl.Vector3) components.Transform {
	switch {
	case r.Override && r.Relative:
		return target.Mul(r.Delta)
	case r.Override:
		return r.Delta
	case r.Look:
		return cam.LookingAt(focus, components.AxisY)
	}
	return cam
}

func resolveLookAt(ctx Context) (rl.Vector3, bool) {
	if ctx.Config.Strategy == FocusTargets {
		return ResolveCentroid(ctx.Scene.TargetPoints())
	}
	return ResolvePrimary(ctx.Config, ctx.Movement.Lerp, ctx.Scene)
}

func resolveTargetOnly(ctx Context) (rl.Vector3, bool) {
	if !ctx.Config.HasTarget {
		return rl.Vector3{}, true
	}
	t, ok := ctx.Scene.Transform(ctx.Config.Target)
	return t.Translation, ok
}

func lookupTarget(ctx Context) (components.Transform, bool) {
	if !ctx.Config.HasTarget {
		return components.Transform{}, false
	}
	return ctx.Scene.Transform(ctx.Config.Target)
}
