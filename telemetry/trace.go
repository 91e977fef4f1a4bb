package telemetry

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// TraceRecord is the camera state at the end of one tick.
type TraceRecord struct {
	Tick   int64   `csv:"tick"`
	Time   float64 `csv:"time"`
	Mode   string  `csv:"mode"`
	Driver string  `csv:"driver"`
	Active string  `csv:"active_camera"`

	CamX float32 `csv:"cam_x"`
	CamY float32 `csv:"cam_y"`
	CamZ float32 `csv:"cam_z"`

	ShouldX float32 `csv:"should_x"`
	ShouldY float32 `csv:"should_y"`
	ShouldZ float32 `csv:"should_z"`

	IsX float32 `csv:"is_x"`
	IsY float32 `csv:"is_y"`
	IsZ float32 `csv:"is_z"`

	Locked      bool `csv:"locked"`
	DisableMove bool `csv:"disable_move"`
	DisableLook bool `csv:"disable_look"`
}

// Camera returns the recorded camera position.
func (r TraceRecord) Camera() rl.Vector3 {
	return rl.Vector3{X: r.CamX, Y: r.CamY, Z: r.CamZ}
}

// ShouldFocus returns the recorded desired focus point.
func (r TraceRecord) ShouldFocus() rl.Vector3 {
	return rl.Vector3{X: r.ShouldX, Y: r.ShouldY, Z: r.ShouldZ}
}

// IsFocus returns the recorded smoothed focus point.
func (r TraceRecord) IsFocus() rl.Vector3 {
	return rl.Vector3{X: r.IsX, Y: r.IsY, Z: r.IsZ}
}

// SetCamera stores a camera position.
func (r *TraceRecord) SetCamera(v rl.Vector3) {
	r.CamX, r.CamY, r.CamZ = v.X, v.Y, v.Z
}

// SetFocus stores the desired and smoothed focus points.
func (r *TraceRecord) SetFocus(should, is rl.Vector3) {
	r.ShouldX, r.ShouldY, r.ShouldZ = should.X, should.Y, should.Z
	r.IsX, r.IsY, r.IsZ = is.X, is.Y, is.Z
}

// LogValue implements slog.LogValuer for structured logging.
func (r TraceRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("tick", r.Tick),
		slog.String("mode", r.Mode),
		slog.String("driver", r.Driver),
		slog.String("active", r.Active),
		slog.Any("cam", [3]float32{r.CamX, r.CamY, r.CamZ}),
		slog.Any("focus", [3]float32{r.IsX, r.IsY, r.IsZ}),
		slog.Bool("locked", r.Locked),
	)
}
