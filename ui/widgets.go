package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/configcam/camera"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight + 2
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawSlider draws a raygui slider for desc bound to value and returns the new Y position.
// The value is written back only when the slider moved.
func (r *Renderer) DrawSlider(x, y, width int32, desc camera.FieldDescriptor, value *float32) int32 {
	rl.DrawText(desc.Label, x, y, r.Theme.FontSize, r.Theme.LabelColor)

	sliderX := float32(x + r.Theme.LabelWidth)
	sliderW := float32(width - r.Theme.LabelWidth - 60)
	bounds := rl.Rectangle{X: sliderX, Y: float32(y), Width: sliderW, Height: float32(r.Theme.SliderHeight)}
	next := gui.SliderBar(bounds, "", "", *value, desc.Min, desc.Max)
	if next != *value {
		*value = next
	}
	rl.DrawText(fmt.Sprintf(desc.Format, *value), int32(sliderX+sliderW)+6, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight + 4
}
