// Package systems holds the ECS systems that run one camera tick.
package systems

import "github.com/pthm-cable/configcam/telemetry"

// SystemInfo describes a tick phase for HUD display and perf tracking.
type SystemInfo struct {
	ID          string // Phase identifier (matches telemetry phase names)
	Name        string // Display name
	Description string // What this phase does
	Category    string // Grouping (e.g., "input", "camera")
}

// SystemRegistry holds metadata about every tick phase in execution order.
// The HUD and the perf collector both key off these IDs.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all tick phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds the phases in the order Plugin.Update runs them.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: telemetry.PhaseInput, Name: "Input", Description: "Reads triggers and wheel", Category: "input"})
	r.Register(SystemInfo{ID: telemetry.PhaseState, Name: "Mode/Driver", Description: "Advances modes, drivers and scroll target", Category: "state"})
	r.Register(SystemInfo{ID: telemetry.PhaseMovement, Name: "Movement", Description: "Moves the player and fly cam", Category: "movement"})
	r.Register(SystemInfo{ID: telemetry.PhaseRig, Name: "Rigs", Description: "Composes rig drivers", Category: "camera"})
	r.Register(SystemInfo{ID: telemetry.PhaseFocus, Name: "Focus", Description: "Runs the mode and smooths focus", Category: "camera"})
	r.Register(SystemInfo{ID: telemetry.PhaseWrite, Name: "Write", Description: "Writes the camera transform", Category: "camera"})
	r.Register(SystemInfo{ID: telemetry.PhaseSwitch, Name: "Switch", Description: "Keeps one camera active", Category: "camera"})
}

// Register adds a phase to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns phase info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a phase ID, or the ID itself.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all phases in execution order.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all phase IDs in execution order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
