// Package settings stores per-workspace availability configuration: the
// general weekly timesheet, per-hour individual overrides, and optional
// per-provider override layers.
package settings

import (
	"time"

	"github.com/msinoftech/getsettime/internal/availability"
)

// ProviderOverride is one provider's availability layer. Only the parts the
// provider customizes are present; everything else falls back to the
// workspace template.
type ProviderOverride struct {
	Timesheet  availability.Timesheet   `json:"timesheet,omitempty"`
	Individual availability.OverrideMap `json:"individual,omitempty"`
}

// Availability is the persisted, unmerged availability configuration. The
// merged form is always derived on read and never written back.
type Availability struct {
	Timesheet  availability.Timesheet      `json:"timesheet"`
	Individual availability.OverrideMap    `json:"individual,omitempty"`
	Providers  map[string]ProviderOverride `json:"providers,omitempty"`
}

// WorkspaceSettings holds a workspace's scheduling configuration.
type WorkspaceSettings struct {
	WorkspaceID  string       `json:"workspace_id"`
	Availability Availability `json:"availability"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Effective resolves the availability settings for a provider selection.
// An empty providerID returns the workspace template unchanged.
func (s *WorkspaceSettings) Effective(providerID string) availability.Settings {
	general := availability.Settings{
		Timesheet:  s.Availability.Timesheet,
		Individual: s.Availability.Individual,
	}
	if providerID == "" {
		return availability.Merge(general, nil)
	}
	override, ok := s.Availability.Providers[providerID]
	if !ok {
		return availability.Merge(general, nil)
	}
	return availability.Merge(general, &availability.Settings{
		Timesheet:  override.Timesheet,
		Individual: override.Individual,
	})
}

// Default returns the settings a freshly created workspace starts with:
// weekdays 9 to 5, weekends off, no overrides.
func Default(workspaceID string) *WorkspaceSettings {
	weekday := availability.DaySchedule{Enabled: true, StartTime: "09:00", EndTime: "17:00"}
	return &WorkspaceSettings{
		WorkspaceID: workspaceID,
		Availability: Availability{
			Timesheet: availability.Timesheet{
				"Mon": weekday,
				"Tue": weekday,
				"Wed": weekday,
				"Thu": weekday,
				"Fri": weekday,
				"Sat": {Enabled: false},
				"Sun": {Enabled: false},
			},
			Individual: availability.OverrideMap{},
		},
	}
}
