package settings

import (
	"testing"

	"github.com/msinoftech/getsettime/internal/availability"
)

func TestEffectiveWithoutProvider(t *testing.T) {
	ws := Default("ws-1")
	ws.Availability.Individual["2026-10-12-9"] = false

	eff := ws.Effective("")

	if !eff.Timesheet["Mon"].Enabled {
		t.Error("expected general Monday to survive")
	}
	if v, ok := eff.Individual["2026-10-12-9"]; !ok || v {
		t.Error("expected general override to survive")
	}
}

func TestEffectiveProviderLayerWins(t *testing.T) {
	ws := Default("ws-1")
	ws.Availability.Providers = map[string]ProviderOverride{
		"member-1": {
			Timesheet:  availability.Timesheet{"Mon": {Enabled: false}},
			Individual: availability.OverrideMap{"2026-10-13-10": false},
		},
	}

	eff := ws.Effective("member-1")

	if eff.Timesheet["Mon"].Enabled {
		t.Error("provider's disabled Monday must replace the general day")
	}
	if eff.Timesheet["Mon"].StartTime != "" {
		t.Error("day replacement is wholesale, general hours must not leak")
	}
	if !eff.Timesheet["Tue"].Enabled {
		t.Error("days without provider override fall back to general")
	}
	if v, ok := eff.Individual["2026-10-13-10"]; !ok || v {
		t.Error("provider individual override missing")
	}
}

func TestEffectiveUnknownProviderFallsBack(t *testing.T) {
	ws := Default("ws-1")

	eff := ws.Effective("nobody")

	if !eff.Timesheet["Fri"].Enabled {
		t.Error("unknown provider should see the general template")
	}
}
