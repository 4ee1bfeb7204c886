package availability

// Merge layers a provider's override settings over the workspace-wide
// general template and returns the effective settings.
//
// Precedence is deliberate and coarse: when the provider overrides a day,
// the provider's whole DaySchedule replaces the general one — there is no
// per-field composition. Individual override maps are unioned with provider
// entries winning on key collision. Neither input is mutated.
func Merge(general Settings, provider *Settings) Settings {
	effective := Settings{
		Timesheet:  make(Timesheet, len(general.Timesheet)),
		Individual: make(OverrideMap, len(general.Individual)),
	}
	for day, schedule := range general.Timesheet {
		effective.Timesheet[day] = schedule
	}
	for key, allowed := range general.Individual {
		effective.Individual[key] = allowed
	}
	if provider == nil {
		return effective
	}
	for day, schedule := range provider.Timesheet {
		effective.Timesheet[day] = schedule
	}
	for key, allowed := range provider.Individual {
		effective.Individual[key] = allowed
	}
	return effective
}
