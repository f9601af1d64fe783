package plan

import "github.com/thislife/planner/internal/dates"

// ProtocolItem is a daily pass/fail behavioral checklist entry, distinct from
// scheduled timetable tasks.
type ProtocolItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Protocol item IDs.
const (
	ProtocolNoFap          = "no_fap"
	ProtocolNoSugar        = "no_sugar"
	ProtocolNoPhone        = "no_phone"
	ProtocolHeadspace      = "headspace"
	ProtocolCompletedTasks = "completed_tasks"
	ProtocolWorkedOut      = "worked_out"
)

// AllProtocolIDs lists every protocol item id in presentation order.
var AllProtocolIDs = []string{
	ProtocolNoFap,
	ProtocolNoSugar,
	ProtocolNoPhone,
	ProtocolHeadspace,
	ProtocolCompletedTasks,
	ProtocolWorkedOut,
}

var workingProtocolItems = []ProtocolItem{
	{ID: ProtocolNoFap, Label: "🚫 No Fap"},
	{ID: ProtocolNoSugar, Label: "🍬 No Sugar"},
	{ID: ProtocolNoPhone, Label: "📵 No Phone at Home"},
	{ID: ProtocolHeadspace, Label: "🧘 Headspace (Meditation)"},
	{ID: ProtocolCompletedTasks, Label: "✅ Completed All Tasks"},
	{ID: ProtocolWorkedOut, Label: "💪 Worked Out"},
}

var nomadProtocolItems = []ProtocolItem{
	{ID: ProtocolNoFap, Label: "🚫 No Fap"},
	{ID: ProtocolNoSugar, Label: "🍬 No Sugar"},
	{ID: ProtocolHeadspace, Label: "🧘 Headspace (Meditation)"},
	{ID: ProtocolCompletedTasks, Label: "✅ Completed All Tasks"},
	{ID: ProtocolWorkedOut, Label: "💪 Worked Out"},
}

var sundayProtocolItems = []ProtocolItem{
	{ID: ProtocolNoFap, Label: "🚫 No Fap"},
	{ID: ProtocolNoSugar, Label: "🍬 No Sugar"},
}

// ProtocolItems returns the checklist applying on the given zone and day type.
func ProtocolItems(zone dates.Zone, dayType dates.DayType) []ProtocolItem {
	if dayType == dates.DaySunday {
		return sundayProtocolItems
	}
	if zone == dates.ZoneWorking {
		return workingProtocolItems
	}
	return nomadProtocolItems
}

// AutoProtocolItems returns item ids that are pre-filled rather than logged by
// hand: everything dropped from the Sunday checklist is recorded as "na", and
// the nomad zone auto-passes no_phone.
func AutoProtocolItems(zone dates.Zone, dayType dates.DayType) []string {
	if dayType == dates.DaySunday {
		return []string{ProtocolNoPhone, ProtocolHeadspace, ProtocolCompletedTasks, ProtocolWorkedOut}
	}
	if zone == dates.ZoneNomad {
		return []string{ProtocolNoPhone}
	}
	return nil
}
