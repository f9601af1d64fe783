package client

// Local store keys. The namespace mirrors what the snapshot endpoint
// stores, so a pushed state and a local state are interchangeable.
const (
	keyIdeas           = "thislife-ideas"
	keyCurrentBrand    = "thislife-current-brand"
	keyPipelineBrands  = "thislife-pipeline-brands"
	keyLiveBrands      = "thislife-live-brands"
	keyArchivedBrands  = "thislife-archived-brands"
	keyWorkSchedule    = "thislife-work-schedule"
	keyMeetings        = "thislife-meetings"
	keyMonthlyPlans    = "thislife-monthly-plans"
	keyWeeklyPlans     = "thislife-weekly-plans"
	keyDailyPlans      = "thislife-daily-plans"
	keyTimetableLogs   = "thislife-timetable-logs"
	keyProtocolLogs    = "thislife-protocol-logs"
	keyConnectionsLogs = "thislife-connections"
	keySettings        = "thislife-settings"
)
