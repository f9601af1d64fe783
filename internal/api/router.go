package api

import (
	"github.com/gorilla/mux"

	"github.com/thislife/planner/internal/api/recovery"
	"github.com/thislife/planner/internal/auth"
	"github.com/thislife/planner/internal/core/brands"
	"github.com/thislife/planner/internal/store"
)

// NewRouter wires every API route. All /api routes except the health checks
// sit behind the access-code middleware.
func NewRouter(s store.Store, authorizer auth.Authorizer) *mux.Router {
	router := mux.NewRouter()
	router.Use(recovery.Middleware)

	brandService := brands.New(s)

	healthHandler := NewHealthHandler(s)
	stateHandler := NewStateHandler(s)
	ideasHandler := NewIdeasHandler(s)
	brandsHandler := NewBrandsHandler(s, brandService)
	scheduleHandler := NewScheduleHandler(s)
	planningHandler := NewPlanningHandler(s)
	dayLogsHandler := NewDayLogsHandler(s)
	settingsHandler := NewSettingsHandler(s)

	// Health endpoints stay open so clients can probe reachability before
	// they authenticate.
	router.HandleFunc("/api/health", healthHandler.Check).Methods("GET")
	router.HandleFunc("/api/health/db", healthHandler.CheckStore).Methods("GET")

	guarded := router.PathPrefix("/api").Subrouter()
	guarded.Use(auth.Middleware(authorizer))

	// Snapshot sync. Method handling (including 405 + Allow) lives in the
	// handler, so no .Methods restriction here.
	guarded.HandleFunc("/state", stateHandler.Handle)

	// Ideas
	guarded.HandleFunc("/ideas", ideasHandler.List).Methods("GET")
	guarded.HandleFunc("/ideas", ideasHandler.Create).Methods("POST")
	guarded.HandleFunc("/ideas/{ideaId}", ideasHandler.Update).Methods("PATCH")
	guarded.HandleFunc("/ideas/{ideaId}", ideasHandler.Delete).Methods("DELETE")
	guarded.HandleFunc("/ideas/{ideaId}/promote", brandsHandler.PromoteIdea).Methods("POST")

	// Brands: current slot and its transitions
	guarded.HandleFunc("/brands/current", brandsHandler.GetCurrent).Methods("GET")
	guarded.HandleFunc("/brands/current", brandsHandler.PutCurrent).Methods("PUT")
	guarded.HandleFunc("/brands/current/logs", brandsHandler.AddDailyLog).Methods("POST")
	guarded.HandleFunc("/brands/current/phase", brandsHandler.SetPhase).Methods("POST")
	guarded.HandleFunc("/brands/current/automate", brandsHandler.MarkAutomated).Methods("POST")

	// Brands: pipeline
	guarded.HandleFunc("/brands/pipeline", brandsHandler.ListPipeline).Methods("GET")
	guarded.HandleFunc("/brands/pipeline", brandsHandler.CreatePipeline).Methods("POST")
	guarded.HandleFunc("/brands/pipeline/{brandId}", brandsHandler.UpdatePipeline).Methods("PATCH")
	guarded.HandleFunc("/brands/pipeline/{brandId}", brandsHandler.DeletePipeline).Methods("DELETE")
	guarded.HandleFunc("/brands/pipeline/{brandId}/reorder", brandsHandler.Reorder).Methods("POST")
	guarded.HandleFunc("/brands/pipeline/{brandId}/promote", brandsHandler.Promote).Methods("POST")

	// Brands: live and archive
	guarded.HandleFunc("/brands/live", brandsHandler.ListLive).Methods("GET")
	guarded.HandleFunc("/brands/live", brandsHandler.CreateLive).Methods("POST")
	guarded.HandleFunc("/brands/live/{brandId}/revenue", brandsHandler.LogRevenue).Methods("POST")
	guarded.HandleFunc("/brands/live/{brandId}/close", brandsHandler.CloseLive).Methods("POST")
	guarded.HandleFunc("/brands/archive", brandsHandler.ListArchive).Methods("GET")

	// Schedule
	guarded.HandleFunc("/schedule/work", scheduleHandler.ListWork).Methods("GET")
	guarded.HandleFunc("/schedule/work", scheduleHandler.CreateWork).Methods("POST")
	guarded.HandleFunc("/schedule/work/{itemId}", scheduleHandler.UpdateWork).Methods("PATCH")
	guarded.HandleFunc("/schedule/work/{itemId}", scheduleHandler.DeleteWork).Methods("DELETE")
	guarded.HandleFunc("/schedule/meetings", scheduleHandler.ListMeetings).Methods("GET")
	guarded.HandleFunc("/schedule/meetings", scheduleHandler.CreateMeeting).Methods("POST")
	guarded.HandleFunc("/schedule/meetings/{itemId}", scheduleHandler.UpdateMeeting).Methods("PATCH")
	guarded.HandleFunc("/schedule/meetings/{itemId}", scheduleHandler.DeleteMeeting).Methods("DELETE")

	// Planning
	guarded.HandleFunc("/planning/monthly/{monthKey}", planningHandler.GetMonthly).Methods("GET")
	guarded.HandleFunc("/planning/monthly/{monthKey}", planningHandler.SaveMonthly).Methods("PUT")
	guarded.HandleFunc("/planning/weekly/{weekKey}", planningHandler.GetWeekly).Methods("GET")
	guarded.HandleFunc("/planning/weekly/{weekKey}", planningHandler.SaveWeekly).Methods("PUT")
	guarded.HandleFunc("/planning/daily/{dateKey}", planningHandler.GetDaily).Methods("GET")
	guarded.HandleFunc("/planning/daily/{dateKey}", planningHandler.SaveDaily).Methods("PUT")

	// Day logs
	guarded.HandleFunc("/logs/timetable", dayLogsHandler.TimetableRange).Methods("GET")
	guarded.HandleFunc("/logs/timetable", dayLogsHandler.UpsertTimetable).Methods("PUT")
	guarded.HandleFunc("/logs/protocol", dayLogsHandler.ProtocolRange).Methods("GET")
	guarded.HandleFunc("/logs/protocol", dayLogsHandler.UpsertProtocol).Methods("PUT")
	guarded.HandleFunc("/logs/connections", dayLogsHandler.ConnectionsRange).Methods("GET")
	guarded.HandleFunc("/logs/connections", dayLogsHandler.UpsertConnections).Methods("PUT")
	guarded.HandleFunc("/logs/connections/{dateKey}", dayLogsHandler.GetConnections).Methods("GET")

	// Settings
	guarded.HandleFunc("/settings", settingsHandler.Get).Methods("GET")
	guarded.HandleFunc("/settings", settingsHandler.Put).Methods("PUT")

	return router
}
