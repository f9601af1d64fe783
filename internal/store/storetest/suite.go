package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/thislife/planner/internal/dates"
	"github.com/thislife/planner/internal/model"
	"github.com/thislife/planner/internal/store"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	// Snapshots: empty store yields empty state and nil UpdatedAt.
	rec, err := s.Snapshots().Get(ctx)
	if err != nil || rec == nil || rec.UpdatedAt != nil || len(rec.State) != 0 {
		t.Fatalf("Snapshots.Get empty: rec=%v err=%v", rec, err)
	}
	if err := s.Snapshots().Put(ctx, model.StateSnapshot{"thislife-ideas": `[]`}); err != nil {
		t.Fatalf("Snapshots.Put: %v", err)
	}
	rec, err = s.Snapshots().Get(ctx)
	if err != nil || rec.UpdatedAt == nil || rec.State["thislife-ideas"] != `[]` {
		t.Fatalf("Snapshots.Get after put: rec=%v err=%v", rec, err)
	}

	// Ideas
	idea, err := s.Ideas().Create(ctx, &model.Idea{Text: "pet brand", Category: "E-commerce"})
	if err != nil || idea.ID == "" {
		t.Fatalf("Ideas.Create: idea=%v err=%v", idea, err)
	}
	second, err := s.Ideas().Create(ctx, &model.Idea{Text: "newsletter", CreatedAt: time.Now().UTC().Add(time.Second)})
	if err != nil {
		t.Fatalf("Ideas.Create second: %v", err)
	}
	list, err := s.Ideas().List(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("Ideas.List: n=%d err=%v", len(list), err)
	}
	if list[0].ID != second.ID {
		t.Fatalf("Ideas.List: want newest first, got %s", list[0].ID)
	}
	if err := s.Ideas().Update(ctx, idea.ID, store.IdeaPatch{LinkedBrand: strPtr("pb-1")}); err != nil {
		t.Fatalf("Ideas.Update link: %v", err)
	}
	list, _ = s.Ideas().List(ctx)
	var got *model.Idea
	for _, it := range list {
		if it.ID == idea.ID {
			got = it
		}
	}
	if got == nil || got.LinkedBrand == nil || *got.LinkedBrand != "pb-1" {
		t.Fatalf("Ideas.Update: link not applied: %v", got)
	}
	// Empty LinkedBrand clears the link; other fields stay untouched.
	if err := s.Ideas().Update(ctx, idea.ID, store.IdeaPatch{LinkedBrand: strPtr("")}); err != nil {
		t.Fatalf("Ideas.Update clear: %v", err)
	}
	list, _ = s.Ideas().List(ctx)
	for _, it := range list {
		if it.ID == idea.ID && (it.LinkedBrand != nil || it.Text != "pet brand") {
			t.Fatalf("Ideas.Update clear: %v", it)
		}
	}
	if err := s.Ideas().Update(ctx, "idea_missing", store.IdeaPatch{Text: strPtr("x")}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Ideas.Update missing: err=%v", err)
	}
	if err := s.Ideas().Delete(ctx, second.ID); err != nil {
		t.Fatalf("Ideas.Delete: %v", err)
	}
	if err := s.Ideas().Delete(ctx, second.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Ideas.Delete repeat: err=%v", err)
	}

	// Current brand singleton slot
	if cur, err := s.Brands().GetCurrent(ctx); err != nil || cur != nil {
		t.Fatalf("Brands.GetCurrent empty: cur=%v err=%v", cur, err)
	}
	brand := model.NewCurrentBrand("Forge", time.Now().UTC())
	if err := s.Brands().PutCurrent(ctx, brand); err != nil {
		t.Fatalf("Brands.PutCurrent: %v", err)
	}
	cur, err := s.Brands().GetCurrent(ctx)
	if err != nil || cur == nil || cur.Name != "Forge" || cur.Phase != 1 {
		t.Fatalf("Brands.GetCurrent: cur=%v err=%v", cur, err)
	}
	if err := s.Brands().ClearCurrent(ctx); err != nil {
		t.Fatalf("Brands.ClearCurrent: %v", err)
	}
	if cur, _ := s.Brands().GetCurrent(ctx); cur != nil {
		t.Fatalf("Brands.GetCurrent after clear: %v", cur)
	}

	// Pipeline ordering
	p1, err := s.Brands().CreatePipeline(ctx, &model.PipelineBrand{Name: "Alpha", Order: 0})
	if err != nil {
		t.Fatalf("Brands.CreatePipeline: %v", err)
	}
	p2, err := s.Brands().CreatePipeline(ctx, &model.PipelineBrand{Name: "Beta", Order: 1})
	if err != nil {
		t.Fatalf("Brands.CreatePipeline second: %v", err)
	}
	if err := s.Brands().UpdatePipeline(ctx, p1.ID, store.PipelinePatch{Order: intPtr(1)}); err != nil {
		t.Fatalf("Brands.UpdatePipeline: %v", err)
	}
	if err := s.Brands().UpdatePipeline(ctx, p2.ID, store.PipelinePatch{Order: intPtr(0)}); err != nil {
		t.Fatalf("Brands.UpdatePipeline: %v", err)
	}
	pipeline, err := s.Brands().ListPipeline(ctx)
	if err != nil || len(pipeline) != 2 {
		t.Fatalf("Brands.ListPipeline: n=%d err=%v", len(pipeline), err)
	}
	if pipeline[0].ID != p2.ID || pipeline[1].ID != p1.ID {
		t.Fatalf("Brands.ListPipeline: order not applied: %s,%s", pipeline[0].Name, pipeline[1].Name)
	}
	if err := s.Brands().DeletePipeline(ctx, p2.ID); err != nil {
		t.Fatalf("Brands.DeletePipeline: %v", err)
	}

	// Live brands and revenue logging
	live, err := s.Brands().CreateLive(ctx, &model.LiveBrand{Name: "Forge", StartDate: "2026-03-01", Phase: 3, Source: "current_brand_transition"})
	if err != nil || live.ID == "" {
		t.Fatalf("Brands.CreateLive: live=%v err=%v", live, err)
	}
	if err := s.Brands().LogRevenue(ctx, live.ID, "2026-03-02", 120.5); err != nil {
		t.Fatalf("Brands.LogRevenue: %v", err)
	}
	// Explicit zero is a recorded value, not an absence.
	if err := s.Brands().LogRevenue(ctx, live.ID, "2026-03-03", 0); err != nil {
		t.Fatalf("Brands.LogRevenue zero: %v", err)
	}
	if err := s.Brands().LogRevenue(ctx, "live_brand_missing", "2026-03-02", 10); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Brands.LogRevenue missing: err=%v", err)
	}
	liveList, err := s.Brands().ListLive(ctx)
	if err != nil || len(liveList) != 1 {
		t.Fatalf("Brands.ListLive: n=%d err=%v", len(liveList), err)
	}
	gotLive := liveList[0]
	if gotLive.RevenueLog["2026-03-02"] != 120.5 {
		t.Fatalf("Brands.ListLive: revenue=%v", gotLive.RevenueLog)
	}
	if zero, ok := gotLive.RevenueLog["2026-03-03"]; !ok || zero != 0 {
		t.Fatalf("Brands.ListLive: zero entry lost: %v", gotLive.RevenueLog)
	}
	if gotLive.Phase != 3 || gotLive.Source != "current_brand_transition" {
		t.Fatalf("Brands.ListLive: provenance lost: %v", gotLive)
	}

	// Archive
	arch, err := s.Brands().CreateArchive(ctx, &model.ArchivedBrand{Name: "Forge", Reason: "automated_closed", ClosedDate: "2026-04-01", TotalRevenue: 120.5, Summary: "Forge closed after active run."})
	if err != nil || arch.ID == "" {
		t.Fatalf("Brands.CreateArchive: arch=%v err=%v", arch, err)
	}
	archList, err := s.Brands().ListArchive(ctx)
	if err != nil || len(archList) != 1 || archList[0].TotalRevenue != 120.5 {
		t.Fatalf("Brands.ListArchive: %v err=%v", archList, err)
	}
	if err := s.Brands().DeleteLive(ctx, live.ID); err != nil {
		t.Fatalf("Brands.DeleteLive: %v", err)
	}

	// Schedule
	w, err := s.Schedule().CreateWork(ctx, &model.WorkItem{Title: "Ship landing page", Date: "2026-03-05", Time: "09:00", Priority: "High"})
	if err != nil || w.ID == "" {
		t.Fatalf("Schedule.CreateWork: %v", err)
	}
	if err := s.Schedule().UpdateWork(ctx, w.ID, store.WorkPatch{Priority: strPtr("Low")}); err != nil {
		t.Fatalf("Schedule.UpdateWork: %v", err)
	}
	work, err := s.Schedule().ListWork(ctx)
	if err != nil || len(work) != 1 || work[0].Priority != "Low" || work[0].Title != "Ship landing page" {
		t.Fatalf("Schedule.ListWork: %v err=%v", work, err)
	}
	m, err := s.Schedule().CreateMeeting(ctx, &model.MeetingItem{Title: "Supplier call", With: "J. Doe", Date: "2026-03-06", Time: "14:00"})
	if err != nil || m.ID == "" {
		t.Fatalf("Schedule.CreateMeeting: %v", err)
	}
	if err := s.Schedule().UpdateMeeting(ctx, m.ID, store.MeetingPatch{Notes: strPtr("bring samples")}); err != nil {
		t.Fatalf("Schedule.UpdateMeeting: %v", err)
	}
	meetings, err := s.Schedule().ListMeetings(ctx)
	if err != nil || len(meetings) != 1 || meetings[0].Notes != "bring samples" {
		t.Fatalf("Schedule.ListMeetings: %v err=%v", meetings, err)
	}
	if err := s.Schedule().DeleteMeeting(ctx, m.ID); err != nil {
		t.Fatalf("Schedule.DeleteMeeting: %v", err)
	}
	if err := s.Schedule().DeleteWork(ctx, "work_missing"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Schedule.DeleteWork missing: err=%v", err)
	}

	// Planning: absent keys read back as nil, saves upsert.
	if plan, err := s.Planning().GetMonthly(ctx, "2026-03"); err != nil || plan != nil {
		t.Fatalf("Planning.GetMonthly absent: %v err=%v", plan, err)
	}
	if err := s.Planning().SaveMonthly(ctx, &model.MonthlyPlan{MonthKey: "2026-03", Goals: []string{"launch"}, Notes: "first month"}); err != nil {
		t.Fatalf("Planning.SaveMonthly: %v", err)
	}
	if err := s.Planning().SaveMonthly(ctx, &model.MonthlyPlan{MonthKey: "2026-03", Goals: []string{"launch", "10 sales"}}); err != nil {
		t.Fatalf("Planning.SaveMonthly upsert: %v", err)
	}
	monthly, err := s.Planning().GetMonthly(ctx, "2026-03")
	if err != nil || monthly == nil || len(monthly.Goals) != 2 {
		t.Fatalf("Planning.GetMonthly: %v err=%v", monthly, err)
	}
	if err := s.Planning().SaveWeekly(ctx, &model.WeeklyPlan{WeekKey: "2026-10", Goals: []string{"outreach"}, Tasks: []string{"email 20 leads"}}); err != nil {
		t.Fatalf("Planning.SaveWeekly: %v", err)
	}
	weekly, err := s.Planning().GetWeekly(ctx, "2026-10")
	if err != nil || weekly == nil || len(weekly.Tasks) != 1 {
		t.Fatalf("Planning.GetWeekly: %v err=%v", weekly, err)
	}
	if err := s.Planning().SaveDaily(ctx, &model.DailyPlan{DateKey: "2026-03-05", Items: []string{"record demo"}}); err != nil {
		t.Fatalf("Planning.SaveDaily: %v", err)
	}
	daily, err := s.Planning().GetDaily(ctx, "2026-03-05")
	if err != nil || daily == nil || len(daily.Items) != 1 {
		t.Fatalf("Planning.GetDaily: %v err=%v", daily, err)
	}

	// Day logs: last write wins per (date, item).
	if err := s.DayLogs().UpsertTimetable(ctx, &model.TimetableLog{Date: "2026-03-05", TaskID: "w1", Status: model.TaskComplete, Zone: dates.ZoneWorking}); err != nil {
		t.Fatalf("DayLogs.UpsertTimetable: %v", err)
	}
	if err := s.DayLogs().UpsertTimetable(ctx, &model.TimetableLog{Date: "2026-03-05", TaskID: "w1", Status: model.TaskSkipped, Zone: dates.ZoneWorking}); err != nil {
		t.Fatalf("DayLogs.UpsertTimetable overwrite: %v", err)
	}
	if err := s.DayLogs().UpsertTimetable(ctx, &model.TimetableLog{Date: "2026-03-06", TaskID: "w2", Status: model.TaskComplete, Zone: dates.ZoneWorking}); err != nil {
		t.Fatalf("DayLogs.UpsertTimetable: %v", err)
	}
	tt, err := s.DayLogs().TimetableRange(ctx, []string{"2026-03-05", "2026-03-06", "2026-03-07"})
	if err != nil {
		t.Fatalf("DayLogs.TimetableRange: %v", err)
	}
	if tt["2026-03-05"]["w1"] == nil || tt["2026-03-05"]["w1"].Status != model.TaskSkipped {
		t.Fatalf("DayLogs.TimetableRange: overwrite lost: %v", tt["2026-03-05"])
	}
	if len(tt["2026-03-07"]) != 0 {
		t.Fatalf("DayLogs.TimetableRange: phantom entries: %v", tt["2026-03-07"])
	}

	if err := s.DayLogs().UpsertProtocol(ctx, &model.ProtocolLog{Date: "2026-03-05", ItemID: "no_sugar", Status: model.ProtocolPassed, Zone: dates.ZoneWorking}); err != nil {
		t.Fatalf("DayLogs.UpsertProtocol: %v", err)
	}
	if err := s.DayLogs().UpsertProtocol(ctx, &model.ProtocolLog{Date: "2026-03-08", ItemID: "no_fap", Status: model.ProtocolNA, Zone: dates.ZoneWorking, Auto: true}); err != nil {
		t.Fatalf("DayLogs.UpsertProtocol auto: %v", err)
	}
	pr, err := s.DayLogs().ProtocolRange(ctx, []string{"2026-03-05", "2026-03-08"})
	if err != nil {
		t.Fatalf("DayLogs.ProtocolRange: %v", err)
	}
	if pr["2026-03-05"]["no_sugar"] == nil || pr["2026-03-05"]["no_sugar"].Status != model.ProtocolPassed {
		t.Fatalf("DayLogs.ProtocolRange: %v", pr["2026-03-05"])
	}
	if entry := pr["2026-03-08"]["no_fap"]; entry == nil || !entry.Auto {
		t.Fatalf("DayLogs.ProtocolRange: auto flag lost: %v", entry)
	}

	if err := s.DayLogs().UpsertConnections(ctx, &model.ConnectionLog{Date: "2026-03-05", Count: 7}); err != nil {
		t.Fatalf("DayLogs.UpsertConnections: %v", err)
	}
	if err := s.DayLogs().UpsertConnections(ctx, &model.ConnectionLog{Date: "2026-03-05", Count: 9}); err != nil {
		t.Fatalf("DayLogs.UpsertConnections overwrite: %v", err)
	}
	conn, err := s.DayLogs().GetConnections(ctx, "2026-03-05")
	if err != nil || conn == nil || conn.Count != 9 {
		t.Fatalf("DayLogs.GetConnections: %v err=%v", conn, err)
	}
	if conn, err := s.DayLogs().GetConnections(ctx, "2026-03-09"); err != nil || conn != nil {
		t.Fatalf("DayLogs.GetConnections absent: %v err=%v", conn, err)
	}
	connRange, err := s.DayLogs().ConnectionsRange(ctx, []string{"2026-03-05", "2026-03-09"})
	if err != nil || len(connRange) != 1 || connRange["2026-03-05"].Count != 9 {
		t.Fatalf("DayLogs.ConnectionsRange: %v err=%v", connRange, err)
	}

	// Settings singleton
	if got, err := s.Settings().Get(ctx); err != nil || got != nil {
		t.Fatalf("Settings.Get empty: %v err=%v", got, err)
	}
	visit := "2026-03-05"
	if err := s.Settings().Put(ctx, &model.Settings{DreamVersionDescription: "own the morning", CountdownStartDate: "2026-03-01", LastVisitDate: &visit}); err != nil {
		t.Fatalf("Settings.Put: %v", err)
	}
	settings, err := s.Settings().Get(ctx)
	if err != nil || settings == nil || settings.DreamVersionDescription != "own the morning" {
		t.Fatalf("Settings.Get: %v err=%v", settings, err)
	}
	if settings.LastVisitDate == nil || *settings.LastVisitDate != "2026-03-05" {
		t.Fatalf("Settings.Get: last visit lost: %v", settings.LastVisitDate)
	}
}
