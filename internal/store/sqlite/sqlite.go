// Package sqlite implements the planner store on a local SQLite file via
// modernc.org/sqlite. It is the richer backend for single-machine deployments.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thislife/planner/internal/dates"
	"github.com/thislife/planner/internal/model"
	"github.com/thislife/planner/internal/store"
)

const (
	snapshotRowID = "singleton"
	currentRowID  = "current"
	settingsRowID = "app"
)

// New opens the database at path, bootstraps the schema and returns a store.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewWithDB(db), nil
}

// NewWithDB wraps an existing connection (used by the factory and tests).
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Snapshots() store.Snapshots { return &snapshots{db: s.db} }
func (s *sqliteStore) Ideas() store.Ideas         { return &ideas{db: s.db} }
func (s *sqliteStore) Brands() store.Brands       { return &brands{db: s.db} }
func (s *sqliteStore) Schedule() store.Schedule   { return &schedule{db: s.db} }
func (s *sqliteStore) Planning() store.Planning   { return &planning{db: s.db} }
func (s *sqliteStore) DayLogs() store.DayLogs     { return &dayLogs{db: s.db} }
func (s *sqliteStore) Settings() store.Settings   { return &settings{db: s.db} }

// HealthPing implements store.HealthPinger.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func keysToArgs(keys []string) []any {
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	return args
}

// --- Snapshots ---

type snapshots struct{ db *sql.DB }

func (s *snapshots) Get(ctx context.Context) (*model.SnapshotRecord, error) {
	var raw string
	var updated time.Time
	row := s.db.QueryRowContext(ctx,
		`SELECT state, updated_at FROM app_state WHERE id = ?`, snapshotRowID)
	if err := row.Scan(&raw, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &model.SnapshotRecord{State: model.StateSnapshot{}}, nil
		}
		return nil, err
	}
	state := model.StateSnapshot{}
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		// Corrupt blob behaves as an empty store rather than failing reads.
		return &model.SnapshotRecord{State: model.StateSnapshot{}}, nil
	}
	return &model.SnapshotRecord{State: state, UpdatedAt: &updated}, nil
}

func (s *snapshots) Put(ctx context.Context, state model.StateSnapshot) error {
	if state == nil {
		state = model.StateSnapshot{}
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO app_state (id, state, updated_at) VALUES (?,?,?)
        ON CONFLICT(id) DO UPDATE SET state=excluded.state, updated_at=excluded.updated_at
    `, snapshotRowID, string(raw), time.Now().UTC())
	return err
}

// --- Ideas ---

type ideas struct{ db *sql.DB }

func (i *ideas) List(ctx context.Context) ([]*model.Idea, error) {
	rows, err := i.db.QueryContext(ctx, `
        SELECT id, text, category, linked_brand, created_at
        FROM ideas ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.Idea
	for rows.Next() {
		var idea model.Idea
		if err := rows.Scan(&idea.ID, &idea.Text, &idea.Category, &idea.LinkedBrand, &idea.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &idea)
	}
	return out, rows.Err()
}

func (i *ideas) Create(ctx context.Context, idea *model.Idea) (*model.Idea, error) {
	out := *idea
	if out.ID == "" {
		out.ID = "idea_" + uuid.New().String()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	_, err := i.db.ExecContext(ctx, `
        INSERT INTO ideas (id, text, category, linked_brand, created_at) VALUES (?,?,?,?,?)
    `, out.ID, out.Text, out.Category, out.LinkedBrand, out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (i *ideas) Update(ctx context.Context, id string, patch store.IdeaPatch) error {
	sets := []string{}
	args := []any{}
	if patch.Text != nil {
		sets = append(sets, "text=?")
		args = append(args, *patch.Text)
	}
	if patch.Category != nil {
		sets = append(sets, "category=?")
		args = append(args, *patch.Category)
	}
	if patch.LinkedBrand != nil {
		sets = append(sets, "linked_brand=?")
		if *patch.LinkedBrand == "" {
			args = append(args, nil)
		} else {
			args = append(args, *patch.LinkedBrand)
		}
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := i.db.ExecContext(ctx,
		`UPDATE ideas SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (i *ideas) Delete(ctx context.Context, id string) error {
	res, err := i.db.ExecContext(ctx, `DELETE FROM ideas WHERE id=?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// --- Brands ---

type brands struct{ db *sql.DB }

func (b *brands) GetCurrent(ctx context.Context) (*model.CurrentBrand, error) {
	var raw string
	row := b.db.QueryRowContext(ctx,
		`SELECT data FROM brands_current WHERE id=?`, currentRowID)
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var brand model.CurrentBrand
	if err := json.Unmarshal([]byte(raw), &brand); err != nil {
		return nil, err
	}
	return &brand, nil
}

func (b *brands) PutCurrent(ctx context.Context, brand *model.CurrentBrand) error {
	raw, err := json.Marshal(brand)
	if err != nil {
		return err
	}
	_, err = b.db.ExecContext(ctx, `
        INSERT INTO brands_current (id, data, updated_at) VALUES (?,?,?)
        ON CONFLICT(id) DO UPDATE SET data=excluded.data, updated_at=excluded.updated_at
    `, currentRowID, string(raw), time.Now().UTC())
	return err
}

func (b *brands) ClearCurrent(ctx context.Context) error {
	_, err := b.db.ExecContext(ctx, `DELETE FROM brands_current WHERE id=?`, currentRowID)
	return err
}

func (b *brands) ListPipeline(ctx context.Context) ([]*model.PipelineBrand, error) {
	rows, err := b.db.QueryContext(ctx, `
        SELECT id, name, description, category, planned_start_date, source_idea, sort_order, created_at
        FROM brands_pipeline ORDER BY sort_order ASC
    `)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.PipelineBrand
	for rows.Next() {
		var brand model.PipelineBrand
		if err := rows.Scan(&brand.ID, &brand.Name, &brand.Description, &brand.Category,
			&brand.PlannedStartDate, &brand.SourceIdea, &brand.Order, &brand.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &brand)
	}
	return out, rows.Err()
}

func (b *brands) CreatePipeline(ctx context.Context, brand *model.PipelineBrand) (*model.PipelineBrand, error) {
	out := *brand
	if out.ID == "" {
		out.ID = "pipeline_brand_" + uuid.New().String()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	_, err := b.db.ExecContext(ctx, `
        INSERT INTO brands_pipeline (id, name, description, category, planned_start_date, source_idea, sort_order, created_at)
        VALUES (?,?,?,?,?,?,?,?)
    `, out.ID, out.Name, out.Description, out.Category, out.PlannedStartDate, out.SourceIdea, out.Order, out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *brands) UpdatePipeline(ctx context.Context, id string, patch store.PipelinePatch) error {
	sets := []string{}
	args := []any{}
	if patch.Name != nil {
		sets = append(sets, "name=?")
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		sets = append(sets, "description=?")
		args = append(args, *patch.Description)
	}
	if patch.Category != nil {
		sets = append(sets, "category=?")
		args = append(args, *patch.Category)
	}
	if patch.PlannedStartDate != nil {
		sets = append(sets, "planned_start_date=?")
		args = append(args, *patch.PlannedStartDate)
	}
	if patch.SourceIdea != nil {
		sets = append(sets, "source_idea=?")
		args = append(args, *patch.SourceIdea)
	}
	if patch.Order != nil {
		sets = append(sets, "sort_order=?")
		args = append(args, *patch.Order)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := b.db.ExecContext(ctx,
		`UPDATE brands_pipeline SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (b *brands) DeletePipeline(ctx context.Context, id string) error {
	res, err := b.db.ExecContext(ctx, `DELETE FROM brands_pipeline WHERE id=?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (b *brands) ListLive(ctx context.Context) ([]*model.LiveBrand, error) {
	rows, err := b.db.QueryContext(ctx, `
        SELECT id, name, start_date, revenue_log, status, phase, source, created_at
        FROM brands_live ORDER BY created_at ASC
    `)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.LiveBrand
	for rows.Next() {
		var brand model.LiveBrand
		var revenueRaw string
		var phase sql.NullInt64
		var source sql.NullString
		if err := rows.Scan(&brand.ID, &brand.Name, &brand.StartDate, &revenueRaw,
			&brand.Status, &phase, &source, &brand.CreatedAt); err != nil {
			return nil, err
		}
		brand.RevenueLog = map[string]float64{}
		_ = json.Unmarshal([]byte(revenueRaw), &brand.RevenueLog)
		if phase.Valid {
			brand.Phase = int(phase.Int64)
		}
		if source.Valid {
			brand.Source = source.String
		}
		out = append(out, &brand)
	}
	return out, rows.Err()
}

func (b *brands) CreateLive(ctx context.Context, brand *model.LiveBrand) (*model.LiveBrand, error) {
	out := *brand
	if out.ID == "" {
		out.ID = "live_brand_" + uuid.New().String()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	if out.Status == "" {
		out.Status = "active"
	}
	if out.RevenueLog == nil {
		out.RevenueLog = map[string]float64{}
	}
	revenueRaw, err := json.Marshal(out.RevenueLog)
	if err != nil {
		return nil, err
	}
	_, err = b.db.ExecContext(ctx, `
        INSERT INTO brands_live (id, name, start_date, revenue_log, status, phase, source, created_at)
        VALUES (?,?,?,?,?,?,?,?)
    `, out.ID, out.Name, out.StartDate, string(revenueRaw), out.Status,
		nullableInt(out.Phase), nullableString(out.Source), out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *brands) LogRevenue(ctx context.Context, id, dateKey string, amount float64) error {
	// Read-modify-write on the JSON log; a zero amount is a real entry.
	var revenueRaw string
	row := b.db.QueryRowContext(ctx, `SELECT revenue_log FROM brands_live WHERE id=?`, id)
	if err := row.Scan(&revenueRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ErrNotFound
		}
		return err
	}
	log := map[string]float64{}
	_ = json.Unmarshal([]byte(revenueRaw), &log)
	log[dateKey] = amount
	next, err := json.Marshal(log)
	if err != nil {
		return err
	}
	_, err = b.db.ExecContext(ctx, `UPDATE brands_live SET revenue_log=? WHERE id=?`, string(next), id)
	return err
}

func (b *brands) DeleteLive(ctx context.Context, id string) error {
	res, err := b.db.ExecContext(ctx, `DELETE FROM brands_live WHERE id=?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (b *brands) ListArchive(ctx context.Context) ([]*model.ArchivedBrand, error) {
	rows, err := b.db.QueryContext(ctx, `
        SELECT id, name, reason, closed_date, total_revenue, summary, created_at
        FROM brands_archive ORDER BY created_at ASC
    `)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.ArchivedBrand
	for rows.Next() {
		var brand model.ArchivedBrand
		if err := rows.Scan(&brand.ID, &brand.Name, &brand.Reason, &brand.ClosedDate,
			&brand.TotalRevenue, &brand.Summary, &brand.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &brand)
	}
	return out, rows.Err()
}

func (b *brands) CreateArchive(ctx context.Context, brand *model.ArchivedBrand) (*model.ArchivedBrand, error) {
	out := *brand
	if out.ID == "" {
		out.ID = "archive_brand_" + uuid.New().String()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	_, err := b.db.ExecContext(ctx, `
        INSERT INTO brands_archive (id, name, reason, closed_date, total_revenue, summary, created_at)
        VALUES (?,?,?,?,?,?,?)
    `, out.ID, out.Name, out.Reason, out.ClosedDate, out.TotalRevenue, out.Summary, out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Schedule ---

type schedule struct{ db *sql.DB }

func (s *schedule) ListWork(ctx context.Context) ([]*model.WorkItem, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, title, description, date, time, priority, created_at
        FROM work_schedule ORDER BY date ASC, time ASC
    `)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.WorkItem
	for rows.Next() {
		var item model.WorkItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Date,
			&item.Time, &item.Priority, &item.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &item)
	}
	return out, rows.Err()
}

func (s *schedule) CreateWork(ctx context.Context, item *model.WorkItem) (*model.WorkItem, error) {
	out := *item
	if out.ID == "" {
		out.ID = "work_" + uuid.New().String()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	if out.Priority == "" {
		out.Priority = "Medium"
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO work_schedule (id, title, description, date, time, priority, created_at)
        VALUES (?,?,?,?,?,?,?)
    `, out.ID, out.Title, out.Description, out.Date, out.Time, out.Priority, out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *schedule) UpdateWork(ctx context.Context, id string, patch store.WorkPatch) error {
	sets := []string{}
	args := []any{}
	if patch.Title != nil {
		sets = append(sets, "title=?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description=?")
		args = append(args, *patch.Description)
	}
	if patch.Date != nil {
		sets = append(sets, "date=?")
		args = append(args, *patch.Date)
	}
	if patch.Time != nil {
		sets = append(sets, "time=?")
		args = append(args, *patch.Time)
	}
	if patch.Priority != nil {
		sets = append(sets, "priority=?")
		args = append(args, *patch.Priority)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		`UPDATE work_schedule SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *schedule) DeleteWork(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM work_schedule WHERE id=?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *schedule) ListMeetings(ctx context.Context) ([]*model.MeetingItem, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, title, with_whom, date, time, notes, created_at
        FROM meetings_schedule ORDER BY date ASC, time ASC
    `)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.MeetingItem
	for rows.Next() {
		var item model.MeetingItem
		if err := rows.Scan(&item.ID, &item.Title, &item.With, &item.Date,
			&item.Time, &item.Notes, &item.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &item)
	}
	return out, rows.Err()
}

func (s *schedule) CreateMeeting(ctx context.Context, item *model.MeetingItem) (*model.MeetingItem, error) {
	out := *item
	if out.ID == "" {
		out.ID = "meeting_" + uuid.New().String()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO meetings_schedule (id, title, with_whom, date, time, notes, created_at)
        VALUES (?,?,?,?,?,?,?)
    `, out.ID, out.Title, out.With, out.Date, out.Time, out.Notes, out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *schedule) UpdateMeeting(ctx context.Context, id string, patch store.MeetingPatch) error {
	sets := []string{}
	args := []any{}
	if patch.Title != nil {
		sets = append(sets, "title=?")
		args = append(args, *patch.Title)
	}
	if patch.With != nil {
		sets = append(sets, "with_whom=?")
		args = append(args, *patch.With)
	}
	if patch.Date != nil {
		sets = append(sets, "date=?")
		args = append(args, *patch.Date)
	}
	if patch.Time != nil {
		sets = append(sets, "time=?")
		args = append(args, *patch.Time)
	}
	if patch.Notes != nil {
		sets = append(sets, "notes=?")
		args = append(args, *patch.Notes)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		`UPDATE meetings_schedule SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *schedule) DeleteMeeting(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM meetings_schedule WHERE id=?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// --- Planning ---

type planning struct{ db *sql.DB }

func (p *planning) GetMonthly(ctx context.Context, monthKey string) (*model.MonthlyPlan, error) {
	var goalsRaw string
	plan := model.MonthlyPlan{MonthKey: monthKey}
	row := p.db.QueryRowContext(ctx,
		`SELECT goals, notes, created_at FROM planning_monthly WHERE month_key=?`, monthKey)
	if err := row.Scan(&goalsRaw, &plan.Notes, &plan.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	_ = json.Unmarshal([]byte(goalsRaw), &plan.Goals)
	return &plan, nil
}

func (p *planning) SaveMonthly(ctx context.Context, plan *model.MonthlyPlan) error {
	goalsRaw, err := json.Marshal(emptySlice(plan.Goals))
	if err != nil {
		return err
	}
	created := plan.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err = p.db.ExecContext(ctx, `
        INSERT INTO planning_monthly (month_key, goals, notes, created_at) VALUES (?,?,?,?)
        ON CONFLICT(month_key) DO UPDATE SET goals=excluded.goals, notes=excluded.notes, created_at=excluded.created_at
    `, plan.MonthKey, string(goalsRaw), plan.Notes, created)
	return err
}

func (p *planning) GetWeekly(ctx context.Context, weekKey string) (*model.WeeklyPlan, error) {
	var goalsRaw, tasksRaw string
	plan := model.WeeklyPlan{WeekKey: weekKey}
	row := p.db.QueryRowContext(ctx,
		`SELECT goals, tasks, notes, created_at FROM planning_weekly WHERE week_key=?`, weekKey)
	if err := row.Scan(&goalsRaw, &tasksRaw, &plan.Notes, &plan.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	_ = json.Unmarshal([]byte(goalsRaw), &plan.Goals)
	_ = json.Unmarshal([]byte(tasksRaw), &plan.Tasks)
	return &plan, nil
}

func (p *planning) SaveWeekly(ctx context.Context, plan *model.WeeklyPlan) error {
	goalsRaw, err := json.Marshal(emptySlice(plan.Goals))
	if err != nil {
		return err
	}
	tasksRaw, err := json.Marshal(emptySlice(plan.Tasks))
	if err != nil {
		return err
	}
	created := plan.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err = p.db.ExecContext(ctx, `
        INSERT INTO planning_weekly (week_key, goals, tasks, notes, created_at) VALUES (?,?,?,?,?)
        ON CONFLICT(week_key) DO UPDATE SET goals=excluded.goals, tasks=excluded.tasks, notes=excluded.notes, created_at=excluded.created_at
    `, plan.WeekKey, string(goalsRaw), string(tasksRaw), plan.Notes, created)
	return err
}

func (p *planning) GetDaily(ctx context.Context, dateKey string) (*model.DailyPlan, error) {
	var itemsRaw string
	plan := model.DailyPlan{DateKey: dateKey}
	row := p.db.QueryRowContext(ctx,
		`SELECT items, notes, created_at FROM planning_daily WHERE date_key=?`, dateKey)
	if err := row.Scan(&itemsRaw, &plan.Notes, &plan.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	_ = json.Unmarshal([]byte(itemsRaw), &plan.Items)
	return &plan, nil
}

func (p *planning) SaveDaily(ctx context.Context, plan *model.DailyPlan) error {
	itemsRaw, err := json.Marshal(emptySlice(plan.Items))
	if err != nil {
		return err
	}
	created := plan.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err = p.db.ExecContext(ctx, `
        INSERT INTO planning_daily (date_key, items, notes, created_at) VALUES (?,?,?,?)
        ON CONFLICT(date_key) DO UPDATE SET items=excluded.items, notes=excluded.notes, created_at=excluded.created_at
    `, plan.DateKey, string(itemsRaw), plan.Notes, created)
	return err
}

// --- DayLogs ---

type dayLogs struct{ db *sql.DB }

func (d *dayLogs) UpsertTimetable(ctx context.Context, entry *model.TimetableLog) error {
	updated := entry.UpdatedAt
	if updated.IsZero() {
		updated = time.Now().UTC()
	}
	_, err := d.db.ExecContext(ctx, `
        INSERT INTO timetable_logs (date, task_id, status, zone, updated_at) VALUES (?,?,?,?,?)
        ON CONFLICT(date, task_id) DO UPDATE SET status=excluded.status, zone=excluded.zone, updated_at=excluded.updated_at
    `, entry.Date, entry.TaskID, entry.Status, string(entry.Zone), updated)
	return err
}

func (d *dayLogs) TimetableRange(ctx context.Context, dateKeys []string) (map[string]map[string]*model.TimetableLog, error) {
	out := make(map[string]map[string]*model.TimetableLog, len(dateKeys))
	for _, key := range dateKeys {
		out[key] = map[string]*model.TimetableLog{}
	}
	if len(dateKeys) == 0 {
		return out, nil
	}
	rows, err := d.db.QueryContext(ctx, `
        SELECT date, task_id, status, zone, updated_at FROM timetable_logs
        WHERE date IN (`+placeholders(len(dateKeys))+`)
    `, keysToArgs(dateKeys)...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var entry model.TimetableLog
		var zone string
		if err := rows.Scan(&entry.Date, &entry.TaskID, &entry.Status, &zone, &entry.UpdatedAt); err != nil {
			return nil, err
		}
		entry.Zone = dates.Zone(zone)
		if out[entry.Date] == nil {
			out[entry.Date] = map[string]*model.TimetableLog{}
		}
		out[entry.Date][entry.TaskID] = &entry
	}
	return out, rows.Err()
}

func (d *dayLogs) UpsertProtocol(ctx context.Context, entry *model.ProtocolLog) error {
	updated := entry.UpdatedAt
	if updated.IsZero() {
		updated = time.Now().UTC()
	}
	_, err := d.db.ExecContext(ctx, `
        INSERT INTO protocol_logs (date, item_id, status, zone, auto, updated_at) VALUES (?,?,?,?,?,?)
        ON CONFLICT(date, item_id) DO UPDATE SET status=excluded.status, zone=excluded.zone, auto=excluded.auto, updated_at=excluded.updated_at
    `, entry.Date, entry.ItemID, entry.Status, string(entry.Zone), entry.Auto, updated)
	return err
}

func (d *dayLogs) ProtocolRange(ctx context.Context, dateKeys []string) (map[string]map[string]*model.ProtocolLog, error) {
	out := make(map[string]map[string]*model.ProtocolLog, len(dateKeys))
	for _, key := range dateKeys {
		out[key] = map[string]*model.ProtocolLog{}
	}
	if len(dateKeys) == 0 {
		return out, nil
	}
	rows, err := d.db.QueryContext(ctx, `
        SELECT date, item_id, status, zone, auto, updated_at FROM protocol_logs
        WHERE date IN (`+placeholders(len(dateKeys))+`)
    `, keysToArgs(dateKeys)...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var entry model.ProtocolLog
		var zone string
		if err := rows.Scan(&entry.Date, &entry.ItemID, &entry.Status, &zone, &entry.Auto, &entry.UpdatedAt); err != nil {
			return nil, err
		}
		entry.Zone = dates.Zone(zone)
		if out[entry.Date] == nil {
			out[entry.Date] = map[string]*model.ProtocolLog{}
		}
		out[entry.Date][entry.ItemID] = &entry
	}
	return out, rows.Err()
}

func (d *dayLogs) UpsertConnections(ctx context.Context, entry *model.ConnectionLog) error {
	updated := entry.UpdatedAt
	if updated.IsZero() {
		updated = time.Now().UTC()
	}
	_, err := d.db.ExecContext(ctx, `
        INSERT INTO connections (date, count, updated_at) VALUES (?,?,?)
        ON CONFLICT(date) DO UPDATE SET count=excluded.count, updated_at=excluded.updated_at
    `, entry.Date, entry.Count, updated)
	return err
}

func (d *dayLogs) GetConnections(ctx context.Context, dateKey string) (*model.ConnectionLog, error) {
	var entry model.ConnectionLog
	row := d.db.QueryRowContext(ctx,
		`SELECT date, count, updated_at FROM connections WHERE date=?`, dateKey)
	if err := row.Scan(&entry.Date, &entry.Count, &entry.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (d *dayLogs) ConnectionsRange(ctx context.Context, dateKeys []string) (map[string]*model.ConnectionLog, error) {
	out := make(map[string]*model.ConnectionLog, len(dateKeys))
	if len(dateKeys) == 0 {
		return out, nil
	}
	rows, err := d.db.QueryContext(ctx, `
        SELECT date, count, updated_at FROM connections
        WHERE date IN (`+placeholders(len(dateKeys))+`)
    `, keysToArgs(dateKeys)...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var entry model.ConnectionLog
		if err := rows.Scan(&entry.Date, &entry.Count, &entry.UpdatedAt); err != nil {
			return nil, err
		}
		out[entry.Date] = &entry
	}
	return out, rows.Err()
}

// --- Settings ---

type settings struct{ db *sql.DB }

func (s *settings) Get(ctx context.Context) (*model.Settings, error) {
	var out model.Settings
	row := s.db.QueryRowContext(ctx, `
        SELECT dream_version_description, countdown_start_date, last_visit_date, updated_at
        FROM settings_app WHERE id=?
    `, settingsRowID)
	if err := row.Scan(&out.DreamVersionDescription, &out.CountdownStartDate, &out.LastVisitDate, &out.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (s *settings) Put(ctx context.Context, in *model.Settings) error {
	updated := in.UpdatedAt
	if updated.IsZero() {
		updated = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO settings_app (id, dream_version_description, countdown_start_date, last_visit_date, updated_at)
        VALUES (?,?,?,?,?)
        ON CONFLICT(id) DO UPDATE SET
            dream_version_description=excluded.dream_version_description,
            countdown_start_date=excluded.countdown_start_date,
            last_visit_date=excluded.last_visit_date,
            updated_at=excluded.updated_at
    `, settingsRowID, in.DreamVersionDescription, in.CountdownStartDate, in.LastVisitDate, updated)
	return err
}

// --- helpers ---

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func nullableInt(v int) any {
	if v == 0 {
		return nil
	}
	return v
}

func nullableString(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func emptySlice(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
