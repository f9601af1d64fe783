// Package postgres implements the planner store on PostgreSQL via the pgx
// stdlib driver. It is the richer backend for hosted deployments.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/thislife/planner/internal/dates"
	"github.com/thislife/planner/internal/model"
	"github.com/thislife/planner/internal/store"
)

const (
	snapshotRowID = "singleton"
	currentRowID  = "current"
	settingsRowID = "app"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies
// connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// New opens the database, bootstraps the schema and returns a store.
func New(dsn string) (store.Store, error) {
	db, err := Open(dsn)
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
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Snapshots() store.Snapshots { return &snapshots{db: s.db} }
func (s *pgStore) Ideas() store.Ideas         { return &ideas{db: s.db} }
func (s *pgStore) Brands() store.Brands       { return &brands{db: s.db} }
func (s *pgStore) Schedule() store.Schedule   { return &schedule{db: s.db} }
func (s *pgStore) Planning() store.Planning   { return &planning{db: s.db} }
func (s *pgStore) DayLogs() store.DayLogs     { return &dayLogs{db: s.db} }
func (s *pgStore) Settings() store.Settings   { return &settings{db: s.db} }

// HealthPing implements store.HealthPinger.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// EnsureSchema creates the planner tables if they do not exist.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS app_state (
            id TEXT PRIMARY KEY,
            state JSONB NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS ideas (
            id TEXT PRIMARY KEY,
            text TEXT NOT NULL,
            category TEXT NOT NULL DEFAULT '',
            linked_brand TEXT,
            created_at TIMESTAMPTZ NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS brands_current (
            id TEXT PRIMARY KEY,
            data JSONB NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS brands_pipeline (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            category TEXT NOT NULL DEFAULT '',
            planned_start_date TEXT NOT NULL DEFAULT '',
            source_idea TEXT NOT NULL DEFAULT '',
            sort_order INTEGER NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS brands_live (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            start_date TEXT NOT NULL DEFAULT '',
            revenue_log JSONB NOT NULL DEFAULT '{}',
            status TEXT NOT NULL DEFAULT 'active',
            phase INTEGER,
            source TEXT,
            created_at TIMESTAMPTZ NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS brands_archive (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            reason TEXT NOT NULL DEFAULT '',
            closed_date TEXT NOT NULL DEFAULT '',
            total_revenue DOUBLE PRECISION NOT NULL DEFAULT 0,
            summary TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS work_schedule (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            date TEXT NOT NULL,
            time TEXT NOT NULL DEFAULT '',
            priority TEXT NOT NULL DEFAULT 'Medium',
            created_at TIMESTAMPTZ NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS meetings_schedule (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            with_whom TEXT NOT NULL DEFAULT '',
            date TEXT NOT NULL,
            time TEXT NOT NULL DEFAULT '',
            notes TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS planning_monthly (
            month_key TEXT PRIMARY KEY,
            goals JSONB NOT NULL DEFAULT '[]',
            notes TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS planning_weekly (
            week_key TEXT PRIMARY KEY,
            goals JSONB NOT NULL DEFAULT '[]',
            tasks JSONB NOT NULL DEFAULT '[]',
            notes TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS planning_daily (
            date_key TEXT PRIMARY KEY,
            items JSONB NOT NULL DEFAULT '[]',
            notes TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS timetable_logs (
            date TEXT NOT NULL,
            task_id TEXT NOT NULL,
            status TEXT NOT NULL,
            zone TEXT NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL,
            PRIMARY KEY (date, task_id)
        );`,
		`CREATE TABLE IF NOT EXISTS protocol_logs (
            date TEXT NOT NULL,
            item_id TEXT NOT NULL,
            status TEXT NOT NULL,
            zone TEXT NOT NULL,
            auto BOOLEAN NOT NULL DEFAULT FALSE,
            updated_at TIMESTAMPTZ NOT NULL,
            PRIMARY KEY (date, item_id)
        );`,
		`CREATE TABLE IF NOT EXISTS connections (
            date TEXT PRIMARY KEY,
            count INTEGER NOT NULL DEFAULT 0,
            updated_at TIMESTAMPTZ NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS settings_app (
            id TEXT PRIMARY KEY,
            dream_version_description TEXT NOT NULL DEFAULT '',
            countdown_start_date TEXT NOT NULL DEFAULT '',
            last_visit_date TEXT,
            updated_at TIMESTAMPTZ NOT NULL
        );`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// inPlaceholders renders "$start,$start+1,..." for an IN clause.
func inPlaceholders(n, start int) string {
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ",")
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
	var raw []byte
	var updated time.Time
	row := s.db.QueryRowContext(ctx,
		`SELECT state, updated_at FROM app_state WHERE id=$1`, snapshotRowID)
	if err := row.Scan(&raw, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &model.SnapshotRecord{State: model.StateSnapshot{}}, nil
		}
		return nil, err
	}
	state := model.StateSnapshot{}
	if err := json.Unmarshal(raw, &state); err != nil {
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
        INSERT INTO app_state (id, state, updated_at) VALUES ($1,$2,$3)
        ON CONFLICT (id) DO UPDATE SET state=EXCLUDED.state, updated_at=EXCLUDED.updated_at
    `, snapshotRowID, raw, time.Now().UTC())
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
        INSERT INTO ideas (id, text, category, linked_brand, created_at) VALUES ($1,$2,$3,$4,$5)
    `, out.ID, out.Text, out.Category, out.LinkedBrand, out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (i *ideas) Update(ctx context.Context, id string, patch store.IdeaPatch) error {
	sets := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if patch.Text != nil {
		sets = append(sets, "text="+arg(*patch.Text))
	}
	if patch.Category != nil {
		sets = append(sets, "category="+arg(*patch.Category))
	}
	if patch.LinkedBrand != nil {
		if *patch.LinkedBrand == "" {
			sets = append(sets, "linked_brand=NULL")
		} else {
			sets = append(sets, "linked_brand="+arg(*patch.LinkedBrand))
		}
	}
	if len(sets) == 0 {
		return nil
	}
	res, err := i.db.ExecContext(ctx,
		`UPDATE ideas SET `+strings.Join(sets, ", ")+` WHERE id=`+arg(id), args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (i *ideas) Delete(ctx context.Context, id string) error {
	res, err := i.db.ExecContext(ctx, `DELETE FROM ideas WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// --- Brands ---

type brands struct{ db *sql.DB }

func (b *brands) GetCurrent(ctx context.Context) (*model.CurrentBrand, error) {
	var raw []byte
	row := b.db.QueryRowContext(ctx,
		`SELECT data FROM brands_current WHERE id=$1`, currentRowID)
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var brand model.CurrentBrand
	if err := json.Unmarshal(raw, &brand); err != nil {
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
        INSERT INTO brands_current (id, data, updated_at) VALUES ($1,$2,$3)
        ON CONFLICT (id) DO UPDATE SET data=EXCLUDED.data, updated_at=EXCLUDED.updated_at
    `, currentRowID, raw, time.Now().UTC())
	return err
}

func (b *brands) ClearCurrent(ctx context.Context) error {
	_, err := b.db.ExecContext(ctx, `DELETE FROM brands_current WHERE id=$1`, currentRowID)
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
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    `, out.ID, out.Name, out.Description, out.Category, out.PlannedStartDate, out.SourceIdea, out.Order, out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *brands) UpdatePipeline(ctx context.Context, id string, patch store.PipelinePatch) error {
	sets := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if patch.Name != nil {
		sets = append(sets, "name="+arg(*patch.Name))
	}
	if patch.Description != nil {
		sets = append(sets, "description="+arg(*patch.Description))
	}
	if patch.Category != nil {
		sets = append(sets, "category="+arg(*patch.Category))
	}
	if patch.PlannedStartDate != nil {
		sets = append(sets, "planned_start_date="+arg(*patch.PlannedStartDate))
	}
	if patch.SourceIdea != nil {
		sets = append(sets, "source_idea="+arg(*patch.SourceIdea))
	}
	if patch.Order != nil {
		sets = append(sets, "sort_order="+arg(*patch.Order))
	}
	if len(sets) == 0 {
		return nil
	}
	res, err := b.db.ExecContext(ctx,
		`UPDATE brands_pipeline SET `+strings.Join(sets, ", ")+` WHERE id=`+arg(id), args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (b *brands) DeletePipeline(ctx context.Context, id string) error {
	res, err := b.db.ExecContext(ctx, `DELETE FROM brands_pipeline WHERE id=$1`, id)
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
		var revenueRaw []byte
		var phase sql.NullInt64
		var source sql.NullString
		if err := rows.Scan(&brand.ID, &brand.Name, &brand.StartDate, &revenueRaw,
			&brand.Status, &phase, &source, &brand.CreatedAt); err != nil {
			return nil, err
		}
		brand.RevenueLog = map[string]float64{}
		_ = json.Unmarshal(revenueRaw, &brand.RevenueLog)
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
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    `, out.ID, out.Name, out.StartDate, revenueRaw, out.Status,
		nullableInt(out.Phase), nullableString(out.Source), out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *brands) LogRevenue(ctx context.Context, id, dateKey string, amount float64) error {
	// jsonb_set upserts the (date, amount) pair in place; explicit zero included.
	res, err := b.db.ExecContext(ctx, `
        UPDATE brands_live
        SET revenue_log = jsonb_set(revenue_log, ARRAY[$2], to_jsonb($3::double precision), true)
        WHERE id=$1
    `, id, dateKey, amount)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (b *brands) DeleteLive(ctx context.Context, id string) error {
	res, err := b.db.ExecContext(ctx, `DELETE FROM brands_live WHERE id=$1`, id)
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
        VALUES ($1,$2,$3,$4,$5,$6,$7)
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
        VALUES ($1,$2,$3,$4,$5,$6,$7)
    `, out.ID, out.Title, out.Description, out.Date, out.Time, out.Priority, out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *schedule) UpdateWork(ctx context.Context, id string, patch store.WorkPatch) error {
	sets := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if patch.Title != nil {
		sets = append(sets, "title="+arg(*patch.Title))
	}
	if patch.Description != nil {
		sets = append(sets, "description="+arg(*patch.Description))
	}
	if patch.Date != nil {
		sets = append(sets, "date="+arg(*patch.Date))
	}
	if patch.Time != nil {
		sets = append(sets, "time="+arg(*patch.Time))
	}
	if patch.Priority != nil {
		sets = append(sets, "priority="+arg(*patch.Priority))
	}
	if len(sets) == 0 {
		return nil
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE work_schedule SET `+strings.Join(sets, ", ")+` WHERE id=`+arg(id), args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *schedule) DeleteWork(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM work_schedule WHERE id=$1`, id)
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
        VALUES ($1,$2,$3,$4,$5,$6,$7)
    `, out.ID, out.Title, out.With, out.Date, out.Time, out.Notes, out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *schedule) UpdateMeeting(ctx context.Context, id string, patch store.MeetingPatch) error {
	sets := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if patch.Title != nil {
		sets = append(sets, "title="+arg(*patch.Title))
	}
	if patch.With != nil {
		sets = append(sets, "with_whom="+arg(*patch.With))
	}
	if patch.Date != nil {
		sets = append(sets, "date="+arg(*patch.Date))
	}
	if patch.Time != nil {
		sets = append(sets, "time="+arg(*patch.Time))
	}
	if patch.Notes != nil {
		sets = append(sets, "notes="+arg(*patch.Notes))
	}
	if len(sets) == 0 {
		return nil
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE meetings_schedule SET `+strings.Join(sets, ", ")+` WHERE id=`+arg(id), args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *schedule) DeleteMeeting(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM meetings_schedule WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// --- Planning ---

type planning struct{ db *sql.DB }

func (p *planning) GetMonthly(ctx context.Context, monthKey string) (*model.MonthlyPlan, error) {
	var goalsRaw []byte
	plan := model.MonthlyPlan{MonthKey: monthKey}
	row := p.db.QueryRowContext(ctx,
		`SELECT goals, notes, created_at FROM planning_monthly WHERE month_key=$1`, monthKey)
	if err := row.Scan(&goalsRaw, &plan.Notes, &plan.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	_ = json.Unmarshal(goalsRaw, &plan.Goals)
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
        INSERT INTO planning_monthly (month_key, goals, notes, created_at) VALUES ($1,$2,$3,$4)
        ON CONFLICT (month_key) DO UPDATE SET goals=EXCLUDED.goals, notes=EXCLUDED.notes, created_at=EXCLUDED.created_at
    `, plan.MonthKey, goalsRaw, plan.Notes, created)
	return err
}

func (p *planning) GetWeekly(ctx context.Context, weekKey string) (*model.WeeklyPlan, error) {
	var goalsRaw, tasksRaw []byte
	plan := model.WeeklyPlan{WeekKey: weekKey}
	row := p.db.QueryRowContext(ctx,
		`SELECT goals, tasks, notes, created_at FROM planning_weekly WHERE week_key=$1`, weekKey)
	if err := row.Scan(&goalsRaw, &tasksRaw, &plan.Notes, &plan.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	_ = json.Unmarshal(goalsRaw, &plan.Goals)
	_ = json.Unmarshal(tasksRaw, &plan.Tasks)
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
        INSERT INTO planning_weekly (week_key, goals, tasks, notes, created_at) VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (week_key) DO UPDATE SET goals=EXCLUDED.goals, tasks=EXCLUDED.tasks, notes=EXCLUDED.notes, created_at=EXCLUDED.created_at
    `, plan.WeekKey, goalsRaw, tasksRaw, plan.Notes, created)
	return err
}

func (p *planning) GetDaily(ctx context.Context, dateKey string) (*model.DailyPlan, error) {
	var itemsRaw []byte
	plan := model.DailyPlan{DateKey: dateKey}
	row := p.db.QueryRowContext(ctx,
		`SELECT items, notes, created_at FROM planning_daily WHERE date_key=$1`, dateKey)
	if err := row.Scan(&itemsRaw, &plan.Notes, &plan.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	_ = json.Unmarshal(itemsRaw, &plan.Items)
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
        INSERT INTO planning_daily (date_key, items, notes, created_at) VALUES ($1,$2,$3,$4)
        ON CONFLICT (date_key) DO UPDATE SET items=EXCLUDED.items, notes=EXCLUDED.notes, created_at=EXCLUDED.created_at
    `, plan.DateKey, itemsRaw, plan.Notes, created)
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
        INSERT INTO timetable_logs (date, task_id, status, zone, updated_at) VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (date, task_id) DO UPDATE SET status=EXCLUDED.status, zone=EXCLUDED.zone, updated_at=EXCLUDED.updated_at
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
        WHERE date IN (`+inPlaceholders(len(dateKeys), 1)+`)
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
        INSERT INTO protocol_logs (date, item_id, status, zone, auto, updated_at) VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT (date, item_id) DO UPDATE SET status=EXCLUDED.status, zone=EXCLUDED.zone, auto=EXCLUDED.auto, updated_at=EXCLUDED.updated_at
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
        WHERE date IN (`+inPlaceholders(len(dateKeys), 1)+`)
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
        INSERT INTO connections (date, count, updated_at) VALUES ($1,$2,$3)
        ON CONFLICT (date) DO UPDATE SET count=EXCLUDED.count, updated_at=EXCLUDED.updated_at
    `, entry.Date, entry.Count, updated)
	return err
}

func (d *dayLogs) GetConnections(ctx context.Context, dateKey string) (*model.ConnectionLog, error) {
	var entry model.ConnectionLog
	row := d.db.QueryRowContext(ctx,
		`SELECT date, count, updated_at FROM connections WHERE date=$1`, dateKey)
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
        WHERE date IN (`+inPlaceholders(len(dateKeys), 1)+`)
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
        FROM settings_app WHERE id=$1
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
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (id) DO UPDATE SET
            dream_version_description=EXCLUDED.dream_version_description,
            countdown_start_date=EXCLUDED.countdown_start_date,
            last_visit_date=EXCLUDED.last_visit_date,
            updated_at=EXCLUDED.updated_at
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
