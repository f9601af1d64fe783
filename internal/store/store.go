package store

import (
	"context"

	"github.com/thislife/planner/internal/model"
)

// Store exposes the persistence operations the planner needs.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Snapshots() Snapshots
	Ideas() Ideas
	Brands() Brands
	Schedule() Schedule
	Planning() Planning
	DayLogs() DayLogs
	Settings() Settings
}

// HealthPinger is implemented by stores that can cheaply verify connectivity.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}

// Snapshots stores the single user's whole-state blob.
type Snapshots interface {
	// Get returns the stored snapshot. An empty store yields an empty state
	// and a nil UpdatedAt, never an error.
	Get(ctx context.Context) (*model.SnapshotRecord, error)
	// Put replaces the snapshot wholesale (last write wins).
	Put(ctx context.Context, state model.StateSnapshot) error
}

// Ideas is the captured-ideas collection, listed newest first.
type Ideas interface {
	List(ctx context.Context) ([]*model.Idea, error)
	Create(ctx context.Context, idea *model.Idea) (*model.Idea, error)
	Update(ctx context.Context, id string, patch IdeaPatch) error
	Delete(ctx context.Context, id string) error
}

// IdeaPatch is a partial idea update; nil fields are left untouched.
// An empty LinkedBrand string clears the link.
type IdeaPatch struct {
	Text        *string
	Category    *string
	LinkedBrand *string
}

// Brands covers all four brand collections. Lifecycle rules (singleton
// current brand, one-way transitions) are enforced by the core service,
// not by the store.
type Brands interface {
	GetCurrent(ctx context.Context) (*model.CurrentBrand, error)
	PutCurrent(ctx context.Context, brand *model.CurrentBrand) error
	ClearCurrent(ctx context.Context) error

	ListPipeline(ctx context.Context) ([]*model.PipelineBrand, error)
	CreatePipeline(ctx context.Context, brand *model.PipelineBrand) (*model.PipelineBrand, error)
	UpdatePipeline(ctx context.Context, id string, patch PipelinePatch) error
	DeletePipeline(ctx context.Context, id string) error

	ListLive(ctx context.Context) ([]*model.LiveBrand, error)
	CreateLive(ctx context.Context, brand *model.LiveBrand) (*model.LiveBrand, error)
	LogRevenue(ctx context.Context, id, dateKey string, amount float64) error
	DeleteLive(ctx context.Context, id string) error

	ListArchive(ctx context.Context) ([]*model.ArchivedBrand, error)
	CreateArchive(ctx context.Context, brand *model.ArchivedBrand) (*model.ArchivedBrand, error)
}

// PipelinePatch is a partial pipeline-brand update; nil fields are untouched.
type PipelinePatch struct {
	Name             *string
	Description      *string
	Category         *string
	PlannedStartDate *string
	SourceIdea       *string
	Order            *int
}

// Schedule stores work items and meetings, ordered by (date, time).
type Schedule interface {
	ListWork(ctx context.Context) ([]*model.WorkItem, error)
	CreateWork(ctx context.Context, item *model.WorkItem) (*model.WorkItem, error)
	UpdateWork(ctx context.Context, id string, patch WorkPatch) error
	DeleteWork(ctx context.Context, id string) error

	ListMeetings(ctx context.Context) ([]*model.MeetingItem, error)
	CreateMeeting(ctx context.Context, item *model.MeetingItem) (*model.MeetingItem, error)
	UpdateMeeting(ctx context.Context, id string, patch MeetingPatch) error
	DeleteMeeting(ctx context.Context, id string) error
}

type WorkPatch struct {
	Title       *string
	Description *string
	Date        *string
	Time        *string
	Priority    *string
}

type MeetingPatch struct {
	Title *string
	With  *string
	Date  *string
	Time  *string
	Notes *string
}

// Planning stores month/week/day plans keyed by their natural keys.
// Get methods return nil (no error) when no plan is stored for the key;
// Save methods upsert on the key.
type Planning interface {
	GetMonthly(ctx context.Context, monthKey string) (*model.MonthlyPlan, error)
	SaveMonthly(ctx context.Context, plan *model.MonthlyPlan) error
	GetWeekly(ctx context.Context, weekKey string) (*model.WeeklyPlan, error)
	SaveWeekly(ctx context.Context, plan *model.WeeklyPlan) error
	GetDaily(ctx context.Context, dateKey string) (*model.DailyPlan, error)
	SaveDaily(ctx context.Context, plan *model.DailyPlan) error
}

// DayLogs stores the per-day logs: timetable completion, protocol outcomes
// and connection counts. Upserts are keyed on (date, item) with
// last-write-wins semantics. Range reads take an explicit date-key batch so
// callers can chunk wide ranges.
type DayLogs interface {
	UpsertTimetable(ctx context.Context, entry *model.TimetableLog) error
	TimetableRange(ctx context.Context, dateKeys []string) (map[string]map[string]*model.TimetableLog, error)

	UpsertProtocol(ctx context.Context, entry *model.ProtocolLog) error
	ProtocolRange(ctx context.Context, dateKeys []string) (map[string]map[string]*model.ProtocolLog, error)

	UpsertConnections(ctx context.Context, entry *model.ConnectionLog) error
	GetConnections(ctx context.Context, dateKey string) (*model.ConnectionLog, error)
	ConnectionsRange(ctx context.Context, dateKeys []string) (map[string]*model.ConnectionLog, error)
}

// Settings stores the singleton settings record. Get returns nil when the
// user has never saved settings.
type Settings interface {
	Get(ctx context.Context) (*model.Settings, error)
	Put(ctx context.Context, s *model.Settings) error
}
