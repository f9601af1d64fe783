package model

import (
	"time"

	"github.com/thislife/planner/internal/dates"
)

// Idea is a captured business idea, optionally linked to a brand by name.
type Idea struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Category    string    `json:"category"`
	LinkedBrand *string   `json:"linkedBrand,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WorkItem is a scheduled block of work.
type WorkItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date"`
	Time        string    `json:"time,omitempty"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MeetingItem is a scheduled meeting.
type MeetingItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	With      string    `json:"with,omitempty"`
	Date      string    `json:"date"`
	Time      string    `json:"time,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// PipelineBrand is a brand candidate waiting its turn. Order is an explicit
// integer sort field; reordering swaps the Order of two adjacent records.
type PipelineBrand struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	Category         string    `json:"category,omitempty"`
	PlannedStartDate string    `json:"plannedStartDate,omitempty"`
	SourceIdea       string    `json:"sourceIdea,omitempty"`
	Order            int       `json:"order"`
	CreatedAt        time.Time `json:"createdAt"`
}

// NextOrder returns the order for a newly created pipeline brand: one past
// the highest existing order. Using the list length instead would reissue an
// order after a delete and make neighbour swaps between the duplicates no-ops.
func NextOrder(pipeline []*PipelineBrand) int {
	next := 0
	for _, b := range pipeline {
		if b.Order >= next {
			next = b.Order + 1
		}
	}
	return next
}

// BrandLog is a dated free-text log line on the current brand.
type BrandLog struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// PhaseData carries the phase-specific checklists and notes of a current brand.
type PhaseData struct {
	Phase1 Phase1Data `json:"phase1"`
	Phase2 Phase2Data `json:"phase2"`
	Phase3 Phase3Data `json:"phase3"`
}

type Phase1Data struct {
	Checklist []string `json:"checklist"`
	Notes     string   `json:"notes"`
}

type Phase2Data struct {
	Checklist []string `json:"checklist"`
	Tasks     []string `json:"tasks"`
	Notes     string   `json:"notes"`
}

type Phase3Data struct {
	LaunchDate             string `json:"launchDate"`
	DistributionChannels   string `json:"distributionChannels"`
	PeopleAssigned         string `json:"peopleAssigned"`
	ExpectedMonthlyRevenue string `json:"expectedMonthlyRevenue"`
	RecheckDate            string `json:"recheckDate"`
	ExpectedOutcome        string `json:"expectedOutcome"`
}

// CurrentBrand is the singleton brand being actively built (phase 1-3).
// At most one exists at any time.
type CurrentBrand struct {
	Name             string              `json:"name"`
	Phase            int                 `json:"phase"`
	PhaseData        PhaseData           `json:"phaseData"`
	DailyLogs        map[string]BrandLog `json:"dailyLogs"`
	StartDate        string              `json:"startDate"`
	Category         string              `json:"category,omitempty"`
	Description      string              `json:"description,omitempty"`
	PlannedStartDate string              `json:"plannedStartDate,omitempty"`
	SourceIdea       string              `json:"sourceIdea,omitempty"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

// NewCurrentBrand builds a fresh phase-1 current brand starting today.
func NewCurrentBrand(name string, now time.Time) *CurrentBrand {
	return &CurrentBrand{
		Name:      name,
		Phase:     1,
		PhaseData: PhaseData{},
		DailyLogs: map[string]BrandLog{},
		StartDate: dates.Key(now),
		UpdatedAt: now,
	}
}

// LiveBrand is an automated, revenue-tracked brand. RevenueLog maps date key
// to the amount logged for that day; an explicit zero is a real entry.
type LiveBrand struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	StartDate  string             `json:"startDate"`
	RevenueLog map[string]float64 `json:"revenueLog"`
	Status     string             `json:"status"`
	Phase      int                `json:"phase,omitempty"`
	Source     string             `json:"source,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// TotalRevenue sums every logged amount for the brand.
func (b *LiveBrand) TotalRevenue() float64 {
	var total float64
	for _, amount := range b.RevenueLog {
		total += amount
	}
	return total
}

// MonthRevenue sums the amounts logged under the given month key.
func (b *LiveBrand) MonthRevenue(monthKey string) float64 {
	var total float64
	for dateKey, amount := range b.RevenueLog {
		if len(dateKey) >= len(monthKey) && dateKey[:len(monthKey)] == monthKey {
			total += amount
		}
	}
	return total
}

// ArchivedBrand is the terminal record of a closed brand.
type ArchivedBrand struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Reason       string    `json:"reason"`
	ClosedDate   string    `json:"closedDate"`
	TotalRevenue float64   `json:"totalRevenue"`
	Summary      string    `json:"summary,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// MonthlyPlan holds goals and notes for one month key.
type MonthlyPlan struct {
	MonthKey  string    `json:"monthKey"`
	Goals     []string  `json:"goals"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// WeeklyPlan holds goals, tasks and notes for one ISO-week key.
type WeeklyPlan struct {
	WeekKey   string    `json:"weekKey"`
	Goals     []string  `json:"goals"`
	Tasks     []string  `json:"tasks"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// DailyPlan holds the free-form plan for one date key.
type DailyPlan struct {
	DateKey   string    `json:"dateKey"`
	Items     []string  `json:"items"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// Timetable log statuses.
const (
	TaskComplete = "complete"
	TaskSkipped  = "skipped"
)

// Protocol log statuses.
const (
	ProtocolPassed = "passed"
	ProtocolFailed = "failed"
	ProtocolNA     = "na"
)

// TimetableLog records the status of one timetable task on one day.
// One logical record exists per (date, task) pair; later writes win.
type TimetableLog struct {
	Date      string     `json:"date"`
	TaskID    string     `json:"taskId"`
	Status    string     `json:"status"`
	Zone      dates.Zone `json:"zone"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ProtocolLog records the pass/fail outcome of one protocol item on one day.
type ProtocolLog struct {
	Date      string     `json:"date"`
	ItemID    string     `json:"itemId"`
	Status    string     `json:"status"`
	Zone      dates.Zone `json:"zone"`
	Auto      bool       `json:"auto"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ConnectionLog records the number of new connections made on one day.
type ConnectionLog struct {
	Date      string    `json:"date"`
	Count     int       `json:"count"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Settings is the singleton application settings record.
type Settings struct {
	DreamVersionDescription string    `json:"dreamVersionDescription"`
	CountdownStartDate      string    `json:"countdownStartDate"`
	LastVisitDate           *string   `json:"lastVisitDate,omitempty"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// DefaultSettings returns the settings used before the user saves any.
func DefaultSettings(now time.Time) Settings {
	return Settings{
		DreamVersionDescription: "Build an unstoppable body, mind, and business machine.",
		CountdownStartDate:      dates.Key(now),
	}
}

// StateSnapshot is the full namespaced key/value state for the single user.
// Values are stored as raw JSON strings, exactly as the local store keeps them.
type StateSnapshot map[string]string

// Snapshot metadata returned by the state endpoint.
type SnapshotRecord struct {
	State     StateSnapshot `json:"state"`
	UpdatedAt *time.Time    `json:"updatedAt"`
}
