// Package plan holds the static daily templates: the zone timetables, the
// behavioral protocol checklists, and the selectors that pick the right
// template for a given date.
package plan

import (
	"strconv"
	"strings"
	"time"

	"github.com/thislife/planner/internal/dates"
)

// Task is a single time-boxed timetable entry.
type Task struct {
	ID       string `json:"id"`
	Time     string `json:"time"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Optional bool   `json:"optional,omitempty"`
}

const (
	CategorySleep   = "sleep"
	CategoryFitness = "fitness"
	CategoryFood    = "food"
	CategoryWork    = "work"
	CategoryTravel  = "travel"
)

var workingTimetable = []Task{
	{ID: "w1", Time: "05:30", Title: "Wake up, drink 1L warm water, freshen up", Category: CategorySleep},
	{ID: "w2", Time: "06:00-07:00", Title: "Yoga (morning)", Category: CategoryFitness},
	{ID: "w3", Time: "07:30-09:00", Title: "Gym", Category: CategoryFitness},
	{ID: "w4", Time: "09:00-10:30", Title: "Bath, skincare, travel to office", Category: CategoryTravel},
	{ID: "w5", Time: "10:30", Title: "Breakfast: High-protein meal + 2 fruits + 1 banana + multivitamin + shilajit + Vitamin C + B12 + Vitamin D 2000IU", Category: CategoryFood},
	{ID: "w6", Time: "10:45", Title: "15-min roof walk", Category: CategoryFitness},
	{ID: "w7", Time: "11:00", Title: "Filter coffee + Headspace meditation (10-15 min)", Category: CategoryFood},
	{ID: "w8", Time: "11:30-14:30", Title: "Deep work sprint (3 hours, no interruptions, build & solve)", Category: CategoryWork},
	{ID: "w9", Time: "14:30-15:30", Title: "Lunch (tiffin) + post-lunch roof walk (me time)", Category: CategoryFood},
	{ID: "w10", Time: "15:30-16:00", Title: "Read book with coffee", Category: CategoryWork},
	{ID: "w11", Time: "16:00-16:10", Title: "Short meditation", Category: CategoryWork},
	{ID: "w12", Time: "16:10-16:30", Title: "Team meeting", Category: CategoryWork},
	{ID: "w13", Time: "16:30-17:30", Title: "Work with team", Category: CategoryWork},
	{ID: "w14", Time: "17:30-18:00", Title: "Pack up, close all devices", Category: CategoryWork},
	{ID: "w15", Time: "18:00-19:15", Title: "Yoga (evening batch, 18:15 start)", Category: CategoryFitness},
	{ID: "w16", Time: "20:00", Title: "Home, cook dinner (easy, same daily)", Category: CategoryFood},
	{ID: "w17", Time: "21:00", Title: "Post-dinner walk", Category: CategoryFitness},
	{ID: "w18", Time: "22:00", Title: "Chamomile tea", Category: CategoryFood},
	{ID: "w19", Time: "22:30-23:00", Title: "Shutdown & sleep (audio story on speaker)", Category: CategorySleep},
}

var nomadTimetable = []Task{
	{ID: "n1", Time: "06:00", Title: "Wake up, water", Category: CategorySleep},
	{ID: "n2", Time: "06:30-07:30", Title: "Yoga", Category: CategoryFitness},
	{ID: "n3", Time: "07:30-08:30", Title: "HIIT / bodyweight", Category: CategoryFitness},
	{ID: "n4", Time: "09:00", Title: "High-protein healthy breakfast", Category: CategoryFood},
	{ID: "n5", Time: "09:30-11:00", Title: "Exploration walk", Category: CategoryFitness},
	{ID: "n6", Time: "11:00-12:30", Title: "Deep work sprint", Category: CategoryWork},
	{ID: "n7", Time: "12:30-20:00", Title: "Travel, exploration, healthy meals", Category: CategoryTravel},
	{ID: "n8", Time: "20:00-21:00", Title: "Light healthy dinner", Category: CategoryFood},
	{ID: "n9", Time: "21:00-22:00", Title: "Post-dinner walk", Category: CategoryFitness},
	{ID: "n10", Time: "22:30-23:00", Title: "Shutdown & sleep", Category: CategorySleep},
}

var sundayTimetable = []Task{
	{ID: "s1", Time: "Anytime", Title: "Wake up when rested", Category: CategorySleep},
	{ID: "s2", Time: "Morning", Title: "Morning movement: light yoga or walk (optional)", Category: CategoryFitness, Optional: true},
	{ID: "s3", Time: "Day Block", Title: "Go out and explore OR stay home and fully recharge", Category: CategoryTravel},
	{ID: "s4", Time: "Evening", Title: "Light dinner, early sleep", Category: CategoryFood},
}

func wednesdayTimetable(zone dates.Zone) []Task {
	prefix := "wed-" + strings.ToLower(string(zone))
	common := []Task{
		{ID: prefix + "-1", Time: "11:00-13:00", Title: "Research all new AI tools launched in the last 7 days (ProductHunt, X/Twitter, newsletters, YouTube)", Category: CategoryWork},
		{ID: prefix + "-2", Time: "13:00-15:00", Title: "Test the most promising tools found", Category: CategoryWork},
		{ID: prefix + "-3", Time: "15:00-16:00", Title: "Lunch + walk (me time)", Category: CategoryFood},
		{ID: prefix + "-4", Time: "16:00-17:30", Title: "Watch an informative / educational podcast", Category: CategoryWork},
	}

	if zone == dates.ZoneWorking {
		tasks := []Task{
			{ID: "wed-w1", Time: "05:30", Title: "Wake up, drink 1L warm water, freshen up", Category: CategorySleep},
			{ID: "wed-w2", Time: "06:00-07:00", Title: "Yoga (morning)", Category: CategoryFitness},
			{ID: "wed-w3", Time: "07:30-09:00", Title: "Gym", Category: CategoryFitness},
			{ID: "wed-w4", Time: "10:30", Title: "Breakfast: High-protein meal + 2 fruits + 1 banana + multivitamin + shilajit + Vitamin C + B12 + Vitamin D 2000IU", Category: CategoryFood},
		}
		tasks = append(tasks, common...)
		return append(tasks,
			Task{ID: "wed-w5", Time: "18:00-19:15", Title: "Yoga (evening batch)", Category: CategoryFitness},
			Task{ID: "wed-w6", Time: "20:00", Title: "Home, cook dinner", Category: CategoryFood},
			Task{ID: "wed-w7", Time: "21:00", Title: "Post-dinner walk", Category: CategoryFitness},
			Task{ID: "wed-w8", Time: "22:30-23:00", Title: "Shutdown & sleep", Category: CategorySleep},
		)
	}

	tasks := []Task{
		{ID: "wed-n1", Time: "06:00", Title: "Wake up, water", Category: CategorySleep},
		{ID: "wed-n2", Time: "06:30-07:30", Title: "Yoga", Category: CategoryFitness},
		{ID: "wed-n3", Time: "07:30-08:30", Title: "HIIT / bodyweight", Category: CategoryFitness},
		{ID: "wed-n4", Time: "09:00", Title: "High-protein healthy breakfast", Category: CategoryFood},
	}
	tasks = append(tasks, common...)
	return append(tasks,
		Task{ID: "wed-n5", Time: "20:00-21:00", Title: "Light healthy dinner", Category: CategoryFood},
		Task{ID: "wed-n6", Time: "21:00-22:00", Title: "Post-dinner walk", Category: CategoryFitness},
		Task{ID: "wed-n7", Time: "22:30-23:00", Title: "Shutdown & sleep", Category: CategorySleep},
	)
}

// Timetable returns the timetable template for the given zone and day type.
func Timetable(zone dates.Zone, dayType dates.DayType) []Task {
	switch dayType {
	case dates.DaySunday:
		return sundayTimetable
	case dates.DayWednesday:
		return wednesdayTimetable(zone)
	default:
		if zone == dates.ZoneWorking {
			return workingTimetable
		}
		return nomadTimetable
	}
}

// TimetableForDate selects the template purely from the calendar date.
func TimetableForDate(t time.Time) []Task {
	return Timetable(dates.ZoneFor(t), dates.DayTypeFor(t))
}

// RequiredTasks filters out optional entries; completion percentages are
// computed against this set only.
func RequiredTasks(tasks []Task) []Task {
	required := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if !task.Optional {
			required = append(required, task)
		}
	}
	return required
}

// WorkoutItems returns the fitness entries of a timetable. On Wednesdays only
// morning sessions count (start hour before 11:00); the research blocks push
// the rest of the day out of workout territory.
func WorkoutItems(tasks []Task, dayType dates.DayType) []Task {
	var items []Task
	for _, task := range tasks {
		if task.Category != CategoryFitness {
			continue
		}
		if dayType == dates.DayWednesday {
			hour, ok := startHour(task.Time)
			if !ok || hour >= 11 {
				continue
			}
		}
		items = append(items, task)
	}
	return items
}

// DietItems returns the food entries of a timetable.
func DietItems(tasks []Task) []Task {
	var items []Task
	for _, task := range tasks {
		if task.Category == CategoryFood {
			items = append(items, task)
		}
	}
	return items
}

// BreakfastSuggestion is the fixed working-zone breakfast checklist.
var BreakfastSuggestion = struct {
	Title string
	Items []string
}{
	Title: "Daily Breakfast (Working Zone)",
	Items: []string{
		"4 scrambled eggs with spinach OR Greek yogurt (200g) with oats",
		"2 seasonal fruits (banana counts as one)",
		"1 banana",
		"Supplements: 1 multivitamin, 1 shilajit tablet, 1 Vitamin C, 1 B12, 1 Vitamin D 2000IU",
		"1 glass of water with supplements",
	},
}

// startHour parses the leading hour of a time label like "07:30-09:00".
func startHour(label string) (int, bool) {
	start := strings.TrimSpace(strings.SplitN(label, "-", 2)[0])
	hourPart := strings.SplitN(start, ":", 2)[0]
	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return 0, false
	}
	return hour, true
}
