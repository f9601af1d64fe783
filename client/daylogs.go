package client

import (
	"context"
	"time"

	"github.com/thislife/planner/internal/dates"
	"github.com/thislife/planner/internal/model"
	"github.com/thislife/planner/internal/plan"
)

// rangeChunkSize bounds how many date keys a single range request covers.
const rangeChunkSize = 80

// DayLogsAPI is the per-day logging hook: timetable completion, protocol
// outcomes and connection counts. Wide ranges are fetched in chunks.
type DayLogsAPI struct{ c *Client }

func (c *Client) DayLogs() *DayLogsAPI { return &DayLogsAPI{c: c} }

// chunkRanges splits [start,end] into windows of at most rangeChunkSize days.
func chunkRanges(start, end time.Time) [][2]time.Time {
	keys := dates.Range(start, end)
	var out [][2]time.Time
	for i := 0; i < len(keys); i += rangeChunkSize {
		j := i + rangeChunkSize - 1
		if j >= len(keys) {
			j = len(keys) - 1
		}
		out = append(out, [2]time.Time{keys[i], keys[j]})
	}
	return out
}

// LogTask records a timetable task outcome for a date.
func (a *DayLogsAPI) LogTask(ctx context.Context, date, taskID, status string, zone dates.Zone) error {
	if a.c.Authenticated() {
		body := map[string]string{"date": date, "taskId": taskID, "status": status, "zone": string(zone)}
		resp, err := a.c.request().SetContext(ctx).SetBody(body).Put("/api/logs/timetable")
		if err == nil && resp.IsSuccess() {
			return nil
		}
	}

	logs := a.localTimetable()
	if logs[date] == nil {
		logs[date] = map[string]*model.TimetableLog{}
	}
	logs[date][taskID] = &model.TimetableLog{
		Date: date, TaskID: taskID, Status: status, Zone: zone, UpdatedAt: time.Now().UTC(),
	}
	return a.c.local.SetJSON(keyTimetableLogs, logs)
}

// TimetableRange fetches timetable logs for [start,end]. Inverted ranges
// are empty, never an error.
func (a *DayLogsAPI) TimetableRange(ctx context.Context, start, end time.Time) (map[string]map[string]*model.TimetableLog, error) {
	out := map[string]map[string]*model.TimetableLog{}
	if a.c.Authenticated() {
		remoteOK := true
		for _, window := range chunkRanges(start, end) {
			var chunk struct {
				Logs map[string]map[string]*model.TimetableLog `json:"logs"`
			}
			resp, err := a.c.request().SetContext(ctx).SetResult(&chunk).
				SetQueryParams(map[string]string{
					"from": dates.Key(window[0]),
					"to":   dates.Key(window[1]),
				}).
				Get("/api/logs/timetable")
			if err != nil || !resp.IsSuccess() {
				remoteOK = false
				break
			}
			for date, entries := range chunk.Logs {
				out[date] = entries
			}
		}
		if remoteOK {
			return out, nil
		}
	}

	logs := a.localTimetable()
	out = map[string]map[string]*model.TimetableLog{}
	for _, key := range dates.RangeKeys(start, end) {
		if entries, ok := logs[key]; ok {
			out[key] = entries
		} else {
			out[key] = map[string]*model.TimetableLog{}
		}
	}
	return out, nil
}

// LogProtocol records a protocol outcome for a date.
func (a *DayLogsAPI) LogProtocol(ctx context.Context, date, itemID, status string, zone dates.Zone, auto bool) error {
	if a.c.Authenticated() {
		body := map[string]interface{}{"date": date, "itemId": itemID, "status": status, "zone": string(zone), "auto": auto}
		resp, err := a.c.request().SetContext(ctx).SetBody(body).Put("/api/logs/protocol")
		if err == nil && resp.IsSuccess() {
			return nil
		}
	}

	logs := a.localProtocol()
	if logs[date] == nil {
		logs[date] = map[string]*model.ProtocolLog{}
	}
	logs[date][itemID] = &model.ProtocolLog{
		Date: date, ItemID: itemID, Status: status, Zone: zone, Auto: auto, UpdatedAt: time.Now().UTC(),
	}
	return a.c.local.SetJSON(keyProtocolLogs, logs)
}

// ApplyAutoProtocol records the automatic protocol outcomes for a day:
// items the day type excuses are logged "na" without user action. Existing
// entries are left alone.
func (a *DayLogsAPI) ApplyAutoProtocol(ctx context.Context, t time.Time) error {
	zone := dates.ZoneFor(t)
	dayType := dates.DayTypeFor(t)
	auto := plan.AutoProtocolItems(zone, dayType)
	if len(auto) == 0 {
		return nil
	}

	date := dates.Key(t)
	existing, err := a.ProtocolRange(ctx, t, t)
	if err != nil {
		return err
	}
	for _, itemID := range auto {
		if entry, ok := existing[date][itemID]; ok && entry != nil {
			continue
		}
		if err := a.LogProtocol(ctx, date, itemID, model.ProtocolNA, zone, true); err != nil {
			return err
		}
	}
	return nil
}

// ProtocolRange fetches protocol logs for [start,end].
func (a *DayLogsAPI) ProtocolRange(ctx context.Context, start, end time.Time) (map[string]map[string]*model.ProtocolLog, error) {
	out := map[string]map[string]*model.ProtocolLog{}
	if a.c.Authenticated() {
		remoteOK := true
		for _, window := range chunkRanges(start, end) {
			var chunk struct {
				Logs map[string]map[string]*model.ProtocolLog `json:"logs"`
			}
			resp, err := a.c.request().SetContext(ctx).SetResult(&chunk).
				SetQueryParams(map[string]string{
					"from": dates.Key(window[0]),
					"to":   dates.Key(window[1]),
				}).
				Get("/api/logs/protocol")
			if err != nil || !resp.IsSuccess() {
				remoteOK = false
				break
			}
			for date, entries := range chunk.Logs {
				out[date] = entries
			}
		}
		if remoteOK {
			return out, nil
		}
	}

	logs := a.localProtocol()
	out = map[string]map[string]*model.ProtocolLog{}
	for _, key := range dates.RangeKeys(start, end) {
		if entries, ok := logs[key]; ok {
			out[key] = entries
		} else {
			out[key] = map[string]*model.ProtocolLog{}
		}
	}
	return out, nil
}

// SetConnections records the day's outreach connection count.
func (a *DayLogsAPI) SetConnections(ctx context.Context, date string, count int) error {
	if a.c.Authenticated() {
		body := map[string]interface{}{"date": date, "count": count}
		resp, err := a.c.request().SetContext(ctx).SetBody(body).Put("/api/logs/connections")
		if err == nil && resp.IsSuccess() {
			return nil
		}
	}

	logs := a.localConnections()
	logs[date] = &model.ConnectionLog{Date: date, Count: count, UpdatedAt: time.Now().UTC()}
	return a.c.local.SetJSON(keyConnectionsLogs, logs)
}

// ConnectionsRange fetches connection counts for [start,end]. Days without
// an entry are absent from the result.
func (a *DayLogsAPI) ConnectionsRange(ctx context.Context, start, end time.Time) (map[string]*model.ConnectionLog, error) {
	out := map[string]*model.ConnectionLog{}
	if a.c.Authenticated() {
		remoteOK := true
		for _, window := range chunkRanges(start, end) {
			var chunk struct {
				Logs map[string]*model.ConnectionLog `json:"logs"`
			}
			resp, err := a.c.request().SetContext(ctx).SetResult(&chunk).
				SetQueryParams(map[string]string{
					"from": dates.Key(window[0]),
					"to":   dates.Key(window[1]),
				}).
				Get("/api/logs/connections")
			if err != nil || !resp.IsSuccess() {
				remoteOK = false
				break
			}
			for date, entry := range chunk.Logs {
				out[date] = entry
			}
		}
		if remoteOK {
			return out, nil
		}
	}

	logs := a.localConnections()
	out = map[string]*model.ConnectionLog{}
	for _, key := range dates.RangeKeys(start, end) {
		if entry, ok := logs[key]; ok && entry != nil {
			out[key] = entry
		}
	}
	return out, nil
}

func (a *DayLogsAPI) localTimetable() map[string]map[string]*model.TimetableLog {
	logs := map[string]map[string]*model.TimetableLog{}
	a.c.local.GetJSON(keyTimetableLogs, &logs)
	return logs
}

func (a *DayLogsAPI) localProtocol() map[string]map[string]*model.ProtocolLog {
	logs := map[string]map[string]*model.ProtocolLog{}
	a.c.local.GetJSON(keyProtocolLogs, &logs)
	return logs
}

func (a *DayLogsAPI) localConnections() map[string]*model.ConnectionLog {
	logs := map[string]*model.ConnectionLog{}
	a.c.local.GetJSON(keyConnectionsLogs, &logs)
	return logs
}
