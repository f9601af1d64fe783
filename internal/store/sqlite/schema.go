package sqlite

import "database/sql"

// EnsureSchema creates the planner tables if they do not exist. The schema
// mirrors the postgres one; natural keys carry the upsert conflict targets.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS app_state (
            id TEXT PRIMARY KEY,
            state TEXT NOT NULL,
            updated_at TIMESTAMP NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS ideas (
            id TEXT PRIMARY KEY,
            text TEXT NOT NULL,
            category TEXT NOT NULL DEFAULT '',
            linked_brand TEXT,
            created_at TIMESTAMP NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS brands_current (
            id TEXT PRIMARY KEY,
            data TEXT NOT NULL,
            updated_at TIMESTAMP NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS brands_pipeline (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            category TEXT NOT NULL DEFAULT '',
            planned_start_date TEXT NOT NULL DEFAULT '',
            source_idea TEXT NOT NULL DEFAULT '',
            sort_order INTEGER NOT NULL DEFAULT 0,
            created_at TIMESTAMP NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS brands_live (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            start_date TEXT NOT NULL DEFAULT '',
            revenue_log TEXT NOT NULL DEFAULT '{}',
            status TEXT NOT NULL DEFAULT 'active',
            phase INTEGER,
            source TEXT,
            created_at TIMESTAMP NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS brands_archive (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            reason TEXT NOT NULL DEFAULT '',
            closed_date TEXT NOT NULL DEFAULT '',
            total_revenue REAL NOT NULL DEFAULT 0,
            summary TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMP NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS work_schedule (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            date TEXT NOT NULL,
            time TEXT NOT NULL DEFAULT '',
            priority TEXT NOT NULL DEFAULT 'Medium',
            created_at TIMESTAMP NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS meetings_schedule (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            with_whom TEXT NOT NULL DEFAULT '',
            date TEXT NOT NULL,
            time TEXT NOT NULL DEFAULT '',
            notes TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMP NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS planning_monthly (
            month_key TEXT PRIMARY KEY,
            goals TEXT NOT NULL DEFAULT '[]',
            notes TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMP NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS planning_weekly (
            week_key TEXT PRIMARY KEY,
            goals TEXT NOT NULL DEFAULT '[]',
            tasks TEXT NOT NULL DEFAULT '[]',
            notes TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMP NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS planning_daily (
            date_key TEXT PRIMARY KEY,
            items TEXT NOT NULL DEFAULT '[]',
            notes TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMP NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS timetable_logs (
            date TEXT NOT NULL,
            task_id TEXT NOT NULL,
            status TEXT NOT NULL,
            zone TEXT NOT NULL,
            updated_at TIMESTAMP NOT NULL,
            PRIMARY KEY (date, task_id)
        );`,
		`CREATE TABLE IF NOT EXISTS protocol_logs (
            date TEXT NOT NULL,
            item_id TEXT NOT NULL,
            status TEXT NOT NULL,
            zone TEXT NOT NULL,
            auto INTEGER NOT NULL DEFAULT 0,
            updated_at TIMESTAMP NOT NULL,
            PRIMARY KEY (date, item_id)
        );`,
		`CREATE TABLE IF NOT EXISTS connections (
            date TEXT PRIMARY KEY,
            count INTEGER NOT NULL DEFAULT 0,
            updated_at TIMESTAMP NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS settings_app (
            id TEXT PRIMARY KEY,
            dream_version_description TEXT NOT NULL DEFAULT '',
            countdown_start_date TEXT NOT NULL DEFAULT '',
            last_visit_date TEXT,
            updated_at TIMESTAMP NOT NULL
        );`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
