package persistence

import (
	"database/sql"
	"fmt"

	"social-manager/infrastructure/logger"
)

// EnsureSchema creates the application tables if they do not exist. Safe to
// call at every startup. The unique constraints here are the correctness
// backstop for application-level existence checks: one external channel per
// platform globally, one publish row per (script, channel).
func EnsureSchema(db *sql.DB) error {
	ddls := []string{
		`CREATE TABLE IF NOT EXISTS brands (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL,
            name TEXT NOT NULL,
            youtube_client_id TEXT,
            youtube_client_secret_enc TEXT,
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS publish_configs (
            brand_id TEXT PRIMARY KEY REFERENCES brands(id) ON DELETE CASCADE,
            require_approval BOOLEAN NOT NULL DEFAULT TRUE,
            auto_publish BOOLEAN NOT NULL DEFAULT FALSE
        )`,
		`CREATE TABLE IF NOT EXISTS channels (
            id TEXT PRIMARY KEY,
            brand_id TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
            platform TEXT NOT NULL,
            platform_account_id TEXT NOT NULL,
            title TEXT NOT NULL DEFAULT '',
            access_token TEXT NOT NULL DEFAULT '',
            refresh_token TEXT,
            token_expires_at TIMESTAMPTZ,
            scope TEXT,
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL,
            UNIQUE (platform, platform_account_id)
        )`,
		`CREATE TABLE IF NOT EXISTS scripts (
            id TEXT PRIMARY KEY,
            brand_id TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
            title TEXT NOT NULL,
            document JSONB NOT NULL,
            status TEXT NOT NULL,
            scheduled_at TIMESTAMPTZ,
            video_url TEXT,
            video_duration DOUBLE PRECISION,
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS jobs (
            id TEXT PRIMARY KEY,
            script_id TEXT NOT NULL REFERENCES scripts(id) ON DELETE CASCADE,
            external_job_id TEXT NOT NULL,
            status TEXT NOT NULL,
            progress INTEGER NOT NULL DEFAULT 0,
            current_scene INTEGER NOT NULL DEFAULT 0,
            total_scenes INTEGER NOT NULL DEFAULT 0,
            error_message TEXT,
            video_url TEXT,
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS publishes (
            id TEXT PRIMARY KEY,
            script_id TEXT NOT NULL REFERENCES scripts(id) ON DELETE CASCADE,
            channel_id TEXT NOT NULL REFERENCES channels(id) ON DELETE CASCADE,
            status TEXT NOT NULL,
            platform_video_id TEXT,
            published_at TIMESTAMPTZ,
            error_message TEXT,
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL,
            UNIQUE (script_id, channel_id)
        )`,
	}

	for _, ddl := range ddls {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("ensuring schema: %w", err)
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_channels_brand_platform ON channels(brand_id, platform)`,
		`CREATE INDEX IF NOT EXISTS idx_scripts_brand ON scripts(brand_id)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_script_status ON jobs(script_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_publishes_script_status ON publishes(script_id, status)`,
	}
	for _, ddl := range indexes {
		if _, err := db.Exec(ddl); err != nil {
			logger.GetLogger().WithField("error", err).Warn("failed creating index")
		}
	}
	return nil
}
