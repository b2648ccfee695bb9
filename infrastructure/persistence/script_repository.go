package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"social-manager/domain/model"
	apperrors "social-manager/pkg/errors"
)

type ScriptRepository struct{ db *sql.DB }

func NewScriptRepository(db *sql.DB) *ScriptRepository { return &ScriptRepository{db: db} }

func (r *ScriptRepository) Create(ctx context.Context, s *model.Script) error {
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	doc, err := json.Marshal(s.Document)
	if err != nil {
		return fmt.Errorf("marshaling script document: %w", err)
	}
	q := `INSERT INTO scripts (id, brand_id, title, document, status, scheduled_at, video_url, video_duration, created_at, updated_at)
	      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	_, err = r.db.ExecContext(ctx, q, s.ID, s.BrandID, s.Title, doc, s.Status,
		nullTime(s.ScheduledAt), nullable(s.VideoURL), nullFloat(s.VideoDuration), s.CreatedAt, s.UpdatedAt)
	return err
}

func (r *ScriptRepository) GetByID(ctx context.Context, id string) (*model.Script, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, brand_id, title, document, status, scheduled_at, video_url, video_duration, created_at, updated_at
		 FROM scripts WHERE id=$1`, id)
	return scanScript(row)
}

func (r *ScriptRepository) ListByBrand(ctx context.Context, brandID string) ([]*model.Script, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, brand_id, title, document, status, scheduled_at, video_url, video_duration, created_at, updated_at
		 FROM scripts WHERE brand_id=$1 ORDER BY created_at DESC`, brandID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*model.Script
	for rows.Next() {
		s, err := scanScript(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanScript(row interface{ Scan(...interface{}) error }) (*model.Script, error) {
	s := &model.Script{}
	var doc []byte
	var scheduledAt sql.NullTime
	var videoURL sql.NullString
	var duration sql.NullFloat64
	err := row.Scan(&s.ID, &s.BrandID, &s.Title, &doc, &s.Status,
		&scheduledAt, &videoURL, &duration, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("script not found")
		}
		return nil, err
	}
	if err := json.Unmarshal(doc, &s.Document); err != nil {
		return nil, fmt.Errorf("unmarshaling script document: %w", err)
	}
	if scheduledAt.Valid {
		t := scheduledAt.Time
		s.ScheduledAt = &t
	}
	s.VideoURL = videoURL.String
	s.VideoDuration = duration.Float64
	return s, nil
}

func (r *ScriptRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE scripts SET status=$2, updated_at=$3 WHERE id=$1`, id, status, time.Now().UTC())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("script not found")
	}
	return nil
}

func (r *ScriptRepository) SetOutput(ctx context.Context, id, videoURL string, duration float64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE scripts SET status=$2, video_url=$3, video_duration=$4, updated_at=$5 WHERE id=$1`,
		id, model.ScriptStatusCompleted, videoURL, duration, time.Now().UTC())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("script not found")
	}
	return nil
}

func (r *ScriptRepository) SetSchedule(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE scripts SET status=$2, scheduled_at=$3, updated_at=$4 WHERE id=$1`,
		id, model.ScriptStatusScheduled, at.UTC(), time.Now().UTC())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("script not found")
	}
	return nil
}

// ListDueScheduled returns scheduled scripts whose time has passed. Oldest
// schedules come first so a backlog drains in order.
func (r *ScriptRepository) ListDueScheduled(ctx context.Context, now time.Time) ([]*model.Script, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, brand_id, title, document, status, scheduled_at, video_url, video_duration, created_at, updated_at
		 FROM scripts WHERE status=$1 AND scheduled_at IS NOT NULL AND scheduled_at <= $2
		 ORDER BY scheduled_at ASC`, model.ScriptStatusScheduled, now.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*model.Script
	for rows.Next() {
		s, err := scanScript(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *ScriptRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM scripts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("script not found")
	}
	return nil
}

func nullFloat(f float64) interface{} {
	if f == 0 {
		return nil
	}
	return f
}
