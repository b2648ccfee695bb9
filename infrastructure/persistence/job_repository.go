package persistence

import (
	"context"
	"database/sql"
	"time"

	"social-manager/domain/model"
	apperrors "social-manager/pkg/errors"
)

type JobRepository struct{ db *sql.DB }

func NewJobRepository(db *sql.DB) *JobRepository { return &JobRepository{db: db} }

const jobColumns = `id, script_id, external_job_id, status, progress, current_scene, total_scenes, error_message, video_url, created_at, updated_at`

func scanJob(row interface{ Scan(...interface{}) error }) (*model.Job, error) {
	j := &model.Job{}
	var errMsg, videoURL sql.NullString
	err := row.Scan(&j.ID, &j.ScriptID, &j.ExternalJobID, &j.Status, &j.Progress,
		&j.CurrentScene, &j.TotalScenes, &errMsg, &videoURL, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	j.ErrorMessage = errMsg.String
	j.VideoURL = videoURL.String
	return j, nil
}

func (r *JobRepository) Create(ctx context.Context, j *model.Job) error {
	now := time.Now().UTC()
	if j.CreatedAt.IsZero() {
		j.CreatedAt = now
	}
	j.UpdatedAt = now
	q := `INSERT INTO jobs (` + jobColumns + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err := r.db.ExecContext(ctx, q, j.ID, j.ScriptID, j.ExternalJobID, j.Status, j.Progress,
		j.CurrentScene, j.TotalScenes, nullable(j.ErrorMessage), nullable(j.VideoURL), j.CreatedAt, j.UpdatedAt)
	return err
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (*model.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id=$1`, id)
	j, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("job not found")
	}
	return j, err
}

// LatestCompletedForScript returns the most recently updated completed job, the
// one whose output is authoritative for publishing. nil job, no error when no
// completed job exists.
func (r *JobRepository) LatestCompletedForScript(ctx context.Context, scriptID string) (*model.Job, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE script_id=$1 AND status=$2 ORDER BY updated_at DESC LIMIT 1`,
		scriptID, model.JobStatusCompleted)
	j, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return j, err
}

func (r *JobRepository) ListForScript(ctx context.Context, scriptID string) ([]*model.Job, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE script_id=$1 ORDER BY created_at DESC`, scriptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*model.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, j)
	}
	return list, rows.Err()
}

func (r *JobRepository) UpdateProgress(ctx context.Context, id string, status string, progress, currentScene, totalScenes int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET status=$2, progress=$3, current_scene=$4, total_scenes=$5, updated_at=$6 WHERE id=$1`,
		id, status, progress, currentScene, totalScenes, time.Now().UTC())
	return err
}

func (r *JobRepository) MarkCompleted(ctx context.Context, id, videoURL string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET status=$2, progress=100, video_url=$3, error_message=NULL, updated_at=$4 WHERE id=$1`,
		id, model.JobStatusCompleted, videoURL, time.Now().UTC())
	return err
}

func (r *JobRepository) MarkFailed(ctx context.Context, id, errorMessage string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET status=$2, error_message=$3, updated_at=$4 WHERE id=$1`,
		id, model.JobStatusFailed, errorMessage, time.Now().UTC())
	return err
}
