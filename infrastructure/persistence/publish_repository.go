package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"social-manager/domain/model"
	apperrors "social-manager/pkg/errors"
)

type PublishRepository struct{ db *sql.DB }

func NewPublishRepository(db *sql.DB) *PublishRepository { return &PublishRepository{db: db} }

const publishColumns = `p.id, p.script_id, p.channel_id, p.status, p.platform_video_id, p.published_at, p.error_message, p.created_at, p.updated_at`

func scanPublish(row interface{ Scan(...interface{}) error }, withTitle bool) (*model.Publish, error) {
	p := &model.Publish{}
	var videoID, errMsg sql.NullString
	var publishedAt sql.NullTime
	dest := []interface{}{&p.ID, &p.ScriptID, &p.ChannelID, &p.Status, &videoID, &publishedAt, &errMsg, &p.CreatedAt, &p.UpdatedAt}
	if withTitle {
		var title sql.NullString
		dest = append(dest, &title)
		if err := row.Scan(dest...); err != nil {
			return nil, err
		}
		p.ChannelTitle = title.String
	} else {
		if err := row.Scan(dest...); err != nil {
			return nil, err
		}
	}
	p.PlatformVideoID = videoID.String
	p.ErrorMessage = errMsg.String
	if publishedAt.Valid {
		t := publishedAt.Time
		p.PublishedAt = &t
	}
	return p, nil
}

// CreateMissing inserts a publish row for each channel that does not already
// have one for this script. The unique (script_id, channel_id) constraint is
// the backstop under concurrent fan-outs; conflicting rows are left untouched.
func (r *PublishRepository) CreateMissing(ctx context.Context, scriptID string, channelIDs []string, initialStatus string) (int, error) {
	if len(channelIDs) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	ids := make([]string, len(channelIDs))
	for i := range channelIDs {
		ids[i] = uuid.NewString()
	}
	q := `INSERT INTO publishes (id, script_id, channel_id, status, created_at, updated_at)
		SELECT unnest($1::text[]), $2, unnest($3::text[]), $4, $5, $5
		ON CONFLICT (script_id, channel_id) DO NOTHING`
	res, err := r.db.ExecContext(ctx, q, pq.Array(ids), scriptID, pq.Array(channelIDs), initialStatus, now)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (r *PublishRepository) GetByIDs(ctx context.Context, ids []string) ([]*model.Publish, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+publishColumns+` FROM publishes p WHERE p.id = ANY($1) ORDER BY p.created_at`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPublishes(rows, false)
}

func (r *PublishRepository) ListByScript(ctx context.Context, scriptID string) ([]*model.Publish, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+publishColumns+`, c.title FROM publishes p
		JOIN channels c ON c.id = p.channel_id
		WHERE p.script_id=$1 ORDER BY p.created_at`, scriptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPublishes(rows, true)
}

func (r *PublishRepository) ListByScriptAndStatus(ctx context.Context, scriptID, status string) ([]*model.Publish, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+publishColumns+` FROM publishes p WHERE p.script_id=$1 AND p.status=$2 ORDER BY p.created_at`,
		scriptID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPublishes(rows, false)
}

func collectPublishes(rows *sql.Rows, withTitle bool) ([]*model.Publish, error) {
	var list []*model.Publish
	for rows.Next() {
		p, err := scanPublish(rows, withTitle)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Approve moves only rows still awaiting approval. Rows in any other state
// are skipped, so a double approval is harmless.
func (r *PublishRepository) Approve(ctx context.Context, ids []string) (int, error) {
	return r.transition(ctx, ids, model.PublishStatusPendingApproval, model.PublishStatusApproved, false)
}

// ResetForRetry moves failed rows back to approved and clears the stored
// failure message so the next dispatch starts clean.
func (r *PublishRepository) ResetForRetry(ctx context.Context, ids []string) (int, error) {
	return r.transition(ctx, ids, model.PublishStatusFailed, model.PublishStatusApproved, true)
}

func (r *PublishRepository) transition(ctx context.Context, ids []string, from, to string, clearError bool) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	q := `UPDATE publishes SET status=$1, updated_at=$2 WHERE id = ANY($3) AND status=$4`
	if clearError {
		q = `UPDATE publishes SET status=$1, updated_at=$2, error_message=NULL WHERE id = ANY($3) AND status=$4`
	}
	res, err := r.db.ExecContext(ctx, q, to, time.Now().UTC(), pq.Array(ids), from)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (r *PublishRepository) MarkPublishing(ctx context.Context, id string) error {
	return r.markStatus(ctx, id,
		`UPDATE publishes SET status=$2, updated_at=$3 WHERE id=$1`,
		model.PublishStatusPublishing)
}

func (r *PublishRepository) MarkPublished(ctx context.Context, id, platformVideoID string) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE publishes SET status=$2, platform_video_id=$3, published_at=$4, error_message=NULL, updated_at=$4 WHERE id=$1`,
		id, model.PublishStatusPublished, platformVideoID, now)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PublishRepository) MarkFailed(ctx context.Context, id, errorMessage string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE publishes SET status=$2, error_message=$3, updated_at=$4 WHERE id=$1`,
		id, model.PublishStatusFailed, errorMessage, time.Now().UTC())
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PublishRepository) markStatus(ctx context.Context, id, query, status string) error {
	res, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFound("publish record not found")
	}
	return nil
}
