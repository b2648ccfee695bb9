package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"social-manager/domain/model"
	"social-manager/domain/repository"
	apperrors "social-manager/pkg/errors"
)

type ChannelRepository struct{ db *sql.DB }

func NewChannelRepository(db *sql.DB) *ChannelRepository { return &ChannelRepository{db: db} }

const channelColumns = `id, brand_id, platform, platform_account_id, title, access_token, refresh_token, token_expires_at, scope, created_at, updated_at`

func scanChannel(row interface{ Scan(...interface{}) error }) (*model.Channel, error) {
	c := &model.Channel{}
	var refreshToken, scope sql.NullString
	var expiresAt sql.NullTime
	err := row.Scan(&c.ID, &c.BrandID, &c.Platform, &c.PlatformAccountID, &c.Title,
		&c.AccessToken, &refreshToken, &expiresAt, &scope, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.RefreshToken = refreshToken.String
	c.Scope = scope.String
	if expiresAt.Valid {
		t := expiresAt.Time
		c.TokenExpiresAt = &t
	}
	return c, nil
}

func (r *ChannelRepository) GetByID(ctx context.Context, id string) (*model.Channel, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+channelColumns+` FROM channels WHERE id=$1`, id)
	c, err := scanChannel(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("channel not found")
	}
	return c, err
}

func (r *ChannelRepository) GetByPlatformAccount(ctx context.Context, platform, platformAccountID string) (*model.Channel, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+channelColumns+` FROM channels WHERE platform=$1 AND platform_account_id=$2`,
		platform, platformAccountID)
	c, err := scanChannel(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("channel not found")
	}
	return c, err
}

func (r *ChannelRepository) ListByBrand(ctx context.Context, brandID, platform string) ([]*model.Channel, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+channelColumns+` FROM channels WHERE brand_id=$1 AND platform=$2 ORDER BY created_at`,
		brandID, platform)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*model.Channel
	for rows.Next() {
		c, err := scanChannel(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Upsert inserts a channel or, when the same (platform, platform_account_id)
// is reconnected to the same brand, refreshes its tokens and title. A unique
// violation is mapped to Conflict so the caller can report "already linked";
// reassignment to a different brand never happens silently.
func (r *ChannelRepository) Upsert(ctx context.Context, c *model.Channel) error {
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	q := `INSERT INTO channels (` + channelColumns + `)
	      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	      ON CONFLICT (platform, platform_account_id) DO UPDATE SET
	        title=EXCLUDED.title,
	        access_token=EXCLUDED.access_token,
	        refresh_token=EXCLUDED.refresh_token,
	        token_expires_at=EXCLUDED.token_expires_at,
	        scope=EXCLUDED.scope,
	        updated_at=EXCLUDED.updated_at
	      WHERE channels.brand_id = EXCLUDED.brand_id`
	res, err := r.db.ExecContext(ctx, q, c.ID, c.BrandID, c.Platform, c.PlatformAccountID, c.Title,
		c.AccessToken, nullable(c.RefreshToken), nullTime(c.TokenExpiresAt), nullable(c.Scope),
		c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return apperrors.Conflict("channel already linked to another brand")
		}
		return err
	}
	// The conditional DO UPDATE touches zero rows when the conflicting row
	// belongs to a different brand.
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.Conflict("channel already linked to another brand")
	}
	return nil
}

func (r *ChannelRepository) UpdateTokens(ctx context.Context, channelID string, upd repository.TokenUpdate) error {
	now := time.Now().UTC()
	var (
		res sql.Result
		err error
	)
	if upd.RefreshToken != "" {
		res, err = r.db.ExecContext(ctx,
			`UPDATE channels SET access_token=$2, refresh_token=$3, token_expires_at=$4, updated_at=$5 WHERE id=$1`,
			channelID, upd.AccessToken, upd.RefreshToken, nullTime(upd.ExpiresAt), now)
	} else {
		// Access-token-only rotation keeps the stored refresh token.
		res, err = r.db.ExecContext(ctx,
			`UPDATE channels SET access_token=$2, token_expires_at=$3, updated_at=$4 WHERE id=$1`,
			channelID, upd.AccessToken, nullTime(upd.ExpiresAt), now)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("channel not found")
	}
	return nil
}

func (r *ChannelRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM channels WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("channel not found")
	}
	return nil
}

func (r *ChannelRepository) DeleteAllForBrand(ctx context.Context, brandID, platform string) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM channels WHERE brand_id=$1 AND platform=$2`, brandID, platform)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
