package persistence

import (
	"context"
	"database/sql"
	"time"

	"social-manager/domain/model"
	apperrors "social-manager/pkg/errors"
)

type BrandRepository struct{ db *sql.DB }

func NewBrandRepository(db *sql.DB) *BrandRepository { return &BrandRepository{db: db} }

func (r *BrandRepository) Create(ctx context.Context, b *model.Brand) error {
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	q := `INSERT INTO brands (id, user_id, name, youtube_client_id, youtube_client_secret_enc, created_at, updated_at)
	      VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.db.ExecContext(ctx, q, b.ID, b.UserID, b.Name,
		nullable(b.YouTubeClientID), nullable(b.YouTubeClientSecretEnc), b.CreatedAt, b.UpdatedAt)
	return err
}

func (r *BrandRepository) GetByID(ctx context.Context, id string) (*model.Brand, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, youtube_client_id, youtube_client_secret_enc, created_at, updated_at
		 FROM brands WHERE id=$1`, id)
	b := &model.Brand{}
	var clientID, secretEnc sql.NullString
	if err := row.Scan(&b.ID, &b.UserID, &b.Name, &clientID, &secretEnc, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("brand not found")
		}
		return nil, err
	}
	b.YouTubeClientID = clientID.String
	b.YouTubeClientSecretEnc = secretEnc.String
	return b, nil
}

func (r *BrandRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM brands WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("brand not found")
	}
	return nil
}

func (r *BrandRepository) UpdateYouTubeCredentials(ctx context.Context, brandID, clientID, encryptedSecret string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE brands SET youtube_client_id=$2, youtube_client_secret_enc=$3, updated_at=$4 WHERE id=$1`,
		brandID, clientID, encryptedSecret, time.Now().UTC())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("brand not found")
	}
	return nil
}

func (r *BrandRepository) ClearYouTubeCredentials(ctx context.Context, brandID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE brands SET youtube_client_id=NULL, youtube_client_secret_enc=NULL, updated_at=$2 WHERE id=$1`,
		brandID, time.Now().UTC())
	return err
}

func (r *BrandRepository) GetPublishConfig(ctx context.Context, brandID string) (*model.PublishConfig, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT brand_id, require_approval, auto_publish FROM publish_configs WHERE brand_id=$1`, brandID)
	cfg := &model.PublishConfig{}
	if err := row.Scan(&cfg.BrandID, &cfg.RequireApproval, &cfg.AutoPublish); err != nil {
		if err == sql.ErrNoRows {
			// Absent config falls back to the safe default: approval required.
			return model.DefaultPublishConfig(brandID), nil
		}
		return nil, err
	}
	return cfg, nil
}

func (r *BrandRepository) UpsertPublishConfig(ctx context.Context, cfg *model.PublishConfig) error {
	q := `INSERT INTO publish_configs (brand_id, require_approval, auto_publish)
	      VALUES ($1,$2,$3)
	      ON CONFLICT (brand_id) DO UPDATE SET
	        require_approval=EXCLUDED.require_approval,
	        auto_publish=EXCLUDED.auto_publish`
	_, err := r.db.ExecContext(ctx, q, cfg.BrandID, cfg.RequireApproval, cfg.AutoPublish)
	return err
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
