package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/permission"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=session_repo.go -destination=mock/session_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, s *Session) error
	FindActiveByID(ctx context.Context, id string, now time.Time) (*Session, error)
	RotateRefresh(ctx context.Context, id, hash string, expiresAt time.Time) error
	Revoke(ctx context.Context, id string, at time.Time) error
	SaveSnapshot(ctx context.Context, sessionID string, snap permission.Snapshot) error
	FindFilter(ctx context.Context, userID, screen string) (*UIFilter, error)
	UpsertFilter(ctx context.Context, f *UIFilter) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindActiveByID(ctx context.Context, id string, now time.Time) (*Session, error) {
	var s Session
	err := r.db.WithContext(ctx).
		Scopes(active(now)).
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) RotateRefresh(ctx context.Context, id, hash string, expiresAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&Session{}).
		Where("id = ?", id).
		Where("revoked_at IS NULL").
		Updates(map[string]any{
			"refresh_token_hash": hash,
			"expires_at":         expiresAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Revoke(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&Session{}).
		Where("id = ?", id).
		Where("revoked_at IS NULL").
		Update("revoked_at", at).Error
}

func (r *repository) SaveSnapshot(ctx context.Context, sessionID string, snap permission.Snapshot) error {
	perms, err := json.Marshal(snap.Permissions)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&Session{}).
		Where("id = ?", sessionID).
		Updates(map[string]any{
			"permissions": perms,
			"role":        snap.Role,
		}).Error
}

func (r *repository) FindFilter(ctx context.Context, userID, screen string) (*UIFilter, error) {
	var f UIFilter
	err := r.db.WithContext(ctx).
		Scopes(ownedBy(userID)).
		First(&f, "screen = ?", screen).Error
	return &f, err
}

func (r *repository) UpsertFilter(ctx context.Context, f *UIFilter) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "screen"}},
			DoUpdates: clause.AssignmentColumns([]string{"filter", "updated_at"}),
		}).
		Create(f).Error
}
