package session

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID           string    `gorm:"type:varchar(64);not null;index"`
	EmployeeID       string    `gorm:"type:varchar(64)"`
	UpstreamToken    string    `gorm:"type:text;not null"`
	RefreshTokenHash string    `gorm:"type:varchar(255);not null"`
	UserSnapshot     []byte    `gorm:"type:jsonb"`
	Permissions      []byte    `gorm:"type:jsonb"`
	Role             string    `gorm:"type:varchar(50)"`
	ExpiresAt        time.Time `gorm:"not null;index"`
	RevokedAt        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Session) TableName() string {
	return "gateway_sessions"
}

// UIFilter is a persisted screen filter. Cached data is never stored here.
type UIFilter struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_ui_filter_user_screen"`
	Screen    string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_ui_filter_user_screen"`
	Filter    []byte    `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UIFilter) TableName() string {
	return "ui_filters"
}
