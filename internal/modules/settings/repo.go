package settings

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotConfigured = errors.New("merchant settings not configured")

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// Get reads the "general" row fresh on every call; payment endpoints must
// see credential changes immediately, so nothing is cached.
func (r *Repo) Get(ctx context.Context) (Settings, error) {
	var s Settings
	err := r.db.WithContext(ctx).First(&s, "setting_key = ?", KeyGeneral).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Settings{}, ErrNotConfigured
	}
	return s, err
}

func (r *Repo) Upsert(ctx context.Context, s Settings) error {
	s.Key = KeyGeneral
	s.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_key"}},
			UpdateAll: true,
		}).
		Create(&s).Error
}
