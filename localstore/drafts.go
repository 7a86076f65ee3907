package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vitrine/models"
)

const (
	KindWizard = "wizard"
	KindCart   = "cart"
)

// DraftStore keeps JSON documents under a key. Documents that no longer
// parse are logged and read back as absent.
type DraftStore struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewDraftStore(db *gorm.DB, log *zap.Logger) *DraftStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &DraftStore{db: db, log: log}
}

func (s *DraftStore) Put(ctx context.Context, kind, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", kind, key, err)
	}
	d := models.Draft{Key: key, Kind: kind, Payload: string(payload), UpdatedAt: time.Now()}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&d).Error
	if err != nil {
		return fmt.Errorf("store %s %s: %w", kind, key, err)
	}
	return nil
}

// Get decodes the document under key into v and reports whether one was
// found.
func (s *DraftStore) Get(ctx context.Context, key string, v any) (bool, error) {
	var d models.Draft
	err := s.db.WithContext(ctx).First(&d, "draft_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(d.Payload), v); err != nil {
		s.log.Warn("discarding unreadable draft", zap.String("key", key), zap.String("kind", d.Kind), zap.Error(err))
		return false, nil
	}
	return true, nil
}

func (s *DraftStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&models.Draft{}, "draft_key = ?", key).Error
}

// Keys lists the stored keys of one kind, most recently updated first.
func (s *DraftStore) Keys(ctx context.Context, kind string) ([]string, error) {
	var keys []string
	err := s.db.WithContext(ctx).Model(&models.Draft{}).
		Where("kind = ?", kind).
		Order("updated_at desc").
		Pluck("draft_key", &keys).Error
	return keys, err
}
