package memory

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bromolabs/bromo-server/internal/persona"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// UpsertFact inserts or updates a fact keyed by (device_id, key). The row's
// value, mode and confidence are replaced on conflict.
func (r *Repo) UpsertFact(ctx context.Context, f *Fact) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "device_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "mode", "confidence", "updated_at"}),
		}).
		Create(f).Error
}

// ListFacts returns high-confidence facts for a device, newest first. When
// mode is non-empty, facts bound to the other mode are excluded (mode-less
// facts always qualify).
func (r *Repo) ListFacts(ctx context.Context, deviceID, mode string) ([]Fact, error) {
	q := r.db.WithContext(ctx).
		Where("device_id = ? AND confidence = ?", deviceID, persona.ConfidenceHigh)
	if mode != "" {
		q = q.Where("mode = ? OR mode IS NULL", mode)
	}

	var facts []Fact
	if err := q.Order("updated_at DESC").Find(&facts).Error; err != nil {
		return nil, err
	}
	return facts, nil
}

func (r *Repo) GetFactByID(ctx context.Context, id uint64) (*Fact, error) {
	var f Fact
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *Repo) UpdateFact(ctx context.Context, id uint64, value string, mode *string) (*Fact, error) {
	res := r.db.WithContext(ctx).Model(&Fact{}).
		Where("id = ?", id).
		Updates(map[string]any{"value": value, "mode": mode})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetFactByID(ctx, id)
}

func (r *Repo) DeleteFact(ctx context.Context, id uint64) (*Fact, error) {
	f, err := r.GetFactByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&Fact{}, id).Error; err != nil {
		return nil, err
	}
	return f, nil
}

func (r *Repo) InsertChatRun(ctx context.Context, run *ChatRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}
