package repository

import (
	"context"

	"github.com/rafvai/DietShopper/internal/app/ds"
	"github.com/rafvai/DietShopper/internal/app/pkg/apperr"
)

// ListMeasurements returns the user's records, oldest first.
func (r *Repository) ListMeasurements(ctx context.Context, userID uint) ([]ds.Measurement, error) {
	var ms []ds.Measurement
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at, id").Find(&ms).Error
	if err != nil {
		return nil, apperr.Data("list measurements", err)
	}
	return ms, nil
}

func (r *Repository) GetMeasurement(ctx context.Context, userID, id uint) (*ds.Measurement, error) {
	var m ds.Measurement
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&m).Error
	if err != nil {
		return nil, lookupErr("get measurement", err)
	}
	return &m, nil
}

func (r *Repository) CreateMeasurement(ctx context.Context, m *ds.Measurement) error {
	return apperr.Data("create measurement", r.db.WithContext(ctx).Create(m).Error)
}
