package repository

import (
	"context"

	"github.com/rafvai/DietShopper/internal/app/ds"
	"github.com/rafvai/DietShopper/internal/app/pkg/apperr"
)

func (r *Repository) GetSpecialistByID(ctx context.Context, id uint) (*ds.Specialist, error) {
	var s ds.Specialist
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, lookupErr("get specialist", err)
	}
	return &s, nil
}

func (r *Repository) GetSpecialistByUsername(ctx context.Context, username string) (*ds.Specialist, error) {
	var s ds.Specialist
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&s).Error; err != nil {
		return nil, lookupErr("get specialist", err)
	}
	return &s, nil
}

func (r *Repository) SpecialistTaken(ctx context.Context, username, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&ds.Specialist{}).
		Where("username = ? OR email = ?", username, email).
		Count(&n).Error
	if err != nil {
		return false, apperr.Data("check specialist", err)
	}
	return n > 0, nil
}

func (r *Repository) CreateSpecialist(ctx context.Context, s *ds.Specialist) error {
	return apperr.Data("create specialist", r.db.WithContext(ctx).Create(s).Error)
}

// AddPatient links userID to the specialist. Linking the same user twice is
// a ValidationError.
func (r *Repository) AddPatient(ctx context.Context, specialistID, userID uint) (*ds.Patient, error) {
	linked, err := r.IsPatient(ctx, specialistID, userID)
	if err != nil {
		return nil, err
	}
	if linked {
		return nil, apperr.Invalid("This user is already one of your patients.")
	}

	p := ds.Patient{SpecialistID: specialistID, UserID: userID}
	if err := r.db.WithContext(ctx).Omit("Specialist", "User").Create(&p).Error; err != nil {
		return nil, apperr.Data("add patient", err)
	}
	return &p, nil
}

func (r *Repository) ListPatients(ctx context.Context, specialistID uint) ([]ds.Patient, error) {
	var patients []ds.Patient
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("specialist_id = ?", specialistID).
		Order("id").
		Find(&patients).Error
	if err != nil {
		return nil, apperr.Data("list patients", err)
	}
	return patients, nil
}

func (r *Repository) IsPatient(ctx context.Context, specialistID, userID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&ds.Patient{}).
		Where("specialist_id = ? AND user_id = ?", specialistID, userID).
		Count(&n).Error
	if err != nil {
		return false, apperr.Data("check patient", err)
	}
	return n > 0, nil
}
