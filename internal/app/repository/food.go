package repository

import (
	"context"

	"github.com/rafvai/DietShopper/internal/app/ds"
	"github.com/rafvai/DietShopper/internal/app/pkg/apperr"

	"gorm.io/gorm"
)

func (r *Repository) ListDayTypes(ctx context.Context) ([]ds.DayType, error) {
	var days []ds.DayType
	if err := r.db.WithContext(ctx).Order("id").Find(&days).Error; err != nil {
		return nil, apperr.Data("list day types", err)
	}
	return days, nil
}

func (r *Repository) ListMealTypes(ctx context.Context) ([]ds.MealType, error) {
	var meals []ds.MealType
	if err := r.db.WithContext(ctx).Order("id").Find(&meals).Error; err != nil {
		return nil, apperr.Data("list meal types", err)
	}
	return meals, nil
}

func (r *Repository) ListFoods(ctx context.Context) ([]ds.Food, error) {
	var foods []ds.Food
	if err := r.db.WithContext(ctx).Order("name").Find(&foods).Error; err != nil {
		return nil, apperr.Data("list foods", err)
	}
	return foods, nil
}

func (r *Repository) GetFood(ctx context.Context, id uint) (*ds.Food, error) {
	var f ds.Food
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, lookupErr("get food", err)
	}
	return &f, nil
}

func (r *Repository) FoodNameTaken(ctx context.Context, name string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&ds.Food{}).Where("name = ?", name).Count(&n).Error; err != nil {
		return false, apperr.Data("check food", err)
	}
	return n > 0, nil
}

func (r *Repository) CreateFood(ctx context.Context, f *ds.Food) error {
	return apperr.Data("create food", r.db.WithContext(ctx).Create(f).Error)
}

func (r *Repository) UpdateFoodImage(ctx context.Context, id uint, key string) error {
	res := r.db.WithContext(ctx).Model(&ds.Food{}).Where("id = ?", id).Update("image_key", key)
	if res.Error != nil {
		return apperr.Data("update food image", res.Error)
	}
	if res.RowsAffected == 0 {
		return lookupErr("update food image", gorm.ErrRecordNotFound)
	}
	return nil
}

// AddSubstitute records substituteID as a replacement for foodID.
func (r *Repository) AddSubstitute(ctx context.Context, foodID, substituteID uint) error {
	if foodID == substituteID {
		return apperr.Invalid("A food cannot substitute itself.")
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&ds.Substitute{}).
		Where("(food_id = ? AND substitute_food_id = ?) OR (food_id = ? AND substitute_food_id = ?)",
			foodID, substituteID, substituteID, foodID).
		Count(&n).Error
	if err != nil {
		return apperr.Data("check substitute", err)
	}
	if n > 0 {
		return nil
	}
	s := ds.Substitute{FoodID: foodID, SubstituteFoodID: substituteID}
	return apperr.Data("add substitute", r.db.WithContext(ctx).Omit("Food", "SubstituteFood").Create(&s).Error)
}

// Substitutes returns the foods linked to foodID in either direction.
func (r *Repository) Substitutes(ctx context.Context, foodID uint) ([]ds.Food, error) {
	db := r.db.WithContext(ctx)
	forward := db.Model(&ds.Substitute{}).Select("substitute_food_id").Where("food_id = ?", foodID)
	backward := db.Model(&ds.Substitute{}).Select("food_id").Where("substitute_food_id = ?", foodID)

	var foods []ds.Food
	err := db.Where("id IN (?) OR id IN (?)", forward, backward).Order("name").Find(&foods).Error
	if err != nil {
		return nil, apperr.Data("list substitutes", err)
	}
	return foods, nil
}
