package repository

import (
	"context"
	"fmt"

	"github.com/rafvai/DietShopper/internal/app/ds"
	"github.com/rafvai/DietShopper/internal/app/pkg/apperr"
	"github.com/rafvai/DietShopper/internal/app/planner"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *Repository) ListDietPlans(ctx context.Context, userID uint) ([]ds.DietPlan, error) {
	var plans []ds.DietPlan
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC").Find(&plans).Error
	if err != nil {
		return nil, apperr.Data("list diet plans", err)
	}
	return plans, nil
}

// GetDietPlan returns the plan only when it belongs to userID; any other
// plan is reported as apperr.ErrNotFound.
func (r *Repository) GetDietPlan(ctx context.Context, userID, planID uint) (*ds.DietPlan, error) {
	var plan ds.DietPlan
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", planID, userID).First(&plan).Error
	if err != nil {
		return nil, lookupErr("get diet plan", err)
	}
	return &plan, nil
}

// CreateDietPlan inserts plan, hands its new id to assemble and stores the
// resulting batch. Everything runs in one transaction: an error from
// assemble or from any insert leaves neither the plan nor its meals behind.
func (r *Repository) CreateDietPlan(ctx context.Context, plan *ds.DietPlan, assemble func(planID uint) (planner.MealBatch, error)) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(plan).Error; err != nil {
			return apperr.Data("create diet plan", err)
		}

		batch, err := assemble(plan.ID)
		if err != nil {
			return err
		}
		if err := checkFoods(tx, batch); err != nil {
			return err
		}

		return insertBatch(tx, batch)
	})
	if err != nil {
		plan.ID = 0
		if apperr.IsValidation(err) || apperr.IsNotFound(err) {
			return err
		}
		return apperr.Data("create diet plan", err)
	}
	return nil
}

// PersistMealBatch stores every record of batch or none of them.
func (r *Repository) PersistMealBatch(ctx context.Context, batch planner.MealBatch) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return insertBatch(tx, batch)
	})
	return apperr.Data("persist meals", err)
}

// checkFoods reports apperr.ErrNotFound when the batch names a food that is
// not in the catalog.
func checkFoods(tx *gorm.DB, batch planner.MealBatch) error {
	seen := map[uint]bool{}
	var ids []uint
	for _, rec := range batch.Records() {
		if !seen[rec.FoodID] {
			seen[rec.FoodID] = true
			ids = append(ids, rec.FoodID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var n int64
	if err := tx.Model(&ds.Food{}).Where("id IN ?", ids).Count(&n).Error; err != nil {
		return apperr.Data("check foods", err)
	}
	if n != int64(len(ids)) {
		return fmt.Errorf("check foods: %w", apperr.ErrNotFound)
	}
	return nil
}

func insertBatch(tx *gorm.DB, batch planner.MealBatch) error {
	records := batch.Records()
	if len(records) == 0 {
		return nil
	}

	meals := make([]ds.Meal, 0, len(records))
	for _, rec := range records {
		meals = append(meals, ds.Meal{
			DietPlanID: rec.DietPlanID,
			DayTypeID:  rec.DayTypeID,
			MealTypeID: rec.MealTypeID,
			FoodID:     rec.FoodID,
			Quantity:   rec.Quantity,
		})
	}
	return apperr.Data("insert meals", tx.Omit(clause.Associations).Create(&meals).Error)
}

// DeleteDietPlan removes the plan's meals and then the plan itself.
func (r *Repository) DeleteDietPlan(ctx context.Context, userID, planID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var plan ds.DietPlan
		if err := tx.Where("id = ? AND user_id = ?", planID, userID).First(&plan).Error; err != nil {
			return lookupErr("delete diet plan", err)
		}
		if err := tx.Where("diet_plan_id = ?", planID).Delete(&ds.Meal{}).Error; err != nil {
			return apperr.Data("delete meals", err)
		}
		if err := tx.Delete(&plan).Error; err != nil {
			return apperr.Data("delete diet plan", err)
		}
		return nil
	})
}

// PlanRows lists the meals of a plan with day, meal type and food names,
// ordered for planner.GroupPlan.
func (r *Repository) PlanRows(ctx context.Context, planID uint) ([]planner.PlanRow, error) {
	var rows []planner.PlanRow
	err := r.db.WithContext(ctx).Table("meals").
		Select("meals.day_type_id, day_types.name AS day_name, meals.meal_type_id, meal_types.name AS meal_name, meals.food_id, foods.name AS food_name, meals.quantity").
		Joins("JOIN day_types ON day_types.id = meals.day_type_id").
		Joins("JOIN meal_types ON meal_types.id = meals.meal_type_id").
		Joins("JOIN foods ON foods.id = meals.food_id").
		Where("meals.diet_plan_id = ?", planID).
		Order("meals.day_type_id, meals.meal_type_id, meals.id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Data("plan rows", err)
	}
	return rows, nil
}

// ShoppingRows returns one (food name, quantity) pair per meal of a plan
// owned by userID.
func (r *Repository) ShoppingRows(ctx context.Context, userID, planID uint) ([]planner.ShoppingRow, error) {
	var rows []planner.ShoppingRow
	err := r.db.WithContext(ctx).Table("foods").
		Select("foods.name AS name, meals.quantity AS quantity").
		Joins("JOIN meals ON meals.food_id = foods.id").
		Joins("JOIN diet_plans ON diet_plans.id = meals.diet_plan_id").
		Where("diet_plans.user_id = ? AND diet_plans.id = ?", userID, planID).
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Data("shopping rows", err)
	}
	return rows, nil
}
