package repository

import (
	"context"

	"github.com/rafvai/DietShopper/internal/app/ds"
	"github.com/rafvai/DietShopper/internal/app/pkg/apperr"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	seedDays  = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	seedMeals = []string{"Breakfast", "Lunch", "Snack", "Dinner"}

	seedFoods = []ds.Food{
		{Name: "Oats", Calories: 389, Protein: 16.9, Carbs: 66.3, Fats: 6.9},
		{Name: "Greek yogurt", Calories: 59, Protein: 10.2, Carbs: 3.6, Fats: 0.4},
		{Name: "Banana", Calories: 89, Protein: 1.1, Carbs: 22.8, Fats: 0.3},
		{Name: "Apple", Calories: 52, Protein: 0.3, Carbs: 13.8, Fats: 0.2},
		{Name: "Brown rice", Calories: 111, Protein: 2.6, Carbs: 23, Fats: 0.9},
		{Name: "Quinoa", Calories: 120, Protein: 4.4, Carbs: 21.3, Fats: 1.9},
		{Name: "Wholewheat pasta", Calories: 124, Protein: 5.3, Carbs: 26.5, Fats: 0.5},
		{Name: "Chicken breast", Calories: 165, Protein: 31, Carbs: 0, Fats: 3.6},
		{Name: "Turkey breast", Calories: 135, Protein: 30, Carbs: 0, Fats: 1},
		{Name: "Salmon", Calories: 208, Protein: 20, Carbs: 0, Fats: 13},
		{Name: "Cod", Calories: 82, Protein: 18, Carbs: 0, Fats: 0.7},
		{Name: "Eggs", Calories: 155, Protein: 13, Carbs: 1.1, Fats: 11},
		{Name: "Lentils", Calories: 116, Protein: 9, Carbs: 20, Fats: 0.4},
		{Name: "Chickpeas", Calories: 164, Protein: 8.9, Carbs: 27.4, Fats: 2.6},
		{Name: "Broccoli", Calories: 34, Protein: 2.8, Carbs: 6.6, Fats: 0.4},
		{Name: "Spinach", Calories: 23, Protein: 2.9, Carbs: 3.6, Fats: 0.4},
		{Name: "Almonds", Calories: 579, Protein: 21.2, Carbs: 21.6, Fats: 49.9},
		{Name: "Walnuts", Calories: 654, Protein: 15.2, Carbs: 13.7, Fats: 65.2},
		{Name: "Olive oil", Calories: 884, Protein: 0, Carbs: 0, Fats: 100},
	}

	seedSubstitutes = [][2]string{
		{"Brown rice", "Quinoa"},
		{"Brown rice", "Wholewheat pasta"},
		{"Chicken breast", "Turkey breast"},
		{"Salmon", "Cod"},
		{"Lentils", "Chickpeas"},
		{"Broccoli", "Spinach"},
		{"Almonds", "Walnuts"},
		{"Banana", "Apple"},
	}
)

type SeedResult struct {
	Days        int64
	MealTypes   int64
	Foods       int64
	Substitutes int64
}

// Seed fills the reference tables and a starter food catalog. Existing rows
// are left alone so it can run on every deploy.
func (r *Repository) Seed(ctx context.Context) (SeedResult, error) {
	var res SeedResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		skip := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).Session(&gorm.Session{})

		for _, name := range seedDays {
			if err := skip.Create(&ds.DayType{Name: name}).Error; err != nil {
				return err
			}
		}
		for _, name := range seedMeals {
			if err := skip.Create(&ds.MealType{Name: name}).Error; err != nil {
				return err
			}
		}
		for _, f := range seedFoods {
			f := f
			if err := skip.Create(&f).Error; err != nil {
				return err
			}
		}

		for _, pair := range seedSubstitutes {
			var a, b ds.Food
			if err := tx.Where("name = ?", pair[0]).First(&a).Error; err != nil {
				return err
			}
			if err := tx.Where("name = ?", pair[1]).First(&b).Error; err != nil {
				return err
			}
			sub := ds.Substitute{FoodID: a.ID, SubstituteFoodID: b.ID}
			err := tx.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(&sub).Error
			if err != nil {
				return err
			}
		}

		for model, n := range map[interface{}]*int64{
			&ds.DayType{}:    &res.Days,
			&ds.MealType{}:   &res.MealTypes,
			&ds.Food{}:       &res.Foods,
			&ds.Substitute{}: &res.Substitutes,
		} {
			if err := tx.Model(model).Count(n).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return res, apperr.Data("seed", err)
}
