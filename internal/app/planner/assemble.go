package planner

import (
	"sort"
	"strconv"

	"github.com/rafvai/DietShopper/internal/app/pkg/apperr"
)

// Cell addresses one (day, meal type) slot of the weekly matrix.
type Cell struct {
	DayTypeID  uint
	MealTypeID uint
}

type MealRecord struct {
	DietPlanID uint `json:"diet_plan_id"`
	DayTypeID  uint `json:"day_type_id"`
	MealTypeID uint `json:"meal_type_id"`
	FoodID     uint `json:"food_id"`
	Quantity   int  `json:"quantity"`
}

// MealBatch groups records by day id, then meal type id.
type MealBatch map[uint]map[uint][]MealRecord

const (
	msgMismatch = "Mismatch between number of foods and quantities."
	msgQuantity = "Quantity must be a positive integer."
	msgFood     = "Invalid food selection."
)

// AssembleMealBatch validates the submitted matrix and groups it into a
// MealBatch for planID. Any invalid cell fails the whole submission and no
// partial batch is returned. Empty cells are skipped.
func AssembleMealBatch(dayIDs, mealTypeIDs []uint, foods, quantities map[Cell][]string, planID uint) (MealBatch, error) {
	batch := MealBatch{}
	for _, day := range dayIDs {
		for _, meal := range mealTypeIDs {
			cell := Cell{DayTypeID: day, MealTypeID: meal}
			foodIDs := foods[cell]
			qtys := quantities[cell]
			if len(foodIDs) != len(qtys) {
				return nil, apperr.Invalid(msgMismatch)
			}
			for i := range foodIDs {
				qty, err := ParseQuantity(qtys[i])
				if err != nil {
					return nil, err
				}
				foodID, err := strconv.ParseUint(foodIDs[i], 10, 32)
				if err != nil || foodID == 0 {
					return nil, apperr.Invalid(msgFood)
				}
				if batch[day] == nil {
					batch[day] = map[uint][]MealRecord{}
				}
				batch[day][meal] = append(batch[day][meal], MealRecord{
					DietPlanID: planID,
					DayTypeID:  day,
					MealTypeID: meal,
					FoodID:     uint(foodID),
					Quantity:   qty,
				})
			}
		}
	}
	return batch, nil
}

// ParseQuantity accepts only plain decimal digits with a value above zero.
func ParseQuantity(s string) (int, error) {
	if s == "" {
		return 0, apperr.Invalid(msgQuantity)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, apperr.Invalid(msgQuantity)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, apperr.Invalid(msgQuantity)
	}
	return n, nil
}

// Records flattens the batch ordered by day id, meal type id, then input order.
func (b MealBatch) Records() []MealRecord {
	days := make([]uint, 0, len(b))
	for d := range b {
		days = append(days, d)
	}
	sortIDs(days)

	var out []MealRecord
	for _, d := range days {
		meals := make([]uint, 0, len(b[d]))
		for m := range b[d] {
			meals = append(meals, m)
		}
		sortIDs(meals)
		for _, m := range meals {
			out = append(out, b[d][m]...)
		}
	}
	return out
}

// Len counts the records in the batch.
func (b MealBatch) Len() int {
	n := 0
	for _, meals := range b {
		for _, recs := range meals {
			n += len(recs)
		}
	}
	return n
}

func sortIDs(ids []uint) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
