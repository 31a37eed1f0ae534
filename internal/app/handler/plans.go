package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rafvai/DietShopper/internal/app/ds"
	"github.com/rafvai/DietShopper/internal/app/pkg/apperr"
	"github.com/rafvai/DietShopper/internal/app/planner"

	"github.com/gin-gonic/gin"
)

const (
	msgPlanAdded  = "Diet plan added successfully!"
	msgPlanFailed = "An error occurred while adding the diet plan. Please try again."
	msgPlanHeader = "Both diet name and description are required."

	msgMismatch     = "Mismatch between number of foods and quantities."
	msgUnknownDay   = "Unknown day type %d."
	msgUnknownMeal  = "Unknown meal type %d."
	msgFoodNotFound = "One or more selected foods no longer exist."
)

// mealInput is one cell of the weekly matrix in a JSON request body.
type mealInput struct {
	DayTypeID  uint     `json:"day_type_id"`
	MealTypeID uint     `json:"meal_type_id"`
	FoodIDs    []uint   `json:"food_ids"`
	Quantities []string `json:"quantities"`
}

type planInput struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Meals       []mealInput `json:"meals"`
}

// cells collects the food and quantity lists per (day, meal) cell. Ids are
// kept as strings so the assembler applies one validation path to form and
// JSON input alike. Each entry is checked on its own, since entries naming
// the same cell are merged, and must address a known day and meal type.
func (in planInput) cells(days []ds.DayType, meals []ds.MealType) (foods, quantities map[planner.Cell][]string, err error) {
	knownDays := make(map[uint]bool, len(days))
	for _, d := range days {
		knownDays[d.ID] = true
	}
	knownMeals := make(map[uint]bool, len(meals))
	for _, m := range meals {
		knownMeals[m.ID] = true
	}

	foods = map[planner.Cell][]string{}
	quantities = map[planner.Cell][]string{}
	for _, m := range in.Meals {
		if !knownDays[m.DayTypeID] {
			return nil, nil, apperr.Invalid(msgUnknownDay, m.DayTypeID)
		}
		if !knownMeals[m.MealTypeID] {
			return nil, nil, apperr.Invalid(msgUnknownMeal, m.MealTypeID)
		}
		if len(m.FoodIDs) != len(m.Quantities) {
			return nil, nil, apperr.Invalid(msgMismatch)
		}
		cell := planner.Cell{DayTypeID: m.DayTypeID, MealTypeID: m.MealTypeID}
		for _, id := range m.FoodIDs {
			foods[cell] = append(foods[cell], strconv.FormatUint(uint64(id), 10))
		}
		quantities[cell] = append(quantities[cell], m.Quantities...)
	}
	return foods, quantities, nil
}

// formCells reads the food-{day}-{meal}[] and quantity-{day}-{meal}[] lists
// of the add-diet form. Rows left completely blank are dropped; lists of
// different length are passed on untouched for the assembler to reject.
func formCells(ctx *gin.Context, days []ds.DayType, meals []ds.MealType) (foods, quantities map[planner.Cell][]string) {
	foods = map[planner.Cell][]string{}
	quantities = map[planner.Cell][]string{}
	for _, d := range days {
		for _, m := range meals {
			cell := planner.Cell{DayTypeID: d.ID, MealTypeID: m.ID}
			f := ctx.PostFormArray(fmt.Sprintf("food-%d-%d[]", d.ID, m.ID))
			q := ctx.PostFormArray(fmt.Sprintf("quantity-%d-%d[]", d.ID, m.ID))
			if len(f) == len(q) {
				f, q = dropBlankRows(f, q)
			}
			if len(f) > 0 {
				foods[cell] = f
			}
			if len(q) > 0 {
				quantities[cell] = q
			}
		}
	}
	return foods, quantities
}

func dropBlankRows(foods, quantities []string) ([]string, []string) {
	var f, q []string
	for i := range foods {
		if strings.TrimSpace(foods[i]) == "" && strings.TrimSpace(quantities[i]) == "" {
			continue
		}
		f = append(f, foods[i])
		q = append(q, quantities[i])
	}
	return f, q
}

func referenceIDs(days []ds.DayType, meals []ds.MealType) (dayIDs, mealIDs []uint) {
	for _, d := range days {
		dayIDs = append(dayIDs, d.ID)
	}
	for _, m := range meals {
		mealIDs = append(mealIDs, m.ID)
	}
	return dayIDs, mealIDs
}

// createPlan stores a new plan for userID together with its meals. Cells
// outside the seeded day and meal types are ignored.
func (h *Handler) createPlan(ctx context.Context, userID uint, name, description string, days []ds.DayType, meals []ds.MealType, foods, quantities map[planner.Cell][]string) (*ds.DietPlan, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || description == "" {
		return nil, apperr.Invalid(msgPlanHeader)
	}

	dayIDs, mealIDs := referenceIDs(days, meals)
	plan := &ds.DietPlan{UserID: userID, Name: name, Description: description}
	err := h.Repository.CreateDietPlan(ctx, plan, func(planID uint) (planner.MealBatch, error) {
		return planner.AssembleMealBatch(dayIDs, mealIDs, foods, quantities, planID)
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (h *Handler) reference(ctx context.Context) ([]ds.DayType, []ds.MealType, error) {
	days, err := h.Repository.ListDayTypes(ctx)
	if err != nil {
		return nil, nil, err
	}
	meals, err := h.Repository.ListMealTypes(ctx)
	if err != nil {
		return nil, nil, err
	}
	return days, meals, nil
}

// planView is a plan with its meals grouped by day and meal type.
type planView struct {
	Plan *ds.DietPlan      `json:"plan"`
	Days []planner.DayView `json:"days"`
}

func (h *Handler) loadPlanView(ctx context.Context, userID, planID uint) (*planView, error) {
	plan, err := h.Repository.GetDietPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	rows, err := h.Repository.PlanRows(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	return &planView{Plan: plan, Days: planner.GroupPlan(rows)}, nil
}

// shoppingList aggregates a plan owned by userID. Foreign or unknown plans
// are apperr.ErrNotFound.
func (h *Handler) shoppingList(ctx context.Context, userID, planID uint) (planner.ShoppingList, error) {
	if _, err := h.Repository.GetDietPlan(ctx, userID, planID); err != nil {
		return nil, err
	}
	rows, err := h.Repository.ShoppingRows(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	return planner.AggregateShoppingList(rows), nil
}
