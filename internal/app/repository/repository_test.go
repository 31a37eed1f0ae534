package repository

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/rafvai/DietShopper/internal/app/ds"
	"github.com/rafvai/DietShopper/internal/app/pkg/apperr"
	"github.com/rafvai/DietShopper/internal/app/planner"

	"gorm.io/driver/sqlite"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	r, err := New(sqlite.Open(":memory:?_foreign_keys=on"), false)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = r.Close() })

	if err := r.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	seed := []interface{}{
		&[]ds.DayType{{ID: 1, Name: "Monday"}, {ID: 2, Name: "Tuesday"}},
		&[]ds.MealType{{ID: 1, Name: "Breakfast"}, {ID: 2, Name: "Lunch"}},
		&[]ds.Food{{ID: 1, Name: "Oats", Calories: 389}, {ID: 2, Name: "Rice", Calories: 130}, {ID: 3, Name: "Quinoa", Calories: 120}},
		&ds.User{ID: 1, Username: "anna", Email: "anna@example.com", Password: "x"},
		&ds.User{ID: 2, Username: "marco", Email: "marco@example.com", Password: "x"},
	}
	for _, v := range seed {
		if err := r.db.Create(v).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return r
}

func batchFor(planID uint, recs ...planner.MealRecord) planner.MealBatch {
	b := planner.MealBatch{}
	for _, rec := range recs {
		rec.DietPlanID = planID
		if b[rec.DayTypeID] == nil {
			b[rec.DayTypeID] = map[uint][]planner.MealRecord{}
		}
		b[rec.DayTypeID][rec.MealTypeID] = append(b[rec.DayTypeID][rec.MealTypeID], rec)
	}
	return b
}

func countRows(t *testing.T, r *Repository, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := r.db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestCreateDietPlanRoundTrip(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	want := []planner.MealRecord{
		{DayTypeID: 1, MealTypeID: 1, FoodID: 1, Quantity: 80},
		{DayTypeID: 1, MealTypeID: 2, FoodID: 2, Quantity: 150},
		{DayTypeID: 2, MealTypeID: 2, FoodID: 2, Quantity: 100},
		{DayTypeID: 2, MealTypeID: 2, FoodID: 3, Quantity: 90},
	}
	plan := &ds.DietPlan{UserID: 1, Name: "Cut", Description: "Week one"}
	err := r.CreateDietPlan(ctx, plan, func(planID uint) (planner.MealBatch, error) {
		return batchFor(planID, want...), nil
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if plan.ID == 0 {
		t.Fatalf("plan id not set")
	}

	var meals []ds.Meal
	if err := r.db.Where("diet_plan_id = ?", plan.ID).Find(&meals).Error; err != nil {
		t.Fatalf("query: %v", err)
	}
	got := make([]planner.MealRecord, 0, len(meals))
	for _, m := range meals {
		got = append(got, planner.MealRecord{DietPlanID: m.DietPlanID, DayTypeID: m.DayTypeID, MealTypeID: m.MealTypeID, FoodID: m.FoodID, Quantity: m.Quantity})
	}
	key := func(s []planner.MealRecord) func(i, j int) bool {
		return func(i, j int) bool {
			a, b := s[i], s[j]
			if a.DayTypeID != b.DayTypeID {
				return a.DayTypeID < b.DayTypeID
			}
			if a.MealTypeID != b.MealTypeID {
				return a.MealTypeID < b.MealTypeID
			}
			return a.FoodID < b.FoodID
		}
	}
	sort.Slice(got, key(got))
	if len(got) != len(want) {
		t.Fatalf("got %d meals, want %d", len(got), len(want))
	}
	for i := range want {
		w := want[i]
		w.DietPlanID = plan.ID
		if got[i] != w {
			t.Fatalf("meal %d = %+v, want %+v", i, got[i], w)
		}
	}

	rows, err := r.PlanRows(ctx, plan.ID)
	if err != nil {
		t.Fatalf("plan rows: %v", err)
	}
	days := planner.GroupPlan(rows)
	if len(days) != 2 || days[0].Day != "Monday" || days[1].Count != 2 {
		t.Fatalf("grouped plan = %+v", days)
	}
}

func TestCreateDietPlanValidationRollsBack(t *testing.T) {
	r := newTestRepo(t)

	plan := &ds.DietPlan{UserID: 1, Name: "Bad", Description: "x"}
	err := r.CreateDietPlan(context.Background(), plan, func(planID uint) (planner.MealBatch, error) {
		return planner.AssembleMealBatch([]uint{1}, []uint{1},
			map[planner.Cell][]string{{DayTypeID: 1, MealTypeID: 1}: {"1", "2"}},
			map[planner.Cell][]string{{DayTypeID: 1, MealTypeID: 1}: {"100"}},
			planID)
	})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if n := countRows(t, r, &ds.DietPlan{}); n != 0 {
		t.Fatalf("%d plans left after rollback", n)
	}
}

func TestCreateDietPlanInsertFailureRollsBack(t *testing.T) {
	r := newTestRepo(t)

	plan := &ds.DietPlan{UserID: 1, Name: "Ghost day", Description: "x"}
	err := r.CreateDietPlan(context.Background(), plan, func(planID uint) (planner.MealBatch, error) {
		return batchFor(planID,
			planner.MealRecord{DayTypeID: 1, MealTypeID: 1, FoodID: 1, Quantity: 10},
			planner.MealRecord{DayTypeID: 9, MealTypeID: 1, FoodID: 2, Quantity: 10},
		), nil
	})
	if !apperr.IsData(err) {
		t.Fatalf("expected data error, got %v", err)
	}
	if plan.ID != 0 {
		t.Fatalf("plan id kept after rollback: %d", plan.ID)
	}
	if n := countRows(t, r, &ds.DietPlan{}); n != 0 {
		t.Fatalf("%d plans left after rollback", n)
	}
	if n := countRows(t, r, &ds.Meal{}); n != 0 {
		t.Fatalf("%d meals left after rollback", n)
	}
}

func TestCreateDietPlanUnknownFood(t *testing.T) {
	r := newTestRepo(t)

	plan := &ds.DietPlan{UserID: 1, Name: "Ghost food", Description: "x"}
	err := r.CreateDietPlan(context.Background(), plan, func(planID uint) (planner.MealBatch, error) {
		return batchFor(planID,
			planner.MealRecord{DayTypeID: 1, MealTypeID: 1, FoodID: 1, Quantity: 10},
			planner.MealRecord{DayTypeID: 1, MealTypeID: 2, FoodID: 1, Quantity: 20},
			planner.MealRecord{DayTypeID: 2, MealTypeID: 1, FoodID: 999, Quantity: 10},
		), nil
	})
	if !apperr.IsNotFound(err) || apperr.IsData(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if plan.ID != 0 {
		t.Fatalf("plan id kept after rollback: %d", plan.ID)
	}
	if n := countRows(t, r, &ds.DietPlan{}); n != 0 {
		t.Fatalf("%d plans left after rollback", n)
	}
	if n := countRows(t, r, &ds.Meal{}); n != 0 {
		t.Fatalf("%d meals left after rollback", n)
	}
}

func TestPersistMealBatchIsAtomic(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	plan := &ds.DietPlan{UserID: 1, Name: "Base", Description: "x"}
	if err := r.CreateDietPlan(ctx, plan, func(uint) (planner.MealBatch, error) { return nil, nil }); err != nil {
		t.Fatalf("create: %v", err)
	}

	bad := batchFor(plan.ID,
		planner.MealRecord{DayTypeID: 1, MealTypeID: 1, FoodID: 1, Quantity: 10},
		planner.MealRecord{DayTypeID: 9, MealTypeID: 1, FoodID: 1, Quantity: 10},
	)
	if err := r.PersistMealBatch(ctx, bad); !apperr.IsData(err) {
		t.Fatalf("expected data error, got %v", err)
	}
	if n := countRows(t, r, &ds.Meal{}); n != 0 {
		t.Fatalf("%d meals left after failed batch", n)
	}

	good := batchFor(plan.ID, planner.MealRecord{DayTypeID: 1, MealTypeID: 1, FoodID: 1, Quantity: 10})
	if err := r.PersistMealBatch(ctx, good); err != nil {
		t.Fatalf("persist: %v", err)
	}
	if n := countRows(t, r, &ds.Meal{}); n != 1 {
		t.Fatalf("got %d meals, want 1", n)
	}
}

func TestShoppingRowsAggregate(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	plan := &ds.DietPlan{UserID: 1, Name: "Bulk", Description: "x"}
	err := r.CreateDietPlan(ctx, plan, func(planID uint) (planner.MealBatch, error) {
		return batchFor(planID,
			planner.MealRecord{DayTypeID: 1, MealTypeID: 1, FoodID: 2, Quantity: 100},
			planner.MealRecord{DayTypeID: 2, MealTypeID: 2, FoodID: 2, Quantity: 150},
			planner.MealRecord{DayTypeID: 2, MealTypeID: 1, FoodID: 1, Quantity: 80},
		), nil
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := r.ShoppingRows(ctx, 1, plan.ID)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	list := planner.AggregateShoppingList(rows)
	if len(list) != 2 || list["Rice"] != 250 || list["Oats"] != 80 {
		t.Fatalf("shopping list = %v", list)
	}

	// Another user's plan yields nothing.
	rows, err = r.ShoppingRows(ctx, 2, plan.ID)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("foreign plan leaked %d rows", len(rows))
	}
}

func TestGetAndDeleteDietPlan(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	plan := &ds.DietPlan{UserID: 1, Name: "Temp", Description: "x"}
	err := r.CreateDietPlan(ctx, plan, func(planID uint) (planner.MealBatch, error) {
		return batchFor(planID, planner.MealRecord{DayTypeID: 1, MealTypeID: 1, FoodID: 1, Quantity: 5}), nil
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := r.GetDietPlan(ctx, 2, plan.ID); !apperr.IsNotFound(err) {
		t.Fatalf("foreign get: expected not found, got %v", err)
	}
	if err := r.DeleteDietPlan(ctx, 2, plan.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("foreign delete: expected not found, got %v", err)
	}
	if err := r.DeleteDietPlan(ctx, 1, plan.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n := countRows(t, r, &ds.Meal{}); n != 0 {
		t.Fatalf("%d meals left after delete", n)
	}
	if _, err := r.GetDietPlan(ctx, 1, plan.ID); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestSubstitutesBothDirections(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	if err := r.AddSubstitute(ctx, 2, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := r.AddSubstitute(ctx, 3, 2); err != nil {
		t.Fatalf("add reverse: %v", err)
	}
	if n := countRows(t, r, &ds.Substitute{}); n != 1 {
		t.Fatalf("got %d substitute rows, want 1", n)
	}
	if err := r.AddSubstitute(ctx, 1, 1); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	for _, tc := range []struct {
		food uint
		want string
	}{
		{2, "Quinoa"},
		{3, "Rice"},
	} {
		foods, err := r.Substitutes(ctx, tc.food)
		if err != nil {
			t.Fatalf("substitutes(%d): %v", tc.food, err)
		}
		if len(foods) != 1 || foods[0].Name != tc.want {
			t.Fatalf("substitutes(%d) = %+v, want %s", tc.food, foods, tc.want)
		}
	}

	foods, err := r.Substitutes(ctx, 1)
	if err != nil || len(foods) != 0 {
		t.Fatalf("substitutes(1) = %+v, %v", foods, err)
	}
}

func TestPatients(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	s := &ds.Specialist{Username: "drlee", Name: "Ana", LastName: "Lee", Email: "lee@example.com", Password: "x"}
	if err := r.CreateSpecialist(ctx, s); err != nil {
		t.Fatalf("create specialist: %v", err)
	}

	u, err := r.FindUser(ctx, "marco", "marco@example.com")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if _, err := r.FindUser(ctx, "marco", "anna@example.com"); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	if _, err := r.AddPatient(ctx, s.ID, u.ID); err != nil {
		t.Fatalf("add patient: %v", err)
	}
	if _, err := r.AddPatient(ctx, s.ID, u.ID); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error on duplicate, got %v", err)
	}

	patients, err := r.ListPatients(ctx, s.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(patients) != 1 || patients[0].User.Username != "marco" {
		t.Fatalf("patients = %+v", patients)
	}

	ok, err := r.IsPatient(ctx, s.ID, 1)
	if err != nil || ok {
		t.Fatalf("IsPatient(anna) = %v, %v", ok, err)
	}
}

func TestMeasurementsOwnership(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	h, w := 180.0, 80.0
	m := &ds.Measurement{UserID: 1, Height: &h, Weight: &w}
	if err := r.CreateMeasurement(ctx, m); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := r.GetMeasurement(ctx, 2, m.ID); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	got, err := r.GetMeasurement(ctx, 1, m.ID)
	if err != nil || *got.Weight != 80 {
		t.Fatalf("get = %+v, %v", got, err)
	}
	ms, err := r.ListMeasurements(ctx, 1)
	if err != nil || len(ms) != 1 {
		t.Fatalf("list = %d, %v", len(ms), err)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	first, err := r.Seed(ctx)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	second, err := r.Seed(ctx)
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if first != second {
		t.Fatalf("reseed changed counts: %+v then %+v", first, second)
	}
	// The fixture already holds Monday, Tuesday, Breakfast, Lunch and Quinoa.
	if first.Days != 7 || first.MealTypes != 4 || first.Substitutes != int64(len(seedSubstitutes)) {
		t.Fatalf("counts = %+v", first)
	}
}
