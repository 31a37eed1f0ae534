package planner

// PlanRow is one meal of a plan joined with its reference names. Rows are
// expected in day, meal type, insertion order.
type PlanRow struct {
	DayTypeID  uint   `json:"day_type_id"`
	DayName    string `json:"day"`
	MealTypeID uint   `json:"meal_type_id"`
	MealName   string `json:"meal"`
	FoodID     uint   `json:"food_id"`
	FoodName   string `json:"food"`
	Quantity   int    `json:"quantity"`
}

type PlanItem struct {
	FoodID   uint   `json:"food_id"`
	Food     string `json:"food"`
	Quantity int    `json:"quantity"`
}

type MealView struct {
	Meal  string     `json:"meal"`
	Items []PlanItem `json:"items"`
}

type DayView struct {
	Day   string     `json:"day"`
	Meals []MealView `json:"meals"`
	// Count is the number of food items assigned on this day.
	Count int `json:"count"`
}

// GroupPlan nests rows into days and meals, keeping the incoming order.
func GroupPlan(rows []PlanRow) []DayView {
	var days []DayView
	dayIdx := map[uint]int{}
	mealIdx := map[Cell]int{}

	for _, r := range rows {
		di, ok := dayIdx[r.DayTypeID]
		if !ok {
			di = len(days)
			dayIdx[r.DayTypeID] = di
			days = append(days, DayView{Day: r.DayName})
		}
		cell := Cell{DayTypeID: r.DayTypeID, MealTypeID: r.MealTypeID}
		mi, ok := mealIdx[cell]
		if !ok {
			mi = len(days[di].Meals)
			mealIdx[cell] = mi
			days[di].Meals = append(days[di].Meals, MealView{Meal: r.MealName})
		}
		days[di].Meals[mi].Items = append(days[di].Meals[mi].Items, PlanItem{
			FoodID:   r.FoodID,
			Food:     r.FoodName,
			Quantity: r.Quantity,
		})
		days[di].Count++
	}
	return days
}
