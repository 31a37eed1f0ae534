package ds

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&DayType{},
		&MealType{},
		&Food{},
		&Substitute{},
		&DietPlan{},
		&Meal{},
		&Measurement{},
		&Specialist{},
		&Patient{},
	}
}
