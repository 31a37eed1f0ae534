package ds

import "time"

type DietPlan struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Name        string    `gorm:"type:varchar(255)" json:"name"`
	Description string    `gorm:"type:varchar(255)" json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	User  User   `gorm:"foreignKey:UserID" json:"-"`
	Meals []Meal `gorm:"foreignKey:DietPlanID" json:"meals,omitempty"`
}

// Meal is one food assignment inside a plan slot. Several rows may share
// the same (DayTypeID, MealTypeID).
type Meal struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	DietPlanID uint `gorm:"not null;index" json:"diet_plan_id"`
	DayTypeID  uint `gorm:"not null" json:"day_type_id"`
	MealTypeID uint `gorm:"not null" json:"meal_type_id"`
	FoodID     uint `gorm:"not null" json:"food_id"`
	Quantity   int  `gorm:"not null" json:"quantity"`

	DayType  DayType  `gorm:"foreignKey:DayTypeID" json:"-"`
	MealType MealType `gorm:"foreignKey:MealTypeID" json:"-"`
	Food     Food     `gorm:"foreignKey:FoodID" json:"-"`
}
