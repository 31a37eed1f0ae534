package ds

type Food struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"type:varchar(255);unique;not null" json:"name"`
	Calories int     `json:"calories"`
	Protein  float64 `gorm:"type:decimal(5,2)" json:"protein"`
	Carbs    float64 `gorm:"type:decimal(5,2)" json:"carbs"`
	Fats     float64 `gorm:"type:decimal(5,2)" json:"fats"`
	ImageKey string  `gorm:"type:varchar(200)" json:"image_key,omitempty"`
}

// Substitute suggests SubstituteFoodID as a replacement for FoodID.
type Substitute struct {
	ID               uint `gorm:"primaryKey" json:"id"`
	FoodID           uint `gorm:"not null;uniqueIndex:idx_food_substitute" json:"food_id"`
	SubstituteFoodID uint `gorm:"not null;uniqueIndex:idx_food_substitute" json:"substitute_food_id"`

	Food           Food `gorm:"foreignKey:FoodID" json:"-"`
	SubstituteFood Food `gorm:"foreignKey:SubstituteFoodID" json:"-"`
}
