package ds

// DayType and MealType are fixed dimension tables filled by cmd/seed.
type DayType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(255);unique;not null" json:"name"`
}

type MealType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(255);unique;not null" json:"name"`
}
