package ds

import "time"

type Measurement struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	Height          *float64  `gorm:"type:decimal(5,2);not null" json:"height"`
	Weight          *float64  `gorm:"type:decimal(5,2);not null" json:"weight"`
	BMI             *float64  `gorm:"column:bmi;type:decimal(5,2)" json:"bmi"`
	BodyFat         *float64  `gorm:"type:decimal(5,2)" json:"body_fat"`
	FatFreeBW       *float64  `gorm:"column:fat_free_bw;type:decimal(5,2)" json:"fat_free_bw"`
	SubcutaneousFat *float64  `gorm:"type:decimal(5,2)" json:"subcutaneous_fat"`
	VisceralFat     *int      `gorm:"type:integer" json:"visceral_fat"`
	BodyWater       *float64  `gorm:"type:decimal(5,2)" json:"body_water"`
	SkeletalMuscle  *float64  `gorm:"type:decimal(5,2)" json:"skeletal_muscle"`
	MuscleMass      *float64  `gorm:"type:decimal(5,2)" json:"muscle_mass"`
	BoneMass        *float64  `gorm:"type:decimal(5,2)" json:"bone_mass"`
	Protein         *float64  `gorm:"type:decimal(5,2)" json:"protein"`
	BMR             *int      `gorm:"column:bmr;type:integer" json:"bmr"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
}
