package ds

import "time"

type Specialist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(80);unique;not null" json:"username"`
	Name      string    `gorm:"type:varchar(100)" json:"name"`
	LastName  string    `gorm:"type:varchar(100)" json:"last_name"`
	Email     string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password  string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Patient links a user account to the specialist following it.
type Patient struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SpecialistID uint      `gorm:"not null;uniqueIndex:idx_specialist_user" json:"specialist_id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_specialist_user" json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`

	Specialist Specialist `gorm:"foreignKey:SpecialistID" json:"-"`
	User       User       `gorm:"foreignKey:UserID" json:"user"`
}
