package ds

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(80);unique;not null" json:"username"`
	Email     string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password  string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
