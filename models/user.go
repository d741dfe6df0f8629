package models

import (
	"time"

	"motorcycles-backend/utils"

	"gorm.io/gorm"
)

// User is a back-office operator allowed to sign in to the dashboard.
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Username  string     `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password  string     `gorm:"not null" json:"-"`
	Name      string     `gorm:"size:150;not null" json:"name"`
	Role      string     `gorm:"type:varchar(20);not null;default:'admin'" json:"role"` // 'admin' or 'seller'
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Hash the plain password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
