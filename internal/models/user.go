// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Email        string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name         string `json:"name" gorm:"size:255;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"`
	Role         Role   `json:"role" gorm:"type:varchar(20);not null;index"`

	// Vendor profile
	BusinessName string       `json:"business_name,omitempty" gorm:"size:255"`
	Description  string       `json:"description,omitempty" gorm:"type:text"`
	Phone        string       `json:"phone,omitempty" gorm:"size:50"`
	Location     string       `json:"location,omitempty" gorm:"size:255"`
	Status       VendorStatus `json:"status,omitempty" gorm:"type:varchar(20);index"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

func (u *User) IsAdmin() bool  { return u.Role == RoleAdmin }
func (u *User) IsVendor() bool { return u.Role == RoleVendor }

// DisplayName is the business name for vendors that have one.
func (u *User) DisplayName() string {
	if u.BusinessName != "" {
		return u.BusinessName
	}
	return u.Name
}
