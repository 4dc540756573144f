package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// IsStaff 教师和管理员具有审阅权限
func (r UserRole) IsStaff() bool {
	return r == Teacher || r == Admin
}

// swagger:model User
type User struct {
	BaseModel
	Name        string     `gorm:"size:100;not null" json:"name"`
	Email       string     `gorm:"size:100;unique;not null" json:"email"`
	Password    string     `gorm:"size:100;not null" json:"-"`
	Role        UserRole   `gorm:"type:enum('student','teacher','admin');default:'student'" json:"role"`
	Bio         string     `gorm:"type:text" json:"bio"`
	Avatar      string     `gorm:"size:255" json:"avatar"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	PhoneNumber string     `gorm:"size:20" json:"phoneNumber"`
	Website     string     `gorm:"size:255" json:"website"`
	Location    string     `gorm:"size:100" json:"location"`
	LastLogin   time.Time  `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
