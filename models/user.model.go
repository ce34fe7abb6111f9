package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles understood by the platform
const (
	RoleStudent = "STUDENT"
	RoleTeacher = "TEACHER"
	RoleAdmin   = "ADMIN"
)

type User struct {
	gorm.Model
	ProfileImage    string    `gorm:"default:''"`
	Name            string    `gorm:"default:''"`
	Email           string    `gorm:"unique;not null"`
	Role            string    `gorm:"default:'STUDENT'"` // STUDENT, TEACHER, ADMIN
	Password        string    `gorm:"not null"`
	IsEmailVerified bool      `gorm:"default:false"`
	LastLogin       time.Time `gorm:"default:NULL"`
	IsDeleted       bool      `gorm:"default:false"`
}

// RoleSet returns the set of roles held by the user. A user holds a single
// role column today, but authorization decisions work on a set.
func (u *User) RoleSet() []string {
	if u.Role == "" {
		return nil
	}
	return []string{u.Role}
}
