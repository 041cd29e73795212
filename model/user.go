package model

import "time"

// User is a person tracking skills.
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName string    `gorm:"size:50;not null" json:"firstName"`
	LastName  string    `gorm:"size:50;not null" json:"lastName"`
	Email     string    `gorm:"size:254;not null" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	UserSkills []UserSkill `gorm:"foreignKey:UserID" json:"-"`
}

// Overlay copies the editable fields of src onto u.
func (u *User) Overlay(src *User) {
	u.FirstName = src.FirstName
	u.LastName = src.LastName
	u.Email = src.Email
}
