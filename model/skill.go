package model

import "time"

// Skill is something a user can learn, ranked by a Dificulty.
type Skill struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Description string     `gorm:"type:text;not null" json:"description"`
	DificultyID int64      `gorm:"index:idx_skill_dificulty;not null" json:"dificultyId"`
	Dificulty   *Dificulty `gorm:"foreignKey:DificultyID" json:"dificulty,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`

	UserSkills []UserSkill `gorm:"foreignKey:SkillID" json:"-"`
}

// Overlay copies the editable fields of src onto s.
func (s *Skill) Overlay(src *Skill) {
	s.Name = src.Name
	s.Description = src.Description
	s.DificultyID = src.DificultyID
	// Drop a stale association so Save does not upsert it.
	s.Dificulty = nil
}
