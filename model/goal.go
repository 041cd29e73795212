package model

import (
	"time"

	"gorm.io/datatypes"
)

// Goal is a named target with a finish date, attached to a UserSkill.
type Goal struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	FinishDate  datatypes.Date `gorm:"not null" json:"finishDate"`
	UserSkillID int64          `gorm:"index:idx_goal_user_skill;not null" json:"userSkillId"`
	UserSkill   *UserSkill     `gorm:"foreignKey:UserSkillID" json:"userSkill,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
}

// Overlay copies the editable fields of src onto g.
func (g *Goal) Overlay(src *Goal) {
	g.Name = src.Name
	g.FinishDate = src.FinishDate
	g.UserSkillID = src.UserSkillID
	g.UserSkill = nil
}
