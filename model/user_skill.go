package model

import "time"

// UserSkill links a User to a Skill they pursue.
// Status is true once the user considers the skill mastered.
type UserSkill struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Status    bool      `gorm:"default:false" json:"status"`
	SkillID   int64     `gorm:"index:idx_user_skill_skill;not null" json:"skillId"`
	Skill     *Skill    `gorm:"foreignKey:SkillID" json:"skill,omitempty"`
	UserID    int64     `gorm:"index:idx_user_skill_user;not null" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	Goals []Goal `gorm:"foreignKey:UserSkillID" json:"-"`
}

// Overlay copies the editable fields of src onto us.
func (us *UserSkill) Overlay(src *UserSkill) {
	us.Status = src.Status
	us.SkillID = src.SkillID
	us.UserID = src.UserID
	us.Skill = nil
	us.User = nil
}
