package dto

import "github.com/skillmastery/server/model"

// CreateUserSkillDTO is the POST body for a user skill.
type CreateUserSkillDTO struct {
	Status  bool  `json:"status"`
	SkillID int64 `json:"skillId" binding:"required,gt=0"`
	UserID  int64 `json:"userId" binding:"required,gt=0"`
}

// UserSkillDTO is the wire form of a user skill; PUT bodies use it too.
type UserSkillDTO struct {
	ID      int64     `json:"id"`
	Status  bool      `json:"status"`
	SkillID int64     `json:"skillId" binding:"required,gt=0"`
	Skill   *SkillDTO `json:"skill,omitempty" binding:"-"`
	UserID  int64     `json:"userId" binding:"required,gt=0"`
	User    *UserDTO  `json:"user,omitempty" binding:"-"`
}

// UserSkillToDTO maps a stored user skill to its wire form.
func UserSkillToDTO(m model.UserSkill) UserSkillDTO {
	return UserSkillDTO{
		ID:      m.ID,
		Status:  m.Status,
		SkillID: m.SkillID,
		Skill:   skillRef(m.Skill),
		UserID:  m.UserID,
		User:    userRef(m.User),
	}
}

// UserSkillsToDTO maps a slice of rows. The result is never nil.
func UserSkillsToDTO(ms []model.UserSkill) []UserSkillDTO {
	out := make([]UserSkillDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, UserSkillToDTO(m))
	}
	return out
}

// UserSkillFromCreate builds a new row from a POST body.
func UserSkillFromCreate(d CreateUserSkillDTO) *model.UserSkill {
	return &model.UserSkill{
		Status:  d.Status,
		SkillID: d.SkillID,
		UserID:  d.UserID,
	}
}

// UserSkillFromDTO builds a row from a PUT body; ID selects the row to edit.
func UserSkillFromDTO(d UserSkillDTO) *model.UserSkill {
	return &model.UserSkill{
		ID:      d.ID,
		Status:  d.Status,
		SkillID: d.SkillID,
		UserID:  d.UserID,
	}
}

func userSkillRef(m *model.UserSkill) *UserSkillDTO {
	if m == nil {
		return nil
	}
	d := UserSkillToDTO(*m)
	return &d
}
