package dto

import "github.com/skillmastery/server/model"

// CreateSkillDTO is the POST body for a skill.
type CreateSkillDTO struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"required"`
	DificultyID int64  `json:"dificultyId" binding:"required,gt=0"`
}

// SkillDTO is the wire form of a skill; PUT bodies use it too.
type SkillDTO struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name" binding:"required,max=100"`
	Description string        `json:"description" binding:"required"`
	DificultyID int64         `json:"dificultyId" binding:"required,gt=0"`
	Dificulty   *DificultyDTO `json:"dificulty,omitempty" binding:"-"`
}

// SkillToDTO maps a stored skill to its wire form.
func SkillToDTO(m model.Skill) SkillDTO {
	return SkillDTO{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		DificultyID: m.DificultyID,
		Dificulty:   dificultyRef(m.Dificulty),
	}
}

// SkillsToDTO maps a slice of rows. The result is never nil.
func SkillsToDTO(ms []model.Skill) []SkillDTO {
	out := make([]SkillDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, SkillToDTO(m))
	}
	return out
}

// SkillFromCreate builds a new row from a POST body.
func SkillFromCreate(d CreateSkillDTO) *model.Skill {
	return &model.Skill{
		Name:        d.Name,
		Description: d.Description,
		DificultyID: d.DificultyID,
	}
}

// SkillFromDTO ignores the nested Dificulty; only DificultyID is persisted.
func SkillFromDTO(d SkillDTO) *model.Skill {
	return &model.Skill{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		DificultyID: d.DificultyID,
	}
}

func skillRef(m *model.Skill) *SkillDTO {
	if m == nil {
		return nil
	}
	d := SkillToDTO(*m)
	return &d
}
