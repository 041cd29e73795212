package dto

import (
	"fmt"
	"time"

	"github.com/skillmastery/server/model"
	"gorm.io/datatypes"
)

// DateLayout is the wire format of date-only fields.
const DateLayout = "2006-01-02"

// CreateGoalDTO is the POST body for a goal.
type CreateGoalDTO struct {
	Name        string `json:"name" binding:"required,max=100"`
	FinishDate  string `json:"finishDate" binding:"required,datetime=2006-01-02"`
	UserSkillID int64  `json:"userSkillId" binding:"required,gt=0"`
}

// GoalDTO is the wire form of a goal; PUT bodies use it too.
type GoalDTO struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name" binding:"required,max=100"`
	FinishDate  string        `json:"finishDate" binding:"required,datetime=2006-01-02"`
	UserSkillID int64         `json:"userSkillId" binding:"required,gt=0"`
	UserSkill   *UserSkillDTO `json:"userSkill,omitempty" binding:"-"`
}

// ParseDate converts a YYYY-MM-DD string to a UTC midnight date.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return datatypes.Date(t), nil
}

// FormatDate drops any time-of-day component.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

// GoalToDTO maps a stored goal to its wire form.
func GoalToDTO(m model.Goal) GoalDTO {
	return GoalDTO{
		ID:          m.ID,
		Name:        m.Name,
		FinishDate:  FormatDate(m.FinishDate),
		UserSkillID: m.UserSkillID,
		UserSkill:   userSkillRef(m.UserSkill),
	}
}

// GoalsToDTO maps a slice of rows. The result is never nil.
func GoalsToDTO(ms []model.Goal) []GoalDTO {
	out := make([]GoalDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, GoalToDTO(m))
	}
	return out
}

// GoalFromCreate builds a new row from a POST body.
func GoalFromCreate(d CreateGoalDTO) (*model.Goal, error) {
	finish, err := ParseDate(d.FinishDate)
	if err != nil {
		return nil, err
	}
	return &model.Goal{
		Name:        d.Name,
		FinishDate:  finish,
		UserSkillID: d.UserSkillID,
	}, nil
}

// GoalFromDTO builds a row from a PUT body; ID selects the row to edit.
func GoalFromDTO(d GoalDTO) (*model.Goal, error) {
	finish, err := ParseDate(d.FinishDate)
	if err != nil {
		return nil, err
	}
	return &model.Goal{
		ID:          d.ID,
		Name:        d.Name,
		FinishDate:  finish,
		UserSkillID: d.UserSkillID,
	}, nil
}
