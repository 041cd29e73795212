package repository

import (
	"context"

	"github.com/skillmastery/server/model"
	"gorm.io/gorm"
)

// UserSkillRepository persists user skill rows.
type UserSkillRepository interface {
	Repository[model.UserSkill]
	CountBySkill(ctx context.Context, skillID int64) (int64, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

type userSkillRepository struct {
	table[model.UserSkill]
}

// NewUserSkillRepository returns a gorm-backed UserSkillRepository.
func NewUserSkillRepository(db *gorm.DB) UserSkillRepository {
	return &userSkillRepository{table[model.UserSkill]{
		db:       db,
		name:     "user skill",
		preloads: []string{"Skill", "User"},
		id:       func(us *model.UserSkill) int64 { return us.ID },
		overlay:  (*model.UserSkill).Overlay,
	}}
}

func (r *userSkillRepository) CountBySkill(ctx context.Context, skillID int64) (int64, error) {
	return r.countWhere(ctx, "skill_id", skillID)
}

func (r *userSkillRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	return r.countWhere(ctx, "user_id", userID)
}
