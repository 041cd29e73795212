package repository

import (
	"context"

	"github.com/skillmastery/server/model"
	"gorm.io/gorm"
)

// GoalRepository persists goal rows.
type GoalRepository interface {
	Repository[model.Goal]
	CountByUserSkill(ctx context.Context, userSkillID int64) (int64, error)
}

type goalRepository struct {
	table[model.Goal]
}

// NewGoalRepository returns a gorm-backed GoalRepository.
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{table[model.Goal]{
		db:       db,
		name:     "goal",
		preloads: []string{"UserSkill"},
		id:       func(g *model.Goal) int64 { return g.ID },
		overlay:  (*model.Goal).Overlay,
	}}
}

func (r *goalRepository) CountByUserSkill(ctx context.Context, userSkillID int64) (int64, error) {
	return r.countWhere(ctx, "user_skill_id", userSkillID)
}
