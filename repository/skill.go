package repository

import (
	"context"

	"github.com/skillmastery/server/model"
	"gorm.io/gorm"
)

// SkillRepository persists skill rows.
type SkillRepository interface {
	Repository[model.Skill]
	// CountByDificulty returns how many skills use the given dificulty.
	CountByDificulty(ctx context.Context, dificultyID int64) (int64, error)
}

type skillRepository struct {
	table[model.Skill]
}

// NewSkillRepository returns a gorm-backed SkillRepository.
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{table[model.Skill]{
		db:       db,
		name:     "skill",
		preloads: []string{"Dificulty"},
		id:       func(s *model.Skill) int64 { return s.ID },
		overlay:  (*model.Skill).Overlay,
	}}
}

func (r *skillRepository) CountByDificulty(ctx context.Context, dificultyID int64) (int64, error) {
	return r.countWhere(ctx, "dificulty_id", dificultyID)
}
