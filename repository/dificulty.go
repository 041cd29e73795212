package repository

import (
	"github.com/skillmastery/server/model"
	"gorm.io/gorm"
)

// DificultyRepository persists dificulty rows.
type DificultyRepository interface {
	Repository[model.Dificulty]
}

type dificultyRepository struct {
	table[model.Dificulty]
}

// NewDificultyRepository returns a gorm-backed DificultyRepository.
func NewDificultyRepository(db *gorm.DB) DificultyRepository {
	return &dificultyRepository{table[model.Dificulty]{
		db:      db,
		name:    "dificulty",
		id:      func(d *model.Dificulty) int64 { return d.ID },
		overlay: (*model.Dificulty).Overlay,
	}}
}
