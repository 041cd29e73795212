package repository

import (
	"github.com/skillmastery/server/model"
	"gorm.io/gorm"
)

// UserRepository persists user rows.
type UserRepository interface {
	Repository[model.User]
}

type userRepository struct {
	table[model.User]
}

// NewUserRepository returns a gorm-backed UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{table[model.User]{
		db:      db,
		name:    "user",
		id:      func(u *model.User) int64 { return u.ID },
		overlay: (*model.User).Overlay,
	}}
}
