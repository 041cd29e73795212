package service

import (
	"github.com/skillmastery/server/repository"
	"gorm.io/gorm"
)

// Services groups one service per entity, wired with the default usage guards.
type Services struct {
	Users       *UserService
	Skills      *SkillService
	Dificulties *DificultyService
	UserSkills  *UserSkillService
	Goals       *GoalService
}

// New builds gorm repositories on db and the services on top of them.
// Users and Skills are in use while a UserSkill references them, a
// Dificulty while a Skill does, and a UserSkill while a Goal does.
func New(db *gorm.DB, opts ...Option) *Services {
	users := repository.NewUserRepository(db)
	dificulties := repository.NewDificultyRepository(db)
	skills := repository.NewSkillRepository(db)
	userSkills := repository.NewUserSkillRepository(db)
	goals := repository.NewGoalRepository(db)

	return &Services{
		Users:       NewUserService(users, CountUsage(userSkills.CountByUser), opts...),
		Skills:      NewSkillService(skills, dificulties, CountUsage(userSkills.CountBySkill), opts...),
		Dificulties: NewDificultyService(dificulties, CountUsage(skills.CountByDificulty), opts...),
		UserSkills:  NewUserSkillService(userSkills, skills, users, CountUsage(goals.CountByUserSkill), opts...),
		Goals:       NewGoalService(goals, userSkills, NoUsage, opts...),
	}
}
