package rest

import (
	"github.com/skillmastery/server/audit"
	"github.com/skillmastery/server/dto"
	"github.com/skillmastery/server/service"
)

// UserHandler serves /users.
type UserHandler struct {
	crud[dto.CreateUserDTO, dto.UserDTO]
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc *service.UserService, aud *audit.Service) *UserHandler {
	return &UserHandler{crud[dto.CreateUserDTO, dto.UserDTO]{
		entity: service.EntityUser,
		svc:    svc,
		audit:  aud,
		idOf:   func(d dto.UserDTO) int64 { return d.ID },
	}}
}

// SkillHandler serves /skills.
type SkillHandler struct {
	crud[dto.CreateSkillDTO, dto.SkillDTO]
}

// NewSkillHandler creates a SkillHandler.
func NewSkillHandler(svc *service.SkillService, aud *audit.Service) *SkillHandler {
	return &SkillHandler{crud[dto.CreateSkillDTO, dto.SkillDTO]{
		entity: service.EntitySkill,
		svc:    svc,
		audit:  aud,
		idOf:   func(d dto.SkillDTO) int64 { return d.ID },
	}}
}

// DificultyHandler serves /dificulties.
type DificultyHandler struct {
	crud[dto.CreateDificultyDTO, dto.DificultyDTO]
}

// NewDificultyHandler creates a DificultyHandler.
func NewDificultyHandler(svc *service.DificultyService, aud *audit.Service) *DificultyHandler {
	return &DificultyHandler{crud[dto.CreateDificultyDTO, dto.DificultyDTO]{
		entity: service.EntityDificulty,
		svc:    svc,
		audit:  aud,
		idOf:   func(d dto.DificultyDTO) int64 { return d.ID },
	}}
}

// UserSkillHandler serves /userskills.
type UserSkillHandler struct {
	crud[dto.CreateUserSkillDTO, dto.UserSkillDTO]
}

// NewUserSkillHandler creates a UserSkillHandler.
func NewUserSkillHandler(svc *service.UserSkillService, aud *audit.Service) *UserSkillHandler {
	return &UserSkillHandler{crud[dto.CreateUserSkillDTO, dto.UserSkillDTO]{
		entity: service.EntityUserSkill,
		svc:    svc,
		audit:  aud,
		idOf:   func(d dto.UserSkillDTO) int64 { return d.ID },
	}}
}

// GoalHandler serves /goals.
type GoalHandler struct {
	crud[dto.CreateGoalDTO, dto.GoalDTO]
}

// NewGoalHandler creates a GoalHandler.
func NewGoalHandler(svc *service.GoalService, aud *audit.Service) *GoalHandler {
	return &GoalHandler{crud[dto.CreateGoalDTO, dto.GoalDTO]{
		entity: service.EntityGoal,
		svc:    svc,
		audit:  aud,
		idOf:   func(d dto.GoalDTO) int64 { return d.ID },
	}}
}
