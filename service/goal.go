package service

import (
	"context"

	"github.com/skillmastery/server/dto"
	"github.com/skillmastery/server/model"
	"github.com/skillmastery/server/repository"
)

// GoalService implements the goal use cases over its repository.
type GoalService struct {
	base
	repo       repository.GoalRepository
	userSkills repository.UserSkillRepository
	inUse      UsageChecker
}

// NewGoalService creates a GoalService. inUse decides whether Delete is refused.
func NewGoalService(repo repository.GoalRepository, userSkills repository.UserSkillRepository, inUse UsageChecker, opts ...Option) *GoalService {
	return &GoalService{base: newBase(EntityGoal, opts), repo: repo, userSkills: userSkills, inUse: inUse}
}

// GetAll lists every goal, through the list cache when enabled.
func (s *GoalService) GetAll(ctx context.Context) ([]dto.GoalDTO, error) {
	return cachedList(ctx, &s.base, func(ctx context.Context) ([]dto.GoalDTO, error) {
		rows, err := s.repo.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		return dto.GoalsToDTO(rows), nil
	})
}

// Create stores a new goal once its references exist.
func (s *GoalService) Create(ctx context.Context, in dto.CreateGoalDTO) (dto.GoalDTO, error) {
	if err := requireExists[model.UserSkill](ctx, EntityUserSkill, s.userSkills, in.UserSkillID); err != nil {
		return dto.GoalDTO{}, err
	}
	m, err := dto.GoalFromCreate(in)
	if err != nil {
		return dto.GoalDTO{}, err
	}
	row, err := s.repo.Create(ctx, m)
	if err != nil {
		return dto.GoalDTO{}, err
	}
	s.invalidate(ctx)
	return dto.GoalToDTO(*row), nil
}

// Delete removes the goal with id unless another resource uses it.
func (s *GoalService) Delete(ctx context.Context, id int64) (dto.GoalDTO, error) {
	row, err := deleteGuarded[model.Goal](ctx, s.entity, s.repo, s.inUse, id)
	if err != nil {
		return dto.GoalDTO{}, err
	}
	s.invalidate(ctx)
	return dto.GoalToDTO(*row), nil
}

// Edit overlays in onto the stored goal and returns the merged row.
func (s *GoalService) Edit(ctx context.Context, in dto.GoalDTO) (dto.GoalDTO, error) {
	if in.ID == 0 {
		return dto.GoalDTO{}, emptyID(s.entity)
	}
	if err := requireExists[model.UserSkill](ctx, EntityUserSkill, s.userSkills, in.UserSkillID); err != nil {
		return dto.GoalDTO{}, err
	}
	m, err := dto.GoalFromDTO(in)
	if err != nil {
		return dto.GoalDTO{}, err
	}
	row, err := editExisting[model.Goal](ctx, s.entity, s.repo, in.ID, m)
	if err != nil {
		return dto.GoalDTO{}, err
	}
	s.invalidate(ctx)
	return dto.GoalToDTO(*row), nil
}
