package service

import (
	"context"

	"github.com/skillmastery/server/dto"
	"github.com/skillmastery/server/model"
	"github.com/skillmastery/server/repository"
)

// UserSkillService implements the user skill use cases over its repository.
type UserSkillService struct {
	base
	repo   repository.UserSkillRepository
	skills repository.SkillRepository
	users  repository.UserRepository
	inUse  UsageChecker
}

// NewUserSkillService creates a UserSkillService. inUse decides whether Delete is refused.
func NewUserSkillService(repo repository.UserSkillRepository, skills repository.SkillRepository, users repository.UserRepository, inUse UsageChecker, opts ...Option) *UserSkillService {
	return &UserSkillService{base: newBase(EntityUserSkill, opts), repo: repo, skills: skills, users: users, inUse: inUse}
}

// GetAll lists every user skill, through the list cache when enabled.
func (s *UserSkillService) GetAll(ctx context.Context) ([]dto.UserSkillDTO, error) {
	return cachedList(ctx, &s.base, func(ctx context.Context) ([]dto.UserSkillDTO, error) {
		rows, err := s.repo.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		return dto.UserSkillsToDTO(rows), nil
	})
}

func (s *UserSkillService) checkParents(ctx context.Context, skillID, userID int64) error {
	if err := requireExists[model.Skill](ctx, EntitySkill, s.skills, skillID); err != nil {
		return err
	}
	return requireExists[model.User](ctx, EntityUser, s.users, userID)
}

// Create stores a new user skill once its references exist.
func (s *UserSkillService) Create(ctx context.Context, in dto.CreateUserSkillDTO) (dto.UserSkillDTO, error) {
	if err := s.checkParents(ctx, in.SkillID, in.UserID); err != nil {
		return dto.UserSkillDTO{}, err
	}
	row, err := s.repo.Create(ctx, dto.UserSkillFromCreate(in))
	if err != nil {
		return dto.UserSkillDTO{}, err
	}
	s.invalidate(ctx)
	return dto.UserSkillToDTO(*row), nil
}

// Delete removes the user skill with id unless another resource uses it.
func (s *UserSkillService) Delete(ctx context.Context, id int64) (dto.UserSkillDTO, error) {
	row, err := deleteGuarded[model.UserSkill](ctx, s.entity, s.repo, s.inUse, id)
	if err != nil {
		return dto.UserSkillDTO{}, err
	}
	s.invalidate(ctx)
	return dto.UserSkillToDTO(*row), nil
}

// Edit overlays in onto the stored user skill and returns the merged row.
func (s *UserSkillService) Edit(ctx context.Context, in dto.UserSkillDTO) (dto.UserSkillDTO, error) {
	if in.ID == 0 {
		return dto.UserSkillDTO{}, emptyID(s.entity)
	}
	if err := s.checkParents(ctx, in.SkillID, in.UserID); err != nil {
		return dto.UserSkillDTO{}, err
	}
	row, err := editExisting[model.UserSkill](ctx, s.entity, s.repo, in.ID, dto.UserSkillFromDTO(in))
	if err != nil {
		return dto.UserSkillDTO{}, err
	}
	s.invalidate(ctx)
	return dto.UserSkillToDTO(*row), nil
}
