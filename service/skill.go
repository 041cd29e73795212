package service

import (
	"context"

	"github.com/skillmastery/server/dto"
	"github.com/skillmastery/server/model"
	"github.com/skillmastery/server/repository"
)

// SkillService implements the skill use cases over its repository.
type SkillService struct {
	base
	repo        repository.SkillRepository
	dificulties repository.DificultyRepository
	inUse       UsageChecker
}

// NewSkillService creates a SkillService. inUse decides whether Delete is refused.
func NewSkillService(repo repository.SkillRepository, dificulties repository.DificultyRepository, inUse UsageChecker, opts ...Option) *SkillService {
	return &SkillService{base: newBase(EntitySkill, opts), repo: repo, dificulties: dificulties, inUse: inUse}
}

// GetAll lists every skill, through the list cache when enabled.
func (s *SkillService) GetAll(ctx context.Context) ([]dto.SkillDTO, error) {
	return cachedList(ctx, &s.base, func(ctx context.Context) ([]dto.SkillDTO, error) {
		rows, err := s.repo.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		return dto.SkillsToDTO(rows), nil
	})
}

// Create stores a new skill once its references exist.
func (s *SkillService) Create(ctx context.Context, in dto.CreateSkillDTO) (dto.SkillDTO, error) {
	if err := requireExists[model.Dificulty](ctx, EntityDificulty, s.dificulties, in.DificultyID); err != nil {
		return dto.SkillDTO{}, err
	}
	row, err := s.repo.Create(ctx, dto.SkillFromCreate(in))
	if err != nil {
		return dto.SkillDTO{}, err
	}
	s.invalidate(ctx)
	return dto.SkillToDTO(*row), nil
}

// Delete removes the skill with id unless another resource uses it.
func (s *SkillService) Delete(ctx context.Context, id int64) (dto.SkillDTO, error) {
	row, err := deleteGuarded[model.Skill](ctx, s.entity, s.repo, s.inUse, id)
	if err != nil {
		return dto.SkillDTO{}, err
	}
	s.invalidate(ctx)
	return dto.SkillToDTO(*row), nil
}

// Edit overlays in onto the stored skill and returns the merged row.
func (s *SkillService) Edit(ctx context.Context, in dto.SkillDTO) (dto.SkillDTO, error) {
	if in.ID == 0 {
		return dto.SkillDTO{}, emptyID(s.entity)
	}
	if err := requireExists[model.Dificulty](ctx, EntityDificulty, s.dificulties, in.DificultyID); err != nil {
		return dto.SkillDTO{}, err
	}
	row, err := editExisting[model.Skill](ctx, s.entity, s.repo, in.ID, dto.SkillFromDTO(in))
	if err != nil {
		return dto.SkillDTO{}, err
	}
	s.invalidate(ctx)
	return dto.SkillToDTO(*row), nil
}
