package service

import (
	"context"

	"github.com/skillmastery/server/dto"
	"github.com/skillmastery/server/model"
	"github.com/skillmastery/server/repository"
)

// DificultyService implements the dificulty use cases over its repository.
type DificultyService struct {
	base
	repo  repository.DificultyRepository
	inUse UsageChecker
}

// NewDificultyService creates a DificultyService. inUse decides whether Delete is refused.
func NewDificultyService(repo repository.DificultyRepository, inUse UsageChecker, opts ...Option) *DificultyService {
	return &DificultyService{base: newBase(EntityDificulty, opts), repo: repo, inUse: inUse}
}

// GetAll lists every dificulty, through the list cache when enabled.
func (s *DificultyService) GetAll(ctx context.Context) ([]dto.DificultyDTO, error) {
	return cachedList(ctx, &s.base, func(ctx context.Context) ([]dto.DificultyDTO, error) {
		rows, err := s.repo.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		return dto.DificultiesToDTO(rows), nil
	})
}

// Create stores a new dificulty.
func (s *DificultyService) Create(ctx context.Context, in dto.CreateDificultyDTO) (dto.DificultyDTO, error) {
	row, err := s.repo.Create(ctx, dto.DificultyFromCreate(in))
	if err != nil {
		return dto.DificultyDTO{}, err
	}
	s.invalidate(ctx)
	return dto.DificultyToDTO(*row), nil
}

// Delete removes the dificulty with id unless another resource uses it.
func (s *DificultyService) Delete(ctx context.Context, id int64) (dto.DificultyDTO, error) {
	row, err := deleteGuarded[model.Dificulty](ctx, s.entity, s.repo, s.inUse, id)
	if err != nil {
		return dto.DificultyDTO{}, err
	}
	s.invalidate(ctx)
	return dto.DificultyToDTO(*row), nil
}

// Edit overlays in onto the stored dificulty and returns the merged row.
func (s *DificultyService) Edit(ctx context.Context, in dto.DificultyDTO) (dto.DificultyDTO, error) {
	if in.ID == 0 {
		return dto.DificultyDTO{}, emptyID(s.entity)
	}
	row, err := editExisting[model.Dificulty](ctx, s.entity, s.repo, in.ID, dto.DificultyFromDTO(in))
	if err != nil {
		return dto.DificultyDTO{}, err
	}
	s.invalidate(ctx)
	return dto.DificultyToDTO(*row), nil
}
