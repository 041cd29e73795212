package service

import (
	"context"

	"github.com/skillmastery/server/dto"
	"github.com/skillmastery/server/model"
	"github.com/skillmastery/server/repository"
)

// UserService implements the user use cases over its repository.
type UserService struct {
	base
	repo  repository.UserRepository
	inUse UsageChecker
}

// NewUserService creates a UserService. inUse decides whether Delete is refused.
func NewUserService(repo repository.UserRepository, inUse UsageChecker, opts ...Option) *UserService {
	return &UserService{base: newBase(EntityUser, opts), repo: repo, inUse: inUse}
}

// GetAll lists every user, through the list cache when enabled.
func (s *UserService) GetAll(ctx context.Context) ([]dto.UserDTO, error) {
	return cachedList(ctx, &s.base, func(ctx context.Context) ([]dto.UserDTO, error) {
		rows, err := s.repo.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		return dto.UsersToDTO(rows), nil
	})
}

// Create stores a new user.
func (s *UserService) Create(ctx context.Context, in dto.CreateUserDTO) (dto.UserDTO, error) {
	row, err := s.repo.Create(ctx, dto.UserFromCreate(in))
	if err != nil {
		return dto.UserDTO{}, err
	}
	s.invalidate(ctx)
	return dto.UserToDTO(*row), nil
}

// Delete removes the user with id unless another resource uses it.
func (s *UserService) Delete(ctx context.Context, id int64) (dto.UserDTO, error) {
	row, err := deleteGuarded[model.User](ctx, s.entity, s.repo, s.inUse, id)
	if err != nil {
		return dto.UserDTO{}, err
	}
	s.invalidate(ctx)
	return dto.UserToDTO(*row), nil
}

// Edit overlays in onto the stored user and returns the merged row.
func (s *UserService) Edit(ctx context.Context, in dto.UserDTO) (dto.UserDTO, error) {
	if in.ID == 0 {
		return dto.UserDTO{}, emptyID(s.entity)
	}
	row, err := editExisting[model.User](ctx, s.entity, s.repo, in.ID, dto.UserFromDTO(in))
	if err != nil {
		return dto.UserDTO{}, err
	}
	s.invalidate(ctx)
	return dto.UserToDTO(*row), nil
}
