package service

import (
	"context"

	"ai-lessonlab-be/internal/dto"
	"ai-lessonlab-be/internal/pkg/apperrors"
	"ai-lessonlab-be/internal/repository/specification"
	"ai-lessonlab-be/internal/repository/unitofwork"
)

type IUserService interface {
	GetAll(ctx context.Context, requesterUsername string, skip, limit int) ([]*dto.UserWithPromptsResponse, error)
	GetMe(ctx context.Context, requesterUsername string) (*dto.UserResponse, error)
	GetById(ctx context.Context, requesterUsername string, userId uint) (*dto.UserResponse, error)
	Delete(ctx context.Context, requesterUsername string, userId uint) error
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{uowFactory: uowFactory}
}

const maxUserPageSize = 100

func (s *userService) GetAll(ctx context.Context, requesterUsername string, skip, limit int) ([]*dto.UserWithPromptsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	requester, err := currentUser(ctx, uow, requesterUsername)
	if err != nil {
		return nil, err
	}
	if !requester.IsAdmin {
		return nil, apperrors.Authorization("Not enough permissions")
	}

	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > maxUserPageSize {
		limit = maxUserPageSize
	}

	users, err := uow.UserRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: skip},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.UserWithPromptsResponse, 0, len(users))
	for _, user := range users {
		count, err := uow.PromptRepository().Count(ctx, specification.OwnedBy{UserID: user.Id})
		if err != nil {
			return nil, err
		}
		responses = append(responses, &dto.UserWithPromptsResponse{
			Id:          user.Id,
			Username:    user.Username,
			FullName:    user.FullName,
			Phone:       user.Phone,
			CreatedAt:   user.CreatedAt,
			PromptCount: count,
		})
	}

	return responses, nil
}

func (s *userService) GetMe(ctx context.Context, requesterUsername string) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	requester, err := currentUser(ctx, uow, requesterUsername)
	if err != nil {
		return nil, err
	}
	return UserToResponse(requester), nil
}

func (s *userService) GetById(ctx context.Context, requesterUsername string, userId uint) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	requester, err := currentUser(ctx, uow, requesterUsername)
	if err != nil {
		return nil, err
	}
	if !requester.IsAdmin && requester.Id != userId {
		return nil, apperrors.Authorization("Not enough permissions")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("User")
	}

	return UserToResponse(user), nil
}

func (s *userService) Delete(ctx context.Context, requesterUsername string, userId uint) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	requester, err := currentUser(ctx, uow, requesterUsername)
	if err != nil {
		return err
	}
	if !requester.IsAdmin {
		return apperrors.Authorization("Not enough permissions")
	}
	if requester.Id == userId {
		return apperrors.Validation("Cannot delete your own account")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NotFound("User")
	}

	// Prompts owned by the user go with it via ON DELETE CASCADE.
	return uow.UserRepository().Delete(ctx, userId)
}
