package service

import (
	"context"

	"ai-lessonlab-be/internal/dto"
	"ai-lessonlab-be/internal/entity"
	"ai-lessonlab-be/internal/pkg/apperrors"
	"ai-lessonlab-be/internal/repository/specification"
	"ai-lessonlab-be/internal/repository/unitofwork"
)

// currentUser resolves the authenticated principal from its token subject.
// A token whose subject no longer maps to an active row is rejected.
func currentUser(ctx context.Context, uow unitofwork.UnitOfWork, username string) (*entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: username})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.Authentication("Could not validate credentials")
	}
	if !user.IsActive {
		return nil, apperrors.Authentication("User account is inactive")
	}
	return user, nil
}

func UserToResponse(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		Id:        user.Id,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		Phone:     user.Phone,
		IsActive:  user.IsActive,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
