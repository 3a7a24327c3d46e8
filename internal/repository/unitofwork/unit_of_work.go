package unitofwork

import (
	"context"

	"ai-lessonlab-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	CategoryRepository() contract.CategoryRepository
	SubCategoryRepository() contract.SubCategoryRepository
	PromptRepository() contract.PromptRepository
}
