package contract

import (
	"context"

	"ai-lessonlab-be/internal/entity"
	"ai-lessonlab-be/internal/repository/specification"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Category, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Category, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type SubCategoryRepository interface {
	Create(ctx context.Context, subCategory *entity.SubCategory) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SubCategory, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SubCategory, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
