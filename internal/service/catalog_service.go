package service

import (
	"context"
	"strings"

	"ai-lessonlab-be/internal/dto"
	"ai-lessonlab-be/internal/entity"
	"ai-lessonlab-be/internal/pkg/apperrors"
	"ai-lessonlab-be/internal/repository/specification"
	"ai-lessonlab-be/internal/repository/unitofwork"
)

type ICatalogService interface {
	GetCategories(ctx context.Context) ([]*dto.CategoryWithSubCategoriesResponse, error)
	GetCategory(ctx context.Context, categoryId uint) (*dto.CategoryWithSubCategoriesResponse, error)
	GetSubCategories(ctx context.Context, categoryId uint) ([]dto.SubCategoryResponse, error)
	CreateCategory(ctx context.Context, requesterUsername string, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	CreateSubCategory(ctx context.Context, requesterUsername string, req *dto.CreateSubCategoryRequest) (*dto.SubCategoryResponse, error)
}

type catalogService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewCatalogService(uowFactory unitofwork.RepositoryFactory) ICatalogService {
	return &catalogService{uowFactory: uowFactory}
}

func (s *catalogService) GetCategories(ctx context.Context) ([]*dto.CategoryWithSubCategoriesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	categories, err := uow.CategoryRepository().FindAll(ctx,
		specification.OrderBy{Field: "name", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.CategoryWithSubCategoriesResponse, 0, len(categories))
	for _, category := range categories {
		response, err := s.decorateCategory(ctx, uow, category)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}

	return responses, nil
}

func (s *catalogService) GetCategory(ctx context.Context, categoryId uint) (*dto.CategoryWithSubCategoriesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	category, err := uow.CategoryRepository().FindOne(ctx, specification.ByID{ID: categoryId})
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperrors.NotFound("Category")
	}

	return s.decorateCategory(ctx, uow, category)
}

func (s *catalogService) GetSubCategories(ctx context.Context, categoryId uint) ([]dto.SubCategoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	category, err := uow.CategoryRepository().FindOne(ctx, specification.ByID{ID: categoryId})
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperrors.NotFound("Category")
	}

	response, err := s.decorateCategory(ctx, uow, category)
	if err != nil {
		return nil, err
	}
	return response.SubCategories, nil
}

func (s *catalogService) decorateCategory(ctx context.Context, uow unitofwork.UnitOfWork, category *entity.Category) (*dto.CategoryWithSubCategoriesResponse, error) {
	subCategories, err := uow.SubCategoryRepository().FindAll(ctx,
		specification.ByCategoryID{CategoryID: category.Id},
		specification.OrderBy{Field: "name", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	subResponses := make([]dto.SubCategoryResponse, 0, len(subCategories))
	for _, sub := range subCategories {
		subResponses = append(subResponses, dto.SubCategoryResponse{
			Id:         sub.Id,
			Name:       sub.Name,
			CategoryId: sub.CategoryId,
			CreatedAt:  sub.CreatedAt,
		})
	}

	return &dto.CategoryWithSubCategoriesResponse{
		Id:            category.Id,
		Name:          category.Name,
		CreatedAt:     category.CreatedAt,
		SubCategories: subResponses,
	}, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, requesterUsername string, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	requester, err := currentUser(ctx, uow, requesterUsername)
	if err != nil {
		return nil, err
	}
	if !requester.IsAdmin {
		return nil, apperrors.Authorization("Not enough permissions")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("Category name cannot be empty")
	}

	existing, err := uow.CategoryRepository().FindOne(ctx, specification.ByName{Name: name})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("Category with this name already exists")
	}

	category := &entity.Category{Name: name}
	if err := uow.CategoryRepository().Create(ctx, category); err != nil {
		return nil, err
	}

	return &dto.CategoryResponse{
		Id:        category.Id,
		Name:      category.Name,
		CreatedAt: category.CreatedAt,
	}, nil
}

func (s *catalogService) CreateSubCategory(ctx context.Context, requesterUsername string, req *dto.CreateSubCategoryRequest) (*dto.SubCategoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	requester, err := currentUser(ctx, uow, requesterUsername)
	if err != nil {
		return nil, err
	}
	if !requester.IsAdmin {
		return nil, apperrors.Authorization("Not enough permissions")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("Subcategory name cannot be empty")
	}

	parent, err := uow.CategoryRepository().FindOne(ctx, specification.ByID{ID: req.CategoryId})
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, apperrors.NotFound("Parent category")
	}

	existing, err := uow.SubCategoryRepository().FindOne(ctx,
		specification.ByName{Name: name},
		specification.ByCategoryID{CategoryID: req.CategoryId},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("Subcategory with this name already exists in this category")
	}

	subCategory := &entity.SubCategory{
		Name:       name,
		CategoryId: req.CategoryId,
	}
	if err := uow.SubCategoryRepository().Create(ctx, subCategory); err != nil {
		return nil, err
	}

	return &dto.SubCategoryResponse{
		Id:         subCategory.Id,
		Name:       subCategory.Name,
		CategoryId: subCategory.CategoryId,
		CreatedAt:  subCategory.CreatedAt,
	}, nil
}
