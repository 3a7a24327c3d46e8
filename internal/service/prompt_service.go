package service

import (
	"context"
	"encoding/json"
	"strings"

	"ai-lessonlab-be/internal/dto"
	"ai-lessonlab-be/internal/entity"
	"ai-lessonlab-be/internal/pkg/apperrors"
	"ai-lessonlab-be/internal/pkg/logger"
	"ai-lessonlab-be/internal/repository/specification"
	"ai-lessonlab-be/internal/repository/unitofwork"
	"ai-lessonlab-be/pkg/lesson"
)

type IPromptService interface {
	Create(ctx context.Context, requesterUsername string, req *dto.CreatePromptRequest) (*dto.PromptResponse, error)
	GetById(ctx context.Context, requesterUsername string, promptId uint) (*dto.PromptWithDetailsResponse, error)
	GetMine(ctx context.Context, requesterUsername string, skip, limit int) ([]*dto.PromptResponse, error)
	GetByUser(ctx context.Context, requesterUsername string, userId uint, skip, limit int) ([]*dto.PromptResponse, error)
	GetAll(ctx context.Context, requesterUsername string, filterUserId uint, skip, limit int) ([]*dto.PromptWithDetailsResponse, error)
	Delete(ctx context.Context, requesterUsername string, promptId uint) error
	GenerateDirect(ctx context.Context, req *dto.GenerateLessonRequest) (*dto.GenerateLessonResponse, error)
}

type promptService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	lessonGenerator  lesson.ILessonGenerator
	logger           logger.ILogger
}

func NewPromptService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	lessonGenerator lesson.ILessonGenerator,
	log logger.ILogger,
) IPromptService {
	return &promptService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		lessonGenerator:  lessonGenerator,
		logger:           log,
	}
}

const (
	defaultOwnPageSize = 50
	maxPromptPageSize  = 100
)

func (s *promptService) Create(ctx context.Context, requesterUsername string, req *dto.CreatePromptRequest) (*dto.PromptResponse, error) {
	promptText := strings.TrimSpace(req.Prompt)
	if promptText == "" {
		return nil, apperrors.Validation("Prompt cannot be empty")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	requester, err := currentUser(ctx, uow, requesterUsername)
	if err != nil {
		return nil, err
	}

	category, err := uow.CategoryRepository().FindOne(ctx, specification.ByID{ID: req.CategoryId})
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperrors.NotFound("Category")
	}

	subCategory, err := uow.SubCategoryRepository().FindOne(ctx,
		specification.ByID{ID: req.SubCategoryId},
		specification.ByCategoryID{CategoryID: req.CategoryId},
	)
	if err != nil {
		return nil, err
	}
	if subCategory == nil {
		return nil, apperrors.NotFoundMsg("Subcategory not found or doesn't belong to the specified category")
	}

	prompt := &entity.Prompt{
		UserId:        requester.Id,
		CategoryId:    category.Id,
		SubCategoryId: subCategory.Id,
		Prompt:        promptText,
	}
	if err := uow.PromptRepository().Create(ctx, prompt); err != nil {
		return nil, err
	}

	taskMsg := dto.LessonTaskMessage{
		PromptId:        prompt.Id,
		Topic:           subCategory.Name,
		Prompt:          prompt.Prompt,
		CategoryName:    category.Name,
		SubCategoryName: subCategory.Name,
	}
	msgJson, err := json.Marshal(taskMsg)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		// The row is already committed; the prompt stays pending and the
		// fallback path never runs, so surface the failure.
		s.logger.Error("prompt", "Failed to enqueue lesson generation task", map[string]interface{}{
			"prompt_id": prompt.Id,
			"error":     err.Error(),
		})
		return nil, apperrors.InternalWrap(err, "Failed to schedule lesson generation")
	}

	s.logger.Info("prompt", "Prompt created and queued for lesson generation", map[string]interface{}{
		"prompt_id": prompt.Id,
		"user_id":   requester.Id,
		"topic":     subCategory.Name,
	})

	return promptToResponse(prompt), nil
}

func (s *promptService) GetById(ctx context.Context, requesterUsername string, promptId uint) (*dto.PromptWithDetailsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	requester, err := currentUser(ctx, uow, requesterUsername)
	if err != nil {
		return nil, err
	}

	prompt, err := uow.PromptRepository().FindOne(ctx, specification.ByID{ID: promptId})
	if err != nil {
		return nil, err
	}
	if prompt == nil {
		return nil, apperrors.NotFound("Prompt")
	}

	if prompt.UserId != requester.Id && !requester.IsAdmin {
		return nil, apperrors.Authorization("Not enough permissions to view this prompt")
	}

	return s.decoratePrompt(ctx, uow, prompt)
}

func (s *promptService) GetMine(ctx context.Context, requesterUsername string, skip, limit int) ([]*dto.PromptResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	requester, err := currentUser(ctx, uow, requesterUsername)
	if err != nil {
		return nil, err
	}

	return s.listOwned(ctx, uow, requester.Id, skip, limit)
}

func (s *promptService) GetByUser(ctx context.Context, requesterUsername string, userId uint, skip, limit int) ([]*dto.PromptResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	requester, err := currentUser(ctx, uow, requesterUsername)
	if err != nil {
		return nil, err
	}
	if requester.Id != userId && !requester.IsAdmin {
		return nil, apperrors.Authorization("Not enough permissions")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("User")
	}

	return s.listOwned(ctx, uow, userId, skip, limit)
}

func (s *promptService) listOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId uint, skip, limit int) ([]*dto.PromptResponse, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > defaultOwnPageSize {
		limit = defaultOwnPageSize
	}

	prompts, err := uow.PromptRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: skip},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.PromptResponse, 0, len(prompts))
	for _, prompt := range prompts {
		responses = append(responses, promptToResponse(prompt))
	}
	return responses, nil
}

func (s *promptService) GetAll(ctx context.Context, requesterUsername string, filterUserId uint, skip, limit int) ([]*dto.PromptWithDetailsResponse, error) {
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
	if limit <= 0 || limit > maxPromptPageSize {
		limit = maxPromptPageSize
	}

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: skip},
	}
	if filterUserId != 0 {
		specs = append(specs, specification.OwnedBy{UserID: filterUserId})
	}

	prompts, err := uow.PromptRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.PromptWithDetailsResponse, 0, len(prompts))
	for _, prompt := range prompts {
		response, err := s.decoratePrompt(ctx, uow, prompt)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}
	return responses, nil
}

func (s *promptService) Delete(ctx context.Context, requesterUsername string, promptId uint) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	requester, err := currentUser(ctx, uow, requesterUsername)
	if err != nil {
		return err
	}

	prompt, err := uow.PromptRepository().FindOne(ctx, specification.ByID{ID: promptId})
	if err != nil {
		return err
	}
	if prompt == nil {
		return apperrors.NotFound("Prompt")
	}
	if prompt.UserId != requester.Id && !requester.IsAdmin {
		return apperrors.Authorization("Not enough permissions to delete this prompt")
	}

	return uow.PromptRepository().Delete(ctx, promptId)
}

// GenerateDirect runs the generator synchronously, bypassing persistence.
func (s *promptService) GenerateDirect(ctx context.Context, req *dto.GenerateLessonRequest) (*dto.GenerateLessonResponse, error) {
	content := s.lessonGenerator.Generate(ctx, lesson.Request{
		Topic:       req.Topic,
		Prompt:      req.Prompt,
		Category:    req.Category,
		SubCategory: req.SubCategory,
	})

	return &dto.GenerateLessonResponse{
		Lesson:  content,
		Topic:   req.Topic,
		Success: true,
	}, nil
}

func (s *promptService) decoratePrompt(ctx context.Context, uow unitofwork.UnitOfWork, prompt *entity.Prompt) (*dto.PromptWithDetailsResponse, error) {
	response := &dto.PromptWithDetailsResponse{
		Id:            prompt.Id,
		UserId:        prompt.UserId,
		CategoryId:    prompt.CategoryId,
		SubCategoryId: prompt.SubCategoryId,
		Prompt:        prompt.Prompt,
		Response:      prompt.Response,
		CreatedAt:     prompt.CreatedAt,
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: prompt.UserId})
	if err != nil {
		return nil, err
	}
	if user != nil {
		response.UserName = user.Username
	}

	category, err := uow.CategoryRepository().FindOne(ctx, specification.ByID{ID: prompt.CategoryId})
	if err != nil {
		return nil, err
	}
	if category != nil {
		response.CategoryName = category.Name
	}

	subCategory, err := uow.SubCategoryRepository().FindOne(ctx, specification.ByID{ID: prompt.SubCategoryId})
	if err != nil {
		return nil, err
	}
	if subCategory != nil {
		response.SubCategoryName = subCategory.Name
	}

	return response, nil
}

func promptToResponse(prompt *entity.Prompt) *dto.PromptResponse {
	return &dto.PromptResponse{
		Id:            prompt.Id,
		UserId:        prompt.UserId,
		CategoryId:    prompt.CategoryId,
		SubCategoryId: prompt.SubCategoryId,
		Prompt:        prompt.Prompt,
		Response:      prompt.Response,
		CreatedAt:     prompt.CreatedAt,
	}
}
