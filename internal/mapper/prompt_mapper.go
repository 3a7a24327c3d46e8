package mapper

import (
	"ai-lessonlab-be/internal/entity"
	"ai-lessonlab-be/internal/model"
)

type PromptMapper struct{}

func NewPromptMapper() *PromptMapper {
	return &PromptMapper{}
}

func (m *PromptMapper) ToEntity(p *model.Prompt) *entity.Prompt {
	if p == nil {
		return nil
	}
	return &entity.Prompt{
		Id:            p.Id,
		UserId:        p.UserId,
		CategoryId:    p.CategoryId,
		SubCategoryId: p.SubCategoryId,
		Prompt:        p.Prompt,
		Response:      p.Response,
		CreatedAt:     p.CreatedAt,
	}
}

func (m *PromptMapper) ToModel(p *entity.Prompt) *model.Prompt {
	if p == nil {
		return nil
	}
	return &model.Prompt{
		Id:            p.Id,
		UserId:        p.UserId,
		CategoryId:    p.CategoryId,
		SubCategoryId: p.SubCategoryId,
		Prompt:        p.Prompt,
		Response:      p.Response,
		CreatedAt:     p.CreatedAt,
	}
}

func (m *PromptMapper) ToEntities(prompts []*model.Prompt) []*entity.Prompt {
	entities := make([]*entity.Prompt, len(prompts))
	for i, p := range prompts {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
