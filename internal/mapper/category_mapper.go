package mapper

import (
	"ai-lessonlab-be/internal/entity"
	"ai-lessonlab-be/internal/model"
)

type CategoryMapper struct{}

func NewCategoryMapper() *CategoryMapper {
	return &CategoryMapper{}
}

func (m *CategoryMapper) ToEntity(c *model.Category) *entity.Category {
	if c == nil {
		return nil
	}
	return &entity.Category{
		Id:        c.Id,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}

func (m *CategoryMapper) ToModel(c *entity.Category) *model.Category {
	if c == nil {
		return nil
	}
	return &model.Category{
		Id:        c.Id,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}

func (m *CategoryMapper) ToEntities(categories []*model.Category) []*entity.Category {
	entities := make([]*entity.Category, len(categories))
	for i, c := range categories {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *CategoryMapper) SubCategoryToEntity(s *model.SubCategory) *entity.SubCategory {
	if s == nil {
		return nil
	}
	return &entity.SubCategory{
		Id:         s.Id,
		Name:       s.Name,
		CategoryId: s.CategoryId,
		CreatedAt:  s.CreatedAt,
	}
}

func (m *CategoryMapper) SubCategoryToModel(s *entity.SubCategory) *model.SubCategory {
	if s == nil {
		return nil
	}
	return &model.SubCategory{
		Id:         s.Id,
		Name:       s.Name,
		CategoryId: s.CategoryId,
		CreatedAt:  s.CreatedAt,
	}
}

func (m *CategoryMapper) SubCategoriesToEntities(subs []*model.SubCategory) []*entity.SubCategory {
	entities := make([]*entity.SubCategory, len(subs))
	for i, s := range subs {
		entities[i] = m.SubCategoryToEntity(s)
	}
	return entities
}
