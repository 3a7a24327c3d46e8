package service

import (
	"context"
	"sort"
	"sync"

	"ai-lessonlab-be/internal/entity"
	"ai-lessonlab-be/internal/repository/contract"
	"ai-lessonlab-be/internal/repository/specification"
	"ai-lessonlab-be/internal/repository/unitofwork"
	"ai-lessonlab-be/pkg/lesson"
)

// In-memory repository doubles. They interpret the subset of specifications
// the services actually use, so service tests run without a database.

type memStore struct {
	mu            sync.Mutex
	users         []*entity.User
	categories    []*entity.Category
	subCategories []*entity.SubCategory
	prompts       []*entity.Prompt
	nextId        uint
}

func newMemStore() *memStore {
	return &memStore{nextId: 1}
}

func (s *memStore) allocId() uint {
	id := s.nextId
	s.nextId++
	return id
}

type listQuery struct {
	byId         *uint
	byUsername   *string
	byEmail      *string
	byName       *string
	byCategoryId *uint
	ownedBy      *uint
	adminsOnly   bool
	orderField   string
	orderDesc    bool
	limit        int
	offset       int
}

func parseSpecs(specs []specification.Specification) listQuery {
	q := listQuery{limit: -1}
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			id := sp.ID
			q.byId = &id
		case specification.ByUsername:
			v := sp.Username
			q.byUsername = &v
		case specification.ByEmail:
			v := sp.Email
			q.byEmail = &v
		case specification.ByName:
			v := sp.Name
			q.byName = &v
		case specification.ByCategoryID:
			v := sp.CategoryID
			q.byCategoryId = &v
		case specification.OwnedBy:
			v := sp.UserID
			q.ownedBy = &v
		case specification.AdminsOnly:
			q.adminsOnly = true
		case specification.OrderBy:
			q.orderField = sp.Field
			q.orderDesc = sp.Desc
		case specification.Pagination:
			q.limit = sp.Limit
			q.offset = sp.Offset
		}
	}
	return q
}

func paginate[T any](rows []T, q listQuery) []T {
	if q.offset > 0 {
		if q.offset >= len(rows) {
			return nil
		}
		rows = rows[q.offset:]
	}
	if q.limit >= 0 && q.limit < len(rows) {
		rows = rows[:q.limit]
	}
	return rows
}

type fakeUserRepo struct{ store *memStore }

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user.Id = r.store.allocId()
	clone := *user
	r.store.users = append(r.store.users, &clone)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, u := range r.store.users {
		if u.Id == user.Id {
			clone := *user
			r.store.users[i] = &clone
			return nil
		}
	}
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, u := range r.store.users {
		if u.Id == id {
			r.store.users = append(r.store.users[:i], r.store.users[i+1:]...)
			break
		}
	}
	kept := r.store.prompts[:0]
	for _, p := range r.store.prompts {
		if p.UserId != id {
			kept = append(kept, p)
		}
	}
	r.store.prompts = kept
	return nil
}

func (r *fakeUserRepo) match(q listQuery) []*entity.User {
	var out []*entity.User
	for _, u := range r.store.users {
		if q.byId != nil && u.Id != *q.byId {
			continue
		}
		if q.byUsername != nil && u.Username != *q.byUsername {
			continue
		}
		if q.byEmail != nil && (u.Email == nil || *u.Email != *q.byEmail) {
			continue
		}
		if q.adminsOnly && !u.IsAdmin {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	if q.orderField == "created_at" {
		sort.SliceStable(out, func(i, j int) bool {
			if q.orderDesc {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	}
	return out
}

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rows := r.match(parseSpecs(specs))
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := parseSpecs(specs)
	return paginate(r.match(q), q), nil
}

func (r *fakeUserRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.match(parseSpecs(specs)))), nil
}

type fakeCategoryRepo struct{ store *memStore }

func (r *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	category.Id = r.store.allocId()
	clone := *category
	r.store.categories = append(r.store.categories, &clone)
	return nil
}

func (r *fakeCategoryRepo) match(q listQuery) []*entity.Category {
	var out []*entity.Category
	for _, c := range r.store.categories {
		if q.byId != nil && c.Id != *q.byId {
			continue
		}
		if q.byName != nil && c.Name != *q.byName {
			continue
		}
		clone := *c
		out = append(out, &clone)
	}
	if q.orderField == "name" {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	return out
}

func (r *fakeCategoryRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rows := r.match(parseSpecs(specs))
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *fakeCategoryRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := parseSpecs(specs)
	return paginate(r.match(q), q), nil
}

func (r *fakeCategoryRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.match(parseSpecs(specs)))), nil
}

type fakeSubCategoryRepo struct{ store *memStore }

func (r *fakeSubCategoryRepo) Create(_ context.Context, subCategory *entity.SubCategory) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	subCategory.Id = r.store.allocId()
	clone := *subCategory
	r.store.subCategories = append(r.store.subCategories, &clone)
	return nil
}

func (r *fakeSubCategoryRepo) match(q listQuery) []*entity.SubCategory {
	var out []*entity.SubCategory
	for _, s := range r.store.subCategories {
		if q.byId != nil && s.Id != *q.byId {
			continue
		}
		if q.byName != nil && s.Name != *q.byName {
			continue
		}
		if q.byCategoryId != nil && s.CategoryId != *q.byCategoryId {
			continue
		}
		clone := *s
		out = append(out, &clone)
	}
	if q.orderField == "name" {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	return out
}

func (r *fakeSubCategoryRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.SubCategory, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rows := r.match(parseSpecs(specs))
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *fakeSubCategoryRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.SubCategory, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := parseSpecs(specs)
	return paginate(r.match(q), q), nil
}

func (r *fakeSubCategoryRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.match(parseSpecs(specs)))), nil
}

type fakePromptRepo struct{ store *memStore }

func (r *fakePromptRepo) Create(_ context.Context, prompt *entity.Prompt) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	prompt.Id = r.store.allocId()
	clone := *prompt
	r.store.prompts = append(r.store.prompts, &clone)
	return nil
}

func (r *fakePromptRepo) Update(_ context.Context, prompt *entity.Prompt) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, p := range r.store.prompts {
		if p.Id == prompt.Id {
			clone := *prompt
			r.store.prompts[i] = &clone
			return nil
		}
	}
	return nil
}

func (r *fakePromptRepo) Delete(_ context.Context, id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, p := range r.store.prompts {
		if p.Id == id {
			r.store.prompts = append(r.store.prompts[:i], r.store.prompts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakePromptRepo) match(q listQuery) []*entity.Prompt {
	var out []*entity.Prompt
	for _, p := range r.store.prompts {
		if q.byId != nil && p.Id != *q.byId {
			continue
		}
		if q.ownedBy != nil && p.UserId != *q.ownedBy {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	if q.orderField == "created_at" {
		sort.SliceStable(out, func(i, j int) bool {
			if q.orderDesc {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	}
	return out
}

func (r *fakePromptRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Prompt, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rows := r.match(parseSpecs(specs))
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *fakePromptRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Prompt, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := parseSpecs(specs)
	return paginate(r.match(q), q), nil
}

func (r *fakePromptRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.match(parseSpecs(specs)))), nil
}

type fakeUnitOfWork struct {
	store *memStore
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return &fakeUserRepo{store: u.store}
}

func (u *fakeUnitOfWork) CategoryRepository() contract.CategoryRepository {
	return &fakeCategoryRepo{store: u.store}
}

func (u *fakeUnitOfWork) SubCategoryRepository() contract.SubCategoryRepository {
	return &fakeSubCategoryRepo{store: u.store}
}

func (u *fakeUnitOfWork) PromptRepository() contract.PromptRepository {
	return &fakePromptRepo{store: u.store}
}

type fakeRepositoryFactory struct {
	store *memStore
}

func newFakeFactory() *fakeRepositoryFactory {
	return &fakeRepositoryFactory{store: newMemStore()}
}

func (f *fakeRepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: f.store}
}

type capturingPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
	fail     error
}

func (p *capturingPublisher) Publish(_ context.Context, payload []byte) error {
	if p.fail != nil {
		return p.fail
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

type stubGenerator struct {
	content string
}

func (g *stubGenerator) Generate(_ context.Context, req lesson.Request) string {
	if g.content != "" {
		return g.content
	}
	return lesson.FallbackLesson(req.Topic, req.Prompt)
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
