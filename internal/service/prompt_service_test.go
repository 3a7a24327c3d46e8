package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"ai-lessonlab-be/internal/dto"
	"ai-lessonlab-be/internal/entity"
	"ai-lessonlab-be/internal/pkg/apperrors"
	"ai-lessonlab-be/internal/repository/specification"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type promptFixture struct {
	factory       *fakeRepositoryFactory
	publisher     *capturingPublisher
	svc           IPromptService
	userId        uint
	adminId       uint
	categoryId    uint
	subCategoryId uint
}

func newPromptFixture(t *testing.T) *promptFixture {
	t.Helper()

	factory := newFakeFactory()
	publisher := &capturingPublisher{}
	svc := NewPromptService(factory, publisher, &stubGenerator{}, nopLogger{})

	ctx := context.Background()
	uow := factory.NewUnitOfWork(ctx)

	user := &entity.User{Username: "alice", FullName: "Alice", PasswordHash: "x", IsActive: true, CreatedAt: time.Now()}
	require.NoError(t, uow.UserRepository().Create(ctx, user))

	admin := &entity.User{Username: "root", FullName: "Root", PasswordHash: "x", IsActive: true, IsAdmin: true, CreatedAt: time.Now()}
	require.NoError(t, uow.UserRepository().Create(ctx, admin))

	category := &entity.Category{Name: "Science"}
	require.NoError(t, uow.CategoryRepository().Create(ctx, category))

	subCategory := &entity.SubCategory{Name: "Physics", CategoryId: category.Id}
	require.NoError(t, uow.SubCategoryRepository().Create(ctx, subCategory))

	return &promptFixture{
		factory:       factory,
		publisher:     publisher,
		svc:           svc,
		userId:        user.Id,
		adminId:       admin.Id,
		categoryId:    category.Id,
		subCategoryId: subCategory.Id,
	}
}

func TestCreatePrompt_QueuesGenerationTask(t *testing.T) {
	f := newPromptFixture(t)

	res, err := f.svc.Create(context.Background(), "alice", &dto.CreatePromptRequest{
		CategoryId:    f.categoryId,
		SubCategoryId: f.subCategoryId,
		Prompt:        "Explain Newton's second law",
	})

	require.NoError(t, err)
	assert.Equal(t, f.userId, res.UserId)
	assert.Nil(t, res.Response, "new prompts start unanswered")

	require.Len(t, f.publisher.payloads, 1)
	var task dto.LessonTaskMessage
	require.NoError(t, json.Unmarshal(f.publisher.payloads[0], &task))
	assert.Equal(t, res.Id, task.PromptId)
	assert.Equal(t, "Physics", task.Topic)
	assert.Equal(t, "Science", task.CategoryName)
}

func TestCreatePrompt_EmptyPrompt(t *testing.T) {
	f := newPromptFixture(t)

	_, err := f.svc.Create(context.Background(), "alice", &dto.CreatePromptRequest{
		CategoryId:    f.categoryId,
		SubCategoryId: f.subCategoryId,
		Prompt:        "   ",
	})

	require.Error(t, err)
	appErr, ok := apperrors.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
	assert.Empty(t, f.publisher.payloads)
}

func TestCreatePrompt_SubCategoryMismatch(t *testing.T) {
	f := newPromptFixture(t)
	ctx := context.Background()

	other := &entity.Category{Name: "Arts"}
	uow := f.factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.CategoryRepository().Create(ctx, other))

	_, err := f.svc.Create(ctx, "alice", &dto.CreatePromptRequest{
		CategoryId:    other.Id,
		SubCategoryId: f.subCategoryId,
		Prompt:        "Mismatched hierarchy",
	})

	require.Error(t, err)
	appErr, ok := apperrors.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestCreatePrompt_UnknownCategory(t *testing.T) {
	f := newPromptFixture(t)

	_, err := f.svc.Create(context.Background(), "alice", &dto.CreatePromptRequest{
		CategoryId:    9999,
		SubCategoryId: f.subCategoryId,
		Prompt:        "No such category",
	})

	require.Error(t, err)
	appErr, ok := apperrors.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestGetPrompt_OwnershipEnforced(t *testing.T) {
	f := newPromptFixture(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, "alice", &dto.CreatePromptRequest{
		CategoryId:    f.categoryId,
		SubCategoryId: f.subCategoryId,
		Prompt:        "Private question",
	})
	require.NoError(t, err)

	uow := f.factory.NewUnitOfWork(ctx)
	other := &entity.User{Username: "bob", FullName: "Bob", PasswordHash: "x", IsActive: true}
	require.NoError(t, uow.UserRepository().Create(ctx, other))

	_, err = f.svc.GetById(ctx, "bob", res.Id)
	require.Error(t, err)
	appErr, ok := apperrors.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeAuthorization, appErr.Code)

	// Admin and owner can both read it.
	detail, err := f.svc.GetById(ctx, "root", res.Id)
	require.NoError(t, err)
	assert.Equal(t, "alice", detail.UserName)
	assert.Equal(t, "Science", detail.CategoryName)
	assert.Equal(t, "Physics", detail.SubCategoryName)

	_, err = f.svc.GetById(ctx, "alice", res.Id)
	require.NoError(t, err)
}

func TestGetMine_NewestFirst(t *testing.T) {
	f := newPromptFixture(t)
	ctx := context.Background()

	uow := f.factory.NewUnitOfWork(ctx)
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		prompt := &entity.Prompt{
			UserId:        f.userId,
			CategoryId:    f.categoryId,
			SubCategoryId: f.subCategoryId,
			Prompt:        fmt.Sprintf("question %d", i),
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, uow.PromptRepository().Create(ctx, prompt))
	}

	res, err := f.svc.GetMine(ctx, "alice", 0, 0)
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, "question 2", res[0].Prompt)
	assert.Equal(t, "question 0", res[2].Prompt)

	paged, err := f.svc.GetMine(ctx, "alice", 1, 1)
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "question 1", paged[0].Prompt)
}

func TestGetByUser_Permissions(t *testing.T) {
	f := newPromptFixture(t)
	ctx := context.Background()

	uow := f.factory.NewUnitOfWork(ctx)
	other := &entity.User{Username: "bob", FullName: "Bob", PasswordHash: "x", IsActive: true}
	require.NoError(t, uow.UserRepository().Create(ctx, other))

	_, err := f.svc.GetByUser(ctx, "bob", f.userId, 0, 0)
	require.Error(t, err)
	appErr, ok := apperrors.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeAuthorization, appErr.Code)

	_, err = f.svc.GetByUser(ctx, "root", f.userId, 0, 0)
	require.NoError(t, err)

	_, err = f.svc.GetByUser(ctx, "root", 9999, 0, 0)
	require.Error(t, err)
	appErr, ok = apperrors.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestGetAll_AdminOnly(t *testing.T) {
	f := newPromptFixture(t)
	ctx := context.Background()

	_, err := f.svc.GetAll(ctx, "alice", 0, 0, 0)
	require.Error(t, err)
	appErr, ok := apperrors.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeAuthorization, appErr.Code)

	_, err = f.svc.GetAll(ctx, "root", 0, 0, 0)
	require.NoError(t, err)
}

func TestGetAll_UserFilter(t *testing.T) {
	f := newPromptFixture(t)
	ctx := context.Background()

	uow := f.factory.NewUnitOfWork(ctx)
	bob := &entity.User{Username: "bob", FullName: "Bob", PasswordHash: "x", IsActive: true}
	require.NoError(t, uow.UserRepository().Create(ctx, bob))

	for _, owner := range []uint{f.userId, f.userId, bob.Id} {
		require.NoError(t, uow.PromptRepository().Create(ctx, &entity.Prompt{
			UserId: owner, CategoryId: f.categoryId, SubCategoryId: f.subCategoryId,
			Prompt: "q", CreatedAt: time.Now(),
		}))
	}

	all, err := f.svc.GetAll(ctx, "root", 0, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := f.svc.GetAll(ctx, "root", f.userId, 0, 0)
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	for _, p := range filtered {
		assert.Equal(t, f.userId, p.UserId)
	}
}

func TestDeletePrompt(t *testing.T) {
	f := newPromptFixture(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, "alice", &dto.CreatePromptRequest{
		CategoryId:    f.categoryId,
		SubCategoryId: f.subCategoryId,
		Prompt:        "Short lived",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, "alice", res.Id))

	err = f.svc.Delete(ctx, "alice", res.Id)
	require.Error(t, err)
	appErr, ok := apperrors.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestGenerateDirect_UsesGenerator(t *testing.T) {
	factory := newFakeFactory()
	svc := NewPromptService(factory, &capturingPublisher{}, &stubGenerator{content: "# Custom Lesson"}, nopLogger{})

	res, err := svc.GenerateDirect(context.Background(), &dto.GenerateLessonRequest{
		Topic:       "Physics",
		Prompt:      "Explain gravity",
		Category:    "Science",
		SubCategory: "Physics",
	})

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "# Custom Lesson", res.Lesson)
	assert.Equal(t, "Physics", res.Topic)
}

// End to end over the in-process bus: create publishes a task, the consumer
// picks it up, generates, and the prompt settles into the answered state.
func TestPromptFulfillmentPipeline(t *testing.T) {
	factory := newFakeFactory()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	topic := "GENERATE_LESSON_TEST"

	publisherService := NewPublisherService(topic, pubSub)
	generator := &stubGenerator{content: "# Generated Lesson"}
	consumer := NewConsumerService(pubSub, topic, factory, generator, nil)
	svc := NewPromptService(factory, publisherService, generator, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	uow := factory.NewUnitOfWork(ctx)
	user := &entity.User{Username: "alice", FullName: "Alice", PasswordHash: "x", IsActive: true}
	require.NoError(t, uow.UserRepository().Create(ctx, user))
	category := &entity.Category{Name: "Science"}
	require.NoError(t, uow.CategoryRepository().Create(ctx, category))
	subCategory := &entity.SubCategory{Name: "Physics", CategoryId: category.Id}
	require.NoError(t, uow.SubCategoryRepository().Create(ctx, subCategory))

	res, err := svc.Create(ctx, "alice", &dto.CreatePromptRequest{
		CategoryId:    category.Id,
		SubCategoryId: subCategory.Id,
		Prompt:        "Explain inertia",
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		prompt, err := uow.PromptRepository().FindOne(ctx, specification.ByID{ID: res.Id})
		return err == nil && prompt != nil && prompt.Response != nil
	}, 5*time.Second, 10*time.Millisecond, "prompt should be answered by the consumer")

	prompt, err := uow.PromptRepository().FindOne(ctx, specification.ByID{ID: res.Id})
	require.NoError(t, err)
	assert.Equal(t, "# Generated Lesson", *prompt.Response)
	assert.True(t, prompt.IsAnswered())
}
