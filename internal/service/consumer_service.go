package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"ai-lessonlab-be/internal/dto"
	"ai-lessonlab-be/internal/repository/specification"
	"ai-lessonlab-be/internal/repository/unitofwork"
	"ai-lessonlab-be/pkg/events"
	"ai-lessonlab-be/pkg/lesson"
	pktNats "ai-lessonlab-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub          *gochannel.GoChannel
	topicName       string
	uowFactory      unitofwork.RepositoryFactory
	lessonGenerator lesson.ILessonGenerator
	eventPublisher  *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	lessonGenerator lesson.ILessonGenerator,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:          pubSub,
		topicName:       topicName,
		uowFactory:      uowFactory,
		lessonGenerator: lessonGenerator,
		eventPublisher:  eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.LessonTaskMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal lesson task: %v", err)
		msg.Ack() // Ack malformed messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Generating lesson for PromptId: %d (topic %q)", payload.PromptId, payload.Topic)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	prompt, err := uow.PromptRepository().FindOne(ctx, specification.ByID{ID: payload.PromptId})
	if err != nil {
		log.Printf("[ERROR] Failed to get prompt %d: %v", payload.PromptId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if prompt == nil {
		log.Printf("[WARN] Prompt %d no longer exists, skipping", payload.PromptId)
		msg.Ack() // Prompt deleted before generation finished? Ack.
		return
	}
	if prompt.Response != nil {
		log.Printf("[INFO] Prompt %d already answered, skipping", payload.PromptId)
		msg.Ack()
		return
	}

	// Generate never fails: provider errors degrade to the fallback lesson.
	content := cs.lessonGenerator.Generate(ctx, lesson.Request{
		Topic:       payload.Topic,
		Prompt:      payload.Prompt,
		Category:    payload.CategoryName,
		SubCategory: payload.SubCategoryName,
	})

	prompt.Response = &content
	if err := uow.PromptRepository().Update(ctx, prompt); err != nil {
		log.Printf("[ERROR] Failed to store lesson for prompt %d: %v", payload.PromptId, err)
		msg.Nack()
		return
	}

	log.Printf("[INFO] Lesson stored for prompt %d (%d chars)", payload.PromptId, len(content))

	if cs.eventPublisher != nil {
		event := events.BaseEvent{
			Type: "PROMPT_ANSWERED",
			Data: map[string]interface{}{
				"prompt_id": prompt.Id,
				"user_id":   prompt.UserId,
				"topic":     payload.Topic,
			},
			OccurredAt: time.Now(),
		}
		if err := cs.eventPublisher.Publish(ctx, event); err != nil {
			fmt.Printf("[WARN] Failed to publish PROMPT_ANSWERED event: %v\n", err)
		}
	}

	msg.Ack()
}
