package lesson

import (
	"context"
	"fmt"

	"ai-lessonlab-be/internal/pkg/logger"
	"ai-lessonlab-be/pkg/llm"
)

const (
	generationTemperature = 0.7
	generationMaxTokens   = 2000
)

// Request carries everything needed to produce one lesson.
type Request struct {
	Topic       string
	Prompt      string
	Category    string
	SubCategory string
}

// ILessonGenerator produces lesson text for a prompt. Implementations must
// never return an error for provider failures: the contract is that every
// request yields usable lesson text, falling back to a templated one.
type ILessonGenerator interface {
	Generate(ctx context.Context, req Request) string
}

type generator struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewGenerator(provider llm.LLMProvider, log logger.ILogger) ILessonGenerator {
	return &generator{
		provider: provider,
		logger:   log,
	}
}

func (g *generator) Generate(ctx context.Context, req Request) string {
	history := []llm.Message{
		{Role: "system", Content: buildSystemInstruction(req.Category, req.SubCategory)},
		{Role: "user", Content: req.Prompt},
	}

	content, err := g.provider.Chat(ctx, history,
		llm.WithTemperature(generationTemperature),
		llm.WithMaxTokens(generationMaxTokens),
	)
	if err != nil {
		if g.logger != nil {
			g.logger.Warn("lesson", "Generation failed, using fallback lesson", map[string]interface{}{
				"topic": req.Topic,
				"error": err.Error(),
			})
		}
		return FallbackLesson(req.Topic, req.Prompt)
	}
	return content
}

func buildSystemInstruction(category, subCategory string) string {
	return fmt.Sprintf(`You are an expert teacher creating a lesson about %s in the %s category.
Create a comprehensive, well-structured lesson that includes:
1. Introduction
2. Key concepts
3. Examples
4. Practice exercises
5. Summary
Format the response in markdown.`, subCategory, category)
}

// FallbackLesson synthesizes a deterministic placeholder lesson so a prompt
// always settles into the answered state even when the provider is down.
func FallbackLesson(topic, prompt string) string {
	return fmt.Sprintf(`# Lesson: %s

## Introduction
This is a placeholder lesson for "%s". The lesson generation service was
unavailable, so the content below is a study outline you can use right away.

## Key Concepts
- Break the topic into its core ideas and define each in your own words.
- Identify what you already know and what is new.

## Examples
Work through your original question step by step:

> %s

## Practice Exercises
1. Restate the question above in your own words.
2. Write down two things you would need to know to answer it.
3. Try answering it, then verify against a trusted reference.

## Summary
Revisit this prompt later; a regenerated lesson may provide a fuller answer.`, topic, topic, prompt)
}
