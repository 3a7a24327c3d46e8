package controller

import (
	"ai-lessonlab-be/internal/dto"
	"ai-lessonlab-be/internal/pkg/apperrors"
	"ai-lessonlab-be/internal/pkg/serverutils"
	"ai-lessonlab-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPromptController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Mine(ctx *fiber.Ctx) error
	ByUser(ctx *fiber.Ctx) error
	Index(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	GenerateLesson(ctx *fiber.Ctx) error
}

type promptController struct {
	promptService service.IPromptService
}

func NewPromptController(promptService service.IPromptService) IPromptController {
	return &promptController{
		promptService: promptService,
	}
}

func (c *promptController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/prompts")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.Index)
	h.Get("/my-prompts", c.Mine)
	h.Post("/ai/generate-lesson", c.GenerateLesson)
	h.Get("/users/:id", c.ByUser)
	h.Get("/:id", c.Show)
	h.Delete("/:id", c.Delete)
}

func (c *promptController) Create(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	var req dto.CreatePromptRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.promptService.Create(ctx.Context(), username, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Success create prompt", res))
}

func (c *promptController) Show(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	id, err := ctx.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.Validation("Invalid prompt id")
	}

	res, err := c.promptService.GetById(ctx.Context(), username, uint(id))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get prompt", res))
}

func (c *promptController) Mine(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)
	skip := ctx.QueryInt("skip", 0)
	limit := ctx.QueryInt("limit", 0)

	res, err := c.promptService.GetMine(ctx.Context(), username, skip, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list prompts", res))
}

func (c *promptController) ByUser(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	id, err := ctx.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.Validation("Invalid user id")
	}

	skip := ctx.QueryInt("skip", 0)
	limit := ctx.QueryInt("limit", 0)

	res, err := c.promptService.GetByUser(ctx.Context(), username, uint(id), skip, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list user prompts", res))
}

func (c *promptController) Index(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)
	filterUserId := ctx.QueryInt("user_id", 0)
	if filterUserId < 0 {
		filterUserId = 0
	}
	skip := ctx.QueryInt("skip", 0)
	limit := ctx.QueryInt("limit", 0)

	res, err := c.promptService.GetAll(ctx.Context(), username, uint(filterUserId), skip, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list all prompts", res))
}

func (c *promptController) Delete(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	id, err := ctx.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.Validation("Invalid prompt id")
	}

	if err := c.promptService.Delete(ctx.Context(), username, uint(id)); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete prompt", nil))
}

func (c *promptController) GenerateLesson(ctx *fiber.Ctx) error {
	var req dto.GenerateLessonRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.promptService.GenerateDirect(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate lesson", res))
}
