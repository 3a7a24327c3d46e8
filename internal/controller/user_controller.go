package controller

import (
	"ai-lessonlab-be/internal/pkg/apperrors"
	"ai-lessonlab-be/internal/pkg/serverutils"
	"ai-lessonlab-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	Index(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type userController struct {
	userService service.IUserService
}

func NewUserController(userService service.IUserService) IUserController {
	return &userController{
		userService: userService,
	}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/users")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.Index)
	h.Get("/me", c.Me)
	h.Get("/:id", c.Show)
	h.Delete("/:id", c.Delete)
}

func (c *userController) Index(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)
	skip := ctx.QueryInt("skip", 0)
	limit := ctx.QueryInt("limit", 0)

	res, err := c.userService.GetAll(ctx.Context(), username, skip, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list users", res))
}

func (c *userController) Me(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	res, err := c.userService.GetMe(ctx.Context(), username)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get current user", res))
}

func (c *userController) Show(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	id, err := ctx.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.Validation("Invalid user id")
	}

	res, err := c.userService.GetById(ctx.Context(), username, uint(id))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get user", res))
}

func (c *userController) Delete(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	id, err := ctx.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.Validation("Invalid user id")
	}

	if err := c.userService.Delete(ctx.Context(), username, uint(id)); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete user", nil))
}
