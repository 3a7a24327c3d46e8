package controller

import (
	"ai-lessonlab-be/internal/dto"
	"ai-lessonlab-be/internal/pkg/apperrors"
	"ai-lessonlab-be/internal/pkg/serverutils"
	"ai-lessonlab-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICategoryController interface {
	RegisterRoutes(r fiber.Router)
	Index(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	SubCategories(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	CreateSubCategory(ctx *fiber.Ctx) error
}

type categoryController struct {
	catalogService service.ICatalogService
}

func NewCategoryController(catalogService service.ICatalogService) ICategoryController {
	return &categoryController{
		catalogService: catalogService,
	}
}

func (c *categoryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/categories")
	h.Get("", c.Index)
	h.Post("", serverutils.JwtMiddleware, c.Create)
	h.Post("/subcategories", serverutils.JwtMiddleware, c.CreateSubCategory)
	h.Get("/:id", c.Show)
	h.Get("/:id/subcategories", c.SubCategories)
}

func (c *categoryController) Index(ctx *fiber.Ctx) error {
	res, err := c.catalogService.GetCategories(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list categories", res))
}

func (c *categoryController) Show(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.Validation("Invalid category id")
	}

	res, err := c.catalogService.GetCategory(ctx.Context(), uint(id))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get category", res))
}

func (c *categoryController) SubCategories(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.Validation("Invalid category id")
	}

	res, err := c.catalogService.GetSubCategories(ctx.Context(), uint(id))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list subcategories", res))
}

func (c *categoryController) Create(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	var req dto.CreateCategoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.catalogService.CreateCategory(ctx.Context(), username, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Success create category", res))
}

func (c *categoryController) CreateSubCategory(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	var req dto.CreateSubCategoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.catalogService.CreateSubCategory(ctx.Context(), username, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Success create subcategory", res))
}
