package presenter

import "github.com/gofiber/fiber/v2"

type ErrorResponse struct {
	Message string `json:"message"`
}

// ListResponse — конверт постраничных списков (вакансии, отклики).
type ListResponse struct {
	Items  any `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// List отдаёт элементы страницы вместе с параметрами выборки.
func List(c *fiber.Ctx, items any, limit, offset int) error {
	return JSON(c, fiber.StatusOK, ListResponse{Items: items, Limit: limit, Offset: offset})
}
