package http

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/semaforo-stock/internal/application/dto"
)

var validate = validator.New()

// bindJSON parsea el body y corre los tags validate. Si devuelve false la respuesta ya fue escrita.
func bindJSON(c *fiber.Ctx, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return validateStruct(c, out)
}

// bindQuery igual que bindJSON para query params.
func bindQuery(c *fiber.Ctx, out interface{}) (bool, error) {
	if err := c.QueryParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	return validateStruct(c, out)
}

func validateStruct(c *fiber.Ctx, out interface{}) (bool, error) {
	if err := validate.Struct(out); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fe.Field()+":"+fe.Tag())
			}
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "campos inválidos: " + strings.Join(fields, ", "),
		})
	}
	return true, nil
}
