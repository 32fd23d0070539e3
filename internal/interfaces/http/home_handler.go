package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/buildlink/marketplace-api/internal/application/auth"
)

// HomeHandler superficies de aterrizaje de empleados y partners.
type HomeHandler struct{}

// NewHomeHandler construye el handler de superficies.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// EmployeeHome godoc
// @Summary      Superficie del empleado
// @Tags         home
// @Produce      json
// @Success      200  {object}  dto.PrincipalResponse
// @Router       / [get]
func (h *HomeHandler) EmployeeHome(c *fiber.Ctx) error {
	principal := GetPrincipal(c)
	return c.JSON(fiber.Map{
		"title": "BuildLink - 員工首頁",
		"user":  auth.ToPrincipalResponse(principal),
	})
}

// PartnerHome godoc
// @Summary      Superficie del partner
// @Tags         home
// @Produce      json
// @Success      200  {object}  dto.PrincipalResponse
// @Router       /partner/home [get]
func (h *HomeHandler) PartnerHome(c *fiber.Ctx) error {
	principal := GetPrincipal(c)
	return c.JSON(fiber.Map{
		"title": "BuildLink - 合作夥伴專區",
		"user":  auth.ToPrincipalResponse(principal),
		"modules": []fiber.Map{
			{"link": "/quotations/new", "name": "創建新報價"},
			{"link": "/orders/status", "name": "查看訂單狀態"},
			{"link": "/invoices/view", "name": "查看發票與請款"},
		},
	})
}
