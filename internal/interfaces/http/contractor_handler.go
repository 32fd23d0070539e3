package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/buildlink/marketplace-api/internal/application/analytics"
	"github.com/buildlink/marketplace-api/internal/application/catalog"
	"github.com/buildlink/marketplace-api/internal/application/dto"
	"github.com/buildlink/marketplace-api/internal/application/orders"
	"github.com/buildlink/marketplace-api/internal/domain/entity"
	"github.com/buildlink/marketplace-api/internal/infrastructure/pdf"
)

// ContractorHandler superficies del contratista: dashboard, catálogo,
// proyectos, creación de órdenes e historial.
type ContractorHandler struct {
	dashboardUC *analytics.DashboardUseCase
	catalogUC   *catalog.CatalogUseCase
	ordersUC    *orders.CreateOrderUseCase
	docGen      *pdf.PODocumentGenerator
}

// NewContractorHandler construye el handler del contratista.
func NewContractorHandler(
	dashboardUC *analytics.DashboardUseCase,
	catalogUC *catalog.CatalogUseCase,
	ordersUC *orders.CreateOrderUseCase,
	docGen *pdf.PODocumentGenerator,
) *ContractorHandler {
	return &ContractorHandler{
		dashboardUC: dashboardUC,
		catalogUC:   catalogUC,
		ordersUC:    ordersUC,
		docGen:      docGen,
	}
}

// contractor devuelve el registro del contratista resuelto por el middleware.
func (h *ContractorHandler) contractor(c *fiber.Ctx) *entity.Contractor {
	principal := GetPrincipal(c)
	if principal == nil {
		return nil
	}
	return principal.Contractor
}

// Dashboard godoc
// @Summary      Dashboard del contratista
// @Tags         contractor
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /contractor/dashboard [get]
func (h *ContractorHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboardUC.Dashboard(h.contractor(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Suppliers godoc
// @Summary      Listado/búsqueda de proveedores (q + type: supplier|material)
// @Tags         contractor
// @Produce      json
// @Success      200  {array}  dto.SupplierResponse
// @Router       /contractor/suppliers [get]
func (h *ContractorHandler) Suppliers(c *fiber.Ctx) error {
	out, err := h.catalogUC.SearchSuppliers(c.Query("q"), c.Query("type", catalog.SearchBySupplier))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SupplierDetail godoc
// @Summary      Página de compra: proveedor, ofertas y proyectos abiertos
// @Tags         contractor
// @Produce      json
// @Success      200  {object}  dto.SupplierDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /contractor/suppliers/{id} [get]
func (h *ContractorHandler) SupplierDetail(c *fiber.Ctx) error {
	out, err := h.catalogUC.SupplierDetail(c.Params("id"), h.contractor(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateOrder godoc
// @Summary      Crear orden de compra (cabecera + líneas, todo o nada)
// @Tags         contractor
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "project_id, delivery_date, cart_data"
// @Success      201   {object}  dto.CreateOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /contractor/suppliers/{id}/orders [post]
func (h *ContractorHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.ordersUC.CreateOrder(c.Context(), h.contractor(c).ID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Projects godoc
// @Summary      Proyectos del contratista
// @Tags         contractor
// @Produce      json
// @Success      200  {array}  dto.ProjectResponse
// @Router       /contractor/projects [get]
func (h *ContractorHandler) Projects(c *fiber.Ctx) error {
	out, err := h.catalogUC.ListProjects(h.contractor(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateProject godoc
// @Summary      Crear proyecto (estado Planning)
// @Tags         contractor
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProjectRequest  true  "name, location, start_date"
// @Success      201   {object}  dto.ProjectResponse
// @Router       /contractor/projects [post]
func (h *ContractorHandler) CreateProject(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.catalogUC.CreateProject(h.contractor(c).ID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ProjectDetail godoc
// @Summary      Detalle de proyecto con sus órdenes y líneas
// @Tags         contractor
// @Produce      json
// @Success      200  {object}  dto.ProjectDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /contractor/projects/{id} [get]
func (h *ContractorHandler) ProjectDetail(c *fiber.Ctx) error {
	project, err := h.catalogUC.GetProject(h.contractor(c).ID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	orderList, err := h.ordersUC.ListByProject(project.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ProjectDetailResponse{Project: *project, Orders: orderList})
}

// Orders godoc
// @Summary      Historial de órdenes agrupado por proveedor
// @Tags         contractor
// @Produce      json
// @Success      200  {array}  dto.SupplierHistoryGroup
// @Router       /contractor/orders [get]
func (h *ContractorHandler) Orders(c *fiber.Ctx) error {
	out, err := h.ordersUC.History(h.contractor(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// OrderDocument godoc
// @Summary      Documento PDF de una orden de compra
// @Tags         contractor
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /contractor/orders/{id}/document [get]
func (h *ContractorHandler) OrderDocument(c *fiber.Ctx) error {
	contractor := h.contractor(c)
	order, err := h.ordersUC.GetOrder(contractor.ID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.docGen.Generate(order, contractor)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="po-`+order.ID+`.pdf"`)
	return c.Send(doc)
}
