package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/buildlink/marketplace-api/internal/application/dto"
	"github.com/buildlink/marketplace-api/internal/domain"
	"github.com/buildlink/marketplace-api/internal/domain/entity"
	"github.com/buildlink/marketplace-api/internal/domain/repository"
)

// Tipos de búsqueda de proveedores.
const (
	SearchBySupplier = "supplier"
	SearchByMaterial = "material"
)

// CatalogUseCase lecturas de catálogo (proveedores, ofertas) y gestión de
// proyectos del contratista.
type CatalogUseCase struct {
	supplierRepo repository.SupplierRepository
	projectRepo  repository.ProjectRepository
}

// NewCatalogUseCase construye el caso de uso de catálogo.
func NewCatalogUseCase(supplierRepo repository.SupplierRepository, projectRepo repository.ProjectRepository) *CatalogUseCase {
	return &CatalogUseCase{supplierRepo: supplierRepo, projectRepo: projectRepo}
}

// SearchSuppliers lista proveedores, opcionalmente filtrados por nombre o por
// material que ofrecen. Un searchType desconocido cae al filtro por nombre,
// igual que el listado histórico.
func (uc *CatalogUseCase) SearchSuppliers(query, searchType string) ([]dto.SupplierResponse, error) {
	var (
		suppliers []*entity.Supplier
		err       error
	)
	switch {
	case query == "":
		suppliers, err = uc.supplierRepo.List()
	case searchType == SearchByMaterial:
		suppliers, err = uc.supplierRepo.SearchByMaterial(query)
	default:
		suppliers, err = uc.supplierRepo.SearchByName(query)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, toSupplierResponse(s))
	}
	return out, nil
}

// SupplierDetail arma la página de compra: proveedor, sus ofertas y los
// proyectos abiertos del contratista para el formulario de orden.
func (uc *CatalogUseCase) SupplierDetail(supplierID, contractorID string) (*dto.SupplierDetailResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	offers, err := uc.supplierRepo.ListOffers(supplierID)
	if err != nil {
		return nil, err
	}
	projects, err := uc.projectRepo.ListOpenByContractor(contractorID)
	if err != nil {
		return nil, err
	}

	out := &dto.SupplierDetailResponse{Supplier: toSupplierResponse(supplier)}
	for _, o := range offers {
		out.Offers = append(out.Offers, dto.MaterialOfferResponse{
			MaterialID:     o.MaterialID,
			Name:           o.MaterialName,
			Category:       o.Category,
			Unit:           o.Unit,
			PricePerUnit:   o.PricePerUnit,
			AvailableStock: o.AvailableStock,
		})
	}
	for _, p := range projects {
		out.Projects = append(out.Projects, toProjectResponse(p))
	}
	return out, nil
}

// ListProjects devuelve los proyectos del contratista, más recientes primero.
func (uc *CatalogUseCase) ListProjects(contractorID string) ([]dto.ProjectResponse, error) {
	projects, err := uc.projectRepo.ListByContractor(contractorID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	return out, nil
}

// CreateProject da de alta un proyecto en estado Planning.
func (uc *CatalogUseCase) CreateProject(contractorID string, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	startDate := time.Now()
	if in.StartDate != "" {
		d, err := time.Parse("2006-01-02", in.StartDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		startDate = d
	}
	project := &entity.Project{
		ID:           uuid.New().String(),
		ContractorID: contractorID,
		Name:         in.Name,
		Location:     in.Location,
		StartDate:    startDate,
		Status:       entity.ProjectStatusPlanning,
		CreatedAt:    time.Now(),
	}
	if err := uc.projectRepo.Create(project); err != nil {
		return nil, err
	}
	resp := toProjectResponse(project)
	return &resp, nil
}

// GetProject devuelve un proyecto del contratista. Un proyecto ajeno es
// ErrForbidden.
func (uc *CatalogUseCase) GetProject(contractorID, projectID string) (*dto.ProjectResponse, error) {
	project, err := uc.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	if project.ContractorID != contractorID {
		return nil, domain.ErrForbidden
	}
	resp := toProjectResponse(project)
	return &resp, nil
}

func toSupplierResponse(s *entity.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		Email:       s.Email,
		PhoneNumber: s.PhoneNumber,
		Address:     s.Address,
	}
}

func toProjectResponse(p *entity.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:        p.ID,
		Name:      p.Name,
		Location:  p.Location,
		StartDate: p.StartDate,
		Status:    p.Status,
	}
}
