package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/buildlink/marketplace-api/internal/application/dto"
	"github.com/buildlink/marketplace-api/internal/domain"
	"github.com/buildlink/marketplace-api/internal/domain/entity"
	"github.com/buildlink/marketplace-api/internal/domain/repository"
)

// CreateOrderUseCase crea una orden de compra: cabecera + líneas en una sola
// transacción, o nada.
type CreateOrderUseCase struct {
	txRunner     TxRunner
	projectRepo  repository.ProjectRepository
	supplierRepo repository.SupplierRepository
	orderQuery   repository.OrderQueryRepository
}

// NewCreateOrderUseCase construye el caso de uso.
func NewCreateOrderUseCase(
	txRunner TxRunner,
	projectRepo repository.ProjectRepository,
	supplierRepo repository.SupplierRepository,
	orderQuery repository.OrderQueryRepository,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		txRunner:     txRunner,
		projectRepo:  projectRepo,
		supplierRepo: supplierRepo,
		orderQuery:   orderQuery,
	}
}

// CreateOrder valida el carrito y el destino, calcula el total en el servidor
// y persiste cabecera + líneas en una unidad de trabajo. Si cualquier insert
// falla se revierte todo: ninguna orden parcial es observable jamás. El stock
// del proveedor es informativo aquí: no se descuenta.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, contractorID, supplierID string, in dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	// Validación del carrito antes de cualquier escritura.
	items, err := ParseCart(in.CartData)
	if err != nil {
		return nil, err
	}
	if in.ProjectID == "" {
		return nil, domain.ErrInvalidInput
	}

	// Destinos fuera de la tx, solo lectura.
	project, err := uc.projectRepo.GetByID(in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	if project.ContractorID != contractorID {
		return nil, domain.ErrForbidden
	}
	supplier, err := uc.supplierRepo.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	var deliveryDate *time.Time
	if in.DeliveryDate != "" {
		d, err := time.Parse("2006-01-02", in.DeliveryDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		deliveryDate = &d
	}

	total := CartTotal(items)
	po := &entity.PurchaseOrder{
		ID:           uuid.New().String(),
		ContractorID: contractorID,
		ProjectID:    in.ProjectID,
		SupplierID:   supplierID,
		TotalAmount:  total,
		Status:       entity.POStatusPending,
		OrderDate:    time.Now(),
		DeliveryDate: deliveryDate,
	}

	err = uc.txRunner.Run(ctx, func(orderRepo repository.OrderRepository) error {
		if err := orderRepo.CreateHeader(po); err != nil {
			return err
		}
		for _, item := range items {
			if err := orderRepo.CreateItem(&entity.POItem{
				ID:         uuid.New().String(),
				POID:       po.ID,
				MaterialID: item.MaterialID,
				Quantity:   item.Qty,
				UnitPrice:  item.Price,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrStorageUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTransactionFailure, err)
	}

	return &dto.CreateOrderResponse{
		POID:       po.ID,
		Total:      total,
		ProjectURL: "/contractor/projects/" + po.ProjectID,
	}, nil
}

// GetOrder devuelve una orden del contratista con sus líneas. Una orden ajena
// es ErrForbidden.
func (uc *CreateOrderUseCase) GetOrder(contractorID, poID string) (*dto.OrderResponse, error) {
	summary, err := uc.orderQuery.GetSummary(poID)
	if err != nil {
		return nil, err
	}
	if summary.ContractorID != contractorID {
		return nil, domain.ErrForbidden
	}
	out := toOrderResponse(summary)
	return &out, nil
}

// History devuelve el historial del contratista agrupado por proveedor con el
// total gastado en cada uno.
func (uc *CreateOrderUseCase) History(contractorID string) ([]dto.SupplierHistoryGroup, error) {
	summaries, err := uc.orderQuery.ListByContractor(contractorID)
	if err != nil {
		return nil, err
	}
	var groups []dto.SupplierHistoryGroup
	index := map[string]int{}
	for _, s := range summaries {
		i, ok := index[s.SupplierName]
		if !ok {
			i = len(groups)
			index[s.SupplierName] = i
			groups = append(groups, dto.SupplierHistoryGroup{
				SupplierName: s.SupplierName,
				TotalSpent:   decimal.Zero,
			})
		}
		groups[i].TotalSpent = groups[i].TotalSpent.Add(s.TotalAmount)
		groups[i].Orders = append(groups[i].Orders, toOrderResponse(s))
	}
	return groups, nil
}

// ListByProject devuelve las órdenes de un proyecto con sus líneas.
func (uc *CreateOrderUseCase) ListByProject(projectID string) ([]dto.OrderResponse, error) {
	summaries, err := uc.orderQuery.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, toOrderResponse(s))
	}
	return out, nil
}

func toOrderResponse(s *entity.OrderSummary) dto.OrderResponse {
	out := dto.OrderResponse{
		ID:           s.ID,
		ProjectID:    s.ProjectID,
		ProjectName:  s.ProjectName,
		SupplierID:   s.SupplierID,
		SupplierName: s.SupplierName,
		TotalAmount:  s.TotalAmount,
		Status:       s.Status,
		OrderDate:    s.OrderDate,
		DeliveryDate: s.DeliveryDate,
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, dto.OrderItemResponse{
			MaterialID:   it.MaterialID,
			MaterialName: it.MaterialName,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			Subtotal:     it.Subtotal(),
		})
	}
	return out
}
