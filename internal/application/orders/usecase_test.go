package orders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildlink/marketplace-api/internal/application/dto"
	"github.com/buildlink/marketplace-api/internal/application/orders"
	"github.com/buildlink/marketplace-api/internal/domain"
	"github.com/buildlink/marketplace-api/internal/domain/entity"
	"github.com/buildlink/marketplace-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Unidad de trabajo en memoria con inyección de fallas
// ──────────────────────────────────────────────────────────────────────────────

// memStore es el estado "persistido": solo se escribe si la unidad de trabajo
// completa termina sin error, igual que un commit.
type memStore struct {
	headers []*entity.PurchaseOrder
	items   []*entity.POItem
}

// stagingOrderRepo acumula escrituras dentro de la unidad de trabajo y puede
// fallar en la línea n para simular un insert rechazado a mitad de camino.
type stagingOrderRepo struct {
	headers    []*entity.PurchaseOrder
	items      []*entity.POItem
	failOnItem int // 1-based; 0 = nunca falla
	failErr    error
}

func (r *stagingOrderRepo) CreateHeader(po *entity.PurchaseOrder) error {
	r.headers = append(r.headers, po)
	return nil
}

func (r *stagingOrderRepo) CreateItem(item *entity.POItem) error {
	if r.failOnItem > 0 && len(r.items)+1 == r.failOnItem {
		return r.failErr
	}
	r.items = append(r.items, item)
	return nil
}

type fakeTxRunner struct {
	store      *memStore
	failOnItem int
	failErr    error
	runErr     error // error antes de abrir la unidad de trabajo
	runs       int
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(repository.OrderRepository) error) error {
	f.runs++
	if f.runErr != nil {
		return f.runErr
	}
	staging := &stagingOrderRepo{failOnItem: f.failOnItem, failErr: f.failErr}
	if err := fn(staging); err != nil {
		// Rollback: nada de lo acumulado llega al store.
		return err
	}
	f.store.headers = append(f.store.headers, staging.headers...)
	f.store.items = append(f.store.items, staging.items...)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Repos de lectura en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memProjects struct{ rows map[string]*entity.Project }

func (m *memProjects) Create(p *entity.Project) error             { m.rows[p.ID] = p; return nil }
func (m *memProjects) GetByID(id string) (*entity.Project, error) { return m.rows[id], nil }
func (m *memProjects) ListByContractor(string) ([]*entity.Project, error) {
	return nil, nil
}
func (m *memProjects) ListOpenByContractor(string) ([]*entity.Project, error) {
	return nil, nil
}

type memSuppliers struct{ rows map[string]*entity.Supplier }

func (m *memSuppliers) GetByID(id string) (*entity.Supplier, error) { return m.rows[id], nil }
func (m *memSuppliers) List() ([]*entity.Supplier, error)           { return nil, nil }
func (m *memSuppliers) SearchByName(string) ([]*entity.Supplier, error) {
	return nil, nil
}
func (m *memSuppliers) SearchByMaterial(string) ([]*entity.Supplier, error) {
	return nil, nil
}
func (m *memSuppliers) ListOffers(string) ([]*entity.MaterialOffer, error) {
	return nil, nil
}
func (m *memSuppliers) CreateSupplier(*entity.Supplier) error      { return nil }
func (m *memSuppliers) CreateMaterial(*entity.Material) error      { return nil }
func (m *memSuppliers) CreateOffer(*entity.SupplierMaterial) error { return nil }

type memOrderQuery struct{ rows map[string]*entity.OrderSummary }

func (m *memOrderQuery) GetSummary(poID string) (*entity.OrderSummary, error) {
	if s, ok := m.rows[poID]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memOrderQuery) ListByContractor(contractorID string) ([]*entity.OrderSummary, error) {
	var out []*entity.OrderSummary
	for _, s := range m.rows {
		if s.ContractorID == contractorID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memOrderQuery) ListByProject(projectID string) ([]*entity.OrderSummary, error) {
	var out []*entity.OrderSummary
	for _, s := range m.rows {
		if s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	contractorAda  = "c-ada"
	contractorOtro = "c-otro"
	projectCasa    = "proj-casa"
	supplierAceros = "sup-aceros"
)

func newFixture() (*orders.CreateOrderUseCase, *fakeTxRunner, *memOrderQuery) {
	runner := &fakeTxRunner{store: &memStore{}}
	projects := &memProjects{rows: map[string]*entity.Project{
		projectCasa: {ID: projectCasa, ContractorID: contractorAda, Name: "Casa Lomas", Status: entity.ProjectStatusInProgress},
	}}
	suppliers := &memSuppliers{rows: map[string]*entity.Supplier{
		supplierAceros: {ID: supplierAceros, Name: "Aceros del Norte"},
	}}
	queries := &memOrderQuery{rows: map[string]*entity.OrderSummary{}}
	uc := orders.NewCreateOrderUseCase(runner, projects, suppliers, queries)
	return uc, runner, queries
}

const cartDosLineas = `[{"id":"m-cemento","qty":2,"price":50},{"id":"m-varilla","qty":3,"price":50}]`

// ──────────────────────────────────────────────────────────────────────────────
// CreateOrder — camino feliz
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_CabeceraYLineasJuntas(t *testing.T) {
	uc, runner, _ := newFixture()

	out, err := uc.CreateOrder(context.Background(), contractorAda, supplierAceros, dto.CreateOrderRequest{
		ProjectID: projectCasa,
		CartData:  cartDosLineas,
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.POID)

	require.Len(t, runner.store.headers, 1, "una sola cabecera")
	require.Len(t, runner.store.items, 2, "una línea por ítem del carrito")

	header := runner.store.headers[0]
	assert.Equal(t, out.POID, header.ID)
	assert.Equal(t, contractorAda, header.ContractorID)
	assert.Equal(t, projectCasa, header.ProjectID)
	assert.Equal(t, supplierAceros, header.SupplierID)
	assert.Equal(t, entity.POStatusPending, header.Status)
	for _, item := range runner.store.items {
		assert.Equal(t, header.ID, item.POID, "toda línea referencia la cabecera")
	}
	assert.Equal(t, "/contractor/projects/"+projectCasa, out.ProjectURL)
}

// El total persistido es Σ(qty × price) calculado en el servidor: 2×50 + 3×50.
func TestCreateOrder_TotalCalculadoEnServidor(t *testing.T) {
	uc, runner, _ := newFixture()

	out, err := uc.CreateOrder(context.Background(), contractorAda, supplierAceros, dto.CreateOrderRequest{
		ProjectID: projectCasa,
		CartData:  cartDosLineas,
	})
	require.NoError(t, err)

	want := decimal.NewFromInt(250)
	assert.True(t, out.Total.Equal(want), "total %s", out.Total)
	assert.True(t, runner.store.headers[0].TotalAmount.Equal(want))
}

func TestCreateOrder_ConFechaDeEntrega(t *testing.T) {
	uc, runner, _ := newFixture()

	_, err := uc.CreateOrder(context.Background(), contractorAda, supplierAceros, dto.CreateOrderRequest{
		ProjectID:    projectCasa,
		DeliveryDate: "2026-10-15",
		CartData:     cartDosLineas,
	})
	require.NoError(t, err)

	header := runner.store.headers[0]
	require.NotNil(t, header.DeliveryDate)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), *header.DeliveryDate)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateOrder — validación previa: nada se escribe
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_CarritoVacio_NoAbreTransaccion(t *testing.T) {
	uc, runner, _ := newFixture()

	_, err := uc.CreateOrder(context.Background(), contractorAda, supplierAceros, dto.CreateOrderRequest{
		ProjectID: projectCasa,
		CartData:  `[]`,
	})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Zero(t, runner.runs, "la validación falla antes de la unidad de trabajo")
}

func TestCreateOrder_CarritoMalformado_NoAbreTransaccion(t *testing.T) {
	uc, runner, _ := newFixture()

	_, err := uc.CreateOrder(context.Background(), contractorAda, supplierAceros, dto.CreateOrderRequest{
		ProjectID: projectCasa,
		CartData:  `{corrupto`,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCartFormat)
	assert.Zero(t, runner.runs)
}

func TestCreateOrder_SinProyecto(t *testing.T) {
	uc, runner, _ := newFixture()

	_, err := uc.CreateOrder(context.Background(), contractorAda, supplierAceros, dto.CreateOrderRequest{
		CartData: cartDosLineas,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, runner.runs)
}

func TestCreateOrder_ProyectoInexistente(t *testing.T) {
	uc, runner, _ := newFixture()

	_, err := uc.CreateOrder(context.Background(), contractorAda, supplierAceros, dto.CreateOrderRequest{
		ProjectID: "proj-fantasma",
		CartData:  cartDosLineas,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, runner.runs)
}

// Un proyecto de otro contratista no es un destino válido.
func TestCreateOrder_ProyectoAjeno(t *testing.T) {
	uc, runner, _ := newFixture()

	_, err := uc.CreateOrder(context.Background(), contractorOtro, supplierAceros, dto.CreateOrderRequest{
		ProjectID: projectCasa,
		CartData:  cartDosLineas,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Zero(t, runner.runs)
}

func TestCreateOrder_ProveedorInexistente(t *testing.T) {
	uc, runner, _ := newFixture()

	_, err := uc.CreateOrder(context.Background(), contractorAda, "sup-fantasma", dto.CreateOrderRequest{
		ProjectID: projectCasa,
		CartData:  cartDosLineas,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, runner.runs)
}

func TestCreateOrder_FechaDeEntregaInvalida(t *testing.T) {
	uc, runner, _ := newFixture()

	_, err := uc.CreateOrder(context.Background(), contractorAda, supplierAceros, dto.CreateOrderRequest{
		ProjectID:    projectCasa,
		DeliveryDate: "15/10/2026",
		CartData:     cartDosLineas,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, runner.runs)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateOrder — atomicidad ante fallas a mitad de camino
// ──────────────────────────────────────────────────────────────────────────────

// Si la segunda línea falla, no queda ni la cabecera ni la primera línea.
func TestCreateOrder_FallaEnLinea_RevierteTodo(t *testing.T) {
	uc, runner, _ := newFixture()
	runner.failOnItem = 2
	runner.failErr = errors.New("insert rechazado")

	_, err := uc.CreateOrder(context.Background(), contractorAda, supplierAceros, dto.CreateOrderRequest{
		ProjectID: projectCasa,
		CartData:  cartDosLineas,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransactionFailure)

	assert.Empty(t, runner.store.headers, "ninguna cabecera parcial observable")
	assert.Empty(t, runner.store.items, "ninguna línea parcial observable")
}

// La indisponibilidad del almacenamiento se reporta como tal, no como una
// transacción fallida.
func TestCreateOrder_AlmacenamientoCaido_SeDistingue(t *testing.T) {
	uc, runner, _ := newFixture()
	runner.runErr = domain.ErrStorageUnavailable

	_, err := uc.CreateOrder(context.Background(), contractorAda, supplierAceros, dto.CreateOrderRequest{
		ProjectID: projectCasa,
		CartData:  cartDosLineas,
	})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.NotErrorIs(t, err, domain.ErrTransactionFailure)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas: detalle, historial agrupado y órdenes por proyecto
// ──────────────────────────────────────────────────────────────────────────────

func seedSummary(q *memOrderQuery, id, contractorID, projectID, supplierName string, total int64) {
	q.rows[id] = &entity.OrderSummary{
		PurchaseOrder: entity.PurchaseOrder{
			ID:           id,
			ContractorID: contractorID,
			ProjectID:    projectID,
			SupplierID:   "sup-x",
			TotalAmount:  decimal.NewFromInt(total),
			Status:       entity.POStatusPending,
			OrderDate:    time.Now(),
		},
		ProjectName:  "Casa Lomas",
		SupplierName: supplierName,
	}
}

func TestGetOrder_AjenaEsForbidden(t *testing.T) {
	uc, _, queries := newFixture()
	seedSummary(queries, "po-1", contractorAda, projectCasa, "Aceros del Norte", 250)

	_, err := uc.GetOrder(contractorOtro, "po-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.GetOrder(contractorAda, "po-1")
	require.NoError(t, err)
	assert.Equal(t, "po-1", out.ID)
}

func TestGetOrder_Inexistente(t *testing.T) {
	uc, _, _ := newFixture()
	_, err := uc.GetOrder(contractorAda, "po-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El historial se agrupa por proveedor y acumula el total gastado en cada uno.
func TestHistory_AgrupaPorProveedor(t *testing.T) {
	uc, _, queries := newFixture()
	seedSummary(queries, "po-1", contractorAda, projectCasa, "Aceros del Norte", 100)
	seedSummary(queries, "po-2", contractorAda, projectCasa, "Aceros del Norte", 150)
	seedSummary(queries, "po-3", contractorAda, projectCasa, "Cementos Unidos", 80)
	seedSummary(queries, "po-4", contractorOtro, "proj-otro", "Cementos Unidos", 999)

	groups, err := uc.History(contractorAda)
	require.NoError(t, err)
	require.Len(t, groups, 2, "un grupo por proveedor")

	byName := map[string]int{}
	for i, g := range groups {
		byName[g.SupplierName] = i
	}
	aceros := groups[byName["Aceros del Norte"]]
	assert.Len(t, aceros.Orders, 2)
	assert.True(t, aceros.TotalSpent.Equal(decimal.NewFromInt(250)), "total %s", aceros.TotalSpent)

	cementos := groups[byName["Cementos Unidos"]]
	assert.Len(t, cementos.Orders, 1)
	assert.True(t, cementos.TotalSpent.Equal(decimal.NewFromInt(80)),
		"las órdenes de otros contratistas no cuentan")
}

func TestListByProject_SoloLasDelProyecto(t *testing.T) {
	uc, _, queries := newFixture()
	seedSummary(queries, "po-1", contractorAda, projectCasa, "Aceros del Norte", 100)
	seedSummary(queries, "po-2", contractorAda, "proj-otro", "Aceros del Norte", 150)

	out, err := uc.ListByProject(projectCasa)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "po-1", out[0].ID)
}
