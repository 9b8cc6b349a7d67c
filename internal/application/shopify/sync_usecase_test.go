package shopify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfarias/comercial-api/internal/application/shopify"
	"github.com/gfarias/comercial-api/internal/domain"
	"github.com/gfarias/comercial-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mocks del cliente Shopify y fakes de repos
// ──────────────────────────────────────────────────────────────────────────────

type mockShopifyClient struct {
	collections []shopify.Collection
	remoteIDs   map[string]string // código de producto → ID remoto
	failOnCode  string            // código que hace fallar el push
	pushed      []string
}

func (m *mockShopifyClient) ListCustomCollections(_ context.Context) ([]shopify.Collection, error) {
	return m.collections, nil
}

func (m *mockShopifyClient) PushProduct(_ context.Context, p *entity.Product, _ string) (string, error) {
	if p.Code == m.failOnCode {
		return "", errors.New("422 Unprocessable Entity")
	}
	m.pushed = append(m.pushed, p.Code)
	if id, ok := m.remoteIDs[p.Code]; ok {
		return id, nil
	}
	return "gid-" + p.Code, nil
}

type fakeProductRepo struct {
	byID    map[string]*entity.Product
	all     []*entity.Product
	updated []*entity.Product
}

func (f *fakeProductRepo) Create(*entity.Product) error { return nil }

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.byID[id], nil
}

func (f *fakeProductRepo) GetByCode(string) (*entity.Product, error) { return nil, nil }

func (f *fakeProductRepo) Update(p *entity.Product) error {
	f.updated = append(f.updated, p)
	return nil
}

func (f *fakeProductRepo) UpdatePrices(string, decimal.Decimal, decimal.Decimal, decimal.Decimal) error {
	return nil
}

func (f *fakeProductRepo) AdjustStock(string, int) error            { return nil }
func (f *fakeProductRepo) List(int, int) ([]*entity.Product, error) { return f.all, nil }
func (f *fakeProductRepo) ListAll() ([]*entity.Product, error)      { return f.all, nil }
func (f *fakeProductRepo) Delete(string) error                      { return nil }

type fakeCategoryRepo struct {
	byID map[string]*entity.Category
}

func (f *fakeCategoryRepo) Create(*entity.Category) error { return nil }

func (f *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	return f.byID[id], nil
}

func (f *fakeCategoryRepo) Update(*entity.Category) error     { return nil }
func (f *fakeCategoryRepo) List() ([]*entity.Category, error) { return nil, nil }
func (f *fakeCategoryRepo) Delete(string) error               { return nil }

func catalogFixture() ([]*entity.Product, *fakeProductRepo, *fakeCategoryRepo) {
	p1 := &entity.Product{ID: "p1", Code: "A-1", Name: "Destornillador", CategoryID: "cat-1"}
	p2 := &entity.Product{ID: "p2", Code: "A-2", Name: "Martillo", CategoryID: "cat-1"}
	p3 := &entity.Product{ID: "p3", Code: "B-1", Name: "Pintura", CategoryID: "cat-2"}
	all := []*entity.Product{p1, p2, p3}
	productRepo := &fakeProductRepo{
		byID: map[string]*entity.Product{"p1": p1, "p2": p2, "p3": p3},
		all:  all,
	}
	categoryRepo := &fakeCategoryRepo{byID: map[string]*entity.Category{
		"cat-1": {ID: "cat-1", Name: "Herramientas", ShopifyCollectionID: "555"},
		"cat-2": {ID: "cat-2", Name: "Pinturería"},
	}}
	return all, productRepo, categoryRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SyncUseCase
// ──────────────────────────────────────────────────────────────────────────────

// Sin cliente configurado todas las operaciones cortan con ErrConflict.
func TestSync_SinCliente_Conflict(t *testing.T) {
	_, productRepo, categoryRepo := catalogFixture()
	uc := shopify.NewSyncUseCase(productRepo, categoryRepo, nil)

	assert.False(t, uc.Enabled())

	_, err := uc.ListCollections(context.Background())
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = uc.PushProduct(context.Background(), "p1")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.PushCategory(context.Background(), "cat-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// PushProduct publica el artículo y persiste el ID remoto asignado.
func TestSync_PushProduct_PersisteIDRemoto(t *testing.T) {
	_, productRepo, categoryRepo := catalogFixture()
	client := &mockShopifyClient{}
	uc := shopify.NewSyncUseCase(productRepo, categoryRepo, client)

	require.NoError(t, uc.PushProduct(context.Background(), "p1"))

	assert.Equal(t, []string{"A-1"}, client.pushed)
	require.Len(t, productRepo.updated, 1)
	assert.Equal(t, "gid-A-1", productRepo.updated[0].ShopifyProductID)
}

// Si el ID remoto no cambió (re-publicación) no se toca la base.
func TestSync_PushProduct_IDSinCambio_NoActualiza(t *testing.T) {
	_, productRepo, categoryRepo := catalogFixture()
	productRepo.byID["p1"].ShopifyProductID = "gid-A-1"
	client := &mockShopifyClient{remoteIDs: map[string]string{"A-1": "gid-A-1"}}
	uc := shopify.NewSyncUseCase(productRepo, categoryRepo, client)

	require.NoError(t, uc.PushProduct(context.Background(), "p1"))
	assert.Empty(t, productRepo.updated, "re-publicar con el mismo ID no debe escribir en la base")
}

func TestSync_PushProduct_NoExiste_NotFound(t *testing.T) {
	_, productRepo, categoryRepo := catalogFixture()
	uc := shopify.NewSyncUseCase(productRepo, categoryRepo, &mockShopifyClient{})

	err := uc.PushProduct(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// PushCategory publica solo los artículos de la categoría, en orden de catálogo.
func TestSync_PushCategory_FiltraPorCategoria(t *testing.T) {
	_, productRepo, categoryRepo := catalogFixture()
	client := &mockShopifyClient{}
	uc := shopify.NewSyncUseCase(productRepo, categoryRepo, client)

	pushed, err := uc.PushCategory(context.Background(), "cat-1")
	require.NoError(t, err)

	assert.Equal(t, 2, pushed)
	assert.Equal(t, []string{"A-1", "A-2"}, client.pushed,
		"solo los artículos de la categoría, preservando el orden del catálogo")
}

// Ante la primera falla se corta e informa cuántos alcanzaron a publicarse.
func TestSync_PushCategory_CortaEnPrimerError(t *testing.T) {
	_, productRepo, categoryRepo := catalogFixture()
	client := &mockShopifyClient{failOnCode: "A-2"}
	uc := shopify.NewSyncUseCase(productRepo, categoryRepo, client)

	pushed, err := uc.PushCategory(context.Background(), "cat-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "A-2")
	assert.Equal(t, 1, pushed, "debe informar los publicados antes de la falla")
}

func TestSync_PushCategory_CategoriaNoExiste_NotFound(t *testing.T) {
	_, productRepo, categoryRepo := catalogFixture()
	uc := shopify.NewSyncUseCase(productRepo, categoryRepo, &mockShopifyClient{})

	_, err := uc.PushCategory(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
