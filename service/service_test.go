package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petshop-orders/catalog"
	"petshop-orders/model"
	"petshop-orders/store"
)

// newTestService seeds the canonical fixture: Alice with no purchase history
// and ten Widgets at 2.50 apiece.
func newTestService(t *testing.T) (*Service, store.KV) {
	t.Helper()
	kv, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	svc := NewService(kv, catalog.New(kv))
	require.NoError(t, svc.CreateCustomer("Alice", "alice@x.com"))
	require.NoError(t, svc.CreateProduct("Widget", "Tools", 2.50, 10))
	return svc, kv
}

// snapshot captures every record in the store for before/after comparison.
func snapshot(t *testing.T, kv store.KV) map[string]string {
	t.Helper()
	snap := map[string]string{}
	err := kv.Scan("", func(key string, value []byte) error {
		snap[key] = string(value)
		return nil
	})
	require.NoError(t, err)
	return snap
}

func TestCreateOrderSuccess(t *testing.T) {
	svc, _ := newTestService(t)

	total, err := svc.CreateOrder("O1", "alice@x.com", []model.OrderLine{
		{Name: "Widget", Category: "Tools", Quantity: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 7.50, total)

	p, err := svc.GetProduct("Widget", "Tools")
	require.NoError(t, err)
	assert.Equal(t, 7, p.Stock)
	assert.Equal(t, 2.50, p.Price)

	o, err := svc.GetOrder("O1")
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", o.CustomerEmail)
	assert.Equal(t, 7.50, o.Total)
	require.Len(t, o.Products, 1)
	assert.Equal(t, model.OrderLine{Name: "Widget", Category: "Tools", Quantity: 3}, o.Products[0])

	c, err := svc.GetCustomer("alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, 7.50, c.TotalSpent)
	assert.Equal(t, []string{"O1"}, c.Orders)
}

func TestCreateOrderMultipleLines(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.CreateProduct("Leash", "Accessories", 9.99, 5))

	total, err := svc.CreateOrder("O1", "alice@x.com", []model.OrderLine{
		{Name: "Widget", Category: "Tools", Quantity: 2},
		{Name: "Leash", Category: "Accessories", Quantity: 3},
	})
	require.NoError(t, err)
	// 2*2.50 + 3*9.99, accumulated without float drift
	assert.Equal(t, 34.97, total)

	leash, err := svc.GetProduct("Leash", "Accessories")
	require.NoError(t, err)
	assert.Equal(t, 2, leash.Stock)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	svc, kv := newTestService(t)
	before := snapshot(t, kv)

	_, err := svc.CreateOrder("O2", "alice@x.com", []model.OrderLine{
		{Name: "Widget", Category: "Tools", Quantity: 20},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.ErrorContains(t, err, "available 10, requested 20")

	assert.Equal(t, before, snapshot(t, kv))
	_, err = svc.GetOrder("O2")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCreateOrderCustomerNotFound(t *testing.T) {
	svc, kv := newTestService(t)
	before := snapshot(t, kv)

	_, err := svc.CreateOrder("O3", "bob@nowhere", nil)
	require.ErrorIs(t, err, ErrCustomerNotFound)
	assert.ErrorContains(t, err, "bob@nowhere")

	assert.Equal(t, before, snapshot(t, kv))
}

func TestCreateOrderProductNotFoundNoPartialWrites(t *testing.T) {
	svc, kv := newTestService(t)
	before := snapshot(t, kv)

	// First line is valid; the failing second line must still leave the
	// first product untouched.
	_, err := svc.CreateOrder("O4", "alice@x.com", []model.OrderLine{
		{Name: "Widget", Category: "Tools", Quantity: 1},
		{Name: "Ghost", Category: "Tools", Quantity: 1},
	})
	require.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorContains(t, err, "Ghost")

	assert.Equal(t, before, snapshot(t, kv))
}

func TestCreateOrderInvalidQuantity(t *testing.T) {
	svc, kv := newTestService(t)
	before := snapshot(t, kv)

	for _, qty := range []int{0, -2} {
		_, err := svc.CreateOrder("O5", "alice@x.com", []model.OrderLine{
			{Name: "Widget", Category: "Tools", Quantity: qty},
		})
		require.ErrorIs(t, err, ErrInvalidInput)
	}
	assert.Equal(t, before, snapshot(t, kv))
}

func TestCreateOrderEmptyLines(t *testing.T) {
	svc, _ := newTestService(t)

	total, err := svc.CreateOrder("O6", "alice@x.com", nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)

	o, err := svc.GetOrder("O6")
	require.NoError(t, err)
	assert.Empty(t, o.Products)
	assert.Equal(t, 0.0, o.Total)

	c, err := svc.GetCustomer("alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"O6"}, c.Orders)
	assert.Equal(t, 0.0, c.TotalSpent)
}

func TestCreateOrderRequiresCode(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateOrder("", "alice@x.com", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSequentialOrdersAccumulate(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateOrder("O1", "alice@x.com", []model.OrderLine{
		{Name: "Widget", Category: "Tools", Quantity: 3},
	})
	require.NoError(t, err)

	// Stock is now 7; the second order sees the decremented value.
	_, err = svc.CreateOrder("O2", "alice@x.com", []model.OrderLine{
		{Name: "Widget", Category: "Tools", Quantity: 20},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.ErrorContains(t, err, "available 7, requested 20")

	total, err := svc.CreateOrder("O2", "alice@x.com", []model.OrderLine{
		{Name: "Widget", Category: "Tools", Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 5.0, total)

	c, err := svc.GetCustomer("alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, 12.50, c.TotalSpent)
	assert.Equal(t, []string{"O1", "O2"}, c.Orders)

	p, err := svc.GetProduct("Widget", "Tools")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := newTestService(t)

	assert.ErrorIs(t, svc.CreateProduct("", "Tools", 1, 1), ErrInvalidInput)
	assert.ErrorIs(t, svc.CreateProduct("Widget", "", 1, 1), ErrInvalidInput)
	assert.ErrorIs(t, svc.CreateProduct("Widget", "Tools", -1, 1), ErrInvalidInput)
	assert.ErrorIs(t, svc.CreateProduct("Widget", "Tools", 1, -1), ErrInvalidInput)
}

func TestCreateProductOverwrites(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.CreateProduct("Widget", "Tools", 4.0, 2))
	p, err := svc.GetProduct("Widget", "Tools")
	require.NoError(t, err)
	assert.Equal(t, 4.0, p.Price)
	assert.Equal(t, 2, p.Stock)
}

func TestCreateCustomerValidationAndDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	assert.ErrorIs(t, svc.CreateCustomer("", "x@x.com"), ErrInvalidInput)
	assert.ErrorIs(t, svc.CreateCustomer("X", ""), ErrInvalidInput)

	require.NoError(t, svc.CreateCustomer("Bob", "bob@x.com"))
	c, err := svc.GetCustomer("bob@x.com")
	require.NoError(t, err)
	assert.Equal(t, 0.0, c.TotalSpent)
	assert.Equal(t, []string{}, c.Orders)
}

func TestLookupAndDeleteTaxonomy(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetProduct("Ghost", "Tools")
	assert.ErrorIs(t, err, ErrProductNotFound)
	_, err = svc.GetCustomer("ghost@x.com")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
	_, err = svc.GetOrder("O999")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	assert.ErrorIs(t, svc.DeleteProduct("Ghost", "Tools"), ErrProductNotFound)
	assert.ErrorIs(t, svc.DeleteCustomer("ghost@x.com"), ErrCustomerNotFound)
	assert.ErrorIs(t, svc.DeleteOrder("O999"), ErrOrderNotFound)

	require.NoError(t, svc.DeleteProduct("Widget", "Tools"))
	_, err = svc.GetProduct("Widget", "Tools")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

// Deleting a product referenced by an existing order leaves the order's
// reference dangling; that is accepted behavior.
func TestDeleteProductLeavesOrdersIntact(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateOrder("O1", "alice@x.com", []model.OrderLine{
		{Name: "Widget", Category: "Tools", Quantity: 1},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct("Widget", "Tools"))

	o, err := svc.GetOrder("O1")
	require.NoError(t, err)
	assert.Equal(t, "Widget", o.Products[0].Name)
}
