package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"petshop-orders/catalog"
	"petshop-orders/model"
	"petshop-orders/store"
)

// Service implements ServiceInterface on top of the catalog and the raw
// record store. CreateOrder is the only multi-record operation; everything
// else is validation plus a single catalog call.
type Service struct {
	kv      store.KV
	catalog *catalog.Catalog

	// mu serializes every mutation. CreateOrder reads records it later
	// overwrites, so a concurrent writer between its validate and commit
	// phases would invalidate the checks.
	mu sync.Mutex
}

func NewService(kv store.KV, c *catalog.Catalog) *Service {
	return &Service{kv: kv, catalog: c}
}

// --- products ---

func (s *Service) CreateProduct(name, category string, price float64, stock int) error {
	if name == "" || category == "" {
		return fmt.Errorf("%w: product name and category are required", ErrInvalidInput)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must be >= 0", ErrInvalidInput)
	}
	if stock < 0 {
		return fmt.Errorf("%w: stock must be >= 0", ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.PutProduct(model.Product{Name: name, Category: category, Price: price, Stock: stock})
}

func (s *Service) GetProduct(name, category string) (model.Product, error) {
	p, err := s.catalog.GetProduct(name, category)
	if errors.Is(err, store.ErrNotFound) {
		return model.Product{}, fmt.Errorf("%w: %q in category %q", ErrProductNotFound, name, category)
	}
	return p, err
}

func (s *Service) DeleteProduct(name, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.catalog.DeleteProduct(name, category)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %q in category %q", ErrProductNotFound, name, category)
	}
	return err
}

func (s *Service) ListProducts() ([]model.Product, error) {
	return s.catalog.ListProducts()
}

// --- customers ---

func (s *Service) CreateCustomer(name, email string) error {
	if name == "" || email == "" {
		return fmt.Errorf("%w: customer name and email are required", ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// New customers start with no purchase history.
	return s.catalog.PutCustomer(model.Customer{Name: name, Email: email, Orders: []string{}})
}

func (s *Service) GetCustomer(email string) (model.Customer, error) {
	c, err := s.catalog.GetCustomer(email)
	if errors.Is(err, store.ErrNotFound) {
		return model.Customer{}, fmt.Errorf("%w: %q", ErrCustomerNotFound, email)
	}
	return c, err
}

func (s *Service) DeleteCustomer(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.catalog.DeleteCustomer(email)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %q", ErrCustomerNotFound, email)
	}
	return err
}

func (s *Service) ListCustomers() ([]model.Customer, error) {
	return s.catalog.ListCustomers()
}

// --- orders ---

// CreateOrder validates the request, computes the total and commits the
// order, the stock decrements and the customer update in one atomic batch.
// The first failed check aborts the whole operation before anything is
// written. Returns the computed total on success.
func (s *Service) CreateOrder(orderCode, customerEmail string, lines []model.OrderLine) (float64, error) {
	if orderCode == "" {
		return 0, fmt.Errorf("%w: order code is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	customer, err := s.catalog.GetCustomer(customerEmail)
	if errors.Is(err, store.ErrNotFound) {
		return 0, fmt.Errorf("%w: %q", ErrCustomerNotFound, customerEmail)
	}
	if err != nil {
		return 0, err
	}

	// Single pass over the lines: validation, price accumulation and
	// stock staging are interleaved so each product is read exactly once.
	batch := &store.Batch{}
	total := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			return 0, fmt.Errorf("%w: quantity for %q must be > 0, got %d",
				ErrInvalidInput, line.Name, line.Quantity)
		}
		product, err := s.catalog.GetProduct(line.Name, line.Category)
		if errors.Is(err, store.ErrNotFound) {
			return 0, fmt.Errorf("%w: %q in category %q", ErrProductNotFound, line.Name, line.Category)
		}
		if err != nil {
			return 0, err
		}
		if product.Stock < line.Quantity {
			return 0, fmt.Errorf("%w for %q: available %d, requested %d",
				ErrInsufficientStock, line.Name, product.Stock, line.Quantity)
		}

		product.Stock -= line.Quantity
		data, err := model.Encode(product)
		if err != nil {
			return 0, fmt.Errorf("encode product %q: %w", product.Name, err)
		}
		batch.Put(model.ProductKey(product.Name, product.Category), data)

		lineCost := decimal.NewFromFloat(product.Price).Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineCost)
	}

	totalPrice, _ := total.Float64()

	order := model.Order{
		OrderCode:     orderCode,
		CustomerEmail: customerEmail,
		Products:      lines,
		Total:         totalPrice,
	}
	if order.Products == nil {
		order.Products = []model.OrderLine{}
	}
	orderData, err := model.Encode(order)
	if err != nil {
		return 0, fmt.Errorf("encode order %q: %w", orderCode, err)
	}
	batch.Put(model.OrderKey(orderCode), orderData)

	// The customer document read during validation is the one mutated and
	// staged, so no second read can fail after validation has passed.
	customer.Orders = append(customer.Orders, orderCode)
	customer.TotalSpent, _ = decimal.NewFromFloat(customer.TotalSpent).Add(total).Float64()
	customerData, err := model.Encode(customer)
	if err != nil {
		return 0, fmt.Errorf("encode customer %q: %w", customer.Email, err)
	}
	batch.Put(model.CustomerKey(customer.Email), customerData)

	if err := s.kv.WriteBatch(batch); err != nil {
		return 0, fmt.Errorf("commit order %q: %w", orderCode, err)
	}
	return totalPrice, nil
}

func (s *Service) GetOrder(orderCode string) (model.Order, error) {
	o, err := s.catalog.GetOrder(orderCode)
	if errors.Is(err, store.ErrNotFound) {
		return model.Order{}, fmt.Errorf("%w: %q", ErrOrderNotFound, orderCode)
	}
	return o, err
}

func (s *Service) DeleteOrder(orderCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.catalog.DeleteOrder(orderCode)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %q", ErrOrderNotFound, orderCode)
	}
	return err
}

func (s *Service) ListOrders() ([]model.Order, error) {
	return s.catalog.ListOrders()
}
