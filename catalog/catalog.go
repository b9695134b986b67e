package catalog

import (
	"fmt"

	"petshop-orders/model"
	"petshop-orders/store"
)

// Catalog provides typed access to the persisted record kinds. It carries no
// transaction semantics of its own; multi-record atomicity is the caller's
// responsibility via store.Batch.
type Catalog struct {
	kv store.KV
}

func New(kv store.KV) *Catalog {
	return &Catalog{kv: kv}
}

func (c *Catalog) GetProduct(name, category string) (model.Product, error) {
	var p model.Product
	err := c.get(model.ProductKey(name, category), &p)
	return p, err
}

func (c *Catalog) PutProduct(p model.Product) error {
	return c.put(model.ProductKey(p.Name, p.Category), p)
}

func (c *Catalog) DeleteProduct(name, category string) error {
	return c.kv.Delete(model.ProductKey(name, category))
}

func (c *Catalog) ListProducts() ([]model.Product, error) {
	out := []model.Product{}
	err := c.kv.Scan(model.ProductPrefix, func(key string, value []byte) error {
		var p model.Product
		if err := model.Decode(value, &p); err != nil {
			return fmt.Errorf("decode %q: %w", key, err)
		}
		out = append(out, p)
		return nil
	})
	return out, err
}

func (c *Catalog) GetCustomer(email string) (model.Customer, error) {
	var cu model.Customer
	err := c.get(model.CustomerKey(email), &cu)
	return cu, err
}

func (c *Catalog) PutCustomer(cu model.Customer) error {
	return c.put(model.CustomerKey(cu.Email), cu)
}

func (c *Catalog) DeleteCustomer(email string) error {
	return c.kv.Delete(model.CustomerKey(email))
}

func (c *Catalog) ListCustomers() ([]model.Customer, error) {
	out := []model.Customer{}
	err := c.kv.Scan(model.CustomerPrefix, func(key string, value []byte) error {
		var cu model.Customer
		if err := model.Decode(value, &cu); err != nil {
			return fmt.Errorf("decode %q: %w", key, err)
		}
		out = append(out, cu)
		return nil
	})
	return out, err
}

func (c *Catalog) GetOrder(orderCode string) (model.Order, error) {
	var o model.Order
	err := c.get(model.OrderKey(orderCode), &o)
	return o, err
}

func (c *Catalog) PutOrder(o model.Order) error {
	return c.put(model.OrderKey(o.OrderCode), o)
}

func (c *Catalog) DeleteOrder(orderCode string) error {
	return c.kv.Delete(model.OrderKey(orderCode))
}

func (c *Catalog) ListOrders() ([]model.Order, error) {
	out := []model.Order{}
	err := c.kv.Scan(model.OrderPrefix, func(key string, value []byte) error {
		var o model.Order
		if err := model.Decode(value, &o); err != nil {
			return fmt.Errorf("decode %q: %w", key, err)
		}
		out = append(out, o)
		return nil
	})
	return out, err
}

func (c *Catalog) get(key string, record any) error {
	data, err := c.kv.Get(key)
	if err != nil {
		return err
	}
	if err := model.Decode(data, record); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}
	return nil
}

func (c *Catalog) put(key string, record any) error {
	data, err := model.Encode(record)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return c.kv.Put(key, data)
}
