package service

import "petshop-orders/model"

type ServiceInterface interface {
	CreateProduct(name, category string, price float64, stock int) error
	GetProduct(name, category string) (model.Product, error)
	DeleteProduct(name, category string) error
	ListProducts() ([]model.Product, error)

	CreateCustomer(name, email string) error
	GetCustomer(email string) (model.Customer, error)
	DeleteCustomer(email string) error
	ListCustomers() ([]model.Customer, error)

	CreateOrder(orderCode, customerEmail string, lines []model.OrderLine) (float64, error)
	GetOrder(orderCode string) (model.Order, error)
	DeleteOrder(orderCode string) error
	ListOrders() ([]model.Order, error)
}
