package model

// Key layout of the persisted records. The prefixes double as scan bounds
// when listing a record kind.
const (
	ProductPrefix  = "Product:"
	CustomerPrefix = "Customer:"
	OrderPrefix    = "Order:"
)

func ProductKey(name, category string) string {
	return ProductPrefix + name + ":" + category
}

func CustomerKey(email string) string {
	return CustomerPrefix + email
}

func OrderKey(orderCode string) string {
	return OrderPrefix + orderCode
}
