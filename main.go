package main

// POST /products – Create or overwrite a product.
// GET /products – List all products.
// GET|DELETE /products/{name}/{category} – Point read / delete.
// POST /customers, GET /customers, GET|DELETE /customers/{email} – same for customers.
// POST /orders – Create an order (atomic stock decrement + customer update).
// GET /orders, GET|DELETE /orders/{code} – List / point read / delete.

import (
	"flag"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"petshop-orders/catalog"
	"petshop-orders/handler"
	"petshop-orders/service"
	"petshop-orders/store"
)

func main() {
	addr := flag.String("addr", ":8082", "listen address")
	dbPath := flag.String("db", "petshopdb", "store directory")
	flag.Parse()

	// --- Store ---
	kv, err := store.Open(*dbPath)
	if err != nil {
		log.Fatalf("opening store: %v", err)
	}
	defer kv.Close()

	// --- Service ---
	cat := catalog.New(kv)
	svc := service.NewService(kv, cat)
	var serviceInterface service.ServiceInterface = svc

	// --- Handlers ---
	h := handler.NewHandler(serviceInterface)

	// --- Router ---
	r := mux.NewRouter()
	h.RegisterRoutes(r)

	// --- Server ---
	log.Printf("Server running on %s, store at %s", *addr, *dbPath)

	if err := http.ListenAndServe(*addr, r); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
