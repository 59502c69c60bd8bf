package test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hegerb/rohlik-admin/internal/domain"
)

// fakeShop is an in-memory stand-in for the remote commerce API. It keeps
// just enough behavior for end to end flows: token auth, product CRUD with
// optimistic version checks, and the one-way order transitions.
type fakeShop struct {
	mu       sync.Mutex
	tokens   map[string]domain.User
	users    map[string]string
	products map[int64]*domain.Product
	orders   map[int64]*domain.Order
	nextID   int64
}

func newFakeShop() *fakeShop {
	return &fakeShop{
		tokens:   make(map[string]domain.User),
		users:    make(map[string]string),
		products: make(map[int64]*domain.Product),
		orders:   make(map[int64]*domain.Order),
		nextID:   1,
	}
}

func (s *fakeShop) addUser(username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = password
}

// revokeTokens invalidates every issued token, simulating a server-side
// session expiry.
func (s *fakeShop) revokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]domain.User)
}

func (s *fakeShop) addOrder(status domain.OrderStatus, items ...domain.OrderItem) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.orders[id] = &domain.Order{
		ID:        id,
		CreatedAt: time.Now(),
		Status:    status,
		Items:     items,
	}
	return id
}

func (s *fakeShop) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("GET /auth/me", s.authed(s.handleMe))
	mux.HandleFunc("GET /products", s.authed(s.handleProducts))
	mux.HandleFunc("POST /products", s.authed(s.handleProductCreate))
	mux.HandleFunc("GET /products/{id}", s.authed(s.handleProductGet))
	mux.HandleFunc("PUT /products/{id}", s.authed(s.handleProductUpdate))
	mux.HandleFunc("DELETE /products/{id}", s.authed(s.handleProductDelete))
	mux.HandleFunc("GET /orders", s.authed(s.handleOrders))
	mux.HandleFunc("POST /orders/{id}/complete", s.authed(s.handleOrderComplete))
	mux.HandleFunc("POST /orders/{id}/cancel", s.authed(s.handleOrderCancel))
	return mux
}

func (s *fakeShop) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		_, ok := s.tokens[bearerToken(r)]
		s.mu.Unlock()
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r)
	}
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if len(auth) <= len(prefix) {
		return ""
	}
	return auth[len(prefix):]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func (s *fakeShop) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if password, ok := s.users[creds.Username]; !ok || password != creds.Password {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token := uuid.New().String()
	s.tokens[token] = domain.User{ID: 1, Username: creds.Username}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *fakeShop) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[creds.Username]; exists {
		writeError(w, http.StatusConflict, "Uživatel již existuje")
		return
	}

	s.users[creds.Username] = creds.Password
	token := uuid.New().String()
	s.tokens[token] = domain.User{ID: int64(len(s.users)), Username: creds.Username}
	writeJSON(w, http.StatusCreated, map[string]string{"token": token})
}

func (s *fakeShop) handleMe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	user := s.tokens[bearerToken(r)]
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, user)
}

func (s *fakeShop) handleProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		list = append(list, *p)
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *fakeShop) handleProductCreate(w http.ResponseWriter, r *http.Request) {
	var input domain.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	product := &domain.Product{
		ID:            id,
		Name:          input.Name,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		Version:       0,
	}
	s.products[id] = product
	writeJSON(w, http.StatusCreated, product)
}

func (s *fakeShop) product(r *http.Request) (*domain.Product, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return nil, err
	}
	p, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d not found", id)
	}
	return p, nil
}

func (s *fakeShop) handleProductGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.product(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Produkt nebyl nalezen")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *fakeShop) handleProductUpdate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		domain.ProductInput
		Version int64 `json:"version"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.product(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Produkt nebyl nalezen")
		return
	}
	if p.Version != input.Version {
		writeError(w, http.StatusInternalServerError, "Produkt byl mezitím změněn")
		return
	}

	p.Name = input.Name
	p.Price = input.Price
	p.StockQuantity = input.StockQuantity
	p.Version++
	writeJSON(w, http.StatusOK, p)
}

func (s *fakeShop) handleProductDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.product(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Produkt nebyl nalezen")
		return
	}
	delete(s.products, p.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *fakeShop) handleOrders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		list = append(list, *o)
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *fakeShop) transitionOrder(w http.ResponseWriter, r *http.Request, target domain.OrderStatus) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Objednávka nebyla nalezena")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Objednávka nebyla nalezena")
		return
	}
	if o.Status.Terminal() {
		writeError(w, http.StatusInternalServerError, "Objednávka již byla uzavřena")
		return
	}

	o.Status = target
	o.Version++
	writeJSON(w, http.StatusOK, o)
}

func (s *fakeShop) handleOrderComplete(w http.ResponseWriter, r *http.Request) {
	s.transitionOrder(w, r, domain.OrderStatusCompleted)
}

func (s *fakeShop) handleOrderCancel(w http.ResponseWriter, r *http.Request) {
	s.transitionOrder(w, r, domain.OrderStatusCancelled)
}
