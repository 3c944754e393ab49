package devserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tapppp/storeorders/internal/models"
)

// Publisher pushes a new-order event to a store's push channel
type Publisher interface {
	PublishNewOrder(ctx context.Context, storeID, message string) error
}

// Config configures the development backend
type Config struct {
	StoreID   string
	StoreName string
	Email     string
	Password  string
	TokenKey  []byte
}

// Server is an in-memory stand-in for the store backend. It implements
// the same endpoints the client talks to in production, so the client
// can be run end to end without the real service.
type Server struct {
	cfg          Config
	store        *memStore
	tokens       *tokenAuth
	passwordHash []byte
	publisher    Publisher
	logger       *zap.Logger
}

// New creates new Server instance. publisher may be nil, then seeded
// orders do not emit push events.
func New(cfg Config, publisher Publisher, logger *zap.Logger) (*Server, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:          cfg,
		store:        newMemStore(),
		tokens:       newTokenAuth(cfg.TokenKey),
		passwordHash: hash,
		publisher:    publisher,
		logger:       logger,
	}, nil
}

// Router builds the backend route table
func (s *Server) Router() chi.Router {
	router := chi.NewRouter()

	router.Post("/api/login", s.login())

	router.Group(func(group chi.Router) {
		group.Use(s.auth)
		group.Post("/api/Stores/fetch_orders", s.fetchOrders())
		group.Post("/api/Stores/update_status_by_mid", s.updateStatus())
		group.Post("/api/Stores/Delete_Order_By_Id", s.deleteOrder())
		group.Post("/dev/seed", s.seed())
	})

	return router
}

// auth verifies the bearer token the way the production backend does
func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if _, err := s.tokens.VerifyToken(token); err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) login() http.HandlerFunc {
	type request struct {
		UserEmail    string `json:"useremail"`
		UserPassword string `json:"userPassword"`
	}
	type storeData struct {
		StoreID   int64  `json:"storeId"`
		StoreName string `json:"storeName"`
		StoreImg  string `json:"storeImg"`
	}
	type response struct {
		Token     string    `json:"token"`
		StoreData storeData `json:"storedata"`
	}
	type errResponse struct {
		Message string `json:"message"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		if req.UserEmail != s.cfg.Email ||
			bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.UserPassword)) != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(errResponse{Message: "Invalid credentials"})
			return
		}

		token, err := s.tokens.CreateToken(s.cfg.StoreID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		storeID, _ := strconv.ParseInt(s.cfg.StoreID, 10, 64)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response{
			Token: token,
			StoreData: storeData{
				StoreID:   storeID,
				StoreName: s.cfg.StoreName,
				StoreImg:  "https://img.example.com/store.png",
			},
		})
	}
}

func (s *Server) fetchOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("store_id") != s.cfg.StoreID {
			http.Error(w, "unknown store", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s.store.List())
	}
}

func (s *Server) updateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mid, err := strconv.ParseUint(r.URL.Query().Get("mid"), 10, 64)
		if err != nil {
			http.Error(w, "bad mid", http.StatusBadRequest)
			return
		}

		status := r.URL.Query().Get("new_status")
		if status != models.OrderStatusDispatch && status != models.OrderStatusDecline {
			http.Error(w, "bad status", http.StatusBadRequest)
			return
		}

		if !s.store.UpdateStatus(mid, status) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func (s *Server) deleteOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mid, err := strconv.ParseUint(r.URL.Query().Get("id"), 10, 64)
		if err != nil {
			http.Error(w, "bad id", http.StatusBadRequest)
			return
		}

		if !s.store.Delete(mid) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// seed inserts a fresh pending order and pushes the new-order event,
// mimicking what the production backend does when a buyer checks out
func (s *Server) seed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order := s.store.Seed()
		s.logger.Info("seeded order", zap.String("order_id", order.OrderID))

		if s.publisher != nil {
			msg := "You have a new order " + order.OrderID
			if err := s.publisher.PublishNewOrder(r.Context(), s.cfg.StoreID, msg); err != nil {
				s.logger.Error("publish new order event", zap.Error(err))
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(order)
	}
}
