// Package httpapi exposes the gallery over HTTP: a gorilla/mux router, JSON
// request/response handling, bearer-token middleware, and the mapping from
// service errors to HTTP statuses.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/itemgallery/backend/internal/common"
	"github.com/itemgallery/backend/internal/logging"
	"github.com/itemgallery/backend/internal/server/models"
	"github.com/itemgallery/backend/internal/server/services"
)

// UserProvider is the authentication surface the handlers need.
type UserProvider interface {
	Register(ctx context.Context, email, password string, profile services.Profile) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, userID int64) error
	Authorize(ctx context.Context, rawHeader string) (*models.User, error)
}

// ItemProvider is the item surface the handlers need.
type ItemProvider interface {
	Create(ctx context.Context, userID int64, item *models.Item) (*models.Item, error)
	List(ctx context.Context, skip, limit int) ([]*models.Item, error)
	ListMy(ctx context.Context, userID int64) ([]*models.Item, error)
	Get(ctx context.Context, id int64) (*models.Item, error)
	Update(ctx context.Context, userID, id int64, upd services.ItemUpdate) (*models.Item, error)
	Delete(ctx context.Context, userID, id int64) error
	NewUploadURL(ctx context.Context) (string, string, error)
	ImageURLs(ctx context.Context, id int64) ([]string, error)
}

// Server serves the gallery HTTP API.
type Server struct {
	addr   string
	logger logging.Logger
	users  UserProvider
	items  ItemProvider
}

// NewServer constructs a Server bound to addr.
func NewServer(addr string, logger logging.Logger, users UserProvider, items ItemProvider) *Server {
	return &Server{
		addr:   addr,
		logger: logger.With("module", "httpapi"),
		users:  users,
		items:  items,
	}
}

// Router builds the route table. Split out from Run so tests can drive it
// with httptest.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/logout", s.requireUser(s.handleLogout)).Methods(http.MethodPost)
	api.HandleFunc("/user", s.requireUser(s.handleCurrentUser)).Methods(http.MethodGet)

	api.HandleFunc("/items", s.requireUser(s.handleItemCreate)).Methods(http.MethodPost)
	api.HandleFunc("/items", s.handleItemList).Methods(http.MethodGet)
	api.HandleFunc("/items/my", s.requireUser(s.handleItemListMy)).Methods(http.MethodGet)
	api.HandleFunc("/items/{id:[0-9]+}", s.handleItemGet).Methods(http.MethodGet)
	api.HandleFunc("/items/{id:[0-9]+}", s.requireUser(s.handleItemUpdate)).Methods(http.MethodPut)
	api.HandleFunc("/items/{id:[0-9]+}", s.requireUser(s.handleItemDelete)).Methods(http.MethodDelete)
	api.HandleFunc("/items/{id:[0-9]+}/images", s.handleItemImages).Methods(http.MethodGet)

	api.HandleFunc("/uploads", s.requireUser(s.handleNewUpload)).Methods(http.MethodPost)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.logger.Info(ctx, "server stopped")
		return nil
	}
}

// writeServiceError maps a service error to its HTTP response. A dangling
// token means a token row outlived its user, so that one gets logged at
// error level.
func (s *Server) writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		writeUnauthorized(w, "unauthorized")
	case errors.Is(err, common.ErrInvalidCredentials):
		writeUnauthorized(w, "invalid credentials")
	case errors.Is(err, common.ErrEmailExists):
		writeBadRequest(w, "email already registered")
	case errors.Is(err, common.ErrUserNotFound):
		s.logger.Error(ctx, "token resolved to missing user", "error", err.Error())
		writeNotFound(w, "user not found")
	case errors.Is(err, common.ErrorNotFound):
		writeNotFound(w, "not found")
	default:
		s.logger.Error(ctx, "request failed", "error", err.Error())
		writeInternalError(w)
	}
}
