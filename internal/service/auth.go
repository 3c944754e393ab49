package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/tapppp/storeorders/internal/session"
)

// AuthAPI is interface for the remote login call
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (session.Session, error)
}

// AuthService logs the merchant in and owns the stored session
type AuthService struct {
	api    AuthAPI
	store  *session.Store
	logger *zap.Logger
}

// NewAuthService creates new AuthService instance
func NewAuthService(api AuthAPI, store *session.Store, logger *zap.Logger) *AuthService {
	return &AuthService{api: api, store: store, logger: logger}
}

// Login authenticates the merchant and persists the session for later runs
func (a *AuthService) Login(ctx context.Context, email, password string) (session.Session, error) {
	sess, err := a.api.Login(ctx, email, password)
	if err != nil {
		return session.Session{}, err
	}

	if err := a.store.Save(sess); err != nil {
		// a session that cannot be saved is still usable for this run
		a.logger.Warn("save session", zap.Error(err))
	}

	a.logger.Info("logged in", zap.String("store_id", sess.StoreID), zap.String("store", sess.StoreName))
	return sess, nil
}

// Session returns the stored session from a previous login
func (a *AuthService) Session() (session.Session, error) {
	return a.store.Load()
}

// Logout clears the stored session in full
func (a *AuthService) Logout() error {
	return a.store.Clear()
}
