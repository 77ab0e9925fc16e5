// Package services contains server-side business logic. This file implements
// SessionService: verifying credentials against the credential store, minting
// session tokens, and resolving cookies back to a live administrator.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/admintieri/tractoradmin/internal/common"
	"github.com/admintieri/tractoradmin/internal/dbx"
	"github.com/admintieri/tractoradmin/internal/logging"
	"github.com/admintieri/tractoradmin/internal/server/auth"
	"github.com/admintieri/tractoradmin/internal/server/models"
	"github.com/admintieri/tractoradmin/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the email is unknown so that the two
// invalid-credential paths cost the same; otherwise response timing would
// reveal which emails exist.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// SessionService is the session issuer and resolver. Tokens are
// self-contained: there is no server-side session table, so invalidation is
// solely by cookie deletion or expiry.
type SessionService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	codec       *auth.Codec
	logger      logging.Logger
}

func NewSessionService(db dbx.DBTX, m repomanager.RepositoryManager, codec *auth.Codec, logger logging.Logger) *SessionService {
	return &SessionService{
		db:          db,
		repomanager: m,
		codec:       codec,
		logger:      logger,
	}
}

// Login verifies the email/password pair and, on success, returns the
// administrator's public identity and a freshly minted session token.
//
// An unknown email and a wrong password both return
// common.ErrInvalidCredentials; nothing distinguishes the two to the caller.
func (s *SessionService) Login(ctx context.Context, email, password string) (*models.Identity, string, error) {
	if email == "" || password == "" {
		return nil, "", common.ErrInvalidRequest
	}

	repo := s.repomanager.Admins(s.db)
	admin, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, "", common.ErrInvalidCredentials
		}
		return nil, "", common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, "", common.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(admin.ID, admin.Email, admin.Name)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "error", err)
		return nil, "", common.ErrorInternal
	}

	identity := admin.Identity()
	return &identity, token, nil
}

// Resolve recovers the authenticated identity from a session token, or
// reports the request as unauthenticated. The token is verified and then the
// administrator is re-fetched by id: a correctly signed, unexpired token for
// a deleted account resolves to unauthenticated, and profile edits show up
// without re-login because the live row wins over the stale claims.
func (s *SessionService) Resolve(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, common.ErrorUnauthenticated
	}

	claims, err := s.codec.Verify(token)
	if err != nil {
		// The reason stays in the log; the caller only ever sees 401.
		s.logger.Warn(ctx, "session token rejected", "reason", err)
		return nil, common.ErrorUnauthenticated
	}

	repo := s.repomanager.Admins(s.db)
	admin, err := repo.GetByID(ctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "session token references deleted administrator", "admin_id", claims.AdminID)
			return nil, common.ErrorUnauthenticated
		}
		return nil, common.ErrorInternal
	}

	identity := admin.Identity()
	return &identity, nil
}

// Seed creates an administrator with a bcrypt-hashed password. Used by the
// bootstrap path when the credential store is empty.
func (s *SessionService) Seed(ctx context.Context, name, email, password string) (*models.Identity, error) {
	if email == "" || password == "" {
		return nil, common.ErrInvalidRequest
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash error: %w", err)
	}

	repo := s.repomanager.Admins(s.db)
	admin, err := repo.Create(ctx, &models.Administrator{Name: name, Email: email, PasswordHash: string(hash)})
	if err != nil {
		return nil, fmt.Errorf("error creating administrator: %w", err)
	}

	identity := admin.Identity()
	return &identity, nil
}

// TokenTTL exposes the codec's validity window so the HTTP layer can align
// the cookie max-age with token expiry.
func (s *SessionService) TokenTTL() int {
	return int(s.codec.TTL().Seconds())
}
