package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avosk/threadhub/internal/common"
	"github.com/avosk/threadhub/internal/dbx"
	"github.com/avosk/threadhub/internal/logging"
	"github.com/avosk/threadhub/internal/server/auth"
	"github.com/avosk/threadhub/internal/server/config"
	"github.com/avosk/threadhub/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// TokenPair is the access/refresh token couple issued on login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// IdentityService is the authentication bridge. ResolvePrincipal translates
// a login identifier into an auth.Principal for the session layer; Login and
// RefreshToken implement the session handshake on top of it.
type IdentityService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	logger                       logging.Logger
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewIdentityService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *IdentityService {
	return &IdentityService{
		db:                           db,
		repomanager:                  m,
		logger:                       logger.With("module", "identity_service"),
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// ResolvePrincipal maps the canonical login identifier (email) to an
// authentication principal. Pure translation: no credential verification,
// no side effects. Absent users yield common.ErrorNotFound.
func (s *IdentityService) ResolvePrincipal(ctx context.Context, login string) (*auth.Principal, error) {
	user, err := s.repomanager.Users(s.db).FindByEmail(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "resolvePrincipal failed", "login", login, "error", err)
		return nil, common.ErrorInternal
	}

	return auth.NewPrincipal(user.ID, user.Email, user.Password), nil
}

// Login resolves the principal and verifies the credential against its
// stored hash; on success it issues an access token plus a persisted refresh
// token. An unknown login and a wrong password are indistinguishable to the
// caller.
func (s *IdentityService) Login(ctx context.Context, login, password string) (*TokenPair, error) {
	s.logger.Info(ctx, "login", "login", login)

	principal, err := s.ResolvePrincipal(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(principal.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}

	pair, err := s.issueTokens(ctx, principal.UserID)
	if err != nil {
		s.logger.Error(ctx, "login token issue failed", "user_id", principal.UserID, "error", err)
		return nil, common.ErrorInternal
	}

	return pair, nil
}

// RefreshToken rotates a refresh token: the presented token is deleted and a
// fresh pair is issued in the same transaction, so a token can be spent once.
func (s *IdentityService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var tokenPair *TokenPair

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		txRepo := s.repomanager.RefreshTokens(tx)

		if err := txRepo.Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}

		tokenPair, err = s.issueTokensTx(ctx, tx, token.UserID)
		return err
	})
	if err != nil {
		s.logger.Error(ctx, "refresh token rotation failed", "error", err)
		return nil, common.ErrorInternal
	}

	return tokenPair, nil
}

func (s *IdentityService) issueTokens(ctx context.Context, userID int64) (*TokenPair, error) {
	var pair *TokenPair
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		pair, err = s.issueTokensTx(ctx, tx, userID)
		return err
	})
	return pair, err
}

func (s *IdentityService) issueTokensTx(ctx context.Context, tx dbx.DBTX, userID int64) (*TokenPair, error) {
	accessToken, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, err
	}

	refreshToken, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, err
	}

	if err := s.repomanager.RefreshTokens(tx).Create(ctx, userID, refreshToken, s.refreshTokenValidityDuration); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
