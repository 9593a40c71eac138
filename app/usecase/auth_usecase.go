package usecase

import (
	"context"
	"log/slog"

	"github.com/peitrae/tandain-auth/app/domain"
	"github.com/peitrae/tandain-auth/app/port"
	apperrors "github.com/peitrae/tandain-auth/app/utils/errors"
)

// AuthUseCase composes the exchange, profile fetch, identity resolution,
// and credential issuance steps into the end-to-end login sequence.
// It holds no state beyond injected collaborators; concurrent logins
// are independent.
type AuthUseCase struct {
	exchanger port.OAuthExchanger
	profiles  port.ProfileFetcher
	users     port.IdentityResolver
	tokens    port.TokenIssuer
	host      string
	logger    *slog.Logger
}

// NewAuthUseCase creates a new AuthUseCase instance. host is used as
// both the issuer and audience of session credentials.
func NewAuthUseCase(
	exchanger port.OAuthExchanger,
	profiles port.ProfileFetcher,
	users port.IdentityResolver,
	tokens port.TokenIssuer,
	host string,
	logger *slog.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		exchanger: exchanger,
		profiles:  profiles,
		users:     users,
		tokens:    tokens,
		host:      host,
		logger:    logger.With("component", "auth_usecase"),
	}
}

// LoginWithGoogle drives the login pipeline. Each step is sequential
// and each failure short-circuits; errors cross this boundary exactly
// once, keeping their original code and location.
func (uc *AuthUseCase) LoginWithGoogle(ctx context.Context, code, redirectURI string) (*domain.LoginResult, error) {
	tokens, err := uc.exchanger.Exchange(ctx, code, redirectURI)
	if err != nil {
		return nil, wrapStep(err, "exchange_code")
	}

	profile, err := uc.profiles.FetchProfile(ctx, tokens.AccessToken)
	if err != nil {
		return nil, wrapStep(err, "fetch_profile")
	}

	user, err := uc.resolveIdentity(ctx, profile)
	if err != nil {
		return nil, wrapStep(err, "resolve_identity")
	}

	credential, err := uc.tokens.Issue(&domain.SessionClaims{
		Issuer:       uc.host,
		Subject:      user.ID,
		Audience:     uc.host,
		ExpiryMillis: tokens.ExpiryMillis,
		Name:         user.Name,
		Email:        user.Email,
	})
	if err != nil {
		return nil, wrapStep(err, "issue_token")
	}

	uc.logger.Info("login completed", "user_id", user.ID)

	return &domain.LoginResult{
		IDToken: credential,
		Message: domain.MsgLoginSuccess,
	}, nil
}

// AuthCodeURL builds the Google consent URL for the given state token.
func (uc *AuthUseCase) AuthCodeURL(state, redirectURI string) string {
	return uc.exchanger.AuthCodeURL(state, redirectURI)
}

// resolveIdentity finds the user by the profile's email or creates one
// on first login. A duplicate-email conflict on create means another
// concurrent login already provisioned the identity, so it is resolved
// by a second lookup rather than surfaced.
func (uc *AuthUseCase) resolveIdentity(ctx context.Context, profile *domain.GoogleProfile) (*domain.User, error) {
	user, err := uc.users.FindByEmail(ctx, profile.Email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	photoURL := &profile.PhotoURL
	if profile.PhotoURL == "" {
		photoURL = nil
	}

	user, err = uc.users.Create(ctx, profile.Name, profile.Email, photoURL)
	if err == nil {
		return user, nil
	}
	if !apperrors.IsCode(err, apperrors.ErrCodeDuplicateEmail) {
		return nil, err
	}

	uc.logger.Info("concurrent provisioning detected, re-resolving", "email", profile.Email)

	user, err = uc.users.FindByEmail(ctx, profile.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// The row that caused the conflict disappeared between calls.
		return nil, apperrors.New(apperrors.ErrCodeIdentityStoreUnavailable, "failed to resolve user after duplicate email conflict")
	}

	return user, nil
}

// wrapStep normalizes any error leaving the pipeline into the uniform
// AppError shape. Already-classified errors keep their code and first
// recorded location; anything else becomes an internal error.
func wrapStep(err error, location string) *apperrors.AppError {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr.WithLocation(location)
	}
	return apperrors.Wrap(apperrors.ErrCodeInternalError, "something went wrong during login", err).
		WithLocation(location)
}
