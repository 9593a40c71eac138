package port

//go:generate mockgen -source=auth_port.go -destination=../mocks/mock_auth_port.go

import (
	"context"

	"github.com/peitrae/tandain-auth/app/domain"
)

// AuthUsecase defines the login business logic exposed to the REST layer
type AuthUsecase interface {
	// LoginWithGoogle drives the full authorization-code login sequence:
	// exchange, profile fetch, identity resolution, credential issuance.
	LoginWithGoogle(ctx context.Context, code, redirectURI string) (*domain.LoginResult, error)

	// AuthCodeURL builds the Google consent URL for the given state token.
	AuthCodeURL(state, redirectURI string) string
}

// OAuthExchanger exchanges an authorization code for provider tokens.
// Implementations classify provider rejections into INVALID_CODE,
// INVALID_REDIRECT_URI, or EXCHANGE_FAILED.
type OAuthExchanger interface {
	Exchange(ctx context.Context, code, redirectURI string) (*domain.ProviderTokens, error)
	AuthCodeURL(state, redirectURI string) string
}

// ProfileFetcher retrieves the authenticated user's profile from the
// provider with a bearer access token.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, accessToken string) (*domain.GoogleProfile, error)
}

// TokenIssuer signs and parses session credentials.
type TokenIssuer interface {
	Issue(claims *domain.SessionClaims) (string, error)
	Parse(token string) (*domain.SessionClaims, error)
}
