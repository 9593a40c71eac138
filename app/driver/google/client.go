package google

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/oauth2"

	"github.com/peitrae/tandain-auth/app/config"
	"github.com/peitrae/tandain-auth/app/domain"
	apperrors "github.com/peitrae/tandain-auth/app/utils/errors"
)

// Endpoint is Google's OAuth2 authorization-code endpoint pair.
var Endpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.google.com/o/oauth2/auth",
	TokenURL: "https://oauth2.googleapis.com/token",
}

var defaultScopes = []string{"openid", "profile", "email"}

// Client drives the authorization-code-for-token exchange against
// Google and classifies provider rejections.
type Client struct {
	clientID     string
	clientSecret string
	endpoint     oauth2.Endpoint
	scopes       []string
	logger       *slog.Logger
}

// NewClient creates a new Google OAuth client
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		clientID:     cfg.GoogleClientID,
		clientSecret: cfg.GoogleClientSecret,
		endpoint:     Endpoint,
		scopes:       defaultScopes,
		logger:       logger.With("component", "google_oauth"),
	}
}

// AuthCodeURL builds the Google consent URL for the given state token.
func (c *Client) AuthCodeURL(state, redirectURI string) string {
	return c.oauthConfig(redirectURI).AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange performs a single authorization-code-grant token exchange.
// The oauth2 config is built per call because the redirect URI must
// exactly match the one bound to the code.
func (c *Client) Exchange(ctx context.Context, code, redirectURI string) (*domain.ProviderTokens, error) {
	token, err := c.oauthConfig(redirectURI).Exchange(ctx, code)
	if err != nil {
		classified := classifyExchangeError(err)
		c.logger.Error("token exchange failed",
			"error", err,
			"classified_code", classified.Code)
		return nil, classified
	}

	// Google may withhold the id_token; it is pass-through only.
	idToken, _ := token.Extra("id_token").(string)

	var expiryMillis int64
	if !token.Expiry.IsZero() {
		expiryMillis = token.Expiry.UnixMilli()
	}

	c.logger.Info("token exchange succeeded",
		"has_id_token", idToken != "",
		"expiry_millis", expiryMillis)

	return &domain.ProviderTokens{
		AccessToken:  token.AccessToken,
		IDToken:      idToken,
		ExpiryMillis: expiryMillis,
	}, nil
}

func (c *Client) oauthConfig(redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		RedirectURL:  redirectURI,
		Endpoint:     c.endpoint,
		Scopes:       c.scopes,
	}
}

// classifyExchangeError maps the provider-supplied error tag onto the
// login error taxonomy. The tag is the only signal that distinguishes a
// bad code from a bad redirect URI; when it is missing or unknown the
// failure is attributed to the upstream, never to caller input.
func classifyExchangeError(err error) *apperrors.AppError {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		switch retrieveErr.ErrorCode {
		case "invalid_grant":
			return apperrors.Wrap(apperrors.ErrCodeInvalidCode, apperrors.MsgInvalidCode, err).
				WithLocation("exchange_code")
		case "invalid_request":
			return apperrors.Wrap(apperrors.ErrCodeInvalidRedirectURI, apperrors.MsgInvalidRedirectURI, err).
				WithLocation("exchange_code")
		}
	}

	return apperrors.Wrap(apperrors.ErrCodeExchangeFailed, apperrors.MsgExchangeFailed, err).
		WithLocation("exchange_code")
}
