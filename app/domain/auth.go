package domain

// ProviderTokens is the result of a successful authorization-code exchange.
// The access token is used once to fetch the profile and then discarded;
// nothing here is persisted.
type ProviderTokens struct {
	AccessToken  string
	IDToken      string // may be empty, Google can withhold it
	ExpiryMillis int64  // epoch milliseconds, forwarded into the session claims
}

// GoogleProfile is the normalized profile returned by the People API.
// It lives only long enough to resolve a local User.
type GoogleProfile struct {
	Name     string
	Email    string
	PhotoURL string
}

// SessionClaims is the claim set embedded into the signed session
// credential. Built fresh per login, never persisted.
type SessionClaims struct {
	Issuer       string
	Subject      int64 // User.ID
	Audience     string
	ExpiryMillis int64 // forwarded provider token expiry
	Name         string
	Email        string
}

// LoginResult is the terminal output of a successful login.
type LoginResult struct {
	IDToken string `json:"id_token"`
	Message string `json:"message"`
}

// MsgLoginSuccess is the user-visible message for a completed login.
const MsgLoginSuccess = "Logged in successfully"
