// Package auth implements the OAuth implicit-grant helpers: building the
// authorization URL and extracting a credential from the redirect fragment.
package auth

import (
	"net/url"
	"strconv"
	"time"

	"crmdash/config"
	"crmdash/internal/domain/entity"
	domainerrors "crmdash/internal/domain/errors"
)

const (
	fragmentKeyAccessToken  = "access_token"
	fragmentKeyInstanceURL  = "instance_url"
	fragmentKeyRefreshToken = "refresh_token"
	fragmentKeyExpiresIn    = "expires_in"
)

// ParseCallbackFragment extracts a credential from the fragment the identity
// provider attaches to the redirect URI. The fragment is an opaque
// query-string-style key/value sequence; access_token and instance_url are
// both required, refresh_token is optional.
//
// The implicit grant does not reliably return an explicit lifetime, so
// ExpiresAt defaults to now plus the configured estimate. A provider-issued
// expires_in always takes precedence over the estimate.
//
// This is a pure function. Removing the fragment from the visible address so
// a reload does not replay the callback is the caller's responsibility.
func ParseCallbackFragment(fragment string, now time.Time, lifetime time.Duration) (*entity.Credential, error) {
	if fragment == "" {
		return nil, domainerrors.ErrMalformedCallback
	}

	params, err := url.ParseQuery(fragment)
	if err != nil {
		return nil, domainerrors.ErrMalformedCallback.WithDetails(err.Error())
	}

	accessToken := params.Get(fragmentKeyAccessToken)
	instanceURL := params.Get(fragmentKeyInstanceURL)

	// A token without an instance URL is malformed, not partially usable.
	if accessToken == "" || instanceURL == "" {
		return nil, domainerrors.ErrMalformedCallback
	}

	expiresAt := now.Add(lifetime)
	if raw := params.Get(fragmentKeyExpiresIn); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			expiresAt = now.Add(time.Duration(seconds) * time.Second)
		}
	}

	return &entity.Credential{
		AccessToken:  accessToken,
		InstanceURL:  instanceURL,
		RefreshToken: params.Get(fragmentKeyRefreshToken),
		IssuedAt:     now,
		ExpiresAt:    expiresAt,
	}, nil
}

// AuthorizeURL builds the identity provider's implicit-grant authorization
// URL for the configured connected app.
func AuthorizeURL(cfg *config.SalesforceConfig) string {
	params := url.Values{}
	params.Set("response_type", "token")
	params.Set("client_id", cfg.ClientID)
	params.Set("redirect_uri", cfg.RedirectURI)

	return cfg.LoginURL + "/services/oauth2/authorize?" + params.Encode()
}
