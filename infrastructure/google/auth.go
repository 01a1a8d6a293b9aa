// Package google holds the OAuth token plumbing and the Sheets, Gmail and
// Calendar adapters behind the application gateways.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/sheets/v4"

	"outreach-backend/application/ports"
	"outreach-backend/pkg/errors"
)

// SettingGoogleTokens is the settings key the OAuth tokens live under.
const SettingGoogleTokens = "google_oauth_tokens"

// refreshWindow is how close to expiry a token gets refreshed ahead of use.
const refreshWindow = 5 * time.Minute

// Scopes requested during the OAuth flow.
var Scopes = []string{
	gmail.GmailReadonlyScope,
	gmail.GmailModifyScope,
	calendar.CalendarReadonlyScope,
	sheets.SpreadsheetsScope,
}

// Auth manages the OAuth flow and hands out token sources that persist
// refreshed tokens back to the settings store.
type Auth struct {
	config   *oauth2.Config
	settings ports.SettingsRepository
	logger   *zap.Logger
}

func NewAuth(clientID, clientSecret, redirectURL string, settings ports.SettingsRepository, logger *zap.Logger) *Auth {
	return &Auth{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       Scopes,
			Endpoint:     googleoauth.Endpoint,
		},
		settings: settings,
		logger:   logger,
	}
}

// AuthURL returns the consent page URL. Offline access forces a refresh
// token; prompt=consent makes Google reissue one on reconnects.
func (a *Auth) AuthURL(state string) string {
	return a.config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange trades the authorization code for tokens and persists them.
func (a *Auth) Exchange(ctx context.Context, code string) error {
	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return errors.NewExternalError("google oauth", err)
	}
	return a.saveToken(ctx, token)
}

// Disconnect drops the stored tokens.
func (a *Auth) Disconnect(ctx context.Context) error {
	return a.settings.Delete(ctx, SettingGoogleTokens)
}

// Connected reports whether tokens are stored, and when they expire.
func (a *Auth) Connected(ctx context.Context) (bool, time.Time, error) {
	token, err := a.loadToken(ctx)
	if err != nil {
		if errors.IsNotFound(err) {
			return false, time.Time{}, nil
		}
		return false, time.Time{}, err
	}
	return true, token.Expiry, nil
}

// TokenSource returns a source that refreshes ahead of expiry and writes
// refreshed tokens back to the settings store.
func (a *Auth) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	token, err := a.loadToken(ctx)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewUnauthorizedError("Google account not connected")
		}
		return nil, err
	}

	// Force an early refresh when the token is about to lapse.
	if token.Expiry.Before(time.Now().Add(refreshWindow)) {
		token.Expiry = time.Now().Add(-time.Minute)
	}

	return &persistingTokenSource{
		ctx:     ctx,
		auth:    a,
		inner:   a.config.TokenSource(ctx, token),
		current: token,
	}, nil
}

// persistingTokenSource wraps the library's refreshing source and stores
// every new token it produces.
type persistingTokenSource struct {
	ctx     context.Context
	auth    *Auth
	inner   oauth2.TokenSource
	current *oauth2.Token
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.inner.Token()
	if err != nil {
		return nil, err
	}
	if token.AccessToken != s.current.AccessToken {
		if err := s.auth.saveToken(s.ctx, token); err != nil {
			s.auth.logger.Warn("Failed to persist refreshed Google token", zap.Error(err))
		}
		s.current = token
	}
	return token, nil
}

func (a *Auth) saveToken(ctx context.Context, token *oauth2.Token) error {
	// Keep the previously stored refresh token when Google omits it on
	// refresh responses.
	if token.RefreshToken == "" {
		if prev, err := a.loadToken(ctx); err == nil && prev.RefreshToken != "" {
			token.RefreshToken = prev.RefreshToken
		}
	}

	raw, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("marshal oauth token: %w", err)
	}
	return a.settings.Set(ctx, SettingGoogleTokens, string(raw))
}

func (a *Auth) loadToken(ctx context.Context) (*oauth2.Token, error) {
	raw, err := a.settings.Get(ctx, SettingGoogleTokens)
	if err != nil {
		return nil, err
	}
	var token oauth2.Token
	if err := json.Unmarshal([]byte(raw), &token); err != nil {
		return nil, errors.NewInternalError("corrupt stored Google tokens").WithCause(err)
	}
	return &token, nil
}
