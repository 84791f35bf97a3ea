package webapi

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/oauth2"
)

var spotifyEndpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.spotify.com/authorize",
	TokenURL: "https://accounts.spotify.com/api/token",
}

var scopes = []string{
	"user-read-playback-state",
	"user-modify-playback-state",
	"user-read-currently-playing",
}

// AuthConfig holds the OAuth2 application credentials and the path of the
// cached token file.
type AuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	TokenCache   string
}

func (a AuthConfig) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     a.ClientID,
		ClientSecret: a.ClientSecret,
		RedirectURL:  a.RedirectURL,
		Endpoint:     spotifyEndpoint,
		Scopes:       scopes,
	}
}

// NewClient returns an *http.Client that attaches and refreshes the cached
// OAuth2 token. It fails when no token has been cached yet; run [Authorize]
// once to create one.
func NewClient(ctx context.Context, a AuthConfig) (*http.Client, error) {
	tok, err := loadToken(a.TokenCache)
	if err != nil {
		return nil, fmt.Errorf("webapi: no cached token (run with -auth first): %w", err)
	}
	cfg := a.oauth2Config()
	return oauth2.NewClient(ctx, cfg.TokenSource(ctx, tok)), nil
}

// Authorize runs the one-time authorization-code flow: it starts a local
// callback server on the redirect URL, prints the consent URL for the user to
// open, exchanges the returned code and caches the token.
func Authorize(ctx context.Context, a AuthConfig) error {
	cfg := a.oauth2Config()

	ru, err := url.Parse(a.RedirectURL)
	if err != nil {
		return fmt.Errorf("webapi: parse redirect URL: %w", err)
	}

	state, err := randomState()
	if err != nil {
		return err
	}

	type result struct {
		code string
		err  error
	}
	results := make(chan result, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(ru.Path, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("state") != state:
			http.Error(w, "state mismatch", http.StatusBadRequest)
			results <- result{err: errors.New("webapi: authorization state mismatch")}
		case q.Get("error") != "":
			http.Error(w, "authorization denied", http.StatusBadRequest)
			results <- result{err: fmt.Errorf("webapi: authorization denied: %s", q.Get("error"))}
		default:
			fmt.Fprintln(w, "Authorized. You can close this tab.")
			results <- result{code: q.Get("code")}
		}
	})

	ln, err := net.Listen("tcp", ru.Host)
	if err != nil {
		return fmt.Errorf("webapi: listen on %s: %w", ru.Host, err)
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go srv.Serve(ln) //nolint:errcheck // shut down below
	defer srv.Shutdown(context.Background())

	fmt.Printf("Open this URL in your browser to authorize:\n\n  %s\n\n", cfg.AuthCodeURL(state))

	var res result
	select {
	case res = <-results:
	case <-ctx.Done():
		return ctx.Err()
	}
	if res.err != nil {
		return res.err
	}

	tok, err := cfg.Exchange(ctx, res.code)
	if err != nil {
		return fmt.Errorf("webapi: exchange authorization code: %w", err)
	}
	if err := saveToken(a.TokenCache, tok); err != nil {
		return err
	}
	fmt.Printf("Token cached at %s\n", a.TokenCache)
	return nil
}

func loadToken(path string) (*oauth2.Token, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(raw, &tok); err != nil {
		return nil, fmt.Errorf("parse token cache %s: %w", path, err)
	}
	return &tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	raw, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("webapi: encode token: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("webapi: write token cache: %w", err)
	}
	return nil
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("webapi: generate state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
