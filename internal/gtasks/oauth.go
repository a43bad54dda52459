package gtasks

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/tasks/v1"
)

// localhostAuthPort is where the local callback server listens during
// the authorization flow
const localhostAuthPort = "6789"

// authClient returns an HTTP client carrying the user's cached token.
// The token must already exist; run Authorize first.
func (c *Client) authClient(ctx context.Context, userID string) (*http.Client, error) {
	cfg, err := c.oauthConfig()
	if err != nil {
		return nil, err
	}

	tok, err := tokenFromFile(c.tokenPath(userID))
	if err != nil {
		return nil, fmt.Errorf("no cached token for %s, run 'taskfold link' first: %w", userID, err)
	}

	// config.Client refreshes the access token transparently when a
	// refresh token is present.
	return cfg.Client(ctx, tok), nil
}

// Authorize runs the browser authorization flow for a user and caches
// the resulting token.
func (c *Client) Authorize(ctx context.Context, userID string) error {
	cfg, err := c.oauthConfig()
	if err != nil {
		return err
	}

	tok, err := tokenFromWeb(ctx, cfg)
	if err != nil {
		return err
	}
	return saveToken(c.tokenPath(userID), tok)
}

func (c *Client) tokenPath(userID string) string {
	return filepath.Join(c.tokenDir, userID+".json")
}

func (c *Client) oauthConfig() (*oauth2.Config, error) {
	b, err := os.ReadFile(c.credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file %s: %w", c.credentialsFile, err)
	}

	cfg, err := google.ConfigFromJSON(b, tasks.TasksScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file: %w", err)
	}
	cfg.RedirectURL = fmt.Sprintf("http://localhost:%s/oauth2callback", localhostAuthPort)
	return cfg, nil
}

// tokenFromWeb captures the authorization code with a short-lived local
// HTTP server and exchanges it for a token.
func tokenFromWeb(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	codeCh := make(chan string)
	errCh := make(chan error)

	listener, err := net.Listen("tcp", ":"+localhostAuthPort)
	if err != nil {
		return nil, fmt.Errorf("failed to start listener on port %s: %w", localhostAuthPort, err)
	}
	defer listener.Close()

	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := r.URL.Query().Get("code")
			if code == "" {
				http.Error(w, "Authorization code not found", http.StatusBadRequest)
				errCh <- fmt.Errorf("authorization code not found in redirect URL")
				return
			}
			fmt.Fprint(w, "Authentication successful! You can close this window.")
			codeCh <- code
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// AccessTypeOffline so a refresh token comes back
	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	fmt.Printf("Open the following URL in your browser to authorize taskfold:\n%s\n", authURL)

	select {
	case code := <-codeCh:
		exchangeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		tok, err := cfg.Exchange(exchangeCtx, code)
		if err != nil {
			return nil, fmt.Errorf("unable to exchange authorization code: %w", err)
		}
		server.Shutdown(exchangeCtx)
		return tok, nil
	case err := <-errCh:
		return nil, err
	case <-time.After(5 * time.Minute):
		server.Shutdown(context.Background())
		return nil, fmt.Errorf("authorization timed out, please try again")
	}
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("failed to decode token from %s: %w", path, err)
	}
	return tok, nil
}

func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache OAuth token to %s: %w", path, err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}
