// Package deckvault is the client for the secondary write-side deck
// storage service: session login and deck saves.
package deckvault

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// ErrSessionExpired is returned before any network call when the session
// token is past its expiry.
var ErrSessionExpired = errors.New("deckvault session expired")

// ServiceError is a non-success response from the deck service.
type ServiceError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("deckvault error (status %d): %s", e.StatusCode, e.Message)
}

// Session is an authenticated deck-service session.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid reports whether the session can still be used at time now.
func (s *Session) Valid(now time.Time) bool {
	return s != nil && s.Token != "" && now.Before(s.ExpiresAt)
}

// DeckEntry is one line of a deck: a card and how many copies.
type DeckEntry struct {
	CardID   string `json:"card_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Deck is a named list of cards to store.
type Deck struct {
	Name    string      `json:"name"`
	Format  string      `json:"format,omitempty"`
	Entries []DeckEntry `json:"entries"`
}

// Config holds the deck-service client configuration.
type Config struct {
	// BaseURL of the deck service (required).
	BaseURL string

	// Timeout for a single round-trip (15s when zero).
	Timeout time.Duration
}

// Client talks to the deck service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	clock      func() time.Time
	logger     zerolog.Logger
}

// New creates a deck-service client.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("deckvault base URL is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		clock:      time.Now,
		logger:     logger.With().Str("component", "deckvault").Logger(),
	}, nil
}

// Login establishes a session with the deck service.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal login request: %w", err)
	}

	resp, err := c.post(ctx, "/api/session", "", payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, serviceError(resp)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	c.logger.Info().
		Str("user", username).
		Time("expires_at", session.ExpiresAt).
		Msg("Deck service session established")

	return &session, nil
}

// SaveDeck stores a deck under the given session and returns the new deck's
// ID. An expired or missing session fails with ErrSessionExpired without
// touching the network.
func (c *Client) SaveDeck(ctx context.Context, session *Session, deck Deck) (string, error) {
	if !session.Valid(c.clock()) {
		return "", ErrSessionExpired
	}
	if deck.Name == "" {
		return "", fmt.Errorf("deck name is required")
	}

	payload, err := json.Marshal(deck)
	if err != nil {
		return "", fmt.Errorf("marshal deck: %w", err)
	}

	resp, err := c.post(ctx, "/api/decks", session.Token, payload)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", serviceError(resp)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decode save response: %w", err)
	}

	c.logger.Info().
		Str("deck", deck.Name).
		Str("id", created.ID).
		Int("entries", len(deck.Entries)).
		Msg("Deck saved")

	return created.ID, nil
}

func (c *Client) post(ctx context.Context, path, token string, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("deckvault request: %w", err)
	}
	return resp, nil
}

func serviceError(resp *http.Response) *ServiceError {
	e := &ServiceError{
		StatusCode: resp.StatusCode,
		Message:    resp.Status,
	}
	var body struct {
		Error string `json:"error"`
	}
	if json.NewDecoder(resp.Body).Decode(&body) == nil && body.Error != "" {
		e.Message = body.Error
	}
	return e
}
