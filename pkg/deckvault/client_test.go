package deckvault

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLogin(t *testing.T) {
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/session" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var creds map[string]string
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("decode credentials: %v", err)
		}
		if creds["username"] != "alice" || creds["password"] != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "bad credentials"})
			return
		}
		json.NewEncoder(w).Encode(Session{Token: "tok-123", ExpiresAt: expires})
	}))
	defer server.Close()

	client, err := New(Config{BaseURL: server.URL}, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	session, err := client.Login(context.Background(), "alice", "hunter2")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if session.Token != "tok-123" {
		t.Errorf("Token = %q, want tok-123", session.Token)
	}
	if !session.ExpiresAt.Equal(expires) {
		t.Errorf("ExpiresAt = %v, want %v", session.ExpiresAt, expires)
	}

	_, err = client.Login(context.Background(), "alice", "wrong")
	var se *ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("Login() with bad password error = %v, want *ServiceError", err)
	}
	if se.StatusCode != http.StatusUnauthorized || se.Message != "bad credentials" {
		t.Errorf("ServiceError = %+v", se)
	}
}

func TestSaveDeck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q, want Bearer tok-123", got)
		}
		var deck Deck
		if err := json.NewDecoder(r.Body).Decode(&deck); err != nil {
			t.Fatalf("decode deck: %v", err)
		}
		if deck.Name != "Burn" || len(deck.Entries) != 1 {
			t.Errorf("deck = %+v", deck)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": "deck-42"})
	}))
	defer server.Close()

	client, err := New(Config{BaseURL: server.URL}, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	session := &Session{Token: "tok-123", ExpiresAt: time.Now().Add(time.Hour)}
	deck := Deck{
		Name:    "Burn",
		Format:  "modern",
		Entries: []DeckEntry{{CardID: "abc", Name: "Lightning Bolt", Quantity: 4}},
	}

	id, err := client.SaveDeck(context.Background(), session, deck)
	if err != nil {
		t.Fatalf("SaveDeck() error = %v", err)
	}
	if id != "deck-42" {
		t.Errorf("deck ID = %q, want deck-42", id)
	}
}

func TestSaveDeck_ExpiredSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("expired session must not reach the network")
	}))
	defer server.Close()

	client, err := New(Config{BaseURL: server.URL}, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name    string
		session *Session
	}{
		{"nil session", nil},
		{"expired token", &Session{Token: "tok", ExpiresAt: time.Now().Add(-time.Minute)}},
		{"empty token", &Session{ExpiresAt: time.Now().Add(time.Hour)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.SaveDeck(context.Background(), tt.session, Deck{Name: "Burn"})
			if !errors.Is(err, ErrSessionExpired) {
				t.Errorf("SaveDeck() error = %v, want ErrSessionExpired", err)
			}
		})
	}
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}, zerolog.Nop()); err == nil {
		t.Error("New() without base URL error = nil, want error")
	}
}
