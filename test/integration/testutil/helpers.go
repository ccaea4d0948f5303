//go:build integration

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// RegisterUser creates a new account and returns the auth token and user ID.
func (env *TestEnv) RegisterUser(email, password string) (token string, userID uuid.UUID) {
	env.t.Helper()
	resp := env.POST("/auth/register", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		env.t.Fatalf("RegisterUser: expected 201, got %d", resp.StatusCode)
	}

	var result struct {
		Token  string    `json:"token"`
		UserID uuid.UUID `json:"user_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		env.t.Fatalf("RegisterUser: decode: %v", err)
	}
	return result.Token, result.UserID
}

// LoginUser authenticates an existing account and returns the auth token.
func (env *TestEnv) LoginUser(email, password string) string {
	env.t.Helper()
	resp := env.POST("/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		env.t.Fatalf("LoginUser: expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		env.t.Fatalf("LoginUser: decode: %v", err)
	}
	return result.Token
}

// FundUser registers a user, charges their balance, and returns token and ID.
func (env *TestEnv) FundUser(email, password string, amount int64) (string, uuid.UUID) {
	env.t.Helper()
	token, userID := env.RegisterUser(email, password)

	resp := env.POST("/users/charge", map[string]int64{"amount": amount}, token)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		env.t.Fatalf("FundUser: charge: expected 200, got %d", resp.StatusCode)
	}
	return token, userID
}

// CreateGame creates a game of the given variant and returns its ID.
func (env *TestEnv) CreateGame(token, variant string) uuid.UUID {
	env.t.Helper()
	resp := env.POST("/games", map[string]string{"variant": variant}, token)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		env.t.Fatalf("CreateGame: expected 201, got %d", resp.StatusCode)
	}

	var game struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&game); err != nil {
		env.t.Fatalf("CreateGame: decode: %v", err)
	}
	return game.ID
}

// JoinGame seats the token's user at the game with the given stake and
// returns the participation ID.
func (env *TestEnv) JoinGame(token string, gameID uuid.UUID, cash int64) uuid.UUID {
	env.t.Helper()
	resp := env.POST("/participations", map[string]interface{}{
		"game_id": gameID,
		"cash":    cash,
	}, token)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		env.t.Fatalf("JoinGame: expected 201, got %d", resp.StatusCode)
	}

	var p struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		env.t.Fatalf("JoinGame: decode: %v", err)
	}
	return p.ID
}

// PlaceBet wagers on the participation and returns the raw response.
func (env *TestEnv) PlaceBet(token string, participationID uuid.UUID, bet int64) *http.Response {
	env.t.Helper()
	return env.POST("/participations/"+participationID.String()+"/bet",
		map[string]int64{"bet": bet}, token)
}

// GET performs an unauthenticated GET request.
func (env *TestEnv) GET(path string) *http.Response {
	env.t.Helper()
	resp, err := http.Get(env.Server.URL + path)
	if err != nil {
		env.t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

// POST performs a POST request with optional auth token.
func (env *TestEnv) POST(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			env.t.Fatalf("POST %s: encode: %v", path, err)
		}
	}
	req, err := http.NewRequest("POST", env.Server.URL+path, &buf)
	if err != nil {
		env.t.Fatalf("POST %s: new request: %v", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

// AuthGET performs an authenticated GET request.
func (env *TestEnv) AuthGET(path, token string) *http.Response {
	env.t.Helper()
	req, err := http.NewRequest("GET", env.Server.URL+path, nil)
	if err != nil {
		env.t.Fatalf("AuthGET %s: new request: %v", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("AuthGET %s: %v", path, err)
	}
	return resp
}

// AuthDELETE performs an authenticated DELETE request.
func (env *TestEnv) AuthDELETE(path, token string) *http.Response {
	env.t.Helper()
	req, err := http.NewRequest("DELETE", env.Server.URL+path, nil)
	if err != nil {
		env.t.Fatalf("DELETE %s: new request: %v", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("DELETE %s: %v", path, err)
	}
	return resp
}
