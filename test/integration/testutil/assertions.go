//go:build integration

package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
)

// DecodeJSON reads and decodes a JSON response body into dst.
func DecodeJSON(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
}

// AssertStatus checks that the response has the expected HTTP status code.
func AssertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

// AssertErrorCode checks that the response body contains the expected error code.
func AssertErrorCode(t *testing.T, resp *http.Response, expectedCode string) {
	t.Helper()
	var errResp struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	DecodeJSON(t, resp, &errResp)
	if errResp.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, errResp.Code, errResp.Message)
	}
}

// GameState queries the games table and returns status and hands_played.
func GameState(t *testing.T, env *TestEnv, gameID uuid.UUID) (status string, handsPlayed int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := env.Pool.QueryRow(ctx,
		"SELECT status, hands_played FROM games WHERE id = $1", gameID).Scan(&status, &handsPlayed)
	if err != nil {
		t.Fatalf("GameState: query: %v", err)
	}
	return status, handsPlayed
}

// CountCards returns the number of game cards in the given location.
func CountCards(t *testing.T, env *TestEnv, gameID uuid.UUID, location string) int {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var count int
	err := env.Pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM game_cards WHERE game_id = $1 AND location = $2",
		gameID, location).Scan(&count)
	if err != nil {
		t.Fatalf("CountCards: %v", err)
	}
	return count
}

// UserCash returns the user's current balance.
func UserCash(t *testing.T, env *TestEnv, userID uuid.UUID) int64 {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var cash int64
	err := env.Pool.QueryRow(ctx,
		"SELECT cash FROM users WHERE id = $1", userID).Scan(&cash)
	if err != nil {
		t.Fatalf("UserCash: %v", err)
	}
	return cash
}

// CountOutboxEvents returns the number of outbox events of a given type for an aggregate.
func CountOutboxEvents(t *testing.T, env *TestEnv, aggregateID, eventType string) int {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var count int
	err := env.Pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM event_outbox WHERE aggregate_id = $1 AND event_type = $2",
		aggregateID, eventType).Scan(&count)
	if err != nil {
		t.Fatalf("CountOutboxEvents: %v", err)
	}
	return count
}
