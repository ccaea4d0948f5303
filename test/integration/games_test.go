//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/cardroom/platform/test/integration/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGame_OneDeck(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterUser("dealer1@test.com", "securepass123")

	resp := env.POST("/games", map[string]string{"variant": "one_deck"}, token)
	testutil.AssertStatus(t, resp, http.StatusCreated)

	var game struct {
		ID          string `json:"id"`
		Variant     string `json:"variant"`
		Status      string `json:"status"`
		HandsPlayed int    `json:"hands_played"`
		Bank        int64  `json:"bank"`
	}
	testutil.DecodeJSON(t, resp, &game)

	assert.Equal(t, "one_deck", game.Variant)
	assert.Equal(t, "ready", game.Status)
	assert.Equal(t, 0, game.HandsPlayed)
	assert.Equal(t, int64(1000), game.Bank)
}

func TestCreateGame_SeedsShuffledDeck(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterUser("dealer2@test.com", "securepass123")

	gameID := env.CreateGame(token, "one_deck")
	assert.Equal(t, 52, testutil.CountCards(t, env, gameID, "deck"))
}

func TestCreateGame_TwoDecksSeeds104(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterUser("dealer3@test.com", "securepass123")

	gameID := env.CreateGame(token, "two_decks")
	assert.Equal(t, 104, testutil.CountCards(t, env, gameID, "deck"))
}

func TestCreateGame_InvalidVariant(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterUser("dealer4@test.com", "securepass123")

	resp := env.POST("/games", map[string]string{"variant": "six_decks"}, token)
	defer resp.Body.Close()

	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	testutil.AssertErrorCode(t, resp, "VALIDATION_ERROR")
}

func TestGetGame(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterUser("viewer@test.com", "securepass123")
	gameID := env.CreateGame(token, "one_deck")

	resp := env.AuthGET("/games/"+gameID.String(), token)
	testutil.AssertStatus(t, resp, http.StatusOK)

	var game struct {
		ID string `json:"id"`
	}
	testutil.DecodeJSON(t, resp, &game)
	assert.Equal(t, gameID.String(), game.ID)
}

func TestGetGame_NotFound(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterUser("lost@test.com", "securepass123")

	resp := env.AuthGET("/games/00000000-0000-0000-0000-000000000000", token)
	defer resp.Body.Close()

	testutil.AssertStatus(t, resp, http.StatusNotFound)
	testutil.AssertErrorCode(t, resp, "NOT_FOUND")
}

func TestListGames(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterUser("lister@test.com", "securepass123")

	env.CreateGame(token, "one_deck")
	env.CreateGame(token, "two_decks")

	resp := env.AuthGET("/games", token)
	testutil.AssertStatus(t, resp, http.StatusOK)

	var games []struct {
		ID string `json:"id"`
	}
	testutil.DecodeJSON(t, resp, &games)
	require.Len(t, games, 2)
}

func TestCreateGame_OutboxEvent(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterUser("events@test.com", "securepass123")

	gameID := env.CreateGame(token, "one_deck")
	assert.Equal(t, 1, testutil.CountOutboxEvents(t, env, gameID.String(), "cardroom.game.created"))
}
