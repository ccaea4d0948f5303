//go:build integration

package integration

import (
	"net/http"
	"sync"
	"testing"

	"github.com/cardroom/platform/test/integration/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoin_Success(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, userID := env.FundUser("joiner@test.com", "securepass123", 500)
	gameID := env.CreateGame(token, "one_deck")

	resp := env.POST("/participations", map[string]interface{}{
		"game_id": gameID,
		"cash":    100,
	}, token)
	testutil.AssertStatus(t, resp, http.StatusCreated)

	var p struct {
		ID       uuid.UUID `json:"id"`
		Position int       `json:"position"`
		Status   string    `json:"status"`
		Cash     int64     `json:"cash"`
		Bet      int64     `json:"bet"`
	}
	testutil.DecodeJSON(t, resp, &p)

	assert.Equal(t, 0, p.Position)
	assert.Equal(t, "playing", p.Status)
	assert.Equal(t, int64(100), p.Cash)
	assert.Equal(t, int64(0), p.Bet)

	// Stake moved out of the user's balance.
	assert.Equal(t, int64(400), testutil.UserCash(t, env, userID))
}

func TestJoin_PositionsIncrement(t *testing.T) {
	env := testutil.NewTestEnv(t)
	tokenA, _ := env.FundUser("seat-a@test.com", "securepass123", 500)
	tokenB, _ := env.FundUser("seat-b@test.com", "securepass123", 500)
	gameID := env.CreateGame(tokenA, "one_deck")

	env.JoinGame(tokenA, gameID, 100)

	resp := env.POST("/participations", map[string]interface{}{
		"game_id": gameID,
		"cash":    50,
	}, tokenB)
	testutil.AssertStatus(t, resp, http.StatusCreated)

	var p struct {
		Position int `json:"position"`
	}
	testutil.DecodeJSON(t, resp, &p)
	assert.Equal(t, 1, p.Position)
}

func TestJoin_InsufficientFunds(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.FundUser("broke@test.com", "securepass123", 50)
	gameID := env.CreateGame(token, "one_deck")

	resp := env.POST("/participations", map[string]interface{}{
		"game_id": gameID,
		"cash":    100,
	}, token)
	defer resp.Body.Close()

	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	testutil.AssertErrorCode(t, resp, "INSUFFICIENT_FUNDS")
}

func TestJoin_GameNotFound(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.FundUser("nogame@test.com", "securepass123", 500)

	resp := env.POST("/participations", map[string]interface{}{
		"game_id": uuid.New(),
		"cash":    100,
	}, token)
	defer resp.Body.Close()

	testutil.AssertStatus(t, resp, http.StatusNotFound)
}

func TestJoin_PlayingGameRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)
	tokenA, _ := env.FundUser("solo@test.com", "securepass123", 500)
	tokenB, _ := env.FundUser("late@test.com", "securepass123", 500)
	gameID := env.CreateGame(tokenA, "one_deck")

	pID := env.JoinGame(tokenA, gameID, 100)
	resp := env.PlaceBet(tokenA, pID, 10)
	testutil.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	// Game is now playing; the table is closed.
	resp = env.POST("/participations", map[string]interface{}{
		"game_id": gameID,
		"cash":    100,
	}, tokenB)
	defer resp.Body.Close()

	testutil.AssertStatus(t, resp, http.StatusConflict)
	testutil.AssertErrorCode(t, resp, "INVALID_STATE")
}

func TestBet_ExceedsSeatCash(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.FundUser("overbet@test.com", "securepass123", 500)
	gameID := env.CreateGame(token, "one_deck")
	pID := env.JoinGame(token, gameID, 100)

	resp := env.PlaceBet(token, pID, 200)
	defer resp.Body.Close()

	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	testutil.AssertErrorCode(t, resp, "INSUFFICIENT_FUNDS")
}

func TestBet_ZeroRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.FundUser("zerobet@test.com", "securepass123", 500)
	gameID := env.CreateGame(token, "one_deck")
	pID := env.JoinGame(token, gameID, 100)

	resp := env.PlaceBet(token, pID, 0)
	defer resp.Body.Close()

	testutil.AssertStatus(t, resp, http.StatusBadRequest)
}

func TestBet_OtherUsersSeatRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)
	tokenA, _ := env.FundUser("owner@test.com", "securepass123", 500)
	tokenB, _ := env.FundUser("intruder@test.com", "securepass123", 500)
	gameID := env.CreateGame(tokenA, "one_deck")
	pID := env.JoinGame(tokenA, gameID, 100)

	resp := env.PlaceBet(tokenB, pID, 10)
	defer resp.Body.Close()

	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
}

func TestQuit_SingleSeatFinishesGame(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.FundUser("quitter@test.com", "securepass123", 500)
	gameID := env.CreateGame(token, "one_deck")
	pID := env.JoinGame(token, gameID, 100)

	resp := env.AuthDELETE("/participations/"+pID.String(), token)
	defer resp.Body.Close()
	testutil.AssertStatus(t, resp, http.StatusNoContent)

	status, _ := testutil.GameState(t, env, gameID)
	assert.Equal(t, "finished", status)
	assert.Equal(t, 1, testutil.CountOutboxEvents(t, env, gameID.String(), "cardroom.game.finished"))
}

func TestQuit_RemainingSeatKeepsGameReady(t *testing.T) {
	env := testutil.NewTestEnv(t)
	tokenA, _ := env.FundUser("stay@test.com", "securepass123", 500)
	tokenB, _ := env.FundUser("leave@test.com", "securepass123", 500)
	gameID := env.CreateGame(tokenA, "one_deck")

	env.JoinGame(tokenA, gameID, 100)
	pB := env.JoinGame(tokenB, gameID, 100)

	resp := env.AuthDELETE("/participations/"+pB.String(), tokenB)
	defer resp.Body.Close()
	testutil.AssertStatus(t, resp, http.StatusNoContent)

	status, _ := testutil.GameState(t, env, gameID)
	assert.Equal(t, "ready", status)
}

// When the quitter was the only seat without a bet, the quit completes the
// table and the round must start: status playing, hands_played incremented,
// cards dealt to the remaining seat and the dealer in the same transaction.
func TestQuit_LastNonBettorStartsRound(t *testing.T) {
	env := testutil.NewTestEnv(t)
	tokenA, _ := env.FundUser("bettor@test.com", "securepass123", 500)
	tokenB, _ := env.FundUser("walkout@test.com", "securepass123", 500)
	gameID := env.CreateGame(tokenA, "one_deck")

	pA := env.JoinGame(tokenA, gameID, 100)
	pB := env.JoinGame(tokenB, gameID, 100)

	resp := env.PlaceBet(tokenA, pA, 10)
	testutil.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	status, _ := testutil.GameState(t, env, gameID)
	require.Equal(t, "ready", status)

	resp = env.AuthDELETE("/participations/"+pB.String(), tokenB)
	defer resp.Body.Close()
	testutil.AssertStatus(t, resp, http.StatusNoContent)

	status, hands := testutil.GameState(t, env, gameID)
	assert.Equal(t, "playing", status)
	assert.Equal(t, 1, hands)

	// Only the remaining seat and the dealer are dealt to.
	assert.Equal(t, 2, testutil.CountCards(t, env, gameID, "player_hand"))
	assert.Equal(t, 2, testutil.CountCards(t, env, gameID, "dealer_hand"))
	assert.Equal(t, 48, testutil.CountCards(t, env, gameID, "deck"))
	assert.Equal(t, 1, testutil.CountOutboxEvents(t, env, gameID.String(), "cardroom.round.started"))
}

func TestQuit_Twice(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.FundUser("doublequit@test.com", "securepass123", 500)
	gameID := env.CreateGame(token, "one_deck")
	pID := env.JoinGame(token, gameID, 100)

	resp := env.AuthDELETE("/participations/"+pID.String(), token)
	resp.Body.Close()

	// The game finished when its only seat quit, so a second quit is
	// rejected by game state.
	resp = env.AuthDELETE("/participations/"+pID.String(), token)
	defer resp.Body.Close()
	testutil.AssertStatus(t, resp, http.StatusConflict)
}

func TestGetHand_EmptyBeforeDeal(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.FundUser("nohand@test.com", "securepass123", 500)
	gameID := env.CreateGame(token, "one_deck")
	pID := env.JoinGame(token, gameID, 100)

	resp := env.AuthGET("/participations/"+pID.String()+"/hand", token)
	testutil.AssertStatus(t, resp, http.StatusOK)

	var hand []struct {
		ID uuid.UUID `json:"id"`
	}
	testutil.DecodeJSON(t, resp, &hand)
	assert.Empty(t, hand)
}

// Full round: two funded users join a one_deck game, both bet, the game
// transitions to playing and deals two cards to each seat plus the dealer.
func TestRound_FullDealFlow(t *testing.T) {
	env := testutil.NewTestEnv(t)
	tokenA, _ := env.FundUser("round-a@test.com", "securepass123", 500)
	tokenB, _ := env.FundUser("round-b@test.com", "securepass123", 500)
	gameID := env.CreateGame(tokenA, "one_deck")

	pA := env.JoinGame(tokenA, gameID, 100)
	pB := env.JoinGame(tokenB, gameID, 50)

	// First bet: the other seat has not bet yet, table stays ready.
	resp := env.PlaceBet(tokenA, pA, 10)
	testutil.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	status, hands := testutil.GameState(t, env, gameID)
	require.Equal(t, "ready", status)
	require.Equal(t, 0, hands)
	require.Equal(t, 52, testutil.CountCards(t, env, gameID, "deck"))

	// Second bet completes the table and triggers the deal.
	resp = env.PlaceBet(tokenB, pB, 10)
	testutil.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	status, hands = testutil.GameState(t, env, gameID)
	assert.Equal(t, "playing", status)
	assert.Equal(t, 1, hands)

	assert.Equal(t, 4, testutil.CountCards(t, env, gameID, "player_hand"))
	assert.Equal(t, 2, testutil.CountCards(t, env, gameID, "dealer_hand"))
	assert.Equal(t, 46, testutil.CountCards(t, env, gameID, "deck"))

	assert.Equal(t, 1, testutil.CountOutboxEvents(t, env, gameID.String(), "cardroom.round.started"))

	// Each seat sees exactly its two cards.
	resp = env.AuthGET("/participations/"+pA.String()+"/hand", tokenA)
	testutil.AssertStatus(t, resp, http.StatusOK)
	var hand []struct {
		Location string `json:"location"`
		Position int    `json:"position"`
	}
	testutil.DecodeJSON(t, resp, &hand)
	require.Len(t, hand, 2)
	assert.Equal(t, "player_hand", hand[0].Location)
	assert.Equal(t, 0, hand[0].Position)
	assert.Equal(t, 1, hand[1].Position)
}

// Concurrent final bets must start exactly one round. The game row lock
// serializes the two requests; whichever commits second sees the dealer
// hand already dealt and must not deal again.
func TestRound_ConcurrentBetsStartOneRound(t *testing.T) {
	env := testutil.NewTestEnv(t)
	tokenA, _ := env.FundUser("race-a@test.com", "securepass123", 500)
	tokenB, _ := env.FundUser("race-b@test.com", "securepass123", 500)
	gameID := env.CreateGame(tokenA, "one_deck")

	pA := env.JoinGame(tokenA, gameID, 100)
	pB := env.JoinGame(tokenB, gameID, 100)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		resp := env.PlaceBet(tokenA, pA, 10)
		resp.Body.Close()
	}()
	go func() {
		defer wg.Done()
		resp := env.PlaceBet(tokenB, pB, 10)
		resp.Body.Close()
	}()
	wg.Wait()

	status, hands := testutil.GameState(t, env, gameID)
	assert.Equal(t, "playing", status)
	assert.Equal(t, 1, hands)

	// Exactly one deal: 2 cards per seat, 2 for the dealer, 46 left.
	assert.Equal(t, 4, testutil.CountCards(t, env, gameID, "player_hand"))
	assert.Equal(t, 2, testutil.CountCards(t, env, gameID, "dealer_hand"))
	assert.Equal(t, 46, testutil.CountCards(t, env, gameID, "deck"))
	assert.Equal(t, 1, testutil.CountOutboxEvents(t, env, gameID.String(), "cardroom.round.started"))
}

func TestListMine(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.FundUser("mine@test.com", "securepass123", 500)
	gameA := env.CreateGame(token, "one_deck")
	gameB := env.CreateGame(token, "two_decks")

	env.JoinGame(token, gameA, 100)
	env.JoinGame(token, gameB, 100)

	resp := env.AuthGET("/participations", token)
	testutil.AssertStatus(t, resp, http.StatusOK)

	var participations []struct {
		ID uuid.UUID `json:"id"`
	}
	testutil.DecodeJSON(t, resp, &participations)
	require.Len(t, participations, 2)
}

func TestGetParticipation_OtherUserRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)
	tokenA, _ := env.FundUser("private@test.com", "securepass123", 500)
	tokenB, _ := env.FundUser("snoop@test.com", "securepass123", 500)
	gameID := env.CreateGame(tokenA, "one_deck")
	pID := env.JoinGame(tokenA, gameID, 100)

	resp := env.AuthGET("/participations/"+pID.String(), tokenB)
	defer resp.Body.Close()

	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
}
