package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGameStateHealthy(t *testing.T) {
	g, err := NewGame([]Player{
		{ID: "p0"}, {ID: "p1"}, {ID: "p2"}, {ID: "p3"},
	}, 3)
	require.NoError(t, err)
	assert.NoError(t, g.ValidateGameState())
}

func TestValidateGameStateNegativeMoney(t *testing.T) {
	g := newRoundTestGame(t)
	g.Players[1].Money = -1
	assert.ErrorIs(t, g.ValidateGameState(), ErrInvalidState)
}

func TestValidateGameStateBadRound(t *testing.T) {
	g := newRoundTestGame(t)
	g.Round.RoundNumber = 5
	assert.ErrorIs(t, g.ValidateGameState(), ErrInvalidState)
}

func TestValidateGameStateDuplicateCard(t *testing.T) {
	g := newRoundTestGame(t)
	// 同一张牌同时出现在牌堆和桌面
	g.Board.PlayedCards[Yoko] = append(g.Board.PlayedCards[Yoko], g.Deck[0])
	assert.ErrorIs(t, g.ValidateGameState(), ErrInvalidState)
}

func TestValidateGameStateMissingCard(t *testing.T) {
	g := newRoundTestGame(t)
	g.Deck = g.Deck[1:]
	assert.ErrorIs(t, g.ValidateGameState(), ErrInvalidState)
}

func TestValidateGameStateBadArtistValue(t *testing.T) {
	g := newRoundTestGame(t)
	g.Board.ArtistValues[Yoko][0] = 15
	assert.ErrorIs(t, g.ValidateGameState(), ErrInvalidState)
}

func TestValidateGameStatePhaseMismatch(t *testing.T) {
	g := newRoundTestGame(t)
	g.Round.Phase = PhaseAuction // 没有对应的拍卖状态
	assert.ErrorIs(t, g.ValidateGameState(), ErrInvalidState)
}
