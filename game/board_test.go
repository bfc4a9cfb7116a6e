package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankArtistsTieBreakByBoardPosition(t *testing.T) {
	// 牌桌顺序下的出牌数 [4, 2, 4, 1, 3]：两个 4 按位置先后拿第一、第二
	counts := [NumArtists]int{4, 2, 4, 1, 3}
	ranks := RankArtists(counts)

	assert.Equal(t, 1, ranks[LiteMetal].Rank)
	assert.Equal(t, 30, ranks[LiteMetal].Value)
	assert.Equal(t, 2, ranks[ChristinP].Rank)
	assert.Equal(t, 20, ranks[ChristinP].Value)
	assert.Equal(t, 3, ranks[Krypto].Rank)
	assert.Equal(t, 10, ranks[Krypto].Value)
	assert.Equal(t, 0, ranks[Yoko].Rank)
	assert.Equal(t, 0, ranks[Yoko].Value)
	assert.Equal(t, 0, ranks[KarlGitter].Rank)
}

func TestRankArtistsDeterministic(t *testing.T) {
	counts := [NumArtists]int{2, 2, 2, 2, 2}
	first := RankArtists(counts)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, RankArtists(counts))
	}
	// 全部平局时按牌桌位置取前三
	assert.Equal(t, 1, first[LiteMetal].Rank)
	assert.Equal(t, 2, first[Yoko].Rank)
	assert.Equal(t, 3, first[ChristinP].Rank)
	assert.Equal(t, 0, first[KarlGitter].Rank)
	assert.Equal(t, 0, first[Krypto].Rank)
}

func TestRankArtistsZeroCountNeverRanks(t *testing.T) {
	counts := [NumArtists]int{3, 0, 0, 0, 1}
	ranks := RankArtists(counts)
	assert.Equal(t, 1, ranks[LiteMetal].Rank)
	assert.Equal(t, 2, ranks[Krypto].Rank)
	// 出牌数为 0 的画家即使排位靠前也不得分
	for _, artist := range []Artist{Yoko, ChristinP, KarlGitter} {
		assert.Equal(t, 0, ranks[artist].Rank)
		assert.Equal(t, 0, ranks[artist].Value)
	}
}

func TestGetArtistValueCumulative(t *testing.T) {
	var board GameBoard

	// 第 1 轮入榜、第 2 轮掉榜、第 3 轮回榜的完整序列
	board.UpdateBoardWithRoundResults(RankArtists([NumArtists]int{5, 1, 1, 0, 0}), 1)
	require.Equal(t, 30, board.ArtistValues[LiteMetal][0])
	assert.Equal(t, 30, board.GetArtistValue(LiteMetal, 1))

	board.UpdateBoardWithRoundResults(RankArtists([NumArtists]int{0, 3, 2, 1, 0}), 2)
	assert.Equal(t, 0, board.GetArtistValue(LiteMetal, 2), "当轮掉榜应一文不值")

	board.UpdateBoardWithRoundResults(RankArtists([NumArtists]int{2, 3, 3, 0, 0}), 3)
	// 第 3 轮第三名得 10，累计 30 + 0 + 10
	assert.Equal(t, 40, board.GetArtistValue(LiteMetal, 3))
}

func TestUpdateBoardNeverRewritesHistory(t *testing.T) {
	var board GameBoard
	board.UpdateBoardWithRoundResults(RankArtists([NumArtists]int{5, 0, 0, 0, 0}), 1)
	snapshot := board.ArtistValues[LiteMetal][0]

	board.UpdateBoardWithRoundResults(RankArtists([NumArtists]int{0, 5, 0, 0, 0}), 2)
	assert.Equal(t, snapshot, board.ArtistValues[LiteMetal][0])
}

func TestCalculatePaintingValue(t *testing.T) {
	var board GameBoard
	board.UpdateBoardWithRoundResults(RankArtists([NumArtists]int{4, 3, 2, 0, 0}), 1)

	ranked := Painting{Card: Card{ID: 1, Artist: LiteMetal}}
	unranked := Painting{Card: Card{ID: 2, Artist: Krypto}}
	assert.Equal(t, 30, board.CalculatePaintingValue(ranked, 1))
	assert.Equal(t, 0, board.CalculatePaintingValue(unranked, 1))
}
