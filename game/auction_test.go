package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAuctionTestGame 构造一个 4 人对局：p0 持有待测卡牌，其余每人一张
// 占位手牌保证拍卖结束后本轮还能继续
func newAuctionTestGame(t *testing.T, card Card) *GameState {
	t.Helper()
	g := &GameState{
		Players: []Player{
			{ID: "p0", Name: "甲", Money: 100, Hand: []Card{card}},
			{ID: "p1", Name: "乙", Money: 100, Hand: []Card{{ID: 61, Artist: KarlGitter, AuctionType: AuctionOpen}}},
			{ID: "p2", Name: "丙", Money: 100, Hand: []Card{{ID: 62, Artist: KarlGitter, AuctionType: AuctionOpen}}},
			{ID: "p3", Name: "丁", Money: 100, Hand: []Card{{ID: 63, Artist: KarlGitter, AuctionType: AuctionOpen}}},
		},
		GamePhase: GamePhasePlaying,
		Round: RoundState{
			RoundNumber: 1,
			Phase:       PhaseAwaitingCardPlay,
		},
	}
	return g
}

func TestOpenAuctionFlow(t *testing.T) {
	card := Card{ID: 1, Artist: Yoko, AuctionType: AuctionOpen}
	g := newAuctionTestGame(t, card)
	now := time.Now()

	require.NoError(t, g.PlayCard(0, 0))
	require.Equal(t, PhaseAuction, g.Round.Phase)

	// 无人出价时拍卖人不能先出价
	assert.ErrorIs(t, g.PlaceBid(0, 10, now), ErrIllegalAction)

	require.NoError(t, g.PlaceBid(1, 10, now))
	// 领先者不能给自己加价
	assert.ErrorIs(t, g.PlaceBid(1, 20, now), ErrIllegalAction)
	// 出价必须高于当前价
	assert.ErrorIs(t, g.PlaceBid(2, 10, now), ErrIllegalAction)
	// 超出余额
	assert.ErrorIs(t, g.PlaceBid(2, 101, now), ErrInsufficientFunds)

	require.NoError(t, g.PlaceBid(2, 20, now))
	// 有人出价后拍卖人可以参与加价
	require.NoError(t, g.PlaceBid(0, 25, now))

	// 领先者之外的所有人弃权后落槌
	require.NoError(t, g.PassBid(1))
	require.NoError(t, g.PassBid(2))
	require.NoError(t, g.PassBid(3))

	// 拍卖人买下自己的拍品，货款付给银行
	assert.Equal(t, 75, g.Players[0].Money)
	assert.Equal(t, 375, TotalMoney(g.Players))
	require.Len(t, g.Players[0].Purchases, 1)
	assert.Equal(t, card.ID, g.Players[0].Purchases[0].Card.ID)
	assert.Equal(t, 25, g.Players[0].Purchases[0].PurchasePrice)
	assert.Empty(t, g.Board.PlayedCards[Yoko])

	// 回到出牌阶段，拍卖权交给下一位
	assert.Equal(t, PhaseAwaitingCardPlay, g.Round.Phase)
	assert.Equal(t, 1, g.Round.CurrentAuctioneerIndex)
}

func TestOpenAuctionTimerExpiry(t *testing.T) {
	card := Card{ID: 2, Artist: Yoko, AuctionType: AuctionOpen}
	g := newAuctionTestGame(t, card)
	now := time.Now()

	require.NoError(t, g.PlayCard(0, 0))
	require.NoError(t, g.PlaceBid(1, 10, now))

	// 倒计时未到不落槌
	require.NoError(t, g.TickAuction(now.Add(OpenBidCountdown/2)))
	assert.Equal(t, PhaseAuction, g.Round.Phase)

	require.NoError(t, g.TickAuction(now.Add(OpenBidCountdown+time.Second)))
	assert.Equal(t, PhaseAwaitingCardPlay, g.Round.Phase)
	assert.Equal(t, 90, g.Players[1].Money)
	assert.Equal(t, 110, g.Players[0].Money)
	require.Len(t, g.Players[1].Purchases, 1)
}

func TestOpenAuctionNoBidsFreeToAuctioneer(t *testing.T) {
	card := Card{ID: 3, Artist: Yoko, AuctionType: AuctionOpen}
	g := newAuctionTestGame(t, card)

	require.NoError(t, g.PlayCard(0, 0))
	require.NoError(t, g.PassBid(1))
	require.NoError(t, g.PassBid(2))
	require.NoError(t, g.PassBid(3))

	assert.Equal(t, 400, TotalMoney(g.Players))
	require.Len(t, g.Players[0].Purchases, 1)
	assert.Equal(t, 0, g.Players[0].Purchases[0].PurchasePrice)
}

func TestOneOfferAllPass(t *testing.T) {
	card := Card{ID: 4, Artist: ChristinP, AuctionType: AuctionOneOffer}
	g := newAuctionTestGame(t, card)

	require.NoError(t, g.PlayCard(0, 0))
	// 从拍卖人左手边开始，p2 还没轮到
	assert.ErrorIs(t, g.PassBid(2), ErrIllegalAction)

	require.NoError(t, g.PassBid(1))
	require.NoError(t, g.PassBid(2))
	// 裁决环节未到
	assert.ErrorIs(t, g.AcceptHighBid(0), ErrIllegalAction)
	require.NoError(t, g.PassBid(3))

	// 全员弃权后只有拍卖人可以裁决
	assert.ErrorIs(t, g.AcceptHighBid(1), ErrIllegalAction)
	require.NoError(t, g.AcceptHighBid(0))

	assert.Equal(t, 400, TotalMoney(g.Players))
	require.Len(t, g.Players[0].Purchases, 1)
	assert.Equal(t, 0, g.Players[0].Purchases[0].PurchasePrice)
}

func TestOneOfferAllPassSelfPurchase(t *testing.T) {
	card := Card{ID: 5, Artist: ChristinP, AuctionType: AuctionOneOffer}
	g := newAuctionTestGame(t, card)

	require.NoError(t, g.PlayCard(0, 0))
	require.NoError(t, g.PassBid(1))
	require.NoError(t, g.PassBid(2))
	require.NoError(t, g.PassBid(3))

	// 全员弃权时拍卖人可按任意 >= 0 的价格自购，付给银行
	require.NoError(t, g.SelfPurchase(0, 7))
	assert.Equal(t, 93, g.Players[0].Money)
	assert.Equal(t, 393, TotalMoney(g.Players))
	require.Len(t, g.Players[0].Purchases, 1)
	assert.Equal(t, 7, g.Players[0].Purchases[0].PurchasePrice)
}

func TestOneOfferBidAndDecision(t *testing.T) {
	card := Card{ID: 6, Artist: ChristinP, AuctionType: AuctionOneOffer}
	g := newAuctionTestGame(t, card)

	require.NoError(t, g.PlayCard(0, 0))
	require.NoError(t, g.PlaceBid(1, 10, time.Time{}))
	// 后续出价必须更高
	assert.ErrorIs(t, g.PlaceBid(2, 10, time.Time{}), ErrIllegalAction)
	require.NoError(t, g.PlaceBid(2, 11, time.Time{}))
	require.NoError(t, g.PassBid(3))

	// 自购必须至少压过最高价 1
	assert.ErrorIs(t, g.SelfPurchase(0, 11), ErrIllegalAction)

	require.NoError(t, g.AcceptHighBid(0))
	assert.Equal(t, 89, g.Players[2].Money)
	assert.Equal(t, 111, g.Players[0].Money)
	assert.Equal(t, 400, TotalMoney(g.Players))
	require.Len(t, g.Players[2].Purchases, 1)
}

func TestOneOfferSelfPurchaseOutbids(t *testing.T) {
	card := Card{ID: 7, Artist: ChristinP, AuctionType: AuctionOneOffer}
	g := newAuctionTestGame(t, card)

	require.NoError(t, g.PlayCard(0, 0))
	require.NoError(t, g.PlaceBid(1, 10, time.Time{}))
	require.NoError(t, g.PassBid(2))
	require.NoError(t, g.PassBid(3))

	require.NoError(t, g.SelfPurchase(0, 12))
	// 自购付给银行
	assert.Equal(t, 88, g.Players[0].Money)
	assert.Equal(t, 100, g.Players[1].Money)
	assert.Equal(t, 388, TotalMoney(g.Players))
}

func TestHiddenAuctionTieBreak(t *testing.T) {
	card := Card{ID: 8, Artist: Krypto, AuctionType: AuctionHidden}
	g := newAuctionTestGame(t, card)

	require.NoError(t, g.PlayCard(0, 0))
	require.NoError(t, g.SubmitHiddenBid(0, 5))
	// 每人只能交一次暗标
	assert.ErrorIs(t, g.SubmitHiddenBid(0, 9), ErrIllegalAction)
	require.NoError(t, g.SubmitHiddenBid(1, 8))
	require.NoError(t, g.SubmitHiddenBid(2, 8))
	require.NoError(t, g.SubmitHiddenBid(3, 3))

	// 最高价并列时，拍卖人左手边起顺时针最先的座位得标
	require.Len(t, g.Players[1].Purchases, 1)
	assert.Empty(t, g.Players[2].Purchases)
	assert.Equal(t, 92, g.Players[1].Money)
	assert.Equal(t, 108, g.Players[0].Money)
	assert.Equal(t, 400, TotalMoney(g.Players))
}

func TestHiddenAuctionAllZero(t *testing.T) {
	card := Card{ID: 9, Artist: Krypto, AuctionType: AuctionHidden}
	g := newAuctionTestGame(t, card)

	require.NoError(t, g.PlayCard(0, 0))
	for i := 0; i < 4; i++ {
		require.NoError(t, g.SubmitHiddenBid(i, 0))
	}

	// 全员出 0 视为流拍，免费归拍卖人
	assert.Equal(t, 400, TotalMoney(g.Players))
	require.Len(t, g.Players[0].Purchases, 1)
	assert.Equal(t, 0, g.Players[0].Purchases[0].PurchasePrice)
}

func TestFixedPriceAuction(t *testing.T) {
	card := Card{ID: 10, Artist: LiteMetal, AuctionType: AuctionFixedPrice}
	g := newAuctionTestGame(t, card)

	require.NoError(t, g.PlayCard(0, 0))
	// 只有拍卖人可以定价，且定价不能超过自己的余额
	assert.ErrorIs(t, g.SetFixedPrice(1, 30), ErrIllegalAction)
	assert.ErrorIs(t, g.SetFixedPrice(0, 150), ErrInsufficientFunds)
	// 定价前不能购买
	assert.ErrorIs(t, g.BuyAtFixedPrice(1), ErrIllegalAction)

	require.NoError(t, g.SetFixedPrice(0, 30))
	assert.ErrorIs(t, g.SetFixedPrice(0, 40), ErrIllegalAction)

	// 轮到 p1，p2 不能抢买
	assert.ErrorIs(t, g.BuyAtFixedPrice(2), ErrIllegalAction)
	require.NoError(t, g.PassBid(1))
	require.NoError(t, g.BuyAtFixedPrice(2))

	assert.Equal(t, 70, g.Players[2].Money)
	assert.Equal(t, 130, g.Players[0].Money)
	assert.Equal(t, 400, TotalMoney(g.Players))
	require.Len(t, g.Players[2].Purchases, 1)
	assert.Equal(t, 30, g.Players[2].Purchases[0].PurchasePrice)
}

func TestFixedPriceAllPassForcesSelfPurchase(t *testing.T) {
	card := Card{ID: 11, Artist: LiteMetal, AuctionType: AuctionFixedPrice}
	g := newAuctionTestGame(t, card)

	require.NoError(t, g.PlayCard(0, 0))
	require.NoError(t, g.SetFixedPrice(0, 20))
	require.NoError(t, g.PassBid(1))
	require.NoError(t, g.PassBid(2))
	require.NoError(t, g.PassBid(3))

	// 全员放弃：拍卖人被迫按定价自购，货款付给银行
	assert.Equal(t, 80, g.Players[0].Money)
	assert.Equal(t, 380, TotalMoney(g.Players))
	require.Len(t, g.Players[0].Purchases, 1)
	assert.Equal(t, 20, g.Players[0].Purchases[0].PurchasePrice)
}

func TestDoubleAuctionNoSecondCard(t *testing.T) {
	card := Card{ID: 12, Artist: Yoko, AuctionType: AuctionDouble}
	g := newAuctionTestGame(t, card)

	require.NoError(t, g.PlayCard(0, 0))
	// 跟牌机会从拍卖人自己开始
	assert.ErrorIs(t, g.DeclineSecondCard(1), ErrIllegalAction)

	require.NoError(t, g.DeclineSecondCard(0))
	require.NoError(t, g.DeclineSecondCard(1))
	require.NoError(t, g.DeclineSecondCard(2))
	require.NoError(t, g.DeclineSecondCard(3))

	// 无人跟牌：没有交易，不付钱，牌不进任何人的收藏，留在桌面
	assert.Equal(t, 400, TotalMoney(g.Players))
	for i := range g.Players {
		assert.Empty(t, g.Players[i].Purchases)
	}
	require.Len(t, g.Board.PlayedCards[Yoko], 1)
	assert.Equal(t, card.ID, g.Board.PlayedCards[Yoko][0].ID)
	assert.Equal(t, PhaseAwaitingCardPlay, g.Round.Phase)
}

func TestDoubleAuctionWithEmbedded(t *testing.T) {
	card := Card{ID: 13, Artist: Yoko, AuctionType: AuctionDouble}
	g := newAuctionTestGame(t, card)
	// p1 手里补一张同画家的 open 牌和一张异画家的牌
	second := Card{ID: 14, Artist: Yoko, AuctionType: AuctionOpen}
	wrongArtist := Card{ID: 15, Artist: Krypto, AuctionType: AuctionOpen}
	g.Players[1].Hand = append(g.Players[1].Hand, second, wrongArtist)

	require.NoError(t, g.PlayCard(0, 0))
	require.NoError(t, g.DeclineSecondCard(0))

	// 跟牌必须同画家且不能又是 double
	assert.ErrorIs(t, g.OfferSecondCard(1, 2), ErrIllegalAction)
	require.NoError(t, g.OfferSecondCard(1, 1))

	inner := g.Round.Auction.Double.Inner
	require.NotNil(t, inner)
	assert.Equal(t, AuctionOpen, inner.Kind)
	assert.Equal(t, 1, inner.AuctioneerIndex, "跟牌者成为内嵌拍卖的拍卖人")

	// 内嵌 open 拍卖
	require.NoError(t, g.PlaceBid(2, 10, time.Time{}))
	require.NoError(t, g.PlaceBid(0, 15, time.Time{}))
	require.NoError(t, g.PassBid(1))
	require.NoError(t, g.PassBid(2))
	require.NoError(t, g.PassBid(3))

	// 赢家一次付款拿走两张牌，货款付给跟牌者
	assert.Equal(t, 85, g.Players[0].Money)
	assert.Equal(t, 115, g.Players[1].Money)
	assert.Equal(t, 400, TotalMoney(g.Players))
	require.Len(t, g.Players[0].Purchases, 2)
	assert.Equal(t, 15, g.Players[0].Purchases[0].PurchasePrice)
	assert.Equal(t, 0, g.Players[0].Purchases[1].PurchasePrice)
	assert.Empty(t, g.Board.PlayedCards[Yoko])
}

func TestDoubleAuctionRejectsDoubleSecondCard(t *testing.T) {
	card := Card{ID: 16, Artist: Yoko, AuctionType: AuctionDouble}
	g := newAuctionTestGame(t, card)
	g.Players[0].Hand = append(g.Players[0].Hand, Card{ID: 17, Artist: Yoko, AuctionType: AuctionDouble})

	require.NoError(t, g.PlayCard(0, 0))
	assert.ErrorIs(t, g.OfferSecondCard(0, 0), ErrIllegalAction)
}

func TestAuctionActionsRejectedOutsideAuctionPhase(t *testing.T) {
	card := Card{ID: 18, Artist: Yoko, AuctionType: AuctionOpen}
	g := newAuctionTestGame(t, card)

	assert.ErrorIs(t, g.PlaceBid(1, 10, time.Time{}), ErrIllegalAction)
	assert.ErrorIs(t, g.PassBid(1), ErrIllegalAction)
	assert.ErrorIs(t, g.SubmitHiddenBid(1, 10), ErrIllegalAction)
	assert.ErrorIs(t, g.SetFixedPrice(0, 10), ErrIllegalAction)
	assert.ErrorIs(t, g.BuyAtFixedPrice(1), ErrIllegalAction)
	assert.ErrorIs(t, g.OfferSecondCard(0, 0), ErrIllegalAction)
}
