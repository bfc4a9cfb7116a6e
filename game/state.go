package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// 轮内阶段，闭合集合，所有流转都在 round.go 里显式切换
type RoundPhase string

const (
	PhaseAwaitingCardPlay RoundPhase = "awaiting_card_play"
	PhaseAuction          RoundPhase = "auction"
	PhaseRoundEnding      RoundPhase = "round_ending"
	PhaseSellingToBank    RoundPhase = "selling_to_bank"
	PhaseRoundComplete    RoundPhase = "round_complete"
)

type GamePhase string

const (
	GamePhaseSetup   GamePhase = "setup"
	GamePhasePlaying GamePhase = "playing"
	GamePhaseEnded   GamePhase = "ended"
)

// BankSaleResult 轮末单笔银行收购记录
type BankSaleResult struct {
	PlayerID string   `json:"playerId"`
	Painting Painting `json:"painting"`
	Value    int      `json:"value"`
}

type RoundState struct {
	RoundNumber             int              `json:"roundNumber"` // 1–4
	CardsPlayedPerArtist    [NumArtists]int  `json:"cardsPlayedPerArtist"`
	CurrentAuctioneerIndex  int              `json:"currentAuctioneerIndex"`
	StartingAuctioneerIndex int              `json:"startingAuctioneerIndex"` // 本轮第一个拍卖人，下一轮顺延一位
	Phase                   RoundPhase       `json:"phase"`
	Auction                 *AuctionState    `json:"auction,omitempty"`           // Phase == auction 时非空
	UnsoldCards             []Card           `json:"unsoldCards,omitempty"`       // Phase == round_ending 时记录仍留在手里的牌
	SellResults             []BankSaleResult `json:"sellResults,omitempty"`       // Phase == selling_to_bank 之后有效
	RoundEndingArtist       *Artist          `json:"roundEndingArtist,omitempty"` // 触发第 5 张规则的画家
}

// Winner 终局结果。平局时 Shared 为 true 并列出所有并列者，不做任意裁定。
type Winner struct {
	PlayerIDs []string `json:"playerIds"`
	Shared    bool     `json:"shared"`
}

// PlayerStanding 终局排名中的一行
type PlayerStanding struct {
	PlayerID      string `json:"playerId"`
	Money         int    `json:"money"`
	PaintingCount int    `json:"paintingCount"`
	Rank          int    `json:"rank"`
}

// GameState 是唯一的规则事实来源。引擎的所有操作都在调用方独占持有的
// 状态上原地修改，不做任何内部加锁，并发调用必须由宿主串行化。
type GameState struct {
	Players     []Player    `json:"players"`
	Deck        []Card      `json:"deck"`
	DiscardPile []Card      `json:"discardPile"`
	Board       GameBoard   `json:"board"`
	Round       RoundState  `json:"round"`
	GamePhase   GamePhase   `json:"gamePhase"`
	Winner      *Winner     `json:"winner,omitempty"`
	EventLog    []GameEvent `json:"eventLog"`

	rng *rand.Rand
}

// NewGame 创建一局新游戏：建牌堆、洗牌、发第 1 轮手牌、初始化资金。
// seed 用于洗牌，宿主通常传时间戳，测试传固定值。
func NewGame(players []Player, seed uint64) (*GameState, error) {
	if len(players) < 3 || len(players) > 5 {
		return nil, fmt.Errorf("玩家数量 %d 不在 3-5 之间: %w", len(players), ErrInvalidArgument)
	}
	seen := make(map[string]bool)
	for i := range players {
		if players[i].ID == "" || seen[players[i].ID] {
			return nil, fmt.Errorf("玩家ID %q 为空或重复: %w", players[i].ID, ErrInvalidArgument)
		}
		seen[players[i].ID] = true
	}

	g := &GameState{
		Players:   make([]Player, len(players)),
		GamePhase: GamePhaseSetup,
		rng:       rand.New(rand.NewSource(seed)),
	}
	copy(g.Players, players)
	for i := range g.Players {
		g.Players[i].Money = StartingMoney
		g.Players[i].Hand = nil
		g.Players[i].Purchases = nil
		g.Players[i].PurchasedThisRound = nil
	}

	g.Deck = ShuffleDeck(CreateDeck(), g.rng)

	hands, remaining, err := DealCards(g.Deck, len(g.Players), 1)
	if err != nil {
		return nil, err
	}
	g.Deck = remaining
	for i := range g.Players {
		g.Players[i].Hand = hands[i]
	}

	g.Round = RoundState{
		RoundNumber:             1,
		CurrentAuctioneerIndex:  0,
		StartingAuctioneerIndex: 0,
		Phase:                   PhaseAwaitingCardPlay,
	}
	g.GamePhase = GamePhasePlaying
	g.appendEvent(EventGameStarted, map[string]interface{}{
		"playerCount": len(g.Players),
	})
	g.appendEvent(EventRoundStarted, map[string]interface{}{
		"round":      1,
		"auctioneer": g.Players[0].ID,
	})
	return g, nil
}

// ActivePlayerIndex 当前待出牌的玩家（即当前拍卖人）
func (g *GameState) ActivePlayerIndex() int {
	return g.Round.CurrentAuctioneerIndex
}

func (g *GameState) playerCount() int {
	return len(g.Players)
}

// nextSeat 顺时针下一个座位
func (g *GameState) nextSeat(idx int) int {
	return (idx + 1) % g.playerCount()
}

// nextSeatWithCards 从 idx 之后顺时针找第一个还有手牌的座位，找不到返回 -1
func (g *GameState) nextSeatWithCards(idx int) int {
	for i := 1; i <= g.playerCount(); i++ {
		seat := (idx + i) % g.playerCount()
		if len(g.Players[seat].Hand) > 0 {
			return seat
		}
	}
	return -1
}

func (g *GameState) checkPlayerIndex(idx int) error {
	if idx < 0 || idx >= g.playerCount() {
		return fmt.Errorf("玩家下标 %d 越界: %w", idx, ErrIllegalAction)
	}
	return nil
}
