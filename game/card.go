package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// 画家枚举，顺序即牌桌上的固定位置（平局时位置靠前者优先，属于游戏规则）
type Artist int

const (
	LiteMetal Artist = iota
	Yoko
	ChristinP
	KarlGitter
	Krypto
)

const NumArtists = 5

var artistNames = [NumArtists]string{"LiteMetal", "Yoko", "ChristinP", "KarlGitter", "Krypto"}

func (a Artist) String() string {
	if a < 0 || int(a) >= NumArtists {
		return "Unknown"
	}
	return artistNames[a]
}

// 拍卖类型
type AuctionType string

const (
	AuctionOpen       AuctionType = "open"
	AuctionOneOffer   AuctionType = "one_offer"
	AuctionHidden     AuctionType = "hidden"
	AuctionFixedPrice AuctionType = "fixed_price"
	AuctionDouble     AuctionType = "double"
)

// 卡牌，创建后不再修改
type Card struct {
	ID          int         `json:"id"`
	Artist      Artist      `json:"artist"`
	AuctionType AuctionType `json:"auctionType"`
	ArtworkID   string      `json:"artworkId"` // 前端素材引用，与规则无关
}

// 每个画家的卡牌构成：open / one_offer / hidden / fixed_price / double
// 合计 12/13/14/15/16 = 70 张，每个画家恰好一张 double
var deckComposition = [NumArtists]map[AuctionType]int{
	LiteMetal:  {AuctionOpen: 3, AuctionOneOffer: 2, AuctionHidden: 3, AuctionFixedPrice: 3, AuctionDouble: 1},
	Yoko:       {AuctionOpen: 3, AuctionOneOffer: 3, AuctionHidden: 3, AuctionFixedPrice: 3, AuctionDouble: 1},
	ChristinP:  {AuctionOpen: 3, AuctionOneOffer: 3, AuctionHidden: 3, AuctionFixedPrice: 4, AuctionDouble: 1},
	KarlGitter: {AuctionOpen: 4, AuctionOneOffer: 3, AuctionHidden: 4, AuctionFixedPrice: 3, AuctionDouble: 1},
	Krypto:     {AuctionOpen: 4, AuctionOneOffer: 4, AuctionHidden: 4, AuctionFixedPrice: 3, AuctionDouble: 1},
}

var auctionTypeOrder = []AuctionType{AuctionOpen, AuctionOneOffer, AuctionHidden, AuctionFixedPrice, AuctionDouble}

const DeckSize = 70

// CreateDeck 生成固定的 70 张牌堆（未洗牌）
func CreateDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	id := 1
	for artist := 0; artist < NumArtists; artist++ {
		for _, at := range auctionTypeOrder {
			for i := 0; i < deckComposition[artist][at]; i++ {
				deck = append(deck, Card{
					ID:          id,
					Artist:      Artist(artist),
					AuctionType: at,
					ArtworkID:   fmt.Sprintf("art_%02d", id),
				})
				id++
			}
		}
	}
	return deck
}

// ShuffleDeck 返回洗过的新牌堆，不修改入参
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	shuffled := make([]Card, len(deck))
	copy(shuffled, deck)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// 每轮每人发牌数量表：cardsToDeal[round][playerCount]
var cardsToDeal = map[int]map[int]int{
	1: {3: 10, 4: 9, 5: 8},
	2: {3: 6, 4: 4, 5: 3},
	3: {3: 6, 4: 4, 5: 3},
	4: {3: 0, 4: 0, 5: 0},
}

// GetCardsToDeal 查表获取每人发牌数量
func GetCardsToDeal(playerCount, round int) (int, error) {
	byCount, ok := cardsToDeal[round]
	if !ok {
		return 0, fmt.Errorf("轮次 %d 不合法: %w", round, ErrInvalidArgument)
	}
	n, ok := byCount[playerCount]
	if !ok {
		return 0, fmt.Errorf("玩家数量 %d 不合法: %w", playerCount, ErrInvalidArgument)
	}
	return n, nil
}

// DealCards 从牌堆顶部依次切出 playerCount 份手牌，返回手牌和剩余牌堆
func DealCards(deck []Card, playerCount, round int) ([][]Card, []Card, error) {
	perPlayer, err := GetCardsToDeal(playerCount, round)
	if err != nil {
		return nil, nil, err
	}
	need := perPlayer * playerCount
	if len(deck) < need {
		return nil, nil, fmt.Errorf("牌堆仅剩 %d 张，需要 %d 张: %w", len(deck), need, ErrInsufficientCards)
	}

	hands := make([][]Card, playerCount)
	offset := 0
	for i := 0; i < playerCount; i++ {
		hand := make([]Card, perPlayer)
		copy(hand, deck[offset:offset+perPlayer])
		hands[i] = hand
		offset += perPlayer
	}
	remaining := make([]Card, len(deck)-need)
	copy(remaining, deck[need:])
	return hands, remaining, nil
}
