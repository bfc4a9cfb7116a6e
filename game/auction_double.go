package game

import "fmt"

// double 拍卖：从拍卖人自己开始按顺时针，每人一次机会跟出一张同画家的
// 第二张牌（不能又是 double）。有人跟牌后，两张牌按第二张牌上印的拍卖
// 类型进入内嵌拍卖，跟牌者成为内嵌拍卖的拍卖人并收取货款；赢家一次付款
// 拿走两张牌。无人跟牌则本次 double 不产生任何交易，卡牌留在桌面。

type DoubleAuction struct {
	FirstCard  Card          `json:"firstCard"`
	TurnIndex  int           `json:"turnIndex"`
	Declined   []bool        `json:"declined"`
	SecondCard *Card         `json:"secondCard,omitempty"`
	OfferedBy  int           `json:"offeredBy"` // -1 表示尚无人跟牌
	Inner      *AuctionState `json:"inner,omitempty"`
}

func newDoubleAuction(card Card, auctioneerIndex, playerCount int) *DoubleAuction {
	return &DoubleAuction{
		FirstCard: card,
		TurnIndex: auctioneerIndex, // 拍卖人优先获得跟牌机会
		Declined:  make([]bool, playerCount),
		OfferedBy: -1,
	}
}

func (g *GameState) checkDoubleOfferTurn(a *AuctionState, playerIndex int) error {
	d := a.Double
	if d.Inner != nil {
		return fmt.Errorf("已有人跟牌，跟牌环节结束: %w", ErrIllegalAction)
	}
	if playerIndex != d.TurnIndex {
		return fmt.Errorf("还没轮到玩家 %d 决定是否跟牌: %w", playerIndex, ErrIllegalAction)
	}
	return nil
}

func (g *GameState) offerSecondCard(a *AuctionState, playerIndex, handIndex int) error {
	if err := g.checkDoubleOfferTurn(a, playerIndex); err != nil {
		return err
	}
	d := a.Double
	player := &g.Players[playerIndex]
	if handIndex < 0 || handIndex >= len(player.Hand) {
		return fmt.Errorf("手牌下标 %d 越界: %w", handIndex, ErrIllegalAction)
	}
	card := player.Hand[handIndex]
	if card.Artist != d.FirstCard.Artist {
		return fmt.Errorf("跟牌必须与 %s 同画家，实际是 %s: %w", d.FirstCard.Artist, card.Artist, ErrIllegalAction)
	}
	if card.AuctionType == AuctionDouble {
		return fmt.Errorf("跟牌不能又是 double: %w", ErrIllegalAction)
	}

	player.removeHandCard(handIndex)
	g.Board.PlayedCards[card.Artist] = append(g.Board.PlayedCards[card.Artist], card)
	d.SecondCard = &card
	d.OfferedBy = playerIndex
	// 跟牌者成为内嵌拍卖的拍卖人
	d.Inner = newAuction(card, playerIndex, g.playerCount())

	g.appendEvent(EventSecondCardOffered, map[string]interface{}{
		"player":      player.ID,
		"cardId":      card.ID,
		"auctionType": string(card.AuctionType),
	})
	return nil
}

func (g *GameState) declineSecondCard(a *AuctionState, playerIndex int) error {
	if err := g.checkDoubleOfferTurn(a, playerIndex); err != nil {
		return err
	}
	d := a.Double
	d.Declined[playerIndex] = true
	g.appendEvent(EventSecondCardDeclined, map[string]interface{}{
		"player": g.Players[playerIndex].ID,
		"cardId": d.FirstCard.ID,
	})

	n := g.playerCount()
	for i := 1; i <= n; i++ {
		seat := (d.TurnIndex + i) % n
		if d.Declined[seat] {
			continue
		}
		d.TurnIndex = seat
		return nil
	}

	// 全员放弃跟牌：double 机制下什么都不卖，首牌留在桌面
	a.Result = &AuctionOutcome{
		Sold:        false,
		WinnerIndex: -1,
		Price:       0,
	}
	a.Done = true
	return nil
}
