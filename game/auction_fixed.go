package game

import "fmt"

// 一口价拍卖：拍卖人先定一个价，其余玩家从左手边起顺时针各有一次
// 按价买入或放弃的机会，第一个买入者立即成交；全员放弃时拍卖人被迫
// 按自己定的价格买下（货款付给银行），所以定价不能超过拍卖人自己的余额。

type FixedPriceAuction struct {
	Price     int    `json:"price"` // -1 表示尚未定价
	TurnIndex int    `json:"turnIndex"`
	Passed    []bool `json:"passed"`
}

func newFixedPriceAuction(auctioneerIndex, playerCount int) *FixedPriceAuction {
	return &FixedPriceAuction{
		Price:     -1,
		TurnIndex: (auctioneerIndex + 1) % playerCount,
		Passed:    make([]bool, playerCount),
	}
}

func (g *GameState) setFixedPrice(a *AuctionState, playerIndex, price int) error {
	f := a.Fixed
	if playerIndex != a.AuctioneerIndex {
		return fmt.Errorf("只有拍卖人可以定价: %w", ErrIllegalAction)
	}
	if f.Price >= 0 {
		return fmt.Errorf("价格已定为 %d，不能修改: %w", f.Price, ErrIllegalAction)
	}
	if price < 0 {
		return fmt.Errorf("定价 %d 非法: %w", price, ErrIllegalAction)
	}
	if price > g.Players[playerIndex].Money {
		// 全员放弃时拍卖人要按此价自购，定价必须在自己余额之内
		return fmt.Errorf("定价 %d 超过拍卖人余额 %d: %w", price, g.Players[playerIndex].Money, ErrInsufficientFunds)
	}
	f.Price = price
	g.appendEvent(EventPriceSet, map[string]interface{}{
		"player": g.Players[playerIndex].ID,
		"price":  price,
		"cardId": a.Card.ID,
	})
	return nil
}

func (g *GameState) checkFixedTurn(a *AuctionState, playerIndex int) error {
	f := a.Fixed
	if f.Price < 0 {
		return fmt.Errorf("拍卖人尚未定价: %w", ErrIllegalAction)
	}
	if playerIndex == a.AuctioneerIndex {
		return fmt.Errorf("拍卖人不参与购买环节: %w", ErrIllegalAction)
	}
	if playerIndex != f.TurnIndex {
		return fmt.Errorf("还没轮到玩家 %d 行动: %w", playerIndex, ErrIllegalAction)
	}
	return nil
}

func (g *GameState) buyAtFixedPrice(a *AuctionState, playerIndex int) error {
	if err := g.checkFixedTurn(a, playerIndex); err != nil {
		return err
	}
	f := a.Fixed
	if f.Price > g.Players[playerIndex].Money {
		return fmt.Errorf("价格 %d 超过玩家余额 %d: %w", f.Price, g.Players[playerIndex].Money, ErrInsufficientFunds)
	}
	a.Result = &AuctionOutcome{
		Sold:            true,
		WinnerIndex:     playerIndex,
		Price:           f.Price,
		Cards:           []Card{a.Card},
		AuctioneerIndex: a.AuctioneerIndex,
	}
	a.Done = true
	return nil
}

func (g *GameState) passFixedPrice(a *AuctionState, playerIndex int) error {
	if err := g.checkFixedTurn(a, playerIndex); err != nil {
		return err
	}
	f := a.Fixed
	f.Passed[playerIndex] = true
	g.appendEvent(EventBidPassed, map[string]interface{}{
		"player": g.Players[playerIndex].ID,
		"cardId": a.Card.ID,
	})

	// 找下一个还没放弃的非拍卖人
	n := g.playerCount()
	for i := 1; i <= n; i++ {
		seat := (f.TurnIndex + i) % n
		if seat == a.AuctioneerIndex || f.Passed[seat] {
			continue
		}
		f.TurnIndex = seat
		return nil
	}

	// 全员放弃：拍卖人被迫按定价自购
	a.Result = &AuctionOutcome{
		Sold:            true,
		WinnerIndex:     a.AuctioneerIndex,
		Price:           f.Price,
		Cards:           []Card{a.Card},
		AuctioneerIndex: a.AuctioneerIndex,
	}
	a.Done = true
	return nil
}
