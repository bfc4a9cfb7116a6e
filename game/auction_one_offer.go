package game

import "fmt"

// 一口报价拍卖：从拍卖人左手边开始，每个非拍卖人玩家按顺时针各有一次
// 不可撤回的出价或弃权机会；所有人行动完毕后由拍卖人裁决——
// 接受最高价卖出，或至少加价 1 自购（货款付给银行）。
// 全员弃权时拍卖人可以免费收下，也可以按任意 >= 0 的价格自购。

type OneOfferAuction struct {
	TurnIndex         int    `json:"turnIndex"` // 当前待行动的座位
	Acted             []bool `json:"acted"`
	HighBid           int    `json:"highBid"`
	HighBidderIndex   int    `json:"highBidderIndex"` // -1 表示全员弃权
	AwaitingAuctioneer bool  `json:"awaitingAuctioneer"`
}

func newOneOfferAuction(auctioneerIndex, playerCount int) *OneOfferAuction {
	return &OneOfferAuction{
		TurnIndex:       (auctioneerIndex + 1) % playerCount,
		Acted:           make([]bool, playerCount),
		HighBidderIndex: -1,
	}
}

func (g *GameState) checkOneOfferTurn(a *AuctionState, playerIndex int) error {
	o := a.OneOffer
	if o.AwaitingAuctioneer {
		return fmt.Errorf("出价环节已结束，等待拍卖人裁决: %w", ErrIllegalAction)
	}
	if playerIndex == a.AuctioneerIndex {
		return fmt.Errorf("拍卖人不参与轮流出价: %w", ErrIllegalAction)
	}
	if playerIndex != o.TurnIndex {
		return fmt.Errorf("还没轮到玩家 %d 行动: %w", playerIndex, ErrIllegalAction)
	}
	return nil
}

// advanceOneOfferTurn 顺时针推进到下一个未行动的非拍卖人；全部行动后进入裁决
func (g *GameState) advanceOneOfferTurn(a *AuctionState) {
	o := a.OneOffer
	for i := 1; i <= g.playerCount(); i++ {
		seat := (o.TurnIndex + i) % g.playerCount()
		if seat == a.AuctioneerIndex || o.Acted[seat] {
			continue
		}
		o.TurnIndex = seat
		return
	}
	o.AwaitingAuctioneer = true
	o.TurnIndex = a.AuctioneerIndex
}

func (g *GameState) placeOneOfferBid(a *AuctionState, playerIndex, amount int) error {
	if err := g.checkOneOfferTurn(a, playerIndex); err != nil {
		return err
	}
	o := a.OneOffer
	if amount <= o.HighBid {
		return fmt.Errorf("出价 %d 必须高于当前价 %d: %w", amount, o.HighBid, ErrIllegalAction)
	}
	if amount > g.Players[playerIndex].Money {
		return fmt.Errorf("出价 %d 超过玩家余额 %d: %w", amount, g.Players[playerIndex].Money, ErrInsufficientFunds)
	}
	o.HighBid = amount
	o.HighBidderIndex = playerIndex
	o.Acted[playerIndex] = true
	g.appendEvent(EventBidPlaced, map[string]interface{}{
		"player": g.Players[playerIndex].ID,
		"amount": amount,
		"cardId": a.Card.ID,
	})
	g.advanceOneOfferTurn(a)
	return nil
}

func (g *GameState) passOneOfferBid(a *AuctionState, playerIndex int) error {
	if err := g.checkOneOfferTurn(a, playerIndex); err != nil {
		return err
	}
	a.OneOffer.Acted[playerIndex] = true
	g.appendEvent(EventBidPassed, map[string]interface{}{
		"player": g.Players[playerIndex].ID,
		"cardId": a.Card.ID,
	})
	g.advanceOneOfferTurn(a)
	return nil
}

func (g *GameState) checkAuctioneerDecision(a *AuctionState, playerIndex int) error {
	if !a.OneOffer.AwaitingAuctioneer {
		return fmt.Errorf("出价环节尚未结束: %w", ErrIllegalAction)
	}
	if playerIndex != a.AuctioneerIndex {
		return fmt.Errorf("只有拍卖人可以裁决: %w", ErrIllegalAction)
	}
	return nil
}

func (g *GameState) acceptHighBid(a *AuctionState, playerIndex int) error {
	if err := g.checkAuctioneerDecision(a, playerIndex); err != nil {
		return err
	}
	o := a.OneOffer
	if o.HighBidderIndex >= 0 {
		a.Result = &AuctionOutcome{
			Sold:            true,
			WinnerIndex:     o.HighBidderIndex,
			Price:           o.HighBid,
			Cards:           []Card{a.Card},
			AuctioneerIndex: a.AuctioneerIndex,
		}
	} else {
		// 全员弃权且拍卖人不自购：免费收下
		a.Result = &AuctionOutcome{
			Sold:            false,
			WinnerIndex:     a.AuctioneerIndex,
			Price:           0,
			Cards:           []Card{a.Card},
			AuctioneerIndex: a.AuctioneerIndex,
		}
	}
	a.Done = true
	return nil
}

func (g *GameState) selfPurchase(a *AuctionState, playerIndex, price int) error {
	if err := g.checkAuctioneerDecision(a, playerIndex); err != nil {
		return err
	}
	o := a.OneOffer
	if o.HighBidderIndex >= 0 && price <= o.HighBid {
		return fmt.Errorf("自购价 %d 必须至少比最高价 %d 高 1: %w", price, o.HighBid, ErrIllegalAction)
	}
	if price < 0 {
		return fmt.Errorf("自购价 %d 非法: %w", price, ErrIllegalAction)
	}
	if price > g.Players[playerIndex].Money {
		return fmt.Errorf("自购价 %d 超过余额 %d: %w", price, g.Players[playerIndex].Money, ErrInsufficientFunds)
	}
	a.Result = &AuctionOutcome{
		Sold:            true,
		WinnerIndex:     a.AuctioneerIndex,
		Price:           price,
		Cards:           []Card{a.Card},
		AuctioneerIndex: a.AuctioneerIndex,
	}
	a.Done = true
	return nil
}
