package game

import (
	"fmt"
	"time"
)

// 公开喊价拍卖：任何人随时加价，每次加价重置倒计时；
// 倒计时到期无新出价、或当前领先者之外的所有人都弃权时结束。
// 无人出价则卡牌免费归拍卖人。

// 每次出价后的倒计时长度。倒计时是逻辑截止时间，引擎只比较宿主传入的时钟。
const OpenBidCountdown = 15 * time.Second

type OpenAuction struct {
	HighBid         int       `json:"highBid"`
	HighBidderIndex int       `json:"highBidderIndex"` // -1 表示尚无出价
	Passed          []bool    `json:"passed"`
	Deadline        time.Time `json:"deadline"` // 首次出价后生效
}

func newOpenAuction(playerCount int) *OpenAuction {
	return &OpenAuction{
		HighBidderIndex: -1,
		Passed:          make([]bool, playerCount),
	}
}

func (g *GameState) placeOpenBid(a *AuctionState, playerIndex, amount int, now time.Time) error {
	o := a.Open
	// 当前领先者不能给自己加价；拍卖开始时领先者视为拍卖人（“持有话语权”）
	if o.HighBidderIndex == playerIndex {
		return fmt.Errorf("玩家已是当前最高出价者: %w", ErrIllegalAction)
	}
	if o.HighBidderIndex < 0 && playerIndex == a.AuctioneerIndex {
		return fmt.Errorf("无人出价时拍卖人不能先出价: %w", ErrIllegalAction)
	}
	if amount <= o.HighBid {
		return fmt.Errorf("出价 %d 必须高于当前价 %d: %w", amount, o.HighBid, ErrIllegalAction)
	}
	if amount > g.Players[playerIndex].Money {
		return fmt.Errorf("出价 %d 超过玩家余额 %d: %w", amount, g.Players[playerIndex].Money, ErrInsufficientFunds)
	}

	o.HighBid = amount
	o.HighBidderIndex = playerIndex
	o.Deadline = now.Add(OpenBidCountdown)
	// 新出价后所有人重新获得回应机会
	for i := range o.Passed {
		o.Passed[i] = false
	}

	g.appendEvent(EventBidPlaced, map[string]interface{}{
		"player": g.Players[playerIndex].ID,
		"amount": amount,
		"cardId": a.Card.ID,
	})
	return nil
}

func (g *GameState) passOpenBid(a *AuctionState, playerIndex int) error {
	o := a.Open
	if o.HighBidderIndex == playerIndex {
		return fmt.Errorf("当前最高出价者不能弃权: %w", ErrIllegalAction)
	}
	if o.HighBidderIndex < 0 && playerIndex == a.AuctioneerIndex {
		return fmt.Errorf("无人出价时拍卖人无需弃权: %w", ErrIllegalAction)
	}
	if o.Passed[playerIndex] {
		return fmt.Errorf("玩家已经弃权: %w", ErrIllegalAction)
	}
	o.Passed[playerIndex] = true
	g.appendEvent(EventBidPassed, map[string]interface{}{
		"player": g.Players[playerIndex].ID,
		"cardId": a.Card.ID,
	})

	if g.openAuctionShouldClose(a) {
		g.concludeOpenAuction(a)
	}
	return nil
}

// tickOpenAuction 倒计时到期且有出价时落槌
func (g *GameState) tickOpenAuction(a *AuctionState, now time.Time) {
	o := a.Open
	if o.HighBidderIndex < 0 || o.Deadline.IsZero() {
		return
	}
	if now.Before(o.Deadline) {
		return
	}
	g.concludeOpenAuction(a)
}

// openAuctionShouldClose 领先者（无出价时为拍卖人）之外的所有人都已弃权
func (g *GameState) openAuctionShouldClose(a *AuctionState) bool {
	o := a.Open
	holder := o.HighBidderIndex
	if holder < 0 {
		holder = a.AuctioneerIndex
	}
	for i := range o.Passed {
		if i == holder {
			continue
		}
		if !o.Passed[i] {
			return false
		}
	}
	return true
}

func (g *GameState) concludeOpenAuction(a *AuctionState) {
	o := a.Open
	if o.HighBidderIndex >= 0 {
		a.Result = &AuctionOutcome{
			Sold:            true,
			WinnerIndex:     o.HighBidderIndex,
			Price:           o.HighBid,
			Cards:           []Card{a.Card},
			AuctioneerIndex: a.AuctioneerIndex,
		}
	} else {
		// 无人出价，免费归拍卖人
		a.Result = &AuctionOutcome{
			Sold:            false,
			WinnerIndex:     a.AuctioneerIndex,
			Price:           0,
			Cards:           []Card{a.Card},
			AuctioneerIndex: a.AuctioneerIndex,
		}
	}
	a.Done = true
}
