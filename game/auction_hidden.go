package game

import "fmt"

// 暗标拍卖：所有玩家（含拍卖人）各提交一次非负暗标，集齐后同时亮标。
// 最高价得标并把货款付给拍卖人（拍卖人自己得标则付给银行）。
// 全员出 0 视为流拍，卡牌免费归拍卖人。
// 最高价并列时，从拍卖人左手边起顺时针最先到的座位得标（拍卖人排在最后），
// 这条平局规则是本实现明确选定的。

type HiddenAuction struct {
	Bids []int `json:"bids"` // -1 表示尚未提交
}

func newHiddenAuction(playerCount int) *HiddenAuction {
	bids := make([]int, playerCount)
	for i := range bids {
		bids[i] = -1
	}
	return &HiddenAuction{Bids: bids}
}

func (g *GameState) submitHiddenBid(a *AuctionState, playerIndex, amount int) error {
	h := a.Hidden
	if h.Bids[playerIndex] >= 0 {
		return fmt.Errorf("玩家已提交过暗标: %w", ErrIllegalAction)
	}
	if amount < 0 {
		return fmt.Errorf("暗标金额 %d 非法: %w", amount, ErrIllegalAction)
	}
	if amount > g.Players[playerIndex].Money {
		return fmt.Errorf("暗标 %d 超过玩家余额 %d: %w", amount, g.Players[playerIndex].Money, ErrInsufficientFunds)
	}
	h.Bids[playerIndex] = amount
	g.appendEvent(EventHiddenBidSubmitted, map[string]interface{}{
		"player": g.Players[playerIndex].ID,
		"cardId": a.Card.ID,
	})

	for _, b := range h.Bids {
		if b < 0 {
			return nil // 还有人没交标
		}
	}
	g.revealHiddenBids(a)
	return nil
}

func (g *GameState) revealHiddenBids(a *AuctionState) {
	h := a.Hidden
	high := 0
	for _, b := range h.Bids {
		if b > high {
			high = b
		}
	}

	if high == 0 {
		a.Result = &AuctionOutcome{
			Sold:            false,
			WinnerIndex:     a.AuctioneerIndex,
			Price:           0,
			Cards:           []Card{a.Card},
			AuctioneerIndex: a.AuctioneerIndex,
		}
		a.Done = true
		return
	}

	// 平局裁决顺序：拍卖人左手边起顺时针，拍卖人最后
	winner := -1
	n := g.playerCount()
	for i := 1; i <= n; i++ {
		seat := (a.AuctioneerIndex + i) % n
		if h.Bids[seat] == high {
			winner = seat
			break
		}
	}

	a.Result = &AuctionOutcome{
		Sold:            true,
		WinnerIndex:     winner,
		Price:           high,
		Cards:           []Card{a.Card},
		AuctioneerIndex: a.AuctioneerIndex,
	}
	a.Done = true
}
