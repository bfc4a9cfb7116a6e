package game

import (
	"fmt"
	"time"
)

// 拍卖子系统。每种拍卖是一个独立的小状态机，共用 AuctionState 这个带判别字段的
// 闭合联合体；所有解析点都按 Kind 穷举分支。double 拍卖内嵌持有另一个 AuctionState。

type AuctionState struct {
	Kind            AuctionType     `json:"kind"`
	Card            Card            `json:"card"`
	AuctioneerIndex int             `json:"auctioneerIndex"`
	Done            bool            `json:"done"`
	Result          *AuctionOutcome `json:"result,omitempty"`

	Open     *OpenAuction       `json:"open,omitempty"`
	OneOffer *OneOfferAuction   `json:"oneOffer,omitempty"`
	Hidden   *HiddenAuction     `json:"hidden,omitempty"`
	Fixed    *FixedPriceAuction `json:"fixed,omitempty"`
	Double   *DoubleAuction     `json:"double,omitempty"`
}

// AuctionOutcome 拍卖终态：成交（买家+价格）或流拍。
// 流拍时卡牌免费归拍卖人（WinnerIndex 为拍卖人、Price 为 0）；
// double 无人跟牌时 WinnerIndex 为 -1，卡牌留在桌面，不发生任何转移。
type AuctionOutcome struct {
	Sold            bool   `json:"sold"`
	WinnerIndex     int    `json:"winnerIndex"`
	Price           int    `json:"price"`
	Cards           []Card `json:"cards"`
	AuctioneerIndex int    `json:"auctioneerIndex"` // 收款人（double 时为跟牌者）
}

// newAuction 按卡牌上印的拍卖类型初始化对应的状态机
func newAuction(card Card, auctioneerIndex, playerCount int) *AuctionState {
	a := &AuctionState{
		Kind:            card.AuctionType,
		Card:            card,
		AuctioneerIndex: auctioneerIndex,
	}
	switch card.AuctionType {
	case AuctionOpen:
		a.Open = newOpenAuction(playerCount)
	case AuctionOneOffer:
		a.OneOffer = newOneOfferAuction(auctioneerIndex, playerCount)
	case AuctionHidden:
		a.Hidden = newHiddenAuction(playerCount)
	case AuctionFixedPrice:
		a.Fixed = newFixedPriceAuction(auctioneerIndex, playerCount)
	case AuctionDouble:
		a.Double = newDoubleAuction(card, auctioneerIndex, playerCount)
	}
	return a
}

// target 返回当前实际接收出价动作的状态机：
// double 一旦有人跟出第二张牌，动作全部路由到内嵌拍卖
func (a *AuctionState) target() *AuctionState {
	if a.Kind == AuctionDouble && a.Double != nil && a.Double.Inner != nil {
		return a.Double.Inner
	}
	return a
}

// currentAuction 校验当前处于拍卖阶段并返回拍卖状态
func (g *GameState) currentAuction() (*AuctionState, error) {
	if g.GamePhase != GamePhasePlaying {
		return nil, fmt.Errorf("游戏不在进行中: %w", ErrIllegalAction)
	}
	if g.Round.Phase != PhaseAuction || g.Round.Auction == nil {
		return nil, fmt.Errorf("当前阶段 %s 没有进行中的拍卖: %w", g.Round.Phase, ErrIllegalAction)
	}
	return g.Round.Auction, nil
}

// PlaceBid 出价。open 拍卖随时可加价，one_offer 拍卖按顺序各出一次。
func (g *GameState) PlaceBid(playerIndex, amount int, now time.Time) error {
	if err := g.checkPlayerIndex(playerIndex); err != nil {
		return err
	}
	outer, err := g.currentAuction()
	if err != nil {
		return err
	}
	a := outer.target()
	switch a.Kind {
	case AuctionOpen:
		err = g.placeOpenBid(a, playerIndex, amount, now)
	case AuctionOneOffer:
		err = g.placeOneOfferBid(a, playerIndex, amount)
	case AuctionDouble:
		err = fmt.Errorf("double 拍卖的跟牌阶段不能出价: %w", ErrIllegalAction)
	default:
		err = fmt.Errorf("%s 拍卖不支持自由出价: %w", a.Kind, ErrIllegalAction)
	}
	if err != nil {
		return err
	}
	g.afterAuctionAction(outer)
	return nil
}

// PassBid 放弃。open 为显式弃权，one_offer 为跳过本次机会，fixed_price 为按顺序放弃购买。
func (g *GameState) PassBid(playerIndex int) error {
	if err := g.checkPlayerIndex(playerIndex); err != nil {
		return err
	}
	outer, err := g.currentAuction()
	if err != nil {
		return err
	}
	a := outer.target()
	switch a.Kind {
	case AuctionOpen:
		err = g.passOpenBid(a, playerIndex)
	case AuctionOneOffer:
		err = g.passOneOfferBid(a, playerIndex)
	case AuctionFixedPrice:
		err = g.passFixedPrice(a, playerIndex)
	default:
		err = fmt.Errorf("%s 拍卖不支持弃权操作: %w", a.Kind, ErrIllegalAction)
	}
	if err != nil {
		return err
	}
	g.afterAuctionAction(outer)
	return nil
}

// SubmitHiddenBid 提交暗标（包括拍卖人本人），每人一次
func (g *GameState) SubmitHiddenBid(playerIndex, amount int) error {
	if err := g.checkPlayerIndex(playerIndex); err != nil {
		return err
	}
	outer, err := g.currentAuction()
	if err != nil {
		return err
	}
	a := outer.target()
	if a.Kind != AuctionHidden {
		return fmt.Errorf("当前是 %s 拍卖，不能提交暗标: %w", a.Kind, ErrIllegalAction)
	}
	if err := g.submitHiddenBid(a, playerIndex, amount); err != nil {
		return err
	}
	g.afterAuctionAction(outer)
	return nil
}

// SetFixedPrice 拍卖人为一口价拍卖定价
func (g *GameState) SetFixedPrice(playerIndex, price int) error {
	if err := g.checkPlayerIndex(playerIndex); err != nil {
		return err
	}
	outer, err := g.currentAuction()
	if err != nil {
		return err
	}
	a := outer.target()
	if a.Kind != AuctionFixedPrice {
		return fmt.Errorf("当前是 %s 拍卖，不能定价: %w", a.Kind, ErrIllegalAction)
	}
	if err := g.setFixedPrice(a, playerIndex, price); err != nil {
		return err
	}
	g.afterAuctionAction(outer)
	return nil
}

// BuyAtFixedPrice 按拍卖人定的价格买入，先到先得
func (g *GameState) BuyAtFixedPrice(playerIndex int) error {
	if err := g.checkPlayerIndex(playerIndex); err != nil {
		return err
	}
	outer, err := g.currentAuction()
	if err != nil {
		return err
	}
	a := outer.target()
	if a.Kind != AuctionFixedPrice {
		return fmt.Errorf("当前是 %s 拍卖，不能按一口价购买: %w", a.Kind, ErrIllegalAction)
	}
	if err := g.buyAtFixedPrice(a, playerIndex); err != nil {
		return err
	}
	g.afterAuctionAction(outer)
	return nil
}

// AcceptHighBid one_offer 拍卖人接受最高出价；无人出价时等于免费收下卡牌
func (g *GameState) AcceptHighBid(playerIndex int) error {
	if err := g.checkPlayerIndex(playerIndex); err != nil {
		return err
	}
	outer, err := g.currentAuction()
	if err != nil {
		return err
	}
	a := outer.target()
	if a.Kind != AuctionOneOffer {
		return fmt.Errorf("当前是 %s 拍卖，没有拍卖人裁决环节: %w", a.Kind, ErrIllegalAction)
	}
	if err := g.acceptHighBid(a, playerIndex); err != nil {
		return err
	}
	g.afterAuctionAction(outer)
	return nil
}

// SelfPurchase one_offer 拍卖人压过最高价自购（付给银行）
func (g *GameState) SelfPurchase(playerIndex, price int) error {
	if err := g.checkPlayerIndex(playerIndex); err != nil {
		return err
	}
	outer, err := g.currentAuction()
	if err != nil {
		return err
	}
	a := outer.target()
	if a.Kind != AuctionOneOffer {
		return fmt.Errorf("当前是 %s 拍卖，不能自购: %w", a.Kind, ErrIllegalAction)
	}
	if err := g.selfPurchase(a, playerIndex, price); err != nil {
		return err
	}
	g.afterAuctionAction(outer)
	return nil
}

// OfferSecondCard double 拍卖中跟出同画家的第二张牌
func (g *GameState) OfferSecondCard(playerIndex, handIndex int) error {
	if err := g.checkPlayerIndex(playerIndex); err != nil {
		return err
	}
	outer, err := g.currentAuction()
	if err != nil {
		return err
	}
	if outer.Kind != AuctionDouble || outer.Double == nil {
		return fmt.Errorf("当前不是 double 拍卖: %w", ErrIllegalAction)
	}
	if err := g.offerSecondCard(outer, playerIndex, handIndex); err != nil {
		return err
	}
	g.afterAuctionAction(outer)
	return nil
}

// DeclineSecondCard double 拍卖中放弃跟牌机会
func (g *GameState) DeclineSecondCard(playerIndex int) error {
	if err := g.checkPlayerIndex(playerIndex); err != nil {
		return err
	}
	outer, err := g.currentAuction()
	if err != nil {
		return err
	}
	if outer.Kind != AuctionDouble || outer.Double == nil {
		return fmt.Errorf("当前不是 double 拍卖: %w", ErrIllegalAction)
	}
	if err := g.declineSecondCard(outer, playerIndex); err != nil {
		return err
	}
	g.afterAuctionAction(outer)
	return nil
}

// TickAuction 推进逻辑倒计时。引擎不自带时钟，由宿主在倒计时到期后带当前时间调用。
func (g *GameState) TickAuction(now time.Time) error {
	outer, err := g.currentAuction()
	if err != nil {
		return err
	}
	a := outer.target()
	if a.Kind != AuctionOpen {
		return nil
	}
	g.tickOpenAuction(a, now)
	g.afterAuctionAction(outer)
	return nil
}

// afterAuctionAction 统一的收尾：先把内嵌拍卖的结果提升到外层 double，
// 再在外层拍卖结束时结算并推进轮次
func (g *GameState) afterAuctionAction(outer *AuctionState) {
	if outer.Kind == AuctionDouble && outer.Double != nil {
		inner := outer.Double.Inner
		if inner != nil && inner.Done && !outer.Done {
			// 内嵌拍卖的赢家一次付款拿走两张牌，收款人是跟牌者
			lifted := *inner.Result
			lifted.Cards = []Card{outer.Double.FirstCard, *outer.Double.SecondCard}
			outer.Done = true
			outer.Result = &lifted
		}
	}
	if outer.Done {
		g.finishAuction(outer)
	}
}

// finishAuction 结算拍卖：付款、转移卡牌、记录事件、推进到下一次出牌或轮末
func (g *GameState) finishAuction(a *AuctionState) {
	outcome := a.Result
	if outcome.WinnerIndex >= 0 {
		winner := &g.Players[outcome.WinnerIndex]
		auctioneerID := g.Players[outcome.AuctioneerIndex].ID
		// 出价阶段已校验过余额，这里不会失败
		_ = ProcessAuctionPayment(g.Players, AuctionPayment{
			WinnerID:     winner.ID,
			AuctioneerID: auctioneerID,
			SalePrice:    outcome.Price,
		})
		for i, card := range outcome.Cards {
			g.removeFromPlayedCards(card)
			price := 0
			if i == 0 {
				price = outcome.Price
			}
			winner.addPainting(card, price, g.Round.RoundNumber)
		}
		g.appendEvent(EventAuctionWon, map[string]interface{}{
			"winner":     winner.ID,
			"auctioneer": auctioneerID,
			"price":      outcome.Price,
			"sold":       outcome.Sold,
			"cardIds":    cardIDs(outcome.Cards),
		})
	} else {
		// double 无人跟牌：不转移卡牌也不发生付款，卡牌留在桌面
		g.appendEvent(EventAuctionNoSale, map[string]interface{}{
			"auctioneer": g.Players[a.AuctioneerIndex].ID,
			"cardId":     a.Card.ID,
		})
	}

	g.Round.Auction = nil
	g.advanceAfterAuction()
}

func (g *GameState) removeFromPlayedCards(card Card) {
	cards := g.Board.PlayedCards[card.Artist]
	for i := range cards {
		if cards[i].ID == card.ID {
			g.Board.PlayedCards[card.Artist] = append(cards[:i], cards[i+1:]...)
			return
		}
	}
}

func cardIDs(cards []Card) []int {
	ids := make([]int, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}
