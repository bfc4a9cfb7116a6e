package ws

import (
	"log"
	"sync"
	"time"

	"go-modernart/game"
	"go-modernart/utils"

	"golang.org/x/exp/rand"
)

// AI 决策层。AI 的动作走和真人完全一样的消息处理器（带虚拟连接），
// 引擎校验不过就说明启发式有 bug，日志里能看到。

var aiBusy = make(map[string]bool)
var aiLock sync.Mutex

// 单局 AI 动作上限，防止启发式出 bug 时空转
const maxAIActionsPerRun = 1000

// MaybeRunAI 检查房间里是否轮到 AI 行动，是则起一个决策循环。
// 同一房间同时只会有一个循环在跑。
func MaybeRunAI(roomID string) {
	aiLock.Lock()
	if aiBusy[roomID] {
		aiLock.Unlock()
		return
	}
	aiBusy[roomID] = true
	aiLock.Unlock()

	go runAILoop(roomID)
}

func runAILoop(roomID string) {
	defer func() {
		aiLock.Lock()
		delete(aiBusy, roomID)
		aiLock.Unlock()
	}()

	for i := 0; i < maxAIActionsPerRun; i++ {
		gameLock.Lock()
		g := games[roomID]
		var playerID string
		var msgMap map[string]interface{}
		if g != nil {
			playerID, msgMap = nextAIAction(g)
		}
		gameLock.Unlock()

		if msgMap == nil {
			return
		}
		// 模拟思考时间，顺便把广播节奏拉开
		time.Sleep(time.Duration(400+rand.Intn(800)) * time.Millisecond)

		log.Printf("🤖 AI %s 执行 %v", playerID, msgMap["type"])
		dispatchMessage(&VirtualConn{PlayerID: playerID}, roomID, playerID, msgMap)
		broadcastToRoom(roomID)
	}
	log.Printf("⚠️ 房间 %s 的 AI 动作数达到上限，停止循环", roomID)
}

// nextAIAction 找出当前待行动的 AI 及其动作，没有则返回 nil
func nextAIAction(g *game.GameState) (string, map[string]interface{}) {
	if g.GamePhase != game.GamePhasePlaying {
		return "", nil
	}

	switch g.Round.Phase {
	case game.PhaseAwaitingCardPlay:
		seat := g.ActivePlayerIndex()
		p := &g.Players[seat]
		if !p.IsAI || len(p.Hand) == 0 {
			return "", nil
		}
		return p.ID, aiMessage("play_card", map[string]interface{}{
			"handIndex": aiChooseCard(g, seat),
		})

	case game.PhaseAuction:
		return nextAIAuctionAction(g)

	case game.PhaseRoundEnding, game.PhaseSellingToBank, game.PhaseRoundComplete:
		// 有 AI 在场时由 AI 替真人按掉结算确认
		for i := range g.Players {
			if g.Players[i].IsAI {
				return g.Players[i].ID, aiMessage("next_round", nil)
			}
		}
	}
	return "", nil
}

func nextAIAuctionAction(g *game.GameState) (string, map[string]interface{}) {
	outer := g.Round.Auction
	if outer == nil {
		return "", nil
	}
	a := activeAuction(outer)
	value := aiAuctionValue(g, outer)
	n := len(g.Players)

	switch a.Kind {
	case game.AuctionOpen:
		o := a.Open
		for i := 1; i <= n; i++ {
			seat := (a.AuctioneerIndex + i) % n
			p := &g.Players[seat]
			if !p.IsAI || o.Passed[seat] || seat == o.HighBidderIndex {
				continue
			}
			if o.HighBidderIndex < 0 && seat == a.AuctioneerIndex {
				continue // 无人出价时拍卖人只能等
			}
			willing := utils.Clamp(value-rand.Intn(5), 0, p.Money)
			if o.HighBid+1 <= willing {
				return p.ID, aiMessage("place_bid", map[string]interface{}{
					"amount": o.HighBid + 1,
				})
			}
			return p.ID, aiMessage("pass_bid", nil)
		}

	case game.AuctionOneOffer:
		o := a.OneOffer
		if o.AwaitingAuctioneer {
			p := &g.Players[a.AuctioneerIndex]
			if !p.IsAI {
				return "", nil
			}
			// 出价低于估值且还有余钱就压一手自购，否则顺水推舟卖掉
			if o.HighBidderIndex >= 0 && value > o.HighBid+1 && p.Money > o.HighBid {
				return p.ID, aiMessage("self_purchase", map[string]interface{}{
					"price": o.HighBid + 1,
				})
			}
			return p.ID, aiMessage("accept_high_bid", nil)
		}
		p := &g.Players[o.TurnIndex]
		if !p.IsAI {
			return "", nil
		}
		willing := utils.Clamp(value-rand.Intn(5), 0, p.Money)
		if willing > o.HighBid {
			amount := utils.MinInt(o.HighBid+1+rand.Intn(4), willing)
			return p.ID, aiMessage("place_bid", map[string]interface{}{
				"amount": amount,
			})
		}
		return p.ID, aiMessage("pass_bid", nil)

	case game.AuctionHidden:
		h := a.Hidden
		for i := 1; i <= n; i++ {
			seat := (a.AuctioneerIndex + i) % n
			p := &g.Players[seat]
			if !p.IsAI || h.Bids[seat] >= 0 {
				continue
			}
			amount := utils.Clamp(value-rand.Intn(6), 0, p.Money)
			return p.ID, aiMessage("submit_hidden_bid", map[string]interface{}{
				"amount": amount,
			})
		}

	case game.AuctionFixedPrice:
		f := a.Fixed
		if f.Price < 0 {
			p := &g.Players[a.AuctioneerIndex]
			if !p.IsAI {
				return "", nil
			}
			return p.ID, aiMessage("set_fixed_price", map[string]interface{}{
				"price": utils.Clamp(value, 0, p.Money),
			})
		}
		p := &g.Players[f.TurnIndex]
		if !p.IsAI {
			return "", nil
		}
		if f.Price <= value && f.Price <= p.Money {
			return p.ID, aiMessage("buy_fixed_price", nil)
		}
		return p.ID, aiMessage("pass_bid", nil)

	case game.AuctionDouble:
		d := a.Double
		p := &g.Players[d.TurnIndex]
		if !p.IsAI {
			return "", nil
		}
		for idx, card := range p.Hand {
			if card.Artist == d.FirstCard.Artist && card.AuctionType != game.AuctionDouble {
				return p.ID, aiMessage("offer_second_card", map[string]interface{}{
					"handIndex": idx,
				})
			}
		}
		return p.ID, aiMessage("decline_second_card", nil)
	}
	return "", nil
}

func aiMessage(msgType string, payload map[string]interface{}) map[string]interface{} {
	msg := map[string]interface{}{"type": msgType}
	if payload != nil {
		msg["payload"] = payload
	}
	return msg
}

// aiChooseCard 优先打场上数量最多的画家，抬自己人的行情
func aiChooseCard(g *game.GameState, seat int) int {
	hand := g.Players[seat].Hand
	best := 0
	bestCount := -1
	for i, card := range hand {
		count := g.Round.CardsPlayedPerArtist[card.Artist]
		if count > bestCount {
			best = i
			bestCount = count
		}
	}
	return best
}

// aiEstimateValue 估算这张牌轮末能卖给银行的价格：
// 假设这张牌落地后该画家保持当前名次，当轮行情加上历史累计
func aiEstimateValue(g *game.GameState, artist game.Artist) int {
	counts := g.Round.CardsPlayedPerArtist
	counts[artist]++
	ranks := game.RankArtists(counts)
	projected := ranks[artist].Value
	if projected == 0 {
		return 0
	}
	past := 0
	for r := 1; r < g.Round.RoundNumber; r++ {
		past += g.Board.ArtistValues[artist][r-1]
	}
	return projected + past
}

func aiAuctionValue(g *game.GameState, outer *game.AuctionState) int {
	value := aiEstimateValue(g, outer.Card.Artist)
	// double 成交时一次拿两张
	if outer.Kind == game.AuctionDouble && outer.Double != nil && outer.Double.SecondCard != nil {
		value *= 2
	}
	return value
}
