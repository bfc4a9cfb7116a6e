package ws

import (
	"log"
	"time"

	"go-modernart/dto"
	"go-modernart/game"
	"go-modernart/repository"

	"github.com/mitchellh/mapstructure"
)

type messageHandler func(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{})

// 处理器引用的函数最终又会经由 AI 循环回到这张表，
// 在 init 里赋值以打破包级初始化环
var messageHandlers map[string]messageHandler

func init() {
	messageHandlers = map[string]messageHandler{
		"play_card":           handlePlayCardMessage,
		"place_bid":           handlePlaceBidMessage,
		"pass_bid":            handlePassBidMessage,
		"submit_hidden_bid":   handleSubmitHiddenBidMessage,
		"set_fixed_price":     handleSetFixedPriceMessage,
		"buy_fixed_price":     handleBuyFixedPriceMessage,
		"accept_high_bid":     handleAcceptHighBidMessage,
		"self_purchase":       handleSelfPurchaseMessage,
		"offer_second_card":   handleOfferSecondCardMessage,
		"decline_second_card": handleDeclineSecondCardMessage,
		"next_round":          handleNextRoundMessage,
		"restart_game":        handleRestartGameMessage,
	}
}

// decodePayload 把消息里的 payload 解码到结构体，
// 前端传来的数字是 float64，弱类型模式统一转掉
func decodePayload(msgMap map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(msgMap["payload"])
}

// activeAuction double 拍卖有人跟牌后，动作都落在内嵌拍卖上
func activeAuction(a *game.AuctionState) *game.AuctionState {
	if a.Kind == game.AuctionDouble && a.Double != nil && a.Double.Inner != nil {
		return a.Double.Inner
	}
	return a
}

func handlePlayCardMessage(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) {
	var payload dto.PlayCardPayload
	if err := decodePayload(msgMap, &payload); err != nil {
		log.Println("❌ 解析出牌消息失败:", err)
		return
	}
	err := withGame(roomID, func(g *game.GameState) error {
		seat, err := seatOf(g, playerID)
		if err != nil {
			return err
		}
		return g.PlayCard(seat, payload.HandIndex)
	})
	if err != nil {
		log.Printf("❌ 玩家 %s 出牌失败: %v", playerID, err)
		sendError(conn, err)
	}
}

func handlePlaceBidMessage(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) {
	var payload dto.BidPayload
	if err := decodePayload(msgMap, &payload); err != nil {
		log.Println("❌ 解析出价消息失败:", err)
		return
	}
	var deadline time.Time
	err := withGame(roomID, func(g *game.GameState) error {
		seat, err := seatOf(g, playerID)
		if err != nil {
			return err
		}
		if err := g.PlaceBid(seat, payload.Amount, time.Now()); err != nil {
			return err
		}
		// 公开喊价每次出价重置倒计时，由宿主负责到点结算
		if g.Round.Auction != nil {
			a := activeAuction(g.Round.Auction)
			if a.Kind == game.AuctionOpen && a.Open.HighBidderIndex >= 0 {
				deadline = a.Open.Deadline
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("❌ 玩家 %s 出价失败: %v", playerID, err)
		sendError(conn, err)
		return
	}
	if !deadline.IsZero() {
		armOpenAuctionTimer(roomID, deadline)
	}
}

func handlePassBidMessage(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) {
	err := withGame(roomID, func(g *game.GameState) error {
		seat, err := seatOf(g, playerID)
		if err != nil {
			return err
		}
		return g.PassBid(seat)
	})
	if err != nil {
		log.Printf("❌ 玩家 %s 弃权失败: %v", playerID, err)
		sendError(conn, err)
	}
}

func handleSubmitHiddenBidMessage(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) {
	var payload dto.BidPayload
	if err := decodePayload(msgMap, &payload); err != nil {
		log.Println("❌ 解析暗标消息失败:", err)
		return
	}
	err := withGame(roomID, func(g *game.GameState) error {
		seat, err := seatOf(g, playerID)
		if err != nil {
			return err
		}
		return g.SubmitHiddenBid(seat, payload.Amount)
	})
	if err != nil {
		log.Printf("❌ 玩家 %s 提交暗标失败: %v", playerID, err)
		sendError(conn, err)
	}
}

func handleSetFixedPriceMessage(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) {
	var payload dto.PricePayload
	if err := decodePayload(msgMap, &payload); err != nil {
		log.Println("❌ 解析定价消息失败:", err)
		return
	}
	err := withGame(roomID, func(g *game.GameState) error {
		seat, err := seatOf(g, playerID)
		if err != nil {
			return err
		}
		return g.SetFixedPrice(seat, payload.Price)
	})
	if err != nil {
		log.Printf("❌ 玩家 %s 定价失败: %v", playerID, err)
		sendError(conn, err)
	}
}

func handleBuyFixedPriceMessage(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) {
	err := withGame(roomID, func(g *game.GameState) error {
		seat, err := seatOf(g, playerID)
		if err != nil {
			return err
		}
		return g.BuyAtFixedPrice(seat)
	})
	if err != nil {
		log.Printf("❌ 玩家 %s 一口价购买失败: %v", playerID, err)
		sendError(conn, err)
	}
}

func handleAcceptHighBidMessage(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) {
	err := withGame(roomID, func(g *game.GameState) error {
		seat, err := seatOf(g, playerID)
		if err != nil {
			return err
		}
		return g.AcceptHighBid(seat)
	})
	if err != nil {
		log.Printf("❌ 玩家 %s 接受出价失败: %v", playerID, err)
		sendError(conn, err)
	}
}

func handleSelfPurchaseMessage(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) {
	var payload dto.PricePayload
	if err := decodePayload(msgMap, &payload); err != nil {
		log.Println("❌ 解析自购消息失败:", err)
		return
	}
	err := withGame(roomID, func(g *game.GameState) error {
		seat, err := seatOf(g, playerID)
		if err != nil {
			return err
		}
		return g.SelfPurchase(seat, payload.Price)
	})
	if err != nil {
		log.Printf("❌ 玩家 %s 自购失败: %v", playerID, err)
		sendError(conn, err)
	}
}

func handleOfferSecondCardMessage(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) {
	var payload dto.OfferPayload
	if err := decodePayload(msgMap, &payload); err != nil {
		log.Println("❌ 解析跟牌消息失败:", err)
		return
	}
	err := withGame(roomID, func(g *game.GameState) error {
		seat, err := seatOf(g, playerID)
		if err != nil {
			return err
		}
		return g.OfferSecondCard(seat, payload.HandIndex)
	})
	if err != nil {
		log.Printf("❌ 玩家 %s 跟牌失败: %v", playerID, err)
		sendError(conn, err)
	}
}

func handleDeclineSecondCardMessage(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) {
	err := withGame(roomID, func(g *game.GameState) error {
		seat, err := seatOf(g, playerID)
		if err != nil {
			return err
		}
		return g.DeclineSecondCard(seat)
	})
	if err != nil {
		log.Printf("❌ 玩家 %s 放弃跟牌失败: %v", playerID, err)
		sendError(conn, err)
	}
}

// handleNextRoundMessage 推进轮末结算的一步：结榜 → 银行收购 → 开下一轮。
// 前端每次确认动画播完后发一条。
func handleNextRoundMessage(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) {
	var ended bool
	err := withGame(roomID, func(g *game.GameState) error {
		var err error
		switch g.Round.Phase {
		case game.PhaseRoundEnding:
			err = g.EndRound()
		case game.PhaseSellingToBank:
			err = g.SellToBank()
		case game.PhaseRoundComplete:
			err = g.NextRound()
		default:
			err = game.ErrIllegalAction
		}
		ended = g.GamePhase == game.GamePhaseEnded
		return err
	})
	if err != nil {
		log.Printf("❌ 玩家 %s 推进轮次失败: %v", playerID, err)
		sendError(conn, err)
		return
	}
	if ended {
		if err := SetGameStatus(repository.Rdb, roomID, dto.RoomStatusEnded); err != nil {
			log.Println("❌ 设置对局状态失败:", err)
		}
	}
}

// handleRestartGameMessage 终局后原班人马重开一局
func handleRestartGameMessage(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) {
	gameLock.Lock()
	defer gameLock.Unlock()

	old, ok := games[roomID]
	if !ok || old.GamePhase != game.GamePhaseEnded {
		log.Printf("⚠️ 房间 %s 对局未结束，拒绝重开", roomID)
		return
	}
	players := make([]game.Player, len(old.Players))
	for i := range old.Players {
		players[i] = game.Player{
			ID:   old.Players[i].ID,
			Name: old.Players[i].Name,
			IsAI: old.Players[i].IsAI,
		}
	}
	g, err := game.NewGame(players, uint64(time.Now().UnixNano()))
	if err != nil {
		log.Println("❌ 重开失败:", err)
		return
	}
	games[roomID] = g
	if err := SetGameStatus(repository.Rdb, roomID, dto.RoomStatusPlaying); err != nil {
		log.Println("❌ 设置对局状态失败:", err)
	}
	log.Printf("✅ 房间 %s 重开一局", roomID)
}
