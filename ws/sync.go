package ws

import (
	"encoding/json"
	"log"

	"go-modernart/dto"
	"go-modernart/game"

	"github.com/gorilla/websocket"
)

// 广播消息给房间内所有连接成功的玩家，每人一份按视角裁剪过的快照
func broadcastToRoom(roomID string) {
	roomLock.Lock()
	conns := make([]dto.PlayerConn, len(Rooms[roomID]))
	copy(conns, Rooms[roomID])
	roomLock.Unlock()

	messages := make(map[string][]byte, len(conns))
	gameLock.Lock()
	g := games[roomID]
	for _, pc := range conns {
		messages[pc.PlayerID] = buildSyncMessage(g, roomID, pc.PlayerID, conns)
	}
	gameLock.Unlock()

	for _, pc := range conns {
		if pc.Conn == nil {
			continue
		}
		if err := pc.Conn.WriteMessage(websocket.TextMessage, messages[pc.PlayerID]); err != nil {
			log.Println("广播失败，标记离线:", pc.PlayerID)
			pc.Conn.Close()
			markOffline(roomID, pc.PlayerID)
		}
	}
}

func markOffline(roomID, playerID string) {
	roomLock.Lock()
	defer roomLock.Unlock()
	for i, pc := range Rooms[roomID] {
		if pc.PlayerID == playerID {
			Rooms[roomID][i].Online = false
			Rooms[roomID][i].Conn = nil
		}
	}
}

// buildSyncMessage 组装同步消息。手牌和暗标金额只发给本人。
func buildSyncMessage(g *game.GameState, roomID, playerID string, conns []dto.PlayerConn) []byte {
	roomPlayers := make([]map[string]interface{}, 0, len(conns))
	for _, pc := range conns {
		roomPlayers = append(roomPlayers, map[string]interface{}{
			"playerId": pc.PlayerID,
			"online":   pc.Online,
			"isAI":     pc.IsAI,
		})
	}

	msg := map[string]interface{}{
		"type":     "sync",
		"playerId": playerID,
		"roomData": map[string]interface{}{
			"roomId":      roomID,
			"roomPlayers": roomPlayers,
		},
	}

	if g != nil {
		msg["playerData"] = playerView(g, playerID)
		roomData := msg["roomData"].(map[string]interface{})
		roomData["gamePhase"] = g.GamePhase
		roomData["board"] = boardView(g)
		roomData["round"] = roundView(g, playerID)
		roomData["players"] = publicPlayerViews(g)
		roomData["events"] = g.EventsSince(0)
		if g.Winner != nil {
			standings, _ := g.DetermineWinner()
			roomData["winner"] = g.Winner
			roomData["standings"] = standings
		}
	}

	data, _ := json.Marshal(msg)
	return data
}

// playerView 本人可见的私有数据
func playerView(g *game.GameState, playerID string) map[string]interface{} {
	seat, err := seatOf(g, playerID)
	if err != nil {
		return nil
	}
	p := &g.Players[seat]
	return map[string]interface{}{
		"seat":               seat,
		"money":              p.Money,
		"hand":               p.Hand,
		"purchases":          p.Purchases,
		"purchasedThisRound": p.PurchasedThisRound,
	}
}

// publicPlayerViews 所有人可见的公共数据，手牌只给数量
func publicPlayerViews(g *game.GameState) []map[string]interface{} {
	views := make([]map[string]interface{}, 0, len(g.Players))
	for i := range g.Players {
		p := &g.Players[i]
		views = append(views, map[string]interface{}{
			"id":            p.ID,
			"name":          p.Name,
			"money":         p.Money,
			"handCount":     len(p.Hand),
			"purchases":     p.Purchases,
			"paintingCount": p.PaintingCount(),
			"isAI":          p.IsAI,
		})
	}
	return views
}

func boardView(g *game.GameState) map[string]interface{} {
	values := make(map[string][]int, game.NumArtists)
	played := make(map[string][]game.Card, game.NumArtists)
	for a := 0; a < game.NumArtists; a++ {
		artist := game.Artist(a)
		values[artist.String()] = g.Board.ArtistValues[a][:]
		played[artist.String()] = g.Board.PlayedCards[a]
	}
	return map[string]interface{}{
		"artistValues": values,
		"playedCards":  played,
	}
}

func roundView(g *game.GameState, playerID string) map[string]interface{} {
	counts := make(map[string]int, game.NumArtists)
	for a := 0; a < game.NumArtists; a++ {
		counts[game.Artist(a).String()] = g.Round.CardsPlayedPerArtist[a]
	}
	view := map[string]interface{}{
		"roundNumber":          g.Round.RoundNumber,
		"phase":                g.Round.Phase,
		"cardsPlayedPerArtist": counts,
		"currentAuctioneer":    g.Players[g.Round.CurrentAuctioneerIndex].ID,
	}
	if g.Round.Auction != nil {
		view["auction"] = auctionView(g, g.Round.Auction, playerID)
	}
	if g.Round.RoundEndingArtist != nil {
		view["roundEndingArtist"] = g.Round.RoundEndingArtist.String()
	}
	if len(g.Round.SellResults) > 0 {
		view["sellResults"] = g.Round.SellResults
	}
	return view
}

// auctionView 拍卖状态快照。double 的内嵌拍卖递归展开。
func auctionView(g *game.GameState, a *game.AuctionState, playerID string) map[string]interface{} {
	view := map[string]interface{}{
		"kind":       a.Kind,
		"card":       a.Card,
		"auctioneer": g.Players[a.AuctioneerIndex].ID,
	}
	switch a.Kind {
	case game.AuctionOpen:
		view["highBid"] = a.Open.HighBid
		view["highBidder"] = seatID(g, a.Open.HighBidderIndex)
		view["passed"] = a.Open.Passed
		if a.Open.HighBidderIndex >= 0 {
			view["deadline"] = a.Open.Deadline.UnixMilli()
		}
	case game.AuctionOneOffer:
		view["turn"] = seatID(g, a.OneOffer.TurnIndex)
		view["acted"] = a.OneOffer.Acted
		view["highBid"] = a.OneOffer.HighBid
		view["highBidder"] = seatID(g, a.OneOffer.HighBidderIndex)
		view["awaitingAuctioneer"] = a.OneOffer.AwaitingAuctioneer
	case game.AuctionHidden:
		// 暗标金额开标前只给本人看，其他人只能看到是否已提交
		submitted := make([]bool, len(a.Hidden.Bids))
		for i, bid := range a.Hidden.Bids {
			submitted[i] = bid >= 0
		}
		view["submitted"] = submitted
		if seat, err := seatOf(g, playerID); err == nil && a.Hidden.Bids[seat] >= 0 {
			view["myBid"] = a.Hidden.Bids[seat]
		}
	case game.AuctionFixedPrice:
		view["price"] = a.Fixed.Price
		view["turn"] = seatID(g, a.Fixed.TurnIndex)
		view["passed"] = a.Fixed.Passed
	case game.AuctionDouble:
		view["firstCard"] = a.Double.FirstCard
		view["turn"] = seatID(g, a.Double.TurnIndex)
		view["declined"] = a.Double.Declined
		if a.Double.SecondCard != nil {
			view["secondCard"] = a.Double.SecondCard
			view["offeredBy"] = seatID(g, a.Double.OfferedBy)
		}
		if a.Double.Inner != nil {
			view["inner"] = auctionView(g, a.Double.Inner, playerID)
		}
	}
	return view
}

func seatID(g *game.GameState, seat int) string {
	if seat < 0 || seat >= len(g.Players) {
		return ""
	}
	return g.Players[seat].ID
}
