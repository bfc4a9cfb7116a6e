package game

import "fmt"

// 轮次与全局状态机。一轮的流转：
// awaiting_card_play -> auction -> (回到 awaiting_card_play | round_ending)
// -> selling_to_bank -> round_complete -> 下一轮或终局。

// 单个画家一轮内的出牌上限，打出第 5 张立即结束本轮
const MaxCardsPerArtist = 5

// PlayCard 当前拍卖人打出一张手牌。
// 这张牌如果是该画家本轮的第 5 张，本轮立即结束，这张牌不进行任何拍卖；
// 否则按牌上的拍卖类型开始一场拍卖。
func (g *GameState) PlayCard(playerIndex, handIndex int) error {
	if g.GamePhase != GamePhasePlaying {
		return fmt.Errorf("游戏不在进行中: %w", ErrIllegalAction)
	}
	if g.Round.Phase != PhaseAwaitingCardPlay {
		return fmt.Errorf("当前阶段 %s 不能出牌: %w", g.Round.Phase, ErrIllegalAction)
	}
	if err := g.checkPlayerIndex(playerIndex); err != nil {
		return err
	}
	if playerIndex != g.Round.CurrentAuctioneerIndex {
		return fmt.Errorf("还没轮到玩家 %d 出牌: %w", playerIndex, ErrIllegalAction)
	}

	player := &g.Players[playerIndex]
	card, ok := player.removeHandCard(handIndex)
	if !ok {
		return fmt.Errorf("手牌下标 %d 越界: %w", handIndex, ErrIllegalAction)
	}

	g.Board.PlayedCards[card.Artist] = append(g.Board.PlayedCards[card.Artist], card)
	g.Round.CardsPlayedPerArtist[card.Artist]++

	g.appendEvent(EventCardPlayed, map[string]interface{}{
		"player":      player.ID,
		"cardId":      card.ID,
		"artist":      card.Artist.String(),
		"auctionType": string(card.AuctionType),
		"count":       g.Round.CardsPlayedPerArtist[card.Artist],
	})

	if g.Round.CardsPlayedPerArtist[card.Artist] >= MaxCardsPerArtist {
		// 第 5 张牌直接终结本轮，跳过这张牌的拍卖
		artist := card.Artist
		g.Round.RoundEndingArtist = &artist
		g.transitionRoundEnding()
		return nil
	}

	g.Round.Auction = newAuction(card, playerIndex, g.playerCount())
	g.Round.Phase = PhaseAuction
	return nil
}

// ShouldRoundEnd 某画家达到 5 张，或所有玩家手牌打空
func (g *GameState) ShouldRoundEnd() bool {
	for _, count := range g.Round.CardsPlayedPerArtist {
		if count >= MaxCardsPerArtist {
			return true
		}
	}
	for i := range g.Players {
		if len(g.Players[i].Hand) > 0 {
			return false
		}
	}
	return true
}

// advanceAfterAuction 拍卖结算完毕后推进：轮末或交给下一个有手牌的玩家
func (g *GameState) advanceAfterAuction() {
	if g.ShouldRoundEnd() {
		g.transitionRoundEnding()
		return
	}
	next := g.nextSeatWithCards(g.Round.CurrentAuctioneerIndex)
	g.Round.CurrentAuctioneerIndex = next
	g.Round.Phase = PhaseAwaitingCardPlay
}

func (g *GameState) transitionRoundEnding() {
	var unsold []Card
	for i := range g.Players {
		unsold = append(unsold, g.Players[i].Hand...)
	}
	g.Round.UnsoldCards = unsold
	g.Round.Phase = PhaseRoundEnding
}

// EndRound 轮末结算的第一步：计算并写入本轮行情，然后进入银行收购阶段
func (g *GameState) EndRound() error {
	if g.GamePhase != GamePhasePlaying {
		return fmt.Errorf("游戏不在进行中: %w", ErrIllegalAction)
	}
	if g.Round.Phase != PhaseRoundEnding {
		return fmt.Errorf("当前阶段 %s 不能结束本轮: %w", g.Round.Phase, ErrIllegalAction)
	}

	ranks := RankArtists(g.Round.CardsPlayedPerArtist)
	g.Board.UpdateBoardWithRoundResults(ranks, g.Round.RoundNumber)

	rankData := make([]map[string]interface{}, 0, NumArtists)
	for _, r := range ranks {
		rankData = append(rankData, map[string]interface{}{
			"artist": r.Artist.String(),
			"count":  r.Count,
			"rank":   r.Rank,
			"value":  r.Value,
		})
	}
	g.appendEvent(EventRoundEnded, map[string]interface{}{
		"round": g.Round.RoundNumber,
		"ranks": rankData,
	})

	g.Round.Phase = PhaseSellingToBank
	return nil
}

// SellToBank 银行收购本轮有行情的画作：按累计行情入账、画作进弃牌堆。
// 本轮没排进前三的画家的画不卖，留在玩家手里等后续轮次。
func (g *GameState) SellToBank() error {
	if g.GamePhase != GamePhasePlaying {
		return fmt.Errorf("游戏不在进行中: %w", ErrIllegalAction)
	}
	if g.Round.Phase != PhaseSellingToBank {
		return fmt.Errorf("当前阶段 %s 不能进行银行收购: %w", g.Round.Phase, ErrIllegalAction)
	}

	round := g.Round.RoundNumber
	var results []BankSaleResult
	for i := range g.Players {
		player := &g.Players[i]
		var kept []Painting
		for _, painting := range player.Purchases {
			value := g.Board.CalculatePaintingValue(painting, round)
			if value == 0 {
				kept = append(kept, painting)
				continue
			}
			painting.SalePrice = value
			painting.SoldRound = round
			// 银行收购的入账不会失败（金额非负、玩家必然存在）
			_ = ProcessBankSale(g.Players, player.ID, value)
			g.DiscardPile = append(g.DiscardPile, painting.Card)
			results = append(results, BankSaleResult{
				PlayerID: player.ID,
				Painting: painting,
				Value:    value,
			})
			g.appendEvent(EventBankSale, map[string]interface{}{
				"player": player.ID,
				"cardId": painting.Card.ID,
				"value":  value,
			})
		}
		player.Purchases = kept
	}

	g.Round.SellResults = results
	g.Round.Phase = PhaseRoundComplete
	return nil
}

// NextRound 进入下一轮：清理本轮状态、顺延起始拍卖人、按表补发手牌。
// 在第 4 轮调用则直接终局；满足提前终局条件时同样终局。
func (g *GameState) NextRound() error {
	if g.GamePhase != GamePhasePlaying {
		return fmt.Errorf("游戏不在进行中: %w", ErrIllegalAction)
	}
	if g.Round.Phase != PhaseRoundComplete {
		return fmt.Errorf("当前阶段 %s 不能进入下一轮: %w", g.Round.Phase, ErrIllegalAction)
	}

	// 桌面上未成交的牌（double 流标、终轮牌）进弃牌堆
	for artist := range g.Board.PlayedCards {
		g.DiscardPile = append(g.DiscardPile, g.Board.PlayedCards[artist]...)
		g.Board.PlayedCards[artist] = nil
	}

	if g.Round.RoundNumber >= NumRounds || g.CheckEarlyGameEnd() {
		g.endGame()
		return nil
	}

	nextRound := g.Round.RoundNumber + 1
	hands, remaining, err := DealCards(g.Deck, g.playerCount(), nextRound)
	if err != nil {
		return err
	}
	g.Deck = remaining
	for i := range g.Players {
		g.Players[i].Hand = append(g.Players[i].Hand, hands[i]...)
		g.Players[i].PurchasedThisRound = nil
	}

	startingAuctioneer := g.nextSeat(g.Round.StartingAuctioneerIndex)
	g.Round = RoundState{
		RoundNumber:             nextRound,
		CurrentAuctioneerIndex:  startingAuctioneer,
		StartingAuctioneerIndex: startingAuctioneer,
		Phase:                   PhaseAwaitingCardPlay,
	}
	// 起始拍卖人可能已无手牌（第 4 轮不发牌），顺延到下一个有牌的玩家
	if len(g.Players[startingAuctioneer].Hand) == 0 {
		if next := g.nextSeatWithCards(startingAuctioneer); next >= 0 {
			g.Round.CurrentAuctioneerIndex = next
		} else {
			g.transitionRoundEnding()
		}
	}

	g.appendEvent(EventRoundStarted, map[string]interface{}{
		"round":      nextRound,
		"auctioneer": g.Players[g.Round.CurrentAuctioneerIndex].ID,
	})
	return nil
}

// CheckEarlyGameEnd 提前终局条件：牌堆和所有手牌同时为空；
// 或全员破产；或只剩一名玩家还有钱。
func (g *GameState) CheckEarlyGameEnd() bool {
	if len(g.Deck) == 0 {
		empty := true
		for i := range g.Players {
			if len(g.Players[i].Hand) > 0 {
				empty = false
				break
			}
		}
		if empty {
			return true
		}
	}
	withMoney := 0
	for i := range g.Players {
		if g.Players[i].Money > 0 {
			withMoney++
		}
	}
	return withMoney <= 1
}

func (g *GameState) endGame() {
	standings, winner := g.DetermineWinner()
	g.Winner = winner
	g.GamePhase = GamePhaseEnded

	standingData := make([]map[string]interface{}, 0, len(standings))
	for _, s := range standings {
		standingData = append(standingData, map[string]interface{}{
			"player":    s.PlayerID,
			"money":     s.Money,
			"paintings": s.PaintingCount,
			"rank":      s.Rank,
		})
	}
	g.appendEvent(EventGameEnded, map[string]interface{}{
		"standings": standingData,
		"winners":   winner.PlayerIDs,
		"shared":    winner.Shared,
	})
}

// DetermineWinner 终局排名：资金多者胜，平局比画作数量，仍平则并列（不做任意裁定）
func (g *GameState) DetermineWinner() ([]PlayerStanding, *Winner) {
	standings := make([]PlayerStanding, len(g.Players))
	for i := range g.Players {
		standings[i] = PlayerStanding{
			PlayerID:      g.Players[i].ID,
			Money:         g.Players[i].Money,
			PaintingCount: g.Players[i].PaintingCount(),
		}
	}
	// 插入排序，量级只有 3-5 人
	for i := 1; i < len(standings); i++ {
		for j := i; j > 0; j-- {
			a, b := standings[j-1], standings[j]
			if b.Money > a.Money || (b.Money == a.Money && b.PaintingCount > a.PaintingCount) {
				standings[j-1], standings[j] = b, a
			}
		}
	}
	rank := 0
	for i := range standings {
		if i == 0 || standings[i].Money != standings[i-1].Money || standings[i].PaintingCount != standings[i-1].PaintingCount {
			rank = i + 1
		}
		standings[i].Rank = rank
	}

	winner := &Winner{}
	for _, s := range standings {
		if s.Rank != 1 {
			break
		}
		winner.PlayerIDs = append(winner.PlayerIDs, s.PlayerID)
	}
	winner.Shared = len(winner.PlayerIDs) > 1
	return standings, winner
}
