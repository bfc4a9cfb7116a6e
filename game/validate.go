package game

import "fmt"

// ValidateGameState 对整个状态做结构性体检。引擎不会在每次操作时隐式调用，
// 由调用方在需要的时机（例如反序列化之后）显式执行。
func (g *GameState) ValidateGameState() error {
	if len(g.Players) < 3 || len(g.Players) > 5 {
		return fmt.Errorf("玩家数量 %d 不在 3-5 之间: %w", len(g.Players), ErrInvalidState)
	}
	for i := range g.Players {
		if g.Players[i].Money < 0 {
			return fmt.Errorf("玩家 %s 余额为负 (%d): %w", g.Players[i].ID, g.Players[i].Money, ErrInvalidState)
		}
	}
	if g.Round.RoundNumber < 1 || g.Round.RoundNumber > NumRounds {
		return fmt.Errorf("轮次 %d 越界: %w", g.Round.RoundNumber, ErrInvalidState)
	}

	switch g.GamePhase {
	case GamePhaseSetup, GamePhasePlaying, GamePhaseEnded:
	default:
		return fmt.Errorf("未知的游戏阶段 %q: %w", g.GamePhase, ErrInvalidState)
	}
	if (g.Round.Phase == PhaseAuction) != (g.Round.Auction != nil) {
		return fmt.Errorf("拍卖阶段与拍卖状态不一致: %w", ErrInvalidState)
	}

	// 行情取值与每轮前三限制
	for artist := 0; artist < NumArtists; artist++ {
		for r := 0; r < NumRounds; r++ {
			switch g.Board.ArtistValues[artist][r] {
			case 0, 10, 20, 30:
			default:
				return fmt.Errorf("画家 %s 第 %d 轮行情 %d 非法: %w",
					Artist(artist), r+1, g.Board.ArtistValues[artist][r], ErrInvalidState)
			}
		}
	}
	for r := 0; r < NumRounds; r++ {
		nonzero := 0
		for artist := 0; artist < NumArtists; artist++ {
			if g.Board.ArtistValues[artist][r] > 0 {
				nonzero++
			}
		}
		if nonzero > 3 {
			return fmt.Errorf("第 %d 轮有 %d 个画家得分，超过前三限制: %w", r+1, nonzero, ErrInvalidState)
		}
	}

	for artist, count := range g.Round.CardsPlayedPerArtist {
		if count < 0 || count > MaxCardsPerArtist {
			return fmt.Errorf("画家 %s 本轮出牌数 %d 越界: %w", Artist(artist), count, ErrInvalidState)
		}
	}

	// 卡牌守恒：每张牌必须且只能出现在一个区域
	seen := make(map[int]string)
	record := func(card Card, zone string) error {
		if prev, ok := seen[card.ID]; ok {
			return fmt.Errorf("卡牌 %d 同时出现在 %s 和 %s: %w", card.ID, prev, zone, ErrInvalidState)
		}
		seen[card.ID] = zone
		return nil
	}
	for _, card := range g.Deck {
		if err := record(card, "deck"); err != nil {
			return err
		}
	}
	for _, card := range g.DiscardPile {
		if err := record(card, "discard"); err != nil {
			return err
		}
	}
	for artist := range g.Board.PlayedCards {
		for _, card := range g.Board.PlayedCards[artist] {
			if err := record(card, "board"); err != nil {
				return err
			}
		}
	}
	for i := range g.Players {
		zone := fmt.Sprintf("hand:%s", g.Players[i].ID)
		for _, card := range g.Players[i].Hand {
			if err := record(card, zone); err != nil {
				return err
			}
		}
		zone = fmt.Sprintf("purchases:%s", g.Players[i].ID)
		for _, painting := range g.Players[i].Purchases {
			if err := record(painting.Card, zone); err != nil {
				return err
			}
		}
	}
	if g.GamePhase != GamePhaseSetup && len(seen) != DeckSize {
		return fmt.Errorf("场上共 %d 张卡牌，应为 %d 张: %w", len(seen), DeckSize, ErrInvalidState)
	}
	return nil
}
