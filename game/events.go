package game

// 事件日志。只追加，引擎不会改写或删除历史条目，供前端回放动画和审计使用。

type EventType string

const (
	EventGameStarted        EventType = "game_started"
	EventRoundStarted       EventType = "round_started"
	EventCardPlayed         EventType = "card_played"
	EventBidPlaced          EventType = "bid_placed"
	EventBidPassed          EventType = "bid_passed"
	EventPriceSet           EventType = "price_set"
	EventHiddenBidSubmitted EventType = "hidden_bid_submitted"
	EventSecondCardOffered  EventType = "second_card_offered"
	EventSecondCardDeclined EventType = "second_card_declined"
	EventAuctionWon         EventType = "auction_won"
	EventAuctionNoSale      EventType = "auction_no_sale"
	EventRoundEnded         EventType = "round_ended"
	EventBankSale           EventType = "bank_sale"
	EventGameEnded          EventType = "game_ended"
)

type GameEvent struct {
	Seq   int                    `json:"seq"`
	Type  EventType              `json:"type"`
	Round int                    `json:"round"`
	Data  map[string]interface{} `json:"data,omitempty"`
}

func (g *GameState) appendEvent(t EventType, data map[string]interface{}) {
	g.EventLog = append(g.EventLog, GameEvent{
		Seq:   len(g.EventLog) + 1,
		Type:  t,
		Round: g.Round.RoundNumber,
		Data:  data,
	})
}

// EventsSince 返回序号大于 seq 的事件，供前端增量拉取
func (g *GameState) EventsSince(seq int) []GameEvent {
	var out []GameEvent
	for _, e := range g.EventLog {
		if e.Seq > seq {
			out = append(out, e)
		}
	}
	return out
}
