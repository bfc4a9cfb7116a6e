package dto

// 房间对局状态（对局内部的阶段由引擎自己维护）
type RoomStatus string

const (
	RoomStatusWaiting RoomStatus = "waiting"
	RoomStatusPlaying RoomStatus = "playing"
	RoomStatusEnded   RoomStatus = "ended"
)

// WebSocket 消息的 payload，由 mapstructure 从 map 解码

type PlayCardPayload struct {
	HandIndex int `json:"handIndex"`
}

type BidPayload struct {
	Amount int `json:"amount"`
}

type PricePayload struct {
	Price int `json:"price"`
}

type OfferPayload struct {
	HandIndex int `json:"handIndex"`
}
