package entities

import "go-modernart/dto"

// RoomInfo 写入 Redis 的房间元数据
type RoomInfo struct {
	RoomStatus bool           `json:"roomStatus"` // 人满且全部在线
	GameStatus dto.RoomStatus `json:"gameStatus"`
	MaxPlayers int            `json:"maxPlayers"`
	AIPlayers  int            `json:"aiPlayers"`
	UserID     string         `json:"userID"`
}
