package dto

import "github.com/gorilla/websocket"

type RoomInfo struct {
	RoomID     string       `json:"roomID"`
	UserID     string       `json:"userID"` // 房主
	MaxPlayers int          `json:"maxPlayers"`
	AIPlayers  int          `json:"aiPlayers"`
	Status     bool         `json:"status"`
	RoomPlayer []RoomPlayer `json:"roomPlayer"`
}

type RoomPlayer struct {
	PlayerID string `json:"playerID"`
	Online   bool   `json:"online"`
	IsAI     bool   `json:"isAI"`
}

type CreateRoomRequest struct {
	UserID     string `json:"userID"`
	MaxPlayers int    `json:"maxPlayers" binding:"required"` // 3-5 人
	AIPlayers  int    `json:"aiPlayers"`
}

type CreateRoomResponse struct {
	Room_id string `json:"room_id" binding:"required"`
}

type DeleteRoomRequest struct {
	RoomID string `json:"roomID" binding:"required"`
}

type GetRoomList struct {
	Rooms []RoomInfo `json:"rooms"`
}

// 玩家连接对象结构体；AI 玩家没有真实连接，Conn 为 nil
type PlayerConn struct {
	PlayerID string          // 玩家ID
	Conn     *websocket.Conn // 连接对象
	Online   bool
	IsAI     bool
}
