package ws

import "log"

// WriteOnlyConn 抽象出下行连接，真实玩家是 *websocket.Conn，
// AI 玩家用 VirtualConn 占位
type WriteOnlyConn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// VirtualConn AI 玩家的虚拟连接，收到的消息直接丢弃
type VirtualConn struct {
	PlayerID string
}

func (v *VirtualConn) WriteMessage(messageType int, data []byte) error {
	return nil
}

func (v *VirtualConn) Close() error {
	log.Printf("🤖 虚拟连接关闭: %s", v.PlayerID)
	return nil
}
