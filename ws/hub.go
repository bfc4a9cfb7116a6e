package ws

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"go-modernart/dto"
	"go-modernart/game"
	"go-modernart/repository"
	"go-modernart/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// 房间内的所有连接（含 AI 的虚拟座位）
var Rooms = make(map[string][]dto.PlayerConn)
var roomLock sync.Mutex

// 每个房间一局游戏。引擎内部不加锁，所有读写都必须持有 gameLock
var games = make(map[string]*game.GameState)
var gameLock sync.Mutex

// RegisterRoom 创建房间时登记，AI 玩家直接占座
func RegisterRoom(roomID string, aiPlayers int) {
	roomLock.Lock()
	defer roomLock.Unlock()

	conns := []dto.PlayerConn{}
	for i := 0; i < aiPlayers; i++ {
		conns = append(conns, dto.PlayerConn{
			PlayerID: "ai_" + utils.RandString(6),
			Online:   true,
			IsAI:     true,
		})
	}
	Rooms[roomID] = conns
}

// RemoveRoom 删除房间及其对局
func RemoveRoom(roomID string) {
	roomLock.Lock()
	delete(Rooms, roomID)
	roomLock.Unlock()

	gameLock.Lock()
	delete(games, roomID)
	gameLock.Unlock()
}

// withGame 在持锁状态下访问房间对局
func withGame(roomID string, fn func(g *game.GameState) error) error {
	gameLock.Lock()
	defer gameLock.Unlock()

	g, ok := games[roomID]
	if !ok {
		return fmt.Errorf("房间 %s 的对局尚未开始", roomID)
	}
	return fn(g)
}

// seatOf 玩家在引擎中的座位（入座顺序即座位顺序）
func seatOf(g *game.GameState, playerID string) (int, error) {
	for i := range g.Players {
		if g.Players[i].ID == playerID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("玩家 %s 不在本局中", playerID)
}

// 构建一条统一格式的消息（type + data）
func buildMessage(msgType string, data map[string]interface{}) []byte {
	if data == nil {
		data = make(map[string]interface{})
	}
	data["type"] = msgType // 加入消息类型字段
	msg, _ := json.Marshal(data)
	return msg
}

// 向单个客户端发送初始化消息（初始化自己的 playerId）
func sendInitMessage(conn *websocket.Conn, playerID string) {
	conn.WriteMessage(websocket.TextMessage, buildMessage("init", map[string]interface{}{
		"playerId": playerID,
	}))
}

func sendError(conn WriteOnlyConn, err error) {
	conn.WriteMessage(websocket.TextMessage, buildMessage("error", map[string]interface{}{
		"message": err.Error(),
	}))
}

// 房间在线人数（AI 永远在线）
func getOnlineCount(roomID string) int {
	roomLock.Lock()
	defer roomLock.Unlock()

	count := 0
	for _, pc := range Rooms[roomID] {
		if pc.Online {
			count++
		}
	}
	return count
}

// 校验房间是否有空位，并将玩家加入房间；掉线玩家按 ID 重连回原座位
func validateAndJoinRoom(roomID, playerID string, conn *websocket.Conn) (bool, int) {
	roomInfo, err := GetRoomInfo(repository.Rdb, roomID)
	if err != nil {
		log.Println("❌ 获取房间信息失败:", err)
		return false, 0
	}

	roomLock.Lock()
	defer roomLock.Unlock()

	for i, pc := range Rooms[roomID] {
		if pc.PlayerID == playerID {
			if pc.Conn != nil {
				pc.Conn.Close()
			}
			Rooms[roomID][i].Conn = conn
			Rooms[roomID][i].Online = true
			log.Printf("✅ 玩家 %s 重连回房间 %s", playerID, roomID)
			return true, roomInfo.MaxPlayers
		}
	}

	if len(Rooms[roomID]) >= roomInfo.MaxPlayers {
		return false, roomInfo.MaxPlayers
	}
	Rooms[roomID] = append(Rooms[roomID], dto.PlayerConn{
		PlayerID: playerID,
		Conn:     conn,
		Online:   true,
		IsAI:     IsAIPlayer(playerID),
	})
	return true, roomInfo.MaxPlayers
}

func IsAIPlayer(playerID string) bool {
	return strings.HasPrefix(playerID, "ai_")
}

// 玩家断开连接后只标记离线，座位保留等待重连
func cleanupOnDisconnect(roomID, playerID string, conn *websocket.Conn) {
	roomLock.Lock()
	defer roomLock.Unlock()

	for i, pc := range Rooms[roomID] {
		if pc.PlayerID == playerID && pc.Conn == conn {
			Rooms[roomID][i].Online = false
			Rooms[roomID][i].Conn = nil
		}
	}
	if err := SetRoomStatus(repository.Rdb, roomID, false); err != nil {
		log.Println("❌ 设置房间状态失败:", err)
	}
	log.Printf("玩家 %s 离开房间 %s\n", playerID, roomID)
}

// startGameIfReady 人满且都在线时开局；重连进行中的对局不重开
func startGameIfReady(roomID string, maxPlayers int) {
	roomLock.Lock()
	conns := make([]dto.PlayerConn, len(Rooms[roomID]))
	copy(conns, Rooms[roomID])
	roomLock.Unlock()

	if len(conns) < maxPlayers {
		return
	}
	for _, pc := range conns {
		if !pc.Online {
			return
		}
	}

	gameLock.Lock()
	defer gameLock.Unlock()
	if _, ok := games[roomID]; ok {
		return
	}

	players := make([]game.Player, len(conns))
	for i, pc := range conns {
		players[i] = game.Player{
			ID:   pc.PlayerID,
			Name: pc.PlayerID,
			IsAI: pc.IsAI,
		}
	}
	g, err := game.NewGame(players, uint64(time.Now().UnixNano()))
	if err != nil {
		log.Println("❌ 开局失败:", err)
		return
	}
	games[roomID] = g

	if err := SetRoomStatus(repository.Rdb, roomID, true); err != nil {
		log.Println("❌ 设置房间状态失败:", err)
	}
	if err := SetGameStatus(repository.Rdb, roomID, dto.RoomStatusPlaying); err != nil {
		log.Println("❌ 设置对局状态失败:", err)
	}
	log.Printf("✅ 房间 %s 开局，玩家数=%d", roomID, len(players))
}

// 持续监听客户端消息并派发给对应的处理器
func listenMessages(conn *websocket.Conn, roomID, playerID string) {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			log.Println("读取消息失败:", err)
			break
		}
		msgMap := make(map[string]interface{})
		if err := json.Unmarshal(msg, &msgMap); err != nil {
			log.Println("消息解析失败:", err)
			continue
		}
		dispatchMessage(conn, roomID, playerID, msgMap)
		broadcastToRoom(roomID)
		MaybeRunAI(roomID)
	}
}

func dispatchMessage(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) {
	msgType, ok := msgMap["type"].(string)
	if !ok {
		return
	}
	if handler, found := messageHandlers[msgType]; found {
		handler(conn, roomID, playerID, msgMap)
	} else {
		log.Printf("⚠️ 未知的消息类型: %s", msgType)
	}
}

// 将 HTTP 请求升级为 WebSocket 连接
func upgradeConnection(c *gin.Context) (*websocket.Conn, error) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket 升级失败:", err)
	}
	return conn, err
}

// WebSocket 主入口（处理每个连接）
func HandleWebSocket(c *gin.Context) {
	conn, err := upgradeConnection(c)
	if err != nil {
		return
	}
	defer conn.Close()

	roomID := c.Query("roomID")
	if roomID == "" {
		log.Println("缺少 roomID")
		return
	}

	// 获取玩家 ID（从前端传来的 userId）
	playerID := c.Query("userId")
	if playerID == "" {
		log.Println("缺少 userId")
		return
	}

	ok, maxPlayers := validateAndJoinRoom(roomID, playerID, conn)
	if !ok {
		conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"error","message":"房间已满"}`))
		return
	}
	// 离开时清理资源
	defer cleanupOnDisconnect(roomID, playerID, conn)

	sendInitMessage(conn, playerID)

	playerCount := getOnlineCount(roomID)
	log.Printf("玩家加入 room=%s，ID=%s，当前人数=%d/%d", roomID, playerID, playerCount, maxPlayers)

	startGameIfReady(roomID, maxPlayers)
	broadcastToRoom(roomID)
	MaybeRunAI(roomID)

	listenMessages(conn, roomID, playerID)
}
