package service

import (
	"fmt"
	"strings"

	"go-modernart/dto"
	"go-modernart/entities"
	"go-modernart/repository"
	"go-modernart/ws"

	"github.com/google/uuid"
)

func CreateRoom(params dto.CreateRoomRequest) (string, error) {
	rdb := repository.Rdb

	if params.MaxPlayers < 3 || params.MaxPlayers > 5 {
		return "", fmt.Errorf("房间人数 %d 不在 3-5 之间", params.MaxPlayers)
	}
	// 至少留一个真人座位
	if params.AIPlayers < 0 || params.AIPlayers > params.MaxPlayers-1 {
		return "", fmt.Errorf("AI 数量 %d 非法", params.AIPlayers)
	}

	// 生成唯一 Room ID（例如 8位）
	uuidStr := uuid.New().String()
	roomID := strings.ReplaceAll(uuidStr, "-", "")[:8]

	// 初始化房间信息
	err := ws.SetRoomInfo(rdb, repository.Ctx, roomID, entities.RoomInfo{
		MaxPlayers: params.MaxPlayers,
		AIPlayers:  params.AIPlayers,
		GameStatus: dto.RoomStatusWaiting,
		RoomStatus: false,
		UserID:     params.UserID,
	})
	if err != nil {
		return "", fmt.Errorf("初始化房间信息失败: %w", err)
	}

	ws.RegisterRoom(roomID, params.AIPlayers)
	return roomID, nil
}

func DeleteRoom(params dto.DeleteRoomRequest) error {
	if err := ws.DeleteRoomData(repository.Rdb, repository.Ctx, params.RoomID); err != nil {
		return err
	}
	ws.RemoveRoom(params.RoomID)
	return nil
}

func GetRoomList() ([]dto.RoomInfo, error) {
	rdb := repository.Rdb
	var rooms []dto.RoomInfo
	for roomID, roomConnInfo := range ws.Rooms {
		roomPlayers := make([]dto.RoomPlayer, 0, len(roomConnInfo))
		for _, player := range roomConnInfo {
			roomPlayers = append(roomPlayers, dto.RoomPlayer{
				PlayerID: player.PlayerID,
				Online:   player.Online,
				IsAI:     player.IsAI,
			})
		}

		roomInfo, err := ws.GetRoomInfo(rdb, roomID)
		if err != nil {
			delete(ws.Rooms, roomID)
			continue
		}
		room := dto.RoomInfo{
			RoomID:     roomID,
			UserID:     roomInfo.UserID,
			MaxPlayers: roomInfo.MaxPlayers,
			AIPlayers:  roomInfo.AIPlayers,
			Status:     roomInfo.RoomStatus,
			RoomPlayer: roomPlayers,
		}
		rooms = append(rooms, room)
	}

	return rooms, nil
}

func GetOnlinePlayer() (int, error) {
	onlinePlayer := 0
	for _, room := range ws.Rooms {
		for _, player := range room {
			if player.Online && !player.IsAI {
				onlinePlayer++
			}
		}
	}
	return onlinePlayer, nil
}
