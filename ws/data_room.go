package ws

import (
	"context"
	"fmt"
	"strconv"

	"go-modernart/dto"
	"go-modernart/entities"
	"go-modernart/repository"

	"github.com/go-redis/redis/v8"
	"github.com/mitchellh/mapstructure"
)

func roomInfoKey(roomID string) string {
	return fmt.Sprintf("room:%s:info", roomID)
}

// SetRoomInfo 写入房间元数据
func SetRoomInfo(rdb *redis.Client, ctx context.Context, roomID string, info entities.RoomInfo) error {
	fields := map[string]interface{}{
		"roomStatus": strconv.FormatBool(info.RoomStatus),
		"gameStatus": string(info.GameStatus),
		"maxPlayers": info.MaxPlayers,
		"aiPlayers":  info.AIPlayers,
		"userID":     info.UserID,
	}
	if _, err := rdb.HSet(ctx, roomInfoKey(roomID), fields).Result(); err != nil {
		return fmt.Errorf("写入房间信息失败: %w", err)
	}
	return nil
}

// GetRoomInfo 读取房间元数据
func GetRoomInfo(rdb *redis.Client, roomID string) (entities.RoomInfo, error) {
	var info entities.RoomInfo

	fields, err := rdb.HGetAll(repository.Ctx, roomInfoKey(roomID)).Result()
	if err != nil {
		return info, fmt.Errorf("读取房间信息失败: %w", err)
	}
	if len(fields) == 0 {
		return info, fmt.Errorf("房间 %s 不存在", roomID)
	}

	// Redis 哈希的值都是字符串，弱类型解码转回数字和布尔
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &info,
	})
	if err != nil {
		return info, err
	}
	if err := decoder.Decode(fields); err != nil {
		return info, fmt.Errorf("解析房间信息失败: %w", err)
	}
	return info, nil
}

func SetRoomStatus(rdb *redis.Client, roomID string, status bool) error {
	_, err := rdb.HSet(repository.Ctx, roomInfoKey(roomID), "roomStatus", strconv.FormatBool(status)).Result()
	if err != nil {
		return fmt.Errorf("设置房间状态失败: %w", err)
	}
	return nil
}

func SetGameStatus(rdb *redis.Client, roomID string, status dto.RoomStatus) error {
	_, err := rdb.HSet(repository.Ctx, roomInfoKey(roomID), "gameStatus", string(status)).Result()
	if err != nil {
		return fmt.Errorf("设置对局状态失败: %w", err)
	}
	return nil
}

// DeleteRoomData 删除房间在 Redis 里的全部 key
func DeleteRoomData(rdb *redis.Client, ctx context.Context, roomID string) error {
	prefix := fmt.Sprintf("room:%s:", roomID)
	var cursor uint64
	var keysToDelete []string

	for {
		keys, cur, err := rdb.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("扫描房间相关 key 失败: %w", err)
		}
		keysToDelete = append(keysToDelete, keys...)
		cursor = cur
		if cursor == 0 {
			break
		}
	}

	if len(keysToDelete) == 0 {
		return nil
	}
	if _, err := rdb.Del(ctx, keysToDelete...).Result(); err != nil {
		return fmt.Errorf("删除房间相关 key 失败: %w", err)
	}
	return nil
}
