package ws

import (
	"log"
	"time"

	"go-modernart/repository"
)

// ScheduleDailyRoomReset 每天凌晨 4 点清掉没有真人在线的房间
func ScheduleDailyRoomReset() {
	go func() {
		for {
			now := time.Now()
			next := time.Date(now.Year(), now.Month(), now.Day(), 4, 0, 0, 0, now.Location())
			if !next.After(now) {
				next = next.Add(24 * time.Hour)
			}
			time.Sleep(time.Until(next))
			sweepIdleRooms()
		}
	}()
}

func sweepIdleRooms() {
	roomLock.Lock()
	idle := []string{}
	for roomID, conns := range Rooms {
		hasHuman := false
		for _, pc := range conns {
			if !pc.IsAI && pc.Online {
				hasHuman = true
				break
			}
		}
		if !hasHuman {
			idle = append(idle, roomID)
		}
	}
	roomLock.Unlock()

	for _, roomID := range idle {
		if err := DeleteRoomData(repository.Rdb, repository.Ctx, roomID); err != nil {
			log.Println("❌ 清理房间失败:", err)
			continue
		}
		RemoveRoom(roomID)
		log.Printf("✅ 已清理空闲房间 %s", roomID)
	}
}
