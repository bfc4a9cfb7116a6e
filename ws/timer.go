package ws

import (
	"log"
	"time"

	"go-modernart/game"
)

// 公开喊价的倒计时由宿主驱动：每次出价后挂一个到点结算的定时器。
// 新出价会产生新的截止时间，旧定时器醒来发现截止时间变了就直接放弃。
func armOpenAuctionTimer(roomID string, deadline time.Time) {
	go func() {
		time.Sleep(time.Until(deadline) + 100*time.Millisecond)

		fired := false
		gameLock.Lock()
		g := games[roomID]
		if g != nil && g.Round.Auction != nil {
			a := activeAuction(g.Round.Auction)
			if a.Kind == game.AuctionOpen && a.Open.HighBidderIndex >= 0 && a.Open.Deadline.Equal(deadline) {
				if err := g.TickAuction(time.Now()); err != nil {
					log.Println("❌ 倒计时结算失败:", err)
				} else {
					fired = true
				}
			}
		}
		gameLock.Unlock()

		if fired {
			broadcastToRoom(roomID)
			MaybeRunAI(roomID)
		}
	}()
}
