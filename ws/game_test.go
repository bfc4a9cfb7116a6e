package ws

import (
	"sync"
	"testing"

	"go-modernart/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 处理器表在 init 里赋值，这里守住每种消息类型都注册到位
func TestMessageHandlersRegistered(t *testing.T) {
	expected := []string{
		"play_card",
		"place_bid",
		"pass_bid",
		"submit_hidden_bid",
		"set_fixed_price",
		"buy_fixed_price",
		"accept_high_bid",
		"self_purchase",
		"offer_second_card",
		"decline_second_card",
		"next_round",
		"restart_game",
	}
	require.Len(t, messageHandlers, len(expected))
	for _, msgType := range expected {
		assert.NotNil(t, messageHandlers[msgType], "消息类型 %s 没有注册处理器", msgType)
	}
}

func TestDispatchUnknownMessageType(t *testing.T) {
	// 未知类型只记日志，不崩也不派发
	assert.NotPanics(t, func() {
		dispatchMessage(&VirtualConn{PlayerID: "p"}, "no-room", "p", map[string]interface{}{
			"type": "bogus_type",
		})
		dispatchMessage(&VirtualConn{PlayerID: "p"}, "no-room", "p", map[string]interface{}{
			"payload": map[string]interface{}{},
		})
	})
}

// 两个房间的 AI 决策并发跑：决策里的随机抖动走的是带锁的包级随机源，
// go test -race 下不允许出现数据竞争
func TestNextAIActionConcurrentRooms(t *testing.T) {
	newOpenAuctionGame := func() *game.GameState {
		g := newAITestGame(t, true)
		g.Round.Phase = game.PhaseAuction
		g.Round.Auction = &game.AuctionState{
			Kind:            game.AuctionOpen,
			Card:            game.Card{ID: 1, Artist: game.Yoko, AuctionType: game.AuctionOpen},
			AuctioneerIndex: 0,
			Open: &game.OpenAuction{
				HighBidderIndex: -1,
				Passed:          make([]bool, 3),
			},
		}
		return g
	}

	var wg sync.WaitGroup
	for room := 0; room < 2; room++ {
		g := newOpenAuctionGame()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				playerID, msg := nextAIAction(g)
				assert.NotEmpty(t, playerID)
				assert.NotNil(t, msg)
			}
		}()
	}
	wg.Wait()
}
