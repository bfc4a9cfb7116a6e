package ws

import (
	"encoding/json"
	"testing"

	"go-modernart/dto"
	"go-modernart/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeSync(t *testing.T, raw []byte) map[string]interface{} {
	t.Helper()
	msg := make(map[string]interface{})
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestSyncMessageMasksOtherHands(t *testing.T) {
	g := newAITestGame(t, false)
	conns := []dto.PlayerConn{
		{PlayerID: "ai_aaa", Online: true, IsAI: true},
		{PlayerID: "h1", Online: true},
		{PlayerID: "h2", Online: true},
	}

	msg := decodeSync(t, buildSyncMessage(g, "r1", "h1", conns))
	assert.Equal(t, "sync", msg["type"])

	// 自己能看到整手牌
	playerData := msg["playerData"].(map[string]interface{})
	hand := playerData["hand"].([]interface{})
	assert.Len(t, hand, 10)

	// 别人只给数量
	roomData := msg["roomData"].(map[string]interface{})
	for _, v := range roomData["players"].([]interface{}) {
		p := v.(map[string]interface{})
		assert.Equal(t, float64(10), p["handCount"])
		_, hasHand := p["hand"]
		assert.False(t, hasHand)
	}
}

func TestSyncMessageMasksHiddenBids(t *testing.T) {
	g := newAITestGame(t, false)
	card := game.Card{ID: 1, Artist: game.Yoko, AuctionType: game.AuctionHidden}
	g.Round.Phase = game.PhaseAuction
	g.Round.Auction = &game.AuctionState{
		Kind:            game.AuctionHidden,
		Card:            card,
		AuctioneerIndex: 0,
		Hidden:          &game.HiddenAuction{Bids: []int{12, -1, -1}},
	}
	conns := []dto.PlayerConn{
		{PlayerID: "ai_aaa", Online: true, IsAI: true},
		{PlayerID: "h1", Online: true},
		{PlayerID: "h2", Online: true},
	}

	// 已出标的人能看到自己的金额
	msg := decodeSync(t, buildSyncMessage(g, "r1", "ai_aaa", conns))
	auction := msg["roomData"].(map[string]interface{})["round"].(map[string]interface{})["auction"].(map[string]interface{})
	assert.Equal(t, float64(12), auction["myBid"])
	assert.Equal(t, []interface{}{true, false, false}, auction["submitted"])

	// 其他人只能看到谁已提交，看不到任何金额
	msg = decodeSync(t, buildSyncMessage(g, "r1", "h1", conns))
	auction = msg["roomData"].(map[string]interface{})["round"].(map[string]interface{})["auction"].(map[string]interface{})
	_, hasBid := auction["myBid"]
	assert.False(t, hasBid)
	_, hasBids := auction["bids"]
	assert.False(t, hasBids)
}

func TestSyncMessageWaitingRoom(t *testing.T) {
	conns := []dto.PlayerConn{{PlayerID: "h1", Online: true}}
	msg := decodeSync(t, buildSyncMessage(nil, "r9", "h1", conns))

	assert.Equal(t, "sync", msg["type"])
	roomData := msg["roomData"].(map[string]interface{})
	assert.Equal(t, "r9", roomData["roomId"])
	_, hasBoard := roomData["board"]
	assert.False(t, hasBoard)
}
