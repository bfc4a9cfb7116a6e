package game

import "sort"

const NumRounds = 4

// GameBoard 记录每轮各画家的行情和桌面上展示的卡牌
type GameBoard struct {
	// ArtistValues[artist][round-1] 取值只会是 0/10/20/30，非 0 仅限当轮前三名
	ArtistValues [NumArtists][NumRounds]int `json:"artistValues"`
	// 当前展示在各画家区域的卡牌，只用于计数展示，规则上不参与排名
	PlayedCards [NumArtists][]Card `json:"playedCards"`
}

// ArtistRank 排名结果，Rank 为 0 表示未入前三
type ArtistRank struct {
	Artist Artist `json:"artist"`
	Count  int    `json:"count"`
	Rank   int    `json:"rank"`
	Value  int    `json:"value"`
}

var rankValues = [3]int{30, 20, 10}

// RankArtists 按本轮出牌数量给五位画家排名。
// 数量相同按牌桌固定位置排序（枚举顺序靠前者优先），这是规则而不是实现细节。
// 前三名且出牌数大于 0 的画家获得 30/20/10，其余为 0。
func RankArtists(cardsPlayedPerArtist [NumArtists]int) [NumArtists]ArtistRank {
	order := make([]Artist, NumArtists)
	for i := range order {
		order[i] = Artist(i)
	}
	sort.SliceStable(order, func(i, j int) bool {
		ci := cardsPlayedPerArtist[order[i]]
		cj := cardsPlayedPerArtist[order[j]]
		if ci != cj {
			return ci > cj
		}
		return order[i] < order[j]
	})

	var result [NumArtists]ArtistRank
	for i := 0; i < NumArtists; i++ {
		result[i] = ArtistRank{Artist: Artist(i), Count: cardsPlayedPerArtist[i]}
	}
	for pos, artist := range order[:3] {
		if cardsPlayedPerArtist[artist] == 0 {
			continue
		}
		result[artist].Rank = pos + 1
		result[artist].Value = rankValues[pos]
	}
	return result
}

// GetArtistValue 计算画家在指定轮次的出售单价。
// 当轮掉出前三（当轮行情为 0）则一文不值，历史行情不累计；
// 否则为第 1 轮到当前轮行情的累计和。
func (b *GameBoard) GetArtistValue(artist Artist, round int) int {
	if artist < 0 || int(artist) >= NumArtists || round < 1 || round > NumRounds {
		return 0
	}
	if b.ArtistValues[artist][round-1] == 0 {
		return 0
	}
	total := 0
	for r := 0; r < round; r++ {
		total += b.ArtistValues[artist][r]
	}
	return total
}

// CalculatePaintingValue 画作在指定轮次卖给银行的价格
func (b *GameBoard) CalculatePaintingValue(painting Painting, round int) int {
	return b.GetArtistValue(painting.Card.Artist, round)
}

// UpdateBoardWithRoundResults 把本轮排名结果写入行情表，不回改历史轮次
func (b *GameBoard) UpdateBoardWithRoundResults(ranks [NumArtists]ArtistRank, round int) {
	if round < 1 || round > NumRounds {
		return
	}
	for _, r := range ranks {
		b.ArtistValues[r.Artist][round-1] = r.Value
	}
}
