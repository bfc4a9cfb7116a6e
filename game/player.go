package game

// Painting 是某个玩家买下的卡牌及其成交信息
type Painting struct {
	Card           Card `json:"card"`
	PurchasePrice  int  `json:"purchasePrice"`
	PurchasedRound int  `json:"purchasedRound"`
	SalePrice      int  `json:"salePrice"` // 卖给银行前为 0
	SoldRound      int  `json:"soldRound"` // 卖给银行前为 0
}

type Player struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Money              int        `json:"money"`
	Hand               []Card     `json:"hand"`
	PurchasedThisRound []Painting `json:"purchasedThisRound"` // 本轮买入，每轮清空（Purchases 的子集视图）
	Purchases          []Painting `json:"purchases"`          // 当前持有且未卖给银行的画
	IsAI               bool       `json:"isAI"`
	AIDifficulty       string     `json:"aiDifficulty"` // 仅供决策层使用，引擎不读
}

// 初始资金
const StartingMoney = 100

// PaintingCount 当前持有的画作数量（用于终局平局判定）
func (p *Player) PaintingCount() int {
	return len(p.Purchases)
}

// removeHandCard 移除并返回指定下标的手牌
func (p *Player) removeHandCard(handIndex int) (Card, bool) {
	if handIndex < 0 || handIndex >= len(p.Hand) {
		return Card{}, false
	}
	card := p.Hand[handIndex]
	p.Hand = append(p.Hand[:handIndex], p.Hand[handIndex+1:]...)
	return card, true
}

// addPainting 把成交的卡牌登记到玩家名下
func (p *Player) addPainting(card Card, price, round int) {
	painting := Painting{
		Card:           card,
		PurchasePrice:  price,
		PurchasedRound: round,
	}
	p.Purchases = append(p.Purchases, painting)
	p.PurchasedThisRound = append(p.PurchasedThisRound, painting)
}
