package game

import "fmt"

// 资金操作。玩家之间的转账总额守恒，只有银行收付会改变场上资金总量。

func findPlayer(players []Player, id string) int {
	for i := range players {
		if players[i].ID == id {
			return i
		}
	}
	return -1
}

// TransferMoney 玩家之间转账。
// fromId == toId 时不做任何事；toId 不存在时只扣款不入账（资金销毁，历史行为，保留）。
func TransferMoney(players []Player, fromID, toID string, amount int) error {
	if amount < 0 {
		return fmt.Errorf("转账金额 %d 非法: %w", amount, ErrInsufficientFunds)
	}
	if fromID == toID {
		return nil
	}
	from := findPlayer(players, fromID)
	if from < 0 {
		return fmt.Errorf("付款玩家 %s 不存在: %w", fromID, ErrIllegalAction)
	}
	if players[from].Money < amount {
		return fmt.Errorf("玩家 %s 余额 %d 不足以支付 %d: %w", fromID, players[from].Money, amount, ErrInsufficientFunds)
	}
	players[from].Money -= amount
	if to := findPlayer(players, toID); to >= 0 {
		players[to].Money += amount
	}
	return nil
}

// PayToBank 玩家向银行付款，场上资金总量减少
func PayToBank(players []Player, playerID string, amount int) error {
	if amount < 0 {
		return fmt.Errorf("付款金额 %d 非法: %w", amount, ErrInsufficientFunds)
	}
	idx := findPlayer(players, playerID)
	if idx < 0 {
		return fmt.Errorf("玩家 %s 不存在: %w", playerID, ErrIllegalAction)
	}
	if players[idx].Money < amount {
		return fmt.Errorf("玩家 %s 余额 %d 不足以支付 %d: %w", playerID, players[idx].Money, amount, ErrInsufficientFunds)
	}
	players[idx].Money -= amount
	return nil
}

// ReceiveFromBank 银行向玩家付款，场上资金总量增加
func ReceiveFromBank(players []Player, playerID string, amount int) error {
	if amount < 0 {
		return fmt.Errorf("收款金额 %d 非法: %w", amount, ErrInsufficientFunds)
	}
	idx := findPlayer(players, playerID)
	if idx < 0 {
		return fmt.Errorf("玩家 %s 不存在: %w", playerID, ErrIllegalAction)
	}
	players[idx].Money += amount
	return nil
}

// AuctionPayment 一次拍卖成交的付款信息
type AuctionPayment struct {
	WinnerID     string `json:"winnerId"`
	AuctioneerID string `json:"auctioneerId"`
	SalePrice    int    `json:"salePrice"`
}

// ProcessAuctionPayment 结算拍卖货款。
// 买家与拍卖人不同则直接点对点转账（不经银行）；拍卖人买下自己的拍品则付给银行。
// SalePrice 为 0 时等价于无转账。
func ProcessAuctionPayment(players []Player, payment AuctionPayment) error {
	if payment.SalePrice == 0 {
		return nil
	}
	if payment.WinnerID == payment.AuctioneerID {
		return PayToBank(players, payment.WinnerID, payment.SalePrice)
	}
	return TransferMoney(players, payment.WinnerID, payment.AuctioneerID, payment.SalePrice)
}

// ProcessBankSale 轮末画作卖给银行的入账
func ProcessBankSale(players []Player, playerID string, value int) error {
	return ReceiveFromBank(players, playerID, value)
}

// TotalMoney 场上资金总量（测试与校验用）
func TotalMoney(players []Player) int {
	total := 0
	for i := range players {
		total += players[i].Money
	}
	return total
}
