package game

import "errors"

// 引擎错误分类，调用方通过 errors.Is 判断
var (
	ErrInvalidArgument   = errors.New("参数无效")
	ErrInsufficientCards = errors.New("牌堆数量不足")
	ErrInsufficientFunds = errors.New("余额不足")
	ErrIllegalAction     = errors.New("非法操作")
	ErrInvalidState      = errors.New("游戏状态异常")
)
