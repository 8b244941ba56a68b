package apperrors

import (
	"github.com/palemoky/one-night-werewolf/internal/protocol"
)

// GameError 引擎错误（建局校验和指令边界共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrRoleCount       = &GameError{Code: protocol.ErrCodeRoleCount, Message: "角色数量必须等于玩家数加三"}
	ErrUnpairedMason   = &GameError{Code: protocol.ErrCodeUnpairedMason, Message: "守夜人必须成对出现"}
	ErrTooManyCopies   = &GameError{Code: protocol.ErrCodeTooManyCopies, Message: "角色超出允许的份数"}
	ErrDuplicatePlayer = &GameError{Code: protocol.ErrCodeDuplicatePlayer, Message: "玩家重复"}
	ErrWrongPhase      = &GameError{Code: protocol.ErrCodeWrongPhase, Message: "当前阶段不允许该操作"}
	ErrNotEligible     = &GameError{Code: protocol.ErrCodeNotEligible, Message: "您没有资格执行该操作"}
	ErrInvalidTarget   = &GameError{Code: protocol.ErrCodeInvalidTarget, Message: "无效的目标"}
	ErrDuplicateTarget = &GameError{Code: protocol.ErrCodeDuplicateTarget, Message: "目标不能重复"}
	ErrAlreadyVoted    = &GameError{Code: protocol.ErrCodeAlreadyVoted, Message: "您已经投过票了"}
	ErrGameFinished    = &GameError{Code: protocol.ErrCodeGameFinished, Message: "对局已结束"}
)
