package protocol

import "errors"

// 错误码
const (
	ErrCodeUnknown         = 1000
	ErrCodeUnknownCommand  = 1001
	ErrCodeMalformed       = 1002
	ErrCodeRoleCount       = 2001
	ErrCodeUnpairedMason   = 2002
	ErrCodeTooManyCopies   = 2003
	ErrCodeDuplicatePlayer = 2004
	ErrCodeWrongPhase      = 3001
	ErrCodeNotEligible     = 3002
	ErrCodeInvalidTarget   = 3003
	ErrCodeDuplicateTarget = 3004
	ErrCodeAlreadyVoted    = 3005
	ErrCodeGameFinished    = 3006
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:         "未知错误",
	ErrCodeUnknownCommand:  "未知的指令类型",
	ErrCodeMalformed:       "指令载荷格式错误",
	ErrCodeRoleCount:       "角色数量必须等于玩家数加三",
	ErrCodeUnpairedMason:   "守夜人必须成对出现",
	ErrCodeTooManyCopies:   "角色超出允许的份数",
	ErrCodeDuplicatePlayer: "玩家重复",
	ErrCodeWrongPhase:      "当前阶段不允许该操作",
	ErrCodeNotEligible:     "您没有资格执行该操作",
	ErrCodeInvalidTarget:   "无效的目标",
	ErrCodeDuplicateTarget: "目标不能重复",
	ErrCodeAlreadyVoted:    "您已经投过票了",
	ErrCodeGameFinished:    "对局已结束",
}

// 反序列化哨兵错误，边界层用 errors.Is 区分
var (
	ErrUnknownCommandType = errors.New("未知的指令类型")
	ErrMalformedPayload   = errors.New("指令载荷格式错误")
)
