package protocol

import (
	"encoding/json"
	"fmt"
)

// --- 指令 Payloads ---

// SelectPlayerPayload 选择一名玩家
type SelectPlayerPayload struct {
	TargetID string `json:"targetId"`
}

// SelectCenterPayload 选择一张中央牌
type SelectCenterPayload struct {
	Index int `json:"index"` // 0-2
}

// SelectTwoCentersPayload 选择两张不同的中央牌
type SelectTwoCentersPayload struct {
	Indexes [2]int `json:"indexes"`
}

// SelectTwoPlayersPayload 选择两名不同的玩家
type SelectTwoPlayersPayload struct {
	TargetIDs [2]string `json:"targetIds"`
}

// SeerChoicePayload 预言家查验模式
type SeerChoicePayload struct {
	Choice string `json:"choice"` // "player" 或 "center"
}

// StatementPayload 白天发言
type StatementPayload struct {
	Text string `json:"text"`
}

// VotePayload 投票
type VotePayload struct {
	TargetID string `json:"targetId"`
}

// DecodePayload 按指令类型解出具体载荷，格式错误对该条指令是致命的
func (c *Command) DecodePayload() (any, error) {
	decode := func(v any) (any, error) {
		if len(c.Payload) == 0 {
			return nil, fmt.Errorf("%w: 指令 %s 缺少载荷", ErrMalformedPayload, c.Type)
		}
		if err := json.Unmarshal(c.Payload, v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		return v, nil
	}

	switch c.Type {
	case CmdSelectPlayer:
		return decode(&SelectPlayerPayload{})
	case CmdSelectCenter:
		return decode(&SelectCenterPayload{})
	case CmdSelectTwoCenters:
		return decode(&SelectTwoCentersPayload{})
	case CmdSelectTwoPlayers:
		return decode(&SelectTwoPlayersPayload{})
	case CmdSeerChoice:
		return decode(&SeerChoicePayload{})
	case CmdStatement:
		return decode(&StatementPayload{})
	case CmdVote:
		return decode(&VotePayload{})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommandType, c.Type)
	}
}
