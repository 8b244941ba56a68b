package protocol

import "slices"

// ValidationContext 指令校验上下文，由编排器在收集指令前预先计算
type ValidationContext struct {
	Phase        string        // 当前阶段名
	AllowedTypes []CommandType // 当前阶段允许的指令类型
	Eligible     []string      // 有资格发出指令的玩家 ID
	ValidTargets []string      // 预计算的合法目标，空表示不限制
}

// Validate 在指令到达策略之前完成全部校验，失败时游戏状态不受影响
func (c *Command) Validate(vc ValidationContext) *CommandError {
	if !slices.Contains(vc.AllowedTypes, c.Type) {
		return NewCommandError(ErrCodeWrongPhase, c)
	}
	if !slices.Contains(vc.Eligible, c.PlayerID) {
		return NewCommandError(ErrCodeNotEligible, c)
	}

	payload, err := c.DecodePayload()
	if err != nil {
		return NewCommandError(ErrCodeMalformed, c)
	}

	inTargets := func(id string) bool {
		return len(vc.ValidTargets) == 0 || slices.Contains(vc.ValidTargets, id)
	}

	switch p := payload.(type) {
	case *SelectPlayerPayload:
		if p.TargetID == "" || !inTargets(p.TargetID) {
			return NewCommandError(ErrCodeInvalidTarget, c)
		}
	case *SelectCenterPayload:
		if p.Index < 0 || p.Index > 2 {
			return NewCommandError(ErrCodeInvalidTarget, c)
		}
	case *SelectTwoCentersPayload:
		for _, idx := range p.Indexes {
			if idx < 0 || idx > 2 {
				return NewCommandError(ErrCodeInvalidTarget, c)
			}
		}
		if p.Indexes[0] == p.Indexes[1] {
			return NewCommandError(ErrCodeDuplicateTarget, c)
		}
	case *SelectTwoPlayersPayload:
		for _, id := range p.TargetIDs {
			if id == "" || !inTargets(id) {
				return NewCommandError(ErrCodeInvalidTarget, c)
			}
		}
		if p.TargetIDs[0] == p.TargetIDs[1] {
			return NewCommandError(ErrCodeDuplicateTarget, c)
		}
	case *SeerChoicePayload:
		if p.Choice != "player" && p.Choice != "center" {
			return NewCommandError(ErrCodeInvalidTarget, c)
		}
	case *VotePayload:
		if p.TargetID == "" || !inTargets(p.TargetID) {
			return NewCommandError(ErrCodeInvalidTarget, c)
		}
	case *StatementPayload:
		// 发言内容不做限制，空发言也是合法的
	}

	return nil
}

// CommandError 指令校验失败的结果，带错误码便于调用方回传
type CommandError struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	CommandID string `json:"commandId,omitempty"`
}

// NewCommandError 按错误码构造校验错误
func NewCommandError(code int, cmd *Command) *CommandError {
	msg, ok := ErrorMessages[code]
	if !ok {
		msg = ErrorMessages[ErrCodeUnknown]
	}
	e := &CommandError{Code: code, Message: msg}
	if cmd != nil {
		e.CommandID = cmd.CommandID
	}
	return e
}

func (e *CommandError) Error() string {
	return e.Message
}
