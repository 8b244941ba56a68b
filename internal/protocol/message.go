package protocol

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Command 玩家指令的线上格式，所有字段均为 JSON 安全类型
type Command struct {
	Type      CommandType     `json:"type"`
	CommandID string          `json:"commandId"`
	PlayerID  string          `json:"playerId"`
	GameID    string          `json:"gameId"`
	Timestamp int64           `json:"timestamp"` // Unix 毫秒
	Payload   json.RawMessage `json:"payload,omitempty"`
	RequestID string          `json:"requestId,omitempty"`
}

// CommandType 指令类型
type CommandType string

// 客户端 → 引擎 指令类型
const (
	CmdSelectPlayer     CommandType = "selectPlayer"     // 选择一名玩家
	CmdSelectCenter     CommandType = "selectCenter"     // 选择一张中央牌
	CmdSelectTwoCenters CommandType = "selectTwoCenters" // 选择两张中央牌
	CmdSelectTwoPlayers CommandType = "selectTwoPlayers" // 选择两名玩家
	CmdSeerChoice       CommandType = "seerChoice"       // 预言家选择查验模式
	CmdStatement        CommandType = "statement"        // 白天发言
	CmdVote             CommandType = "vote"             // 投票
)

// knownTypes 合法指令类型集合，反序列化时用于快速校验
var knownTypes = map[CommandType]struct{}{
	CmdSelectPlayer:     {},
	CmdSelectCenter:     {},
	CmdSelectTwoCenters: {},
	CmdSelectTwoPlayers: {},
	CmdSeerChoice:       {},
	CmdStatement:        {},
	CmdVote:             {},
}

// Known 判断指令类型是否合法
func (t CommandType) Known() bool {
	_, ok := knownTypes[t]
	return ok
}

// NewCommand 构造一条带唯一 ID 和时间戳的指令
func NewCommand(t CommandType, playerID, gameID string, payload any) (*Command, error) {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("序列化指令载荷失败: %w", err)
		}
		raw = data
	}

	return &Command{
		Type:      t,
		CommandID: uuid.NewString(),
		PlayerID:  playerID,
		GameID:    gameID,
		Timestamp: time.Now().UnixMilli(),
		Payload:   raw,
	}, nil
}

// Encode 序列化指令
func (c *Command) Encode() ([]byte, error) {
	return json.Marshal(c)
}

// Decode 反序列化指令，未知类型必须显式报错，不允许静默通过
func Decode(data []byte) (*Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return nil, fmt.Errorf("解析指令失败: %w", err)
	}
	if !cmd.Type.Known() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommandType, cmd.Type)
	}
	return &cmd, nil
}
