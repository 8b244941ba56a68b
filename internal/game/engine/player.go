package engine

import (
	"github.com/palemoky/one-night-werewolf/internal/game/role"
)

// Player 对局中的玩家。StartingRole 发牌后不再变化，决定夜晚行动资格；
// 玩家"当前角色"不存放在这里，而是由编排器按位置解析（见 Game.CurrentRole）。
type Player struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Seat         int       `json:"seat"`
	StartingRole role.Name `json:"startingRole"`
	Eliminated   bool      `json:"eliminated"`
	HasVoted     bool      `json:"hasVoted"`

	// Copied 仅化身幽灵使用：记录化身目标与化身角色，
	// 用于夜晚加入对应角色的唤醒组以及终局的有效阵营判定
	Copied *CopiedRole `json:"copied,omitempty"`
}

// CopiedRole 化身记录
type CopiedRole struct {
	TargetID string    `json:"targetId"`
	Role     role.Name `json:"role"`
}

// PlayerConfig 建局时的玩家描述，ID 为空时自动生成
type PlayerConfig struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}
