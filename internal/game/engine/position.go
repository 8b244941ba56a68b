package engine

import "fmt"

// PositionKind 位置类别
type PositionKind string

const (
	PositionPlayer PositionKind = "player"
	PositionCenter PositionKind = "center"
)

// Position 一张牌的可寻址位置：要么属于某个玩家，要么是三张中央牌之一。
// 整局游戏恰好有 玩家数+3 个位置，每个位置任何时刻恰好持有一张角色牌，
// 交换两个位置的内容是唯一的修改手段。
type Position struct {
	Kind   PositionKind `json:"kind"`
	Player string       `json:"player,omitempty"`
	Center int          `json:"center,omitempty"` // 0-2，仅 Kind 为 center 时有效
}

// PlayerPosition 玩家位置
func PlayerPosition(playerID string) Position {
	return Position{Kind: PositionPlayer, Player: playerID}
}

// CenterPosition 中央牌位置
func CenterPosition(index int) Position {
	return Position{Kind: PositionCenter, Center: index}
}

// IsCenter 是否为中央牌位置
func (p Position) IsCenter() bool {
	return p.Kind == PositionCenter
}

func (p Position) String() string {
	if p.IsCenter() {
		return fmt.Sprintf("center:%d", p.Center)
	}
	return "player:" + p.Player
}
