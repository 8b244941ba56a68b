package engine

import (
	"time"

	"github.com/palemoky/one-night-werewolf/internal/game/role"
)

// ActionType 夜晚行动类别
type ActionType string

const (
	ActionView ActionType = "VIEW"
	ActionSwap ActionType = "SWAP"
	ActionNone ActionType = "NONE"
)

// ViewedCard 一次查看到的牌
type ViewedCard struct {
	Position Position  `json:"position"`
	Role     role.Name `json:"role"`
}

// NightInfo 夜晚行动的变体载荷，不同角色只填自己相关的字段
type NightInfo struct {
	Viewed     []ViewedCard `json:"viewed,omitempty"`
	Swapped    *[2]Position `json:"swapped,omitempty"`
	Werewolves []string     `json:"werewolves,omitempty"` // 玩家 ID
	Masons     []string     `json:"masons,omitempty"`     // 玩家 ID
	Copied     *CopiedRole  `json:"copied,omitempty"`
	LoneWolf   bool         `json:"loneWolf,omitempty"`
}

// NightActionResult 一次夜晚行动的结果。目标非法等在局内可恢复的
// 失败通过 Success=false + Error 表达，状态保持未修改，夜晚继续。
type NightActionResult struct {
	ActorID string     `json:"actorId"`
	Role    role.Name  `json:"role"` // 实际执行的策略所属角色
	Action  ActionType `json:"action"`
	Success bool       `json:"success"`
	Info    NightInfo  `json:"info"`
	Error   string     `json:"error,omitempty"`
}

// WinConditionResult 单个阵营的胜负判定
type WinConditionResult struct {
	Team    role.Team `json:"team"`
	Won     bool      `json:"won"`
	Winners []string  `json:"winners,omitempty"` // 玩家 ID
	Reason  string    `json:"reason"`            // 供审计/UI 展示，不参与逻辑
}

// GameResult 终局结果，跨出引擎边界的唯一输出
type GameResult struct {
	GameID       string               `json:"gameId"`
	WinningTeams []role.Team          `json:"winningTeams"`
	Winners      []string             `json:"winners"`
	Eliminated   []string             `json:"eliminated"`
	FinalRoles   map[string]role.Name `json:"finalRoles"` // 玩家 ID → 终局持牌
	CenterRoles  [3]role.Name         `json:"centerRoles"`
	Votes        map[string]string    `json:"votes"`
	WinResults   []WinConditionResult `json:"winResults"`
	FinalHash    string               `json:"finalHash"`
	FinishedAt   time.Time            `json:"finishedAt"`
}
