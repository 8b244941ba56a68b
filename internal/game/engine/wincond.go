package engine

import (
	"github.com/palemoky/one-night-werewolf/internal/game/role"
)

// WinConditionContext 终局判定的输入。Roles 是每名玩家的有效终局角色
// （化身幽灵已折算为化身身份），三个布尔是预先推导好的事实。
type WinConditionContext struct {
	Roles             map[string]role.Name // 玩家 ID → 有效终局角色
	SeatOrder         []string             // 玩家 ID，按座位顺序，保证 Winners 输出稳定
	Eliminated        map[string]bool
	WerewolvesPresent bool // 玩家中存在狼人牌
	MinionPresent     bool // 玩家中存在爪牙牌
	TannerEliminated  bool
}

// WinEvaluator 单阵营胜负判定，end-of-game 状态的纯函数
type WinEvaluator func(ctx WinConditionContext) WinConditionResult

// winEvaluators 三个阵营每局都全部执行，允许多个阵营同时获胜
// （村民 + 皮匠共同获胜是规则本身，不是缺陷）
var winEvaluators = []WinEvaluator{
	evaluateVillage,
	evaluateWerewolf,
	evaluateTanner,
}

func (c WinConditionContext) teamMembers(team role.Team) []string {
	var members []string
	for _, id := range c.SeatOrder {
		if role.TeamOf(c.Roles[id]) == team {
			members = append(members, id)
		}
	}
	return members
}

func (c WinConditionContext) eliminatedWith(name role.Name) bool {
	for id, out := range c.Eliminated {
		if out && c.Roles[id] == name {
			return true
		}
	}
	return false
}

func (c WinConditionContext) anyEliminated() bool {
	for _, out := range c.Eliminated {
		if out {
			return true
		}
	}
	return false
}

// evaluateVillage 村民阵营：场上有狼则必须杀掉至少一头狼；
// 场上无狼则要么杀中爪牙、要么一个不杀。
func evaluateVillage(ctx WinConditionContext) WinConditionResult {
	result := WinConditionResult{Team: role.TeamVillage}

	if ctx.WerewolvesPresent {
		if ctx.eliminatedWith(role.Werewolf) {
			result.Won = true
			result.Reason = "至少一名狼人被处决"
		} else {
			result.Reason = "场上有狼人但无一被处决"
		}
	} else {
		switch {
		case ctx.eliminatedWith(role.Minion):
			result.Won = true
			result.Reason = "场上无狼人，爪牙被处决"
		case !ctx.anyEliminated():
			result.Won = true
			result.Reason = "场上无狼人且无人被处决"
		default:
			result.Reason = "场上无狼人却误杀了村民"
		}
	}

	if result.Won {
		result.Winners = ctx.teamMembers(role.TeamVillage)
	}
	return result
}

// evaluateWerewolf 狼人阵营：皮匠死亡是前置的一票否决；
// 否则有狼时无狼被杀即胜；无狼有爪牙时，爪牙独自扛起胜负，
// 只有自己死是输，拉到任何别人垫背才是赢。
func evaluateWerewolf(ctx WinConditionContext) WinConditionResult {
	result := WinConditionResult{Team: role.TeamWerewolf}

	if ctx.TannerEliminated {
		result.Reason = "皮匠被处决，狼人阵营直接落败"
		return result
	}

	switch {
	case ctx.WerewolvesPresent:
		if ctx.eliminatedWith(role.Werewolf) {
			result.Reason = "有狼人被处决"
		} else {
			result.Won = true
			result.Reason = "没有狼人被处决"
		}
	case ctx.MinionPresent:
		// 被处决者中有任何非爪牙玩家即算拉到垫背
		carried := false
		for id, out := range ctx.Eliminated {
			if out && ctx.Roles[id] != role.Minion {
				carried = true
				break
			}
		}
		if carried {
			result.Won = true
			result.Reason = "场上无狼人，爪牙拉到他人垫背"
		} else {
			result.Reason = "场上无狼人，爪牙没能拉到垫背"
		}
	default:
		result.Reason = "场上没有狼人阵营成员"
	}

	if result.Won {
		result.Winners = ctx.teamMembers(role.TeamWerewolf)
	}
	return result
}

// evaluateTanner 皮匠：死即是赢，与另外两个阵营完全独立
func evaluateTanner(ctx WinConditionContext) WinConditionResult {
	result := WinConditionResult{Team: role.TeamTanner}

	if !ctx.TannerEliminated {
		result.Reason = "皮匠未被处决"
		return result
	}

	result.Won = true
	result.Reason = "皮匠被处决"
	for _, id := range ctx.SeatOrder {
		if ctx.Eliminated[id] && ctx.Roles[id] == role.Tanner {
			result.Winners = append(result.Winners, id)
		}
	}
	return result
}
