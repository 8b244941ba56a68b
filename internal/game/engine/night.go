package engine

import (
	"context"
	"fmt"

	"github.com/palemoky/one-night-werewolf/internal/apperrors"
	"github.com/palemoky/one-night-werewolf/internal/game/role"
)

// executeNightOrder 执行一个唤醒序号。同一序号内的执行者按座位顺序
// 依次行动，每人拿到全新的策略实例；目标非法只让当次行动失败，
// 夜晚继续，ctx 取消才会中止整晚。
func (g *Game) executeNightOrder(ctx context.Context, order int) error {
	name, ok := role.ByNightOrder(order)
	if !ok {
		return nil
	}

	for _, actor := range g.nightBatch(name) {
		if err := ctx.Err(); err != nil {
			return err
		}

		strategy, err := g.registry.Strategy(name)
		if err != nil {
			return err
		}

		result := strategy.Execute(ctx, g, actor, g.agents[actor.ID])
		g.recordNightResult(result)
		g.agents[actor.ID].ReceiveNightInfo(result)
	}
	return nil
}

// nightBatch 某角色唤醒时的执行者：起始角色是该角色的玩家，加上
// 化身了该角色且按规则随组行动的化身幽灵。查看/换牌类角色的化身
// 在化身当场已内联执行过，不再二次唤醒。
func (g *Game) nightBatch(name role.Name) []*Player {
	switch name {
	case role.Werewolf, role.Minion, role.Mason, role.Insomniac:
		return g.startingGroup(name)
	default:
		g.mu.RLock()
		defer g.mu.RUnlock()
		var batch []*Player
		for _, p := range g.players {
			if p.StartingRole == name {
				batch = append(batch, p)
			}
		}
		return batch
	}
}

// recordNightResult 行动落账：审计条目携带行动后的状态哈希
func (g *Game) recordNightResult(result NightActionResult) {
	details := fmt.Sprintf("role=%s action=%s success=%t", result.Role, result.Action, result.Success)
	if result.Error != "" {
		details += " error=" + result.Error
	}
	g.audit.Append(string(g.Phase()), string(result.Action), result.ActorID, details, g.StateHash())
}

// failedAction 局内可恢复失败的统一出口，状态保持未修改
func failedAction(actor *Player, name role.Name, err error) NightActionResult {
	return NightActionResult{
		ActorID: actor.ID,
		Role:    name,
		Action:  ActionNone,
		Success: false,
		Error:   err.Error(),
	}
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func validCenterIndex(i int) bool { return i >= 0 && i <= 2 }

// ---------------------------------------------------------------------------
// 1. 化身幽灵
// ---------------------------------------------------------------------------

type doppelgangerStrategy struct{}

func (s *doppelgangerStrategy) RoleName() role.Name { return role.Doppelganger }
func (s *doppelgangerStrategy) NightOrder() int     { return role.MustGet(role.Doppelganger).NightOrder }
func (s *doppelgangerStrategy) Description() string {
	return "查看一名其他玩家的牌并化身为该角色，部分角色当场执行其行动"
}

// Execute 化身是复合行动：先选人查看并登记化身身份，再按化身角色
// 决定是否当场执行对应行动（预言家/强盗/捣蛋鬼/酒鬼），或加入
// 对应的唤醒组（狼人/爪牙/守夜人/失眠者随组稍后唤醒）。
func (s *doppelgangerStrategy) Execute(ctx context.Context, g *Game, actor *Player, agent Agent) NightActionResult {
	options := g.otherPlayerIDs(actor.ID)
	targetID, err := agent.SelectPlayer(ctx, options, "选择要化身的玩家")
	if err != nil {
		return failedAction(actor, role.Doppelganger, err)
	}
	if !containsID(options, targetID) {
		return failedAction(actor, role.Doppelganger, apperrors.ErrInvalidTarget)
	}

	// 第 1 序号行动，此时所有牌都还在起始位置
	card, err := g.CardAt(PlayerPosition(targetID))
	if err != nil {
		return failedAction(actor, role.Doppelganger, err)
	}

	copied := CopiedRole{TargetID: targetID, Role: card}
	g.recordCopy(actor, copied)

	result := NightActionResult{
		ActorID: actor.ID,
		Role:    role.Doppelganger,
		Action:  ActionView,
		Success: true,
		Info: NightInfo{
			Viewed: []ViewedCard{{Position: PlayerPosition(targetID), Role: card}},
			Copied: &copied,
		},
	}

	switch card {
	case role.Seer, role.Robber, role.Troublemaker, role.Drunk:
		inner, err := g.registry.Strategy(card)
		if err != nil {
			result.Success = false
			result.Error = err.Error()
			return result
		}
		innerResult := inner.Execute(ctx, g, actor, agent)
		result.Action = innerResult.Action
		result.Success = innerResult.Success
		result.Error = innerResult.Error
		result.Info.Viewed = append(result.Info.Viewed, innerResult.Info.Viewed...)
		result.Info.Swapped = innerResult.Info.Swapped
	default:
		// 狼人/爪牙/守夜人/失眠者随组唤醒，村民/猎人/皮匠无后续行动
	}
	return result
}

// ---------------------------------------------------------------------------
// 2. 狼人
// ---------------------------------------------------------------------------

type werewolfStrategy struct{}

func (s *werewolfStrategy) RoleName() role.Name { return role.Werewolf }
func (s *werewolfStrategy) NightOrder() int     { return role.MustGet(role.Werewolf).NightOrder }
func (s *werewolfStrategy) Description() string {
	return "确认狼同伴；孤狼可查看一张中央牌"
}

func (s *werewolfStrategy) Execute(ctx context.Context, g *Game, actor *Player, agent Agent) NightActionResult {
	pack := g.werewolfPlayers()
	ids := make([]string, len(pack))
	for i, p := range pack {
		ids[i] = p.ID
	}

	result := NightActionResult{
		ActorID: actor.ID,
		Role:    role.Werewolf,
		Action:  ActionView,
		Success: true,
		Info:    NightInfo{Werewolves: ids},
	}

	if len(pack) > 1 {
		return result
	}

	// 孤狼：先告知身份，再由其选一张中央牌查看
	result.Info.LoneWolf = true
	agent.ReceiveNightInfo(result)

	idx, err := agent.SelectCenterCard(ctx, "孤狼：选择要查看的中央牌")
	if err != nil {
		return failedAction(actor, role.Werewolf, err)
	}
	if !validCenterIndex(idx) {
		return failedAction(actor, role.Werewolf, apperrors.ErrInvalidTarget)
	}
	card, err := g.CardAt(CenterPosition(idx))
	if err != nil {
		return failedAction(actor, role.Werewolf, err)
	}
	result.Info.Viewed = []ViewedCard{{Position: CenterPosition(idx), Role: card}}
	return result
}

// ---------------------------------------------------------------------------
// 3. 爪牙
// ---------------------------------------------------------------------------

type minionStrategy struct{}

func (s *minionStrategy) RoleName() role.Name { return role.Minion }
func (s *minionStrategy) NightOrder() int     { return role.MustGet(role.Minion).NightOrder }
func (s *minionStrategy) Description() string { return "得知所有狼人是谁" }

func (s *minionStrategy) Execute(_ context.Context, g *Game, actor *Player, _ Agent) NightActionResult {
	pack := g.werewolfPlayers()
	ids := make([]string, len(pack))
	for i, p := range pack {
		ids[i] = p.ID
	}
	return NightActionResult{
		ActorID: actor.ID,
		Role:    role.Minion,
		Action:  ActionView,
		Success: true,
		Info:    NightInfo{Werewolves: ids},
	}
}

// ---------------------------------------------------------------------------
// 4. 守夜人
// ---------------------------------------------------------------------------

type masonStrategy struct{}

func (s *masonStrategy) RoleName() role.Name { return role.Mason }
func (s *masonStrategy) NightOrder() int     { return role.MustGet(role.Mason).NightOrder }
func (s *masonStrategy) Description() string { return "确认另一名守夜人" }

func (s *masonStrategy) Execute(_ context.Context, g *Game, actor *Player, _ Agent) NightActionResult {
	masons := g.masonPlayers()
	ids := make([]string, len(masons))
	for i, p := range masons {
		ids[i] = p.ID
	}
	return NightActionResult{
		ActorID: actor.ID,
		Role:    role.Mason,
		Action:  ActionView,
		Success: true,
		Info:    NightInfo{Masons: ids},
	}
}

// ---------------------------------------------------------------------------
// 5. 预言家
// ---------------------------------------------------------------------------

type seerStrategy struct{}

func (s *seerStrategy) RoleName() role.Name { return role.Seer }
func (s *seerStrategy) NightOrder() int     { return role.MustGet(role.Seer).NightOrder }
func (s *seerStrategy) Description() string {
	return "查看一名其他玩家的牌，或查看两张中央牌"
}

func (s *seerStrategy) Execute(ctx context.Context, g *Game, actor *Player, agent Agent) NightActionResult {
	choice, err := agent.ChooseSeerOption(ctx)
	if err != nil {
		return failedAction(actor, role.Seer, err)
	}

	result := NightActionResult{
		ActorID: actor.ID,
		Role:    role.Seer,
		Action:  ActionView,
		Success: true,
	}

	switch choice {
	case SeerChoosePlayer:
		options := g.otherPlayerIDs(actor.ID)
		targetID, err := agent.SelectPlayer(ctx, options, "预言家：选择要查看的玩家")
		if err != nil {
			return failedAction(actor, role.Seer, err)
		}
		if !containsID(options, targetID) {
			return failedAction(actor, role.Seer, apperrors.ErrInvalidTarget)
		}
		card, err := g.CardAt(PlayerPosition(targetID))
		if err != nil {
			return failedAction(actor, role.Seer, err)
		}
		result.Info.Viewed = []ViewedCard{{Position: PlayerPosition(targetID), Role: card}}

	case SeerChooseCenter:
		indexes, err := agent.SelectTwoCenterCards(ctx, "预言家：选择要查看的两张中央牌")
		if err != nil {
			return failedAction(actor, role.Seer, err)
		}
		if !validCenterIndex(indexes[0]) || !validCenterIndex(indexes[1]) {
			return failedAction(actor, role.Seer, apperrors.ErrInvalidTarget)
		}
		if indexes[0] == indexes[1] {
			return failedAction(actor, role.Seer, apperrors.ErrDuplicateTarget)
		}
		for _, idx := range indexes {
			card, err := g.CardAt(CenterPosition(idx))
			if err != nil {
				return failedAction(actor, role.Seer, err)
			}
			result.Info.Viewed = append(result.Info.Viewed, ViewedCard{Position: CenterPosition(idx), Role: card})
		}

	default:
		return failedAction(actor, role.Seer, apperrors.ErrInvalidTarget)
	}
	return result
}

// ---------------------------------------------------------------------------
// 6. 强盗
// ---------------------------------------------------------------------------

type robberStrategy struct{}

func (s *robberStrategy) RoleName() role.Name { return role.Robber }
func (s *robberStrategy) NightOrder() int     { return role.MustGet(role.Robber).NightOrder }
func (s *robberStrategy) Description() string {
	return "与一名其他玩家换牌，并查看自己的新牌"
}

func (s *robberStrategy) Execute(ctx context.Context, g *Game, actor *Player, agent Agent) NightActionResult {
	options := g.otherPlayerIDs(actor.ID)
	targetID, err := agent.SelectPlayer(ctx, options, "强盗：选择要抢牌的玩家")
	if err != nil {
		return failedAction(actor, role.Robber, err)
	}
	if !containsID(options, targetID) {
		return failedAction(actor, role.Robber, apperrors.ErrInvalidTarget)
	}

	self := PlayerPosition(actor.ID)
	target := PlayerPosition(targetID)
	if err := g.SwapCards(self, target); err != nil {
		return failedAction(actor, role.Robber, err)
	}

	// 换完再看，看到的是抢来的牌
	card, err := g.CardAt(self)
	if err != nil {
		return failedAction(actor, role.Robber, err)
	}
	return NightActionResult{
		ActorID: actor.ID,
		Role:    role.Robber,
		Action:  ActionSwap,
		Success: true,
		Info: NightInfo{
			Swapped: &[2]Position{self, target},
			Viewed:  []ViewedCard{{Position: self, Role: card}},
		},
	}
}

// ---------------------------------------------------------------------------
// 7. 捣蛋鬼
// ---------------------------------------------------------------------------

type troublemakerStrategy struct{}

func (s *troublemakerStrategy) RoleName() role.Name { return role.Troublemaker }
func (s *troublemakerStrategy) NightOrder() int     { return role.MustGet(role.Troublemaker).NightOrder }
func (s *troublemakerStrategy) Description() string {
	return "交换另外两名玩家的牌，不查看"
}

func (s *troublemakerStrategy) Execute(ctx context.Context, g *Game, actor *Player, agent Agent) NightActionResult {
	options := g.otherPlayerIDs(actor.ID)
	targets, err := agent.SelectTwoPlayers(ctx, options, "捣蛋鬼：选择要互换的两名玩家")
	if err != nil {
		return failedAction(actor, role.Troublemaker, err)
	}
	if targets[0] == targets[1] {
		return failedAction(actor, role.Troublemaker, apperrors.ErrDuplicateTarget)
	}
	if !containsID(options, targets[0]) || !containsID(options, targets[1]) {
		return failedAction(actor, role.Troublemaker, apperrors.ErrInvalidTarget)
	}

	a := PlayerPosition(targets[0])
	b := PlayerPosition(targets[1])
	if err := g.SwapCards(a, b); err != nil {
		return failedAction(actor, role.Troublemaker, err)
	}
	return NightActionResult{
		ActorID: actor.ID,
		Role:    role.Troublemaker,
		Action:  ActionSwap,
		Success: true,
		Info:    NightInfo{Swapped: &[2]Position{a, b}},
	}
}

// ---------------------------------------------------------------------------
// 8. 酒鬼
// ---------------------------------------------------------------------------

type drunkStrategy struct{}

func (s *drunkStrategy) RoleName() role.Name { return role.Drunk }
func (s *drunkStrategy) NightOrder() int     { return role.MustGet(role.Drunk).NightOrder }
func (s *drunkStrategy) Description() string {
	return "与一张中央牌强制换牌，不查看新牌"
}

func (s *drunkStrategy) Execute(ctx context.Context, g *Game, actor *Player, agent Agent) NightActionResult {
	idx, err := agent.SelectCenterCard(ctx, "酒鬼：选择要交换的中央牌")
	if err != nil {
		return failedAction(actor, role.Drunk, err)
	}
	if !validCenterIndex(idx) {
		return failedAction(actor, role.Drunk, apperrors.ErrInvalidTarget)
	}

	self := PlayerPosition(actor.ID)
	center := CenterPosition(idx)
	if err := g.SwapCards(self, center); err != nil {
		return failedAction(actor, role.Drunk, err)
	}
	return NightActionResult{
		ActorID: actor.ID,
		Role:    role.Drunk,
		Action:  ActionSwap,
		Success: true,
		Info:    NightInfo{Swapped: &[2]Position{self, center}},
	}
}

// ---------------------------------------------------------------------------
// 9. 失眠者
// ---------------------------------------------------------------------------

type insomniacStrategy struct{}

func (s *insomniacStrategy) RoleName() role.Name { return role.Insomniac }
func (s *insomniacStrategy) NightOrder() int     { return role.MustGet(role.Insomniac).NightOrder }
func (s *insomniacStrategy) Description() string {
	return "夜晚结束前查看自己当前的牌"
}

func (s *insomniacStrategy) Execute(_ context.Context, g *Game, actor *Player, _ Agent) NightActionResult {
	self := PlayerPosition(actor.ID)
	card, err := g.CardAt(self)
	if err != nil {
		return failedAction(actor, role.Insomniac, err)
	}
	return NightActionResult{
		ActorID: actor.ID,
		Role:    role.Insomniac,
		Action:  ActionView,
		Success: true,
		Info:    NightInfo{Viewed: []ViewedCard{{Position: self, Role: card}}},
	}
}

// ---------------------------------------------------------------------------
// 无夜晚行动：村民 / 猎人 / 皮匠
// ---------------------------------------------------------------------------

type noActionStrategy struct {
	name role.Name
}

func (s *noActionStrategy) RoleName() role.Name { return s.name }
func (s *noActionStrategy) NightOrder() int     { return role.NoNightAction }
func (s *noActionStrategy) Description() string { return "夜晚不行动" }

func (s *noActionStrategy) Execute(_ context.Context, _ *Game, actor *Player, _ Agent) NightActionResult {
	return NightActionResult{
		ActorID: actor.ID,
		Role:    s.name,
		Action:  ActionNone,
		Success: true,
	}
}
