package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/palemoky/one-night-werewolf/internal/game/role"
)

// resolveGame 计票、处决、猎人带人，然后对有效终局角色跑三个
// 阵营的胜负判定并生成 GameResult。
func (g *Game) resolveGame() error {
	eliminated := g.applyEliminations()

	g.mu.Lock()

	ctx := WinConditionContext{
		Roles:      make(map[string]role.Name, len(g.players)),
		Eliminated: eliminated,
	}
	for _, p := range g.players {
		card := g.cards[p.ID]
		effective := g.effectiveRole(card)
		ctx.Roles[p.ID] = effective
		ctx.SeatOrder = append(ctx.SeatOrder, p.ID)

		switch effective {
		case role.Werewolf:
			ctx.WerewolvesPresent = true
		case role.Minion:
			ctx.MinionPresent = true
		case role.Tanner:
			if eliminated[p.ID] {
				ctx.TannerEliminated = true
			}
		}
	}

	winResults := make([]WinConditionResult, 0, len(winEvaluators))
	for _, evaluate := range winEvaluators {
		winResults = append(winResults, evaluate(ctx))
	}

	result := &GameResult{
		GameID:      g.id,
		FinalRoles:  make(map[string]role.Name, len(g.players)),
		CenterRoles: g.center,
		Votes:       make(map[string]string, len(g.votes)),
		WinResults:  winResults,
		FinishedAt:  time.Now(),
	}
	for id, card := range g.cards {
		result.FinalRoles[id] = card
	}
	for voter, target := range g.votes {
		result.Votes[voter] = target
	}
	for _, p := range g.players {
		if eliminated[p.ID] {
			result.Eliminated = append(result.Eliminated, p.ID)
		}
	}
	for _, wr := range winResults {
		if wr.Won {
			result.WinningTeams = append(result.WinningTeams, wr.Team)
			result.Winners = append(result.Winners, wr.Winners...)
		}
	}

	g.result = result
	g.mu.Unlock()

	result.FinalHash = g.StateHash()
	teams := make([]string, len(result.WinningTeams))
	for i, t := range result.WinningTeams {
		teams[i] = string(t)
	}
	g.audit.Append(string(PhaseResolution), "RESOLVE", "",
		fmt.Sprintf("winners=%v eliminated=%v teams=%v", result.Winners, result.Eliminated, teams),
		result.FinalHash)
	return nil
}

// applyEliminations 计票并落实处决。平票全体出局是规则；全员各得
// 一票的完全循环局无人出局；被处决者的有效角色是猎人时带走其
// 投票目标，只触发一次，不递归连锁。
func (g *Game) applyEliminations() map[string]bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	eliminated := make(map[string]bool, len(g.players))

	tally := make(map[string]int)
	for _, target := range g.votes {
		tally[target]++
	}
	if len(tally) == 0 {
		return eliminated
	}

	// 完全循环：每名玩家恰好各得一票
	if len(tally) == len(g.players) {
		roundRobin := true
		for _, n := range tally {
			if n != 1 {
				roundRobin = false
				break
			}
		}
		if roundRobin {
			return eliminated
		}
	}

	maxVotes := 0
	for _, n := range tally {
		if n > maxVotes {
			maxVotes = n
		}
	}
	var voted []string
	for id, n := range tally {
		if n == maxVotes {
			voted = append(voted, id)
		}
	}
	sort.Strings(voted)
	for _, id := range voted {
		eliminated[id] = true
		g.byID[id].Eliminated = true
	}

	// 猎人只对被票决处决者触发，带人是并集且幂等
	for _, id := range voted {
		if g.effectiveRole(g.cards[id]) != role.Hunter {
			continue
		}
		target, ok := g.votes[id]
		if !ok || eliminated[target] {
			continue
		}
		eliminated[target] = true
		g.byID[target].Eliminated = true
	}

	return eliminated
}
