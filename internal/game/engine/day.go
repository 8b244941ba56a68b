package engine

import (
	"context"
	"fmt"
)

// collectStatements 按座位顺序收集白天发言。Agent 出错只记一条
// 失败审计并视为未发言，不影响其他玩家。
func (g *Game) collectStatements(ctx context.Context) error {
	for _, id := range g.PlayerIDs() {
		if err := ctx.Err(); err != nil {
			return err
		}

		text, err := g.agents[id].Statement(ctx)
		if err != nil {
			g.audit.Append(string(PhaseDay), "STATEMENT", id, "error="+err.Error(), g.StateHash())
			continue
		}

		g.mu.Lock()
		g.statements[id] = text
		g.mu.Unlock()
		g.audit.Append(string(PhaseDay), "STATEMENT", id, text, g.StateHash())
	}
	return nil
}

// Statements 玩家 ID → 发言内容
func (g *Game) Statements() map[string]string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make(map[string]string, len(g.statements))
	for k, v := range g.statements {
		out[k] = v
	}
	return out
}

// collectVotes 按座位顺序收集投票，一人一票且不可改票。
// Agent 出错视为弃票，计票时忽略。
func (g *Game) collectVotes(ctx context.Context) error {
	all := g.PlayerIDs()
	for _, id := range all {
		if err := ctx.Err(); err != nil {
			return err
		}

		p, _ := g.Player(id)
		if p.HasVoted {
			continue
		}

		targetID, err := g.agents[id].Vote(ctx, all)
		if err != nil {
			g.audit.Append(string(PhaseVoting), "VOTE", id, "error="+err.Error(), g.StateHash())
			continue
		}
		if _, ok := g.byID[targetID]; !ok {
			g.audit.Append(string(PhaseVoting), "VOTE", id, "invalid target "+targetID, g.StateHash())
			continue
		}

		g.mu.Lock()
		g.votes[id] = targetID
		p.HasVoted = true
		g.mu.Unlock()
		g.audit.Append(string(PhaseVoting), "VOTE", id, fmt.Sprintf("%s -> %s", id, targetID), g.StateHash())
	}
	return nil
}

// Votes 投票人 → 被投者
func (g *Game) Votes() map[string]string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make(map[string]string, len(g.votes))
	for k, v := range g.votes {
		out[k] = v
	}
	return out
}
