package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/palemoky/one-night-werewolf/internal/game/role"
)

// scriptAgent 按预置答案队列回答的测试 Agent
type scriptAgent struct {
	playerChoices    []string
	centerChoices    []int
	twoCenterChoices [][2]int
	twoPlayerChoices [][2]string
	seerChoices      []SeerChoice
	statements       []string
	voteChoices      []string
	received         []NightActionResult
}

func take[T any](queue *[]T) T {
	var zero T
	if len(*queue) == 0 {
		return zero
	}
	head := (*queue)[0]
	*queue = (*queue)[1:]
	return head
}

func (a *scriptAgent) SelectPlayer(_ context.Context, _ []string, _ string) (string, error) {
	return take(&a.playerChoices), nil
}

func (a *scriptAgent) SelectCenterCard(_ context.Context, _ string) (int, error) {
	return take(&a.centerChoices), nil
}

func (a *scriptAgent) SelectTwoCenterCards(_ context.Context, _ string) ([2]int, error) {
	return take(&a.twoCenterChoices), nil
}

func (a *scriptAgent) SelectTwoPlayers(_ context.Context, _ []string, _ string) ([2]string, error) {
	return take(&a.twoPlayerChoices), nil
}

func (a *scriptAgent) ChooseSeerOption(_ context.Context) (SeerChoice, error) {
	return take(&a.seerChoices), nil
}

func (a *scriptAgent) Statement(_ context.Context) (string, error) {
	return take(&a.statements), nil
}

func (a *scriptAgent) Vote(_ context.Context, _ []string) (string, error) {
	return take(&a.voteChoices), nil
}

func (a *scriptAgent) ReceiveNightInfo(result NightActionResult) {
	a.received = append(a.received, result)
}

// fixture 固定发牌的测试对局：玩家 p1..pN 按给定顺序持牌，
// 跳过洗牌，夜晚行为完全可预测
type fixture struct {
	game   *Game
	agents map[string]*scriptAgent
}

func newFixture(t *testing.T, playerRoles []role.Name, center [3]role.Name) *fixture {
	t.Helper()

	players := make([]PlayerConfig, len(playerRoles))
	agents := make(map[string]Agent, len(playerRoles))
	scripts := make(map[string]*scriptAgent, len(playerRoles))
	for i := range playerRoles {
		id := fmt.Sprintf("p%d", i+1)
		players[i] = PlayerConfig{ID: id, Name: "玩家" + id}
		sa := &scriptAgent{}
		scripts[id] = sa
		agents[id] = sa
	}

	roles := append(append([]role.Name{}, playerRoles...), center[:]...)
	g, err := NewGame(GameConfig{GameID: "test-game", Seed: 1, Players: players, Roles: roles},
		NewRegistry(), agents)
	require.NoError(t, err)

	// 固定发牌，绕过洗牌
	for i, p := range g.players {
		p.StartingRole = playerRoles[i]
		g.cards[p.ID] = playerRoles[i]
	}
	g.center = center

	return &fixture{game: g, agents: scripts}
}

// runNight 跑完整个夜晚的 1-9 唤醒序号
func (f *fixture) runNight(t *testing.T) {
	t.Helper()
	f.game.setPhase(PhaseNight)
	for order := 1; order <= 9; order++ {
		require.NoError(t, f.game.executeNightOrder(context.Background(), order))
	}
}

func (f *fixture) mustCard(t *testing.T, pos Position) role.Name {
	t.Helper()
	card, err := f.game.CardAt(pos)
	require.NoError(t, err)
	return card
}
