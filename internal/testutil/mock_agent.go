//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/one-night-werewolf/internal/game/engine"
)

// MockAgent 实现 engine.Agent 的 mock
type MockAgent struct {
	mock.Mock
}

func (m *MockAgent) SelectPlayer(ctx context.Context, options []string, prompt string) (string, error) {
	args := m.Called(ctx, options, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockAgent) SelectCenterCard(ctx context.Context, prompt string) (int, error) {
	args := m.Called(ctx, prompt)
	return args.Int(0), args.Error(1)
}

func (m *MockAgent) SelectTwoCenterCards(ctx context.Context, prompt string) ([2]int, error) {
	args := m.Called(ctx, prompt)
	return args.Get(0).([2]int), args.Error(1)
}

func (m *MockAgent) SelectTwoPlayers(ctx context.Context, options []string, prompt string) ([2]string, error) {
	args := m.Called(ctx, options, prompt)
	return args.Get(0).([2]string), args.Error(1)
}

func (m *MockAgent) ChooseSeerOption(ctx context.Context) (engine.SeerChoice, error) {
	args := m.Called(ctx)
	return args.Get(0).(engine.SeerChoice), args.Error(1)
}

func (m *MockAgent) Statement(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockAgent) Vote(ctx context.Context, options []string) (string, error) {
	args := m.Called(ctx, options)
	return args.String(0), args.Error(1)
}

func (m *MockAgent) ReceiveNightInfo(result engine.NightActionResult) {
	m.Called(result)
}

// ScriptedAgent 按脚本回答的 Agent，不使用 testify（用于不需要断言的测试）。
// 各字段是对应问题的预置答案队列，队列耗尽后返回零值。
type ScriptedAgent struct {
	PlayerChoices    []string
	CenterChoices    []int
	TwoCenterChoices [][2]int
	TwoPlayerChoices [][2]string
	SeerChoices      []engine.SeerChoice
	Statements       []string
	VoteChoices      []string
	Received         []engine.NightActionResult
}

func shift[T any](queue *[]T) T {
	var zero T
	if len(*queue) == 0 {
		return zero
	}
	head := (*queue)[0]
	*queue = (*queue)[1:]
	return head
}

func (a *ScriptedAgent) SelectPlayer(_ context.Context, _ []string, _ string) (string, error) {
	return shift(&a.PlayerChoices), nil
}

func (a *ScriptedAgent) SelectCenterCard(_ context.Context, _ string) (int, error) {
	return shift(&a.CenterChoices), nil
}

func (a *ScriptedAgent) SelectTwoCenterCards(_ context.Context, _ string) ([2]int, error) {
	return shift(&a.TwoCenterChoices), nil
}

func (a *ScriptedAgent) SelectTwoPlayers(_ context.Context, _ []string, _ string) ([2]string, error) {
	return shift(&a.TwoPlayerChoices), nil
}

func (a *ScriptedAgent) ChooseSeerOption(_ context.Context) (engine.SeerChoice, error) {
	return shift(&a.SeerChoices), nil
}

func (a *ScriptedAgent) Statement(_ context.Context) (string, error) {
	return shift(&a.Statements), nil
}

func (a *ScriptedAgent) Vote(_ context.Context, _ []string) (string, error) {
	return shift(&a.VoteChoices), nil
}

func (a *ScriptedAgent) ReceiveNightInfo(result engine.NightActionResult) {
	a.Received = append(a.Received, result)
}
