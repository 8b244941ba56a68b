package engine

import (
	"context"
	"errors"
	"math/rand"
	"sync"
)

// ErrNoOptions 候选列表为空时无从选择
var ErrNoOptions = errors.New("没有可选目标")

// RandomAgent 随机决策的 Agent，自对弈模拟和测试用。
// 持有独立的随机源，同一种子下行为完全可复现。
type RandomAgent struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAgent 以给定种子创建随机 Agent
func NewRandomAgent(seed int64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) intn(n int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rng.Intn(n)
}

func (a *RandomAgent) SelectPlayer(_ context.Context, options []string, _ string) (string, error) {
	if len(options) == 0 {
		return "", ErrNoOptions
	}
	return options[a.intn(len(options))], nil
}

func (a *RandomAgent) SelectCenterCard(_ context.Context, _ string) (int, error) {
	return a.intn(3), nil
}

func (a *RandomAgent) SelectTwoCenterCards(_ context.Context, _ string) ([2]int, error) {
	first := a.intn(3)
	second := a.intn(2)
	if second >= first {
		second++
	}
	return [2]int{first, second}, nil
}

func (a *RandomAgent) SelectTwoPlayers(_ context.Context, options []string, _ string) ([2]string, error) {
	if len(options) < 2 {
		return [2]string{}, ErrNoOptions
	}
	i := a.intn(len(options))
	j := a.intn(len(options) - 1)
	if j >= i {
		j++
	}
	return [2]string{options[i], options[j]}, nil
}

func (a *RandomAgent) ChooseSeerOption(_ context.Context) (SeerChoice, error) {
	if a.intn(2) == 0 {
		return SeerChoosePlayer, nil
	}
	return SeerChooseCenter, nil
}

func (a *RandomAgent) Statement(_ context.Context) (string, error) {
	return "", nil
}

func (a *RandomAgent) Vote(_ context.Context, options []string) (string, error) {
	if len(options) == 0 {
		return "", ErrNoOptions
	}
	return options[a.intn(len(options))], nil
}

func (a *RandomAgent) ReceiveNightInfo(NightActionResult) {}
