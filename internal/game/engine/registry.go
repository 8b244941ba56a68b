package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/palemoky/one-night-werewolf/internal/game/role"
)

// Strategy 夜晚行动策略。每个角色一个实现，Execute 在目标选定后
// 完成该角色的全部状态变更，只通过编排器的受控原语读写牌面。
type Strategy interface {
	RoleName() role.Name
	NightOrder() int
	Description() string
	Execute(ctx context.Context, g *Game, actor *Player, agent Agent) NightActionResult
}

// Registry 角色 → 策略工厂。工厂每次返回全新实例，避免跨对局串状态。
// 作为显式的值传入编排器，而不是包级单例，保证测试之间互不影响。
type Registry struct {
	mu        sync.Mutex
	factories map[role.Name]func() Strategy
	seeded    bool
}

// NewRegistry 创建空注册表，首次使用时惰性注入 12 个内置角色
func NewRegistry() *Registry {
	return &Registry{factories: make(map[role.Name]func() Strategy)}
}

// Register 注册或覆盖一个角色的策略工厂（用于测试或游戏变体）
func (r *Registry) Register(name role.Name, factory func() Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureSeeded()
	r.factories[name] = factory
}

// Strategy 取一个全新的策略实例
func (r *Registry) Strategy(name role.Name) (Strategy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureSeeded()
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("角色 %q 未注册策略", name)
	}
	return factory(), nil
}

// Clear 清空注册表（包括内置角色），之后不再自动注入
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories = make(map[role.Name]func() Strategy)
	r.seeded = true
}

// ensureSeeded 惰性注入内置角色，调用方必须持有锁
func (r *Registry) ensureSeeded() {
	if r.seeded {
		return
	}
	r.seeded = true

	r.factories[role.Doppelganger] = func() Strategy { return &doppelgangerStrategy{} }
	r.factories[role.Werewolf] = func() Strategy { return &werewolfStrategy{} }
	r.factories[role.Minion] = func() Strategy { return &minionStrategy{} }
	r.factories[role.Mason] = func() Strategy { return &masonStrategy{} }
	r.factories[role.Seer] = func() Strategy { return &seerStrategy{} }
	r.factories[role.Robber] = func() Strategy { return &robberStrategy{} }
	r.factories[role.Troublemaker] = func() Strategy { return &troublemakerStrategy{} }
	r.factories[role.Drunk] = func() Strategy { return &drunkStrategy{} }
	r.factories[role.Insomniac] = func() Strategy { return &insomniacStrategy{} }

	// 无夜晚行动的角色共用显式的 NoAction 策略，而不是散落的 nil 判断
	for _, name := range []role.Name{role.Villager, role.Hunter, role.Tanner} {
		n := name
		r.factories[n] = func() Strategy { return &noActionStrategy{name: n} }
	}
}
