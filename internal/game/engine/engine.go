package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/palemoky/one-night-werewolf/internal/apperrors"
	"github.com/palemoky/one-night-werewolf/internal/game/role"
	"github.com/palemoky/one-night-werewolf/internal/logger"
	"github.com/palemoky/one-night-werewolf/internal/protocol"
)

// 一局至少需要的玩家数
const minPlayers = 3

// GameConfig 建局配置：玩家与有序角色表，角色数必须等于玩家数+3
type GameConfig struct {
	GameID  string         `yaml:"game_id" json:"gameId"`
	Seed    int64          `yaml:"seed" json:"seed"` // 0 表示随机
	Players []PlayerConfig `yaml:"players" json:"players"`
	Roles   []role.Name    `yaml:"roles" json:"roles"`
}

// Game 对局编排器：玩家列表、中央牌和"某位置当前是哪张牌"的唯一权威。
// 阶段状态和夜晚策略都不直接改牌面，一切修改经由 SwapCards 这一个
// 收口点，这是审计哈希和回放可信的前提。
type Game struct {
	id       string
	seed     int64
	rng      *rand.Rand
	registry *Registry
	agents   map[string]Agent

	players   []*Player // 按座位排序
	byID      map[string]*Player
	cards     map[string]role.Name // 玩家 ID → 当前持牌
	center    [3]role.Name
	dealRoles []role.Name // 建局时的角色表，Setup 洗牌后分发

	votes      map[string]string // voterID → targetID
	statements map[string]string
	copied     *CopiedRole // 化身幽灵牌的化身身份（随牌移动，不随玩家）

	phase  Phase
	audit  *AuditLog
	result *GameResult

	mu sync.RWMutex
}

// NewGame 校验配置并构造对局。角色数不匹配、守夜人落单等建局错误
// 是致命的，在对局开始前直接返回；发牌在 Setup 阶段执行。
func NewGame(cfg GameConfig, registry *Registry, agents map[string]Agent) (*Game, error) {
	if len(cfg.Players) < minPlayers {
		return nil, fmt.Errorf("至少需要 %d 名玩家", minPlayers)
	}
	if len(cfg.Roles) != len(cfg.Players)+3 {
		return nil, apperrors.ErrRoleCount
	}

	counts := make(map[role.Name]int)
	for _, name := range cfg.Roles {
		if !name.Valid() {
			return nil, fmt.Errorf("未知角色: %q", name)
		}
		counts[name]++
	}
	for name, n := range counts {
		if n > role.MustGet(name).MaxCopies {
			return nil, apperrors.ErrTooManyCopies
		}
	}
	if counts[role.Mason]%2 != 0 {
		return nil, apperrors.ErrUnpairedMason
	}

	if registry == nil {
		registry = NewRegistry()
	}

	g := &Game{
		id:         cfg.GameID,
		seed:       cfg.Seed,
		registry:   registry,
		agents:     make(map[string]Agent, len(cfg.Players)),
		byID:       make(map[string]*Player, len(cfg.Players)),
		cards:      make(map[string]role.Name, len(cfg.Players)),
		votes:      make(map[string]string),
		statements: make(map[string]string),
		phase:      PhaseSetup,
		audit:      NewAuditLog(),
	}
	if g.id == "" {
		g.id = uuid.NewString()
	}
	if g.seed == 0 {
		g.seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(g.seed))

	for seat, pc := range cfg.Players {
		id := pc.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, dup := g.byID[id]; dup {
			return nil, apperrors.ErrDuplicatePlayer
		}
		p := &Player{ID: id, Name: pc.Name, Seat: seat}
		g.players = append(g.players, p)
		g.byID[id] = p

		agent, ok := agents[id]
		if !ok {
			return nil, fmt.Errorf("玩家 %s 缺少 Agent", id)
		}
		g.agents[id] = agent
	}

	g.dealRoles = append([]role.Name(nil), cfg.Roles...)

	return g, nil
}

// deal 洗牌并发牌：前 N 张给玩家，最后 3 张进中央
func (g *Game) deal() {
	g.mu.Lock()
	defer g.mu.Unlock()

	shuffled := append([]role.Name(nil), g.dealRoles...)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	for i, p := range g.players {
		p.StartingRole = shuffled[i]
		g.cards[p.ID] = shuffled[i]
	}
	copy(g.center[:], shuffled[len(g.players):])
}

// ID 对局 ID
func (g *Game) ID() string { return g.id }

// Seed 本局随机种子，用于回放
func (g *Game) Seed() int64 { return g.seed }

// Phase 当前阶段
func (g *Game) Phase() Phase {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.phase
}

// PlayerIDs 按座位顺序返回全部玩家 ID
func (g *Game) PlayerIDs() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ids := make([]string, len(g.players))
	for i, p := range g.players {
		ids[i] = p.ID
	}
	return ids
}

// Player 按 ID 查玩家
func (g *Game) Player(id string) (*Player, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	p, ok := g.byID[id]
	return p, ok
}

// RolesInGame 本局使用的角色表（含中央牌）
func (g *Game) RolesInGame() []role.Name {
	return append([]role.Name(nil), g.dealRoles...)
}

// CardAt 读取某位置当前的牌
func (g *Game) CardAt(pos Position) (role.Name, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cardAtLocked(pos)
}

func (g *Game) cardAtLocked(pos Position) (role.Name, error) {
	if pos.IsCenter() {
		if pos.Center < 0 || pos.Center > 2 {
			return "", apperrors.ErrInvalidTarget
		}
		return g.center[pos.Center], nil
	}
	card, ok := g.cards[pos.Player]
	if !ok {
		return "", apperrors.ErrInvalidTarget
	}
	return card, nil
}

// CurrentRole 玩家的当前角色，定义为该玩家位置上现在的牌
func (g *Game) CurrentRole(playerID string) (role.Name, error) {
	return g.CardAt(PlayerPosition(playerID))
}

// SwapCards 交换两个位置的牌，唯一的状态修改原语
func (g *Game) SwapCards(a, b Position) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	cardA, err := g.cardAtLocked(a)
	if err != nil {
		return err
	}
	cardB, err := g.cardAtLocked(b)
	if err != nil {
		return err
	}

	g.setCardLocked(a, cardB)
	g.setCardLocked(b, cardA)
	return nil
}

func (g *Game) setCardLocked(pos Position, card role.Name) {
	if pos.IsCenter() {
		g.center[pos.Center] = card
	} else {
		g.cards[pos.Player] = card
	}
}

// Audit 审计日志
func (g *Game) Audit() *AuditLog { return g.audit }

// Result 终局结果，Resolution 完成前为 nil
func (g *Game) Result() *GameResult {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.result
}

// Run 从 Setup 跑到 Resolution。阶段严格线性单向，编排器在任何
// 时刻都处于且仅处于一个阶段中
func (g *Game) Run(ctx context.Context) (*GameResult, error) {
	for state := statesByPhase[PhaseSetup]; state != nil; state = state.next() {
		if err := state.enter(g); err != nil {
			return nil, err
		}
		if err := state.execute(ctx, g); err != nil {
			return nil, err
		}
		if err := state.exit(g); err != nil {
			return nil, err
		}
	}
	return g.Result(), nil
}

// setPhase 切换阶段并记录审计
func (g *Game) setPhase(p Phase) {
	g.mu.Lock()
	g.phase = p
	g.mu.Unlock()
	logger.LogInfo("game %s: phase -> %s", g.id, p)
}

// ValidationContext 为指令校验预计算上下文
func (g *Game) ValidationContext(validTargets []string) protocol.ValidationContext {
	return protocol.ValidationContext{
		Phase:        string(g.Phase()),
		AllowedTypes: AllowedCommands(g.Phase()),
		Eligible:     g.PlayerIDs(),
		ValidTargets: validTargets,
	}
}

// otherPlayerIDs 除指定玩家外的全部玩家 ID，按座位顺序
func (g *Game) otherPlayerIDs(exclude string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ids := make([]string, 0, len(g.players)-1)
	for _, p := range g.players {
		if p.ID != exclude {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// werewolfPlayers 起始狼人 + 化身狼人的化身幽灵，按座位顺序。
// 狼人组的成员资格由起始角色决定，夜间换牌不影响
func (g *Game) werewolfPlayers() []*Player {
	return g.startingGroup(role.Werewolf)
}

// masonPlayers 起始守夜人 + 化身守夜人的化身幽灵
func (g *Game) masonPlayers() []*Player {
	return g.startingGroup(role.Mason)
}

func (g *Game) startingGroup(name role.Name) []*Player {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var group []*Player
	for _, p := range g.players {
		if p.StartingRole == name || (p.Copied != nil && p.Copied.Role == name) {
			group = append(group, p)
		}
	}
	return group
}

// recordCopy 化身幽灵完成化身后登记身份。身份属于化身幽灵这张牌，
// 终局判定时无论牌被换到哪里都按化身角色折算
func (g *Game) recordCopy(actor *Player, copied CopiedRole) {
	g.mu.Lock()
	defer g.mu.Unlock()
	actor.Copied = &copied
	g.copied = &copied
}

// effectiveRole 终局有效角色：化身幽灵牌折算为化身身份，
// 未完成化身的化身幽灵按村民阵营处理
func (g *Game) effectiveRole(card role.Name) role.Name {
	if card == role.Doppelganger && g.copied != nil {
		return g.copied.Role
	}
	return card
}
