package engine

import (
	"context"

	"github.com/palemoky/one-night-werewolf/internal/protocol"
)

// Phase 对局阶段，严格线性单向：Setup → Night → Day → Voting → Resolution
type Phase string

const (
	PhaseSetup      Phase = "setup"
	PhaseNight      Phase = "night"
	PhaseDay        Phase = "day"
	PhaseVoting     Phase = "voting"
	PhaseResolution Phase = "resolution"
)

// phaseCommands 各阶段允许的指令类型，未列出的阶段不接受任何指令
var phaseCommands = map[Phase][]protocol.CommandType{
	PhaseNight: {
		protocol.CmdSelectPlayer,
		protocol.CmdSelectCenter,
		protocol.CmdSelectTwoCenters,
		protocol.CmdSelectTwoPlayers,
		protocol.CmdSeerChoice,
	},
	PhaseDay:    {protocol.CmdStatement},
	PhaseVoting: {protocol.CmdVote},
}

// AllowedCommands 某阶段允许的指令类型
func AllowedCommands(p Phase) []protocol.CommandType {
	return phaseCommands[p]
}

// phaseState 阶段状态：enter 落审计，execute 做本阶段的全部工作，
// exit 收尾，next 给出下一个状态（Resolution 返回 nil 表示终局）
type phaseState interface {
	phase() Phase
	enter(g *Game) error
	execute(ctx context.Context, g *Game) error
	exit(g *Game) error
	next() phaseState
}

var statesByPhase map[Phase]phaseState

func init() {
	statesByPhase = map[Phase]phaseState{
		PhaseSetup:      &setupState{},
		PhaseNight:      &nightState{},
		PhaseDay:        &dayState{},
		PhaseVoting:     &votingState{},
		PhaseResolution: &resolutionState{},
	}
}

// ---------------------------------------------------------------------------

type setupState struct{}

func (s *setupState) phase() Phase { return PhaseSetup }

func (s *setupState) enter(g *Game) error {
	g.setPhase(PhaseSetup)
	g.audit.Append(string(PhaseSetup), "PHASE_ENTER", "", "", g.StateHash())
	return nil
}

func (s *setupState) execute(_ context.Context, g *Game) error {
	g.deal()
	g.audit.Append(string(PhaseSetup), "DEAL", "", "cards dealt", g.StateHash())
	return nil
}

func (s *setupState) exit(_ *Game) error { return nil }
func (s *setupState) next() phaseState   { return statesByPhase[PhaseNight] }

// ---------------------------------------------------------------------------

type nightState struct{}

func (s *nightState) phase() Phase { return PhaseNight }

func (s *nightState) enter(g *Game) error {
	g.setPhase(PhaseNight)
	g.audit.Append(string(PhaseNight), "PHASE_ENTER", "", "", g.StateHash())
	return nil
}

// execute 按固定唤醒序号 1-9 依次唤醒。本局没有对应角色的序号
// 自然跳过（nightBatch 为空），顺序永不变化。
func (s *nightState) execute(ctx context.Context, g *Game) error {
	for order := 1; order <= 9; order++ {
		if err := g.executeNightOrder(ctx, order); err != nil {
			return err
		}
	}
	return nil
}

func (s *nightState) exit(_ *Game) error { return nil }
func (s *nightState) next() phaseState   { return statesByPhase[PhaseDay] }

// ---------------------------------------------------------------------------

type dayState struct{}

func (s *dayState) phase() Phase { return PhaseDay }

func (s *dayState) enter(g *Game) error {
	g.setPhase(PhaseDay)
	g.audit.Append(string(PhaseDay), "PHASE_ENTER", "", "", g.StateHash())
	return nil
}

func (s *dayState) execute(ctx context.Context, g *Game) error {
	return g.collectStatements(ctx)
}

func (s *dayState) exit(_ *Game) error { return nil }
func (s *dayState) next() phaseState   { return statesByPhase[PhaseVoting] }

// ---------------------------------------------------------------------------

type votingState struct{}

func (s *votingState) phase() Phase { return PhaseVoting }

func (s *votingState) enter(g *Game) error {
	g.setPhase(PhaseVoting)
	g.audit.Append(string(PhaseVoting), "PHASE_ENTER", "", "", g.StateHash())
	return nil
}

func (s *votingState) execute(ctx context.Context, g *Game) error {
	return g.collectVotes(ctx)
}

func (s *votingState) exit(_ *Game) error { return nil }
func (s *votingState) next() phaseState   { return statesByPhase[PhaseResolution] }

// ---------------------------------------------------------------------------

type resolutionState struct{}

func (s *resolutionState) phase() Phase { return PhaseResolution }

func (s *resolutionState) enter(g *Game) error {
	g.setPhase(PhaseResolution)
	g.audit.Append(string(PhaseResolution), "PHASE_ENTER", "", "", g.StateHash())
	return nil
}

func (s *resolutionState) execute(_ context.Context, g *Game) error {
	return g.resolveGame()
}

func (s *resolutionState) exit(_ *Game) error { return nil }
func (s *resolutionState) next() phaseState   { return nil }
