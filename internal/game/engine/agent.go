package engine

import "context"

// SeerChoice 预言家查验模式
type SeerChoice string

const (
	SeerChoosePlayer SeerChoice = "player"
	SeerChooseCenter SeerChoice = "center"
)

// Agent 外部决策者（真人或 AI）。策略只定义目标选定之后发生什么，
// 选哪个目标完全由 Agent 决定。所有阻塞调用都接受 context，
// 超时/掉线策略由调用方通过 context 自行实现，引擎只负责把
// Agent 的错误转换成干净的失败结果。
type Agent interface {
	// SelectPlayer 从候选玩家中选一名
	SelectPlayer(ctx context.Context, options []string, prompt string) (string, error)

	// SelectCenterCard 选一张中央牌（0-2）
	SelectCenterCard(ctx context.Context, prompt string) (int, error)

	// SelectTwoCenterCards 选两张不同的中央牌
	SelectTwoCenterCards(ctx context.Context, prompt string) ([2]int, error)

	// SelectTwoPlayers 从候选玩家中选两名不同的玩家
	SelectTwoPlayers(ctx context.Context, options []string, prompt string) ([2]string, error)

	// ChooseSeerOption 预言家先选查验模式，再做具体选择
	ChooseSeerOption(ctx context.Context) (SeerChoice, error)

	// Statement 白天发言，空字符串也是合法发言
	Statement(ctx context.Context) (string, error)

	// Vote 投票，候选列表包含自己（数据模型不禁止自投）
	Vote(ctx context.Context, options []string) (string, error)

	// ReceiveNightInfo 单向通知夜晚信息。部分角色需要在同一次行动内
	// 先获知局部信息再做选择（如孤狼先得知自己是孤狼，再选中央牌）
	ReceiveNightInfo(result NightActionResult)
}
