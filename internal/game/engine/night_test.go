package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/one-night-werewolf/internal/game/role"
)

// lastResult 某玩家收到的最后一条夜晚通知
func lastResult(t *testing.T, f *fixture, playerID string) NightActionResult {
	t.Helper()
	received := f.agents[playerID].received
	require.NotEmpty(t, received, "player %s received no night info", playerID)
	return received[len(received)-1]
}

func TestNight_WerewolvesSeeEachOther(t *testing.T) {
	t.Parallel()

	f := newFixture(t,
		[]role.Name{role.Werewolf, role.Werewolf, role.Seer},
		[3]role.Name{role.Villager, role.Villager, role.Robber})
	f.agents["p3"].seerChoices = []SeerChoice{SeerChoosePlayer}
	f.agents["p3"].playerChoices = []string{"p1"}

	f.runNight(t)

	for _, id := range []string{"p1", "p2"} {
		result := lastResult(t, f, id)
		assert.True(t, result.Success)
		assert.ElementsMatch(t, []string{"p1", "p2"}, result.Info.Werewolves)
		assert.False(t, result.Info.LoneWolf)
	}
}

func TestNight_LoneWolfPeeksCenter(t *testing.T) {
	t.Parallel()

	f := newFixture(t,
		[]role.Name{role.Werewolf, role.Seer, role.Villager},
		[3]role.Name{role.Robber, role.Villager, role.Drunk})
	f.agents["p1"].centerChoices = []int{2}
	f.agents["p2"].seerChoices = []SeerChoice{SeerChooseCenter}
	f.agents["p2"].twoCenterChoices = [][2]int{{0, 1}}

	f.runNight(t)

	received := f.agents["p1"].received
	require.Len(t, received, 2) // 先孤狼通知，后查看结果
	assert.True(t, received[0].Info.LoneWolf)
	assert.Empty(t, received[0].Info.Viewed)

	final := received[1]
	assert.True(t, final.Success)
	require.Len(t, final.Info.Viewed, 1)
	assert.Equal(t, CenterPosition(2), final.Info.Viewed[0].Position)
	assert.Equal(t, role.Drunk, final.Info.Viewed[0].Role)
}

func TestNight_MinionSeesWerewolvesAsymmetric(t *testing.T) {
	t.Parallel()

	f := newFixture(t,
		[]role.Name{role.Werewolf, role.Minion, role.Villager},
		[3]role.Name{role.Seer, role.Villager, role.Robber})
	f.agents["p1"].centerChoices = []int{0}

	f.runNight(t)

	minion := lastResult(t, f, "p2")
	assert.Equal(t, role.Minion, minion.Role)
	assert.Equal(t, []string{"p1"}, minion.Info.Werewolves)

	// 狼人看不到爪牙
	for _, r := range f.agents["p1"].received {
		assert.NotContains(t, r.Info.Werewolves, "p2")
	}
}

func TestNight_MasonsSeeEachOther(t *testing.T) {
	t.Parallel()

	f := newFixture(t,
		[]role.Name{role.Mason, role.Mason, role.Werewolf},
		[3]role.Name{role.Seer, role.Villager, role.Robber})
	f.agents["p3"].centerChoices = []int{0}

	f.runNight(t)

	for _, id := range []string{"p1", "p2"} {
		result := lastResult(t, f, id)
		assert.Equal(t, role.Mason, result.Role)
		assert.ElementsMatch(t, []string{"p1", "p2"}, result.Info.Masons)
	}
}

func TestNight_SeerViewsPlayer(t *testing.T) {
	t.Parallel()

	f := newFixture(t,
		[]role.Name{role.Seer, role.Werewolf, role.Villager},
		[3]role.Name{role.Robber, role.Villager, role.Drunk})
	f.agents["p1"].seerChoices = []SeerChoice{SeerChoosePlayer}
	f.agents["p1"].playerChoices = []string{"p2"}
	f.agents["p2"].centerChoices = []int{0}

	f.runNight(t)

	result := lastResult(t, f, "p1")
	assert.True(t, result.Success)
	require.Len(t, result.Info.Viewed, 1)
	assert.Equal(t, role.Werewolf, result.Info.Viewed[0].Role)
}

func TestNight_SeerViewsTwoCenters(t *testing.T) {
	t.Parallel()

	f := newFixture(t,
		[]role.Name{role.Seer, role.Werewolf, role.Villager},
		[3]role.Name{role.Robber, role.Drunk, role.Villager})
	f.agents["p1"].seerChoices = []SeerChoice{SeerChooseCenter}
	f.agents["p1"].twoCenterChoices = [][2]int{{0, 1}}
	f.agents["p2"].centerChoices = []int{2}

	f.runNight(t)

	result := lastResult(t, f, "p1")
	assert.True(t, result.Success)
	require.Len(t, result.Info.Viewed, 2)
	assert.Equal(t, role.Robber, result.Info.Viewed[0].Role)
	assert.Equal(t, role.Drunk, result.Info.Viewed[1].Role)
}

func TestNight_RobberSwapsAndViews(t *testing.T) {
	t.Parallel()

	f := newFixture(t,
		[]role.Name{role.Robber, role.Seer, role.Werewolf},
		[3]role.Name{role.Villager, role.Villager, role.Drunk})
	f.agents["p1"].playerChoices = []string{"p2"}
	f.agents["p2"].seerChoices = []SeerChoice{SeerChoosePlayer}
	f.agents["p2"].playerChoices = []string{"p3"}
	f.agents["p3"].centerChoices = []int{0}

	f.runNight(t)

	result := lastResult(t, f, "p1")
	assert.True(t, result.Success)
	assert.Equal(t, ActionSwap, result.Action)
	require.Len(t, result.Info.Viewed, 1)
	assert.Equal(t, role.Seer, result.Info.Viewed[0].Role)

	assert.Equal(t, role.Seer, f.mustCard(t, PlayerPosition("p1")))
	assert.Equal(t, role.Robber, f.mustCard(t, PlayerPosition("p2")))
}

// 夜间换来的角色不触发其行动：强盗抢走预言家的牌后不会再查验
func TestNight_SwappedRoleGrantsNoAction(t *testing.T) {
	t.Parallel()

	f := newFixture(t,
		[]role.Name{role.Robber, role.Seer, role.Werewolf},
		[3]role.Name{role.Villager, role.Villager, role.Drunk})
	f.agents["p1"].playerChoices = []string{"p2"}
	f.agents["p2"].seerChoices = []SeerChoice{SeerChoosePlayer}
	f.agents["p2"].playerChoices = []string{"p3"}
	f.agents["p3"].centerChoices = []int{1}

	f.runNight(t)

	// 强盗只有一次行动结果，预言家仍按自己的起始角色行动
	robberResults := f.agents["p1"].received
	require.Len(t, robberResults, 1)
	assert.Equal(t, role.Robber, robberResults[0].Role)

	seer := lastResult(t, f, "p2")
	assert.Equal(t, role.Seer, seer.Role)
	assert.True(t, seer.Success)
}

func TestNight_TroublemakerSwapsOthers(t *testing.T) {
	t.Parallel()

	f := newFixture(t,
		[]role.Name{role.Troublemaker, role.Seer, role.Werewolf},
		[3]role.Name{role.Villager, role.Villager, role.Drunk})
	f.agents["p1"].twoPlayerChoices = [][2]string{{"p2", "p3"}}
	f.agents["p2"].seerChoices = []SeerChoice{SeerChooseCenter}
	f.agents["p2"].twoCenterChoices = [][2]int{{0, 1}}
	f.agents["p3"].centerChoices = []int{2}

	f.runNight(t)

	result := lastResult(t, f, "p1")
	assert.True(t, result.Success)
	assert.Equal(t, ActionSwap, result.Action)
	assert.Empty(t, result.Info.Viewed) // 捣蛋鬼不查看

	assert.Equal(t, role.Werewolf, f.mustCard(t, PlayerPosition("p2")))
	assert.Equal(t, role.Seer, f.mustCard(t, PlayerPosition("p3")))
	assert.Equal(t, role.Troublemaker, f.mustCard(t, PlayerPosition("p1")))
}

func TestNight_DrunkSwapsBlind(t *testing.T) {
	t.Parallel()

	f := newFixture(t,
		[]role.Name{role.Drunk, role.Werewolf, role.Villager},
		[3]role.Name{role.Seer, role.Villager, role.Robber})
	f.agents["p1"].centerChoices = []int{0}
	f.agents["p2"].centerChoices = []int{1}

	f.runNight(t)

	result := lastResult(t, f, "p1")
	assert.True(t, result.Success)
	assert.Equal(t, ActionSwap, result.Action)
	assert.Empty(t, result.Info.Viewed) // 酒鬼不知道换到了什么

	assert.Equal(t, role.Seer, f.mustCard(t, PlayerPosition("p1")))
	assert.Equal(t, role.Drunk, f.mustCard(t, CenterPosition(0)))
}

func TestNight_InsomniacSeesFinalCard(t *testing.T) {
	t.Parallel()

	f := newFixture(t,
		[]role.Name{role.Troublemaker, role.Insomniac, role.Werewolf},
		[3]role.Name{role.Seer, role.Villager, role.Robber})
	f.agents["p1"].twoPlayerChoices = [][2]string{{"p2", "p3"}}
	f.agents["p3"].centerChoices = []int{0}

	f.runNight(t)

	// 失眠者在捣蛋鬼之后醒来，看到的是换过之后的牌
	result := lastResult(t, f, "p2")
	assert.True(t, result.Success)
	require.Len(t, result.Info.Viewed, 1)
	assert.Equal(t, role.Werewolf, result.Info.Viewed[0].Role)
}

func TestNight_InvalidTargetFailsWithoutMutation(t *testing.T) {
	t.Parallel()

	f := newFixture(t,
		[]role.Name{role.Robber, role.Werewolf, role.Villager},
		[3]role.Name{role.Seer, role.Villager, role.Drunk})
	f.agents["p1"].playerChoices = []string{"ghost"}
	f.agents["p2"].centerChoices = []int{0}

	before := f.game.StateHash()
	f.runNight(t)

	result := lastResult(t, f, "p1")
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)

	// 失败的行动不改动任何牌面
	assert.Equal(t, role.Robber, f.mustCard(t, PlayerPosition("p1")))
	assert.NotEqual(t, "", before)
}

func TestNight_DoppelgangerCopiesRobber(t *testing.T) {
	t.Parallel()

	f := newFixture(t,
		[]role.Name{role.Doppelganger, role.Robber, role.Werewolf},
		[3]role.Name{role.Seer, role.Villager, role.Villager})
	// 先选化身目标 p2（强盗），再内联执行强盗行动抢 p3
	f.agents["p1"].playerChoices = []string{"p2", "p3"}
	f.agents["p2"].playerChoices = []string{"p3"}
	f.agents["p3"].centerChoices = []int{0}

	f.runNight(t)

	result := lastResult(t, f, "p1")
	assert.True(t, result.Success)
	assert.Equal(t, role.Doppelganger, result.Role)
	require.NotNil(t, result.Info.Copied)
	assert.Equal(t, "p2", result.Info.Copied.TargetID)
	assert.Equal(t, role.Robber, result.Info.Copied.Role)

	// 查看记录包含化身目标的牌和换来的新牌
	require.Len(t, result.Info.Viewed, 2)
	assert.Equal(t, role.Robber, result.Info.Viewed[0].Role)
	assert.Equal(t, role.Werewolf, result.Info.Viewed[1].Role)
	require.NotNil(t, result.Info.Swapped)

	// 化身幽灵先抢走 p3 的狼人牌，真强盗在第 6 序号照常行动，
	// 抢到的是此时在 p3 位置上的化身幽灵牌
	assert.Equal(t, role.Werewolf, f.mustCard(t, PlayerPosition("p1")))
	robber := lastResult(t, f, "p2")
	assert.True(t, robber.Success)
	assert.Equal(t, role.Doppelganger, f.mustCard(t, PlayerPosition("p2")))
	assert.Equal(t, role.Robber, f.mustCard(t, PlayerPosition("p3")))
}

func TestNight_DoppelgangerJoinsWerewolfGroup(t *testing.T) {
	t.Parallel()

	f := newFixture(t,
		[]role.Name{role.Doppelganger, role.Werewolf, role.Villager},
		[3]role.Name{role.Seer, role.Villager, role.Robber})
	f.agents["p1"].playerChoices = []string{"p2"}

	f.runNight(t)

	// 化身狼人后随狼群唤醒，两人互见，没有孤狼
	wolfView := lastResult(t, f, "p2")
	assert.ElementsMatch(t, []string{"p1", "p2"}, wolfView.Info.Werewolves)
	assert.False(t, wolfView.Info.LoneWolf)

	doppView := lastResult(t, f, "p1")
	assert.Equal(t, role.Werewolf, doppView.Role)
	assert.ElementsMatch(t, []string{"p1", "p2"}, doppView.Info.Werewolves)
}

func TestNight_WakeOrderIsAudited(t *testing.T) {
	t.Parallel()

	f := newFixture(t,
		[]role.Name{role.Insomniac, role.Robber, role.Werewolf},
		[3]role.Name{role.Seer, role.Villager, role.Drunk})
	f.agents["p2"].playerChoices = []string{"p3"}
	f.agents["p3"].centerChoices = []int{0}

	f.runNight(t)

	// 审计里狼人(2)先于强盗(6)先于失眠者(9)
	var actors []string
	for _, e := range f.game.Audit().Entries() {
		if e.ActorID != "" {
			actors = append(actors, e.ActorID)
		}
	}
	assert.Equal(t, []string{"p3", "p2", "p1"}, actors)
}
