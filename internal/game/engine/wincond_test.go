package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/one-night-werewolf/internal/game/role"
)

func winContext(roles map[string]role.Name, eliminated ...string) WinConditionContext {
	ctx := WinConditionContext{
		Roles:      roles,
		Eliminated: make(map[string]bool),
	}
	for id := range roles {
		ctx.SeatOrder = append(ctx.SeatOrder, id)
	}
	// SeatOrder 固定为 p1..pN
	for i := 0; i < len(ctx.SeatOrder); i++ {
		for j := i + 1; j < len(ctx.SeatOrder); j++ {
			if ctx.SeatOrder[j] < ctx.SeatOrder[i] {
				ctx.SeatOrder[i], ctx.SeatOrder[j] = ctx.SeatOrder[j], ctx.SeatOrder[i]
			}
		}
	}
	for _, id := range eliminated {
		ctx.Eliminated[id] = true
	}
	for id, r := range roles {
		switch r {
		case role.Werewolf:
			ctx.WerewolvesPresent = true
		case role.Minion:
			ctx.MinionPresent = true
		case role.Tanner:
			if ctx.Eliminated[id] {
				ctx.TannerEliminated = true
			}
		}
	}
	return ctx
}

func resultFor(t *testing.T, results []WinConditionResult, team role.Team) WinConditionResult {
	t.Helper()
	for _, r := range results {
		if r.Team == team {
			return r
		}
	}
	t.Fatalf("no result for team %s", team)
	return WinConditionResult{}
}

func evaluateAll(ctx WinConditionContext) []WinConditionResult {
	results := make([]WinConditionResult, 0, len(winEvaluators))
	for _, evaluate := range winEvaluators {
		results = append(results, evaluate(ctx))
	}
	return results
}

func TestWin_WerewolfEliminated_VillageWins(t *testing.T) {
	t.Parallel()

	ctx := winContext(map[string]role.Name{
		"p1": role.Werewolf, "p2": role.Seer, "p3": role.Villager,
	}, "p1")
	results := evaluateAll(ctx)

	village := resultFor(t, results, role.TeamVillage)
	assert.True(t, village.Won)
	assert.Equal(t, []string{"p2", "p3"}, village.Winners)

	assert.False(t, resultFor(t, results, role.TeamWerewolf).Won)
	assert.False(t, resultFor(t, results, role.TeamTanner).Won)
}

func TestWin_WerewolfSurvives_WerewolfWins(t *testing.T) {
	t.Parallel()

	ctx := winContext(map[string]role.Name{
		"p1": role.Werewolf, "p2": role.Seer, "p3": role.Villager,
	}, "p2")
	results := evaluateAll(ctx)

	assert.False(t, resultFor(t, results, role.TeamVillage).Won)
	werewolf := resultFor(t, results, role.TeamWerewolf)
	assert.True(t, werewolf.Won)
	assert.Equal(t, []string{"p1"}, werewolf.Winners)
}

func TestWin_NoWerewolves_NobodyDies_VillageWins(t *testing.T) {
	t.Parallel()

	ctx := winContext(map[string]role.Name{
		"p1": role.Seer, "p2": role.Robber, "p3": role.Villager,
	})
	results := evaluateAll(ctx)

	assert.True(t, resultFor(t, results, role.TeamVillage).Won)
	assert.False(t, resultFor(t, results, role.TeamWerewolf).Won)
}

func TestWin_NoWerewolves_VillagerDies_VillageLoses(t *testing.T) {
	t.Parallel()

	ctx := winContext(map[string]role.Name{
		"p1": role.Seer, "p2": role.Robber, "p3": role.Villager,
	}, "p3")
	results := evaluateAll(ctx)

	assert.False(t, resultFor(t, results, role.TeamVillage).Won)
	// 场上也没有狼人阵营成员，无人获胜
	assert.False(t, resultFor(t, results, role.TeamWerewolf).Won)
}

func TestWin_MinionAlone_CarriesWerewolfTeam(t *testing.T) {
	t.Parallel()

	ctx := winContext(map[string]role.Name{
		"p1": role.Minion, "p2": role.Seer, "p3": role.Villager,
	}, "p3")
	results := evaluateAll(ctx)

	werewolf := resultFor(t, results, role.TeamWerewolf)
	assert.True(t, werewolf.Won)
	assert.Equal(t, []string{"p1"}, werewolf.Winners)
	assert.False(t, resultFor(t, results, role.TeamVillage).Won)
}

func TestWin_MinionDiesAlone_WerewolfTeamLoses(t *testing.T) {
	t.Parallel()

	ctx := winContext(map[string]role.Name{
		"p1": role.Minion, "p2": role.Seer, "p3": role.Villager,
	}, "p1")
	results := evaluateAll(ctx)

	assert.False(t, resultFor(t, results, role.TeamWerewolf).Won)
	// 场上无狼人且爪牙被处决，村民获胜
	assert.True(t, resultFor(t, results, role.TeamVillage).Won)
}

func TestWin_MinionAndVillagerDie_MinionStillWins(t *testing.T) {
	t.Parallel()

	ctx := winContext(map[string]role.Name{
		"p1": role.Minion, "p2": role.Seer, "p3": role.Villager,
	}, "p1", "p3")
	results := evaluateAll(ctx)

	// 爪牙自己死了，但拉到了村民垫背
	assert.True(t, resultFor(t, results, role.TeamWerewolf).Won)
	// 村民阵营也杀中了爪牙
	assert.True(t, resultFor(t, results, role.TeamVillage).Won)
}

func TestWin_TannerDies_BlocksWerewolves(t *testing.T) {
	t.Parallel()

	ctx := winContext(map[string]role.Name{
		"p1": role.Werewolf, "p2": role.Tanner, "p3": role.Villager,
	}, "p2")
	results := evaluateAll(ctx)

	tanner := resultFor(t, results, role.TeamTanner)
	assert.True(t, tanner.Won)
	assert.Equal(t, []string{"p2"}, tanner.Winners)

	// 皮匠死亡一票否决狼人阵营，即使没有狼人被处决
	assert.False(t, resultFor(t, results, role.TeamWerewolf).Won)
	// 村民没有杀中狼人，不获胜
	assert.False(t, resultFor(t, results, role.TeamVillage).Won)
}

func TestWin_TannerAndWerewolfDie_VillageAndTannerCoWin(t *testing.T) {
	t.Parallel()

	ctx := winContext(map[string]role.Name{
		"p1": role.Werewolf, "p2": role.Tanner, "p3": role.Villager,
	}, "p1", "p2")
	results := evaluateAll(ctx)

	assert.True(t, resultFor(t, results, role.TeamVillage).Won)
	assert.True(t, resultFor(t, results, role.TeamTanner).Won)
	assert.False(t, resultFor(t, results, role.TeamWerewolf).Won)

	// 三个判定每局都要全部执行
	require.Len(t, results, 3)
}

func TestWin_TannerSurvives_TannerLoses(t *testing.T) {
	t.Parallel()

	ctx := winContext(map[string]role.Name{
		"p1": role.Werewolf, "p2": role.Tanner, "p3": role.Villager,
	}, "p1")
	results := evaluateAll(ctx)

	assert.False(t, resultFor(t, results, role.TeamTanner).Won)
	assert.True(t, resultFor(t, results, role.TeamVillage).Won)
}
