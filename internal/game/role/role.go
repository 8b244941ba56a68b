package role

import "fmt"

// Name 角色名
type Name string

const (
	Doppelganger Name = "doppelganger" // 化身幽灵
	Werewolf     Name = "werewolf"     // 狼人
	Minion       Name = "minion"       // 爪牙
	Mason        Name = "mason"        // 守夜人
	Seer         Name = "seer"         // 预言家
	Robber       Name = "robber"       // 强盗
	Troublemaker Name = "troublemaker" // 捣蛋鬼
	Drunk        Name = "drunk"        // 酒鬼
	Insomniac    Name = "insomniac"    // 失眠者
	Villager     Name = "villager"     // 村民
	Hunter       Name = "hunter"       // 猎人
	Tanner       Name = "tanner"       // 皮匠
)

// Team 阵营
type Team string

const (
	TeamVillage  Team = "village"
	TeamWerewolf Team = "werewolf"
	TeamTanner   Team = "tanner"
)

// NoNightAction 无夜晚行动的唤醒序号
const NoNightAction = -1

// Role 不可变的角色元数据，由注册表创建后不再修改
type Role struct {
	Name        Name
	Team        Team
	NightOrder  int // 1-9，NoNightAction 表示夜晚不行动
	MaxCopies   int // 一副牌里允许的最大份数
	Description string
}

// roleTable 全部 12 个内置角色
var roleTable = map[Name]Role{
	Doppelganger: {Doppelganger, TeamVillage, 1, 1, "查看一名玩家的牌并化身为该角色"},
	Werewolf:     {Werewolf, TeamWerewolf, 2, 2, "与其他狼人互认，孤狼可查看一张中央牌"},
	Minion:       {Minion, TeamWerewolf, 3, 1, "得知所有狼人，狼人不知道爪牙"},
	Mason:        {Mason, TeamVillage, 4, 2, "与另一名守夜人互认"},
	Seer:         {Seer, TeamVillage, 5, 1, "查看一名玩家的牌，或两张中央牌"},
	Robber:       {Robber, TeamVillage, 6, 1, "与一名玩家换牌并查看新牌"},
	Troublemaker: {Troublemaker, TeamVillage, 7, 1, "交换另外两名玩家的牌"},
	Drunk:        {Drunk, TeamVillage, 8, 1, "与一张中央牌互换且不能查看"},
	Insomniac:    {Insomniac, TeamVillage, 9, 1, "夜晚结束前查看自己当前的牌"},
	Villager:     {Villager, TeamVillage, NoNightAction, 3, "没有特殊能力"},
	Hunter:       {Hunter, TeamVillage, NoNightAction, 1, "被投出局时带走自己投票的目标"},
	Tanner:       {Tanner, TeamTanner, NoNightAction, 1, "只有自己被投出局才获胜"},
}

// byNightOrder 唤醒序号 → 角色名（每个序号恰好一个角色）
var byNightOrder = map[int]Name{}

func init() {
	for name, r := range roleTable {
		if r.NightOrder != NoNightAction {
			byNightOrder[r.NightOrder] = name
		}
	}
}

// Get 按角色名查元数据
func Get(name Name) (Role, bool) {
	r, ok := roleTable[name]
	return r, ok
}

// MustGet 按角色名查元数据，未知角色直接 panic（仅用于内置角色）
func MustGet(name Name) Role {
	r, ok := roleTable[name]
	if !ok {
		panic(fmt.Sprintf("unknown role %q", name))
	}
	return r
}

// ByNightOrder 按唤醒序号查角色名
func ByNightOrder(order int) (Name, bool) {
	name, ok := byNightOrder[order]
	return name, ok
}

// Valid 判断角色名是否合法
func (n Name) Valid() bool {
	_, ok := roleTable[n]
	return ok
}

// TeamOf 角色所属阵营
func TeamOf(name Name) Team {
	return MustGet(name).Team
}

func (n Name) String() string {
	return string(n)
}
