package engine

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
)

// canonicalState 把当前状态编码成与遍历顺序无关的规范字符串。
// 玩家持牌和投票都按 ID 排序，同一状态必然得到同一字符串。
func (g *Game) canonicalState() string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	playerIDs := make([]string, 0, len(g.cards))
	for id := range g.cards {
		playerIDs = append(playerIDs, id)
	}
	sort.Strings(playerIDs)

	var b strings.Builder
	b.WriteString("phase=")
	b.WriteString(string(g.phase))

	b.WriteString(";players=")
	for i, id := range playerIDs {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s:%s", id, g.cards[id])
	}

	b.WriteString(";center=")
	for i, card := range g.center {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(string(card))
	}

	voters := make([]string, 0, len(g.votes))
	for id := range g.votes {
		voters = append(voters, id)
	}
	sort.Strings(voters)

	b.WriteString(";votes=")
	for i, id := range voters {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s:%s", id, g.votes[id])
	}

	return b.String()
}

// StateHash 当前状态的确定性哈希。两个哈希相等当且仅当
// 阶段、全部持牌、中央牌和已投票记录完全一致。
func (g *Game) StateHash() string {
	h := fnv.New64a()
	h.Write([]byte(g.canonicalState()))
	return fmt.Sprintf("%016x", h.Sum64())
}

// VerifyReplay 校验一段审计序列的完整性：Seq 必须从 1 开始连续递增，
// 每条都带状态哈希，且最后一条的哈希等于终局哈希。发现第一处
// 偏差即返回错误。
func VerifyReplay(entries []AuditEntry, finalHash string) error {
	if len(entries) == 0 {
		return fmt.Errorf("审计序列为空")
	}
	for i, e := range entries {
		if e.Seq != uint64(i+1) {
			return fmt.Errorf("第 %d 条审计记录的序号不连续: got %d", i+1, e.Seq)
		}
		if e.StateHash == "" {
			return fmt.Errorf("审计记录 #%d 缺少状态哈希", e.Seq)
		}
	}
	if last := entries[len(entries)-1].StateHash; last != finalHash {
		return fmt.Errorf("终局哈希不匹配: 审计为 %s, 结果为 %s", last, finalHash)
	}
	return nil
}

// DetectCycle 在审计序列中找第一对状态哈希相同的条目，
// 返回两条的 Seq；没有重复返回 (0, 0, false)。
// 用于验证换牌序列是否把状态带回了某个早先的局面。
func DetectCycle(entries []AuditEntry) (first, second uint64, found bool) {
	seen := make(map[string]uint64, len(entries))
	for _, e := range entries {
		if prev, ok := seen[e.StateHash]; ok {
			return prev, e.Seq, true
		}
		seen[e.StateHash] = e.Seq
	}
	return 0, 0, false
}
