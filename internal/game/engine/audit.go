package engine

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AuditEntry 审计日志的一条记录。StateHash 是该动作完成后的状态哈希，
// 逐条重放动作并比对哈希即可验证一局的完整性。
type AuditEntry struct {
	Seq       uint64    `json:"seq"`
	EntryID   string    `json:"entryId"`
	Phase     string    `json:"phase"`
	Action    string    `json:"action"`
	ActorID   string    `json:"actorId,omitempty"`
	Details   string    `json:"details,omitempty"`
	StateHash string    `json:"stateHash"`
	Timestamp time.Time `json:"timestamp"`
}

// AuditLog 只追加的审计日志，Seq 单调递增，已写入的条目不可修改
type AuditLog struct {
	mu      sync.Mutex
	nextSeq uint64
	entries []AuditEntry
}

// NewAuditLog creates an empty log.
func NewAuditLog() *AuditLog {
	return &AuditLog{nextSeq: 1}
}

// Append 追加一条记录并返回其 Seq
func (l *AuditLog) Append(phase, action, actorID, details, stateHash string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	seq := l.nextSeq
	l.nextSeq++
	l.entries = append(l.entries, AuditEntry{
		Seq:       seq,
		EntryID:   uuid.NewString(),
		Phase:     phase,
		Action:    action,
		ActorID:   actorID,
		Details:   details,
		StateHash: stateHash,
		Timestamp: time.Now(),
	})
	return seq
}

// Entries 全部条目的副本
func (l *AuditLog) Entries() []AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]AuditEntry(nil), l.entries...)
}

// Len 条目数
func (l *AuditLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Summary 人类可读的整局摘要，调试和复盘用
func (l *AuditLog) Summary() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var b strings.Builder
	for _, e := range l.entries {
		fmt.Fprintf(&b, "#%d [%s] %s", e.Seq, e.Phase, e.Action)
		if e.ActorID != "" {
			fmt.Fprintf(&b, " actor=%s", e.ActorID)
		}
		if e.Details != "" {
			fmt.Fprintf(&b, " %s", e.Details)
		}
		fmt.Fprintf(&b, " hash=%s\n", e.StateHash)
	}
	return b.String()
}
