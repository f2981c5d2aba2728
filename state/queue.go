// state/queue.go
package state

import (
	"math/rand"
)

// TurnQueue 画手轮转队列。从队首逐个消费；耗尽后由 Game 负责
// 用当前在线玩家乱序重填(重填即回合数+1，首次除外)。
type TurnQueue struct {
	ids []string
	rng *rand.Rand
}

func NewTurnQueue(seed int64) *TurnQueue {
	return &TurnQueue{rng: rand.New(rand.NewSource(seed))}
}

// Refill 用给定身份乱序重填队列
func (q *TurnQueue) Refill(ids []string) {
	q.ids = make([]string, len(ids))
	copy(q.ids, ids)
	q.rng.Shuffle(len(q.ids), func(i, j int) {
		q.ids[i], q.ids[j] = q.ids[j], q.ids[i]
	})
}

// Pop 取出下一个画手
func (q *TurnQueue) Pop() (string, bool) {
	if len(q.ids) == 0 {
		return "", false
	}
	id := q.ids[0]
	q.ids = q.ids[1:]
	return id, true
}

// Remove 掉线玩家从队列中剔除
func (q *TurnQueue) Remove(id string) {
	for i, qid := range q.ids {
		if qid == id {
			q.ids = append(q.ids[:i], q.ids[i+1:]...)
			return
		}
	}
}

func (q *TurnQueue) Len() int {
	return len(q.ids)
}

func (q *TurnQueue) Clear() {
	q.ids = nil
}
