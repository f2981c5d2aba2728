// state/roster.go
package state

import (
	"github.com/wfunc/sketchdash/models"
)

// Player 房间内一名玩家的会话属性。身份ID在连接生命周期内稳定，
// 分数只增不减，整体重置时清零。
type Player struct {
	ID         string
	Name       string
	Avatar     string
	Score      int
	HasGuessed bool
}

// Roster 当前在线玩家集合，保持加入顺序。"在线"以它为准，
// 轮转队列只是它的一个有序视图。
type Roster struct {
	order   []string
	players map[string]*Player
}

func NewRoster() *Roster {
	return &Roster{
		players: make(map[string]*Player),
	}
}

// Add 加入玩家，ID已存在时只更新展示信息
func (r *Roster) Add(id, name, avatar string) *Player {
	if p, exists := r.players[id]; exists {
		p.Name = name
		p.Avatar = avatar
		return p
	}
	p := &Player{ID: id, Name: name, Avatar: avatar}
	r.players[id] = p
	r.order = append(r.order, id)
	return p
}

func (r *Roster) Remove(id string) {
	if _, exists := r.players[id]; !exists {
		return
	}
	delete(r.players, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *Roster) Get(id string) (*Player, bool) {
	p, exists := r.players[id]
	return p, exists
}

func (r *Roster) Contains(id string) bool {
	_, exists := r.players[id]
	return exists
}

func (r *Roster) Len() int {
	return len(r.players)
}

// IDs 按加入顺序返回所有身份
func (r *Roster) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Ordered 按加入顺序返回所有玩家
func (r *Roster) Ordered() []*Player {
	out := make([]*Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.players[id])
	}
	return out
}

// ClearGuessed 每个回合开始时清掉猜中标记
func (r *Roster) ClearGuessed() {
	for _, p := range r.players {
		p.HasGuessed = false
	}
}

// ResetScores 整体重置时分数归零
func (r *Roster) ResetScores() {
	for _, p := range r.players {
		p.Score = 0
		p.HasGuessed = false
	}
}

// Snapshot 广播用的花名册快照，顺序稳定
func (r *Roster) Snapshot() []models.PlayerInfo {
	out := make([]models.PlayerInfo, 0, len(r.order))
	for _, id := range r.order {
		p := r.players[id]
		out = append(out, models.PlayerInfo{
			ID:         p.ID,
			Name:       p.Name,
			Avatar:     p.Avatar,
			Score:      p.Score,
			HasGuessed: p.HasGuessed,
		})
	}
	return out
}
