// room/manager.go
package room

import (
	"sync"

	"github.com/wfunc/sketchdash/scoring"
	"github.com/wfunc/sketchdash/state"
)

// Manager 管理所有房间。房间之间没有共享可变状态，
// 规则参数和词池在创建时注入。
type Manager struct {
	rooms      map[string]*Room
	mutex      sync.RWMutex
	cfg        state.Config
	pool       state.WordPool
	policy     scoring.Policy
	maxPlayers int
}

func NewManager(cfg state.Config, pool state.WordPool, policy scoring.Policy, maxPlayers int) *Manager {
	return &Manager{
		rooms:      make(map[string]*Room),
		cfg:        cfg,
		pool:       pool,
		policy:     policy,
		maxPlayers: maxPlayers,
	}
}

// CreateRoom 创建房间并纳入管理
func (m *Manager) CreateRoom(id, name string, broadcaster Broadcaster, records RecordSink) *Room {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	room := NewRoom(id, name, m.maxPlayers, m.cfg, m.pool, m.policy, broadcaster, records)
	m.rooms[id] = room
	return room
}

// RemoveRoom 移除并关闭房间
func (m *Manager) RemoveRoom(id string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if room, exists := m.rooms[id]; exists {
		room.Close()
		delete(m.rooms, id)
	}
}

// RemoveIfEmpty 房间空了就关掉，返回是否移除
func (m *Manager) RemoveIfEmpty(id string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	room, exists := m.rooms[id]
	if !exists || room.PlayerCount() > 0 {
		return false
	}
	room.Close()
	delete(m.rooms, id)
	return true
}

func (m *Manager) GetRoom(id string) (*Room, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	room, exists := m.rooms[id]
	return room, exists
}

// FindAvailableRoom 找一个没满的房间，自动匹配用
func (m *Manager) FindAvailableRoom() *Room {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, room := range m.rooms {
		if room.PlayerCount() < room.MaxPlayers {
			return room
		}
	}
	return nil
}

// Count 当前房间数
func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.rooms)
}
