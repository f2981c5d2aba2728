// room/room.go
package room

import (
	"errors"
	"sync"
	"time"

	"github.com/wfunc/sketchdash/clock"
	"github.com/wfunc/sketchdash/logger"
	"github.com/wfunc/sketchdash/models"
	"github.com/wfunc/sketchdash/network"
	"github.com/wfunc/sketchdash/scoring"
	"github.com/wfunc/sketchdash/session"
	"github.com/wfunc/sketchdash/state"
)

var (
	ErrRoomFull   = errors.New("room is full")
	ErrRoomClosed = errors.New("room is closed")
)

type joinRequest struct {
	sess    *session.Session
	profile models.Profile
	errChan chan error
}

type packetEnvelope struct {
	sessionID string
	packet    *network.Packet
}

// Room 是一个游戏房间。所有入站事件(加入、离开、玩家动作、
// 时钟滴答、延迟转换回调)都汇入同一条事件循环，同一时刻最多
// 只有一个事件在修改会话状态。房间之间完全隔离。
type Room struct {
	ID         string
	Name       string
	MaxPlayers int
	CreatedAt  time.Time

	game        *state.Game
	broadcaster Broadcaster
	records     RecordSink

	ticker    *clock.Ticker
	scheduler *clock.Scheduler
	// pending 只在事件循环内读写
	pending map[int64]struct{}

	sessions     map[string]*session.Session
	sessionMutex sync.RWMutex

	joinChan   chan joinRequest
	leaveChan  chan string
	packetChan chan packetEnvelope
	tickChan   chan struct{}
	callChan   chan func()
	closeChan  chan struct{}
	closeOnce  sync.Once
}

// NewRoom 创建房间并启动它的事件循环
func NewRoom(id, name string, maxPlayers int, cfg state.Config, pool state.WordPool,
	policy scoring.Policy, broadcaster Broadcaster, records RecordSink) *Room {

	r := &Room{
		ID:          id,
		Name:        name,
		MaxPlayers:  maxPlayers,
		CreatedAt:   time.Now(),
		broadcaster: broadcaster,
		records:     records,
		scheduler:   clock.NewScheduler(),
		pending:     make(map[int64]struct{}),
		sessions:    make(map[string]*session.Session),
		joinChan:    make(chan joinRequest),
		leaveChan:   make(chan string, 64),
		packetChan:  make(chan packetEnvelope, 256),
		tickChan:    make(chan struct{}, 8),
		callChan:    make(chan func(), 64),
		closeChan:   make(chan struct{}),
	}

	r.ticker = clock.NewTicker(time.Second, func() {
		// 满了就丢，慢房间不阻塞时钟
		select {
		case r.tickChan <- struct{}{}:
		default:
		}
	})

	r.game = state.NewGame(r, cfg, pool, policy, time.Now().UnixNano())

	go r.loop()
	return r
}

// --- 对外接口，可从任意goroutine调用 ---

// Join 把连接加入房间，在事件循环内完成后返回
func (r *Room) Join(sess *session.Session, profile models.Profile) error {
	req := joinRequest{sess: sess, profile: profile, errChan: make(chan error, 1)}
	select {
	case r.joinChan <- req:
		return <-req.errChan
	case <-r.closeChan:
		return ErrRoomClosed
	}
}

// Leave 传输层断连通知
func (r *Room) Leave(sessionID string) {
	select {
	case r.leaveChan <- sessionID:
	case <-r.closeChan:
	}
}

// HandlePacket 投递一个玩家动作。房间拥堵时丢包，
// 被丢的动作等同于没发生过的可忽略协议违规。
func (r *Room) HandlePacket(sessionID string, packet *network.Packet) {
	select {
	case r.packetChan <- packetEnvelope{sessionID: sessionID, packet: packet}:
	case <-r.closeChan:
	default:
	}
}

// Close 关闭房间，停掉事件循环和所有计时
func (r *Room) Close() {
	r.closeOnce.Do(func() {
		close(r.closeChan)
	})
}

// PlayerCount 当前连接数
func (r *Room) PlayerCount() int {
	r.sessionMutex.RLock()
	defer r.sessionMutex.RUnlock()
	return len(r.sessions)
}

// GetSessions 返回会话切片副本，广播器用
func (r *Room) GetSessions() []*session.Session {
	r.sessionMutex.RLock()
	defer r.sessionMutex.RUnlock()

	sessions := make([]*session.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	return sessions
}

// GetSession 按ID取会话
func (r *Room) GetSession(sessionID string) (*session.Session, bool) {
	r.sessionMutex.RLock()
	defer r.sessionMutex.RUnlock()
	s, exists := r.sessions[sessionID]
	return s, exists
}

// Phase 当前会话阶段
func (r *Room) Phase() string {
	// game 的字段只能在循环内碰，阶段查询走一次循环往返
	result := make(chan string, 1)
	select {
	case r.callChan <- func() { result <- r.game.Phase() }:
		select {
		case phase := <-result:
			return phase
		case <-r.closeChan:
			return ""
		}
	case <-r.closeChan:
		return ""
	}
}

// --- 事件循环 ---

func (r *Room) loop() {
	for {
		select {
		case req := <-r.joinChan:
			req.errChan <- r.handleJoin(req)

		case sessionID := <-r.leaveChan:
			r.handleLeave(sessionID)

		case env := <-r.packetChan:
			r.game.HandleMessage(env.sessionID, env.packet.MsgID, env.packet.Data)

		case <-r.tickChan:
			r.game.Tick()

		case fn := <-r.callChan:
			fn()

		case <-r.closeChan:
			r.ticker.Stop()
			r.scheduler.Stop()
			return
		}
	}
}

func (r *Room) handleJoin(req joinRequest) error {
	r.sessionMutex.Lock()
	if len(r.sessions) >= r.MaxPlayers {
		r.sessionMutex.Unlock()
		return ErrRoomFull
	}
	r.sessions[req.sess.ID] = req.sess
	req.sess.RoomID = r.ID
	req.sess.Name = req.profile.Name
	r.sessionMutex.Unlock()

	r.game.HandleJoin(req.sess.ID, req.profile)
	return nil
}

func (r *Room) handleLeave(sessionID string) {
	r.sessionMutex.Lock()
	sess, exists := r.sessions[sessionID]
	if exists {
		sess.RoomID = ""
		delete(r.sessions, sessionID)
	}
	r.sessionMutex.Unlock()

	if exists {
		r.game.HandleLeave(sessionID)
	}
}

// --- 实现 state.RoomContext ---

func (r *Room) GetID() string {
	return r.ID
}

func (r *Room) Broadcast(msgID uint16, data []byte) error {
	return r.broadcaster.BroadcastToRoom(r.ID, msgID, data)
}

func (r *Room) BroadcastExcept(playerID string, msgID uint16, data []byte) error {
	return r.broadcaster.BroadcastToRoomExcept(r.ID, playerID, msgID, data)
}

func (r *Room) SendTo(playerID string, msgID uint16, data []byte) error {
	return r.broadcaster.SendToSession(playerID, msgID, data)
}

func (r *Room) StartClock() {
	r.ticker.Start()
}

func (r *Room) StopClock() {
	r.ticker.Stop()
}

// AfterDelay 注册延迟转换。回调经 callChan 回到事件循环执行，
// 到期前可被 CancelDelayed 整体取消。ID先预留再挂任务，
// 零延迟的任务也不会在ID可见之前触发。
func (r *Room) AfterDelay(delay time.Duration, fn func()) {
	id := r.scheduler.Reserve()
	r.pending[id] = struct{}{}
	r.scheduler.Schedule(id, delay, func() {
		select {
		case r.callChan <- func() {
			delete(r.pending, id)
			fn()
		}:
		case <-r.closeChan:
		}
	})
}

// CancelDelayed 取消所有挂起的延迟转换
func (r *Room) CancelDelayed() {
	for id := range r.pending {
		r.scheduler.Cancel(id)
	}
	r.pending = make(map[int64]struct{})
}

// ReportResult 异步上报结算摘要，失败只记日志
func (r *Room) ReportResult(record models.GameRecord) {
	if r.records == nil {
		return
	}
	go func() {
		if err := r.records.SaveGameRecord(record); err != nil {
			logger.Log.Errorf("房间 %s 结算入库失败: %v", r.ID, err)
		}
	}()
}
