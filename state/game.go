// state/game.go
package state

import (
	"encoding/json"
	"time"

	"github.com/wfunc/sketchdash/logger"
	"github.com/wfunc/sketchdash/models"
	"github.com/wfunc/sketchdash/network"
	"github.com/wfunc/sketchdash/scoring"
)

// Config 会话规则参数
type Config struct {
	RoundSeconds      int
	SelectionSeconds  int
	MaxRounds         int
	IntermissionDelay time.Duration
	GameOverDelay     time.Duration
	MinPlayers        int
}

// WordPool 候选词来源。一次抽取返回3个互不相同的词，
// 抽取不消耗词池。
type WordPool interface {
	DrawThree() [3]string
}

// Game 是一个房间的完整会话状态，也是它唯一的修改者。
// 所有入站事件(玩家动作、时钟滴答、延迟转换回调)由房间的
// 事件循环串行送入，这里不做并发防护。
type Game struct {
	ctx    RoomContext
	cfg    Config
	pool   WordPool
	policy scoring.Policy

	machine StateMachine
	roster  *Roster
	queue   *TurnQueue

	round        int
	firstTurn    bool
	drawerID     string
	currentWord  string
	wordChoices  []string
	timerSeconds int
	winners      []string
	startedAt    time.Time
}

func NewGame(ctx RoomContext, cfg Config, pool WordPool, policy scoring.Policy, seed int64) *Game {
	g := &Game{
		ctx:       ctx,
		cfg:       cfg,
		pool:      pool,
		policy:    policy,
		roster:    NewRoster(),
		queue:     NewTurnQueue(seed),
		round:     1,
		firstTurn: true,
	}

	g.machine = NewBaseStateMachine(newWaitingState(g))

	// 开局和续局都要求人数达标
	enoughPlayers := func() bool { return g.roster.Len() >= g.cfg.MinPlayers }
	g.machine.AddTransition(PhaseWaiting, PhaseSelecting, enoughPlayers)
	g.machine.AddTransition(PhaseIntermission, PhaseSelecting, enoughPlayers)

	return g
}

// --- 入站事件入口，只允许从房间事件循环调用 ---

// HandleJoin 玩家加入: 广播花名册，给加入者单独发会话快照，
// 人数从不足变达标时触发开局。
func (g *Game) HandleJoin(id string, profile models.Profile) {
	g.roster.Add(id, profile.Name, profile.Avatar)
	g.broadcastRoster()
	g.sendSnapshotTo(id)

	if g.Phase() == PhaseWaiting && g.roster.Len() >= g.cfg.MinPlayers {
		g.machine.ChangeState(newSelectingState(g))
	}
}

// HandleLeave 玩家断开。画手断开强制结束回合；
// 人数跌破下限时整体重置，并压掉所有挂起的延迟转换。
func (g *Game) HandleLeave(id string) {
	if !g.roster.Contains(id) {
		return
	}
	wasDrawer := id == g.drawerID

	g.roster.Remove(id)
	g.queue.Remove(id)
	g.broadcastRoster()

	if wasDrawer {
		g.drawerID = ""
	}

	if g.roster.Len() < g.cfg.MinPlayers {
		if g.Phase() != PhaseWaiting {
			logger.Log.Infof("房间 %s 人数不足，整体重置", g.ctx.GetID())
			g.fullReset()
		}
		return
	}

	if wasDrawer {
		switch g.Phase() {
		case PhaseSelecting, PhaseActive:
			logger.Log.Infof("房间 %s 画手离线，回合提前结束", g.ctx.GetID())
			g.endTurn()
		}
		return
	}

	// 没猜中的人走了，剩下的可能已经全员猜中
	if g.Phase() == PhaseActive && g.connectedWinners() >= g.roster.Len()-1 {
		logger.Log.Infof("房间 %s 剩余玩家全部猜中，回合提前结束", g.ctx.GetID())
		g.endTurn()
	}
}

// connectedWinners 本回合猜中且仍在线的人数。掉线的猜中者
// 不计，避免虚高触发回合结束。
func (g *Game) connectedWinners() int {
	n := 0
	for _, id := range g.winners {
		if g.roster.Contains(id) {
			n++
		}
	}
	return n
}

// HandleMessage 把玩家动作交给当前阶段处理，
// 不属于当前阶段的动作被静默丢弃。
func (g *Game) HandleMessage(playerID string, msgID uint16, data []byte) {
	g.machine.GetCurrentState().HandleEvent(playerID, msgID, data)
}

// Tick 时钟滴答，只有带倒计时的阶段关心
func (g *Game) Tick() {
	g.machine.GetCurrentState().OnTick()
}

// --- 只读访问 ---

func (g *Game) Phase() string        { return g.machine.GetCurrentState().GetID() }
func (g *Game) Round() int           { return g.round }
func (g *Game) DrawerID() string     { return g.drawerID }
func (g *Game) CurrentWord() string  { return g.currentWord }
func (g *Game) TimerSeconds() int    { return g.timerSeconds }
func (g *Game) PlayerCount() int     { return g.roster.Len() }
func (g *Game) Winners() []string    { return g.winners }
func (g *Game) WordChoices() []string { return g.wordChoices }

// --- 阶段间共享的内部逻辑 ---

// setupTurn 回合准备: 取下一个画手(队列空则重填，重填回合数+1，
// 首次重填除外)，清标记，抽词，起选词倒计时。
func (g *Game) setupTurn() {
	id, ok := g.queue.Pop()
	if !ok {
		g.queue.Refill(g.roster.IDs())
		if g.firstTurn {
			g.firstTurn = false
			g.startedAt = time.Now()
		} else {
			g.round++
		}
		id, ok = g.queue.Pop()
		if !ok {
			// 花名册已空，转换守卫应当挡住这种情况
			g.fullReset()
			return
		}
	}

	g.drawerID = id
	g.winners = nil
	g.roster.ClearGuessed()

	choices := g.pool.DrawThree()
	g.wordChoices = choices[:]
	g.timerSeconds = g.cfg.SelectionSeconds

	logger.Log.Infof("房间 %s 第%d回合，画手 %s", g.ctx.GetID(), g.round, g.drawerID)

	g.broadcastSnapshot()
	g.ctx.Broadcast(network.MsgTypeRemoteClear, nil)
	g.ctx.StartClock()
}

// beginDrawing 画手定词(或超时自动定词)后进入绘画阶段
func (g *Game) beginDrawing(word string) {
	g.currentWord = word
	g.timerSeconds = g.cfg.RoundSeconds
	g.machine.ChangeState(newActiveState(g))
}

// endTurn 回合结束，进入幕间
func (g *Game) endTurn() {
	g.machine.ChangeState(newIntermissionState(g))
}

// fullReset 整体重置: 停时钟，取消挂起的延迟转换，分数清零，
// 回到等待阶段。人数跌破下限或结算展示结束时调用。
func (g *Game) fullReset() {
	g.ctx.StopClock()
	g.ctx.CancelDelayed()

	g.roster.ResetScores()
	g.queue.Clear()
	g.round = 1
	g.firstTurn = true
	g.drawerID = ""
	g.currentWord = ""
	g.wordChoices = nil
	g.winners = nil
	g.timerSeconds = 0

	g.machine.ChangeState(newWaitingState(g))

	g.broadcastRoster()
	g.broadcastSnapshot()
}

// leader 返回当前分数最高的玩家，平分时取先加入者
func (g *Game) leader() *Player {
	var best *Player
	for _, p := range g.roster.Ordered() {
		if best == nil || p.Score > best.Score {
			best = p
		}
	}
	return best
}

func (g *Game) buildRecord(winner *Player) models.GameRecord {
	results := make([]models.PlayerResult, 0, g.roster.Len())
	for _, p := range g.roster.Ordered() {
		outcome := "lose"
		if winner != nil && p.ID == winner.ID {
			outcome = "win"
		}
		results = append(results, models.PlayerResult{
			PlayerID: p.ID,
			Name:     p.Name,
			Score:    p.Score,
			Outcome:  outcome,
		})
	}

	record := models.GameRecord{
		RoomID:    g.ctx.GetID(),
		Rounds:    g.round,
		Players:   results,
		CreatedAt: time.Now(),
	}
	if winner != nil {
		record.WinnerName = winner.Name
	}
	if !g.startedAt.IsZero() {
		record.Duration = int(time.Since(g.startedAt).Seconds())
	}
	return record
}

// --- 出站广播 ---

func (g *Game) broadcastRoster() {
	data, _ := json.Marshal(g.roster.Snapshot())
	g.ctx.Broadcast(network.MsgTypePlayerListUpdate, data)
}

func (g *Game) broadcastTimer() {
	data, _ := json.Marshal(models.TimerUpdate{Seconds: g.timerSeconds})
	g.ctx.Broadcast(network.MsgTypeTimerUpdate, data)
}

// snapshot 构造会话快照。forDrawer 的副本带候选词和当前词，
// 其他人拿到的是掩掉的版本。
func (g *Game) snapshot(forDrawer bool) []byte {
	update := models.GameStateUpdate{
		Phase:        g.Phase(),
		Round:        g.round,
		DrawerID:     g.drawerID,
		TimerSeconds: g.timerSeconds,
		Winners:      g.winners,
	}
	if forDrawer {
		update.WordChoices = g.wordChoices
		update.CurrentWord = g.currentWord
	}
	data, _ := json.Marshal(update)
	return data
}

func (g *Game) broadcastSnapshot() {
	if g.drawerID != "" {
		g.ctx.SendTo(g.drawerID, network.MsgTypeGameStateUpdate, g.snapshot(true))
		g.ctx.BroadcastExcept(g.drawerID, network.MsgTypeGameStateUpdate, g.snapshot(false))
		return
	}
	g.ctx.Broadcast(network.MsgTypeGameStateUpdate, g.snapshot(false))
}

func (g *Game) sendSnapshotTo(id string) {
	g.ctx.SendTo(id, network.MsgTypeGameStateUpdate, g.snapshot(id == g.drawerID))
}
