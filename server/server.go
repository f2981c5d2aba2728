package server

import (
	"encoding/json"
	"net/http"
	"net/rpc"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/wfunc/sketchdash/broadcast"
	"github.com/wfunc/sketchdash/config"
	"github.com/wfunc/sketchdash/logger"
	"github.com/wfunc/sketchdash/models"
	"github.com/wfunc/sketchdash/monitor"
	"github.com/wfunc/sketchdash/network"
	"github.com/wfunc/sketchdash/persistence"
	"github.com/wfunc/sketchdash/room"
	sketchrpc "github.com/wfunc/sketchdash/rpc"
	"github.com/wfunc/sketchdash/scoring"
	"github.com/wfunc/sketchdash/services"
	"github.com/wfunc/sketchdash/session"
	"github.com/wfunc/sketchdash/state"
	"github.com/wfunc/sketchdash/words"
)

type GameServer struct {
	addr           string
	monitorAddr    string
	upgrader       websocket.Upgrader
	roomManager    *room.Manager
	sessionManager *session.Manager
	broadcaster    *broadcast.RoomBroadcaster
	stats          *services.StatsService
	records        room.RecordSink
	monitor        *monitor.Monitor
	rpcServer      *sketchrpc.Server
	shutdownChan   chan struct{}
}

func NewGameServer(cfg *config.Config, db persistence.Database) *GameServer {
	gameCfg := state.Config{
		RoundSeconds:      int(cfg.Game.RoundTime.Seconds()),
		SelectionSeconds:  int(cfg.Game.SelectionTime.Seconds()),
		MaxRounds:         cfg.Game.MaxRounds,
		IntermissionDelay: cfg.Game.IntermissionDelay,
		GameOverDelay:     cfg.Game.GameOverDelay,
		MinPlayers:        cfg.Game.MinPlayers,
	}

	pool := words.NewDefaultPool(time.Now().UnixNano())
	policy := scoring.ByName(cfg.Game.ScoringPolicy)

	s := &GameServer{
		addr:           cfg.Server.HTTPAddress,
		monitorAddr:    cfg.Server.MonitorAddress,
		roomManager:    room.NewManager(gameCfg, pool, policy, cfg.Game.MaxPlayers),
		sessionManager: session.NewManager(),
		stats:          services.NewStatsService(db),
		monitor:        monitor.NewMonitor("sketchdash"),
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 允许所有跨域请求
			},
		},
	}

	// 初始化广播器
	s.broadcaster = broadcast.NewRoomBroadcaster(s.roomManager, s.sessionManager)

	// 结算上报: 先计指标再落库
	s.records = &monitoredSink{stats: s.stats, monitor: s.monitor}

	// 初始化RPC服务器
	rpcServer, err := sketchrpc.NewServer(cfg.Server.RPCAddress)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer
	rpc.Register(sketchrpc.NewStatsRPC(s.stats))

	return s
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()
	s.monitor.StartServer(s.monitorAddr)

	http.HandleFunc("/ws", s.handleWebSocket)
	logger.Log.Infof("Game server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, nil)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.rpcServer.Stop()
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)
	s.monitor.IncOnlinePlayers()

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	var joined *room.Room
	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		if joined != nil {
			joined.Leave(sess.ID)
			s.roomManager.RemoveIfEmpty(joined.ID)
			s.monitor.SetActiveRooms(s.roomManager.Count())
		}
		s.sessionManager.Remove(sess.GetID())
		s.monitor.DecOnlinePlayers()
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
		}

		packet, err := wsConn.ReadPacket()
		if err != nil {
			return
		}
		s.monitor.IncMessagesReceived()

		switch {
		case packet.MsgID == network.MsgTypeHeartbeat:
			sess.Touch()

		case packet.MsgID == network.MsgTypeJoinGame && joined == nil:
			r, err := s.handleJoinGame(sess, packet)
			if err != nil {
				logger.Log.Warnf("Session %s join failed: %v", sess.GetID(), err)
				continue
			}
			joined = r
			s.monitor.SetActiveRooms(s.roomManager.Count())

		case joined != nil:
			joined.HandlePacket(sess.ID, packet)

		default:
			// 加入前的游戏动作直接丢弃
		}
	}
}

// handleJoinGame 解析加入请求，定位或创建房间并入座
func (s *GameServer) handleJoinGame(sess *session.Session, packet *network.Packet) (*room.Room, error) {
	var req models.JoinRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		return nil, err
	}
	if req.Name == "" {
		req.Name = "Player-" + sess.ID[:8]
	}

	var r *room.Room
	if req.RoomID != "" {
		// 指定房间号: 不存在就按这个号开新房
		existing, ok := s.roomManager.GetRoom(req.RoomID)
		if ok {
			r = existing
		} else {
			r = s.roomManager.CreateRoom(req.RoomID, req.RoomID, s.broadcaster, s.records)
		}
	} else {
		// 自动匹配
		r = s.roomManager.FindAvailableRoom()
		if r == nil {
			id := uuid.New().String()
			r = s.roomManager.CreateRoom(id, "Room-"+id[:8], s.broadcaster, s.records)
		}
	}

	if err := r.Join(sess, models.Profile{Name: req.Name, Avatar: req.Avatar}); err != nil {
		return nil, err
	}

	logger.Log.Infof("Session %s (%s) joined room %s", sess.GetID(), req.Name, r.ID)

	ack, _ := json.Marshal(models.JoinAck{RoomID: r.ID, PlayerID: sess.ID})
	sess.Send(network.MsgTypeJoinAck, ack)
	return r, nil
}

// monitoredSink 在结算落库前更新完场计数
type monitoredSink struct {
	stats   *services.StatsService
	monitor *monitor.Monitor
}

func (m *monitoredSink) SaveGameRecord(record models.GameRecord) error {
	m.monitor.IncGamesCompleted()
	return m.stats.SaveGameRecord(record)
}
