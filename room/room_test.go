package room

import (
	"net"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/wfunc/sketchdash/logger"
	"github.com/wfunc/sketchdash/models"
	"github.com/wfunc/sketchdash/network"
	"github.com/wfunc/sketchdash/scoring"
	"github.com/wfunc/sketchdash/session"
	"github.com/wfunc/sketchdash/state"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// MockBroadcaster 把广播调用记下来，不做真实投递
type MockBroadcaster struct {
	mutex sync.Mutex
	calls []broadcastCall
}

type broadcastCall struct {
	roomID string
	msgID  uint16
}

func (b *MockBroadcaster) BroadcastToRoom(roomID string, msgID uint16, data []byte) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.calls = append(b.calls, broadcastCall{roomID: roomID, msgID: msgID})
	return nil
}

func (b *MockBroadcaster) BroadcastToRoomExcept(roomID, exceptID string, msgID uint16, data []byte) error {
	return b.BroadcastToRoom(roomID, msgID, data)
}

func (b *MockBroadcaster) SendToSession(sessionID string, msgID uint16, data []byte) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.calls = append(b.calls, broadcastCall{msgID: msgID})
	return nil
}

func (b *MockBroadcaster) count(msgID uint16) int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	n := 0
	for _, c := range b.calls {
		if c.msgID == msgID {
			n++
		}
	}
	return n
}

// MockConnection 会话层的空连接
type MockConnection struct{}

func (c *MockConnection) Send(msgID uint16, data []byte) error { return nil }
func (c *MockConnection) Close() error                         { return nil }
func (c *MockConnection) RemoteAddr() net.Addr                 { return nil }
func (c *MockConnection) SetHeartbeat(interval time.Duration)  {}
func (c *MockConnection) ReadPacket() (*network.Packet, error) { return nil, nil }

type fixedPool struct{}

func (fixedPool) DrawThree() [3]string {
	return [3]string{"CAT", "DOG", "FISH"}
}

func testGameConfig() state.Config {
	return state.Config{
		RoundSeconds:      60,
		SelectionSeconds:  15,
		MaxRounds:         10,
		IntermissionDelay: 5 * time.Second,
		GameOverDelay:     10 * time.Second,
		MinPlayers:        2,
	}
}

func newTestManager() (*Manager, *MockBroadcaster) {
	m := NewManager(testGameConfig(), fixedPool{}, scoring.PlacementSpeed, 8)
	return m, &MockBroadcaster{}
}

func newTestSession(id string) *session.Session {
	return session.NewSession(id, &MockConnection{})
}

func TestManager_CreateGetRemove(t *testing.T) {
	m, b := newTestManager()

	r := m.CreateRoom("r1", "Room One", b, nil)
	defer r.Close()

	if m.Count() != 1 {
		t.Fatalf("Expected 1 room, got %d", m.Count())
	}
	got, exists := m.GetRoom("r1")
	if !exists || got.ID != "r1" {
		t.Fatalf("GetRoom failed: %v %v", got, exists)
	}

	m.RemoveRoom("r1")
	if _, exists := m.GetRoom("r1"); exists {
		t.Fatal("Room still present after RemoveRoom")
	}
}

func TestManager_RemoveIfEmpty(t *testing.T) {
	m, b := newTestManager()
	r := m.CreateRoom("r1", "Room One", b, nil)

	if err := r.Join(newTestSession("s1"), models.Profile{Name: "Alice"}); err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if m.RemoveIfEmpty("r1") {
		t.Fatal("RemoveIfEmpty removed an occupied room")
	}

	r.Leave("s1")
	// Leave 走异步通道，等事件循环消化
	waitFor(t, func() bool { return r.PlayerCount() == 0 })
	if !m.RemoveIfEmpty("r1") {
		t.Fatal("RemoveIfEmpty kept an empty room")
	}
	if m.Count() != 0 {
		t.Fatalf("Expected 0 rooms, got %d", m.Count())
	}
}

func TestManager_FindAvailableRoom(t *testing.T) {
	m, b := newTestManager()
	if m.FindAvailableRoom() != nil {
		t.Fatal("FindAvailableRoom on an empty manager must return nil")
	}

	r := m.CreateRoom("r1", "Room One", b, nil)
	defer r.Close()
	if m.FindAvailableRoom() == nil {
		t.Fatal("Expected the fresh room to be available")
	}
}

func TestRoom_JoinStartsGame(t *testing.T) {
	m, b := newTestManager()
	r := m.CreateRoom("r1", "Room One", b, nil)
	defer r.Close()

	if err := r.Join(newTestSession("s1"), models.Profile{Name: "Alice"}); err != nil {
		t.Fatalf("First join failed: %v", err)
	}
	if got := r.Phase(); got != state.PhaseWaiting {
		t.Fatalf("Expected waiting with one player, got %q", got)
	}

	if err := r.Join(newTestSession("s2"), models.Profile{Name: "Bob"}); err != nil {
		t.Fatalf("Second join failed: %v", err)
	}
	if got := r.Phase(); got != state.PhaseSelecting {
		t.Fatalf("Expected selecting with two players, got %q", got)
	}
	if r.PlayerCount() != 2 {
		t.Fatalf("Expected 2 connected, got %d", r.PlayerCount())
	}
	if b.count(network.MsgTypePlayerListUpdate) == 0 {
		t.Fatal("Expected roster broadcasts on join")
	}
}

func TestRoom_JoinFull(t *testing.T) {
	m := NewManager(testGameConfig(), fixedPool{}, scoring.PlacementSpeed, 1)
	b := &MockBroadcaster{}
	r := m.CreateRoom("r1", "Room One", b, nil)
	defer r.Close()

	if err := r.Join(newTestSession("s1"), models.Profile{Name: "Alice"}); err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if err := r.Join(newTestSession("s2"), models.Profile{Name: "Bob"}); err != ErrRoomFull {
		t.Fatalf("Expected ErrRoomFull, got %v", err)
	}
}

func TestRoom_LeaveDropsBelowMinimum(t *testing.T) {
	m, b := newTestManager()
	r := m.CreateRoom("r1", "Room One", b, nil)
	defer r.Close()

	r.Join(newTestSession("s1"), models.Profile{Name: "Alice"})
	r.Join(newTestSession("s2"), models.Profile{Name: "Bob"})
	r.Leave("s2")

	waitFor(t, func() bool { return r.Phase() == state.PhaseWaiting })
	if r.PlayerCount() != 1 {
		t.Fatalf("Expected 1 connected after leave, got %d", r.PlayerCount())
	}
}

func TestRoom_JoinAfterClose(t *testing.T) {
	m, b := newTestManager()
	r := m.CreateRoom("r1", "Room One", b, nil)
	r.Close()

	if err := r.Join(newTestSession("s1"), models.Profile{Name: "Alice"}); err != ErrRoomClosed {
		t.Fatalf("Expected ErrRoomClosed, got %v", err)
	}
}

func TestRoom_PacketReachesGame(t *testing.T) {
	m, b := newTestManager()
	r := m.CreateRoom("r1", "Room One", b, nil)
	defer r.Close()

	r.Join(newTestSession("s1"), models.Profile{Name: "Alice"})
	r.Join(newTestSession("s2"), models.Profile{Name: "Bob"})

	// 选词包只有画手发才生效，两个都发必有一个命中
	pkt := &network.Packet{
		MsgID: network.MsgTypeWordSelected,
		Data:  []byte(`{"word":"CAT"}`),
	}
	r.HandlePacket("s1", pkt)
	r.HandlePacket("s2", pkt)

	waitFor(t, func() bool { return r.Phase() == state.PhaseActive })
}

// waitFor 轮询直到条件满足或超时
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("Condition not met within 2s")
}
