package room

import "github.com/wfunc/sketchdash/models"

// Broadcaster 是房间依赖的出站网关。
// 定义在这里以打破 room 和 broadcast 的循环依赖。
type Broadcaster interface {
	BroadcastToRoom(roomID string, msgID uint16, data []byte) error
	BroadcastToRoomExcept(roomID, exceptID string, msgID uint16, data []byte) error
	SendToSession(sessionID string, msgID uint16, data []byte) error
}

// RecordSink 接收整局结束时的结算摘要，可以为 nil(纯内存运行)
type RecordSink interface {
	SaveGameRecord(record models.GameRecord) error
}
