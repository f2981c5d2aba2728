// state/interfaces.go
package state

import (
	"time"

	"github.com/wfunc/sketchdash/models"
)

// RoomContext 定义状态机驱动一个房间所需的全部能力。
// 由 room.Room 实现，放在这里以打破 room 和 state 的循环依赖。
// 所有回调(时钟滴答、延迟转换)都必须被实现方串回房间的事件循环，
// 状态机内部不做任何加锁。
type RoomContext interface {
	GetID() string

	// 出站事件。发送失败只影响单个接收方，绝不回滚游戏状态。
	Broadcast(msgID uint16, data []byte) error
	BroadcastExcept(playerID string, msgID uint16, data []byte) error
	SendTo(playerID string, msgID uint16, data []byte) error

	// 回合时钟，每秒触发一次 Game.Tick。重复启动会先停掉旧的。
	StartClock()
	StopClock()

	// 延迟转换。fn 在房间事件循环中执行；CancelDelayed 取消所有
	// 未触发的延迟任务(整体重置时调用)。
	AfterDelay(delay time.Duration, fn func())
	CancelDelayed()

	// 整局结束时上报结算摘要，失败不影响游戏
	ReportResult(record models.GameRecord)
}
