// persistence/interface.go
package persistence

import (
	"errors"

	"github.com/wfunc/sketchdash/models"
)

// Database 持久化接口。只存玩家档案和对局结算摘要，
// 游戏过程本身是纯内存的，进程重启即丢失。
type Database interface {
	// SaveGameRecord 落一条结算记录，并在同一事务里
	// 更新所有参与者的累计统计
	SaveGameRecord(record models.GameRecord) error
	GetPlayerStats(playerName string) (models.PlayerStats, error)
	TopPlayers(limit int) ([]models.PlayerRanking, error)
	Close() error
}

// 错误定义
var (
	ErrRecordNotFound = errors.New("record not found")
)
