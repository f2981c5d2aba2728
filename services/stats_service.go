// services/stats_service.go
package services

import (
	"errors"

	"github.com/wfunc/sketchdash/models"
	"github.com/wfunc/sketchdash/persistence"
)

// ErrPersistenceDisabled 纯内存模式下的统计查询
var ErrPersistenceDisabled = errors.New("persistence disabled")

// StatsService 对局结算与排行统计。db 为 nil 时服务降级:
// 写入静默丢弃，查询报错。
type StatsService struct {
	db persistence.Database
}

func NewStatsService(db persistence.Database) *StatsService {
	return &StatsService{db: db}
}

// SaveGameRecord 实现 room.RecordSink
func (s *StatsService) SaveGameRecord(record models.GameRecord) error {
	if s.db == nil {
		return nil
	}
	return s.db.SaveGameRecord(record)
}

func (s *StatsService) GetPlayerStats(playerName string) (models.PlayerStats, error) {
	if s.db == nil {
		return models.PlayerStats{}, ErrPersistenceDisabled
	}
	return s.db.GetPlayerStats(playerName)
}

func (s *StatsService) TopPlayers(limit int) ([]models.PlayerRanking, error) {
	if s.db == nil {
		return nil, ErrPersistenceDisabled
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.db.TopPlayers(limit)
}
