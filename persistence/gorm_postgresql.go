// persistence/gorm_postgresql.go
package persistence

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wfunc/sketchdash/models"
)

// GormPostgreSQL 使用GORM的PostgreSQL实现
type GormPostgreSQL struct {
	db *gorm.DB
}

// NewGormPostgreSQL 创建GORM PostgreSQL数据库连接
func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	// 配置GORM日志
	dbLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold: time.Second,
			LogLevel:      gormlogger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := db.AutoMigrate(&models.GormPlayerProfile{}, &models.GormGameRecord{}); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

// SaveGameRecord 落结算记录并更新参与者统计，同一事务
func (g *GormPostgreSQL) SaveGameRecord(record models.GameRecord) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		row := models.GormGameRecord{
			RoomID:     record.RoomID,
			Rounds:     record.Rounds,
			WinnerName: record.WinnerName,
			Players:    record.Players,
			Duration:   record.Duration,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		for _, p := range record.Players {
			var profile models.GormPlayerProfile
			err := tx.Where("player_name = ?", p.Name).First(&profile).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				profile = models.GormPlayerProfile{PlayerName: p.Name}
			} else if err != nil {
				return err
			}

			profile.Stats.TotalGames++
			profile.Stats.TotalScore += p.Score
			if p.Score > profile.Stats.BestScore {
				profile.Stats.BestScore = p.Score
			}
			if p.Outcome == "win" {
				profile.Stats.Wins++
			}

			if err := tx.Save(&profile).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (g *GormPostgreSQL) GetPlayerStats(playerName string) (models.PlayerStats, error) {
	var profile models.GormPlayerProfile
	err := g.db.Where("player_name = ?", playerName).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.PlayerStats{}, ErrRecordNotFound
	}
	if err != nil {
		return models.PlayerStats{}, err
	}
	return profile.Stats, nil
}

func (g *GormPostgreSQL) TopPlayers(limit int) ([]models.PlayerRanking, error) {
	var profiles []models.GormPlayerProfile
	err := g.db.
		Order("(stats->>'wins')::int DESC, (stats->>'total_score')::int DESC").
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}

	rankings := make([]models.PlayerRanking, 0, len(profiles))
	for _, p := range profiles {
		rankings = append(rankings, models.PlayerRanking{
			PlayerName: p.PlayerName,
			Wins:       p.Stats.Wins,
			TotalScore: p.Stats.TotalScore,
		})
	}
	return rankings, nil
}

func (g *GormPostgreSQL) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
