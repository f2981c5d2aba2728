// persistence/postgresql.go
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	// PostgreSQL 驱动
	_ "github.com/lib/pq"

	"github.com/wfunc/sketchdash/models"
)

// PostgreSQL 基于 database/sql 的实现，不依赖ORM
type PostgreSQL struct {
	db *sql.DB
}

// NewPostgreSQL 创建 PostgreSQL 数据库连接
func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	// 设置连接池参数
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &PostgreSQL{db: db}, nil
}

// initTables 初始化数据库表结构
func initTables(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS player_profiles (
            id SERIAL PRIMARY KEY,
            player_name TEXT UNIQUE NOT NULL,
            avatar TEXT NOT NULL DEFAULT '',
            stats JSONB NOT NULL DEFAULT '{}',
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS game_records (
            id SERIAL PRIMARY KEY,
            room_id TEXT NOT NULL,
            rounds INT NOT NULL DEFAULT 0,
            winner_name TEXT NOT NULL DEFAULT '',
            players JSONB NOT NULL,
            duration INT NOT NULL DEFAULT 0,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_game_records_room ON game_records(room_id)`)
	return err
}

// SaveGameRecord 落结算记录并更新参与者统计，同一事务
func (p *PostgreSQL) SaveGameRecord(record models.GameRecord) error {
	tx, err := p.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	playersJSON, err := json.Marshal(record.Players)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        INSERT INTO game_records (room_id, rounds, winner_name, players, duration)
        VALUES ($1, $2, $3, $4, $5)`,
		record.RoomID, record.Rounds, record.WinnerName, playersJSON, record.Duration)
	if err != nil {
		return err
	}

	for _, pr := range record.Players {
		stats, err := loadStatsTx(tx, pr.Name)
		if err != nil {
			return err
		}

		stats.TotalGames++
		stats.TotalScore += pr.Score
		if pr.Score > stats.BestScore {
			stats.BestScore = pr.Score
		}
		if pr.Outcome == "win" {
			stats.Wins++
		}

		statsJSON, err := json.Marshal(stats)
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
            INSERT INTO player_profiles (player_name, stats)
            VALUES ($1, $2)
            ON CONFLICT (player_name)
            DO UPDATE SET stats = $2, updated_at = CURRENT_TIMESTAMP`,
			pr.Name, statsJSON)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// loadStatsTx 读当前统计，没有记录时返回零值
func loadStatsTx(tx *sql.Tx, playerName string) (models.PlayerStats, error) {
	var raw []byte
	err := tx.QueryRow(
		`SELECT stats FROM player_profiles WHERE player_name = $1`, playerName).Scan(&raw)
	if err == sql.ErrNoRows {
		return models.PlayerStats{}, nil
	}
	if err != nil {
		return models.PlayerStats{}, err
	}

	var stats models.PlayerStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return models.PlayerStats{}, err
	}
	return stats, nil
}

func (p *PostgreSQL) GetPlayerStats(playerName string) (models.PlayerStats, error) {
	var raw []byte
	err := p.db.QueryRow(
		`SELECT stats FROM player_profiles WHERE player_name = $1`, playerName).Scan(&raw)
	if err == sql.ErrNoRows {
		return models.PlayerStats{}, ErrRecordNotFound
	}
	if err != nil {
		return models.PlayerStats{}, err
	}

	var stats models.PlayerStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return models.PlayerStats{}, err
	}
	return stats, nil
}

func (p *PostgreSQL) TopPlayers(limit int) ([]models.PlayerRanking, error) {
	rows, err := p.db.Query(`
        SELECT player_name,
               COALESCE((stats->>'wins')::int, 0) AS wins,
               COALESCE((stats->>'total_score')::int, 0) AS total_score
        FROM player_profiles
        ORDER BY wins DESC, total_score DESC
        LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rankings []models.PlayerRanking
	for rows.Next() {
		var r models.PlayerRanking
		if err := rows.Scan(&r.PlayerName, &r.Wins, &r.TotalScore); err != nil {
			return nil, err
		}
		rankings = append(rankings, r)
	}
	return rankings, rows.Err()
}

func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
