package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
}

type ServerConfig struct {
	HTTPAddress    string `mapstructure:"http_address"`
	RPCAddress     string `mapstructure:"rpc_address"`
	MonitorAddress string `mapstructure:"monitor_address"`
}

type DatabaseConfig struct {
	// Driver 选择持久化实现: "gorm" / "postgres" (database/sql) / "none" 纯内存运行
	Driver   string         `mapstructure:"driver"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

// GameConfig 游戏规则参数，全部可调
type GameConfig struct {
	RoundTime         time.Duration `mapstructure:"round_time"`
	SelectionTime     time.Duration `mapstructure:"selection_time"`
	MaxRounds         int           `mapstructure:"max_rounds"`
	IntermissionDelay time.Duration `mapstructure:"intermission_delay"`
	GameOverDelay     time.Duration `mapstructure:"game_over_delay"`
	MinPlayers        int           `mapstructure:"min_players"`
	MaxPlayers        int           `mapstructure:"max_players"`
	// ScoringPolicy: "placement_speed" (默认) 或 "speed"
	ScoringPolicy string `mapstructure:"scoring_policy"`
}

func setDefaults() {
	viper.SetDefault("server.http_address", ":8080")
	viper.SetDefault("server.rpc_address", ":8081")
	viper.SetDefault("server.monitor_address", ":9090")
	viper.SetDefault("database.driver", "none")
	viper.SetDefault("database.postgres.host", "localhost")
	viper.SetDefault("database.postgres.port", 5432)
	viper.SetDefault("game.round_time", 60*time.Second)
	viper.SetDefault("game.selection_time", 15*time.Second)
	viper.SetDefault("game.max_rounds", 10)
	viper.SetDefault("game.intermission_delay", 5*time.Second)
	viper.SetDefault("game.game_over_delay", 10*time.Second)
	viper.SetDefault("game.min_players", 2)
	viper.SetDefault("game.max_players", 8)
	viper.SetDefault("game.scoring_policy", "placement_speed")
}

func LoadConfig(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	setDefaults()
	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		// 找不到配置文件时退回默认值，其他错误照常返回
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
