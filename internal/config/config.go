package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Game   GameConfig   `yaml:"game"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxConnections int    `yaml:"max_connections"` // 并发连接上限
	LogFile        string `yaml:"log_file"`        // 日志文件路径，留空输出到 stderr
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig 游戏配置
type GameConfig struct {
	TurnTimeout     int `yaml:"turn_timeout"`     // 普通回合超时（秒）
	ResponseTimeout int `yaml:"response_timeout"` // 连锁/质疑/窗口应答超时（秒）
	WarningBefore   int `yaml:"warning_before"`   // 应答超时前多少秒发警告
	OfflineGrace    int `yaml:"offline_grace"`    // 离线等待重连时间（秒）
	RoomTimeout     int `yaml:"room_timeout"`     // 房间等待超时（分钟）
}

// TurnTimeoutDuration 返回普通回合超时时长
func (c *GameConfig) TurnTimeoutDuration() time.Duration {
	return time.Duration(c.TurnTimeout) * time.Second
}

// ResponseTimeoutDuration 返回应答超时时长
func (c *GameConfig) ResponseTimeoutDuration() time.Duration {
	return time.Duration(c.ResponseTimeout) * time.Second
}

// WarningBeforeDuration 返回警告提前量
func (c *GameConfig) WarningBeforeDuration() time.Duration {
	return time.Duration(c.WarningBefore) * time.Second
}

// OfflineGraceDuration 返回离线等待时长
func (c *GameConfig) OfflineGraceDuration() time.Duration {
	return time.Duration(c.OfflineGrace) * time.Second
}

// RoomTimeoutDuration 返回房间等待超时时长
func (c *GameConfig) RoomTimeoutDuration() time.Duration {
	return time.Duration(c.RoomTimeout) * time.Minute
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// 设置默认值
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 1707
	}
	if cfg.Server.MaxConnections == 0 {
		cfg.Server.MaxConnections = 1000
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Game.TurnTimeout == 0 {
		cfg.Game.TurnTimeout = 30
	}
	if cfg.Game.ResponseTimeout == 0 {
		cfg.Game.ResponseTimeout = 10
	}
	if cfg.Game.WarningBefore == 0 {
		cfg.Game.WarningBefore = 5
	}
	if cfg.Game.OfflineGrace == 0 {
		cfg.Game.OfflineGrace = 30
	}
	if cfg.Game.RoomTimeout == 0 {
		cfg.Game.RoomTimeout = 10
	}

	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           1707,
			MaxConnections: 1000,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Game: GameConfig{
			TurnTimeout:     30,
			ResponseTimeout: 10,
			WarningBefore:   5,
			OfflineGrace:    30,
			RoomTimeout:     10,
		},
	}
}
