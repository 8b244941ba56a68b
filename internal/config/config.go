package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 模拟器与存储配置
type Config struct {
	Redis      RedisConfig      `yaml:"redis"`
	Agent      AgentConfig      `yaml:"agent"`
	Simulation SimulationConfig `yaml:"simulation"`
}

// RedisConfig 对局记录存储配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Enabled  bool   `yaml:"enabled"` // false 时对局结果只打印不落库
}

// AgentConfig Agent 行为配置
type AgentConfig struct {
	DecisionTimeout int `yaml:"decision_timeout"` // 单次决策超时（秒）
}

// SimulationConfig 自对弈模拟配置
type SimulationConfig struct {
	Matches int      `yaml:"matches"`
	Seed    int64    `yaml:"seed"` // 0 表示每局随机
	Players []string `yaml:"players"`
	Roles   []string `yaml:"roles"`
}

// DecisionTimeoutDuration 返回单次决策超时时长
func (c *AgentConfig) DecisionTimeoutDuration() time.Duration {
	return time.Duration(c.DecisionTimeout) * time.Second
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
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Agent.DecisionTimeout == 0 {
		cfg.Agent.DecisionTimeout = 30
	}
	if cfg.Simulation.Matches == 0 {
		cfg.Simulation.Matches = 1
	}
	if len(cfg.Simulation.Players) == 0 {
		cfg.Simulation.Players = defaultPlayers()
	}
	if len(cfg.Simulation.Roles) == 0 {
		cfg.Simulation.Roles = defaultRoles()
	}

	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Agent: AgentConfig{
			DecisionTimeout: 30,
		},
		Simulation: SimulationConfig{
			Matches: 1,
			Players: defaultPlayers(),
			Roles:   defaultRoles(),
		},
	}
}

// defaultPlayers 经典五人局
func defaultPlayers() []string {
	return []string{"Alice", "Bob", "Carol", "Dave", "Eve"}
}

// defaultRoles 五人局推荐角色表：5 名玩家 + 3 张中央牌
func defaultRoles() []string {
	return []string{
		"werewolf", "werewolf", "seer", "robber",
		"troublemaker", "villager", "villager", "drunk",
	}
}
