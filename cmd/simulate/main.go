package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/one-night-werewolf/internal/config"
	"github.com/palemoky/one-night-werewolf/internal/game/engine"
	"github.com/palemoky/one-night-werewolf/internal/game/role"
	"github.com/palemoky/one-night-werewolf/internal/logger"
	"github.com/palemoky/one-night-werewolf/internal/storage"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	matches := flag.Int("matches", 0, "模拟局数，覆盖配置文件")
	seed := flag.Int64("seed", 0, "随机种子，覆盖配置文件")
	verbose := flag.Bool("verbose", false, "打印每局的审计摘要")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("加载配置文件失败，使用默认配置: %v", err)
		cfg = config.Default()
	}
	if *matches > 0 {
		cfg.Simulation.Matches = *matches
	}
	if *seed != 0 {
		cfg.Simulation.Seed = *seed
	}

	if err := logger.Init(); err != nil {
		log.Printf("日志初始化失败: %v", err)
	}
	defer logger.Close()

	roles, err := parseRoles(cfg.Simulation.Roles)
	if err != nil {
		log.Fatalf("角色表非法: %v", err)
	}

	var store storage.RecordStore
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store = storage.NewRedisStore(client)
	}

	ctx := context.Background()
	wins := make(map[role.Team]int)

	for i := 0; i < cfg.Simulation.Matches; i++ {
		matchSeed := cfg.Simulation.Seed
		if matchSeed != 0 {
			matchSeed += int64(i)
		}

		result, trail, err := runMatch(ctx, cfg, roles, matchSeed, *verbose)
		if err != nil {
			log.Fatalf("第 %d 局执行失败: %v", i+1, err)
		}

		if err := engine.VerifyReplay(trail, result.FinalHash); err != nil {
			log.Printf("第 %d 局审计校验失败: %v", i+1, err)
		}

		for _, team := range result.WinningTeams {
			wins[team]++
		}
		fmt.Printf("match %d: game=%s teams=%v winners=%v eliminated=%v\n",
			i+1, result.GameID, result.WinningTeams, result.Winners, result.Eliminated)

		if store != nil {
			record := &storage.GameRecord{
				GameID:     result.GameID,
				Seed:       matchSeed,
				Result:     result,
				AuditTrail: trail,
			}
			if err := store.SaveRecord(ctx, record); err != nil {
				log.Printf("保存对局记录失败: %v", err)
			}
		}
	}

	fmt.Println("----")
	for _, team := range []role.Team{role.TeamVillage, role.TeamWerewolf, role.TeamTanner} {
		fmt.Printf("%s: %d/%d\n", team, wins[team], cfg.Simulation.Matches)
	}
}

// runMatch 用随机 Agent 跑一局完整对局
func runMatch(ctx context.Context, cfg *config.Config, roles []role.Name, seed int64, verbose bool) (*engine.GameResult, []engine.AuditEntry, error) {
	players := make([]engine.PlayerConfig, len(cfg.Simulation.Players))
	for i, name := range cfg.Simulation.Players {
		players[i] = engine.PlayerConfig{ID: fmt.Sprintf("p%d", i+1), Name: name}
	}

	agents := make(map[string]engine.Agent, len(players))
	for i, p := range players {
		agents[p.ID] = engine.NewRandomAgent(seed + int64(i) + 1)
	}

	g, err := engine.NewGame(engine.GameConfig{
		Seed:    seed,
		Players: players,
		Roles:   roles,
	}, engine.NewRegistry(), agents)
	if err != nil {
		return nil, nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, cfg.Agent.DecisionTimeoutDuration())
	defer cancel()

	result, err := g.Run(runCtx)
	if err != nil {
		return nil, nil, err
	}

	if verbose {
		fmt.Fprint(os.Stdout, g.Audit().Summary())
	}
	return result, g.Audit().Entries(), nil
}

func parseRoles(names []string) ([]role.Name, error) {
	roles := make([]role.Name, len(names))
	for i, s := range names {
		name := role.Name(s)
		if !name.Valid() {
			return nil, fmt.Errorf("未知角色 %q", s)
		}
		roles[i] = name
	}
	return roles, nil
}
