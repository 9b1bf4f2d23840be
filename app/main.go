package main

import (
	"os"

	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// 解析命令行参数，示例：
	// ./your_program.sh --directory /tmp/data --port 4221
	cfg := parseArgs(os.Args[1:])

	// 初始化路由表并启动 HTTP 服务器
	srv := NewServer(cfg, newRouteTable(), log)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("服务器启动失败")
	}
}

// parseArgs 解析 --directory 与 --port，端口缺省 4221
func parseArgs(args []string) Config {
	cfg := Config{Addr: "0.0.0.0:4221"}
	for i := 0; i+1 < len(args); i++ {
		switch args[i] {
		case "--directory":
			cfg.BaseDir = args[i+1]
		case "--port":
			cfg.Addr = "0.0.0.0:" + args[i+1]
		}
	}
	return cfg
}
