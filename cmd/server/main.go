package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"belote/config"
	"belote/game"
	"belote/idgen"
	"belote/server"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func main() {
	configPath := flag.String("config", "table.json", "Table config file")
	port := flag.String("port", "", "Server port (overrides config)")
	turnTimeout := flag.Int("turn-timeout", -1, "Seconds before a silent seat passes, 0 disables (overrides config)")
	seed := flag.Int64("seed", 0, "Seed for ids and shuffles (overrides config)")
	debug := flag.Bool("debug", false, "Development logging")
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	if err := config.LoadTableConfig(*configPath); err != nil {
		logger.Fatal("load config", zap.String("path", *configPath), zap.Error(err))
	}
	cfg := config.GetTableConfig()
	if *port != "" {
		cfg.Port = *port
	}
	if *turnTimeout >= 0 {
		cfg.TurnTimeoutSeconds = *turnTimeout
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	ids := idgen.New()
	rng := game.NewRNG(time.Now().UnixNano())
	if cfg.Seed != 0 {
		ids = idgen.New(idgen.WithSeed(cfg.Seed))
		rng = game.NewRNG(cfg.Seed)
	}

	table, err := server.NewTable(ids, rng, game.Position(cfg.FirstDealer))
	if err != nil {
		logger.Fatal("create table", zap.Error(err))
	}

	hub := server.NewHub(logger)
	gameServer := server.NewGameServer(hub, table, cfg.TurnTimeout(), logger)
	hub.OnDisconnect = gameServer.HandleDisconnect

	go gameServer.Run()

	// WebSocket endpoint
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade", zap.Error(err))
			return
		}

		client := server.NewClient(hub, conn)
		hub.Register(client)

		go client.WritePump()
		go client.ReadPump()

		// Send initial state
		gameServer.SendState(client)
	})

	addr := ":" + cfg.Port
	logger.Info("starting belote server",
		zap.String("addr", addr),
		zap.String("table_id", table.ID),
		zap.Duration("turn_timeout", cfg.TurnTimeout()),
		zap.Bool("seeded", ids.Seeded()),
	)

	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("listen", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
