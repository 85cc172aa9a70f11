package main

import (
	"log"

	"github.com/bromolabs/bromo-server/internal/config"
	"github.com/bromolabs/bromo-server/internal/db"
	"github.com/bromolabs/bromo-server/internal/httpapi"
	"github.com/bromolabs/bromo-server/internal/pipeline"
	"github.com/bromolabs/bromo-server/internal/store/rabbitmq"
	"github.com/bromolabs/bromo-server/internal/store/redisstore"
)

func main() {
	cfg := config.Load()

	log.Printf("boot env check: hasOpenAIKey=%t provider=%s debugChat=%t",
		cfg.OpenAIAPIKey != "", cfg.AIProvider, cfg.DebugChat)

	gdb := db.Connect(cfg.DBDSN)

	rds := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer rds.Close()

	// Persistence is best-effort; a missing broker degrades to no audit log
	// instead of refusing to start.
	var sink pipeline.Sink
	pub, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
	if err != nil {
		log.Printf("rabbit unavailable, persistence disabled: %v", err)
	} else {
		defer pub.Close()
		sink = pub
	}

	r := httpapi.NewRouter(gdb, cfg, rds, sink)

	log.Printf("bromo server listening on 0.0.0.0:%s", cfg.Port)
	if err := r.Run("0.0.0.0:" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
