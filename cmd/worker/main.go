package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/bromolabs/bromo-server/internal/config"
	"github.com/bromolabs/bromo-server/internal/db"
	"github.com/bromolabs/bromo-server/internal/memory"
	"github.com/bromolabs/bromo-server/internal/store/rabbitmq"
)

func workerConcurrency() int {
	v := os.Getenv("WORKER_CONCURRENCY")
	if v == "" {
		return 2
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 2
	}
	if n > 50 {
		return 50
	}
	return n
}

func main() {
	cfg := config.Load()

	gdb := db.Connect(cfg.DBDSN)
	repo := memory.NewRepo(gdb)

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("rabbit dial: %v", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("rabbit channel: %v", err)
	}
	defer ch.Close()

	if err := rabbitmq.DeclareTopology(ch, cfg.RabbitQueue); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	concurrency := workerConcurrency()
	if err := ch.Qos(concurrency, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("worker started, queue=%s concurrency=%d", cfg.RabbitQueue, concurrency)

	jobs := make(chan amqp.Delivery, concurrency*2)

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func(workerID int) {
			defer wg.Done()
			for d := range jobs {
				start := time.Now()
				if err := handleJob(ctx, repo, d.Body); err != nil {
					log.Printf("worker=%d job failed cost=%s err=%v", workerID, time.Since(start), err)
					_ = d.Nack(false, false)
					continue
				}
				if err := d.Ack(false); err != nil {
					log.Printf("worker=%d ack failed err=%v", workerID, err)
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("worker shutting down")
			close(jobs)
			wg.Wait()
			return

		case d, ok := <-msgs:
			if !ok {
				log.Printf("delivery channel closed")
				time.Sleep(1 * time.Second)
				continue
			}
			jobs <- d
		}
	}
}

func handleJob(ctx context.Context, repo *memory.Repo, body []byte) error {
	var msg rabbitmq.JobMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("bad message: %w", err)
	}

	switch msg.Type {
	case rabbitmq.JobChatRun:
		var run memory.ChatRun
		if err := json.Unmarshal(msg.Payload, &run); err != nil {
			return fmt.Errorf("bad chat_run payload: %w", err)
		}
		if run.RunID == "" {
			return fmt.Errorf("chat_run missing run_id")
		}
		return repo.InsertChatRun(ctx, &run)

	case rabbitmq.JobFactUpsert:
		var f memory.Fact
		if err := json.Unmarshal(msg.Payload, &f); err != nil {
			return fmt.Errorf("bad fact_upsert payload: %w", err)
		}
		if f.DeviceID == "" || f.Key == "" {
			return fmt.Errorf("fact_upsert missing device_id or key")
		}
		f.ID = 0 // let the upsert pick the row
		return repo.UpsertFact(ctx, &f)

	default:
		return fmt.Errorf("unknown job type %q", msg.Type)
	}
}
