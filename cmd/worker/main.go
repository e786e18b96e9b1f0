package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusattend/internal/config"
	"campusattend/internal/queue"
	"campusattend/internal/store"
)

// liveCountTTL bounds how long a per-session scan counter outlives the
// session's five-minute window.
const liveCountTTL = time.Hour

// Worker consumes attendance events and keeps per-session live scan counters
// in Redis for the faculty dashboard.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "")
	}

	messages, err := q.Consume(ctx)
	if err != nil {
		log.Fatalf("queue consume init failed: %v", err)
	}

	log.Println("worker started, waiting for messages...")
	for msg := range messages {
		if msg.Type != queue.TypeMarked {
			continue
		}

		sessionID := string(msg.Body)
		key := "campusattend:live:" + sessionID

		if err := redisClient.Client.Incr(ctx, key).Err(); err != nil {
			log.Printf("increment live count for session %s failed: %v", sessionID, err)
			continue
		}
		_ = redisClient.Client.Expire(ctx, key, liveCountTTL).Err()
	}

	log.Println("worker stopped")
}
