package socket

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/parley-org/parley-backend/internal/logger"
)

// RedisBridge fans broadcast frames out across processes. Each node tags
// published frames with its own id so it can ignore its own frames when they
// come back around.
type RedisBridge struct {
	log        *logger.Logger
	client     *redis.Client
	channel    string
	nodeID     string
	cancelFunc context.CancelFunc
	mu         sync.Mutex
}

type bridgeFrame struct {
	Node string `json:"node"`
	Data string `json:"data"`
}

func NewRedisBridge(log *logger.Logger, address, password, channel string) (*RedisBridge, error) {
	opt := &redis.Options{
		Addr:     address,
		Password: password,
		DB:       0,
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &RedisBridge{
		log:     log.With("component", "RedisBridge"),
		client:  rdb,
		channel: channel,
		nodeID:  uuid.New().String(),
	}, nil
}

func (rb *RedisBridge) StartSubscriber(hub *Hub) error {
	ctx, cancel := context.WithCancel(context.Background())
	rb.cancelFunc = cancel

	pubsub := rb.client.Subscribe(ctx, rb.channel)

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to redis channel: %w", err)
	}
	rb.log.Info("RedisBridge subscribed successfully", "channel", rb.channel)

	go func() {
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				rb.log.Debug("Redis bridge context done, stopping subscription goroutine")
				return
			case msg, ok := <-ch:
				if !ok {
					rb.log.Debug("PubSub channel closed, stopping subscription goroutine")
					return
				}
				var frame bridgeFrame
				if err := json.Unmarshal([]byte(msg.Payload), &frame); err != nil {
					rb.log.Warn("Failed to decode bridge frame", "error", err)
					continue
				}
				if frame.Node == rb.nodeID {
					// Our own frame; local delivery already happened.
					continue
				}
				hub.broadcastFromRemote([]byte(frame.Data))
			}
		}
	}()
	return nil
}

func (rb *RedisBridge) Publish(payload []byte) error {
	raw, err := json.Marshal(bridgeFrame{Node: rb.nodeID, Data: string(payload)})
	if err != nil {
		rb.log.Warn("failed to encode frame for redis", "error", err)
		return err
	}
	return rb.client.Publish(context.Background(), rb.channel, raw).Err()
}

func (rb *RedisBridge) Stop() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	if rb.cancelFunc != nil {
		rb.cancelFunc()
		rb.cancelFunc = nil
	}
}
