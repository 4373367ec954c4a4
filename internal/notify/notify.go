// Package notify carries the one-way alert channel: plain-text messages
// published for privileged dashboard sessions. Delivery is best effort:
// failures are logged and dropped, there is no acknowledgement or replay.
package notify

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/asset-dashboard/internal/redissvc"
)

type Notifier struct {
	rdb     *redis.Client
	ctx     context.Context
	channel string
}

func NewNotifier(rs *redissvc.RedisService, channel string) *Notifier {
	return &Notifier{
		rdb:     rs.Rdb(),
		ctx:     rs.Ctx(),
		channel: channel,
	}
}

// Publish sends an alert without blocking the caller.
func (n *Notifier) Publish(message string) {
	go func() {
		if err := n.rdb.Publish(n.ctx, n.channel, message).Err(); err != nil {
			log.Printf("Failed to publish alert: %v", err)
		}
	}()
}

// Subscribe returns a channel of alert messages. The channel is closed
// when ctx is cancelled. A dropped connection ends the subscription; the
// caller decides whether to resubscribe.
func (n *Notifier) Subscribe(ctx context.Context) <-chan string {
	sub := n.rdb.Subscribe(ctx, n.channel)
	out := make(chan string)

	go func() {
		defer close(out)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- msg.Payload:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
