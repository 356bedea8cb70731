package mq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange carries sale lifecycle events, routed by
// sale.<transition>.store<N> keys.
const Exchange = "sales_topic"

type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func Dial(host string, port int, user, pass string) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%d/", user, pass, host, port)
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return &Client{conn: conn, ch: ch}, nil
}

func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// Declare sets up the durable topic exchange. Idempotent.
func (c *Client) Declare() error {
	return c.ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil)
}

// Publish sends a persistent JSON message to the sales exchange.
func (c *Client) Publish(ctx context.Context, routingKey string, body []byte) error {
	return c.ch.PublishWithContext(ctx, Exchange, routingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}
