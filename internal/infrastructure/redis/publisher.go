// Package redis publica eventos de catálogo por pub/sub para consumidores
// externos (etiquetadoras, sincronización con el ERP).
package redis

import (
	"context"

	redis "github.com/redis/go-redis/v9"

	"github.com/hanbit-parts/warehouse-api/internal/application/catalog"
	"github.com/hanbit-parts/warehouse-api/pkg/config"
)

var _ catalog.EventPublisher = (*Publisher)(nil)

// Publisher publica payloads JSON en un canal Redis.
type Publisher struct {
	client  *redis.Client
	channel string
}

// NewPublisher construye el publicador con la configuración dada.
func NewPublisher(cfg config.RedisConfig) *Publisher {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Publisher{client: client, channel: cfg.Channel}
}

// Ping verifica la conexión.
func (p *Publisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Publish publica el payload en el canal configurado.
func (p *Publisher) Publish(ctx context.Context, payload []byte) error {
	return p.client.Publish(ctx, p.channel, payload).Err()
}

// Close cierra la conexión.
func (p *Publisher) Close() error {
	return p.client.Close()
}
