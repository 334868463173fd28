package gateways

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	protocols "github.com/kaapihouse/kaapi/protocols"
)

const (
	idempotencyKeyPrefix = "idempotency:booking:"
	idempotencyTTL       = 24 * time.Hour
)

type idempotencyRedisState struct {
	Status  string             `json:"status"`
	Booking *protocols.Booking `json:"booking,omitempty"`
}

type IdempotencyGatewayRedis struct {
	client *redis.Client
}

func NewIdempotencyGatewayRedis(client *redis.Client) *IdempotencyGatewayRedis {
	return &IdempotencyGatewayRedis{client: client}
}

func (g *IdempotencyGatewayRedis) key(idempotencyKey string) string {
	return idempotencyKeyPrefix + idempotencyKey
}

func (g *IdempotencyGatewayRedis) ReserveIdempotencyKey(ctx context.Context, idempotencyKey string) (*protocols.IdempotencyKeyResult, error) {
	k := g.key(idempotencyKey)

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		data, err := g.client.Get(ctx, k).Bytes()
		if err == redis.Nil {
			state := idempotencyRedisState{Status: "processing"}
			raw, _ := json.Marshal(state)
			_, err := g.client.SetArgs(ctx, k, raw, redis.SetArgs{Mode: "NX", TTL: idempotencyTTL}).Result()
			if err == redis.Nil {
				// Lost the race to another writer; re-read its state.
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("redis set: %w", err)
			}
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("redis get: %w", err)
		}

		var state idempotencyRedisState
		if err := json.Unmarshal(data, &state); err != nil {
			return nil, fmt.Errorf("redis unmarshal: %w", err)
		}

		switch state.Status {
		case "success":
			return &protocols.IdempotencyKeyResult{Success: true, Booking: state.Booking}, nil
		case "processing":
			return nil, protocols.ErrIdempotencyKeyInFlight
		default:
			_ = g.client.Del(ctx, k).Err()
			newState := idempotencyRedisState{Status: "processing"}
			raw, _ := json.Marshal(newState)
			if err := g.client.Set(ctx, k, raw, idempotencyTTL).Err(); err != nil {
				return nil, fmt.Errorf("redis set: %w", err)
			}
			return nil, nil
		}
	}
}

func (g *IdempotencyGatewayRedis) MarkSuccess(ctx context.Context, idempotencyKey string, booking *protocols.Booking) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	state := idempotencyRedisState{Status: "success", Booking: booking}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return g.client.Set(ctx, g.key(idempotencyKey), raw, idempotencyTTL).Err()
}

func (g *IdempotencyGatewayRedis) MarkFailure(ctx context.Context, idempotencyKey string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return g.client.Del(ctx, g.key(idempotencyKey)).Err()
}
