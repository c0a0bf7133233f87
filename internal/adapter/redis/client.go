// Package redis implements the repositories on a Redis key-value layout.
//
// Every record is a hash under "<entity>:<id>". Secondary unique keys are
// scalar lookup keys claimed in the same script that writes the record, and
// membership sets index records by parent and status.
package redis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Redbeardred/Oberyn-v0.2/internal/config"
	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

// NewClient creates a Redis client from RedisConfig and pings it.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	opts := &goredis.Options{
		Addr:        cfg.Addr,
		Username:    cfg.Username,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Pinger adapts a client to the health check contract.
type Pinger struct {
	Client *goredis.Client
}

// Ping checks that the server answers.
func (p Pinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx).Err()
}

// TxManager satisfies the services' transaction contract. Redis writes of a
// single repository call are applied atomically with MULTI/EXEC; calls that
// span repositories are not.
type TxManager struct{}

// RunInTx runs fn with the given context.
func (TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// mapError converts go-redis errors to domain errors.
func mapError(err error, entity string, key any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, goredis.Nil) {
		return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
	}
	return fmt.Errorf("%s %v: %w", entity, key, err)
}

// loadHashes fetches several hashes in one round trip. Missing records are
// returned as nil maps.
func loadHashes(ctx context.Context, client *goredis.Client, keys []string) ([]map[string]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	cmds := make([]*goredis.MapStringStringCmd, len(keys))
	_, err := client.Pipelined(ctx, func(p goredis.Pipeliner) error {
		for i, k := range keys {
			cmds[i] = p.HGetAll(ctx, k)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]map[string]string, len(keys))
	for i, cmd := range cmds {
		m := cmd.Val()
		if len(m) > 0 {
			out[i] = m
		}
	}
	return out, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}
