// Package redis stores cart rows in Redis, one hash per user keyed by row id.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"time"

	"github.com/nikolayk812/cc-monolith/internal/domain"
	"github.com/nikolayk812/cc-monolith/internal/port"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	rowSeqKey     = "cart:row:seq"
	maxTxAttempts = 5
)

type storedRow struct {
	Contents  json.RawMessage `json:"contents"`
	Cost      decimal.Decimal `json:"cost"`
	CreatedAt time.Time       `json:"created_at"`
}

type cartRepository struct {
	rdb *goredis.Client
}

func NewCart(rdb *goredis.Client) port.CartStore {
	return &cartRepository{rdb: rdb}
}

// Dial builds a client for addr and checks it answers PING.
func Dial(ctx context.Context, addr string) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, storeError("redis ping", err)
	}

	return rdb, nil
}

func cartKey(username string) string {
	return "cart:" + username
}

func (r *cartRepository) GetCart(ctx context.Context, username string) ([]domain.CartRow, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is empty", domain.ErrInvalidInput)
	}

	fields, err := r.rdb.HGetAll(ctx, cartKey(username)).Result()
	if err != nil {
		return nil, storeError("rdb.HGetAll", err)
	}

	return mapHashToDomain(username, fields), nil
}

// AddToCart stores a row with zero cost: this store has no access to product prices.
func (r *cartRepository) AddToCart(ctx context.Context, username string, productID int64) error {
	if username == "" {
		return fmt.Errorf("%w: username is empty", domain.ErrInvalidInput)
	}

	rowID, err := r.rdb.Incr(ctx, rowSeqKey).Result()
	if err != nil {
		return storeError("rdb.Incr", err)
	}

	raw, err := encodeRow([]int64{productID}, decimal.Zero, time.Now().UTC())
	if err != nil {
		return err
	}

	if err := r.rdb.HSet(ctx, cartKey(username), strconv.FormatInt(rowID, 10), raw).Err(); err != nil {
		return storeError("rdb.HSet", err)
	}

	return nil
}

// RemoveFromCart rewrites the user's rows under WATCH so a concurrent add is not lost.
func (r *cartRepository) RemoveFromCart(ctx context.Context, username string, productID int64) error {
	if username == "" {
		return fmt.Errorf("%w: username is empty", domain.ErrInvalidInput)
	}

	key := cartKey(username)

	txf := func(tx *goredis.Tx) error {
		fields, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("tx.HGetAll: %w", err)
		}

		var (
			drop   []string
			update = make(map[string]interface{})
		)

		for field, raw := range fields {
			var row storedRow
			if err := json.Unmarshal([]byte(raw), &row); err != nil {
				continue
			}

			var ids []int64
			if err := json.Unmarshal(row.Contents, &ids); err != nil || !slices.Contains(ids, productID) {
				continue
			}

			ids = slices.DeleteFunc(ids, func(id int64) bool { return id == productID })
			if len(ids) == 0 {
				drop = append(drop, field)
				continue
			}

			encoded, err := encodeRow(ids, row.Cost, row.CreatedAt)
			if err != nil {
				return err
			}
			update[field] = encoded
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			if len(drop) > 0 {
				pipe.HDel(ctx, key, drop...)
			}
			if len(update) > 0 {
				pipe.HSet(ctx, key, update)
			}
			return nil
		})
		return err
	}

	for range maxTxAttempts {
		err := r.rdb.Watch(ctx, txf, key)
		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}
		if err != nil {
			return storeError("rdb.Watch", err)
		}
		return nil
	}

	return storeError("rdb.Watch", goredis.TxFailedErr)
}

func (r *cartRepository) DeleteCart(ctx context.Context, username string) error {
	if username == "" {
		return fmt.Errorf("%w: username is empty", domain.ErrInvalidInput)
	}

	if err := r.rdb.Del(ctx, cartKey(username)).Err(); err != nil {
		return storeError("rdb.Del", err)
	}

	return nil
}

func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

func encodeRow(ids []int64, cost decimal.Decimal, createdAt time.Time) (string, error) {
	contents, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("json.Marshal contents: %w", err)
	}

	raw, err := json.Marshal(storedRow{Contents: contents, Cost: cost, CreatedAt: createdAt})
	if err != nil {
		return "", fmt.Errorf("json.Marshal row: %w", err)
	}

	return string(raw), nil
}

// mapHashToDomain keeps undecodable entries as rows with their raw value as contents,
// leaving the decision to skip them to the reader.
func mapHashToDomain(username string, fields map[string]string) []domain.CartRow {
	rows := make([]domain.CartRow, 0, len(fields))

	for field, raw := range fields {
		id, _ := strconv.ParseInt(field, 10, 64)

		var stored storedRow
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			rows = append(rows, domain.CartRow{ID: id, Username: username, Contents: json.RawMessage(raw)})
			continue
		}

		rows = append(rows, domain.CartRow{
			ID:        id,
			Username:  username,
			Contents:  stored.Contents,
			Cost:      stored.Cost,
			CreatedAt: stored.CreatedAt,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

	return rows
}
