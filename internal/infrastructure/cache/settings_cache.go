// Package cache provides caching infrastructure with PostgreSQL
// LISTEN/NOTIFY invalidation.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"zenbill/pkg/logger"
)

// SettingsCache caches the sys_settings key/value table in memory and
// invalidates via PostgreSQL NOTIFY instead of TTL polling. Settings
// hold operational knobs that change without a deploy: the e-way bill
// threshold, default numbering prefixes, organization defaults.
type SettingsCache struct {
	pool   *pgxpool.Pool
	mu     sync.RWMutex
	values map[string]json.RawMessage

	listeners   []InvalidationListener
	listenersMu sync.RWMutex

	lifecycleMu sync.Mutex
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	started     bool
}

// InvalidationListener is called when a setting is reloaded.
type InvalidationListener func(key string)

// NewSettingsCache creates a new settings cache.
func NewSettingsCache(pool *pgxpool.Pool) *SettingsCache {
	return &SettingsCache{
		pool:   pool,
		values: make(map[string]json.RawMessage),
	}
}

// Start loads all settings and begins listening for NOTIFY events.
func (c *SettingsCache) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	c.lifecycleMu.Lock()
	if c.started {
		c.lifecycleMu.Unlock()
		return nil
	}
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.started = true
	c.lifecycleMu.Unlock()

	if err := c.loadAll(c.ctx); err != nil {
		c.Stop()
		return fmt.Errorf("load settings: %w", err)
	}

	c.wg.Add(1)
	go c.listenLoop()
	logger.Info(c.ctx, "settings cache started")
	return nil
}

// Stop gracefully stops the cache listener.
func (c *SettingsCache) Stop() {
	c.lifecycleMu.Lock()
	if !c.started {
		c.lifecycleMu.Unlock()
		return
	}
	cancel := c.cancel
	c.started = false
	c.cancel = nil
	c.lifecycleMu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.wg.Wait()
	logger.Info(context.Background(), "settings cache stopped")
}

// listenLoop holds a dedicated connection on LISTEN settings_changed,
// reconnecting after failures.
func (c *SettingsCache) listenLoop() {
	defer c.wg.Done()

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		conn, err := c.pool.Acquire(c.ctx)
		if err != nil {
			if c.ctx.Err() != nil {
				return
			}
			logger.Error(c.ctx, "failed to acquire connection for LISTEN", "error", err)
			time.Sleep(time.Second)
			continue
		}

		_, err = conn.Exec(c.ctx, "LISTEN settings_changed;")
		if err != nil {
			logger.Error(c.ctx, "failed to LISTEN", "error", err)
			conn.Release()
			time.Sleep(time.Second)
			continue
		}

		c.waitForNotifications(conn)
		conn.Release()
	}
}

func (c *SettingsCache) waitForNotifications(conn *pgxpool.Conn) {
	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		// Timeout lets shutdown interrupt the blocking wait
		ctx, cancel := context.WithTimeout(c.ctx, 30*time.Second)
		notification, err := conn.Conn().WaitForNotification(ctx)
		cancel()

		if err != nil {
			if c.ctx.Err() != nil {
				return
			}
			continue
		}

		// Payload is the changed key, empty for full reload
		c.handleInvalidation(notification.Payload)
	}
}

func (c *SettingsCache) handleInvalidation(key string) {
	if key == "" {
		if err := c.loadAll(c.ctx); err != nil {
			logger.Error(c.ctx, "failed to reload settings", "error", err)
		}
	} else if err := c.loadOne(c.ctx, key); err != nil {
		logger.Error(c.ctx, "failed to reload setting", "key", key, "error", err)
	}

	c.listenersMu.RLock()
	for _, listener := range c.listeners {
		func(l InvalidationListener) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error(c.ctx, "listener panic recovered", "key", key, "panic", r)
				}
			}()
			l(key)
		}(listener)
	}
	c.listenersMu.RUnlock()
}

func (c *SettingsCache) loadAll(ctx context.Context) error {
	rows, err := c.pool.Query(ctx, `SELECT key, value FROM sys_settings`)
	if err != nil {
		return fmt.Errorf("query settings: %w", err)
	}
	defer rows.Close()

	values := make(map[string]json.RawMessage)
	for rows.Next() {
		var key string
		var value json.RawMessage
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("scan setting: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	c.values = values
	c.mu.Unlock()

	logger.Info(ctx, "loaded settings", "count", len(values))
	return nil
}

func (c *SettingsCache) loadOne(ctx context.Context, key string) error {
	var value json.RawMessage
	err := c.pool.QueryRow(ctx,
		`SELECT value FROM sys_settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		// Deleted setting: drop from cache
		c.mu.Lock()
		delete(c.values, key)
		c.mu.Unlock()
		return nil
	}

	c.mu.Lock()
	c.values[key] = value
	c.mu.Unlock()

	logger.Debug(ctx, "reloaded setting", "key", key)
	return nil
}

// Set upserts a setting and notifies every instance, including this one.
func (c *SettingsCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal setting %s: %w", key, err)
	}

	_, err = c.pool.Exec(ctx, `
		INSERT INTO sys_settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, key, raw)
	if err != nil {
		return fmt.Errorf("save setting %s: %w", key, err)
	}

	_, err = c.pool.Exec(ctx, `SELECT pg_notify('settings_changed', $1)`, key)
	if err != nil {
		logger.Warn(ctx, "failed to notify settings change", "key", key, "error", err)
	}

	return nil
}

// Get unmarshals a setting into out. Returns false when the key is not
// cached.
func (c *SettingsCache) Get(key string, out any) bool {
	c.mu.RLock()
	raw, ok := c.values[key]
	c.mu.RUnlock()
	if !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

// GetString returns a string setting or the fallback.
func (c *SettingsCache) GetString(key, fallback string) string {
	var v string
	if c.Get(key, &v) {
		return v
	}
	return fallback
}

// GetFloat returns a numeric setting or the fallback.
func (c *SettingsCache) GetFloat(key string, fallback float64) float64 {
	var v float64
	if c.Get(key, &v) {
		return v
	}
	return fallback
}

// GetBool returns a boolean setting or the fallback.
func (c *SettingsCache) GetBool(key string, fallback bool) bool {
	var v bool
	if c.Get(key, &v) {
		return v
	}
	return fallback
}

// OnInvalidation registers a callback for setting reloads.
func (c *SettingsCache) OnInvalidation(listener InvalidationListener) {
	c.listenersMu.Lock()
	c.listeners = append(c.listeners, listener)
	c.listenersMu.Unlock()
}

// Keys returns the cached setting keys.
func (c *SettingsCache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	return keys
}
