// Package database owns the single shared MongoDB client for the process.
package database

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"portfolio/internal/apperr"
	"portfolio/internal/config"
)

// ErrNoURI is returned when no connection target is configured. Endpoints
// that need the database surface this as a fatal configuration error.
var ErrNoURI = errors.New("MONGODB_URI is not configured")

// readinessTimeout bounds the ping used to validate a cached client before
// it is handed out.
const readinessTimeout = 2 * time.Second

// client is the slice of *mongo.Client the manager depends on. Tests
// substitute a fake to drive the connect/invalidate state machine.
type client interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
	Database(name string, opts ...*options.DatabaseOptions) *mongo.Database
	Disconnect(ctx context.Context) error
}

// attempt is one memoized connection establishment shared by every caller
// that arrives while it is in flight.
type attempt struct {
	done   chan struct{}
	client client
	err    error
}

// Manager establishes, caches and recovers the process-wide MongoDB
// connection. All repositories acquire the connection through it; nothing
// else may open a second client.
//
// States: no cached client and no pending attempt (unconnected); pending
// attempt (connecting, all acquirers share it); cached client (connected).
// A heartbeat failure or a failed readiness ping drops the cache, so the
// next Acquire reconnects. There is no background retry loop while idle.
type Manager struct {
	cfg  config.DatabaseConfig
	log  zerolog.Logger
	dial func() (client, error)

	mu      sync.Mutex
	client  client
	pending *attempt
}

// NewManager creates a Manager. No connection is made until the first
// Acquire call.
func NewManager(cfg config.DatabaseConfig, log zerolog.Logger) *Manager {
	m := &Manager{
		cfg: cfg,
		log: log.With().Str("component", "database").Logger(),
	}
	m.dial = m.dialMongo
	return m
}

// Acquire returns a ready-to-query database handle, connecting on demand.
// Concurrent callers during connection establishment share a single
// in-flight attempt. Acquisition failure after bounded retries is returned
// as a ConnectionError and is fatal to the calling operation.
func (m *Manager) Acquire(ctx context.Context) (*mongo.Database, error) {
	c, err := m.acquireClient(ctx)
	if err != nil {
		return nil, err
	}
	return c.Database(m.cfg.Name), nil
}

func (m *Manager) acquireClient(ctx context.Context) (client, error) {
	if m.cfg.URI == "" {
		return nil, &apperr.ConnectionError{Err: ErrNoURI}
	}

	m.mu.Lock()
	if m.client != nil {
		c := m.client
		m.mu.Unlock()
		if m.ready(ctx, c) {
			return c, nil
		}
		// Stale handle: drop it and fall through to a fresh connect.
		m.dropClient(c)
		m.mu.Lock()
	}

	if m.pending == nil {
		att := &attempt{done: make(chan struct{})}
		m.pending = att
		go m.connect(att)
	}
	att := m.pending
	m.mu.Unlock()

	select {
	case <-att.done:
	case <-ctx.Done():
		return nil, &apperr.ConnectionError{Err: ctx.Err()}
	}
	if att.err != nil {
		return nil, &apperr.ConnectionError{Err: att.err}
	}
	return att.client, nil
}

// ready verifies that a cached client can still reach the server.
func (m *Manager) ready(ctx context.Context, c client) bool {
	pingCtx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()
	return c.Ping(pingCtx, nil) == nil
}

// connect runs the bounded retry loop for one attempt and publishes the
// result to every waiter.
func (m *Manager) connect(att *attempt) {
	var lastErr error
	for i := 1; i <= m.cfg.ConnectAttempts; i++ {
		c, err := m.dial()
		if err == nil {
			m.mu.Lock()
			m.client = c
			m.pending = nil
			m.mu.Unlock()
			m.log.Info().Str("database", m.cfg.Name).Int("attempt", i).Msg("connected to MongoDB")
			att.client = c
			close(att.done)
			return
		}
		lastErr = err
		m.log.Warn().Err(err).Int("attempt", i).Int("max_attempts", m.cfg.ConnectAttempts).
			Msg("MongoDB connection attempt failed")
		if i < m.cfg.ConnectAttempts {
			time.Sleep(m.cfg.ConnectRetryDelay)
		}
	}

	m.mu.Lock()
	m.pending = nil
	m.mu.Unlock()
	att.err = lastErr
	close(att.done)
}

// dialMongo opens and pings one real client.
func (m *Manager) dialMongo() (client, error) {
	opts := options.Client().
		ApplyURI(m.cfg.URI).
		SetMaxPoolSize(m.cfg.MaxPoolSize).
		SetServerSelectionTimeout(m.cfg.ServerSelectionTimeout).
		SetSocketTimeout(m.cfg.SocketTimeout).
		SetServerMonitor(&event.ServerMonitor{
			ServerHeartbeatFailed: func(e *event.ServerHeartbeatFailedEvent) {
				m.log.Warn().Err(e.Failure).Msg("MongoDB heartbeat failed, dropping cached connection")
				m.Invalidate()
			},
		})

	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.ServerSelectionTimeout)
	defer cancel()

	c, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := c.Ping(ctx, nil); err != nil {
		_ = c.Disconnect(context.Background())
		return nil, err
	}
	return c, nil
}

// Invalidate drops the cached client and any in-flight memo so the next
// Acquire performs a fresh connect.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	c := m.client
	m.client = nil
	m.pending = nil
	m.mu.Unlock()

	if c != nil {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), readinessTimeout)
		defer cancel()
		_ = c.Disconnect(disconnectCtx)
	}
}

// dropClient discards a specific stale client, leaving a newer cached client
// (if one raced in) untouched.
func (m *Manager) dropClient(stale client) {
	m.mu.Lock()
	if m.client == stale {
		m.client = nil
	}
	m.mu.Unlock()

	disconnectCtx, cancel := context.WithTimeout(context.Background(), readinessTimeout)
	defer cancel()
	_ = stale.Disconnect(disconnectCtx)
}

// Connected reports whether a client is currently cached.
func (m *Manager) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.client != nil
}

// Close disconnects the cached client. Used on shutdown.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	c := m.client
	m.client = nil
	m.pending = nil
	m.mu.Unlock()

	if c == nil {
		return nil
	}
	return c.Disconnect(ctx)
}
