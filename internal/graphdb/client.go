package graphdb

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/GradUWate/GradUWate-backend/internal/logger"
	"github.com/GradUWate/GradUWate-backend/internal/utils"
)

// ErrNotReady distinguishes "graph backend unavailable" from an empty
// query result. Callers surface it as service-unavailable.
var ErrNotReady = errors.New("graphdb: backend not ready")

// State is the connection lifecycle of the client. It replaces a nullable
// process-wide driver with an explicit readiness signal.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateReady
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	default:
		return "disconnected"
	}
}

// Client owns the Bolt driver for the course graph store. Construct with
// NewFromEnv, then Connect before use; Traversal and mutation code checks
// Ready() and fails with ErrNotReady instead of returning empty results.
type Client struct {
	driver   neo4j.DriverWithContext
	Database string

	uri      string
	user     string
	password string
	state    atomic.Int32
	log      *logger.Logger
}

// NewFromEnv builds an unconnected client from NEO4J_* environment
// variables. Returns (nil, nil) when NEO4J_URI is unset so callers can fall
// back to the in-memory graph.
func NewFromEnv(log *logger.Logger) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("graphdb: logger required")
	}
	uri := utils.GetEnv("NEO4J_URI", "", log)
	if uri == "" {
		return nil, nil
	}
	return &Client{
		uri:      uri,
		user:     utils.GetEnv("NEO4J_USER", "neo4j", log),
		password: utils.GetEnv("NEO4J_PASSWORD", "", log),
		Database: utils.GetEnv("NEO4J_DATABASE", "", log),
		log:      log.With("client", "GraphDB"),
	}, nil
}

func (c *Client) State() State {
	if c == nil {
		return StateDisconnected
	}
	return State(c.state.Load())
}

func (c *Client) Ready() bool { return c.State() == StateReady }

// Driver returns the underlying driver, or nil until Connect succeeds.
func (c *Client) Driver() neo4j.DriverWithContext {
	if c == nil || !c.Ready() {
		return nil
	}
	return c.driver
}

// Connect dials Bolt and bootstraps the graph schema, retrying until the
// server answers or maxWait elapses. Safe to call again after failure.
func (c *Client) Connect(ctx context.Context, maxWait time.Duration) error {
	if c == nil {
		return ErrNotReady
	}
	if c.Ready() {
		return nil
	}
	c.state.Store(int32(StateConnecting))

	deadline := time.Now().Add(maxWait)
	var lastErr error
	for {
		if err := c.tryConnect(ctx); err == nil {
			c.state.Store(int32(StateReady))
			c.log.Info("Graph backend ready", "uri", c.uri)
			return nil
		} else {
			lastErr = err
			c.log.Warn("Graph backend not reachable yet, retrying", "error", err)
		}
		if time.Now().After(deadline) {
			break
		}
		select {
		case <-ctx.Done():
			c.state.Store(int32(StateDisconnected))
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	c.state.Store(int32(StateDisconnected))
	return fmt.Errorf("graphdb: connect: %w", lastErr)
}

func (c *Client) tryConnect(ctx context.Context) error {
	if c.driver == nil {
		driver, err := neo4j.NewDriverWithContext(c.uri, neo4j.BasicAuth(c.user, c.password, ""), func(cfg *neo4j.Config) {
			cfg.SocketConnectTimeout = 10 * time.Second
		})
		if err != nil {
			return fmt.Errorf("init driver: %w", err)
		}
		c.driver = driver
	}

	verifyCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := c.driver.VerifyConnectivity(verifyCtx); err != nil {
		return fmt.Errorf("verify connectivity: %w", err)
	}
	return c.bootstrapSchema(ctx)
}

// bootstrapSchema installs the uniqueness constraint and code index the
// course graph relies on. Best-effort for restricted users.
func (c *Client) bootstrapSchema(ctx context.Context) error {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: c.Database,
	})
	defer session.Close(ctx)

	stmts := []string{
		`CREATE CONSTRAINT course_id_unique IF NOT EXISTS FOR (c:Course) REQUIRE c.id IS UNIQUE`,
		`CREATE INDEX course_code_idx IF NOT EXISTS FOR (c:Course) ON (c.code)`,
	}
	for _, stmt := range stmts {
		res, err := session.Run(ctx, stmt, nil)
		if err != nil {
			c.log.Warn("Graph schema init failed (continuing)", "error", err)
			continue
		}
		_, _ = res.Consume(ctx)
	}
	return nil
}

func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.driver == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	c.state.Store(int32(StateDisconnected))
	err := c.driver.Close(ctx)
	c.driver = nil
	return err
}
