package orm

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// Session is one resolved entity manager: a primary database handle plus
// the shard connections configured for it.
type Session struct {
	name string
	conn *Connection
}

// Name returns the entity manager name this session was resolved from.
func (s *Session) Name() string {
	return s.name
}

// Connection returns the session's connection.
func (s *Session) Connection() *Connection {
	return s.conn
}

// DB returns the active database handle: the bound shard if BindShard was
// called, otherwise the primary connection.
func (s *Session) DB() *gorm.DB {
	return s.conn.DB()
}

// Dialect reports the SQL dialect name of the underlying driver
// (e.g. "sqlite", "postgres", "mysql").
func (s *Session) Dialect() string {
	return s.conn.DB().Dialector.Name()
}

// Connection wraps the primary gorm handle and the shard pool of one entity
// manager. Shard handles are opened lazily on first bind.
type Connection struct {
	primary   *gorm.DB
	shardDSNs map[string]string
	open      func(dsn string) (*gorm.DB, error)

	mu     sync.Mutex
	shards map[string]*gorm.DB
	bound  *gorm.DB
}

// SupportsSharding reports whether this connection was configured with a
// shard pool.
func (c *Connection) SupportsSharding() bool {
	return len(c.shardDSNs) > 0
}

// BindShard routes all subsequent data access through the named shard.
// It fails if the shard is not configured or cannot be opened.
func (c *Connection) BindShard(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if db, ok := c.shards[id]; ok {
		c.bound = db
		return nil
	}

	dsn, ok := c.shardDSNs[id]
	if !ok {
		return fmt.Errorf("shard %q is not configured", id)
	}

	db, err := c.open(dsn)
	if err != nil {
		return fmt.Errorf("failed to open shard %q: %w", id, err)
	}

	if c.shards == nil {
		c.shards = map[string]*gorm.DB{}
	}
	c.shards[id] = db
	c.bound = db
	return nil
}

// DB returns the bound shard handle, or the primary handle when no shard
// is bound.
func (c *Connection) DB() *gorm.DB {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bound != nil {
		return c.bound
	}
	return c.primary
}
