package orm

import (
	"fmt"
	"log/slog"
	"sync"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"seedcli/internal/config"
)

// Provider resolves a named entity manager into a live database session.
type Provider interface {
	Resolve(name string) (*Session, error)
}

// GormProvider resolves entity managers from configuration, opening one GORM
// connection per manager and caching it for the lifetime of the process.
type GormProvider struct {
	cfg    *config.Config
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewProvider creates a provider backed by the given configuration.
func NewProvider(cfg *config.Config, logger *slog.Logger) *GormProvider {
	return &GormProvider{
		cfg:      cfg,
		logger:   logger,
		sessions: map[string]*Session{},
	}
}

// Resolve returns the session for the named entity manager, opening it on
// first use. An empty name resolves the "default" manager. Unknown names
// and connection failures surface as ConfigurationError.
func (p *GormProvider) Resolve(name string) (*Session, error) {
	if name == "" {
		name = config.DefaultManagerName
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if s, ok := p.sessions[name]; ok {
		return s, nil
	}

	em, ok := p.cfg.Manager(name)
	if !ok {
		return nil, &ConfigurationError{Manager: name, Reason: "not configured"}
	}

	open := func(dsn string) (*gorm.DB, error) {
		return openDB(em.Driver, dsn)
	}

	primary, err := open(em.DSN)
	if err != nil {
		return nil, &ConfigurationError{Manager: name, Reason: "failed to connect", Err: err}
	}

	p.logger.Info("entity manager resolved",
		"entity_manager", name,
		"driver", em.Driver,
		"shards", len(em.Shards))

	s := &Session{
		name: name,
		conn: &Connection{
			primary:   primary,
			shardDSNs: em.Shards,
			open:      open,
		},
	}
	p.sessions[name] = s
	return s, nil
}

// openDB opens a gorm handle for the given driver and DSN. GORM's own query
// logging is silenced; the application logger covers run milestones.
func openDB(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Discard,
	})
}
