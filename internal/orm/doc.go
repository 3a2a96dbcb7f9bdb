// Package orm resolves named entity managers from configuration into live
// GORM sessions.
//
// A Session wraps one entity manager: a primary connection plus an optional
// pool of shard connections keyed by shard ID. Shard handles are opened
// lazily when BindShard is called; after binding, Session.DB routes all data
// access through the shard.
//
// The GormProvider caches one session per manager for the lifetime of the
// process. Resolution failures are reported as ConfigurationError so callers
// can distinguish operator mistakes from execution failures.
package orm
