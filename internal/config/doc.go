// Package config provides centralized configuration for the seedcli tool.
//
// Configuration is loaded from a YAML file (seedcli.yaml next to the
// executable, overridable via the SEEDCLI_CONFIG environment variable) and
// then overridden by SEEDCLI_* environment variables.
//
// The configuration covers three concerns:
//
// Logging: level, format and output destination for the structured logger.
//
// Fixtures: the default search paths used when the operator does not pass
// --fixtures on the command line.
//
// Entity managers: named database connections, each with a driver, a DSN and
// an optional map of shard DSNs. The manager named "default" is used when
// --em is not given.
package config
