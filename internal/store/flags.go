// File: internal/store/flags.go
package store

import (
	"flag"
	"time"

	"github.com/Pedro-J-Kukul/salesrecords/internal/env"
	"github.com/Pedro-J-Kukul/salesrecords/internal/validator"
)

// BindFlags registers the store flags on fs. Defaults are read from the
// environment, so env.Load must run first.
func BindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Backend, "store", env.String("STORE_BACKEND", BackendMongo), "Record store (mongo|postgres|memory)")
	fs.BoolVar(&cfg.Bootstrap, "store-bootstrap", env.Bool("STORE_BOOTSTRAP", false), "Create missing indexes or tables on startup")

	fs.StringVar(&cfg.Mongo.URI, "mongo-uri", env.String("MONGODB_URI", "mongodb://localhost:27017"), "MongoDB connection string")
	fs.StringVar(&cfg.Mongo.Database, "mongo-db", env.String("MONGODB_DATABASE", "retail"), "MongoDB database")
	fs.StringVar(&cfg.Mongo.Collection, "mongo-collection", env.String("MONGODB_COLLECTION", "sales"), "MongoDB collection")
	fs.Uint64Var(&cfg.Mongo.MaxPoolSize, "mongo-max-pool-size", uint64(env.Int("MONGODB_MAX_POOL_SIZE", 50)), "MongoDB connection pool size")
	fs.DurationVar(&cfg.Mongo.ConnectTimeout, "mongo-connect-timeout", env.Duration("MONGODB_CONNECT_TIMEOUT", 10*time.Second), "MongoDB connect timeout")

	fs.StringVar(&cfg.Postgres.DSN, "db-dsn", env.String("DB_DSN", ""), "PostgreSQL connection string")
	fs.IntVar(&cfg.Postgres.MaxOpenConns, "db-max-open-conns", env.Int("DB_MAX_OPEN_CONNS", 25), "PostgreSQL max open connections")
	fs.IntVar(&cfg.Postgres.MaxIdleConns, "db-max-idle-conns", env.Int("DB_MAX_IDLE_CONNS", 25), "PostgreSQL max idle connections")
	fs.DurationVar(&cfg.Postgres.MaxIdleTime, "db-max-idle-time", env.Duration("DB_MAX_IDLE_TIME", 15*time.Minute), "PostgreSQL max connection idle time")
}

// ValidateConfig records every problem with cfg in v.
func ValidateConfig(v *validator.Validator, cfg Config) {
	v.Check(validator.Permitted(cfg.Backend, Backends...), "store", "must be one of mongo, postgres or memory")

	switch cfg.Backend {
	case BackendMongo:
		v.Check(cfg.Mongo.URI != "", "mongo-uri", "must be provided")
		v.Check(cfg.Mongo.Database != "", "mongo-db", "must be provided")
		v.Check(cfg.Mongo.Collection != "", "mongo-collection", "must be provided")
	case BackendPostgres:
		v.Check(cfg.Postgres.DSN != "", "db-dsn", "must be provided")
		v.Check(cfg.Postgres.MaxOpenConns > 0, "db-max-open-conns", "must be greater than zero")
		v.Check(cfg.Postgres.MaxIdleConns >= 0, "db-max-idle-conns", "must not be negative")
	}
}
