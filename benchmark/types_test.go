package benchmark

import (
	"github.com/danpasecinic/thimble"
)

type Config struct {
	Host string
	Port int
}

type Logger struct {
	Level string
}

type Database struct {
	Config *Config
	Logger *Logger
}

type Cache struct {
	Logger *Logger
}

type Repository struct {
	DB    *Database
	Cache *Cache
}

type Service struct {
	Repo   *Repository
	Logger *Logger
}

var (
	ConfigClass   = thimble.NewClass(func() *Config { return &Config{Host: "localhost", Port: 8080} })
	LoggerClass   = thimble.NewClass(func() *Logger { return &Logger{Level: "info"} })
	DatabaseClass = thimble.NewClass(
		func(cfg *Config, log *Logger) *Database {
			return &Database{Config: cfg, Logger: log}
		},
	)
	CacheClass      = thimble.NewClass(func(log *Logger) *Cache { return &Cache{Logger: log} })
	RepositoryClass = thimble.NewClass(
		func(db *Database, cache *Cache) *Repository {
			return &Repository{DB: db, Cache: cache}
		},
	)
	ServiceClass = thimble.NewClass(
		func(repo *Repository, log *Logger) *Service {
			return &Service{Repo: repo, Logger: log}
		},
	)
)

// chainStore describes the Service chain with every class at lifetime.
func chainStore(lifetime thimble.Lifetime) *thimble.MetadataStore {
	store := thimble.NewMetadataStore()
	store.MustInjectable(ConfigClass, thimble.WithLifetime(lifetime))
	store.MustInjectable(LoggerClass, thimble.WithLifetime(lifetime))
	store.MustInjectable(DatabaseClass, thimble.WithLifetime(lifetime), thimble.WithParams(ConfigClass, LoggerClass))
	store.MustInjectable(CacheClass, thimble.WithLifetime(lifetime), thimble.WithParams(LoggerClass))
	store.MustInjectable(RepositoryClass, thimble.WithLifetime(lifetime), thimble.WithParams(DatabaseClass, CacheClass))
	store.MustInjectable(ServiceClass, thimble.WithLifetime(lifetime), thimble.WithParams(RepositoryClass, LoggerClass))
	return store
}
