package config

// DBConfig contains PostgreSQL database configuration.
//
// ConnectionURL takes precedence when set; its absence is not an error —
// the user directory degrades to "no users, least privilege" so admission
// control stays available without a database.
type DBConfig struct {
	ConnectionURL string `env:"CONNECTION_URL"          envDefault:""`
	Host          string `env:"HOST"                    envDefault:"localhost"`
	Port          int    `env:"PORT"                    envDefault:"5432"`
	User          string `env:"USER"                    envDefault:"hireline"`
	Password      string `env:"PASSWORD"                envDefault:"hireline"`
	Name          string `env:"NAME"                    envDefault:"hireline"`
	SSLMode       string `env:"SSL_MODE"                envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// Enabled marks whether a database connection should be attempted at all.
	// Set DB_ENABLED=false to run with role resolution degraded to job seeker.
	Enabled bool `env:"ENABLED" envDefault:"true"`
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration for the session store.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}
