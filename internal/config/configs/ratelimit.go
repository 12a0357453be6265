package configs

import "time"

// RateLimit configures per-tenant limiting of mutating pipeline endpoints.
// Store selects the backing implementation: "memory" keeps counters in
// process, "postgres" shares them across replicas through the database.
type RateLimit struct {
	Store  string        `env:"STORE" envDefault:"memory"`
	Limit  int           `env:"LIMIT" envDefault:"60"`
	Window time.Duration `env:"WINDOW" envDefault:"1m"`
}
