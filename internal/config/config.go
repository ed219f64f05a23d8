package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config keeps runtime settings for the task manager.
type Config struct {
	DatabasePath    string        `yaml:"database_path" env:"TASK_MANAGER_DB" env-default:"task_manager.db"`
	ProcessInterval time.Duration `yaml:"process_interval" env:"PROCESS_INTERVAL" env-default:"1m"`
	AgendaTime      string        `yaml:"agenda_time" env:"AGENDA_TIME" env-default:"09:00"`
}

// MustLoad reads the yaml config at configPath with env overrides. An empty
// or missing path falls back to env only.
func MustLoad(configPath string) Config {
	var cfg Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read env: %s", err)
		}
		return cfg
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			if err := cleanenv.ReadEnv(&cfg); err != nil {
				log.Fatalf("cannot read env: %s", err)
			}
			return cfg
		}
		log.Fatalf("cannot read config %q: %s", configPath, err)
	}

	return cfg
}
