package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"log"
	"sync"
	"time"
)

type Config struct {
	Env    string `yaml:"env" env-default:"local"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env-default:"0.0.0.0"`
		Port   string `yaml:"port" env-default:"7766"`
	} `yaml:"listen"`
	WebSocket struct {
		// ServerURL is the externally visible base URL clients use to open
		// the notification socket.
		ServerURL     string        `yaml:"server_url" env-default:"ws://localhost:7766"`
		HeartbeatTTL  time.Duration `yaml:"heartbeat_ttl" env-default:"5m"`
		SweepInterval time.Duration `yaml:"sweep_interval" env-default:"30s"`
	} `yaml:"websocket"`
	Token struct {
		Validity time.Duration `yaml:"validity" env-default:"24h"`
	} `yaml:"token"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
