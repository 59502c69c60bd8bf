package config

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Manager loads the configuration and, when watching is enabled, keeps it
// current as the underlying file changes. An invalid reload never replaces
// the running configuration.
type Manager struct {
	viper  *viper.Viper
	logger *slog.Logger

	mu          sync.RWMutex
	current     *Config
	subscribers []func(*Config)
}

// Load reads the configuration file at path and applies ROHLIK_ADMIN_*
// environment overrides. An empty path yields defaults plus environment.
func Load(path string, logger *slog.Logger) (*Manager, error) {
	v := viper.New()
	v.SetEnvPrefix("ROHLIK_ADMIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Manager{
		viper:   v,
		logger:  logger,
		current: cfg,
	}, nil
}

// setDefaults mirrors Default() into Viper. Env and file lookups only
// cover keys Viper knows about, so every key must be registered here for
// ROHLIK_ADMIN_* overrides to apply without a config file.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("shop.base_url", d.Shop.BaseURL)
	v.SetDefault("shop.timeout", d.Shop.Timeout)
	v.SetDefault("session.cookie_name", d.Session.CookieName)
	v.SetDefault("session.max_age", d.Session.MaxAge)
	v.SetDefault("session.secure", d.Session.Secure)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("telemetry.enable", d.Telemetry.Enable)
	v.SetDefault("telemetry.service_name", d.Telemetry.ServiceName)
	v.SetDefault("telemetry.otlp_endpoint", d.Telemetry.OTLPEndpoint)
}

func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Subscribe registers a callback invoked with each successfully reloaded
// configuration.
func (m *Manager) Subscribe(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

// Watch starts watching the configuration file for changes. Reloads that
// fail to parse or validate are logged and discarded.
func (m *Manager) Watch() {
	m.viper.OnConfigChange(func(e fsnotify.Event) {
		m.logger.Info("config file changed", "file", e.Name)

		cfg := Default()
		if err := m.viper.Unmarshal(cfg); err != nil {
			m.logger.Error("failed to unmarshal config", "error", err)
			return
		}
		if err := cfg.Validate(); err != nil {
			m.logger.Error("ignoring invalid config reload", "error", err)
			return
		}

		m.mu.Lock()
		m.current = cfg
		subscribers := make([]func(*Config), len(m.subscribers))
		copy(subscribers, m.subscribers)
		m.mu.Unlock()

		for _, fn := range subscribers {
			fn(cfg)
		}
	})
	m.viper.WatchConfig()
}
