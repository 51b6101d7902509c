package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration options of the addrlist command.
type Config struct {
	RPC      RPCConfig    `mapstructure:"rpc"`
	Contract string       `mapstructure:"contract"` // Neo address or LE hex script hash
	Wallet   WalletConfig `mapstructure:"wallet"`
	Debug    bool         `mapstructure:"debug"`
}

// RPCConfig holds Neo RPC connection options.
type RPCConfig struct {
	Endpoint       string        `mapstructure:"endpoint"`
	DialTimeout    time.Duration `mapstructure:"dial_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// WalletConfig selects an account signing state-changing transactions.
// Empty Address means the wallet's default account.
type WalletConfig struct {
	Path     string `mapstructure:"path"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
}

const envPrefix = "ADDRLIST"

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		RPC: RPCConfig{
			DialTimeout:    15 * time.Second,
			RequestTimeout: 15 * time.Second,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("rpc.endpoint", d.RPC.Endpoint)
	v.SetDefault("rpc.dial_timeout", d.RPC.DialTimeout)
	v.SetDefault("rpc.request_timeout", d.RPC.RequestTimeout)
	v.SetDefault("contract", d.Contract)
	v.SetDefault("wallet.path", d.Wallet.Path)
	v.SetDefault("wallet.address", d.Wallet.Address)
	v.SetDefault("wallet.password", d.Wallet.Password)
	v.SetDefault("debug", d.Debug)
}

// readConfig merges defaults, the config file (if any), ADDRLIST_* environment
// variables and bound flags into Config.
func readConfig(v *viper.Viper, file string) (Config, error) {
	var cfg Config

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("addrlist")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

// validate checks options required by any command.
func (c Config) validate() error {
	switch {
	case c.RPC.Endpoint == "":
		return errors.New("missing Neo RPC endpoint")
	case c.Contract == "":
		return errors.New("missing contract hash")
	case c.RPC.DialTimeout <= 0 || c.RPC.RequestTimeout <= 0:
		return errors.New("RPC timeouts must be positive")
	}

	return nil
}
