package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PandeyAnukrati/payment-app/internal/structures"
	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "PAYAPP_LOG_LEVEL")
	viper.BindEnv("mongo.uri", "PAYAPP_MONGO_URI")
	viper.BindEnv("mongo.database", "PAYAPP_MONGO_DATABASE")
	viper.BindEnv("auth.secret", "PAYAPP_JWT_SECRET")
	viper.BindEnv("cache.enabled", "PAYAPP_CACHE_ENABLED")
	viper.BindEnv("cache.size", "PAYAPP_CACHE_SIZE")
	viper.BindEnv("realtime.nats.enabled", "PAYAPP_NATS_ENABLED")
	viper.BindEnv("realtime.nats.url", "PAYAPP_NATS_URL")
	viper.BindEnv("seed.enabled", "PAYAPP_SEED_ENABLED")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "PaymentDashboard"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
