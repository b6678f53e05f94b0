package bootstrap

import (
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort       string `mapstructure:"SERVER_PORT"`
	RedisUrl         string `mapstructure:"REDIS_URL"`
	MongoUri         string `mapstructure:"MONGO_URI"`
	MongoDatabase    string `mapstructure:"MONGO_DATABASE"`
	AnalysisUrl      string `mapstructure:"ANALYSIS_URL"`
	IsLocalCors      bool   `mapstructure:"LOCAL_CORS"`
	PageLimitReports int    `mapstructure:"PAGE_LIMIT_REPORTS"`
	SeriesBestOf     int    `mapstructure:"SERIES_BEST_OF"`
	FreeDailyQuota   int    `mapstructure:"FREE_DAILY_QUOTA"`
	ProDailyQuota    int    `mapstructure:"PRO_DAILY_QUOTA"`
}

func Setup(cfgPath string) (*Config, error) {
	viper.SetConfigFile(cfgPath)

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	if cfg.SeriesBestOf == 0 {
		cfg.SeriesBestOf = 3
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = "caro"
	}

	return &cfg, nil
}
