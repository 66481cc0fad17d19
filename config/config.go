package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server           Server
	Database         Database
	GeminiApiKey     string
	JwtSecret        string
	EvaluatorTimeout int // seconds, bounds every Gemini call
	SeedQuestionBank bool
}

type Server struct {
	Port string
}
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("EVALUATOR_TIMEOUT_SECONDS", 30)
	viper.SetDefault("SEED_QUESTION_BANK", true)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")
	config.JwtSecret = viper.GetString("JWT_SECRET")
	config.EvaluatorTimeout = viper.GetInt("EVALUATOR_TIMEOUT_SECONDS")
	config.SeedQuestionBank = viper.GetBool("SEED_QUESTION_BANK")

	log.Info().Str("port", config.Server.Port).Msg("Config loaded")
	return &config, nil
}
