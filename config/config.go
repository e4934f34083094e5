package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
)

// Config holds all configuration for the application.
type Config struct {
	Env            string
	Port           string
	LogLevel       string
	AllowedOrigins []string

	MongoURI string
	DBName   string

	JWTSecret    string
	JWTExpiresIn int // seconds

	// Connected during startup; handlers reach collections through this.
	MongoClient *mongo.Client `mapstructure:"-"`
}

// Load reads configuration from the environment (with an optional .env file
// and yaml config file) and applies defaults.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{
		Env:            viper.GetString("ENV"),
		Port:           viper.GetString("PORT"),
		LogLevel:       viper.GetString("LOG_LEVEL"),
		AllowedOrigins: viper.GetStringSlice("ALLOWED_ORIGINS"),
		MongoURI:       viper.GetString("MONGO_URI"),
		DBName:         viper.GetString("MONGO_DB"),
		JWTSecret:      viper.GetString("JWT_SECRET"),
		JWTExpiresIn:   viper.GetInt("JWT_EXPIRES_IN"),
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("ENV", "development")
	viper.SetDefault("PORT", "4000")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "lbd-events")
	viper.SetDefault("JWT_EXPIRES_IN", 24*60*60) // 24 hours
}
