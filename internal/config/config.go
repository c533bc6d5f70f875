package config

import (
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Env             string        `mapstructure:"env"`
	Port            int           `mapstructure:"port"`
	JWTSecret       string        `mapstructure:"jwt_secret"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RateLimitPerMin int           `mapstructure:"rate_limit_per_min"`
}

type MongoConfig struct {
	URI                     string `mapstructure:"uri"`
	Database                string `mapstructure:"database"`
	ConversationsCollection string `mapstructure:"conversations_collection"`
	MessagesCollection      string `mapstructure:"messages_collection"`
	NotificationsCollection string `mapstructure:"notifications_collection"`
	UsersCollection         string `mapstructure:"users_collection"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	Brokers          []string `mapstructure:"brokers"`
	TopicMessageSent string   `mapstructure:"topic_message_sent"`
	TopicSocial      string   `mapstructure:"topic_social_events"`
	ConsumerGroup    string   `mapstructure:"consumer_group"`
}

type Config struct {
	App   AppConfig   `mapstructure:"app"`
	Mongo MongoConfig `mapstructure:"mongodb"`
	Redis RedisConfig `mapstructure:"redis"`
	Kafka KafkaConfig `mapstructure:"kafka"`
}

// Load reads config/config.yaml (optional) with env-var override; every key
// has a default suitable for local development.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.AutomaticEnv()

	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 8084)
	v.SetDefault("app.read_timeout", 10*time.Second)
	v.SetDefault("app.write_timeout", 10*time.Second)
	v.SetDefault("app.shutdown_timeout", 10*time.Second)
	v.SetDefault("app.rate_limit_per_min", 300)
	v.SetDefault("mongodb.uri", "mongodb://localhost:27017")
	v.SetDefault("mongodb.database", "socialdb")
	v.SetDefault("mongodb.conversations_collection", "conversations")
	v.SetDefault("mongodb.messages_collection", "messages")
	v.SetDefault("mongodb.notifications_collection", "notifications")
	v.SetDefault("mongodb.users_collection", "users")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic_message_sent", "message.sent")
	v.SetDefault("kafka.topic_social_events", "social.events")
	v.SetDefault("kafka.consumer_group", "social-api")

	if err := v.ReadInConfig(); err != nil {
		// config file is optional; defaults plus env cover local runs
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
