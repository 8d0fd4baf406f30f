package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

const (
	DefaultAvatar        = "https://res.cloudinary.com/medbook/image/upload/v1651629584/media/default_gr1p4q.jpg"
	DefaultFacilityImage = "https://res.cloudinary.com/medbook/image/upload/v1651918030/media/default_facility_mg3jws.jpg"
	DefaultPage          = 1
	DefaultLimit         = 20
)

type (
	APP struct {
		Name            string
		Host            string
		Port            string
		Env             string
		JWTSecret       string
		AccessTokenTTL  time.Duration
		RefreshTokenTTL time.Duration
		ResetTokenTTL   time.Duration
		BcryptCost      int
		CORSOrigins     string
	}
	Mongo struct {
		URI  string
		Name string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}
	OAuthProvider struct {
		ClientID     string
		ClientSecret string
		RedirectURL  string
	}
	OAuth struct {
		Google   OAuthProvider
		Facebook OAuthProvider
	}
	Mail struct {
		From     string
		ResetURL string
	}

	Config struct {
		App   APP
		Mongo Mongo
		Redis Redis
		MQ    MQ
		OAuth OAuth
		Mail  Mail
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func Load() Config {
	app := APP{
		Name:            getEnv("SERVICE_NAME", "medbookapi"),
		Host:            getEnv("SERVICE_HOST", ""),
		Port:            getEnv("SERVICE_PORT", "8080"),
		Env:             getEnv("SERVICE_ENV", ""),
		JWTSecret:       getEnv("SERVICE_JWT_SECRET", ""),
		AccessTokenTTL:  getEnvDuration("SERVICE_ACCESS_TOKEN_TTL", time.Hour),
		RefreshTokenTTL: getEnvDuration("SERVICE_REFRESH_TOKEN_TTL", 7*24*time.Hour),
		ResetTokenTTL:   getEnvDuration("SERVICE_RESET_TOKEN_TTL", 10*time.Minute),
		BcryptCost:      getEnvInt("SERVICE_HASH_ROUND", 0),
		CORSOrigins:     getEnv("SERVICE_CORS_ORIGINS", "*"),
	}
	mongo := Mongo{
		URI:  getEnv("MONGO_URI", ""),
		Name: getEnv("MONGO_DATABASE", ""),
	}
	rds := Redis{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", "medbook.mail"),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", "mail.outbound"),
	}
	oauth := OAuth{
		Google: OAuthProvider{
			ClientID:     getEnv("OAUTH_GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("OAUTH_GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("OAUTH_GOOGLE_REDIRECT_URL", ""),
		},
		Facebook: OAuthProvider{
			ClientID:     getEnv("OAUTH_FACEBOOK_CLIENT_ID", ""),
			ClientSecret: getEnv("OAUTH_FACEBOOK_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("OAUTH_FACEBOOK_REDIRECT_URL", ""),
		},
	}
	mail := Mail{
		From:     getEnv("MAIL_FROM", "no-reply@medbook.local"),
		ResetURL: getEnv("MAIL_RESET_URL", ""),
	}

	return Config{
		App:   app,
		Mongo: mongo,
		Redis: rds,
		MQ:    mq,
		OAuth: oauth,
		Mail:  mail,
	}
}

func (c Config) MongoURI() (string, error) {
	if c.Mongo.URI == "" || c.Mongo.Name == "" {
		return "", fmt.Errorf("incomplete Mongo config")
	}
	return c.Mongo.URI, nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
