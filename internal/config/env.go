package config

type Database struct {
	Host     string `mapstructure:"DATABASE_HOST" default:"localhost"`
	Port     int    `mapstructure:"DATABASE_PORT" default:"5432"`
	Name     string `mapstructure:"DATABASE_NAME" default:"pspc"`
	User     string `mapstructure:"DATABASE_USER" default:"postgres"`
	Password string `mapstructure:"DATABASE_PASSWORD" default:"pspc"`
}

type Redis struct {
	Host     string `mapstructure:"REDIS_HOST" default:"127.0.0.1"`
	Port     int    `mapstructure:"REDIS_PORT" default:"6379"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB" default:"0"`
}

type Server struct {
	Platform string `mapstructure:"PLATFORM" default:"pspc"`
	Service  string `mapstructure:"SERVICE" default:"api"`
	Port     int    `mapstructure:"WEB_PORT" default:"8080"`
	Env      string `mapstructure:"ENV" default:"dev"`
}

type Auth struct {
	// Secret signs the HS256 access tokens carried in x-access-token.
	Secret         string `mapstructure:"AUTH_SECRET" default:"secret"`
	TokenExpiryHrs int    `mapstructure:"AUTH_TOKEN_EXPIRY_HOURS" default:"24"`
	// UserCacheTTLSec bounds how long an authenticated user stays in the
	// redis cache before the next request hits postgres again.
	UserCacheTTLSec int `mapstructure:"AUTH_USER_CACHE_TTL_SECONDS" default:"300"`
}

type Log struct {
	LogPath  string `mapstructure:"LOG_PATH" default:"./info.log"`
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
}
