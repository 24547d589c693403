package config

import (
	"fmt"
	"time"
)

// RedisConfig представляет конфигурацию для Redis (хранилище refresh-токенов).
type RedisConfig struct {
	Host           string        `yaml:"host" env:"MEMOPAD_REDIS_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"MEMOPAD_REDIS_PORT" env-default:"6379"`
	Password       string        `yaml:"password" env:"MEMOPAD_REDIS_PASSWORD" env-default:""`
	DB             int           `yaml:"db" env:"MEMOPAD_REDIS_DB" env-default:"0"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"MEMOPAD_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"MEMOPAD_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"MEMOPAD_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize       int           `yaml:"pool_size" env:"MEMOPAD_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle        int           `yaml:"min_idle" env:"MEMOPAD_REDIS_MIN_IDLE" env-default:"2"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
