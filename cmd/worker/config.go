package main

import (
	"github.com/hibiken/asynq"

	"infinite-ideas-hub/internal/config"
	"infinite-ideas-hub/internal/shared/utils"
)

const defaultHealthAddr = ":9999"

// redisOpt points asynq at the same redis the API enqueues into.
func redisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
}

func healthAddr() string {
	return utils.GetEnvVariable("WORKER_HEALTH_ADDR", defaultHealthAddr)
}
