// Package redis connects to a Redis server with go-redis.
//
// Connect retries until the server answers a PING; Healthcheck wraps the
// client into a probe for readiness endpoints. Config is read from the
// REDIS_* environment variables:
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
package redis
