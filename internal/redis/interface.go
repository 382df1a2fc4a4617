package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the redis client the repositories depend on. It covers single node,
// cluster and sentinel deployments.
type Client interface {
	redis.UniversalClient
}
