package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// ConnectはREDIS_URLからクライアントを作りPingで疎通確認する。
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}
