package redis

import (
	"sync"

	goredis "github.com/redis/go-redis/v9"

	"github.com/EzraHwang/BTSBackoffice/config"
)

var once sync.Once
var client *goredis.Client

func GetClient() *goredis.Client {
	once.Do(func() {
		c := config.Get()

		client = goredis.NewClient(&goredis.Options{
			Addr:     c.Redis.Address,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		})
	})

	return client
}
