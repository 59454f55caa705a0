package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/logger"
)

// QuotaRule caps how many requests one key may make per UTC day.
type QuotaRule struct {
	Name  string
	Limit int
	KeyFn KeyFunc
}

// Quota counts requests in redis with INCR and a day-long expiry. When redis
// is unreachable the request is let through.
func Quota(rdb *redis.Client, rule QuotaRule, log logger.Logger) ginext.HandlerFunc {
	return quota(rdb, rule, log, func() time.Time { return time.Now().UTC() })
}

func quota(rdb *redis.Client, rule QuotaRule, log logger.Logger, now func() time.Time) ginext.HandlerFunc {
	return func(c *ginext.Context) {
		subject := rule.KeyFn(c)
		if subject == "" {
			c.Next()
			return
		}

		day := now()
		key := fmt.Sprintf("quota:%s:%s:%s", rule.Name, subject, day.Format("20060102"))
		ctx := c.Request.Context()

		n, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Warn("quota check skipped",
				logger.String("key", key),
				logger.String("error", err.Error()),
			)
			c.Next()
			return
		}
		if n == 1 {
			if err = rdb.Expire(ctx, key, 24*time.Hour).Err(); err != nil {
				log.Warn("quota expiry not set",
					logger.String("key", key),
					logger.String("error", err.Error()),
				)
			}
		}

		if int(n) > rule.Limit {
			reset := time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, time.UTC)
			c.Header("Retry-After", strconv.Itoa(int(reset.Sub(day).Seconds())+1))
			abort(c, http.StatusTooManyRequests, "quota_exceeded", "daily quota exceeded")
			return
		}

		c.Header("X-Quota-Used", fmt.Sprintf("%d/%d", n, rule.Limit))
		c.Next()
	}
}

// UserKey limits authenticated callers only.
func UserKey(c *ginext.Context) string {
	user, ok := CurrentUser(c)
	if !ok {
		return ""
	}
	return user.ID
}
