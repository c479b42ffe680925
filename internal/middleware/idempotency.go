package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyHeader = "Idempotency-Key"
	idempotencyTTL    = 24 * time.Hour
)

// replayedResponse stores the response committed for a mutation id so a
// retried submit replays it instead of running the mutation twice.
type replayedResponse struct {
	StatusCode int             `json:"status_code"`
	Body       json.RawMessage `json:"body"`
	Headers    http.Header     `json:"headers"`
}

// bodyCapturingWriter wraps gin.ResponseWriter to capture the response.
type bodyCapturingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCapturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware deduplicates retried mutations by the caller's
// Idempotency-Key. A double-submit from a flaky network replays the first
// outcome, so a commit and its audit entries can never land twice under one
// key.
func IdempotencyMiddleware(redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only mutating methods are deduplicated.
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyHeader)
		if key == "" {
			// The caller opted out of dedup.
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := "mutation:id:" + key

		recorded, err := getReplayedResponse(ctx, redisClient, cacheKey)
		if err != nil && err != redis.Nil {
			// Redis being down must not block mutations; the
			// version check downstream still stops racing commits.
			c.Next()
			return
		}

		if recorded != nil {
			for k, v := range recorded.Headers {
				for _, val := range v {
					c.Header(k, val)
				}
			}
			c.Data(recorded.StatusCode, "application/json", recorded.Body)
			c.Abort()
			return
		}

		w := &bodyCapturingWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = w

		c.Next()

		// Record the outcome, including policy denials and validation
		// failures: a retry of a rejected mutation is rejected the
		// same way.
		if c.Writer.Status() >= 200 && c.Writer.Status() < 500 {
			response := replayedResponse{
				StatusCode: c.Writer.Status(),
				Body:       w.body.Bytes(),
				Headers:    replayableHeaders(c),
			}
			_ = setReplayedResponse(ctx, redisClient, cacheKey, &response, idempotencyTTL)
		}
	}
}

// getReplayedResponse retrieves a recorded response from Redis.
func getReplayedResponse(ctx context.Context, client *redis.Client, key string) (*replayedResponse, error) {
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var recorded replayedResponse
	if err := json.Unmarshal(data, &recorded); err != nil {
		return nil, err
	}

	return &recorded, nil
}

// setReplayedResponse stores a response in Redis.
func setReplayedResponse(ctx context.Context, client *redis.Client, key string, response *replayedResponse, ttl time.Duration) error {
	data, err := json.Marshal(response)
	if err != nil {
		return err
	}

	return client.Set(ctx, key, data, ttl).Err()
}

// replayableHeaders extracts the headers worth replaying.
func replayableHeaders(c *gin.Context) http.Header {
	headers := make(http.Header)
	if ct := c.Writer.Header().Get("Content-Type"); ct != "" {
		headers.Set("Content-Type", ct)
	}
	return headers
}
