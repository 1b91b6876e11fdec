// internal/pkg/ratelimit/ratelimit.go
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter throttles sensitive account operations through Redis
// counters with a sliding expiry.
type Limiter struct {
	client *redis.Client
}

func NewLimiter(client *redis.Client) *Limiter {
	return &Limiter{client: client}
}

// CheckLoginAttempt allows up to 5 attempts per 15 minutes per ip+email.
func (r *Limiter) CheckLoginAttempt(ctx context.Context, ip, email string) (bool, int64, error) {
	key := fmt.Sprintf("ratelimit:login:%s:%s", ip, email)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment login attempt: %w", err)
	}

	if count == 1 {
		r.client.Expire(ctx, key, 15*time.Minute)
	}

	maxAttempts := int64(5)
	remaining := maxAttempts - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= maxAttempts, remaining, nil
}

// ResetLoginAttempts clears the counter after a successful login.
func (r *Limiter) ResetLoginAttempts(ctx context.Context, ip, email string) error {
	key := fmt.Sprintf("ratelimit:login:%s:%s", ip, email)
	return r.client.Del(ctx, key).Err()
}

// CheckPasswordResetAttempt allows up to 3 reset mails per hour per email.
func (r *Limiter) CheckPasswordResetAttempt(ctx context.Context, email string) (bool, error) {
	key := fmt.Sprintf("ratelimit:password_reset:%s", email)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment password reset attempt: %w", err)
	}

	if count == 1 {
		r.client.Expire(ctx, key, 1*time.Hour)
	}

	return count <= 3, nil
}
