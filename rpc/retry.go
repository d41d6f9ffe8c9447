package rpc

import (
	"context"
	"math"
	"time"

	"github.com/DefiantLabs/course-platform/config"
	"github.com/pkg/errors"
)

// sleepContext waits for d or until ctx is done. Replaced in tests.
var sleepContext = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// withRetry calls query until it succeeds, backing off between attempts.
// retryMaxAttempts of 0 disables retries and a negative value retries forever.
func withRetry[T any](ctx context.Context, name string, retryMaxAttempts int64, retryMaxWaitSeconds uint64, query func(context.Context) (T, error)) (T, error) {
	if retryMaxAttempts == 0 {
		resp, err := query(ctx)
		return resp, errors.Wrap(err, name)
	}

	if retryMaxWaitSeconds < 2 {
		retryMaxWaitSeconds = 2
	}

	var attempts int64
	maxRetryTime := time.Duration(retryMaxWaitSeconds) * time.Second
	if maxRetryTime < 0 {
		config.Log.Warn("Detected maxRetryTime overflow, setting time to sane maximum of 30s")
		maxRetryTime = 30 * time.Second
	}

	currentBackoffDuration, maxReached := GetBackoffDurationForAttempts(attempts, maxRetryTime)

	for {
		resp, err := query(ctx)
		attempts++
		if err == nil {
			return resp, nil
		}
		if retryMaxAttempts > 0 && attempts > retryMaxAttempts {
			config.Log.Errorf("Error getting %s RPC response, reached max retry attempts", name)
			return resp, errors.Wrapf(err, "%s after %d attempts", name, attempts)
		}

		config.Log.Error("Error getting "+name+" RPC response, backing off and trying again", err)
		config.Log.Debugf("Attempt %d with wait time %+v", attempts, currentBackoffDuration)
		if sleepErr := sleepContext(ctx, currentBackoffDuration); sleepErr != nil {
			return resp, errors.Wrap(sleepErr, name)
		}

		// guard against overflow
		if !maxReached {
			currentBackoffDuration, maxReached = GetBackoffDurationForAttempts(attempts, maxRetryTime)
		}
	}
}

func GetBackoffDurationForAttempts(numAttempts int64, maxRetryTime time.Duration) (time.Duration, bool) {
	backoffBase := 1.5
	backoffDuration := time.Duration(math.Pow(backoffBase, float64(numAttempts)) * float64(time.Second))

	maxReached := false
	if backoffDuration > maxRetryTime || backoffDuration < 0 {
		maxReached = true
		backoffDuration = maxRetryTime
	}

	return backoffDuration, maxReached
}
