package llm

import (
	"context"

	"golang.org/x/time/rate"
)

// throttledProvider wraps a Provider with a token-bucket rate limit so batch
// runs don't trip provider-side quotas.
type throttledProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// Throttle wraps a provider so that Generate calls wait for rate-limit
// clearance before hitting the API.
func Throttle(p Provider, requestsPerSecond float64, burst int) Provider {
	if burst <= 0 {
		burst = 1
	}
	return &throttledProvider{
		inner:   p,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

func (t *throttledProvider) Name() string {
	return t.inner.Name()
}

func (t *throttledProvider) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return t.inner.Generate(ctx, req)
}

func (t *throttledProvider) IsAvailable(ctx context.Context) bool {
	return t.inner.IsAvailable(ctx)
}
