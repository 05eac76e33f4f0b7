package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/cdst-net/netopt/netmodel"
)

// HTTPAdapter calls an external routing service over HTTP, retrying with
// exponential backoff up to a configurable timeout and retry count, and
// falling back to the haversine estimate on any terminal failure. Retries
// are implemented with github.com/cenkalti/backoff/v4.
type HTTPAdapter struct {
	BaseURL    string
	Client     *http.Client
	Timeout    time.Duration
	MaxRetries uint64
	Logger     zerolog.Logger
}

// NewHTTPAdapter returns an HTTPAdapter with the given base URL, a
// default *http.Client, a 30s per-attempt timeout, and up to 3 retries --
// the originating platform's OSRM_TIMEOUT/OSRM_MAX_RETRIES defaults.
func NewHTTPAdapter(baseURL string) *HTTPAdapter {
	return &HTTPAdapter{
		BaseURL:    baseURL,
		Client:     &http.Client{},
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		Logger:     zerolog.Nop(),
	}
}

type routeResponse struct {
	DistanceKM      float64 `json:"distance_km"`
	DurationMinutes float64 `json:"duration_minutes"`
}

// Route attempts the external call with retries; on terminal failure it
// falls back to the haversine estimate and logs the fallback at warn
// level, mirroring the originating platform's
// `logger.warning("Failed to calculate route...")`. This method itself
// never returns ErrRoutingUnavailable except via Fallback's own
// non-finite-coordinate guard.
func (a *HTTPAdapter) Route(ctx context.Context, origin, destination netmodel.Coordinate) (RouteResult, error) {
	result, err := a.callWithRetry(ctx, origin, destination)
	if err == nil {
		return result, nil
	}

	km, minutes, ferr := Fallback(origin, destination)
	if ferr != nil {
		return RouteResult{}, ferr
	}
	a.Logger.Warn().
		Err(err).
		Float64("origin_lat", origin.Lat).Float64("origin_lon", origin.Lon).
		Float64("dest_lat", destination.Lat).Float64("dest_lon", destination.Lon).
		Msg("routing call failed, using haversine fallback")
	return RouteResult{DistanceKM: km, DurationMinutes: minutes}, nil
}

func (a *HTTPAdapter) callWithRetry(ctx context.Context, origin, destination netmodel.Coordinate) (RouteResult, error) {
	var result RouteResult

	op := func() error {
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}

		reqCtx, cancel := context.WithTimeout(ctx, a.Timeout)
		defer cancel()

		url := fmt.Sprintf("%s/route?olat=%f&olon=%f&dlat=%f&dlon=%f",
			a.BaseURL, origin.Lat, origin.Lon, destination.Lat, destination.Lon)

		req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := a.Client.Do(req)
		if err != nil {
			return err // transient: retry
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("routing service returned status %d", resp.StatusCode)
		}

		var payload routeResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return backoff.Permanent(fmt.Errorf("malformed routing response: %w", err))
		}

		result = RouteResult{DistanceKM: payload.DistanceKM, DurationMinutes: payload.DurationMinutes}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), a.MaxRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return RouteResult{}, err
	}
	return result, nil
}
