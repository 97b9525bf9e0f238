package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dispatch-engine/internal/core/config"
	"dispatch-engine/internal/core/httpclient"
	"dispatch-engine/internal/core/logger"
	"dispatch-engine/internal/features/routes/domain"
	"dispatch-engine/internal/features/routes/ports"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// HTTPOptimizerAdapter implements the Optimizer interface against the external
// AI optimization service. Calls run through a circuit breaker so a flapping
// optimizer does not tie up every dispatch run in timeouts.
type HTTPOptimizerAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// config holds the optimizer connection details.
	config config.OptimizerConfig
	// breaker short-circuits calls while the optimizer is failing.
	breaker *gobreaker.CircuitBreaker
}

// NewHTTPOptimizerAdapter creates a new instance of HTTPOptimizerAdapter.
func NewHTTPOptimizerAdapter(cfg config.OptimizerConfig) *HTTPOptimizerAdapter {
	settings := gobreaker.Settings{
		Name:    "optimizer",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Get().Warn("Optimizer circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &HTTPOptimizerAdapter{
		client:  httpclient.NewClient(time.Duration(cfg.TimeoutSeconds) * time.Second),
		config:  cfg,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Optimize posts the request snapshot to the optimization service and decodes
// its proposal. Transport failures and open-circuit states map to
// ports.ErrOptimizerUnavailable; undecodable bodies map to
// ports.ErrMalformedResponse.
func (a *HTTPOptimizerAdapter) Optimize(ctx context.Context, req *domain.RouteRequest) (*domain.RouteResponse, error) {
	result, err := a.breaker.Execute(func() (interface{}, error) {
		return a.call(ctx, req)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, fmt.Errorf("%w: circuit breaker open", ports.ErrOptimizerUnavailable)
		}
		return nil, err
	}

	return result.(*domain.RouteResponse), nil
}

func (a *HTTPOptimizerAdapter) call(ctx context.Context, req *domain.RouteRequest) (*domain.RouteResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.URL+"/optimizar", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrOptimizerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: status %d", ports.ErrOptimizerUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ports.ErrMalformedResponse, resp.StatusCode)
	}

	var routeResp domain.RouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&routeResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrMalformedResponse, err)
	}

	// Both arrays are required keys. Empty arrays decode as non-nil slices,
	// so nil here means the key was absent.
	if routeResp.RutasOptimizadas == nil {
		return nil, fmt.Errorf("%w: missing rutas_optimizadas", ports.ErrMalformedResponse)
	}
	if routeResp.PedidosNoAsignados == nil {
		return nil, fmt.Errorf("%w: missing pedidos_no_asignados", ports.ErrMalformedResponse)
	}

	return &routeResp, nil
}
