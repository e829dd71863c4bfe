package notifier

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/openfantasy/rooms/internal/platform/logging"
	"github.com/openfantasy/rooms/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

var errWebhookTransient = crerr.New("webhook transient failure")

type WebhookConfig struct {
	URL            string
	Token          string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// WebhookNotifier delivers standings-updated events to a configured
// HTTP endpoint. Delivery is best effort; callers treat failures as
// non-fatal.
type WebhookNotifier struct {
	client         *fasthttp.Client
	url            string
	token          string
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	now            func() time.Time
}

func NewWebhookNotifier(cfg WebhookConfig, logger *logging.Logger) *WebhookNotifier {
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &WebhookNotifier{
		client:         &fasthttp.Client{},
		url:            strings.TrimSpace(cfg.URL),
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		now:            time.Now,
	}
}

type standingsUpdatedEvent struct {
	Event      string `json:"event"`
	RoomID     string `json:"room_id"`
	GameweekID string `json:"gameweek_id"`
	OccurredAt string `json:"occurred_at"`
}

func (n *WebhookNotifier) PublishStandingsUpdated(ctx context.Context, roomID, gameweekID string) error {
	if n.url == "" {
		return nil
	}

	if n.circuitEnabled {
		if err := n.breaker.Allow(); err != nil {
			n.logger.WarnContext(ctx, "webhook circuit breaker rejected event", "state", n.breaker.State())
			return fmt.Errorf("webhook endpoint is temporarily unavailable: %w", err)
		}
	}

	event := standingsUpdatedEvent{
		Event:      "standings.updated",
		RoomID:     roomID,
		GameweekID: gameweekID,
		OccurredAt: n.now().UTC().Format(time.RFC3339),
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(event); err != nil {
		return crerr.Wrap(err, "marshal standings event")
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(n.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if n.token != "" {
		req.Header.Set("Authorization", "Bearer "+n.token)
	}
	req.SetBody(buf.Bytes())

	err := n.client.DoTimeout(req, resp, n.timeout)
	if err != nil {
		callErr := fmt.Errorf("%w: deliver standings event: %v", errWebhookTransient, err)
		n.recordCircuitResult(callErr)
		return callErr
	}

	status := resp.StatusCode()
	if status/100 != 2 {
		if isRetryableStatus(status) {
			callErr := fmt.Errorf("%w: deliver standings event status=%d", errWebhookTransient, status)
			n.recordCircuitResult(callErr)
			return callErr
		}
		callErr := crerr.Newf("deliver standings event status=%d", status)
		n.recordCircuitResult(callErr)
		return callErr
	}

	n.logger.InfoContext(ctx, "standings event delivered", "room_id", roomID, "gameweek_id", gameweekID)
	n.recordCircuitResult(nil)
	return nil
}

func (n *WebhookNotifier) recordCircuitResult(err error) {
	if !n.circuitEnabled || n.breaker == nil {
		return
	}
	if err == nil {
		n.breaker.RecordSuccess()
		return
	}
	if stderrors.Is(err, errWebhookTransient) {
		n.breaker.RecordFailure()
		return
	}
	n.breaker.RecordSuccess()
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == fasthttp.StatusRequestTimeout ||
		statusCode == fasthttp.StatusTooManyRequests ||
		statusCode >= fasthttp.StatusInternalServerError
}
