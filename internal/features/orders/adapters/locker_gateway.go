package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ghost-kitchen/internal/core/httpclient"
	"ghost-kitchen/internal/core/logger"
	"ghost-kitchen/internal/features/orders/ports"

	"go.uber.org/zap"
)

// WebhookLockerGateway notifies the pickup-locker bridge over HTTP that an
// order is ready for retrieval.
type WebhookLockerGateway struct {
	client  *http.Client
	baseURL string
}

// NewLockerGateway returns a locker gateway for the given bridge URL. With an
// empty URL the bridge is not deployed and a log-only stub is returned.
func NewLockerGateway(bridgeURL string) ports.LockerGateway {
	if bridgeURL == "" {
		return &noopLockerGateway{}
	}
	return &WebhookLockerGateway{
		client:  httpclient.NewClient(5 * time.Second),
		baseURL: bridgeURL,
	}
}

type unlockRequest struct {
	Code string `json:"code"`
}

// Unlock posts the unlock command to the bridge.
func (g *WebhookLockerGateway) Unlock(ctx context.Context, orderCode string) error {
	body, err := json.Marshal(unlockRequest{Code: orderCode})
	if err != nil {
		return fmt.Errorf("failed to marshal unlock request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/unlock", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create unlock request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("unlock request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("locker bridge returned status: %d", resp.StatusCode)
	}

	return nil
}

// noopLockerGateway logs the unlock instead of calling a bridge.
type noopLockerGateway struct{}

func (g *noopLockerGateway) Unlock(ctx context.Context, orderCode string) error {
	logger.Get().Info("Locker bridge not configured, skipping unlock",
		zap.String("code", orderCode),
	)
	return nil
}
