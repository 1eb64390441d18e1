package trackerclient

import (
	"context"
	"net/http"
	"time"

	"github.com/agromarket/analytics-api/internal/config"
)

type Client interface {
	ListEvents(ctx context.Context, params EventListParams) (EventListResponse, error)
}

type TrackerClient struct {
	httpClient *http.Client
	config     *config.Config
}

// NewClient cria uma nova instância do cliente da API de tracking.
func NewClient(cfg *config.Config) Client {
	return &TrackerClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config: cfg,
	}
}
