package trackerclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"

	trackerdomain "github.com/agromarket/analytics-api/infrastructure/integrator/tracker/domain"
)

type EventListParams struct {
	After  string // data mínima (inclusive), formato YYYY-MM-DD
	Before string // data máxima (inclusive), formato YYYY-MM-DD
	Limit  int
}

type EventListResponse struct {
	Results []trackerdomain.RawEvent `json:"results"`
	Next    string                   `json:"next"`
}

// ListEvents consulta a listagem de eventos em bloco do projeto configurado.
// Os filtros de data da API upstream são pouco confiáveis nas bordas do
// período; o chamador deve refiltrar localmente.
func (c *TrackerClient) ListEvents(ctx context.Context, params EventListParams) (EventListResponse, error) {
	var response EventListResponse

	endpoint, err := url.Parse(c.config.Tracker.BaseURL)
	if err != nil {
		return response, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, "/api/projects/", c.config.Tracker.ProjectID, "/events")

	query := endpoint.Query()
	query.Set("after", params.After)
	query.Set("before", params.Before)
	query.Set("limit", strconv.Itoa(params.Limit))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return response, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.config.Tracker.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return response, fmt.Errorf("requisição falhou com status: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return response, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return response, nil
}
