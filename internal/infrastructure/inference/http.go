package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"resistor-vision/internal/domain/entity"
	"resistor-vision/internal/domain/port"
)

// DefaultHTTPTimeout ограничение на один запрос к сервису вывода
const DefaultHTTPTimeout = 30 * time.Second

// ErrRemoteInference оборачивает ошибки, которые вернул сервис вывода
var ErrRemoteInference = errors.New("remote inference failed")

type predictRequest struct {
	Model string    `json:"model"`
	Side  int       `json:"side"`
	Data  []float32 `json:"data"`
}

type predictResponse struct {
	Output []float32 `json:"output"`
	Error  string    `json:"error,omitempty"`
}

// HTTPRunner отправляет буфер во внешний сервис вывода и получает плоский тензор.
type HTTPRunner struct {
	endpoint string
	model    string
	client   *http.Client
}

// NewHTTPRunner создаёт клиента к endpoint для модели model.
func NewHTTPRunner(endpoint, model string, client *http.Client) (*HTTPRunner, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse inference url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("inference url must be http(s), got %q", endpoint)
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &HTTPRunner{endpoint: u.String(), model: model, client: client}, nil
}

// Run выполняет модель на сервисе.
func (r *HTTPRunner) Run(ctx context.Context, input *entity.PixelBuffer) ([]float32, error) {
	if input == nil {
		return nil, entity.ErrInvalidBuffer
	}

	body, err := json.Marshal(predictRequest{Model: r.model, Side: input.Side(), Data: input.Float32s()})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.model, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: %s: status %d: %s", ErrRemoteInference, r.model, resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", r.model, err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("%w: %s: %s", ErrRemoteInference, r.model, out.Error)
	}
	return out.Output, nil
}

// CheckHealth проверяет доступность сервиса.
func (r *HTTPRunner) CheckHealth(ctx context.Context) error {
	healthURL, err := url.JoinPath(r.endpoint, "health")
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
	if err != nil {
		return err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("inference health: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health status %d", ErrRemoteInference, resp.StatusCode)
	}
	return nil
}

var _ port.ModelRunner = (*HTTPRunner)(nil)
