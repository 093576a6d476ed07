package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Client клиент каталога услуг и специалистов
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetService получает услугу по ID
func (c *Client) GetService(ctx context.Context, serviceID int64) (*domain.ServiceDescriptor, error) {
	url := fmt.Sprintf("%s/internal/services/%d", c.baseURL, serviceID)

	var service Service
	if err := c.get(ctx, url, &service); err != nil {
		return nil, err
	}

	descriptor := service.ToDomain()
	if err := descriptor.Validate(); err != nil {
		c.log.Warn("Catalog returned invalid service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return descriptor, nil
}

// ListServices получает все услуги каталога
func (c *Client) ListServices(ctx context.Context) ([]*domain.ServiceDescriptor, error) {
	url := fmt.Sprintf("%s/internal/services", c.baseURL)

	var services []Service
	if err := c.get(ctx, url, &services); err != nil {
		return nil, err
	}

	result := make([]*domain.ServiceDescriptor, 0, len(services))
	for i := range services {
		descriptor := services[i].ToDomain()
		if err := descriptor.Validate(); err != nil {
			c.log.Warn("Catalog returned invalid service id=%d, skipping: %v", services[i].ID, err)
			continue
		}
		result = append(result, descriptor)
	}

	return result, nil
}

// GetProfessionalsAt получает специалистов, оказывающих услугу в указанном месте
func (c *Client) GetProfessionalsAt(ctx context.Context, serviceID, locationID int64) ([]int64, error) {
	url := fmt.Sprintf("%s/internal/services/%d/locations/%d/professionals", c.baseURL, serviceID, locationID)

	var resp ProfessionalsResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, err
	}

	if resp.ProfessionalIDs == nil {
		return []int64{}, nil
	}
	return resp.ProfessionalIDs, nil
}

func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Catalog request %s failed: %v", url, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return ErrServiceNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
