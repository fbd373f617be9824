// Package inventoryhttp is the JSON client to the external inventory
// module. The planning core reads stock locations and bin capacities from
// it and reports task completions back so stock transactions get posted.
package inventoryhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/pkg/errs"
)

const defaultTimeout = 5 * time.Second

// Client talks to the inventory module's internal API. It implements both
// ports.InventoryReader and ports.CompletionListener.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an inventory client for the given base URL,
// e.g. "http://inventory:8080".
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}, nil
}

type stockLocationResponse struct {
	BinID *string `json:"binId"`
}

// FindBinWithStock returns the bin holding at least the given available
// quantity, or nil when no single bin can satisfy the line.
func (c *Client) FindBinWithStock(
	ctx context.Context,
	warehouseID kernel.UUID,
	productID kernel.UUID,
	quantity int,
) (*kernel.UUID, error) {
	url := fmt.Sprintf("%s/internal/v1/warehouses/%s/stock-location?productId=%s&quantity=%d",
		c.baseURL, warehouseID.String(), productID.String(), quantity)

	var response stockLocationResponse
	if err := c.getJSON(ctx, url, &response); err != nil {
		return nil, fmt.Errorf("find bin with stock: %w", err)
	}

	if response.BinID == nil {
		return nil, nil
	}

	binID, err := kernel.UUIDFromString(*response.BinID)
	if err != nil {
		return nil, fmt.Errorf("find bin with stock: %w", err)
	}
	return &binID, nil
}

type binCapacityResponse struct {
	BinID    string  `json:"binId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Capacity int     `json:"capacity"`
	Occupied int     `json:"occupied"`
}

// BinCapacities returns the fill levels of the warehouse's bins.
func (c *Client) BinCapacities(ctx context.Context, warehouseID kernel.UUID) ([]services.BinCapacity, error) {
	url := fmt.Sprintf("%s/internal/v1/warehouses/%s/bin-capacities", c.baseURL, warehouseID.String())

	var response []binCapacityResponse
	if err := c.getJSON(ctx, url, &response); err != nil {
		return nil, fmt.Errorf("bin capacities: %w", err)
	}

	capacities := make([]services.BinCapacity, 0, len(response))
	for _, item := range response {
		binID, err := kernel.UUIDFromString(item.BinID)
		if err != nil {
			return nil, fmt.Errorf("bin capacities: %w", err)
		}
		location, err := kernel.NewLocation(kernel.Coordinate(item.X), kernel.Coordinate(item.Y))
		if err != nil {
			return nil, fmt.Errorf("bin capacities: %w", err)
		}
		capacities = append(capacities, services.BinCapacity{
			BinID:    binID,
			Location: location,
			Capacity: item.Capacity,
			Occupied: item.Occupied,
		})
	}
	return capacities, nil
}

// TaskCompleted reports a finished task so the inventory module can post
// the stock transaction.
func (c *Client) TaskCompleted(ctx context.Context, taskID kernel.UUID, agentID kernel.UUID) error {
	url := c.baseURL + "/internal/v1/task-completions"
	body, err := json.Marshal(map[string]string{
		"taskId":  taskID.String(),
		"agentId": agentID.String(),
	})
	if err != nil {
		return fmt.Errorf("task completed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("task completed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("task completed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("task completed: inventory responded with status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, url string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("inventory responded with status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}
