// Package client talks to the external fixed-asset listing API. Records are
// normalized at this boundary so the rest of the service works with typed,
// already-defaulted items.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rogerio-castellano/asset-dashboard/internal/models"
)

// Client is a thin HTTP client for the item/branch/category listing API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListParams are the query parameters natively supported by the item
// listing endpoint. Zero values are omitted from the request.
type ListParams struct {
	Skip             int
	Limit            int
	Status           string
	Category         string
	BranchID         int
	Search           string
	Description      string
	FixedAssetNumber string
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Skip > 0 {
		q.Set("skip", strconv.Itoa(p.Skip))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.BranchID > 0 {
		q.Set("branch_id", strconv.Itoa(p.BranchID))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Description != "" {
		q.Set("description", p.Description)
	}
	if p.FixedAssetNumber != "" {
		q.Set("fixed_asset_number", p.FixedAssetNumber)
	}
	return q
}

// itemRecord is the wire shape of an item. Dates arrive as strings in a
// handful of layouts and are parsed into typed fields during normalization.
type itemRecord struct {
	ID               int              `json:"id"`
	Description      string           `json:"description"`
	FixedAssetNumber string           `json:"fixed_asset_number"`
	SerialNumber     string           `json:"serial_number"`
	BranchID         int              `json:"branch_id"`
	Branch           *models.Branch   `json:"branch"`
	Category         string           `json:"category"`
	CategoryRel      *models.Category `json:"category_rel"`
	Status           string           `json:"status"`
	InvoiceValue     float64          `json:"invoice_value"`
	AccountingValue  *float64         `json:"accounting_value"`
	PurchaseDate     string           `json:"purchase_date"`
	CreatedAt        string           `json:"created_at"`
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate parses a wire date, returning nil for absent or unparseable
// values. A malformed date is tolerated, not an error: the record still
// counts towards totals and only the date-dependent views skip it.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func (rec itemRecord) normalize() models.Item {
	return models.Item{
		ID:               rec.ID,
		Description:      rec.Description,
		FixedAssetNumber: rec.FixedAssetNumber,
		SerialNumber:     rec.SerialNumber,
		BranchID:         rec.BranchID,
		Branch:           rec.Branch,
		Category:         rec.Category,
		CategoryRel:      rec.CategoryRel,
		Status:           models.Status(rec.Status),
		InvoiceValue:     rec.InvoiceValue,
		AccountingValue:  rec.AccountingValue,
		PurchaseDate:     parseDate(rec.PurchaseDate),
		CreatedAt:        parseDate(rec.CreatedAt),
	}
}

// ListItems fetches a single page of items.
func (c *Client) ListItems(ctx context.Context, params ListParams) ([]models.Item, error) {
	var records []itemRecord
	if err := c.getJSON(ctx, "/items/", params.values(), &records); err != nil {
		return nil, err
	}
	items := make([]models.Item, len(records))
	for i, rec := range records {
		items[i] = rec.normalize()
	}
	return items, nil
}

// ListPage fetches one page of the unfiltered item listing. It is the
// page-oriented source the item cache consumes.
func (c *Client) ListPage(ctx context.Context, skip, limit int) ([]models.Item, error) {
	return c.ListItems(ctx, ListParams{Skip: skip, Limit: limit})
}

// ListBranches fetches the full branch option list.
func (c *Client) ListBranches(ctx context.Context) ([]models.Branch, error) {
	var branches []models.Branch
	if err := c.getJSON(ctx, "/branches/", nil, &branches); err != nil {
		return nil, err
	}
	return branches, nil
}

// ListCategories fetches the full category option list.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.getJSON(ctx, "/categories/", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request to %s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
