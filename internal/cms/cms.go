package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"helios/internal/pricing"
)

// GPUDocument is a gpuModel document as stored in the CMS. Competitor
// prices are free text ("Not listed", "1.86-2.24").
type GPUDocument struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	VRAM             string  `json:"vram"`
	Memory           string  `json:"memory"`
	Specs            string  `json:"specs,omitempty"`
	HeliosPrice      float64 `json:"heliosPrice"`
	AWSPrice         string  `json:"awsPrice,omitempty"`
	GoogleCloudPrice string  `json:"googleCloudPrice,omitempty"`
	LambdaPrice      string  `json:"lambdaPrice,omitempty"`
	ModalPrice       string  `json:"modalPrice,omitempty"`
	DisplayOrder     int     `json:"displayOrder,omitempty"`
}

// InferenceModel is an inferenceModel document: a hosted model billed per
// second of GPU runtime, with a unit describing how usage is estimated.
type InferenceModel struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Category       string                 `json:"category"`
	PricePerSecond float64                `json:"pricePerSecond"`
	EstimationUnit pricing.EstimationUnit `json:"estimationUnit"`
	Description    string                 `json:"description,omitempty"`
	Provider       string                 `json:"provider,omitempty"`
	DisplayOrder   int                    `json:"displayOrder,omitempty"`
}

// PricingTier is a pricingTier document
type PricingTier struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Duration     string `json:"duration"`
	Discount     int    `json:"discount"`
	Featured     bool   `json:"featured,omitempty"`
	Description  string `json:"description,omitempty"`
	DisplayOrder int    `json:"displayOrder"`
}

// PageConfig is the pricingPageSection singleton
type PageConfig struct {
	Title                string `json:"title"`
	HeroTitle            string `json:"heroTitle"`
	HeroSubtitle         string `json:"heroSubtitle,omitempty"`
	CTAButtonText        string `json:"ctaButtonText,omitempty"`
	CTAButtonURL         string `json:"ctaButtonUrl,omitempty"`
	CalculatorTitle      string `json:"calculatorTitle,omitempty"`
	ComparisonTableTitle string `json:"comparisonTableTitle,omitempty"`
	FooterNote           string `json:"footerNote,omitempty"`
	CalendlyURL          string `json:"calendlyUrl,omitempty"`
}

// Queries issued against the CMS, one per document type.
const (
	queryGPUModels       = `*[_type == "gpuModel"] | order(displayOrder asc)`
	queryInferenceModels = `*[_type == "inferenceModel"] | order(displayOrder asc)`
	queryPricingTiers    = `*[_type == "pricingTier"] | order(displayOrder asc)`
	queryPageConfig      = `*[_type == "pricingPageSection"][0]`
)

// Client reads typed documents from the CMS query API
type Client struct {
	baseURL    string
	dataset    string
	apiVersion string
	client     *http.Client
}

// New creates a CMS client. baseURL is the project API root, e.g.
// "https://05vcm5dh.api.sanity.io".
func New(baseURL, dataset, apiVersion string) *Client {
	return &Client{
		baseURL:    baseURL,
		dataset:    dataset,
		apiVersion: apiVersion,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GPUModels fetches the GPU catalog documents.
func (c *Client) GPUModels(ctx context.Context) ([]GPUDocument, error) {
	var docs []GPUDocument
	if err := c.Fetch(ctx, queryGPUModels, &docs); err != nil {
		return nil, fmt.Errorf("failed to fetch gpu models: %w", err)
	}
	return docs, nil
}

// InferenceModels fetches the hosted inference model documents.
func (c *Client) InferenceModels(ctx context.Context) ([]InferenceModel, error) {
	var models []InferenceModel
	if err := c.Fetch(ctx, queryInferenceModels, &models); err != nil {
		return nil, fmt.Errorf("failed to fetch inference models: %w", err)
	}
	return models, nil
}

// PricingTiers fetches the reservation tier documents.
func (c *Client) PricingTiers(ctx context.Context) ([]PricingTier, error) {
	var tiers []PricingTier
	if err := c.Fetch(ctx, queryPricingTiers, &tiers); err != nil {
		return nil, fmt.Errorf("failed to fetch pricing tiers: %w", err)
	}
	return tiers, nil
}

// PageConfig fetches the pricing page configuration singleton.
func (c *Client) PageConfig(ctx context.Context) (*PageConfig, error) {
	var cfg PageConfig
	if err := c.Fetch(ctx, queryPageConfig, &cfg); err != nil {
		return nil, fmt.Errorf("failed to fetch page config: %w", err)
	}
	return &cfg, nil
}

// Fetch runs a query and decodes the result envelope into dest.
func (c *Client) Fetch(ctx context.Context, query string, dest interface{}) error {
	u := fmt.Sprintf("%s/v%s/data/query/%s?query=%s",
		c.baseURL, c.apiVersion, c.dataset, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("query failed with status %d: %s", resp.StatusCode, string(body))
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if err := json.Unmarshal(envelope.Result, dest); err != nil {
		return fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return nil
}

// HealthCheck verifies the query endpoint is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	var count int
	if err := c.Fetch(ctx, `count(*[_type == "gpuModel"])`, &count); err != nil {
		return fmt.Errorf("cms health check failed: %w", err)
	}
	return nil
}
