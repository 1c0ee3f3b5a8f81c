package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GenericError is shown when a submission fails without a usable server
// message.
const GenericError = "Failed to send message. Please try again later."

// Payload is the inquiry submission body. Exactly one of the detail fields
// is set, depending on InquiryType.
type Payload struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Company     string `json:"company"`
	Message     string `json:"message"`
	InquiryType string `json:"inquiryType"`

	GPUDetails         *GPUDetails       `json:"gpuDetails,omitempty"`
	ClusterDetails     *ClusterDetails   `json:"clusterDetails,omitempty"`
	InferenceDetails   *InferenceDetails `json:"inferenceDetails,omitempty"`
	PartnershipDetails string            `json:"partnershipDetails,omitempty"`
}

// GPUDetails carries a full rental quote from the pricing calculator
type GPUDetails struct {
	Model             string  `json:"model"`
	Count             int     `json:"count"`
	Memory            string  `json:"memory,omitempty"`
	Specs             string  `json:"specs,omitempty"`
	VRAM              string  `json:"vram,omitempty"`
	HoursPerMonth     float64 `json:"hoursPerMonth,omitempty"`
	ReservationPeriod string  `json:"reservationPeriod,omitempty"`
	Discount          int     `json:"discount,omitempty"`
	TotalCost         float64 `json:"totalCost,omitempty"`
	BaseCost          float64 `json:"baseCost,omitempty"`
	DiscountAmount    float64 `json:"discountAmount,omitempty"`
	EffectiveRate     float64 `json:"effectiveRate,omitempty"`
}

// ClusterDetails carries a cluster inquiry's requirements
type ClusterDetails struct {
	Types       string `json:"types"`
	GPUCountMin int    `json:"gpuCountMin"`
	GPUCountMax int    `json:"gpuCountMax"`
}

// InferenceDetails carries the selected inference models with their
// formatted usage estimations
type InferenceDetails struct {
	Models []ModelUsage `json:"models"`
}

// ModelUsage is one selected model and its human-readable usage estimate
type ModelUsage struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	Estimation string `json:"estimation"`
}

// Client submits inquiry payloads to the contact endpoint
type Client struct {
	url    string
	client *http.Client
}

// New creates a client for the given endpoint URL.
func New(url string) *Client {
	return &Client{
		url: url,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Submit posts the payload as JSON. Any 2xx response counts as accepted.
// A non-2xx response surfaces the server's {"error": ...} message when one
// is present; network failures and unreadable bodies collapse to a generic
// message. Exactly one attempt is made.
func (c *Client) Submit(ctx context.Context, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.New(GenericError)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.New(GenericError)
	}

	var serverErr struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(respBody, &serverErr); err == nil && serverErr.Error != "" {
		return errors.New(serverErr.Error)
	}

	return errors.New(GenericError)
}
