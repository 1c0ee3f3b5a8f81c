package inquiry

import (
	"context"
	"errors"

	"helios/internal/catalog"
	"helios/internal/cms"
	"helios/internal/pricing"
	"helios/internal/webhook"
)

// SubmissionState tracks a form's submission lifecycle
type SubmissionState string

const (
	StateIdle    SubmissionState = "idle"
	StateLoading SubmissionState = "loading"
	StateSuccess SubmissionState = "success"
	StateError   SubmissionState = "error"
)

// ServiceInterest selects which inquiry branch a form follows
type ServiceInterest string

const (
	InterestClusters    ServiceInterest = "clusters"
	InterestInference   ServiceInterest = "inference"
	InterestBaremetal   ServiceInterest = "baremetal"
	InterestPress       ServiceInterest = "press"
	InterestPartnership ServiceInterest = "partnership"
	InterestOthers      ServiceInterest = "others"
)

// inquiryTypes maps interests to the labels the contact endpoint expects.
var inquiryTypes = map[ServiceInterest]string{
	InterestClusters:    "Clusters",
	InterestInference:   "Inference",
	InterestBaremetal:   "Baremetal",
	InterestPress:       "Press",
	InterestPartnership: "Partnership",
	InterestOthers:      "Others",
}

// InquiryType returns the wire label for an interest.
func (i ServiceInterest) InquiryType() string {
	if label, ok := inquiryTypes[i]; ok {
		return label
	}
	return "General"
}

// Valid reports whether the interest is one of the known branches.
func (i ServiceInterest) Valid() bool {
	_, ok := inquiryTypes[i]
	return ok
}

// ErrValidation is returned when a submit attempt fails local validation.
// No network call is made.
var ErrValidation = errors.New("please fill out all required fields")

// ErrInFlight is returned when a submit attempt overlaps an in-flight one.
var ErrInFlight = errors.New("a submission is already in progress")

// Submitter delivers an assembled payload. Implemented by webhook.Client.
type Submitter interface {
	Submit(ctx context.Context, p webhook.Payload) error
}

// ModelSelection is one chosen inference model with a usage estimate in the
// model's estimation unit.
type ModelSelection struct {
	Model    cms.InferenceModel
	Quantity float64
}

// RentalConfig captures the calculator state attached to baremetal inquiries
type RentalConfig struct {
	GPU           catalog.GPUModel
	Quantity      int
	HoursPerMonth float64
	Tier          catalog.ReservationTier
}

// Quote computes the rental's cost breakdown with clamped inputs.
func (r RentalConfig) Quote() pricing.Quote {
	return pricing.Compute(
		r.GPU.PricePerHour,
		pricing.ClampQuantity(r.Quantity),
		pricing.ClampHours(r.HoursPerMonth),
		float64(r.Tier.DiscountPercent),
	)
}

// Default GPU range for a fresh cluster inquiry
const (
	defaultGPUCountMin = 8
	defaultGPUCountMax = 64
)

// Form is the client-side inquiry aggregate. Contact fields are shared
// across branches; the remaining fields belong to exactly one branch, keyed
// by Interest.
type Form struct {
	Name         string
	Email        string
	Organization string
	Message      string

	Interest ServiceInterest

	// clusters
	ClusterTypes []string
	GPUCountMin  int
	GPUCountMax  int

	// inference
	Selections []ModelSelection

	// partnership
	PartnershipText string

	// baremetal
	Rental *RentalConfig

	State        SubmissionState
	ErrorMessage string
}

// NewForm returns a form with defaults, ready for user input.
func NewForm() *Form {
	return &Form{
		GPUCountMin: defaultGPUCountMin,
		GPUCountMax: defaultGPUCountMax,
		State:       StateIdle,
	}
}

// SelectInterest switches the form's branch. Fields specific to the
// previous interest are reset to defaults; contact fields are preserved.
func (f *Form) SelectInterest(interest ServiceInterest) {
	if f.Interest == interest {
		return
	}
	f.Interest = interest
	f.clearBranchFields()
}

func (f *Form) clearBranchFields() {
	f.ClusterTypes = nil
	f.GPUCountMin = defaultGPUCountMin
	f.GPUCountMax = defaultGPUCountMax
	f.Selections = nil
	f.PartnershipText = ""
	f.Rental = nil
}

// ToggleClusterType adds or removes a cluster type selection.
func (f *Form) ToggleClusterType(clusterType string) {
	for i, t := range f.ClusterTypes {
		if t == clusterType {
			f.ClusterTypes = append(f.ClusterTypes[:i], f.ClusterTypes[i+1:]...)
			return
		}
	}
	f.ClusterTypes = append(f.ClusterTypes, clusterType)
}

// SetGPURange sets the requested cluster size range.
func (f *Form) SetGPURange(min, max int) {
	if min > max {
		min, max = max, min
	}
	f.GPUCountMin = pricing.ClampQuantity(min)
	f.GPUCountMax = pricing.ClampQuantity(max)
}

// SelectModel adds an inference model selection or updates its estimate if
// already selected.
func (f *Form) SelectModel(model cms.InferenceModel, quantity float64) {
	for i := range f.Selections {
		if f.Selections[i].Model.ID == model.ID {
			f.Selections[i].Quantity = quantity
			return
		}
	}
	f.Selections = append(f.Selections, ModelSelection{Model: model, Quantity: quantity})
}

// DeselectModel removes a model from the selection.
func (f *Form) DeselectModel(modelID string) {
	for i := range f.Selections {
		if f.Selections[i].Model.ID == modelID {
			f.Selections = append(f.Selections[:i], f.Selections[i+1:]...)
			return
		}
	}
}

// Reset clears everything back to a fresh form ("start new conversation").
func (f *Form) Reset() {
	*f = *NewForm()
}

// Submit validates the form and delivers it through the submitter. Exactly
// one network call is made per invocation; an invocation while a previous
// one is in flight is rejected. On success all fields are cleared; on
// failure every field value is retained for retry.
func (f *Form) Submit(ctx context.Context, submitter Submitter) error {
	if f.State == StateLoading {
		return ErrInFlight
	}

	f.ErrorMessage = ""

	if f.Name == "" || f.Email == "" || !f.Interest.Valid() {
		f.State = StateError
		f.ErrorMessage = "Please fill out all required fields."
		return ErrValidation
	}

	f.State = StateLoading

	if err := submitter.Submit(ctx, f.Payload()); err != nil {
		f.State = StateError
		f.ErrorMessage = err.Error()
		return err
	}

	f.Reset()
	f.State = StateSuccess
	return nil
}
