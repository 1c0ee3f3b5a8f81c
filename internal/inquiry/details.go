package inquiry

import (
	"strings"

	"helios/internal/pricing"
	"helios/internal/webhook"
)

// Details is the branch-specific part of an inquiry, one variant per
// service interest.
type Details interface {
	isDetails()
}

// ClusterInquiry requests a GPU cluster of a given size range
type ClusterInquiry struct {
	Types       []string
	GPUCountMin int
	GPUCountMax int
}

// InferenceInquiry lists hosted models with usage estimates
type InferenceInquiry struct {
	Models []ModelSelection
}

// RentalInquiry carries a baremetal rental quote from the calculator
type RentalInquiry struct {
	Rental RentalConfig
}

// PartnershipInquiry carries free-form partnership text
type PartnershipInquiry struct {
	Text string
}

// GeneralInquiry has no branch-specific fields (press, others)
type GeneralInquiry struct{}

func (ClusterInquiry) isDetails()     {}
func (InferenceInquiry) isDetails()   {}
func (RentalInquiry) isDetails()      {}
func (PartnershipInquiry) isDetails() {}
func (GeneralInquiry) isDetails()     {}

// Details returns the branch variant matching the form's current interest.
func (f *Form) Details() Details {
	switch f.Interest {
	case InterestClusters:
		return ClusterInquiry{
			Types:       f.ClusterTypes,
			GPUCountMin: f.GPUCountMin,
			GPUCountMax: f.GPUCountMax,
		}
	case InterestInference:
		return InferenceInquiry{Models: f.Selections}
	case InterestBaremetal:
		if f.Rental != nil {
			return RentalInquiry{Rental: *f.Rental}
		}
		return GeneralInquiry{}
	case InterestPartnership:
		return PartnershipInquiry{Text: f.PartnershipText}
	default:
		return GeneralInquiry{}
	}
}

// Payload assembles the submission body: shared contact fields plus the
// serialized branch variant.
func (f *Form) Payload() webhook.Payload {
	p := webhook.Payload{
		Name:        f.Name,
		Email:       f.Email,
		Company:     f.Organization,
		Message:     f.Message,
		InquiryType: f.Interest.InquiryType(),
	}
	attachDetails(&p, f.Details())
	return p
}

// attachDetails serializes a branch variant onto the payload. Every variant
// must be handled here; the payload shape is part of the contact endpoint
// contract.
func attachDetails(p *webhook.Payload, d Details) {
	switch v := d.(type) {
	case ClusterInquiry:
		p.ClusterDetails = &webhook.ClusterDetails{
			Types:       strings.Join(v.Types, ", "),
			GPUCountMin: v.GPUCountMin,
			GPUCountMax: v.GPUCountMax,
		}
	case InferenceInquiry:
		models := make([]webhook.ModelUsage, 0, len(v.Models))
		for _, sel := range v.Models {
			models = append(models, webhook.ModelUsage{
				Name:       sel.Model.Name,
				Category:   sel.Model.Category,
				Estimation: pricing.FormatEstimation(sel.Model.EstimationUnit, sel.Quantity),
			})
		}
		p.InferenceDetails = &webhook.InferenceDetails{Models: models}
	case RentalInquiry:
		quote := v.Rental.Quote()
		p.GPUDetails = &webhook.GPUDetails{
			Model:             v.Rental.GPU.Name,
			Count:             pricing.ClampQuantity(v.Rental.Quantity),
			Memory:            v.Rental.GPU.Memory,
			Specs:             v.Rental.GPU.Specs,
			VRAM:              v.Rental.GPU.VRAM,
			HoursPerMonth:     pricing.ClampHours(v.Rental.HoursPerMonth),
			ReservationPeriod: v.Rental.Tier.Label,
			Discount:          v.Rental.Tier.DiscountPercent,
			TotalCost:         quote.TotalCost,
			BaseCost:          quote.BaseCost,
			DiscountAmount:    quote.DiscountAmount,
			EffectiveRate:     quote.EffectiveRate,
		}
	case PartnershipInquiry:
		p.PartnershipDetails = v.Text
	case GeneralInquiry:
		// shared fields only
	}
}
