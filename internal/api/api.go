package api

import (
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"helios/internal/catalog"
	"helios/internal/pricing"
	"helios/internal/state"
	"helios/internal/stream"
	"helios/internal/webhook"
)

// eventSubject is the stream subject inquiry lifecycle events go to
const eventSubject = "helios.inquiries.events"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func SetupRoutes(appState *state.State) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "helios",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Inquiry intake
		v1.POST("/inquiries", createInquiry(appState))

		// Pricing
		v1.GET("/pricing/quote", getQuote(appState))
		v1.GET("/pricing/usage", getUsageEstimate(appState))

		// Catalog
		v1.GET("/catalog/gpus", listGPUs(appState))
		v1.GET("/catalog/tiers", listTiers(appState))
		v1.GET("/catalog/comparison", getComparison(appState))
	}

	return r
}

// validateInquiry mirrors the checks the contact form cannot be trusted to
// have done. Returns an empty string when the payload is acceptable.
func validateInquiry(p webhook.Payload) string {
	if p.Name == "" {
		return "Name is required."
	}
	if p.Email == "" {
		return "Email is required."
	}
	if !emailPattern.MatchString(p.Email) {
		return "Please enter a valid email address."
	}
	if d := p.GPUDetails; d != nil {
		if d.Count < pricing.MinQuantity || d.Count > pricing.MaxQuantity {
			return "GPU count must be between 1 and 20000."
		}
	}
	if d := p.ClusterDetails; d != nil {
		if d.GPUCountMin < pricing.MinQuantity || d.GPUCountMax > pricing.MaxQuantity || d.GPUCountMin > d.GPUCountMax {
			return "GPU range is invalid."
		}
	}
	return ""
}

func createInquiry(appState *state.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p webhook.Payload
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(400, gin.H{"error": "Invalid request body."})
			return
		}

		id := uuid.NewString()

		if msg := validateInquiry(p); msg != "" {
			publishEvent(c, appState, stream.Event{
				Type:        stream.EventInquiryRejected,
				InquiryID:   id,
				InquiryType: p.InquiryType,
				Reason:      msg,
			})
			c.JSON(400, gin.H{"error": msg})
			return
		}

		publishEvent(c, appState, stream.Event{
			Type:        stream.EventInquiryReceived,
			InquiryID:   id,
			InquiryType: p.InquiryType,
		})

		// Notification failures must not fail the inquiry
		if appState.Notifier != nil {
			if err := appState.Notifier.Notify(c.Request.Context(), p); err != nil {
				logrus.WithError(err).Warn("Failed to send inquiry notification")
			} else {
				publishEvent(c, appState, stream.Event{
					Type:        stream.EventInquiryForwarded,
					InquiryID:   id,
					InquiryType: p.InquiryType,
				})
			}
		}

		c.JSON(200, gin.H{"success": true, "id": id})
	}
}

func publishEvent(c *gin.Context, appState *state.State, event stream.Event) {
	if appState.Stream == nil {
		return
	}
	if err := appState.Stream.Publish(c.Request.Context(), eventSubject, event); err != nil {
		logrus.WithError(err).Warn("Failed to publish inquiry event")
	}
}

func getQuote(appState *state.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		gpu, exists := appState.Catalog.GPU(c.Query("gpu"))
		if !exists {
			c.JSON(404, gin.H{"error": "unknown GPU model"})
			return
		}

		tier := appState.Catalog.DefaultTier()
		if tierID := c.Query("tier"); tierID != "" {
			tier, exists = appState.Catalog.Tier(tierID)
			if !exists {
				c.JSON(404, gin.H{"error": "unknown reservation tier"})
				return
			}
		}

		quantity, err := strconv.Atoi(c.DefaultQuery("quantity", "1"))
		if err != nil {
			c.JSON(400, gin.H{"error": "quantity must be an integer"})
			return
		}
		hours, err := strconv.ParseFloat(c.DefaultQuery("hours", "730"), 64)
		if err != nil {
			c.JSON(400, gin.H{"error": "hours must be a number"})
			return
		}

		quantity = pricing.ClampQuantity(quantity)
		hours = pricing.ClampHours(hours)

		quote := pricing.Compute(gpu.PricePerHour, quantity, hours, float64(tier.DiscountPercent))

		c.JSON(200, gin.H{
			"gpu":      gpu,
			"tier":     tier,
			"quantity": quantity,
			"hours":    hours,
			"quote":    quote,
			"reservation": gin.H{
				"months":    pricing.ReservationMonths(tier.ID),
				"totalCost": pricing.TotalReservationCost(quote.TotalCost, tier.ID),
			},
		})
	}
}

func getUsageEstimate(appState *state.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		if appState.CMS == nil {
			c.JSON(503, gin.H{"error": "CMS not configured"})
			return
		}

		modelID := c.Query("model")
		if modelID == "" {
			c.JSON(400, gin.H{"error": "model is required"})
			return
		}
		quantity, err := strconv.ParseFloat(c.Query("quantity"), 64)
		if err != nil || quantity < 0 {
			c.JSON(400, gin.H{"error": "quantity must be a non-negative number"})
			return
		}

		models, err := appState.CMS.InferenceModels(c.Request.Context())
		if err != nil {
			c.JSON(502, gin.H{"error": err.Error()})
			return
		}

		for _, m := range models {
			if m.ID != modelID {
				continue
			}
			c.JSON(200, gin.H{
				"model":      m,
				"estimation": pricing.FormatEstimation(m.EstimationUnit, quantity),
				"cost":       pricing.UsageCost(m.PricePerSecond, m.EstimationUnit, quantity),
			})
			return
		}

		c.JSON(404, gin.H{"error": "unknown inference model"})
	}
}

func listGPUs(appState *state.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		tier := appState.Catalog.DefaultTier()
		if tierID := c.Query("tier"); tierID != "" {
			var exists bool
			tier, exists = appState.Catalog.Tier(tierID)
			if !exists {
				c.JSON(404, gin.H{"error": "unknown reservation tier"})
				return
			}
		}

		dir := catalog.SortDirection(c.Query("sort"))
		switch dir {
		case catalog.SortNone, catalog.SortAscending, catalog.SortDescending:
		default:
			c.JSON(400, gin.H{"error": "sort must be asc or desc"})
			return
		}

		models := catalog.SortByEffectivePrice(appState.Catalog.GPUs, tier, dir)

		gpus := make([]gin.H, 0, len(models))
		for _, g := range models {
			gpus = append(gpus, gin.H{
				"id":             g.ID,
				"name":           g.Name,
				"pricePerHour":   g.PricePerHour,
				"memory":         g.Memory,
				"specs":          g.Specs,
				"vram":           g.VRAM,
				"effectivePrice": catalog.EffectivePrice(g, tier),
			})
		}

		c.JSON(200, gin.H{"tier": tier, "gpus": gpus})
	}
}

func listTiers(appState *state.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"tiers": appState.Catalog.Tiers})
	}
}

func getComparison(appState *state.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		tier := appState.Catalog.DefaultTier()
		if tierID := c.Query("tier"); tierID != "" {
			var exists bool
			tier, exists = appState.Catalog.Tier(tierID)
			if !exists {
				c.JSON(404, gin.H{"error": "unknown reservation tier"})
				return
			}
		}

		rows := make([]gin.H, 0, len(appState.Catalog.Comparison))
		for _, row := range appState.Catalog.Comparison {
			entry := gin.H{
				"gpu":         row.GPU,
				"helios":      row.Helios,
				"aws":         row.AWS,
				"googleCloud": row.GoogleCloud,
				"lambda":      row.Lambda,
				"modal":       row.Modal,
			}
			if name, price, ok := catalog.LowestCompetitor(row); ok {
				entry["lowestCompetitor"] = gin.H{"name": name, "price": price}
				if saving, ok := catalog.Savings(row, tier); ok {
					entry["savings"] = saving
				}
			}
			rows = append(rows, entry)
		}

		c.JSON(200, gin.H{"tier": tier, "comparison": rows})
	}
}
