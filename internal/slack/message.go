package slack

import (
	"fmt"
	"time"

	"helios/internal/webhook"
)

// Message is a Slack Block Kit message
type Message struct {
	Blocks []Block `json:"blocks"`
}

// Block is a single Block Kit block
type Block struct {
	Type     string       `json:"type"`
	Text     *TextObject  `json:"text,omitempty"`
	Fields   []TextObject `json:"fields,omitempty"`
	Elements []TextObject `json:"elements,omitempty"`
}

// TextObject is a Block Kit text element
type TextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func mrkdwn(format string, args ...interface{}) TextObject {
	return TextObject{Type: "mrkdwn", Text: fmt.Sprintf(format, args...)}
}

func plain(text string) TextObject {
	return TextObject{Type: "plain_text", Text: text}
}

func section(text string) Block {
	t := mrkdwn("%s", text)
	return Block{Type: "section", Text: &t}
}

func fieldSection(fields []TextObject) Block {
	return Block{Type: "section", Fields: fields}
}

func divider() Block {
	return Block{Type: "divider"}
}

// inquiryEmojis decorates the notification header per inquiry type.
var inquiryEmojis = map[string]string{
	"Clusters":    "🖥️",
	"Inference":   "🤖",
	"Baremetal":   "🔧",
	"Press":       "📰",
	"Partnership": "🤝",
	"Others":      "💬",
}

func inquiryEmoji(inquiryType string) string {
	if e, ok := inquiryEmojis[inquiryType]; ok {
		return e
	}
	return "📬"
}

func orNotProvided(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}

// BuildMessage renders an inquiry payload as a Slack notification: a header
// with the contact fields, then one section per branch detail that is
// present.
func BuildMessage(p webhook.Payload, receivedAt time.Time) Message {
	inquiryType := p.InquiryType
	if inquiryType == "" {
		inquiryType = "Contact"
	}

	header := plain(fmt.Sprintf("%s New %s Inquiry", inquiryEmoji(p.InquiryType), inquiryType))
	msg := Message{
		Blocks: []Block{
			{Type: "header", Text: &header},
			fieldSection([]TextObject{
				mrkdwn("*Name:*\n%s", orNotProvided(p.Name)),
				mrkdwn("*Email:*\n<mailto:%s|%s>", p.Email, p.Email),
				mrkdwn("*Organization:*\n%s", orNotProvided(p.Company)),
				mrkdwn("*Interest:*\n%s", orNotProvided(p.InquiryType)),
			}),
		},
	}

	if p.ClusterDetails != nil {
		msg.Blocks = append(msg.Blocks,
			divider(),
			section("*🖥️ Cluster Requirements*"),
			fieldSection([]TextObject{
				mrkdwn("*Cluster Types:*\n%s", orNotSpecified(p.ClusterDetails.Types)),
				mrkdwn("*GPU Range:*\n%d - %d GPUs", p.ClusterDetails.GPUCountMin, p.ClusterDetails.GPUCountMax),
			}),
		)
	}

	if p.InferenceDetails != nil && len(p.InferenceDetails.Models) > 0 {
		msg.Blocks = append(msg.Blocks,
			divider(),
			section("*🤖 Inference Requirements*"),
		)
		for _, model := range p.InferenceDetails.Models {
			msg.Blocks = append(msg.Blocks, fieldSection([]TextObject{
				mrkdwn("*Model:*\n%s", model.Name),
				mrkdwn("*Estimated Usage:*\n%s", model.Estimation),
			}))
		}
	}

	if p.PartnershipDetails != "" {
		msg.Blocks = append(msg.Blocks,
			divider(),
			section(fmt.Sprintf("*🤝 Partnership Details:*\n>>>%s", p.PartnershipDetails)),
		)
	}

	if p.Message != "" && p.Message != "No message provided" && p.PartnershipDetails == "" {
		msg.Blocks = append(msg.Blocks,
			divider(),
			section(fmt.Sprintf("*Additional Notes:*\n>>>%s", p.Message)),
		)
	}

	if p.GPUDetails != nil {
		msg.Blocks = append(msg.Blocks, gpuDetailBlocks(p)...)
	}

	msg.Blocks = append(msg.Blocks, Block{
		Type: "context",
		Elements: []TextObject{
			plain(fmt.Sprintf("Received at %s", receivedAt.UTC().Format(time.RFC1123))),
		},
	})

	return msg
}

// gpuDetailBlocks renders the baremetal rental quote. Slack caps sections
// at 10 fields, so the breakdown is chunked.
func gpuDetailBlocks(p webhook.Payload) []Block {
	d := p.GPUDetails

	fields := []TextObject{
		mrkdwn("*GPU Model:*\n%s", orNotSpecified(d.Model)),
		mrkdwn("*Number of GPUs:*\n%d", d.Count),
		mrkdwn("*Memory:*\n%s", orNotSpecified(d.Memory)),
		mrkdwn("*VRAM:*\n%s", orNotSpecified(d.VRAM)),
		mrkdwn("*Specifications:*\n%s", orNotSpecified(d.Specs)),
		mrkdwn("*Monthly Runtime:*\n%g hours", d.HoursPerMonth),
		mrkdwn("*Contract Term:*\n%s", orNotSpecified(d.ReservationPeriod)),
		mrkdwn("*Discount:*\n%d%%", d.Discount),
		mrkdwn("*Total Monthly Cost:*\n$%.2f", d.TotalCost),
		mrkdwn("*Base Cost:*\n$%.2f", d.BaseCost),
		mrkdwn("*Discount Amount:*\n$%.2f", d.DiscountAmount),
		mrkdwn("*Effective Rate:*\n$%.2f/hour", d.EffectiveRate),
	}

	blocks := []Block{
		divider(),
		section("*GPU Rental Configuration*"),
	}
	for i := 0; i < len(fields); i += 10 {
		end := i + 10
		if end > len(fields) {
			end = len(fields)
		}
		blocks = append(blocks, fieldSection(fields[i:end]))
	}
	return blocks
}
