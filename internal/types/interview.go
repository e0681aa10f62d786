package types

import "time"

// Role tags who authored a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in an interview conversation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SessionStatus only ever advances interviewing -> extracting -> complete.
type SessionStatus string

const (
	StatusInterviewing SessionStatus = "interviewing"
	StatusExtracting   SessionStatus = "extracting"
	StatusComplete     SessionStatus = "complete"
)

func (s SessionStatus) rank() int {
	switch s {
	case StatusInterviewing:
		return 0
	case StatusExtracting:
		return 1
	case StatusComplete:
		return 2
	}
	return -1
}

// CanAdvanceTo reports whether moving from s to next keeps the status monotonic.
func (s SessionStatus) CanAdvanceTo(next SessionStatus) bool {
	return next.rank() >= s.rank() && next.rank() >= 0
}

// InterviewSession holds the conversation state for one interview.
type InterviewSession struct {
	ID            string                `json:"id"`
	Messages      []Turn                `json:"messages"`
	ExtractedData *ExtractedProductData `json:"extractedData"`
	Status        SessionStatus         `json:"status"`
	CreatedAt     time.Time             `json:"createdAt"`
}

// Clone returns a deep copy so stored sessions never share memory with callers.
func (s *InterviewSession) Clone() *InterviewSession {
	if s == nil {
		return nil
	}
	c := *s
	c.Messages = append([]Turn(nil), s.Messages...)
	c.ExtractedData = s.ExtractedData.Clone()
	return &c
}

// SocialProof is an optional proof point gathered in the interview.
type SocialProof struct {
	Type    string `json:"type"` // testimonial, stats or logos
	Content string `json:"content"`
	Author  string `json:"author,omitempty"`
	Title   string `json:"title,omitempty"`
}

// PricingInfo drives the call-to-action strategy.
type PricingInfo struct {
	Model      string  `json:"model"` // saas, one-time, freemium or free
	PricePoint *string `json:"pricePoint"`
	CTAAction  string  `json:"ctaAction"` // signup, demo, download or waitlist
}

// ExtractedProductData is the structured result of an interview.
type ExtractedProductData struct {
	ProductName     string       `json:"productName"`
	Tagline         string       `json:"tagline"`
	TargetAudience  string       `json:"targetAudience"`
	Problem         string       `json:"problem"`
	Solution        string       `json:"solution"`
	Benefits        []string     `json:"benefits"`
	Differentiators []string     `json:"differentiators"`
	SocialProof     *SocialProof `json:"socialProof"`
	Pricing         *PricingInfo `json:"pricing"`
	Tone            Tone         `json:"tone"`
}

// Clone returns a deep copy of d.
func (d *ExtractedProductData) Clone() *ExtractedProductData {
	if d == nil {
		return nil
	}
	c := *d
	c.Benefits = append([]string(nil), d.Benefits...)
	c.Differentiators = append([]string(nil), d.Differentiators...)
	if d.SocialProof != nil {
		sp := *d.SocialProof
		c.SocialProof = &sp
	}
	if d.Pricing != nil {
		p := *d.Pricing
		if d.Pricing.PricePoint != nil {
			pp := *d.Pricing.PricePoint
			p.PricePoint = &pp
		}
		c.Pricing = &p
	}
	return &c
}
