package types

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// SectionType names one block of a landing page.
type SectionType string

const (
	SectionHero        SectionType = "hero"
	SectionBenefits    SectionType = "benefits"
	SectionProblem     SectionType = "problem"
	SectionSocialProof SectionType = "social-proof"
	SectionCTA         SectionType = "cta"
)

// SectionCopy is implemented by the copy variant of each section type.
type SectionCopy interface {
	SectionType() SectionType
}

// CallToAction is a button label and its target.
type CallToAction struct {
	Text   string `json:"text"`
	Action string `json:"action"`
}

// BenefitItem is one benefit card.
type BenefitItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Testimonial is a customer quote.
type Testimonial struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
	Title  string `json:"title"`
}

type HeroCopy struct {
	Headline    string       `json:"headline"`
	Subheadline string       `json:"subheadline"`
	CTA         CallToAction `json:"cta"`
}

type BenefitsCopy struct {
	Items []BenefitItem `json:"items"`
}

type ProblemCopy struct {
	Headline string `json:"headline"`
	Body     string `json:"body"`
}

type SocialProofCopy struct {
	Testimonial *Testimonial `json:"testimonial"`
}

type FinalCTACopy struct {
	Headline string       `json:"headline"`
	CTA      CallToAction `json:"cta"`
}

func (HeroCopy) SectionType() SectionType        { return SectionHero }
func (BenefitsCopy) SectionType() SectionType    { return SectionBenefits }
func (ProblemCopy) SectionType() SectionType     { return SectionProblem }
func (SocialProofCopy) SectionType() SectionType { return SectionSocialProof }
func (FinalCTACopy) SectionType() SectionType    { return SectionCTA }

// Section is one independently visible block. Its type is derived from Copy.
type Section struct {
	Visible bool
	Copy    SectionCopy
}

// Type returns the section's tag, or "" when Copy is unset.
func (s Section) Type() SectionType {
	if s.Copy == nil {
		return ""
	}
	return s.Copy.SectionType()
}

type sectionJSON struct {
	Type    SectionType     `json:"type"`
	Visible bool            `json:"visible"`
	Copy    json.RawMessage `json:"copy"`
}

func (s Section) MarshalJSON() ([]byte, error) {
	if s.Copy == nil {
		return nil, fmt.Errorf("section has no copy")
	}
	raw, err := json.Marshal(s.Copy)
	if err != nil {
		return nil, err
	}
	return json.Marshal(sectionJSON{Type: s.Type(), Visible: s.Visible, Copy: raw})
}

func (s *Section) UnmarshalJSON(data []byte) error {
	var aux sectionJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var c SectionCopy
	var err error
	switch aux.Type {
	case SectionHero:
		c, err = decodeCopy[HeroCopy](aux.Copy)
	case SectionBenefits:
		c, err = decodeCopy[BenefitsCopy](aux.Copy)
	case SectionProblem:
		c, err = decodeCopy[ProblemCopy](aux.Copy)
	case SectionSocialProof:
		c, err = decodeCopy[SocialProofCopy](aux.Copy)
	case SectionCTA:
		c, err = decodeCopy[FinalCTACopy](aux.Copy)
	default:
		return fmt.Errorf("unknown section type %q", aux.Type)
	}
	if err != nil {
		return fmt.Errorf("decode %s copy: %w", aux.Type, err)
	}

	s.Visible = aux.Visible
	s.Copy = c
	return nil
}

func decodeCopy[T SectionCopy](raw json.RawMessage) (SectionCopy, error) {
	var v T
	if len(raw) == 0 || string(raw) == "null" {
		return v, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Template names a page layout.
type Template string

const (
	TemplateMinimal Template = "minimal"
	TemplateModern  Template = "modern"
	TemplateBold    Template = "bold"
)

// DefaultAccentColor is used when a theme carries no usable accent.
const DefaultAccentColor = "#d97706"

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ThemeConfig controls the visual treatment of a page.
type ThemeConfig struct {
	Template    Template `json:"template"`
	AccentColor string   `json:"accentColor"`
	DarkMode    bool     `json:"darkMode"`
}

// DefaultTheme returns the theme used when none is supplied.
func DefaultTheme() ThemeConfig {
	return ThemeConfig{Template: TemplateMinimal, AccentColor: DefaultAccentColor, DarkMode: true}
}

// Normalize replaces unknown templates and malformed accent colors with defaults.
func (t ThemeConfig) Normalize() ThemeConfig {
	switch t.Template {
	case TemplateMinimal, TemplateModern, TemplateBold:
	default:
		t.Template = TemplateMinimal
	}
	if !hexColor.MatchString(t.AccentColor) {
		t.AccentColor = DefaultAccentColor
	}
	return t
}

// PageMetadata is the SEO block of a page.
type PageMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// GeneratedLandingPage is an assembled page. It is held by the client, never persisted.
type GeneratedLandingPage struct {
	Sections []Section    `json:"sections"`
	Theme    ThemeConfig  `json:"theme"`
	Metadata PageMetadata `json:"metadata"`
}

// Find returns the first section of type st.
func (p *GeneratedLandingPage) Find(st SectionType) (Section, bool) {
	for _, s := range p.Sections {
		if s.Type() == st {
			return s, true
		}
	}
	return Section{}, false
}

// GeneratedHero is the hero block as the model writes it.
type GeneratedHero struct {
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline"`
	CTA         string `json:"cta"`
}

// GeneratedFinalCTA is the closing block as the model writes it.
type GeneratedFinalCTA struct {
	Headline string `json:"headline"`
	CTA      string `json:"cta"`
}

// PageCopy is the raw copy the model generates for a full page.
type PageCopy struct {
	Hero        *GeneratedHero     `json:"hero"`
	Benefits    []BenefitItem      `json:"benefits"`
	Problem     *ProblemCopy       `json:"problem"`
	SocialProof *Testimonial       `json:"socialProof"`
	FinalCTA    *GeneratedFinalCTA `json:"finalCta"`
	Metadata    PageMetadata       `json:"metadata"`
}

// ExportedPage is a rendered static document plus deployment notes.
type ExportedPage struct {
	HTML         string `json:"html"`
	Instructions string `json:"instructions"`
}
