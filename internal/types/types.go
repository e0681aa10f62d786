package types

import "strings"

// Tone is the stylistic directive applied to generated copy.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneBold         Tone = "bold"
	TonePlayful      Tone = "playful"
)

// Tones lists every valid tone in a stable order.
var Tones = []Tone{ToneProfessional, ToneCasual, ToneBold, TonePlayful}

// Valid reports whether t is one of the closed set of tones.
func (t Tone) Valid() bool {
	for _, v := range Tones {
		if t == v {
			return true
		}
	}
	return false
}

// ParseTone normalises s into a Tone, falling back to professional.
func ParseTone(s string) Tone {
	t := Tone(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return ToneProfessional
	}
	return t
}

// GeneratedCopy is the quick-mode result.
type GeneratedCopy struct {
	Headline    string   `json:"headline"`
	Subheadline string   `json:"subheadline"`
	Benefits    []string `json:"benefits"` // always exactly three
	CTA         string   `json:"cta"`
}

// URLAnalysis is what the model extracts from a fetched webpage.
type URLAnalysis struct {
	ProductName    string `json:"productName"`
	Description    string `json:"description"`
	TargetAudience string `json:"targetAudience"`
	KeyBenefit     string `json:"keyBenefit"`
	Problem        string `json:"problem"`
}
