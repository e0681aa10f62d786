// Package page assembles generated copy into a landing page.
package page

import (
	"vibedezine_server/internal/types"
)

// DefaultAction is the target of generated call-to-action buttons.
const DefaultAction = "#"

// Assemble maps generated copy and a theme onto the fixed section order:
// hero, benefits, problem, social proof, final call to action. Optional
// sections without content are kept with Visible false. A nil theme uses
// the default theme.
func Assemble(c *types.PageCopy, theme *types.ThemeConfig) types.GeneratedLandingPage {
	var hero types.GeneratedHero
	if c.Hero != nil {
		hero = *c.Hero
	}
	var final types.GeneratedFinalCTA
	if c.FinalCTA != nil {
		final = *c.FinalCTA
	}

	benefits := append([]types.BenefitItem{}, c.Benefits...)

	var problem types.ProblemCopy
	if c.Problem != nil {
		problem = *c.Problem
	}

	var testimonial *types.Testimonial
	if c.SocialProof != nil {
		t := *c.SocialProof
		testimonial = &t
	}

	resolved := types.DefaultTheme()
	if theme != nil {
		resolved = theme.Normalize()
	}

	return types.GeneratedLandingPage{
		Sections: []types.Section{
			{Visible: true, Copy: types.HeroCopy{
				Headline:    hero.Headline,
				Subheadline: hero.Subheadline,
				CTA:         types.CallToAction{Text: hero.CTA, Action: DefaultAction},
			}},
			{Visible: true, Copy: types.BenefitsCopy{Items: benefits}},
			{Visible: c.Problem != nil && (problem.Headline != "" || problem.Body != ""), Copy: problem},
			{Visible: testimonial != nil, Copy: types.SocialProofCopy{Testimonial: testimonial}},
			{Visible: true, Copy: types.FinalCTACopy{
				Headline: final.Headline,
				CTA:      types.CallToAction{Text: final.CTA, Action: DefaultAction},
			}},
		},
		Theme:    resolved,
		Metadata: c.Metadata,
	}
}
