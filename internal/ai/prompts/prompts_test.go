package prompts_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibedezine_server/internal/ai/prompts"
	"vibedezine_server/internal/types"
)

func TestGetQuickCopyPrompt_EmbedsToneInstruction(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, tone := range types.Tones {
		instruction := prompts.QuickToneInstruction(tone)
		assert.NotEmpty(t, instruction)
		assert.False(t, seen[instruction], "tone %s shares an instruction", tone)
		seen[instruction] = true

		p := prompts.GetQuickCopyPrompt(tone)
		assert.Contains(t, p, "Tone: "+instruction+"\n")
		for _, other := range types.Tones {
			if other != tone {
				assert.NotContains(t, p, prompts.QuickToneInstruction(other))
			}
		}
	}

	assert.Equal(t, prompts.QuickToneInstruction(types.ToneProfessional), prompts.QuickToneInstruction("sarcastic"))
}

func TestGetURLAnalysisPrompt(t *testing.T) {
	t.Parallel()

	p := prompts.GetURLAnalysisPrompt("Ledger helps freelancers send invoices.")
	assert.True(t, strings.HasSuffix(p, "WEBPAGE CONTENT:\nLedger helps freelancers send invoices."))
	assert.Contains(t, p, `"keyBenefit": "..."`)
}

func TestInterviewSystemPrompt_EndsOnCompletionSentence(t *testing.T) {
	t.Parallel()

	assert.Contains(t, prompts.InterviewSystemPrompt, `respond with EXACTLY: "`+prompts.CompletionSentence+`"`)
	assert.Contains(t, strings.ToLower(prompts.CompletionSentence), prompts.CompletionPhrase)
}

func TestFormatConversation(t *testing.T) {
	t.Parallel()

	got := prompts.FormatConversation([]types.Turn{
		{Role: types.RoleAssistant, Content: "What are you building?"},
		{Role: types.RoleUser, Content: "An invoicing tool."},
	})
	assert.Equal(t, "Assistant: What are you building?\n\nUser: An invoicing tool.", got)

	p := prompts.GetExtractionPrompt([]types.Turn{{Role: types.RoleUser, Content: "hi"}})
	assert.Contains(t, p, "Conversation:\nUser: hi\n\n")
}

func TestGetLandingPagePrompt(t *testing.T) {
	t.Parallel()

	data := &types.ExtractedProductData{
		ProductName:     "Ledger",
		TargetAudience:  "freelance designers",
		Problem:         "chasing late payments",
		Solution:        "automatic reminders",
		Benefits:        []string{"get paid", "less admin"},
		Differentiators: []string{"no setup"},
		Tone:            types.ToneBold,
	}

	t.Run("without proof or pricing", func(t *testing.T) {
		t.Parallel()
		p := prompts.GetLandingPagePrompt(data)
		assert.Contains(t, p, "Product: Ledger\n")
		assert.Contains(t, p, "Benefits: get paid, less admin\n")
		assert.Contains(t, p, "Tone: "+prompts.PageToneInstruction(types.ToneBold))
		assert.Contains(t, p, `"socialProof": null,`)
		assert.NotContains(t, p, "Social Proof:")
		assert.NotContains(t, p, "Pricing:")
		for _, w := range prompts.ForbiddenWords {
			assert.Contains(t, p, w)
		}
	})

	t.Run("quotes user text in the expected shape", func(t *testing.T) {
		t.Parallel()
		withProof := data.Clone()
		withProof.SocialProof = &types.SocialProof{Type: "testimonial", Content: "Paid in 3 days", Author: `Ana "AJ" Lee`}
		withProof.Pricing = &types.PricingInfo{Model: "saas", CTAAction: "signup"}

		p := prompts.GetLandingPagePrompt(withProof)
		assert.Contains(t, p, "Social Proof: Paid in 3 days\n")
		assert.Contains(t, p, "Pricing: saas, CTA: signup\n")

		start := strings.Index(p, `"socialProof": `) + len(`"socialProof": `)
		end := strings.Index(p[start:], "}") + start + 1
		var shape map[string]string
		require.NoError(t, json.Unmarshal([]byte(p[start:end]), &shape))
		assert.Equal(t, `Ana "AJ" Lee`, shape["author"])
		assert.Equal(t, "", shape["title"])
	})

	t.Run("missing author defaults to Customer", func(t *testing.T) {
		t.Parallel()
		anon := data.Clone()
		anon.SocialProof = &types.SocialProof{Content: "Love it"}
		assert.Contains(t, prompts.GetLandingPagePrompt(anon), `"author": "Customer"`)
	})
}
