package ai_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibedezine_server/internal/ai"
	"vibedezine_server/internal/ai/prompts"
	"vibedezine_server/internal/llm"
	"vibedezine_server/internal/mock"
	"vibedezine_server/internal/types"
)

var _ ai.PageReader = (*mock.PageReader)(nil)

const boldInvoiceCopy = "```json\n" + `{
  "headline": "Stop chasing invoices. Start getting paid.",
  "subheadline": "Ledger tracks every invoice you send and nudges late clients for you.",
  "benefits": ["Know who owes you at a glance", "Get paid days sooner", "Spend Fridays on work, not admin"],
  "cta": "Track my first invoice"
}` + "\n```"

func newGenerator(c llm.Completer) *ai.Generator {
	return ai.NewGenerator(c, nil, nil)
}

func TestGenerateCopy_BoldInvoiceTool(t *testing.T) {
	t.Parallel()

	completer, requests := mock.Replies(boldInvoiceCopy)
	g := newGenerator(completer)

	got, err := g.GenerateCopy(context.Background(), "A tool that helps freelancers track invoices", types.ToneBold)
	require.NoError(t, err)

	assert.NotEmpty(t, got.Headline)
	assert.NotEmpty(t, got.Subheadline)
	assert.Len(t, got.Benefits, 3)
	assert.NotEmpty(t, got.CTA)

	all := strings.ToLower(strings.Join(append([]string{got.Headline, got.Subheadline, got.CTA}, got.Benefits...), " "))
	for _, w := range prompts.ForbiddenWords {
		assert.NotContains(t, all, w)
	}

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Contains(t, req.System, prompts.QuickToneInstruction(types.ToneBold))
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "A tool that helps freelancers track invoices", req.Messages[0].Content)
}

func TestGenerateCopy_UsesToneInstructionForEveryTone(t *testing.T) {
	t.Parallel()

	for _, tone := range append(append([]types.Tone(nil), types.Tones...), "sarcastic") {
		completer, requests := mock.Replies(boldInvoiceCopy)
		_, err := newGenerator(completer).GenerateCopy(context.Background(), "An invoicing app", tone)
		require.NoError(t, err)

		want := tone
		if !tone.Valid() {
			want = types.ToneProfessional
		}
		assert.Contains(t, (*requests)[0].System, "Tone: "+prompts.QuickToneInstruction(want)+"\n", "tone %s", tone)
	}
}

func TestGenerateCopy_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		description string
		reply       string
		code        string
		message     string
	}{
		{"empty description", "   ", "", types.EINVALID, "Description is required"},
		{"too long", strings.Repeat("a", ai.MaxDescriptionChars+1), "", types.EINVALID, "Description must be at most 5000 characters"},
		{"two benefits", "x", `{"headline":"h","subheadline":"s","benefits":["a","b"],"cta":"c"}`, types.EPARSE, "Invalid response format"},
		{"blank benefit", "x", `{"headline":"h","subheadline":"s","benefits":["a"," ","c"],"cta":"c"}`, types.EPARSE, "Invalid response format"},
		{"not json", "x", "Sorry, I can't help with that.", types.EPARSE, "Invalid response format"},
		{"buzzword", "x", `{"headline":"Supercharge your invoicing","subheadline":"s","benefits":["a","b","c"],"cta":"c"}`, types.EPARSE, "Generated copy contains forbidden words"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			completer, _ := mock.Replies(tt.reply)
			_, err := newGenerator(completer).GenerateCopy(context.Background(), tt.description, types.ToneCasual)
			require.Error(t, err)
			assert.Equal(t, tt.code, types.ErrorCode(err))
			assert.Equal(t, tt.message, types.ErrorMessage(err))
		})
	}
}

func TestGenerateCopy_NotConfigured(t *testing.T) {
	t.Parallel()

	_, err := newGenerator(llm.Unconfigured{Provider: "OpenRouter"}).GenerateCopy(context.Background(), "x", types.ToneBold)
	assert.Equal(t, types.ECONFIG, types.ErrorCode(err))
	assert.Equal(t, "OpenRouter API key not configured", types.ErrorMessage(err))
}

func TestGenerateCopy_UpstreamMessage(t *testing.T) {
	t.Parallel()

	completer := &mock.Completer{
		CompleteFn: func(context.Context, llm.Request) (string, error) {
			return "", &types.Error{Code: types.EUPSTREAM, Status: 503, Err: errors.New("unavailable")}
		},
	}
	_, err := newGenerator(completer).GenerateCopy(context.Background(), "x", types.ToneBold)
	assert.Equal(t, "Failed to generate copy", types.ErrorMessage(err))
	assert.Equal(t, 503, types.ErrorStatus(err))
}

func TestAnalyzeURL(t *testing.T) {
	t.Parallel()

	t.Run("sends page text and parses the summary", func(t *testing.T) {
		t.Parallel()

		reader := &mock.PageReader{ReadTextFn: func(_ context.Context, rawURL string) (string, error) {
			assert.Equal(t, "https://ledger.example", rawURL)
			return "Ledger is invoice tracking for freelancers who hate chasing payments.", nil
		}}
		completer, requests := mock.Replies("```json\n{\"productName\":\"Ledger\",\"description\":\"d\",\"targetAudience\":\"freelancers\",\"keyBenefit\":\"k\",\"problem\":\"p\"}\n```")

		got, err := ai.NewGenerator(completer, reader, nil).AnalyzeURL(context.Background(), " https://ledger.example ")
		require.NoError(t, err)
		assert.Equal(t, "Ledger", got.ProductName)
		assert.Equal(t, "freelancers", got.TargetAudience)
		assert.Contains(t, (*requests)[0].Messages[0].Content, "WEBPAGE CONTENT:\nLedger is invoice tracking")
	})

	t.Run("fetch errors pass through", func(t *testing.T) {
		t.Parallel()

		fetchErr := &types.Error{Code: types.ETIMEOUT, Message: "URL fetch timed out", Status: 400}
		reader := &mock.PageReader{ReadTextFn: func(context.Context, string) (string, error) { return "", fetchErr }}
		completer, requests := mock.Replies()

		_, err := ai.NewGenerator(completer, reader, nil).AnalyzeURL(context.Background(), "https://slow.example")
		assert.Same(t, fetchErr, err)
		assert.Empty(t, *requests)
	})

	t.Run("credential checked before fetching", func(t *testing.T) {
		t.Parallel()

		reader := &mock.PageReader{ReadTextFn: func(context.Context, string) (string, error) {
			t.Error("page fetched without credential")
			return "", nil
		}}
		_, err := ai.NewGenerator(llm.Unconfigured{Provider: "OpenRouter"}, reader, nil).AnalyzeURL(context.Background(), "https://x.example")
		assert.Equal(t, types.ECONFIG, types.ErrorCode(err))
	})

	t.Run("url required", func(t *testing.T) {
		t.Parallel()
		_, err := newGenerator(&mock.Completer{}).AnalyzeURL(context.Background(), "")
		assert.Equal(t, "URL is required", types.ErrorMessage(err))
	})
}

const pageCopyReply = `{
  "hero": {"headline": "Get paid on time", "subheadline": "Ledger chases late invoices for you.", "cta": "Start tracking"},
  "benefits": [{"title": "Fewer emails", "description": "Reminders go out on their own."}],
  "problem": null,
  "socialProof": null,
  "finalCta": {"headline": "Your invoices, handled", "cta": "Try Ledger"},
  "metadata": {"title": "Ledger", "description": "Invoice tracking for freelancers"}
}`

func TestGeneratePageCopy(t *testing.T) {
	t.Parallel()

	data := &types.ExtractedProductData{ProductName: "Ledger", Tone: "shouty"}

	t.Run("parses copy and normalizes tone", func(t *testing.T) {
		t.Parallel()

		completer, requests := mock.Replies(pageCopyReply)
		got, err := newGenerator(completer).GeneratePageCopy(context.Background(), data)
		require.NoError(t, err)
		assert.Equal(t, "Get paid on time", got.Hero.Headline)
		assert.Nil(t, got.Problem)
		assert.Equal(t, "Try Ledger", got.FinalCTA.CTA)
		assert.Contains(t, (*requests)[0].Messages[0].Content, prompts.PageToneInstruction(types.ToneProfessional))
		assert.Equal(t, types.Tone("shouty"), data.Tone, "input must not be mutated")
	})

	t.Run("missing final cta", func(t *testing.T) {
		t.Parallel()

		completer, _ := mock.Replies(`{"hero":{"headline":"h","subheadline":"s","cta":"c"},"benefits":[]}`)
		_, err := newGenerator(completer).GeneratePageCopy(context.Background(), data)
		assert.Equal(t, types.EPARSE, types.ErrorCode(err))
	})

	t.Run("data required", func(t *testing.T) {
		t.Parallel()

		_, err := newGenerator(&mock.Completer{}).GeneratePageCopy(context.Background(), nil)
		assert.Equal(t, types.EINVALID, types.ErrorCode(err))
		assert.Equal(t, "Product data is required", types.ErrorMessage(err))
	})

	t.Run("sparse data falls back to tagline", func(t *testing.T) {
		t.Parallel()

		completer, requests := mock.Replies(pageCopyReply)
		sparse := &types.ExtractedProductData{Tagline: "Invoices that chase themselves"}
		got, err := newGenerator(completer).GeneratePageCopy(context.Background(), sparse)
		require.NoError(t, err)
		assert.Equal(t, "Get paid on time", got.Hero.Headline)
		assert.Contains(t, (*requests)[0].Messages[0].Content, "Product: Invoices that chase themselves\n")
		assert.Empty(t, sparse.ProductName, "input must not be mutated")

		completer, _ = mock.Replies(pageCopyReply)
		_, err = newGenerator(completer).GeneratePageCopy(context.Background(), &types.ExtractedProductData{})
		assert.NoError(t, err)
	})
}

func TestConverse_SendsHistoryWithInterviewInstruction(t *testing.T) {
	t.Parallel()

	completer, requests := mock.Replies("What problem does it solve?")
	turns := []types.Turn{
		{Role: types.RoleAssistant, Content: "What are you building?"},
		{Role: types.RoleUser, Content: "Invoice tracking"},
	}

	reply, err := newGenerator(completer).Converse(context.Background(), turns)
	require.NoError(t, err)
	assert.Equal(t, "What problem does it solve?", reply)
	assert.Equal(t, prompts.InterviewSystemPrompt, (*requests)[0].System)
	assert.Equal(t, turns, (*requests)[0].Messages)
}

func TestExtractProductData(t *testing.T) {
	t.Parallel()

	completer, requests := mock.Replies("```json\n" + `{"productName":"Ledger","benefits":["a"],"differentiators":[],"socialProof":null,"pricing":{"model":"saas","pricePoint":null,"ctaAction":"signup"},"tone":"CASUAL"}` + "\n```")
	turns := []types.Turn{{Role: types.RoleUser, Content: "Ledger tracks invoices"}}

	got, err := newGenerator(completer).ExtractProductData(context.Background(), turns)
	require.NoError(t, err)
	assert.Equal(t, "Ledger", got.ProductName)
	assert.Equal(t, types.ToneCasual, got.Tone)
	require.NotNil(t, got.Pricing)
	assert.Nil(t, got.Pricing.PricePoint)
	assert.Contains(t, (*requests)[0].Messages[0].Content, "User: Ledger tracks invoices")
}
