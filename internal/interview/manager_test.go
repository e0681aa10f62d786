package interview_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibedezine_server/internal/ai"
	"vibedezine_server/internal/ai/prompts"
	"vibedezine_server/internal/interview"
	"vibedezine_server/internal/llm"
	"vibedezine_server/internal/mock"
	"vibedezine_server/internal/store"
	"vibedezine_server/internal/types"
)

var _ interview.Agent = (*ai.Generator)(nil)

const extractionReply = "```json\n" + `{
  "productName": "Ledger",
  "tagline": "Invoices that chase themselves",
  "targetAudience": "freelance designers",
  "problem": "late payments",
  "solution": "automatic reminders",
  "benefits": ["paid sooner", "less admin", "clear cash flow"],
  "differentiators": ["no setup"],
  "socialProof": null,
  "pricing": null,
  "tone": "casual"
}` + "\n```"

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func newManager(c llm.Completer, repo store.SessionRepository, opts ...interview.Option) *interview.Manager {
	ids := 0
	opts = append([]interview.Option{
		interview.WithClock(func() time.Time { return fixedNow }),
		interview.WithIDGenerator(func() string { ids++; return fmt.Sprintf("sess-%d", ids) }),
	}, opts...)
	return interview.NewManager(ai.NewGenerator(c, nil, nil), repo, opts...)
}

func TestAdvance_FullInterview(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := store.NewMemory()
	completer, requests := mock.Replies(
		"What are you building? Give me the quick elevator pitch.",
		"Got it. What's the most painful part of invoicing today?",
		prompts.CompletionSentence,
		extractionReply,
	)
	m := newManager(completer, repo)

	first, err := m.Advance(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", first.SessionID)
	assert.False(t, first.IsComplete)
	assert.Nil(t, first.ExtractedData)

	_, err = m.Advance(ctx, first.SessionID, "Ledger tracks invoices for freelancers")
	require.NoError(t, err)

	last, err := m.Advance(ctx, first.SessionID, "Clients pay late and I forget to follow up")
	require.NoError(t, err)
	assert.Equal(t, prompts.CompletionSentence, last.Message)
	assert.True(t, last.IsComplete)
	require.NotNil(t, last.ExtractedData)
	assert.Equal(t, "Ledger", last.ExtractedData.ProductName)
	assert.Equal(t, types.ToneCasual, last.ExtractedData.Tone)

	session, err := m.Get(ctx, first.SessionID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusComplete, session.Status)
	assert.Equal(t, fixedNow, session.CreatedAt)
	require.Len(t, session.Messages, 5)
	assert.Equal(t, types.RoleAssistant, session.Messages[0].Role)
	assert.Equal(t, types.RoleUser, session.Messages[1].Role)

	require.Len(t, *requests, 4)
	assert.Equal(t, prompts.InterviewSystemPrompt, (*requests)[2].System)
	assert.Len(t, (*requests)[2].Messages, 4, "full history is sent every turn")
	assert.Contains(t, (*requests)[3].Messages[0].Content, "User: Clients pay late")
}

func TestAdvance_NeverCompletesWithoutPhrase(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	completer := &mock.Completer{CompleteFn: func(context.Context, llm.Request) (string, error) {
		return "Interesting. Tell me more?", nil
	}}
	m := newManager(completer, store.NewMemory())

	res, err := m.Advance(ctx, "", "")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		res, err = m.Advance(ctx, res.SessionID, fmt.Sprintf("answer %d", i))
		require.NoError(t, err)
		assert.False(t, res.IsComplete)
	}

	session, err := m.Get(ctx, res.SessionID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusInterviewing, session.Status)
	assert.Len(t, session.Messages, 11)
}

func TestAdvance_UnknownSessionStartsFresh(t *testing.T) {
	t.Parallel()

	completer, _ := mock.Replies("What are you building?")
	res, err := newManager(completer, store.NewMemory()).Advance(context.Background(), "does-not-exist", "hello")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", res.SessionID)
}

func TestAdvance_MissingCredentialCreatesNothing(t *testing.T) {
	t.Parallel()

	repo := store.NewMemory()
	m := newManager(llm.Unconfigured{Provider: "OpenRouter"}, repo)

	_, err := m.Advance(context.Background(), "", "hello")
	require.Error(t, err)
	assert.Equal(t, types.ECONFIG, types.ErrorCode(err))

	_, err = repo.GetSession(context.Background(), "sess-1")
	assert.Equal(t, types.ENOTFOUND, types.ErrorCode(err))
}

func TestAdvance_UpstreamFailureKeepsUserTurnOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	calls := 0
	completer := &mock.Completer{CompleteFn: func(context.Context, llm.Request) (string, error) {
		calls++
		if calls == 1 {
			return "What are you building?", nil
		}
		return "", &types.Error{Code: types.EUPSTREAM, Status: 429, Err: errors.New("rate limited")}
	}}
	m := newManager(completer, store.NewMemory())

	res, err := m.Advance(ctx, "", "")
	require.NoError(t, err)

	_, err = m.Advance(ctx, res.SessionID, "An invoicing tool")
	require.Error(t, err)
	assert.Equal(t, "Failed to get response", types.ErrorMessage(err))
	assert.Equal(t, 429, types.ErrorStatus(err))

	session, err := m.Get(ctx, res.SessionID)
	require.NoError(t, err)
	require.Len(t, session.Messages, 2)
	assert.Equal(t, types.RoleUser, session.Messages[1].Role)
}

func TestAdvance_FailedExtractionThenRetry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	completer, _ := mock.Replies(
		prompts.CompletionSentence,
		"not json at all",
		extractionReply,
	)
	m := newManager(completer, store.NewMemory())

	res, err := m.Advance(ctx, "", "Ledger: invoices for freelancers, that's all")
	require.NoError(t, err)
	assert.False(t, res.IsComplete)
	assert.Nil(t, res.ExtractedData)

	session, err := m.Get(ctx, res.SessionID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusExtracting, session.Status)

	retried, err := m.Extract(ctx, res.SessionID)
	require.NoError(t, err)
	assert.True(t, retried.IsComplete)
	assert.Equal(t, "Ledger", retried.ExtractedData.ProductName)

	again, err := m.Extract(ctx, res.SessionID)
	require.NoError(t, err, "complete sessions return existing data without a model call")
	assert.Equal(t, retried.ExtractedData, again.ExtractedData)
}

func TestAdvance_NullExtractionStaysExtracting(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	completer, _ := mock.Replies(
		prompts.CompletionSentence,
		"```json\nnull\n```",
		extractionReply,
	)
	m := newManager(completer, store.NewMemory())

	res, err := m.Advance(ctx, "", "Ledger: invoices for freelancers")
	require.NoError(t, err)
	assert.False(t, res.IsComplete)
	assert.Nil(t, res.ExtractedData)

	session, err := m.Get(ctx, res.SessionID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusExtracting, session.Status)
	assert.Nil(t, session.ExtractedData)

	retried, err := m.Extract(ctx, res.SessionID)
	require.NoError(t, err)
	assert.True(t, retried.IsComplete)
	assert.Equal(t, "Ledger", retried.ExtractedData.ProductName)
}

func TestAdvance_CompleteIsTerminal(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	completer, requests := mock.Replies(
		prompts.CompletionSentence,
		extractionReply,
		"Sure, "+prompts.CompletionSentence,
		"Anything else?",
	)
	m := newManager(completer, store.NewMemory())

	res, err := m.Advance(ctx, "", "Ledger")
	require.NoError(t, err)
	require.True(t, res.IsComplete)

	for _, msg := range []string{"one more thing", "and another"} {
		res, err = m.Advance(ctx, res.SessionID, msg)
		require.NoError(t, err)
		assert.True(t, res.IsComplete)
		require.NotNil(t, res.ExtractedData)
		assert.Equal(t, "Ledger", res.ExtractedData.ProductName)
	}
	assert.Len(t, *requests, 4, "extraction never reruns automatically")

	session, err := m.Get(ctx, res.SessionID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusComplete, session.Status)
}

func TestExtract_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	completer, _ := mock.Replies("What are you building?")
	m := newManager(completer, store.NewMemory())

	_, err := m.Extract(ctx, "missing")
	assert.Equal(t, types.ENOTFOUND, types.ErrorCode(err))

	res, err := m.Advance(ctx, "", "")
	require.NoError(t, err)
	_, err = m.Extract(ctx, res.SessionID)
	assert.Equal(t, types.EINVALID, types.ErrorCode(err))
}

func TestGet_EmptyID(t *testing.T) {
	t.Parallel()

	m := newManager(&mock.Completer{}, store.NewMemory())
	_, err := m.Get(context.Background(), "")
	assert.Equal(t, "Session not found", types.ErrorMessage(err))
}

func TestWithDetector(t *testing.T) {
	t.Parallel()

	completer, _ := mock.Replies("DONE", extractionReply)
	m := newManager(completer, store.NewMemory(), interview.WithDetector(interview.DetectorFunc(func(reply string) bool {
		return reply == "DONE"
	})))

	res, err := m.Advance(context.Background(), "", "Ledger")
	require.NoError(t, err)
	assert.True(t, res.IsComplete)
}

func TestWithLogger_NilKeepsDefault(t *testing.T) {
	t.Parallel()

	completer, _ := mock.Replies("What are you building?")
	m := newManager(completer, store.NewMemory(), interview.WithLogger(nil))

	res, err := m.Advance(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, "What are you building?", res.Message)
}

func TestPhraseDetector(t *testing.T) {
	t.Parallel()

	d := interview.DefaultDetector()
	assert.True(t, d.Done(prompts.CompletionSentence))
	assert.True(t, d.Done("OK! LET ME GENERATE YOUR LANDING PAGE."))
	assert.False(t, d.Done("Let me ask about your landing page goals."))
	assert.False(t, interview.PhraseDetector{}.Done("anything"))
}
