package advisor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/i474232898/greentrack/internal/llm/openrouter"
	"github.com/i474232898/greentrack/internal/metrics"
)

const upstreamSource = "openrouter"

// SystemPrompt fixes the six-step structure and the allowed markup.
const SystemPrompt = `You are GreenLedger AI, a professional sustainability advisor for Indian homes, schools, and small businesses.

GOAL: Whenever solar panels or renewable energy are recommended, ALWAYS include:
- A brief setup process (in 2–3 clear steps)
- Estimated cost range (₹)
- Expected monthly savings (₹)
- Payback period (years)
- Estimated CO₂ reduction (tons/year)
- A relevant government subsidy or policy with clickable link

RESPONSE FORMAT (ALWAYS FOLLOW THIS STRUCTURE):
<ol>
  <li><b>Step 1 — Current Energy Efficiency:</b> Short advice on appliance optimization before solar. <i>Expected benefit:</i> Reduced baseline energy usage.</li>
  <li><b>Step 2 — Renewable Transition (Solar Setup):</b> Explain setup in 2–3 lines: system capacity, cost (₹), installation time. <i>Expected benefit:</i> Reduced grid dependency.</li>
  <li><b>Step 3 — Financial & Environmental Impact:</b> Monthly savings (₹X–₹Y), payback period (~X years), annual CO₂ reduction (~X tons/year). <i>Expected benefit:</i> Long-term cost reduction.</li>
  <li><b>Step 4 — Government Support:</b> 1–2 verified Indian schemes with clickable links using <a href="...">text</a>.</li>
  <li><b>Step 5 — Maintenance & Monitoring:</b> 1–2 steps to maintain efficiency. <i>Expected benefit:</i> Optimal performance year-round.</li>
  <li><b>Step 6 — Final Recommendation:</b> Short actionable summary with concrete savings estimate.</li>
</ol>

STYLE RULES:
- Formal, structured step-by-step format using <ol> and <li>
- Real numeric estimates for ₹ savings, ROI, and CO₂ cuts (rounded)
- NO formulas or calculation steps shown
- Business-friendly tone (like a sustainability consultant)
- Use only: <b>, <i>, <a>, <ol>, <li>, <br>
- Use Indian conventions (₹, kW, month/year)`

// ChatCompleter is the subset of the OpenRouter client the responder needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error)
}

// ModelSettings are forwarded verbatim in every completion request.
type ModelSettings struct {
	Model        string
	Temperature  float64
	MaxTokens    int
	HistoryLimit int
}

// Responder answers sustainability questions, preferring the chat model and
// falling back to the canned catalog.
type Responder struct {
	client   ChatCompleter
	settings ModelSettings
	catalog  *Catalog
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewResponder builds a responder. A nil client makes every reply come from
// the catalog without any network call.
func NewResponder(client ChatCompleter, settings ModelSettings, catalog *Catalog, m *metrics.Metrics, logger *zap.Logger) *Responder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings.HistoryLimit <= 0 {
		settings.HistoryLimit = 10
	}
	return &Responder{
		client:   client,
		settings: settings,
		catalog:  catalog,
		metrics:  m,
		logger:   logger.Named("advisor.responder"),
	}
}

// Respond never fails. history is the conversation before userText.
func (r *Responder) Respond(ctx context.Context, userText string, history []Message) Reply {
	if r.client == nil {
		return r.fallback(userText)
	}

	start := time.Now()
	resp, err := r.client.CreateChatCompletion(ctx, r.buildRequest(userText, history))
	if err != nil {
		r.metrics.ObserveUpstream(upstreamSource, metrics.OutcomeFallback, time.Since(start))
		r.logger.Warn("chat completion failed, using canned advice",
			zap.String("source", upstreamSource),
			zap.String("outcome", metrics.OutcomeFallback),
			zap.Error(err),
		)
		return r.fallback(userText)
	}

	content, ok := resp.FirstContent()
	if !ok {
		r.metrics.ObserveUpstream(upstreamSource, metrics.OutcomeFallback, time.Since(start))
		r.logger.Warn("chat completion returned no content, using canned advice",
			zap.String("source", upstreamSource),
			zap.Int("choices", len(resp.Choices)),
		)
		return r.fallback(userText)
	}

	r.metrics.ObserveUpstream(upstreamSource, metrics.OutcomeLive, time.Since(start))
	r.metrics.ObserveAdvisorReply(string(SourceLLM))
	return Reply{Content: content, Source: SourceLLM}
}

// Fallback renders the canned advice matching userText. The output depends
// only on userText.
func (r *Responder) Fallback(userText string) (string, error) {
	return Render(r.catalog.Match(userText))
}

func (r *Responder) fallback(userText string) Reply {
	content, err := r.Fallback(userText)
	if err != nil {
		// The catalog is embedded; a render failure is a programming error.
		r.logger.Error("render canned advice", zap.Error(err))
	}
	r.metrics.ObserveAdvisorReply(string(SourceFallback))
	return Reply{Content: content, Source: SourceFallback}
}

func (r *Responder) buildRequest(userText string, history []Message) openrouter.ChatCompletionRequest {
	if len(history) > r.settings.HistoryLimit {
		history = history[len(history)-r.settings.HistoryLimit:]
	}

	messages := make([]openrouter.Message, 0, len(history)+2)
	messages = append(messages, openrouter.Message{Role: string(RoleSystem), Content: SystemPrompt})
	for _, m := range history {
		messages = append(messages, openrouter.Message{Role: string(m.Role), Content: m.Content})
	}
	messages = append(messages, openrouter.Message{Role: string(RoleUser), Content: userText})

	return openrouter.ChatCompletionRequest{
		Model:       r.settings.Model,
		Messages:    messages,
		Temperature: r.settings.Temperature,
		MaxTokens:   r.settings.MaxTokens,
	}
}
