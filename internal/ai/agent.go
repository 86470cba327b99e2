package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// ErrNoAPIKey is returned when the assistant is not configured.
var ErrNoAPIKey = errors.New("assistant is not configured: GEMINI_API_KEY is empty")

// ErrTooManyToolCalls is returned when the model keeps asking for tools.
var ErrTooManyToolCalls = errors.New("assistant could not complete the request")

// maxToolRounds bounds the call/response loop with the model.
const maxToolRounds = 5

type Agent struct {
	apiKey string
	model  string
	tools  *Toolbox
	logger *zap.Logger
}

func NewAgent(apiKey, model string, tools *Toolbox, logger *zap.Logger) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{apiKey: apiKey, model: model, tools: tools, logger: logger}
}

func (a *Agent) Configured() bool {
	return a.apiKey != ""
}

// Run answers one staff question, calling the read-only tools as the model asks.
func (a *Agent) Run(ctx context.Context, userMessage string) (string, error) {
	if a.apiKey == "" {
		return "", ErrNoAPIKey
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(a.apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel(a.model)
	model.Tools = []*genai.Tool{{FunctionDeclarations: Declarations()}}

	session := model.StartChat()
	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt(a.tools.now(), userMessage)))
	if err != nil {
		return "", err
	}

	for round := 0; ; round++ {
		calls, reply, err := nextStep(resp, round)
		if err != nil || calls == nil {
			return reply, err
		}

		replies := make([]genai.Part, 0, len(calls))
		for _, call := range calls {
			a.logger.Info("assistant tool call", zap.String("tool", call.Name))
			out, err := a.tools.Dispatch(ctx, call.Name, call.Args)
			if err != nil {
				a.logger.Warn("assistant tool failed", zap.String("tool", call.Name), zap.Error(err))
				out = map[string]any{"error": err.Error()}
			}
			replies = append(replies, genai.FunctionResponse{Name: call.Name, Response: out})
		}

		resp, err = session.SendMessage(ctx, replies...)
		if err != nil {
			return "", err
		}
	}
}

// nextStep returns the tool calls to run, or the final reply once the model
// stops calling tools. A model still calling tools after maxToolRounds gets
// ErrTooManyToolCalls.
func nextStep(resp *genai.GenerateContentResponse, round int) ([]genai.FunctionCall, string, error) {
	calls := functionCalls(resp)
	if len(calls) == 0 {
		return nil, printResponse(resp), nil
	}
	if round >= maxToolRounds {
		return nil, "", ErrTooManyToolCalls
	}
	return calls, "", nil
}

func systemPrompt(now time.Time, userMessage string) string {
	return fmt.Sprintf(`SYSTEM: Today is %s. You are the assistant of a tea and coffee shop point of sale.

	RULES:
	1. STOCK: If a user asks for PRICE, STOCK, CATEGORY or whether something is low or out:
	   - You MUST call 'check_inventory' and read the JSON to answer.
	   - Do NOT say "I cannot get the price". You CAN get it by checking inventory.

	2. SALES: For today's totals, counts or monthly revenue use 'get_dashboard_summary'.
	   For individual sales made today use 'get_today_sales'.

	3. REPORT: If the user wants the end-of-day report, call 'generate_daily_summary'
	   and return its text unchanged.

	4. You cannot record, edit or delete sales. Tell the user to use the sale form.

	USER: %s`, now.Format("2006-01-02"), userMessage)
}

// --- HELPER FUNCTIONS ---

func functionCalls(resp *genai.GenerateContentResponse) []genai.FunctionCall {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	var calls []genai.FunctionCall
	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			calls = append(calls, funcCall)
		}
	}
	return calls
}

func printResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "I completed the action."
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
