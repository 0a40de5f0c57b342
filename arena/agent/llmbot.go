package agent

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"holdem-arena/arena/engine"
)

// LLMConfig points the LLM agent at an OpenAI-compatible endpoint.
type LLMConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// LLMBot asks a chat-completions model for an action. Unusable or late
// replies degrade to the safest legal action; the runtime's own deadline
// still applies on top of the client timeout here.
type LLMBot struct {
	name   string
	cfg    LLMConfig
	client *http.Client
	log    zerolog.Logger
}

func NewLLMBot(cfg LLMConfig, log zerolog.Logger) Constructor {
	return func(name string) Agent {
		return &LLMBot{
			name:   name,
			cfg:    cfg,
			client: &http.Client{Timeout: 2500 * time.Millisecond},
			log:    log.With().Str("agent", name).Logger(),
		}
	}
}

func (b *LLMBot) Name() string { return b.name }

const llmSystemPrompt = `You are a poker agent playing no-limit Texas Hold'em. ` +
	`Reply with a single JSON object: {"action": "fold"|"check_call"|"raise", "amount": <int or null>}. ` +
	`"amount" is the raise-to total for your current street and is required only for "raise".`

func (b *LLMBot) Decide(view engine.PlayerView) engine.Action {
	obs, _ := json.Marshal(view)
	text, err := b.complete(llmSystemPrompt, string(obs))
	if err != nil {
		b.log.Warn().Err(err).Msg("llm call failed")
		if view.CurrentBet > 0 {
			return engine.Action{Kind: engine.Fold}
		}
		return engine.Action{Kind: engine.CheckCall}
	}
	act, ok := coerceAction(text, view)
	if !ok {
		b.log.Warn().Str("raw", truncate(text, 200)).Msg("llm reply unusable")
		return engine.Action{Kind: engine.CheckCall}
	}
	return act
}

func (b *LLMBot) complete(system, user string) (string, error) {
	base := strings.TrimRight(b.cfg.BaseURL, "/")
	if base == "" {
		base = "https://api.openai.com/v1"
	}
	payload := map[string]any{
		"model": b.cfg.Model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"response_format": map[string]any{"type": "json_object"},
	}
	body, _ := json.Marshal(payload)
	req, err := http.NewRequest(http.MethodPost, base+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.cfg.APIKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("llm http %d: %s", resp.StatusCode, truncate(buf.String(), 400))
	}
	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(buf.Bytes(), &cc); err != nil {
		return "", err
	}
	if len(cc.Choices) == 0 {
		return "", errors.New("no choices returned")
	}
	return cc.Choices[0].Message.Content, nil
}

// coerceAction salvages an action from model output, tolerating prose
// around the JSON and loose amount types.
func coerceAction(raw string, view engine.PlayerView) (engine.Action, bool) {
	raw = strings.TrimSpace(raw)
	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		cleaned := extractJSONObject(raw)
		if cleaned == "" {
			return engine.Action{}, false
		}
		if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
			return engine.Action{}, false
		}
	}

	act := ""
	if v, ok := parsed["action"].(string); ok {
		act = strings.ToLower(strings.TrimSpace(v))
	}
	switch act {
	case "bet":
		act = "raise"
	case "check", "call":
		act = "check_call"
	}

	amount := 0
	if rawAmt, ok := parsed["amount"]; ok && rawAmt != nil {
		switch t := rawAmt.(type) {
		case float64:
			amount = int(t)
		case json.Number:
			if n, err := t.Int64(); err == nil {
				amount = int(n)
			}
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
				amount = n
			}
		}
	}

	switch act {
	case "fold":
		return engine.Action{Kind: engine.Fold}, true
	case "check_call":
		return engine.Action{Kind: engine.CheckCall}, true
	case "raise":
		if amount <= 0 {
			amount = view.MinRaise
		}
		return engine.Action{Kind: engine.Raise, Amount: amount}, true
	}
	return engine.Action{}, false
}

func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	if start < 0 {
		return ""
	}
	end := strings.LastIndex(s, "}")
	if end < start {
		return ""
	}
	return strings.TrimSpace(s[start : end+1])
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
