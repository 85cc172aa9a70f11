package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bromolabs/bromo-server/internal/ai"
	"github.com/bromolabs/bromo-server/internal/common"
	"github.com/bromolabs/bromo-server/internal/memory"
	"github.com/bromolabs/bromo-server/internal/persona"
)

// ErrNoUserMessage is returned when a chat request carries no usable user
// turn; handlers map it to a 400.
var ErrNoUserMessage = errors.New("no user message provided (messages empty or missing role:'user')")

const (
	tabooRefusal     = "That's not something I do. Let's switch gears."
	adultGateRefusal = "After Dark stays locked until you verify. Switch it back for now."
)

// Sink receives best-effort persistence work. Implementations must not block
// the response path beyond a bounded publish; the service logs and swallows
// every sink error.
type Sink interface {
	PublishChatRun(ctx context.Context, run memory.ChatRun) error
	PublishFactUpsert(ctx context.Context, f memory.Fact) error
}

type ChatInput struct {
	UserID        uint64
	DeviceID      string
	AdultVerified bool

	Messages      []ai.Message
	Mode          persona.Mode
	PaceRaw       string
	ThreadSummary string
	RecentTail    []ai.Message
	Memories      []persona.MemoryFact
}

type ChatOutput struct {
	Reply   string
	Blocked bool
	Reason  BlockReason
}

// Service runs the request-to-prompt pipeline: pace resolution, safety
// gating, memory selection, prompt composition, context assembly, the single
// model call, and reply post-processing.
type Service struct {
	registry     *ai.Registry
	providerName string
	model        string
	record       *persona.Record
	classifier   *Classifier
	sink         Sink
	debugChat    bool
}

func NewService(registry *ai.Registry, providerName, model string, rec *persona.Record, sink Sink, debugChat bool) *Service {
	if rec == nil {
		rec = persona.Default()
	}
	return &Service{
		registry:     registry,
		providerName: providerName,
		model:        model,
		record:       rec,
		classifier:   NewClassifier(),
		sink:         sink,
		debugChat:    debugChat,
	}
}

// lastUserText returns the content of the most recent user turn.
func lastUserText(messages []ai.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	return ""
}

// Respond drives one chat turn end to end. A safety or verification block is
// not an error: the model is never called and the refusal rides back in a
// normal output. Provider failures propagate to the caller.
func (s *Service) Respond(ctx context.Context, in ChatInput) (ChatOutput, error) {
	userText := lastUserText(in.Messages)
	if strings.TrimSpace(userText) == "" {
		return ChatOutput{}, ErrNoUserMessage
	}

	tier := ResolvePace(in.PaceRaw)

	if reason := s.classifier.Classify(userText); reason != ReasonNone {
		if s.debugChat {
			log.Printf("[CHAT DEBUG] blocked mode=%s pace=%s reason=%s", in.Mode, tier, reason)
		}
		out := ChatOutput{Reply: tabooRefusal, Blocked: true, Reason: reason}
		s.recordRun(ctx, in, tier, 0, false, out, userText)
		return out, nil
	}

	if in.Mode == persona.ModeNSFW && !in.AdultVerified {
		if s.debugChat {
			log.Printf("[CHAT DEBUG] blocked mode=%s pace=%s reason=%s", in.Mode, tier, ReasonAdultVerification)
		}
		out := ChatOutput{Reply: adultGateRefusal, Blocked: true, Reason: ReasonAdultVerification}
		s.recordRun(ctx, in, tier, 0, false, out, userText)
		return out, nil
	}

	selected := SelectMemories(in.Memories, in.Mode)
	systemPrompt := persona.Compose(s.record, in.Mode, tier, selected)
	patchApplied := in.Mode == persona.ModeNSFW && tier.PatchEligible()
	temperature := Temperature(in.Mode, tier)
	contextMsgs := BuildContext(systemPrompt, in.Messages, in.ThreadSummary, in.RecentTail)

	if s.debugChat {
		log.Printf("[CHAT DEBUG] request mode=%s pace=%s patch=%t temp=%.2f model=%s msgs=%d memories=%d summary=%t",
			in.Mode, tier, patchApplied, temperature, s.model, len(contextMsgs), len(selected), in.ThreadSummary != "")
	}

	provider, err := s.registry.Get(ctx, s.providerName, s.model)
	if err != nil {
		return ChatOutput{}, err
	}

	raw, err := provider.Chat(ctx, ai.ChatRequest{
		Messages:    contextMsgs,
		Temperature: temperature,
	})
	if err != nil {
		return ChatOutput{}, fmt.Errorf("model call: %w", err)
	}

	reply := SoftenEarlySnap(raw, len(in.Messages))
	out := ChatOutput{Reply: reply}

	s.recordRun(ctx, in, tier, temperature, patchApplied, out, userText)
	s.recordCandidates(ctx, in.DeviceID, userText)
	return out, nil
}

// recordRun publishes the audit row for this turn. Best-effort: failures are
// logged and swallowed, never surfaced.
func (s *Service) recordRun(ctx context.Context, in ChatInput, tier persona.Tier, temperature float64, patchApplied bool, out ChatOutput, userText string) {
	if s.sink == nil {
		return
	}
	runID, err := common.NewULID()
	if err != nil {
		log.Printf("chat run id failed: %v", err)
		return
	}
	run := memory.ChatRun{
		RunID:        runID,
		UserID:       in.UserID,
		DeviceID:     in.DeviceID,
		Mode:         string(in.Mode),
		Pace:         string(tier),
		Model:        s.model,
		Temperature:  temperature,
		PatchApplied: patchApplied,
		Blocked:      out.Blocked,
		BlockReason:  string(out.Reason),
		UserText:     userText,
		ReplyText:    out.Reply,
	}
	if err := s.sink.PublishChatRun(ctx, run); err != nil {
		log.Printf("chat run publish failed run=%s err=%v", runID, err)
	}
}

// recordCandidates publishes heuristic low-confidence facts, best-effort.
func (s *Service) recordCandidates(ctx context.Context, deviceID, userText string) {
	if s.sink == nil || deviceID == "" {
		return
	}
	for _, f := range memory.ExtractCandidates(deviceID, userText) {
		if err := s.sink.PublishFactUpsert(ctx, f); err != nil {
			log.Printf("fact publish failed device=%s key=%s err=%v", deviceID, f.Key, err)
		}
	}
}

const summarizeSystemPrompt = `You are summarizing a conversation between a user and Bromo (an AI companion).

Create a concise 2-3 sentence summary that captures:
- Main topics discussed
- User's current emotional state or context
- Key preferences or facts mentioned

Keep it brief and factual. This will be used as context for future messages.`

// Summarize compacts a full turn history into a short thread summary.
func (s *Service) Summarize(ctx context.Context, messages []ai.Message) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("messages array required for summarization")
	}

	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		speaker := "Bromo"
		if m.Role == "user" {
			speaker = "User"
		}
		b.WriteString(speaker)
		b.WriteString(": ")
		b.WriteString(m.Content)
	}

	provider, err := s.registry.Get(ctx, s.providerName, s.model)
	if err != nil {
		return "", err
	}

	summary, err := provider.Chat(ctx, ai.ChatRequest{
		Messages: []ai.Message{
			{Role: "system", Content: summarizeSystemPrompt},
			{Role: "user", Content: "Summarize this conversation:\n\n" + b.String()},
		},
		Temperature: 0.3,
		MaxTokens:   150,
	})
	if err != nil {
		return "", fmt.Errorf("summarize call: %w", err)
	}
	return summary, nil
}
