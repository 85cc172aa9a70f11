package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/bromolabs/bromo-server/internal/ai"
	"github.com/bromolabs/bromo-server/internal/memory"
	"github.com/bromolabs/bromo-server/internal/persona"
)

type recordingProvider struct {
	calls []ai.ChatRequest
	reply string
}

func (p *recordingProvider) Chat(ctx context.Context, req ai.ChatRequest) (string, error) {
	_ = ctx
	p.calls = append(p.calls, req)
	if p.reply == "" {
		return "ok", nil
	}
	return p.reply, nil
}

type recordingSink struct {
	runs  []memory.ChatRun
	facts []memory.Fact
}

func (s *recordingSink) PublishChatRun(ctx context.Context, run memory.ChatRun) error {
	_ = ctx
	s.runs = append(s.runs, run)
	return nil
}

func (s *recordingSink) PublishFactUpsert(ctx context.Context, f memory.Fact) error {
	_ = ctx
	s.facts = append(s.facts, f)
	return nil
}

func newTestService(prov *recordingProvider, sink Sink) *Service {
	reg := ai.NewRegistry()
	reg.Register("fake", func(ctx context.Context, model string) (ai.Provider, error) {
		_ = ctx
		_ = model
		return prov, nil
	})
	return NewService(reg, "fake", "test-model", persona.Default(), sink, false)
}

func TestRespond_SFWSingleTurn(t *testing.T) {
	prov := &recordingProvider{reply: "hey yourself"}
	sink := &recordingSink{}
	svc := newTestService(prov, sink)

	out, err := svc.Respond(context.Background(), ChatInput{
		UserID:   1,
		Messages: []ai.Message{{Role: "user", Content: "hey what's up"}},
		Mode:     persona.ModeSFW,
	})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if out.Blocked {
		t.Fatalf("unexpected block: %+v", out)
	}
	if out.Reply != "hey yourself" {
		t.Fatalf("unexpected reply: %q", out.Reply)
	}
	if len(prov.calls) != 1 {
		t.Fatalf("expected exactly one model call, got %d", len(prov.calls))
	}

	sys := prov.calls[0].Messages[0]
	if sys.Role != "system" {
		t.Fatalf("first message should be system, got %q", sys.Role)
	}
	if !strings.Contains(sys.Content, "SFW mode") {
		t.Fatalf("expected SFW base prompt")
	}
	if strings.Contains(sys.Content, "BEHAVIOR PATCH") {
		t.Fatalf("patch must not apply in SFW")
	}
	if got := prov.calls[0].Temperature; got != 0.7 {
		t.Fatalf("SFW temperature = %v, want 0.7", got)
	}
}

func TestRespond_TabooBlocksWithoutModelCall(t *testing.T) {
	prov := &recordingProvider{}
	sink := &recordingSink{}
	svc := newTestService(prov, sink)

	out, err := svc.Respond(context.Background(), ChatInput{
		UserID:   1,
		Messages: []ai.Message{{Role: "user", Content: "my stepbrother and I..."}},
		Mode:     persona.ModeSFW,
	})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if !out.Blocked || out.Reason != ReasonIncestStepfamily {
		t.Fatalf("expected incest_stepfamily block, got %+v", out)
	}
	if len(prov.calls) != 0 {
		t.Fatalf("model must not be called on a blocked turn, got %d calls", len(prov.calls))
	}
	// blocked turns still land in the audit log
	if len(sink.runs) != 1 || !sink.runs[0].Blocked || sink.runs[0].BlockReason != string(ReasonIncestStepfamily) {
		t.Fatalf("expected blocked run record, got %+v", sink.runs)
	}
}

func TestRespond_AdultGate(t *testing.T) {
	prov := &recordingProvider{}
	svc := newTestService(prov, &recordingSink{})

	out, err := svc.Respond(context.Background(), ChatInput{
		UserID:        1,
		AdultVerified: false,
		Messages:      []ai.Message{{Role: "user", Content: "hey"}},
		Mode:          persona.ModeNSFW,
		PaceRaw:       "AFTER_DARK",
	})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if !out.Blocked || out.Reason != ReasonAdultVerification {
		t.Fatalf("expected adult_verification_required, got %+v", out)
	}
	if len(prov.calls) != 0 {
		t.Fatalf("model must not be called behind the gate")
	}
}

func TestRespond_NSFWVerifiedAppliesPatchAndTemperature(t *testing.T) {
	prov := &recordingProvider{}
	svc := newTestService(prov, nil)

	_, err := svc.Respond(context.Background(), ChatInput{
		UserID:        1,
		AdultVerified: true,
		Messages:      []ai.Message{{Role: "user", Content: "hey"}},
		Mode:          persona.ModeNSFW,
		PaceRaw:       "9",
	})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if len(prov.calls) != 1 {
		t.Fatalf("expected one model call, got %d", len(prov.calls))
	}
	sys := prov.calls[0].Messages[0].Content
	if !strings.Contains(sys, "BEHAVIOR PATCH") {
		t.Fatalf("patch should apply at AFTER_DARK in NSFW")
	}
	if got := prov.calls[0].Temperature; got != 0.95 {
		t.Fatalf("AFTER_DARK temperature = %v, want 0.95", got)
	}
}

func TestRespond_SummaryContextNoDuplicates(t *testing.T) {
	prov := &recordingProvider{}
	svc := newTestService(prov, nil)

	full := []ai.Message{
		{Role: "user", Content: "one"},
		{Role: "assistant", Content: "two"},
		{Role: "user", Content: "three"},
		{Role: "assistant", Content: "four"},
		{Role: "user", Content: "five"},
	}
	tail := full[len(full)-3:]

	_, err := svc.Respond(context.Background(), ChatInput{
		UserID:        1,
		Messages:      full,
		Mode:          persona.ModeSFW,
		ThreadSummary: "earlier stuff",
		RecentTail:    tail,
	})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}

	counts := map[string]int{}
	for _, m := range prov.calls[0].Messages {
		if m.Role != "system" {
			counts[m.Content]++
		}
	}
	for _, m := range full {
		if counts[m.Content] != 1 {
			t.Fatalf("turn %q sent %d times", m.Content, counts[m.Content])
		}
	}
}

func TestRespond_NoUserMessage(t *testing.T) {
	prov := &recordingProvider{}
	svc := newTestService(prov, nil)

	_, err := svc.Respond(context.Background(), ChatInput{
		UserID:   1,
		Messages: []ai.Message{{Role: "assistant", Content: "hello"}},
		Mode:     persona.ModeSFW,
	})
	if err != ErrNoUserMessage {
		t.Fatalf("expected ErrNoUserMessage, got %v", err)
	}
	if len(prov.calls) != 0 {
		t.Fatalf("model must not be called without a user turn")
	}
}

func TestRespond_SoftensEarlySnap(t *testing.T) {
	prov := &recordingProvider{reply: "What do you want?"}
	svc := newTestService(prov, nil)

	out, err := svc.Respond(context.Background(), ChatInput{
		UserID:   1,
		Messages: []ai.Message{{Role: "user", Content: "hi"}},
		Mode:     persona.ModeSFW,
	})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if out.Reply != "Yeah. I'm here." {
		t.Fatalf("expected softened opener, got %q", out.Reply)
	}
}

func TestRespond_PublishesExtractedFacts(t *testing.T) {
	prov := &recordingProvider{}
	sink := &recordingSink{}
	svc := newTestService(prov, sink)

	_, err := svc.Respond(context.Background(), ChatInput{
		UserID:   1,
		DeviceID: "dev-1",
		Messages: []ai.Message{{Role: "user", Content: "i really like kayaking at dawn"}},
		Mode:     persona.ModeSFW,
	})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if len(sink.facts) != 1 {
		t.Fatalf("expected 1 candidate fact, got %d", len(sink.facts))
	}
	f := sink.facts[0]
	if f.DeviceID != "dev-1" || f.Key != "likes" || f.Confidence != persona.ConfidenceLow {
		t.Fatalf("unexpected fact: %+v", f)
	}
}

func TestSummarize(t *testing.T) {
	prov := &recordingProvider{reply: "They talked about boats."}
	svc := newTestService(prov, nil)

	sum, err := svc.Summarize(context.Background(), []ai.Message{
		{Role: "user", Content: "boats?"},
		{Role: "assistant", Content: "boats."},
	})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if sum != "They talked about boats." {
		t.Fatalf("unexpected summary: %q", sum)
	}

	req := prov.calls[0]
	if req.Temperature != 0.3 || req.MaxTokens != 150 {
		t.Fatalf("unexpected sampling params: temp=%v max=%d", req.Temperature, req.MaxTokens)
	}
	user := req.Messages[1].Content
	if !strings.Contains(user, "User: boats?") || !strings.Contains(user, "Bromo: boats.") {
		t.Fatalf("conversation transcript malformed: %q", user)
	}
}
