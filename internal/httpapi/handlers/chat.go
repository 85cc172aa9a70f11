package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bromolabs/bromo-server/internal/ai"
	"github.com/bromolabs/bromo-server/internal/common"
	"github.com/bromolabs/bromo-server/internal/httpapi/middleware"
	"github.com/bromolabs/bromo-server/internal/persona"
	"github.com/bromolabs/bromo-server/internal/pipeline"
)

func userIDFromContext(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(middleware.UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

func adultVerifiedFromContext(c *gin.Context) bool {
	v, ok := c.Get(middleware.AdultVerifiedKey)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

type chatPrefs struct {
	DriftSpeed any `json:"driftSpeed"`
}

type chatReq struct {
	DeviceID       string               `json:"device_id"`
	Messages       []ai.Message         `json:"messages"`
	Mode           string               `json:"mode"`
	Pace           any                  `json:"pace"`
	Prefs          chatPrefs            `json:"prefs"`
	ThreadSummary  string               `json:"threadSummary"`
	RecentMessages []ai.Message         `json:"recentMessages"`
	Memories       []persona.MemoryFact `json:"memories"`
}

// rawPace normalizes the client preference: numbers and numeric strings pass
// through as decimal text, labels pass through as-is.
func rawPace(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		return t
	default:
		return ""
	}
}

// paceFromReq prefers prefs.driftSpeed over the top-level pace field, as the
// clients send either.
func paceFromReq(req *chatReq) string {
	if p := rawPace(req.Prefs.DriftSpeed); p != "" {
		return p
	}
	return rawPace(req.Pace)
}

func (h *Handler) Chat(c *gin.Context) {
	uid, okk := userIDFromContext(c)
	if !okk {
		common.Unauthorized(c)
		return
	}

	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "invalid json")
		return
	}

	summary := req.ThreadSummary
	if summary == "" && req.DeviceID != "" {
		// best-effort cache lookup; a miss or redis failure just means full
		// history goes to the model
		cached, err := h.Redis.GetSummary(c.Request.Context(), req.DeviceID)
		if err != nil {
			log.Printf("summary cache read failed device=%s err=%v", req.DeviceID, err)
		} else {
			summary = cached
		}
	}

	out, err := h.ChatSvc.Respond(c.Request.Context(), pipeline.ChatInput{
		UserID:        uid,
		DeviceID:      req.DeviceID,
		AdultVerified: adultVerifiedFromContext(c),
		Messages:      req.Messages,
		Mode:          persona.ParseMode(req.Mode),
		PaceRaw:       paceFromReq(&req),
		ThreadSummary: summary,
		RecentTail:    req.RecentMessages,
		Memories:      req.Memories,
	})
	if err != nil {
		if errors.Is(err, pipeline.ErrNoUserMessage) {
			common.Fail(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("chat failed uid=%d err=%v", uid, err)
		common.Fail(c, http.StatusInternalServerError, "Chat failed")
		return
	}

	if out.Blocked {
		common.OK(c, gin.H{
			"reply":   out.Reply,
			"blocked": true,
			"reason":  string(out.Reason),
		})
		return
	}
	common.OK(c, gin.H{"reply": out.Reply})
}

type summarizeReq struct {
	DeviceID string       `json:"device_id"`
	Messages []ai.Message `json:"messages"`
}

func (h *Handler) Summarize(c *gin.Context) {
	uid, okk := userIDFromContext(c)
	if !okk {
		common.Unauthorized(c)
		return
	}

	var req summarizeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Messages) == 0 {
		common.Fail(c, http.StatusBadRequest, "Messages array required for summarization")
		return
	}

	summary, err := h.ChatSvc.Summarize(c.Request.Context(), req.Messages)
	if err != nil {
		log.Printf("summarize failed uid=%d err=%v", uid, err)
		common.Fail(c, http.StatusInternalServerError, "Summarization failed")
		return
	}

	if req.DeviceID != "" {
		if err := h.Redis.SetSummary(c.Request.Context(), req.DeviceID, summary); err != nil {
			log.Printf("summary cache write failed device=%s err=%v", req.DeviceID, err)
		}
	}

	common.OK(c, gin.H{"summary": summary})
}
