package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bromolabs/bromo-server/internal/common"
	"github.com/bromolabs/bromo-server/internal/memory"
	"github.com/bromolabs/bromo-server/internal/persona"
)

func (h *Handler) ListMemories(c *gin.Context) {
	deviceID := c.Query("device_id")
	if deviceID == "" {
		common.Fail(c, http.StatusBadRequest, "device_id required")
		return
	}

	facts, err := h.MemRepo.ListFacts(c.Request.Context(), deviceID, c.Query("mode"))
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch memories")
		return
	}

	common.OK(c, gin.H{"memories": facts})
}

type createMemoryReq struct {
	DeviceID string  `json:"device_id"`
	Key      string  `json:"key"`
	Value    string  `json:"value"`
	Mode     *string `json:"mode"`
}

// CreateMemory is an upsert on (device_id, key). Explicit writes carry high
// confidence; heuristic candidates arrive through the queue at low.
func (h *Handler) CreateMemory(c *gin.Context) {
	var req createMemoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.DeviceID == "" || req.Key == "" || req.Value == "" {
		common.Fail(c, http.StatusBadRequest, "device_id, key, and value required")
		return
	}

	f := &memory.Fact{
		DeviceID:   req.DeviceID,
		Key:        req.Key,
		Value:      req.Value,
		Mode:       req.Mode,
		Confidence: persona.ConfidenceHigh,
	}
	if err := h.MemRepo.UpsertFact(c.Request.Context(), f); err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to create memory")
		return
	}

	common.OK(c, gin.H{"memory": f})
}

type updateMemoryReq struct {
	Value string  `json:"value"`
	Mode  *string `json:"mode"`
}

func (h *Handler) UpdateMemory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, "invalid memory id")
		return
	}

	var req updateMemoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Value == "" {
		common.Fail(c, http.StatusBadRequest, "value required")
		return
	}

	f, err := h.MemRepo.UpdateFact(c.Request.Context(), id, req.Value, req.Mode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, "Memory not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, "Failed to update memory")
		return
	}

	common.OK(c, gin.H{"memory": f})
}

func (h *Handler) DeleteMemory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, "invalid memory id")
		return
	}

	f, err := h.MemRepo.DeleteFact(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, "Memory not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, "Failed to delete memory")
		return
	}

	common.OK(c, gin.H{"deleted": f})
}
