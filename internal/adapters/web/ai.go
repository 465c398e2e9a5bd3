package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"ibms-backend/internal/ai"
)

type recognizeRequest struct {
	Image string `json:"image"` // base64, with or without data-URI prefix
}

// recognizeItem handles POST /api/inventory/ai/recognize/.
func (h *Handler) recognizeItem(w http.ResponseWriter, r *http.Request) {
	if h.recognizer == nil {
		writeError(w, r, "image recognition is not configured", "AI_UNCONFIGURED", http.StatusInternalServerError)
		return
	}
	var req recognizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if req.Image == "" {
		writeError(w, r, "image is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	rec, err := h.recognizer.RecognizeItem(r.Context(), req.Image)
	if err != nil {
		if errors.Is(err, ai.ErrUnparsableReply) {
			writeError(w, r, "could not identify the product", "AI_UNPARSABLE", http.StatusInternalServerError)
			return
		}
		writeError(w, r, "image recognition failed", "AI_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"name":        rec.Name,
		"description": rec.Description,
	})
}
