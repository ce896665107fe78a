package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"textify/app/services"

	"go.uber.org/zap"
)

// TextController handles the AI-backed text enhancement endpoints. The
// Gemini credential lives server-side; the client only ever sees these
// routes.
type TextController struct {
	textService *services.TextService
	logger      *zap.Logger
}

// NewTextController creates a new TextController. A nil service marks the
// feature as not configured.
func NewTextController(textService *services.TextService, logger *zap.Logger) *TextController {
	return &TextController{
		textService: textService,
		logger:      logger,
	}
}

type textRequest struct {
	Text   string `json:"text"`
	Target string `json:"target,omitempty"`
}

// CorrectGrammar handles grammar correction requests
func (tc *TextController) CorrectGrammar(w http.ResponseWriter, r *http.Request) {
	req, ok := tc.decode(w, r)
	if !ok {
		return
	}

	corrected, err := tc.textService.CorrectGrammar(r.Context(), req.Text)
	if err != nil {
		tc.logger.Error("grammar correction failed", zap.Error(err))
		tc.sendError(w, "Grammar correction failed", http.StatusBadGateway)
		return
	}

	tc.sendJSON(w, map[string]string{"corrected": corrected})
}

// Translate handles translation requests
func (tc *TextController) Translate(w http.ResponseWriter, r *http.Request) {
	req, ok := tc.decode(w, r)
	if !ok {
		return
	}
	if req.Target == "" {
		tc.sendError(w, "Target language is required", http.StatusBadRequest)
		return
	}

	translated, err := tc.textService.Translate(r.Context(), req.Text, req.Target)
	if err != nil {
		tc.logger.Error("translation failed", zap.Error(err))
		tc.sendError(w, "Translation failed", http.StatusBadGateway)
		return
	}

	tc.sendJSON(w, map[string]string{"translated": translated})
}

// decode validates the shared request shape and the feature's
// availability. It writes the error response itself when it returns false.
func (tc *TextController) decode(w http.ResponseWriter, r *http.Request) (*textRequest, bool) {
	if tc.textService == nil {
		tc.sendError(w, "AI features are not configured", http.StatusServiceUnavailable)
		return nil, false
	}

	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		tc.sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	if strings.TrimSpace(req.Text) == "" {
		tc.sendError(w, "Text is required", http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}

func (tc *TextController) sendJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (tc *TextController) sendError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
