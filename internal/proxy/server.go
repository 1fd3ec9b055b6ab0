// Package proxy is the serverless-style HTTP facade: it forwards chat
// requests to the upstream model API with the server-held credential and
// exposes the product-link resolver. Every request is handled
// independently; there is no shared mutable state.
package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/glow-labs/glowbot/internal/resolver"
)

// maxCompletionTokens bounds the upstream response length for proxied
// chat requests.
const maxCompletionTokens = 300

const upstreamTimeout = 2 * time.Minute

// Resolver is the product-URL resolution dependency.
type Resolver interface {
	Resolve(ctx context.Context, product string) (string, error)
}

// Server handles /chat and /resolve.
type Server struct {
	upstreamURL string
	apiKey      string
	model       string
	httpClient  *http.Client
	resolver    Resolver
	logger      zerolog.Logger
}

// NewHandler builds the full HTTP handler: routing plus the CORS and
// request-logging middleware.
func NewHandler(upstreamURL, apiKey, model string, res Resolver, logger zerolog.Logger) http.Handler {
	s := &Server{
		upstreamURL: upstreamURL,
		apiKey:      apiKey,
		model:       model,
		httpClient:  &http.Client{Timeout: upstreamTimeout},
		resolver:    res,
		logger:      logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.route)

	return chainMiddlewares(mux, withCORS, withLogging(logger))
}

// route dispatches by path; anything unmapped is a JSON 404.
func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/chat" && r.Method == http.MethodPost:
		s.handleChat(w, r)
	case r.URL.Path == "/resolve" && r.Method == http.MethodGet:
		s.handleResolve(w, r)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	}
}

type chatRequest struct {
	Messages json.RawMessage `json:"messages"`
}

type upstreamChatRequest struct {
	Model               string          `json:"model"`
	Messages            json.RawMessage `json:"messages"`
	MaxCompletionTokens int             `json:"max_completion_tokens"`
}

// handleChat attaches the server-held credential and the fixed model,
// forwards the messages upstream and relays the upstream JSON body
// verbatim. The upstream status is deliberately not re-surfaced: the
// body is passed through as-is with status 200.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if len(req.Messages) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "messages is required"})
		return
	}

	body, err := json.Marshal(upstreamChatRequest{
		Model:               s.model,
		Messages:            req.Messages,
		MaxCompletionTokens: maxCompletionTokens,
	})
	if err != nil {
		s.internalError(w, err)
		return
	}

	upReq, err := http.NewRequestWithContext(r.Context(), http.MethodPost, s.upstreamURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		s.internalError(w, err)
		return
	}
	upReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	upReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(upReq)
	if err != nil {
		s.internalError(w, err)
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		s.internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleResolve maps a product name to a URL. Missing product → 400,
// transport failure while searching → 500; extraction misses come back
// from the resolver as a fallback URL, so they are still a 200.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	product := r.URL.Query().Get("product")

	target, err := s.resolver.Resolve(r.Context(), product)
	if err != nil {
		if errors.Is(err, resolver.ErrEmptyProduct) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "product query param required"})
			return
		}
		s.internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": target})
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.logger.Error().Err(err).Msg("upstream request failed")
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
