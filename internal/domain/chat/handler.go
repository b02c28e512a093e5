package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"asthmacare/internal/middleware"
	"asthmacare/internal/platform/apperrors"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/chat/messages", func(cr chi.Router) {
		cr.Post("/", sendMessageHandler(svc))
		cr.Get("/", listMessagesHandler(svc))
	})
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

type messageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// sendMessageHandler godoc
// @Summary Enviar mensaje al asistente
// @Description Guarda el mensaje del usuario y devuelve la respuesta del asistente. La respuesta puede demorar por la latencia simulada del responder.
// @Tags chat
// @Accept json
// @Produce json
// @Param payload body sendMessageRequest true "Contenido del mensaje"
// @Success 200 {object} messageResponse
// @Failure 400 {string} string "invalid json / contenido vacío"
// @Failure 401 {string} string "unauthorized"
// @Router /chat/messages [post]
func sendMessageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		var req sendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		reply, err := svc.Send(r.Context(), claims.UserID, req.Content)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, apperrors.Message(apperrors.ErrTransportFailure), http.StatusBadGateway)
			return
		}

		writeJSON(w, http.StatusOK, toMessageResponse(reply))
	}
}

func listMessagesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, apperrors.Message(apperrors.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}

		items, err := svc.History(r.Context(), claims.UserID, limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]messageResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMessageResponse(m))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func toMessageResponse(m Message) messageResponse {
	return messageResponse{
		ID:        m.ID,
		Role:      string(m.Role),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
