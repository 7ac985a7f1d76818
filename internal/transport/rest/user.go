package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/replyflow/replyflow-backend/internal/domain"
	"github.com/replyflow/replyflow-backend/pkg/ctxutil"
)

// userGetter defines the minimal lookup needed by UserHandler.
type userGetter interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// UserHandler serves the current-user endpoint.
type UserHandler struct {
	users userGetter
	log   *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users userGetter, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, log: logger.With("handler", "user")}
}

type meResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Me handles GET /me. It returns the profile of the authenticated caller.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, meResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}
