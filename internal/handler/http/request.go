package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/user"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/handler/http/middleware"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/handler/http/response"
	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/validator"
)

// currentActor writes 401 and returns false when the route is not behind AuthRequired.
func currentActor(w http.ResponseWriter, r *http.Request) (user.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return user.Actor{}, false
	}
	return actor, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, op string, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// queryYear reads ?year=, 0 when absent.
func queryYear(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1 || year > 9999 {
		return 0, validator.ValidationErrors{{Field: "year", Message: "year must be a valid year"}}
	}
	return year, nil
}

func requireUUID(field, value string) error {
	if !validator.IsValidUUID(value) {
		return validator.ValidationErrors{{Field: field, Message: field + " must be a valid id"}}
	}
	return nil
}
