package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"portfolioCMS/internal/service"
)

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Projection.ProjectUser(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, rep, http.StatusOK)
}

// UpdateUser writes profile attributes. The body is a flat object of attribute
// names to values; an empty value clears the attribute.
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	if !ActorFrom(r.Context()).CanEdit(userID) {
		WriteError(w, service.ErrForbidden.Error(), http.StatusForbidden)
		return
	}

	var values map[string]string
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	failed := h.Projection.UpdateUserFields(r.Context(), userID, values)
	if len(failed) > 0 {
		resp := ErrorResponse{Error: "some fields were not updated", Fields: make(map[string]string, len(failed))}
		status := http.StatusBadRequest
		for field, err := range failed {
			resp.Fields[field] = err.Error()
			switch statusFor(err) {
			case http.StatusInternalServerError:
				status = http.StatusInternalServerError
				resp.Fields[field] = "internal server error"
				h.Log.WithError(err).WithFields(logrus.Fields{"user_id": userID, "field": field}).Error("profile update failed")
			case http.StatusNotFound:
				if status != http.StatusInternalServerError {
					status = http.StatusNotFound
				}
			}
		}
		WriteSuccess(w, resp, status)
		return
	}

	h.GetUser(w, r)
}
