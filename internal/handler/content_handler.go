package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"portfolioCMS/internal/models"
	"portfolioCMS/internal/service"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

func pagination(r *http.Request) (limit, offset int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage < 1 || perPage > maxPerPage {
		perPage = defaultPerPage
	}
	return perPage, (page - 1) * perPage
}

func (h *Handlers) ListContent(contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := pagination(r)

		items, err := h.Projection.ProjectContentItems(r.Context(), contentType, limit, offset)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}

		WriteSuccess(w, items, http.StatusOK)
	}
}

func (h *Handlers) GetContent(contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		rep, err := h.Projection.ProjectContentItem(r.Context(), contentType, id)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}

		// drafts are only visible to whoever may edit them
		if rep.Status != models.StatusPublish && !ActorFrom(r.Context()).CanEdit(rep.Author) {
			WriteError(w, "content item not found", http.StatusNotFound)
			return
		}

		WriteSuccess(w, rep, http.StatusOK)
	}
}

// GetPermalink resolves /{rewriteSlug}/{slug} to the published item.
func (h *Handlers) GetPermalink(contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, err := h.Projection.ProjectContentItemBySlug(r.Context(), contentType, mux.Vars(r)["slug"])
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}

		WriteSuccess(w, rep, http.StatusOK)
	}
}

func decodeContentInput(r *http.Request) (service.ContentInput, error) {
	var in service.ContentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return in, errors.New("invalid request body")
	}
	return in, nil
}

func (h *Handlers) respondWithItem(w http.ResponseWriter, r *http.Request, contentType, itemID string, status int) {
	rep, err := h.Projection.ProjectContentItem(r.Context(), contentType, itemID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, rep, status)
}

func (h *Handlers) CreateContent(contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := decodeContentInput(r)
		if err != nil {
			WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}

		item, err := h.Content.Create(r.Context(), ActorFrom(r.Context()), contentType, in)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}

		h.respondWithItem(w, r, contentType, item.ItemID, http.StatusCreated)
	}
}

func (h *Handlers) UpdateContent(contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := decodeContentInput(r)
		if err != nil {
			WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}

		item, err := h.Content.Update(r.Context(), ActorFrom(r.Context()), contentType, mux.Vars(r)["id"], in)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}

		h.respondWithItem(w, r, contentType, item.ItemID, http.StatusOK)
	}
}

func (h *Handlers) PublishContent(contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.Status != models.StatusPublish {
			WriteError(w, "only the publish status can be set", http.StatusBadRequest)
			return
		}

		id := mux.Vars(r)["id"]
		if err := h.Content.Publish(r.Context(), ActorFrom(r.Context()), contentType, id); err != nil {
			h.writeServiceError(w, r, err)
			return
		}

		h.respondWithItem(w, r, contentType, id, http.StatusOK)
	}
}

func (h *Handlers) DeleteContent(contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		if err := h.Content.Delete(r.Context(), ActorFrom(r.Context()), contentType, id); err != nil {
			h.writeServiceError(w, r, err)
			return
		}

		WriteSuccess(w, map[string]interface{}{"deleted": true, "id": id}, http.StatusOK)
	}
}

func (h *Handlers) UploadFeaturedImage(contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
		if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
			WriteError(w, "file is too large or the form is malformed", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			WriteError(w, "file field is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		id := mux.Vars(r)["id"]
		media, err := h.Content.SetFeaturedImage(r.Context(), ActorFrom(r.Context()), contentType, id, service.ImageUpload{
			FileName: header.Filename,
			File:     file,
		})
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}

		WriteSuccess(w, media, http.StatusCreated)
	}
}
