package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/itemgallery/backend/internal/server/models"
	"github.com/itemgallery/backend/internal/server/services"
)

type itemCreateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CoverImage  string   `json:"cover_image"`
	Images      []string `json:"images"`
}

// itemUpdateRequest uses pointers so an absent field and an explicit empty
// value stay distinguishable.
type itemUpdateRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	CoverImage  *string   `json:"cover_image"`
	Images      *[]string `json:"images"`
}

type itemResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CoverImage  string    `json:"cover_image,omitempty"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
}

type itemListResponse struct {
	Items []itemResponse `json:"items"`
	Count int            `json:"count"`
}

type uploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

func toItemResponse(item *models.Item) itemResponse {
	images := item.Images
	if images == nil {
		images = []string{}
	}
	return itemResponse{
		ID:          item.ID,
		UserID:      item.UserID,
		Title:       item.Title,
		Description: item.Description,
		CoverImage:  item.CoverImage,
		Images:      images,
		CreatedAt:   item.CreatedAt,
	}
}

func toItemListResponse(items []*models.Item) itemListResponse {
	resp := itemListResponse{Items: make([]itemResponse, 0, len(items)), Count: len(items)}
	for _, item := range items {
		resp.Items = append(resp.Items, toItemResponse(item))
	}
	return resp
}

// pathID parses the {id} route variable. The route pattern restricts it to
// digits, so failures here are overflow only.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func (s *Server) handleItemCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "unauthorized")
		return
	}

	var req itemCreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.Title == "" {
		writeBadRequest(w, "title is required")
		return
	}

	created, err := s.items.Create(r.Context(), user.ID, &models.Item{
		Title:       req.Title,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		Images:      req.Images,
	})
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toItemResponse(created))
}

func (s *Server) handleItemList(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 0)

	items, err := s.items.List(r.Context(), skip, limit)
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemListResponse(items))
}

func (s *Server) handleItemListMy(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "unauthorized")
		return
	}

	items, err := s.items.ListMy(r.Context(), user.ID)
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemListResponse(items))
}

func (s *Server) handleItemGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid item id")
		return
	}

	item, err := s.items.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(item))
}

func (s *Server) handleItemUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "unauthorized")
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid item id")
		return
	}

	var req itemUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	updated, err := s.items.Update(r.Context(), user.ID, id, services.ItemUpdate{
		Title:       req.Title,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		Images:      req.Images,
	})
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(updated))
}

func (s *Server) handleItemDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "unauthorized")
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid item id")
		return
	}

	if err := s.items.Delete(r.Context(), user.ID, id); err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleItemImages(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid item id")
		return
	}

	urls, err := s.items.ImageURLs(r.Context(), id)
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"urls": urls})
}

func (s *Server) handleNewUpload(w http.ResponseWriter, r *http.Request) {
	key, url, err := s.items.NewUploadURL(r.Context())
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusCreated, uploadResponse{Key: key, URL: url})
}
