package video

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vidgallery/vidgallery/internal/auth"
	"github.com/vidgallery/vidgallery/internal/httputil"
	"github.com/vidgallery/vidgallery/internal/validate"
)

type createRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Duration    string `json:"duration"`
	Thumbnail   string `json:"thumbnail"`
	VideoURL    string `json:"videoUrl"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	username := auth.UsernameFromContext(r.Context())

	rows, err := h.db.Query(r.Context(),
		`SELECT `+recordColumns+` FROM videos WHERE uploader = $1 ORDER BY created_at DESC`,
		username,
	)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "failed to list videos")
		return
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			httputil.WriteError(w, http.StatusInternalServerError, "failed to scan video")
			return
		}
		records = append(records, rec)
	}

	httputil.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	username := auth.UsernameFromContext(r.Context())

	// createRequest has no uploader field: whatever the payload carries,
	// the record is attributed to the authenticated identity.
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg := validate.Title(req.Title); msg != "" {
		httputil.WriteError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validate.Description(req.Description); msg != "" {
		httputil.WriteError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validate.Category(req.Category); msg != "" {
		httputil.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	date := time.Now().Format("1/2/2006, 3:04:05 PM")

	rec, err := scanRecord(h.db.QueryRow(r.Context(),
		`INSERT INTO videos (title, description, category, duration, thumbnail, video_url, uploader, date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+recordColumns,
		req.Title, req.Description, req.Category, req.Duration,
		req.Thumbnail, req.VideoURL, username, date,
	))
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create video")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, rec)
}

// Like toggles the like flag on any record, not just the caller's own.
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "id")

	rec, err := scanRecord(h.db.QueryRow(r.Context(),
		`UPDATE videos
		 SET is_liked = NOT is_liked,
		     likes = likes + CASE WHEN is_liked THEN -1 ELSE 1 END
		 WHERE id = $1
		 RETURNING `+recordColumns,
		videoID,
	))
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, "not found")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	username := auth.UsernameFromContext(r.Context())
	videoID := chi.URLParam(r, "id")

	var uploader string
	err := h.db.QueryRow(r.Context(),
		`SELECT uploader FROM videos WHERE id = $1`, videoID,
	).Scan(&uploader)
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, "not found")
		return
	}

	if uploader != username {
		httputil.WriteError(w, http.StatusForbidden, "forbidden")
		return
	}

	if _, err := h.db.Exec(r.Context(),
		`DELETE FROM videos WHERE id = $1`, videoID,
	); err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "failed to delete video")
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "deleted")
}
