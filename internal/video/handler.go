package video

import (
	"github.com/jackc/pgx/v5"
	"github.com/vidgallery/vidgallery/internal/database"
)

// Record is the wire and storage shape of a video metadata entry. The
// video bytes themselves never reach the server: VideoURL is a
// client-local reference and Thumbnail an embedded data URI.
type Record struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Duration    string `json:"duration"`
	Views       int    `json:"views"`
	Likes       int    `json:"likes"`
	IsLiked     bool   `json:"isLiked"`
	Thumbnail   string `json:"thumbnail"`
	VideoURL    string `json:"videoUrl"`
	Uploader    string `json:"uploader"`
	Date        string `json:"date"`
}

const recordColumns = `id, title, description, category, duration, views, likes, is_liked, thumbnail, video_url, uploader, date`

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.Title, &rec.Description, &rec.Category,
		&rec.Duration, &rec.Views, &rec.Likes, &rec.IsLiked,
		&rec.Thumbnail, &rec.VideoURL, &rec.Uploader, &rec.Date)
	return rec, err
}

type Handler struct {
	db database.DBTX
}

func NewHandler(db database.DBTX) *Handler {
	return &Handler{db: db}
}
