// Package gallery holds the client-side view state: the fetched video
// list, the active filters, pagination, and transient notifications.
// Mutations are optimistic — they apply locally before (or regardless of)
// the server round trip.
package gallery

import (
	"strings"
	"sync"

	"github.com/vidgallery/vidgallery/internal/client"
)

// PageSize is the fixed number of video cards per gallery page.
const PageSize = 6

// CategoryAll matches every record regardless of category.
const CategoryAll = "all"

type Store struct {
	mu       sync.Mutex
	videos   []client.Video
	search   string
	category string
	page     int
}

func NewStore() *Store {
	return &Store{category: CategoryAll, page: 1}
}

// SetVideos replaces the list with a freshly fetched one.
func (s *Store) SetVideos(videos []client.Video) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videos = append([]client.Video(nil), videos...)
}

// SetSearch updates the search term and resets to the first page.
func (s *Store) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = strings.ToLower(term)
	s.page = 1
}

// SetCategory updates the category filter and resets to the first page.
func (s *Store) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.category = category
	s.page = 1
}

func (s *Store) Search() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search
}

func (s *Store) Category() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

func (s *Store) matches(v client.Video) bool {
	if s.category != CategoryAll && v.Category != s.category {
		return false
	}
	return strings.Contains(strings.ToLower(v.Title), s.search) ||
		strings.Contains(strings.ToLower(v.Description), s.search)
}

// Filtered returns the records matching the active category and search
// term, in list order.
func (s *Store) Filtered() []client.Video {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filteredLocked()
}

func (s *Store) filteredLocked() []client.Video {
	matched := []client.Video{}
	for _, v := range s.videos {
		if s.matches(v) {
			matched = append(matched, v)
		}
	}
	return matched
}

// TotalPages is ceil(matches / PageSize).
func (s *Store) TotalPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (len(s.filteredLocked()) + PageSize - 1) / PageSize
}

// Page returns the records of the current page together with the page
// number and total page count.
func (s *Store) Page() ([]client.Video, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := s.filteredLocked()
	totalPages := (len(matched) + PageSize - 1) / PageSize

	page := s.page
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], page, totalPages
}

// SetPage navigates to a page, clamped to the valid range.
func (s *Store) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	totalPages := (len(s.filteredLocked()) + PageSize - 1) / PageSize
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	s.page = page
}

func (s *Store) NextPage() { s.shiftPage(1) }
func (s *Store) PrevPage() { s.shiftPage(-1) }

func (s *Store) shiftPage(delta int) {
	s.mu.Lock()
	page := s.page + delta
	s.mu.Unlock()
	s.SetPage(page)
}

// ToggleLike flips the like state of a record locally. It reports the new
// like state and whether the record was found.
func (s *Store) ToggleLike(id string) (liked bool, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.videos {
		if s.videos[i].ID != id {
			continue
		}
		if s.videos[i].IsLiked {
			s.videos[i].IsLiked = false
			s.videos[i].Likes--
		} else {
			s.videos[i].IsLiked = true
			s.videos[i].Likes++
		}
		return s.videos[i].IsLiked, true
	}
	return false, false
}

// Remove drops a record locally, reporting whether it was present.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.videos {
		if s.videos[i].ID == id {
			s.videos = append(s.videos[:i], s.videos[i+1:]...)
			return true
		}
	}
	return false
}

// Replace swaps the stored copy of a record for the given one,
// reporting whether the record was present.
func (s *Store) Replace(v client.Video) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.videos {
		if s.videos[i].ID == v.ID {
			s.videos[i] = v
			return true
		}
	}
	return false
}

// Insert prepends a freshly created record and returns to the first page,
// matching the post-upload view.
func (s *Store) Insert(v client.Video) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videos = append([]client.Video{v}, s.videos...)
	s.page = 1
}

// Get returns a record by id.
func (s *Store) Get(id string) (client.Video, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.videos {
		if v.ID == id {
			return v, true
		}
	}
	return client.Video{}, false
}

// Len is the unfiltered record count.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.videos)
}
