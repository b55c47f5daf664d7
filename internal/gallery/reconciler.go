package gallery

import "github.com/vidgallery/vidgallery/internal/client"

// Reconciler applies operation outcomes to the view state: server
// results land in the Store and user-facing notices in the Toaster.
type Reconciler struct {
	store  *Store
	toasts *Toaster
}

func NewReconciler(store *Store, toasts *Toaster) *Reconciler {
	return &Reconciler{store: store, toasts: toasts}
}

// Toast exposes the currently visible notification for rendering.
func (r *Reconciler) Toast() (Toast, bool) {
	return r.toasts.Current()
}

// VideosLoaded replaces the list with a fresh server fetch.
func (r *Reconciler) VideosLoaded(videos []client.Video) {
	r.store.SetVideos(videos)
}

// Uploaded merges a freshly created record and announces it.
func (r *Reconciler) Uploaded(v client.Video) {
	r.store.Insert(v)
	r.toasts.Success("video uploaded successfully")
}

// LikeToggled reconciles the server's copy of a toggled record into the
// list. Any optimistic local flip is overwritten; the server copy wins.
func (r *Reconciler) LikeToggled(v client.Video) {
	r.store.Replace(v)
}

// Deleted drops the record and announces it.
func (r *Reconciler) Deleted(id string) {
	r.store.Remove(id)
	r.toasts.Success("video deleted successfully")
}

// Failed surfaces a failure notice to the user.
func (r *Reconciler) Failed(notice string) {
	r.toasts.Error(notice)
}
