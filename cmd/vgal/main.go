// vgal is the terminal client for a VidGallery server: it authenticates,
// browses the gallery, and runs the local ingestion pipeline for uploads.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/vidgallery/vidgallery/internal/client"
	"github.com/vidgallery/vidgallery/internal/gallery"
	"github.com/vidgallery/vidgallery/internal/ingest"
	"github.com/vidgallery/vidgallery/internal/mediaprobe"
)

const usage = `usage: vgal [flags] <command> [args]

commands:
  signup <username>        create an account
  login <username>         log in and cache the session token
  list                     list your videos (respects --search/--category/--page)
  upload <file>            derive metadata locally and add a gallery entry
  like <id>                toggle like on a video
  delete <id>              delete one of your videos

flags:
`

func main() {
	var (
		serverURL   = flag.String("server", envOr("VGAL_SERVER", "http://localhost:8080"), "server base URL")
		password    = flag.String("password", "", "password for signup/login")
		title       = flag.String("title", "", "video title for upload")
		category    = flag.String("category", "", "video category for upload")
		description = flag.String("description", "", "video description for upload")
		search      = flag.String("search", "", "search term for list")
		listCat     = flag.String("category-filter", gallery.CategoryAll, "category filter for list")
		page        = flag.Int("page", 1, "gallery page for list")
	)
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	api := client.New(*serverURL)
	ctx := context.Background()

	store := gallery.NewStore()
	view := gallery.NewReconciler(store, gallery.NewToaster())

	var err error
	switch args[0] {
	case "signup":
		err = runSignup(ctx, api, args[1:], *password)
	case "login":
		err = runLogin(ctx, api, args[1:], *password)
	case "list":
		err = runList(ctx, api, store, view, *search, *listCat, *page)
	case "upload":
		err = runUpload(ctx, api, view, args[1:], *title, *category, *description)
	case "like":
		err = runLike(ctx, api, view, args[1:])
	case "delete":
		err = runDelete(ctx, api, view, args[1:])
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "vgal:", err)
		os.Exit(1)
	}
}

func runSignup(ctx context.Context, api *client.Client, args []string, password string) error {
	if len(args) != 1 || password == "" {
		return fmt.Errorf("signup needs a username argument and --password")
	}
	if err := api.Signup(ctx, args[0], password); err != nil {
		return err
	}
	fmt.Println("signup successful, please log in")
	return nil
}

func runLogin(ctx context.Context, api *client.Client, args []string, password string) error {
	if len(args) != 1 || password == "" {
		return fmt.Errorf("login needs a username argument and --password")
	}
	result, err := api.Login(ctx, args[0], password)
	if err != nil {
		return err
	}
	if err := saveToken(result.Token); err != nil {
		return err
	}
	fmt.Printf("welcome back, %s\n", result.Username)
	return nil
}

func runList(ctx context.Context, api *client.Client, store *gallery.Store, view *gallery.Reconciler, search, category string, page int) error {
	if err := loadToken(api); err != nil {
		return err
	}
	videos, err := api.Videos(ctx)
	if err != nil {
		return err
	}

	view.VideosLoaded(videos)
	store.SetSearch(search)
	store.SetCategory(category)
	store.SetPage(page)

	items, current, totalPages := store.Page()
	if len(items) == 0 {
		fmt.Println("no videos found")
		return nil
	}
	for _, v := range items {
		liked := " "
		if v.IsLiked {
			liked = "*"
		}
		fmt.Printf("%s  [%s] %-30s %8s  %s%d likes  (%s)\n",
			v.ID, v.Category, v.Title, v.Duration, liked, v.Likes, v.Date)
	}
	fmt.Printf("page %d of %d (%d matching)\n", current, totalPages, len(store.Filtered()))
	return nil
}

func runUpload(ctx context.Context, api *client.Client, view *gallery.Reconciler, args []string, title, category, description string) error {
	if len(args) != 1 {
		return fmt.Errorf("upload needs a file argument")
	}
	if err := loadToken(api); err != nil {
		return err
	}

	pipeline := ingest.New(&mediaprobe.FFmpeg{}, api,
		ingest.WithProgressFunc(func(value float64) {
			fmt.Printf("\ruploading... %3.0f%%", value)
		}),
	)
	rec, err := pipeline.Run(ctx, ingest.Form{
		Title:       title,
		Category:    category,
		Description: description,
		FilePath:    args[0],
	})
	fmt.Println()
	if err != nil {
		view.Failed(pipeline.Notice())
		showToast(view)
		return err
	}
	view.Uploaded(rec)
	showToast(view)
	fmt.Printf("id %s (%s)\n", rec.ID, rec.Duration)
	return nil
}

func runLike(ctx context.Context, api *client.Client, view *gallery.Reconciler, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("like needs a video id argument")
	}
	if err := loadToken(api); err != nil {
		return err
	}
	rec, err := api.ToggleLike(ctx, args[0])
	if err != nil {
		view.Failed(err.Error())
		showToast(view)
		return err
	}
	view.LikeToggled(rec)
	if rec.IsLiked {
		fmt.Printf("added to your favorites (%d likes)\n", rec.Likes)
	} else {
		fmt.Printf("removed from favorites (%d likes)\n", rec.Likes)
	}
	return nil
}

func runDelete(ctx context.Context, api *client.Client, view *gallery.Reconciler, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("delete needs a video id argument")
	}
	if err := loadToken(api); err != nil {
		return err
	}
	if err := api.DeleteVideo(ctx, args[0]); err != nil {
		view.Failed(err.Error())
		showToast(view)
		return err
	}
	view.Deleted(args[0])
	showToast(view)
	return nil
}

// showToast renders the notification raised by the last operation.
func showToast(view *gallery.Reconciler) {
	if toast, ok := view.Toast(); ok {
		fmt.Printf("[%s] %s\n", toast.Severity, toast.Message)
	}
}

func tokenPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(configDir, "vgal", "token"), nil
}

func saveToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, []byte(token), 0o600)
}

func loadToken(api *client.Client) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("not logged in (run vgal login first)")
	}
	api.SetToken(strings.TrimSpace(string(data)))
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
