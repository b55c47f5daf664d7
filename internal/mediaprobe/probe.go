// Package mediaprobe derives display metadata (duration, thumbnail)
// from a local video file without uploading its bytes anywhere.
package mediaprobe

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Probe extracts display metadata from a local video file. Implementations
// must honor the context deadline: a corrupt or unreadable file fails the
// caller instead of hanging it.
type Probe interface {
	Duration(ctx context.Context, path string) (time.Duration, error)
	Thumbnail(ctx context.Context, path string, total time.Duration) (string, error)
}

// FFmpeg probes files by shelling out to ffprobe and ffmpeg.
type FFmpeg struct {
	// Fraction of the total duration to seek to before grabbing the
	// thumbnail frame. Zero means the 25% default.
	SeekFraction float64
}

func (f *FFmpeg) seekFraction() float64 {
	if f.SeekFraction <= 0 || f.SeekFraction >= 1 {
		return 0.25
	}
	return f.SeekFraction
}

func (f *FFmpeg) Duration(ctx context.Context, path string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}
	return parseProbeDuration(string(output))
}

// Thumbnail grabs one frame partway into the file. The caller supplies
// the total duration so the file is only probed once.
func (f *FFmpeg) Thumbnail(ctx context.Context, path string, total time.Duration) (string, error) {
	seek := total.Seconds() * f.seekFraction()

	tmp, err := os.CreateTemp("", "vidgallery-thumb-*.jpg")
	if err != nil {
		return "", fmt.Errorf("create temp thumbnail file: %w", err)
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(tmpPath)

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-ss", fmt.Sprintf("%.2f", seek),
		"-i", path,
		"-frames:v", "1",
		"-vf", "scale=640:360:force_original_aspect_ratio=decrease,pad=640:360:(ow-iw)/2:(oh-ih)/2",
		"-q:v", "5",
		"-y",
		tmpPath,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("ffmpeg: %w: %s", err, string(output))
	}

	frame, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", fmt.Errorf("read thumbnail frame: %w", err)
	}
	return EncodeJPEGDataURI(frame), nil
}

func parseProbeDuration(output string) (time.Duration, error) {
	trimmed := strings.TrimSpace(output)
	seconds, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", trimmed, err)
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("invalid duration %q", trimmed)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// EncodeJPEGDataURI wraps raw JPEG bytes as an embeddable data URI.
func EncodeJPEGDataURI(jpeg []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpeg)
}

// FormatDuration renders a duration as minutes:seconds with the seconds
// zero-padded, e.g. 1:05.
func FormatDuration(d time.Duration) string {
	total := int(d.Seconds())
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
