// Package ingest turns a locally selected video file into submittable
// gallery metadata: a thumbnail, a duration string, and a client-local
// video reference. The file's bytes never leave the machine.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vidgallery/vidgallery/internal/client"
	"github.com/vidgallery/vidgallery/internal/mediaprobe"
)

type State string

const (
	StateIdle         State = "idle"
	StateFileSelected State = "file_selected"
	StateProbing      State = "probing"
	StateSimulating   State = "simulating"
	StateSubmitting   State = "submitting"
	StateDone         State = "done"
	StateFailed       State = "failed"
)

// ErrMissingFields is returned when the form lacks a title, category, or
// file; the probe is never invoked in that case.
var ErrMissingFields = errors.New("please fill all required fields")

const defaultDescription = "No description provided"

type Form struct {
	Title       string
	Category    string
	Description string
	FilePath    string
}

type Submitter interface {
	CreateVideo(ctx context.Context, req client.CreateVideoRequest) (client.Video, error)
}

type Option func(*Pipeline)

func WithProbeTimeout(d time.Duration) Option {
	return func(p *Pipeline) { p.probeTimeout = d }
}

func WithProgressInterval(d time.Duration) Option {
	return func(p *Pipeline) { p.progressInterval = d }
}

func WithProgressStep(step func() float64) Option {
	return func(p *Pipeline) { p.progressStep = step }
}

// WithProgressFunc registers a callback for the cosmetic 0-100 progress
// value driving a visual indicator.
func WithProgressFunc(fn func(float64)) Option {
	return func(p *Pipeline) { p.onProgress = fn }
}

// WithStateFunc registers a callback invoked on every state transition.
func WithStateFunc(fn func(State)) Option {
	return func(p *Pipeline) { p.onState = fn }
}

// Pipeline drives a single upload attempt through
// Idle -> FileSelected -> Probing -> Simulating -> Submitting -> Done|Failed.
// A Failed attempt may be retried by calling Run again; the pipeline never
// retries on its own.
type Pipeline struct {
	probe            mediaprobe.Probe
	api              Submitter
	probeTimeout     time.Duration
	progressInterval time.Duration
	progressStep     func() float64
	onProgress       func(float64)
	onState          func(State)

	mu     sync.Mutex
	state  State
	notice string
}

func New(probe mediaprobe.Probe, api Submitter, opts ...Option) *Pipeline {
	p := &Pipeline{
		probe:            probe,
		api:              api,
		probeTimeout:     30 * time.Second,
		progressInterval: 200 * time.Millisecond,
		progressStep:     randomStep,
		state:            StateIdle,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Notice is the user-facing message from the most recent failure.
func (p *Pipeline) Notice() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.notice
}

// Reset returns the pipeline to Idle, abandoning any failure notice.
// Closing the upload dialog maps to Reset; it does not abort a submission
// that is already in flight.
func (p *Pipeline) Reset() {
	p.setState(StateIdle)
	p.mu.Lock()
	p.notice = ""
	p.mu.Unlock()
}

func (p *Pipeline) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
	if p.onState != nil {
		p.onState(s)
	}
}

func (p *Pipeline) fail(notice string, err error) (client.Video, error) {
	p.mu.Lock()
	p.state = StateFailed
	p.notice = notice
	p.mu.Unlock()
	if p.onState != nil {
		p.onState(StateFailed)
	}
	return client.Video{}, err
}

// Run executes one upload attempt and returns the created record on
// success, for merging into the gallery store.
func (p *Pipeline) Run(ctx context.Context, form Form) (client.Video, error) {
	p.setState(StateFileSelected)

	if form.Title == "" || form.Category == "" || form.FilePath == "" {
		return p.fail(ErrMissingFields.Error(), ErrMissingFields)
	}

	p.setState(StateProbing)
	probeCtx, cancel := context.WithTimeout(ctx, p.probeTimeout)
	defer cancel()

	duration, err := p.probe.Duration(probeCtx, form.FilePath)
	if err != nil {
		return p.fail("error processing video", fmt.Errorf("extract duration: %w", err))
	}
	thumbnail, err := p.probe.Thumbnail(probeCtx, form.FilePath, duration)
	if err != nil {
		return p.fail("error processing video", fmt.Errorf("extract thumbnail: %w", err))
	}

	p.setState(StateSimulating)
	sim := &progressSimulator{
		interval: p.progressInterval,
		step:     p.progressStep,
		onUpdate: p.onProgress,
	}
	if err := sim.run(ctx); err != nil {
		return p.fail("upload cancelled", err)
	}

	p.setState(StateSubmitting)
	description := form.Description
	if description == "" {
		description = defaultDescription
	}
	rec, err := p.api.CreateVideo(ctx, client.CreateVideoRequest{
		Title:       form.Title,
		Description: description,
		Category:    form.Category,
		Duration:    mediaprobe.FormatDuration(duration),
		Thumbnail:   thumbnail,
		VideoURL:    "blob:" + uuid.NewString(),
	})
	if err != nil {
		return p.fail(submitNotice(err), err)
	}

	p.setState(StateDone)
	return rec, nil
}

func submitNotice(err error) string {
	if errors.Is(err, client.ErrUnexpectedResponse) {
		return "server error: unexpected response, please login again or check your connection"
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "upload failed"
}
