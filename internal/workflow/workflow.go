package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/at-ishikawa/mathsnap/internal/preview"
	"github.com/at-ishikawa/mathsnap/internal/render"
	"github.com/at-ishikawa/mathsnap/internal/solver"
	"github.com/at-ishikawa/mathsnap/internal/upload"
)

var (
	ErrNoSelection        = errors.New("please choose an image first")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
)

// Display is the surface the workflow draws on
type Display interface {
	ShowPreview(p preview.Preview)
	// ClearResult resets every result field to render.Cleared
	ClearResult()
	SetLoading(loading bool)
	ShowResult(view render.View)
	// Notify shows an alert to the user
	Notify(message string)
}

// Workflow owns the current selection and the submission of it.
// It is safe for concurrent use; at most one submission is in flight at a time.
type Workflow struct {
	client    solver.Client
	display   Display
	validator upload.Validator

	mu        sync.Mutex
	state     State
	selection *upload.SelectedImage
}

func New(client solver.Client, display Display, validator upload.Validator) *Workflow {
	return &Workflow{
		client:    client,
		display:   display,
		validator: validator,
		state:     StateIdle,
	}
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Selection returns the image the next submission will upload
func (w *Workflow) Selection() (upload.SelectedImage, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.selection == nil {
		return upload.SelectedImage{}, false
	}
	return *w.selection, true
}

// Select validates candidate and makes it the current selection.
// A rejected candidate leaves the previous selection and preview untouched.
func (w *Workflow) Select(candidate upload.Candidate) error {
	if err := w.validator.Validate(candidate); err != nil {
		return w.reject(candidate, err)
	}
	image, err := w.validator.Load(candidate)
	if err != nil {
		return w.reject(candidate, err)
	}
	p := preview.Build(image)

	w.mu.Lock()
	defer w.mu.Unlock()
	to, ok := next(w.state, eventSelect)
	if !ok {
		return fmt.Errorf("cannot select an image while %s", w.state)
	}
	w.state = to
	w.selection = &image
	w.display.ShowPreview(p)

	slog.Default().Info("image selected",
		"name", image.Name,
		"contentType", image.ContentType,
		"size", image.Size)
	return nil
}

func (w *Workflow) reject(candidate upload.Candidate, err error) error {
	slog.Default().Info("image rejected",
		"name", candidate.Name,
		"contentType", candidate.ContentType,
		"size", candidate.Size,
		"error", err)
	w.display.Notify(w.rejectionMessage(err))
	return err
}

func (w *Workflow) rejectionMessage(err error) string {
	switch {
	case errors.Is(err, upload.ErrInvalidType):
		return upload.ErrInvalidType.Error()
	case errors.Is(err, upload.ErrTooLarge):
		if w.validator.MaxBytes() == upload.DefaultMaxBytes {
			return upload.ErrTooLarge.Error()
		}
		return fmt.Sprintf("image is too large, please choose an image smaller than %s",
			preview.HumanSize(w.validator.MaxBytes()))
	default:
		return err.Error()
	}
}

// Submit uploads the current selection and shows the outcome.
// The loading indicator is hidden again on every return path.
func (w *Workflow) Submit(ctx context.Context) (render.View, error) {
	w.mu.Lock()
	if w.state == StateSubmitting {
		w.mu.Unlock()
		w.display.Notify(ErrSubmissionInFlight.Error())
		slog.Default().Warn("submission ignored", "error", ErrSubmissionInFlight)
		return render.View{}, ErrSubmissionInFlight
	}
	to, ok := next(w.state, eventSubmit)
	if !ok || w.selection == nil {
		w.mu.Unlock()
		w.display.Notify(ErrNoSelection.Error())
		slog.Default().Warn("submission rejected", "error", ErrNoSelection)
		return render.View{}, ErrNoSelection
	}
	image := *w.selection
	w.state = to
	w.mu.Unlock()

	w.display.ClearResult()
	result, err := w.solve(ctx, image)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.state, _ = next(w.state, eventFailure)
		w.display.Notify(solver.UserMessage(err))
		slog.Default().Warn("submission failed",
			"image", image.Name,
			"error", err)
		return render.View{}, fmt.Errorf("client.Solve > %w", err)
	}

	view := render.NewView(result)
	w.state, _ = next(w.state, eventSuccess)
	w.display.ShowResult(view)
	slog.Default().Info("submission succeeded",
		"image", image.Name,
		"steps", len(result.Steps))
	return view, nil
}

func (w *Workflow) solve(ctx context.Context, image upload.SelectedImage) (solver.SolveResult, error) {
	w.display.SetLoading(true)
	defer w.display.SetLoading(false)
	return w.client.Solve(ctx, image)
}
