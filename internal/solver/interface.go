package solver

import (
	"context"

	"github.com/at-ishikawa/mathsnap/internal/upload"
)

//go:generate mockgen -source=interface.go -destination=../mocks/solver/mock_client.go -package=mock_solver

// Client submits an image to the solve endpoint
type Client interface {
	Solve(ctx context.Context, image upload.SelectedImage) (SolveResult, error)
}

const (
	// SolvePath is the endpoint receiving the multipart upload
	SolvePath = "/solve_math_problem"
	// ImageField is the multipart part carrying the image
	ImageField = "image"

	DefaultMaxRetryAttempts = 0
)

// SolveResult is the JSON body returned by the solve endpoint.
// Every field is optional; Error is only set on failure responses.
type SolveResult struct {
	Success        bool       `json:"success,omitempty" yaml:"success,omitempty"`
	Problem        string     `json:"problem,omitempty" yaml:"problem,omitempty"`
	Answer         string     `json:"answer,omitempty" yaml:"answer,omitempty"`
	Steps          []string   `json:"steps,omitempty" yaml:"steps,omitempty"`
	ProcessingTime FlexString `json:"processing_time,omitzero" yaml:"processing_time,omitempty"`
	TokensUsed     FlexString `json:"tokens_used,omitzero" yaml:"tokens_used,omitempty"`
	Error          string     `json:"error,omitempty" yaml:"error,omitempty"`
}
