package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/at-ishikawa/mathsnap/internal/render"
	"github.com/at-ishikawa/mathsnap/internal/testutil"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		debugMode bool
		wantDebug bool
		wantInfo  bool
	}{
		{
			name:      "debug mode enabled",
			debugMode: true,
			wantDebug: true,
			wantInfo:  true,
		},
		{
			name:      "debug mode disabled",
			debugMode: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogger(tt.debugMode)
			logger := slog.Default()
			assert.Equal(t, tt.wantDebug, logger.Enabled(context.Background(), slog.LevelDebug))
			assert.Equal(t, tt.wantInfo, logger.Enabled(context.Background(), slog.LevelInfo))
			assert.True(t, logger.Enabled(context.Background(), slog.LevelError))
		})
	}
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()

	assert.Equal(t, "mathsnap", cmd.Use)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"solve", "interactive", "preview", "status"}, names)
}

// executeCommand runs the root command with args and returns stdout and stderr
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = false
		configFile = ""
	})

	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSolveCommand(t *testing.T) {
	successBody := `{"success":true,"problem":"2+2","answer":"4","steps":["2+2=4"],"processing_time":"0.80 s","tokens_used":42}`

	tests := []struct {
		name              string
		status            int
		body              string
		imageName         string
		extraArgs         []string
		validate          func(t *testing.T, stdout, stderr string, dir string)
		wantErrorContains string
		wantShown         bool
	}{
		{
			name:      "text output",
			status:    http.StatusOK,
			body:      successBody,
			imageName: "problem.png",
			validate: func(t *testing.T, stdout, stderr string, dir string) {
				assert.Contains(t, stdout, "Problem: 2+2\n")
				assert.Contains(t, stdout, "  • 2+2=4\n")
				assert.Contains(t, stdout, "Tokens used: 42\n")
				assert.Contains(t, stderr, "Selected problem.png")
				assert.Contains(t, stderr, "Solving...")
			},
		},
		{
			name:      "json output",
			status:    http.StatusOK,
			body:      successBody,
			imageName: "problem.png",
			extraArgs: []string{"--format", "json"},
			validate: func(t *testing.T, stdout, stderr string, dir string) {
				var got render.View
				require.NoError(t, json.Unmarshal([]byte(stdout), &got))
				assert.Equal(t, "4", got.Answer)
				assert.Equal(t, "0.80 s", got.ProcessingTime)
			},
		},
		{
			name:      "markdown to a file",
			status:    http.StatusOK,
			body:      successBody,
			imageName: "problem.png",
			extraArgs: []string{"--format", "markdown", "--output", "solution.md"},
			validate: func(t *testing.T, stdout, stderr string, dir string) {
				assert.Empty(t, stdout)
				content, err := os.ReadFile(filepath.Join(dir, "solution.md"))
				require.NoError(t, err)
				assert.Contains(t, string(content), "- Image: problem.png")
				assert.Contains(t, string(content), "**4**")
			},
		},
		{
			name:      "pdf to a file",
			status:    http.StatusOK,
			body:      successBody,
			imageName: "problem.png",
			extraArgs: []string{"-f", "pdf", "-o", "solution.pdf"},
			validate: func(t *testing.T, stdout, stderr string, dir string) {
				info, err := os.Stat(filepath.Join(dir, "solution.pdf"))
				require.NoError(t, err)
				assert.Greater(t, info.Size(), int64(0))
			},
		},
		{
			name:              "pdf needs an output file",
			status:            http.StatusOK,
			body:              successBody,
			imageName:         "problem.png",
			extraArgs:         []string{"--format", "pdf"},
			wantErrorContains: "--output is required for the pdf format",
		},
		{
			name:              "invalid format",
			status:            http.StatusOK,
			body:              successBody,
			imageName:         "problem.png",
			extraArgs:         []string{"--format", "docx"},
			wantErrorContains: "invalid format: docx",
		},
		{
			name:              "server reported failure",
			status:            http.StatusBadRequest,
			body:              `{"error":"bad image"}`,
			imageName:         "problem.png",
			wantErrorContains: "bad image",
			wantShown:         true,
			validate: func(t *testing.T, stdout, stderr string, dir string) {
				assert.Empty(t, stdout)
				assert.Contains(t, stderr, "! bad image")
			},
		},
		{
			name:              "not an image",
			status:            http.StatusOK,
			body:              successBody,
			imageName:         "problem.txt",
			wantErrorContains: "please choose an image file",
			wantShown:         true,
			validate: func(t *testing.T, stdout, stderr string, dir string) {
				assert.Contains(t, stderr, "! please choose an image file")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)
			server := testutil.NewSolveServer(t, tt.status, tt.body)
			cfgPath := testutil.SetupTestConfig(t, dir, server.URL)

			var imagePath string
			if strings.HasSuffix(tt.imageName, ".png") {
				imagePath = testutil.WritePNG(t, dir, tt.imageName, 4, 4)
			} else {
				imagePath = testutil.WriteFile(t, dir, tt.imageName, []byte("2+2"))
			}

			args := append([]string{"--config", cfgPath, "solve", imagePath}, tt.extraArgs...)
			stdout, stderr, err := executeCommand(t, "", args...)

			if tt.wantErrorContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrorContains)
			} else {
				require.NoError(t, err)
			}
			var shown *shownError
			assert.Equal(t, tt.wantShown, errors.As(err, &shown))
			if tt.validate != nil {
				tt.validate(t, stdout, stderr, dir)
			}
		})
	}
}

func TestReportError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantOutput string
	}{
		{
			name:       "error the user has not seen",
			err:        fmt.Errorf("loadConfig > %w", errors.New("no such file")),
			wantOutput: "failed to execute a command: loadConfig > no such file\n",
		},
		{
			name:       "error already shown by the display",
			err:        &shownError{err: fmt.Errorf("flow.Submit > %w", errors.New("bad image"))},
			wantOutput: "",
		},
		{
			name:       "wrapped shown error",
			err:        fmt.Errorf("solve > %w", &shownError{err: errors.New("bad image")}),
			wantOutput: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, reportError(&out, tt.err))
			assert.Equal(t, tt.wantOutput, out.String())
		})
	}
}

func TestInteractiveCommand(t *testing.T) {
	dir := t.TempDir()
	server := testutil.NewSolveServer(t, http.StatusOK, `{"problem":"1+1","answer":"2","steps":[]}`)
	cfgPath := testutil.SetupTestConfig(t, dir, server.URL)
	imagePath := testutil.WritePNG(t, dir, "problem.png", 2, 2)

	stdin := "open " + imagePath + "\nsubmit\nquit\n"
	stdout, _, err := executeCommand(t, stdin, "--config", cfgPath, "interactive")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Selected problem.png")
	assert.Contains(t, stdout, "Answer: 2\n")
	assert.Contains(t, stdout, "  • "+render.NoSteps+"\n")
	assert.Contains(t, stdout, "Session ended.")
}

func TestPreviewCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, dir, "http://localhost:8000")
	imagePath := testutil.WritePNG(t, dir, "problem.png", 8, 5)

	stdout, _, err := executeCommand(t, "", "--config", cfgPath, "preview", "--data-url", imagePath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "problem.png (PNG 8x5, "))
	assert.True(t, strings.HasPrefix(lines[1], "data:image/png;base64,"))

	textPath := testutil.WriteFile(t, dir, "notes.txt", []byte("1+1"))
	_, _, err = executeCommand(t, "", "--config", cfgPath, "preview", textPath)
	assert.ErrorContains(t, err, "please choose an image file")
}

func TestStatusCommand(t *testing.T) {
	dir := t.TempDir()
	server := testutil.NewSolveServer(t, http.StatusOK, `{}`)
	cfgPath := testutil.SetupTestConfig(t, dir, server.URL)

	stdout, _, err := executeCommand(t, "", "--config", cfgPath, "status")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Server: "+server.URL+"\n")
	assert.Contains(t, stdout, "Message: math problem solver\n")
	assert.Contains(t, stdout, "  /solve_math_problem\tPOST - upload an image and solve it\n")
	assert.NotContains(t, stdout, "warning")
}
