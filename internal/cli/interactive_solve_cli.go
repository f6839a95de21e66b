package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/at-ishikawa/mathsnap/internal/upload"
	"github.com/at-ishikawa/mathsnap/internal/workflow"
)

var errEnd = errors.New("end")

const helpText = `Commands:
  open <path>   choose an image file
  drop <path>   paste a dragged file, quoted or escaped as the terminal pastes it
  <path>        same as drop
  submit        send the selected image to the solver
  status        show the current state
  help          show this help
  quit          wait for a pending submission and exit
`

// InteractiveSolveCLI reads commands from stdin and drives a workflow.
// Submissions run in the background so an image can be chosen while one is pending.
type InteractiveSolveCLI struct {
	workflow    *workflow.Workflow
	display     *TerminalDisplay
	stdinReader *bufio.Reader
	contentType string
	submissions sync.WaitGroup
}

// NewInteractiveSolveCLI creates a session. contentType overrides the detected
// type of every chosen file when it is not empty.
func NewInteractiveSolveCLI(
	flow *workflow.Workflow,
	display *TerminalDisplay,
	stdin io.Reader,
	contentType string,
) *InteractiveSolveCLI {
	return &InteractiveSolveCLI{
		workflow:    flow,
		display:     display,
		stdinReader: bufio.NewReader(stdin),
		contentType: contentType,
	}
}

func (cli *InteractiveSolveCLI) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()
	defer cli.submissions.Wait()

	cli.display.Printf("%s", helpText)

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := cli.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		cli.display.Printf("Received interrupt signal, exiting...\n")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// Session handles a single command line
func (cli *InteractiveSolveCLI) Session(ctx context.Context) error {
	cli.display.Printf("> ")
	input, err := cli.stdinReader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("error reading a command: %w", err)
	}
	line := strings.TrimSpace(input)
	if errors.Is(err, io.EOF) && line == "" {
		cli.display.Printf("\n")
		return errEnd
	}

	command, argument, _ := strings.Cut(line, " ")
	argument = strings.TrimSpace(argument)
	switch command {
	case "":
	case "quit", "exit":
		cli.display.Printf("Session ended.\n")
		return errEnd
	case "help":
		cli.display.Printf("%s", helpText)
	case "status":
		cli.showStatus()
	case "submit":
		cli.submit(ctx)
	case "open":
		if argument == "" {
			cli.display.Notify("open needs a file path")
			return nil
		}
		candidate, err := upload.FromPath(argument, cli.contentType)
		if err != nil {
			cli.notifyOpenError(err)
			return nil
		}
		cli.selectCandidate(candidate)
	case "drop":
		cli.drop(argument)
	default:
		cli.drop(line)
	}
	if errors.Is(err, io.EOF) {
		return errEnd
	}
	return nil
}

func (cli *InteractiveSolveCLI) drop(dropped string) {
	if dropped == "" {
		cli.display.Notify("nothing was dropped")
		return
	}
	candidate, err := upload.FromDrop(dropped, cli.contentType)
	if err != nil {
		cli.notifyOpenError(err)
		return
	}
	cli.selectCandidate(candidate)
}

func (cli *InteractiveSolveCLI) selectCandidate(candidate upload.Candidate) {
	// a rejection has been shown to the user already
	_ = cli.workflow.Select(candidate)
}

func (cli *InteractiveSolveCLI) notifyOpenError(err error) {
	slog.Default().Debug("failed to open a file", "error", err)
	cli.display.Notify(fmt.Sprintf("cannot open the file: %v", err))
}

func (cli *InteractiveSolveCLI) submit(ctx context.Context) {
	cli.submissions.Add(1)
	go func() {
		defer cli.submissions.Done()
		if _, err := cli.workflow.Submit(ctx); err != nil {
			slog.Default().Debug("submission finished with an error", "error", err)
		}
	}()
}

func (cli *InteractiveSolveCLI) showStatus() {
	state := cli.workflow.State()
	image, ok := cli.workflow.Selection()
	if !ok {
		cli.display.Printf("State: %s, no image selected\n", state)
		return
	}
	cli.display.Printf("State: %s, image: %s (%s)\n", state, image.Name, image.ContentType)
}
