package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/userfeed/internal/client/config"
	"github.com/dmitrijs2005/userfeed/internal/logging"
	"github.com/dmitrijs2005/userfeed/internal/pipeline"
	"github.com/dmitrijs2005/userfeed/internal/randomuser"
)

type App struct {
	pipeline    *pipeline.Pipeline
	logger      logging.Logger
	in          io.Reader
	out         io.Writer
	interactive bool
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	client, err := randomuser.NewClient(c.Client(randomuser.StatusHook(logger)), logger)
	if err != nil {
		return nil, err
	}

	p := pipeline.New(client, pipeline.WithLogger(logger))
	return newApp(p, os.Stdin, os.Stdout, isTerminal(os.Stdout), logger), nil
}

func newApp(p *pipeline.Pipeline, in io.Reader, out io.Writer, interactive bool, logger logging.Logger) *App {
	return &App{
		pipeline:    p,
		logger:      logger.With("module", "cli"),
		in:          in,
		out:         out,
		interactive: interactive,
	}
}

// Run performs the startup fetch and then serves commands until exit.
// The pipeline is closed on return.
func (a *App) Run(ctx context.Context) {
	defer a.pipeline.Close()

	printlnFn("Welcome to userfeed (type 'help' for commands)")
	_ = a.Fetch(ctx)

	runREPL(ctx, a, a.prompt, bufio.NewScanner(a.in))
}

// prompt is empty when output is not a terminal, which suppresses it.
func (a *App) prompt() string {
	if !a.interactive {
		return ""
	}
	return "users (" + string(a.pipeline.State().Kind()) + ")> "
}
