package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/alexanderramin/incubator/internal/api"
	"github.com/alexanderramin/incubator/internal/config"
	"github.com/alexanderramin/incubator/internal/repository"
	"github.com/alexanderramin/incubator/internal/service"
	"github.com/alexanderramin/incubator/internal/session"
	"github.com/spf13/cobra"
)

// App holds the services and settings CLI commands run against.
type App struct {
	Coach    service.CoachService
	Sessions *session.Store
	Model    api.ModelStatus
	// Calls is nil when telemetry storage could not be opened.
	Calls  repository.CallLogRepo
	Config *config.Config
	Logger *slog.Logger

	In  io.Reader
	Out io.Writer

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) stdin() io.Reader {
	if a.In != nil {
		return a.In
	}
	return os.Stdin
}

func (a *App) stdout() io.Writer {
	if a.Out != nil {
		return a.Out
	}
	return os.Stdout
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// NewRootCmd creates the top-level "incubator" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "incubator",
		Short:         "Business model canvas and design coach for student founders",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return bindEnvFlags(cmd.Flags(), os.LookupEnv)
		},
	}
	root.SetOut(app.stdout())
	root.SetIn(app.stdin())

	root.AddCommand(
		newServeCmd(app),
		newBMCCmd(app),
		newAskCmd(app),
		newCallsCmd(app),
	)

	return root
}
