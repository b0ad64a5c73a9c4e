package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/RevCBH/smux/internal/config"
	"github.com/RevCBH/smux/internal/driver"
	"github.com/RevCBH/smux/internal/session"
	"github.com/RevCBH/smux/internal/slurm"
)

// VersionInfo holds build-time version information
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// App represents the CLI application with all wired dependencies
type App struct {
	// Root command
	rootCmd *cobra.Command

	// Configuration (loaded before any subcommand runs)
	cfg *config.Config

	// Global flags
	configPath string
	driverKind driver.Kind
	allUsers   bool
	verbose    bool

	// Version information
	versionInfo VersionInfo

	// Collaborators, replaced in tests
	runner   slurm.Runner
	attacher session.Attacher
	sleep    func(ctx context.Context, d time.Duration) error

	// notifySignals registers OS signal handling while waiting
	notifySignals bool
}

// New creates a new CLI application
func New() *App {
	app := &App{
		driverKind:    driver.DefaultKind,
		notifySignals: true,
	}
	app.setupRootCmd()
	return app
}

// Execute runs the CLI application
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// Run executes the CLI with os.Args, reports any error and returns the
// process exit status.
func (a *App) Run() int {
	cmd, err := a.rootCmd.ExecuteC()
	if err == nil {
		return 0
	}
	usage := ""
	if cmd != nil {
		usage = cmd.UsageString()
	}
	Report(a.rootCmd.ErrOrStderr(), err, usage)
	return 1
}

// SetVersion sets the version string for the version command
func (a *App) SetVersion(version, commit, date string) {
	a.versionInfo = VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// programName is the name used in help and guidance text
func programName() string {
	if len(os.Args) > 0 {
		if name := filepath.Base(os.Args[0]); name != "" && name != "." {
			return name
		}
	}
	return "smux"
}

// setupRootCmd configures the root Cobra command
func (a *App) setupRootCmd() {
	prog := programName()
	a.rootCmd = &cobra.Command{
		Use:   prog,
		Short: "Create and reconnect to interactive sessions on a Slurm cluster",
		Long: fmt.Sprintf(`A tool to create and reconnect to interactive sessions

Use "%[1]s new" to create a new session
Use "%[1]s list" to list existing sessions
Use "%[1]s attach <ID>" to connect to an existing session

<ID> is optional if you only have one job.

When in a tmux session, press control+b then d to detach from the session.
When in a dtach session, press control+\ to detach.`, prog),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.loadConfig,
	}

	// Add persistent flags
	flags := a.rootCmd.PersistentFlags()
	flags.VarP(&a.driverKind, "driver", "d", "The session driver, either 'dtach' or 'tmux'")
	flags.BoolVar(&a.allUsers, "all-users", false, "Consider every user's jobs, not just your own")
	flags.StringVar(&a.configPath, "config", "", "Config file (default ~/.smux/config.yaml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Verbose output")

	a.rootCmd.AddCommand(
		NewNewCmd(a),
		NewAttachCmd(a),
		NewListCmd(a),
		NewPickCmd(a),
		NewWaitingCmd(a),
		NewVersionCmd(a),
	)
}

// loadConfig loads the config file and layers global flags on top
func (a *App) loadConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("driver") {
		cfg.Driver = a.driverKind.String()
	}
	if cmd.Flags().Changed("all-users") {
		cfg.AllUsers = a.allUsers
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = a.verbose
	}

	log.SetOutput(io.Discard)
	if cfg.Verbose {
		log.SetOutput(cmd.ErrOrStderr())
		log.SetPrefix(programName() + ": ")
	}

	a.cfg = cfg
	return nil
}

// client builds the scheduler client from the loaded config
func (a *App) client() *slurm.Client {
	return slurm.NewClient(a.cfg.ClientConfig(), a.runner)
}

// orchestrator wires the scheduler client, driver and attacher together
func (a *App) orchestrator(cmd *cobra.Command) (*session.Orchestrator, error) {
	kind, err := a.cfg.DriverKind()
	if err != nil {
		return nil, err
	}
	submitDelay, pollInterval, attachDelay, err := a.cfg.Wait.Durations()
	if err != nil {
		return nil, err
	}

	attacher := a.attacher
	if attacher == nil {
		attacher = session.NewSSHAttacher(a.cfg.Commands.SSH)
	}

	return session.New(a.client(), attacher, session.Config{
		Driver:       kind,
		SocketDir:    a.cfg.Dtach.SocketDir,
		SubmitDelay:  submitDelay,
		PollInterval: pollInterval,
		PollAttempts: a.cfg.Wait.PollAttempts,
		AttachDelay:  attachDelay,
		ProgramName:  programName(),
		Out:          cmd.OutOrStdout(),
		Err:          cmd.ErrOrStderr(),
		Sleep:        a.sleep,
	}), nil
}
