// Package session drives the submit, wait and attach workflow for
// interactive sessions running inside scheduler jobs.
package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/RevCBH/smux/internal/driver"
	"github.com/RevCBH/smux/internal/slurm"
)

// Scheduler is the subset of the scheduler client the orchestrator uses.
type Scheduler interface {
	ListJobs(ctx context.Context) ([]slurm.Job, error)
	ResolveNode(ctx context.Context, jobID string) (string, error)
	ResolveName(ctx context.Context, jobID string) (string, error)
	ResolveIdentifier(ctx context.Context, query string) (string, error)
	Submit(ctx context.Context, opts slurm.SubmitOptions, script []byte) (*slurm.SubmitResult, error)
}

var _ Scheduler = (*slurm.Client)(nil)

// Outcome is where a NewSession run ended up.
type Outcome string

const (
	// OutcomeAttached means the attacher was invoked for the new job
	OutcomeAttached Outcome = "attached"

	// OutcomeNoJob means no job appeared in the queue after submission
	OutcomeNoJob Outcome = "no-job"

	// OutcomeNotStarted means the job is queued but did not start within
	// the polling budget. It keeps running server-side.
	OutcomeNotStarted Outcome = "not-started"

	// OutcomeMultipleJobs means more than one job was visible so smux
	// refused to pick one
	OutcomeMultipleJobs Outcome = "multiple-jobs"
)

// Config controls an Orchestrator.
type Config struct {
	Driver    driver.Kind
	SocketDir string

	// SubmitDelay is waited once if the queue is empty right after submission
	SubmitDelay time.Duration

	// PollInterval and PollAttempts bound the wait for a pending job
	PollInterval time.Duration
	PollAttempts int

	// AttachDelay is waited before handing off to the attacher
	AttachDelay time.Duration

	// ProgramName is used in guidance messages. Default: "smux".
	ProgramName string

	// Out receives progress and guidance, Err receives scheduler warnings
	Out io.Writer
	Err io.Writer

	// Sleep waits for d or until ctx is done. Default: a timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Orchestrator acquires a job for a session and attaches to it.
type Orchestrator struct {
	sched    Scheduler
	attacher Attacher
	cfg      Config
}

// New creates an Orchestrator.
func New(sched Scheduler, attacher Attacher, cfg Config) *Orchestrator {
	if cfg.ProgramName == "" {
		cfg.ProgramName = "smux"
	}
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	if cfg.Err == nil {
		cfg.Err = io.Discard
	}
	if cfg.Sleep == nil {
		cfg.Sleep = sleep
	}
	return &Orchestrator{sched: sched, attacher: attacher, cfg: cfg}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NewSession submits a job running the driver's session script, waits for
// it to start and attaches to it. It never cancels or resubmits a job.
//
// On error the returned Outcome is empty, except for OutcomeNoJob which
// comes with a *slurm.SubmissionError carrying sbatch's stderr.
func (o *Orchestrator) NewSession(ctx context.Context, opts slurm.SubmitOptions) (Outcome, error) {
	script, err := driver.NewSessionScript(o.cfg.Driver, o.cfg.SocketDir)
	if err != nil {
		return "", err
	}
	if err := driver.Prepare(o.cfg.Driver, o.cfg.SocketDir); err != nil {
		return "", err
	}

	fmt.Fprintln(o.cfg.Out, "Requesting an interactive session")
	res, err := o.sched.Submit(ctx, opts, script)
	if err != nil {
		return "", err
	}
	if res.Stderr != "" {
		fmt.Fprint(o.cfg.Err, res.Stderr)
	}
	if res.JobID != "" {
		log.Printf("submitted job %s", res.JobID)
	}

	jobs, err := o.sched.ListJobs(ctx)
	if err != nil {
		return "", err
	}
	if len(jobs) == 0 {
		// Freshly submitted jobs can take a moment to show up in squeue
		if err := o.cfg.Sleep(ctx, o.cfg.SubmitDelay); err != nil {
			return "", err
		}
		if jobs, err = o.sched.ListJobs(ctx); err != nil {
			return "", err
		}
	}

	switch {
	case len(jobs) == 0:
		o.printNoJob()
		return OutcomeNoJob, &slurm.SubmissionError{Stderr: res.Stderr}
	case len(jobs) > 1:
		o.printMultiple()
		return OutcomeMultipleJobs, nil
	case jobs[0].State.Running():
		return OutcomeAttached, o.attach(ctx, jobs[0].ID, jobs[0].Name)
	}

	return o.waitForStart(ctx)
}

// waitForStart polls a single pending job until it runs or the attempt
// budget is spent.
func (o *Orchestrator) waitForStart(ctx context.Context) (Outcome, error) {
	fmt.Fprint(o.cfg.Out, "Waiting to see if your interactive session starts")

	for attempt := 1; attempt <= o.cfg.PollAttempts; attempt++ {
		if err := o.cfg.Sleep(ctx, o.cfg.PollInterval); err != nil {
			fmt.Fprintln(o.cfg.Out)
			return "", err
		}

		jobs, err := o.sched.ListJobs(ctx)
		if err != nil {
			fmt.Fprintln(o.cfg.Out)
			return "", err
		}
		fmt.Fprint(o.cfg.Out, ".")

		if len(jobs) > 1 {
			fmt.Fprintln(o.cfg.Out)
			o.printMultiple()
			return OutcomeMultipleJobs, nil
		}
		if len(jobs) == 1 && jobs[0].State.Running() {
			fmt.Fprintln(o.cfg.Out)
			return OutcomeAttached, o.attach(ctx, jobs[0].ID, jobs[0].Name)
		}
		log.Printf("attempt %d/%d: session not running yet", attempt, o.cfg.PollAttempts)
	}

	fmt.Fprintln(o.cfg.Out)
	o.printNotStarted()
	return OutcomeNotStarted, nil
}

// Connect attaches to an existing session. identifier may be a job ID or
// name; when empty the queue must hold exactly one job.
func (o *Orchestrator) Connect(ctx context.Context, identifier string) error {
	var jobID string
	if identifier != "" {
		id, err := o.sched.ResolveIdentifier(ctx, identifier)
		if err != nil {
			return err
		}
		jobID = id
	}

	jobs, err := o.sched.ListJobs(ctx)
	if err != nil {
		return err
	}

	if jobID == "" {
		if len(jobs) != 1 {
			return &AmbiguousOrNotRunningError{Jobs: len(jobs)}
		}
		jobID = jobs[0].ID
	}

	name := ""
	for _, j := range jobs {
		if j.ID != jobID {
			continue
		}
		if !j.State.Running() {
			return &NotRunningError{JobID: jobID}
		}
		name = j.Name
	}

	return o.attach(ctx, jobID, name)
}

// AttachJob attaches to a job the user picked from a listing.
func (o *Orchestrator) AttachJob(ctx context.Context, job slurm.Job) error {
	if !job.State.Running() {
		return &NotRunningError{JobID: job.ID}
	}
	return o.attach(ctx, job.ID, job.Name)
}

// attach resolves where the job runs and hands over to the attacher.
// fallbackName is used if the scheduler reports no name.
func (o *Orchestrator) attach(ctx context.Context, jobID, fallbackName string) error {
	node, err := o.sched.ResolveNode(ctx, jobID)
	if err != nil {
		return err
	}
	if node == "" {
		return &NotRunningError{JobID: jobID}
	}

	name, err := o.sched.ResolveName(ctx, jobID)
	if err != nil {
		return err
	}
	if name == "" {
		name = fallbackName
	}

	command, err := driver.AttachCommand(o.cfg.Driver, o.cfg.SocketDir, name)
	if err != nil {
		return err
	}

	if err := o.cfg.Sleep(ctx, o.cfg.AttachDelay); err != nil {
		return err
	}

	log.Printf("attaching to job %s on %s", jobID, node)
	return o.attacher.Attach(node, command)
}

func (o *Orchestrator) printNoJob() {
	w := o.cfg.Out
	fmt.Fprintln(w, "Your job failed to submit for some reason.")
	fmt.Fprintln(w, "Please look above for any error messages from sbatch.")
	fmt.Fprintln(w, "One possibility is you asked for an invalid combination of resources,")
	fmt.Fprintln(w, "another is a typo on the command line. Try adding options one at a time.")
}

func (o *Orchestrator) printMultiple() {
	w := o.cfg.Out
	fmt.Fprintln(w, "I can't connect you straight to your session because you have more than one session running")
	fmt.Fprintf(w, "use %s list to list your sessions\n", o.cfg.ProgramName)
	fmt.Fprintf(w, "%s attach <jobid> to connect to the correct session\n", o.cfg.ProgramName)
}

func (o *Orchestrator) printNotStarted() {
	w := o.cfg.Out
	fmt.Fprintln(w, "I can't connect you straight to your session because it hasn't started yet")
	fmt.Fprintf(w, "use %s list to determine when it starts and\n", o.cfg.ProgramName)
	fmt.Fprintf(w, "%s attach <jobid> to connect once it has started\n", o.cfg.ProgramName)
}
