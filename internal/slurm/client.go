package slurm

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	DefaultSqueueCommand = "squeue"
	DefaultSbatchCommand = "sbatch"
)

// queueFormat yields "id,name,state" per job.
const queueFormat = "%A,%j,%t"

var submittedRe = regexp.MustCompile(`Submitted batch job (\S+)`)

// ClientConfig configures a Client.
type ClientConfig struct {
	// User whose jobs are queried. Ignored when AllUsers is set.
	User string

	// AllUsers widens every queue query to the whole cluster
	AllUsers bool

	// SqueueCommand and SbatchCommand override the scheduler binaries
	SqueueCommand string
	SbatchCommand string
}

// Client wraps the Slurm command line tools.
type Client struct {
	cfg    ClientConfig
	runner Runner
}

// NewClient creates a scheduler client. A nil runner executes real commands.
func NewClient(cfg ClientConfig, runner Runner) *Client {
	if cfg.SqueueCommand == "" {
		cfg.SqueueCommand = DefaultSqueueCommand
	}
	if cfg.SbatchCommand == "" {
		cfg.SbatchCommand = DefaultSbatchCommand
	}
	if runner == nil {
		runner = OSRunner{}
	}
	return &Client{cfg: cfg, runner: runner}
}

// AllUsers reports whether queries span every user's jobs.
func (c *Client) AllUsers() bool {
	return c.cfg.AllUsers
}

// userFilter returns the squeue arguments restricting output to the user.
func (c *Client) userFilter() []string {
	if c.cfg.AllUsers || c.cfg.User == "" {
		return nil
	}
	return []string{"-u", c.cfg.User}
}

// ListJobs returns the queued and running jobs in scheduler order.
func (c *Client) ListJobs(ctx context.Context) ([]Job, error) {
	args := append(c.userFilter(), "--noheader", "-o", queueFormat)
	out, err := c.runner.Exec(ctx, c.cfg.SqueueCommand, args...)
	if err != nil {
		return nil, &QueryError{Reason: "listing jobs", Err: err}
	}
	return ParseJobs(out.Stdout)
}

// ParseJobs parses squeue output in "id,name,state" form, one job per line.
func ParseJobs(output string) ([]Job, error) {
	var jobs []Job
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 3 {
			return nil, &QueryError{
				Line:   line,
				Reason: fmt.Sprintf("expected 3 fields, got %d", len(fields)),
			}
		}
		jobs = append(jobs, Job{
			ID:    strings.TrimSpace(fields[0]),
			Name:  fields[1],
			State: State(strings.TrimSpace(fields[2])),
		})
	}
	return jobs, nil
}

// ResolveNode returns the batch host assigned to a job, or "" if the job
// has not been scheduled onto a node yet.
func (c *Client) ResolveNode(ctx context.Context, jobID string) (string, error) {
	return c.jobField(ctx, jobID, "%B")
}

// ResolveName returns the job's display name.
func (c *Client) ResolveName(ctx context.Context, jobID string) (string, error) {
	return c.jobField(ctx, jobID, "%j")
}

func (c *Client) jobField(ctx context.Context, jobID, format string) (string, error) {
	out, err := c.runner.Exec(ctx, c.cfg.SqueueCommand, "--job", jobID, "-o", format, "-h")
	if err != nil {
		return "", &QueryError{Reason: fmt.Sprintf("querying job %s", jobID), Err: err}
	}
	return strings.TrimSpace(out.Stdout), nil
}

// SubmitArgs builds the sbatch argument list for opts.
func SubmitArgs(opts SubmitOptions) []string {
	args := []string{
		"--ntasks=" + strconv.Itoa(opts.NTasks),
		"-J", opts.JobName,
	}
	optional := []struct {
		flag  string
		value string
	}{
		{"--account", opts.Account},
		{"--partition", opts.Partition},
		{"--reservation", opts.Reservation},
		{"--cpus-per-task", positive(opts.CPUsPerTask)},
		{"--nodes", positive(opts.Nodes)},
		{"--mem", opts.Mem},
		{"--gres", opts.Gres},
		{"--qos", opts.QoS},
		{"--time", opts.Time},
	}
	for _, o := range optional {
		if o.value != "" {
			args = append(args, o.flag+"="+o.value)
		}
	}
	args = append(args, "--output="+opts.Output, "--error="+opts.Error)
	return args
}

func positive(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// Submit hands script to sbatch as the job body. A rejected request is
// returned as a *SubmissionError carrying sbatch's stderr.
func (c *Client) Submit(ctx context.Context, opts SubmitOptions, script []byte) (*SubmitResult, error) {
	out, err := c.runner.ExecWithStdin(ctx, script, c.cfg.SbatchCommand, SubmitArgs(opts)...)
	if err != nil {
		stderr := out.Stderr
		var cmdErr *CommandError
		if stderr == "" && errors.As(err, &cmdErr) {
			stderr = cmdErr.Stderr
		}
		return nil, &SubmissionError{Stderr: stderr, Err: err}
	}

	result := &SubmitResult{Stdout: out.Stdout, Stderr: out.Stderr}
	if m := submittedRe.FindStringSubmatch(out.Stdout); m != nil {
		result.JobID = m[1]
	}
	return result, nil
}

// ResolveIdentifier finds a job by ID or name. Each queue line ("id name")
// is matched by substring and the first hit in queue order wins, so a
// query that is a prefix of several IDs or names resolves to the earliest.
func (c *Client) ResolveIdentifier(ctx context.Context, query string) (string, error) {
	args := append(c.userFilter(), "-h", "-o", "%i %j")
	out, err := c.runner.Exec(ctx, c.cfg.SqueueCommand, args...)
	if err != nil {
		return "", &QueryError{Reason: "resolving job identifier", Err: err}
	}

	for _, line := range strings.Split(out.Stdout, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, query) {
			continue
		}
		id, _, _ := strings.Cut(line, " ")
		return id, nil
	}
	return "", &NotFoundError{Query: query}
}
