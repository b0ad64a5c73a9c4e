package slurm

// State is the compact Slurm job state code as printed by squeue's %t field
// (R, PD, CG, CF, ...). Only the running state matters to smux.
type State string

const (
	StateRunning State = "R"
	StatePending State = "PD"
)

// Running reports whether the job is executing on a node.
func (s State) Running() bool {
	return s == StateRunning
}

// Job is one entry from the scheduler queue.
// Jobs are rebuilt on every query and never mutated.
type Job struct {
	ID    string
	Name  string
	State State
}

// SubmitOptions are the resource requests passed to sbatch.
// Zero values for optional fields leave the flag off entirely.
type SubmitOptions struct {
	// NTasks is the number of tasks to launch. Always sent.
	NTasks int `yaml:"ntasks"`

	// Nodes is the number of nodes requested (0 = scheduler default)
	Nodes int `yaml:"nodes,omitempty"`

	// Mem is the memory request, e.g. "16G"
	Mem string `yaml:"mem,omitempty"`

	// CPUsPerTask is the number of CPUs per task (0 = scheduler default)
	CPUsPerTask int `yaml:"cpus_per_task,omitempty"`

	// QoS is the quality of service; some are only valid on some partitions
	QoS string `yaml:"qos,omitempty"`

	// JobName names the job and, through $SLURM_JOB_NAME, the session
	JobName string `yaml:"job_name"`

	Account     string `yaml:"account,omitempty"`
	Partition   string `yaml:"partition,omitempty"`
	Reservation string `yaml:"reservation,omitempty"`

	// Time is the wall clock limit in any format sbatch accepts
	Time string `yaml:"time,omitempty"`

	// Gres is the generic resource spec, typically GPUs ("gpu:1")
	Gres string `yaml:"gres,omitempty"`

	// Output and Error are file name templates; %j expands to the job ID
	Output string `yaml:"output"`
	Error  string `yaml:"error"`
}

// SubmitResult is what sbatch reported for an accepted submission.
type SubmitResult struct {
	// JobID is parsed from "Submitted batch job <id>"; empty if absent
	JobID  string
	Stdout string
	Stderr string
}
