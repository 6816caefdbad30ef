// Package workflow defines the application status vocabulary, the ordered
// progression rendered as a step tracker, and the transition rules enforced
// when staff move an application forward.
package workflow

// Status is the internal value stored on an application row. User-facing
// labels are Indonesian and come from Label.
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusScreening Status = "screening"
	StatusInterview Status = "interview"
	StatusAccepted  Status = "accepted"
	StatusDeployed  Status = "deployed"
	StatusRejected  Status = "rejected"
)

// Step is one node of the progress tracker.
type Step struct {
	Key   Status `json:"key"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

var forwardPath = []Step{
	{Key: StatusSubmitted, Label: "Dikirim", Icon: "clock"},
	{Key: StatusScreening, Label: "Seleksi", Icon: "file-check"},
	{Key: StatusInterview, Label: "Interview", Icon: "users"},
	{Key: StatusAccepted, Label: "Diterima", Icon: "check-circle"},
	{Key: StatusDeployed, Label: "Berangkat", Icon: "plane"},
}

var rejectedPath = []Step{
	{Key: StatusSubmitted, Label: "Dikirim", Icon: "clock"},
	{Key: StatusScreening, Label: "Seleksi", Icon: "file-check"},
	{Key: StatusInterview, Label: "Interview", Icon: "users"},
	{Key: StatusRejected, Label: "Ditolak", Icon: "x-circle"},
}

// Known reports whether s is one of the six enumerated statuses.
func Known(s Status) bool {
	switch s {
	case StatusSubmitted, StatusScreening, StatusInterview, StatusAccepted, StatusDeployed, StatusRejected:
		return true
	default:
		return false
	}
}

// StepsFor returns the tracker steps applicable to the status branch: the
// rejection path for rejected applications, the forward path otherwise. The
// returned slice is a copy and safe to modify.
func StepsFor(s Status) []Step {
	src := forwardPath
	if s == StatusRejected {
		src = rejectedPath
	}
	steps := make([]Step, len(src))
	copy(steps, src)
	return steps
}

// CurrentIndex returns the branch steps for s and the position of s within
// them. Unknown statuses yield -1 so callers render zero progress instead of
// failing.
func CurrentIndex(s Status) ([]Step, int) {
	steps := StepsFor(s)
	for i, step := range steps {
		if step.Key == s {
			return steps, i
		}
	}
	return steps, -1
}

// ProgressPercent converts a tracker position into a 0-100 width. A missing
// index or a single-step list renders as zero rather than dividing by zero.
func ProgressPercent(steps []Step, idx int) int {
	if idx < 0 || len(steps) < 2 {
		return 0
	}
	return idx * 100 / (len(steps) - 1)
}

// Terminal reports whether no further transition is allowed from s.
func Terminal(s Status) bool {
	return s == StatusDeployed || s == StatusRejected
}

// CanTransition reports whether staff may move an application from one
// status to another. The forward path is one-way; skipping ahead is allowed
// but moving backward is not. Rejection is reachable from submitted,
// screening, or interview only.
func CanTransition(from, to Status) bool {
	if !Known(from) || !Known(to) || from == to {
		return false
	}
	if Terminal(from) {
		return false
	}
	if to == StatusRejected {
		return from == StatusSubmitted || from == StatusScreening || from == StatusInterview
	}
	return forwardIndex(to) > forwardIndex(from)
}

func forwardIndex(s Status) int {
	for i, step := range forwardPath {
		if step.Key == s {
			return i
		}
	}
	return -1
}

// Label returns the Indonesian display label for a status, or the raw value
// verbatim when the status is unknown.
func Label(s Status) string {
	for _, step := range append(StepsFor(StatusRejected), StepsFor(StatusSubmitted)...) {
		if step.Key == s {
			return step.Label
		}
	}
	return string(s)
}
