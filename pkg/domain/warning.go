package domain

// Rule names reported in warnings.
const (
	RuleUpstreamBinding     = "upstream-binding"
	RuleDownstreamUnbinding = "downstream-unbinding"

	// Audit-only findings.
	RuleUnknownDestination = "unknown-destination"
	RuleInvalidAssignment  = "invalid-assignment"
)

// Warning is a non-blocking validation message.
type Warning struct {
	Rule    string `json:"rule"`
	NodeID  string `json:"node_id"`
	Message string `json:"message"`

	// Related holds the IDs of the nodes that triggered the rule, if any.
	Related []string `json:"related,omitempty"`
}

// CheckResult is the outcome of a quick pre-check.
type CheckResult struct {
	HasWarnings  bool      `json:"has_warnings"`
	WarningCount int       `json:"warning_count"`
	Warnings     []Warning `json:"warnings"`
}

// NewCheckResult builds a CheckResult from a list of warnings.
func NewCheckResult(warnings []Warning) CheckResult {
	if warnings == nil {
		warnings = []Warning{}
	}
	return CheckResult{
		HasWarnings:  len(warnings) > 0,
		WarningCount: len(warnings),
		Warnings:     warnings,
	}
}

// Top returns the first warning, if any.
func (r CheckResult) Top() (Warning, bool) {
	if len(r.Warnings) == 0 {
		return Warning{}, false
	}
	return r.Warnings[0], true
}
