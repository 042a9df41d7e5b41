package services

import (
	"context"
	"fmt"

	"travelplanner/internal/utils"
)

// WriteOp is one step of a multi-table update. Only Required steps can fail
// the plan; the rest are best-effort copies of the authoritative value.
type WriteOp struct {
	Name     string
	Required bool
	Exec     func(ctx context.Context) error
}

type WritePlan []WriteOp

type WriteFailure struct {
	Name string
	Err  error
}

type WriteResult struct {
	Applied []string
	Failed  []WriteFailure
}

// Warnings renders best-effort failures for the response body.
func (r WriteResult) Warnings() []string {
	if len(r.Failed) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.Failed))
	for _, f := range r.Failed {
		out = append(out, fmt.Sprintf("%s: %v", f.Name, f.Err))
	}
	return out
}

// Run executes ops in order. The first failing required op stops the plan and
// its error is returned wrapped; optional failures are logged and collected.
func (p WritePlan) Run(ctx context.Context, module string) (WriteResult, error) {
	var res WriteResult
	reqID := utils.RequestIDFrom(ctx)
	for _, op := range p {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := op.Exec(ctx); err != nil {
			if op.Required {
				utils.LogError(reqID, module, op.Name, err, "")
				return res, fmt.Errorf("%s: %w", op.Name, err)
			}
			utils.LogEvent(reqID, module, op.Name, "best-effort write failed: "+err.Error())
			res.Failed = append(res.Failed, WriteFailure{Name: op.Name, Err: err})
			continue
		}
		res.Applied = append(res.Applied, op.Name)
	}
	return res, nil
}
