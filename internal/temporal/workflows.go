package temporal

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/workflow"
)

// BatchInput holds the workflow parameters: the dataset table to generate.
type BatchInput struct {
	Datasets []GenerateInput
}

// BatchOutput holds the workflow result. Failed lists every configuration
// that did not complete, not just the first.
type BatchOutput struct {
	Results []GenerateResult
	Failed  []string
}

// BatchWorkflow fans out one generation activity per dataset spec, runs them
// concurrently, and waits for all of them before reporting. A failed spec
// never halts its siblings; there are no retries beyond running again.
func BatchWorkflow(ctx workflow.Context, input BatchInput) (*BatchOutput, error) {
	if len(input.Datasets) == 0 {
		return nil, fmt.Errorf("no dataset specs in input")
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Minute,
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	futures := make([]workflow.Future, len(input.Datasets))
	for i, spec := range input.Datasets {
		futures[i] = workflow.ExecuteActivity(ctx, GenerateDatasetActivity, spec)
	}

	output := &BatchOutput{}
	for i, f := range futures {
		var res GenerateResult
		if err := f.Get(ctx, &res); err != nil {
			output.Failed = append(output.Failed,
				fmt.Sprintf("%s: %v", input.Datasets[i].OutputPath, err))
			continue
		}
		output.Results = append(output.Results, res)
	}
	return output, nil
}
