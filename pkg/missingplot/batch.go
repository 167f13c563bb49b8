package missingplot

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/missingplot-go/pkg/missingplot/models"
)

// Design is a named table submitted to EstimateBatch.
type Design struct {
	Name  string
	Table *models.Table
}

// BatchResult is the outcome for one design of a batch.
type BatchResult struct {
	Name   string
	Result *models.EstimationResult
	Err    error
}

// EstimateBatch estimates independent designs on up to workers goroutines.
// A failing design does not stop the others; its error is reported in its
// BatchResult. Designs not started before ctx is done report ctx.Err().
// Results are in the order of designs.
func EstimateBatch(ctx context.Context, designs []Design, opts Options, workers int) []BatchResult {
	results := make([]BatchResult, len(designs))
	if workers < 1 {
		workers = 1
	}

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, d := range designs {
		results[i].Name = d.Name
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Result, results[i].Err = Estimate(d.Table, opts)
			return nil
		})
	}
	g.Wait()

	return results
}

// Items converts batch results to their serializable form.
func Items(results []BatchResult) []models.BatchItem {
	items := make([]models.BatchItem, len(results))
	for i, r := range results {
		items[i] = models.BatchItem{Name: r.Name, Result: r.Result}
		if r.Err != nil {
			items[i].Error = r.Err.Error()
		}
	}
	return items
}
