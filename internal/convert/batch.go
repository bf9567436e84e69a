package convert

import (
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// BatchResult holds the outcome of converting one model in a batch.
type BatchResult struct {
	Name     string
	Err      error
	Warnings int
}

// ConvertAll converts every POF file in the source matching pattern
// using a fixed worker pool. One BatchResult is returned per matched
// model, in match order; a failed conversion never stops the rest of
// the batch.
func (c *Converter) ConvertAll(pattern string, workers int) []BatchResult {
	names := matchModels(c.src.List(), pattern)
	results := make([]BatchResult, len(names))
	if len(names) == 0 {
		return results
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(names) {
		workers = len(names)
	}

	var done atomic.Int64
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				name := names[idx]
				res, err := c.Convert(name)
				results[idx] = BatchResult{Name: name, Err: err}
				if err == nil {
					results[idx].Warnings = len(res.Warnings)
				}
				n := done.Add(1)
				c.log.Debug("batch progress",
					zap.Int64("done", n),
					zap.Int("total", len(names)))
			}
		}()
	}

	for i := range names {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
