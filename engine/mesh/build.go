package mesh

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
)

// Builder produces mesh data on the CPU. Builders run concurrently and must not touch the device.
type Builder func() backend.MeshData

// BuildAll runs the builders on a worker pool and wraps the results in meshes, in builder order.
// Uploading stays on the render thread.
//
// Parameters:
//   - ctx: cancels the wait for outstanding builders
//   - builders: the geometry generators
//
// Returns:
//   - []Mesh: one mesh per builder
//   - error: ctx.Err() if the context ended before every builder finished
func BuildAll(ctx context.Context, builders ...Builder) ([]Mesh, error) {
	if len(builders) == 0 {
		return nil, nil
	}

	pool := worker.NewDynamicWorkerPool(min(len(builders), runtime.NumCPU()), len(builders), time.Second)

	results := make([]backend.MeshData, len(builders))
	var wg sync.WaitGroup
	for i, build := range builders {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				results[i] = build()
				return nil, nil
			},
		})
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	meshes := make([]Mesh, len(results))
	for i, data := range results {
		meshes[i] = NewMesh(data)
	}
	return meshes, nil
}
