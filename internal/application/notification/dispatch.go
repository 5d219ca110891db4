package notification

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// maxInFlight límite de envíos concurrentes por operación.
const maxInFlight = 4

// Job un envío individual.
type Job func(ctx context.Context) error

// Dispatch ejecuta los envíos en paralelo (acotado) y reporta cada fallo a onError.
// Nunca devuelve error: el documento ya quedó confirmado.
func Dispatch(ctx context.Context, jobs []Job, onError func(error)) {
	if len(jobs) == 0 {
		return
	}
	var g errgroup.Group
	g.SetLimit(maxInFlight)
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			if err := job(ctx); err != nil && onError != nil {
				onError(err)
			}
			return nil
		})
	}
	_ = g.Wait()
}
