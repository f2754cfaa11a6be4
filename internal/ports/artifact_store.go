package ports

import "github.com/aalvaropc/recur/internal/domain"

// ArtifactStore persists comparison runs for reproducibility.
type ArtifactStore interface {
	SaveRun(run domain.RunArtifact) (id string, err error)
}
