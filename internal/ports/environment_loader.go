package ports

import "github.com/aalvaropc/recur/internal/domain"

// EnvironmentLoader loads environment vars from a source (e.g., filesystem).
type EnvironmentLoader interface {
	LoadEnvironment(nameOrPath string) (domain.Environment, error)
}
