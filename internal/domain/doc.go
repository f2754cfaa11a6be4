// Package domain contains the core model for recur: recurrence parameters,
// scenarios, comparisons between the iterative and closed-form evaluators,
// and the workspace configuration.
//
// The domain does not depend on YAML parsing, expression evaluation, or the
// filesystem. Infra/adapters map into/from these types.
package domain
