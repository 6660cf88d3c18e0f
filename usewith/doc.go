// Package usewith provides scope runners for owned resources. A runner
// takes a resource and an operation, hands the resource to the operation,
// and guarantees the resource's release runs exactly once after the
// operation completes, whether it returns normally, fails, or panics.
package usewith
