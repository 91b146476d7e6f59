package bop

// Limits bounds a single execution's forward progress and resident
// memory. Both bounds are enforced by tick(), which runs at the start of
// every statement and every loop iteration.
type Limits struct {
	// MaxSteps is the maximum number of ticks before execution halts
	// with a "took too many steps" resource error.
	MaxSteps uint64
	// MaxMemory is the maximum number of bytes the Memory Ledger may
	// track before execution halts with a "memory limit exceeded"
	// resource error. Zero means unbounded.
	MaxMemory uint64
}

// Standard is the default preset: 10,000 steps, 10 MiB.
func Standard() Limits {
	return Limits{MaxSteps: 10_000, MaxMemory: 10 * 1024 * 1024}
}

// Demo is a tighter preset for sandboxes that want fast, visible
// failures: 1,000 steps, 1 MiB.
func Demo() Limits {
	return Limits{MaxSteps: 1_000, MaxMemory: 1024 * 1024}
}
