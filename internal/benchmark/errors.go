package benchmark

import "errors"

// ErrDiagnosisTimeout marks a diagnosis invocation that exceeded its
// per-scenario wall-clock budget. Recorded as score 0, never a crash.
var ErrDiagnosisTimeout = errors.New("diagnosis timed out")

// ErrMissingGroundTruth marks a scenario that cannot be scored. Such
// scenarios are skipped and excluded from averages.
var ErrMissingGroundTruth = errors.New("missing ground truth")
