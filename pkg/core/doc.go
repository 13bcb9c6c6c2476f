// Package core defines the shared language of the phonet system.
//
// This package contains:
//   - Validation verdicts (Validity)
//   - Test definitions and outcomes (TestDefinition, TestResult, FailReason)
//   - Display levels used when presenting results
//   - Typed parse/compile errors and their sentinel kinds
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
