// Package domain contains shared domain types used across entity sub-packages.
// The project entity lives in domain/project and the field constraint checker
// in domain/validation. This root package holds the sentinel errors and the
// field-level ValidationError shared by every layer.
package domain
