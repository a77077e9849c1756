// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package service

type Service interface {
	ServiceReady() bool
}

// ServiceConfig is the configuration for the Services.
type ServiceConfig struct {
	// SkipEtagValidation is a flag to skip the Etag validation - only meant for local development.
	SkipEtagValidation bool
	// SkipTimeCheck relaxes the guard that a meeting can only be started at or
	// after its scheduled start time - only meant for local development.
	SkipTimeCheck bool
	// RetentionDays is how long a completed meeting stays in the recent
	// sub-status before it is eligible for archiving.
	RetentionDays int
}

// DefaultRetentionDays is used when RetentionDays is not configured.
const DefaultRetentionDays = 30
