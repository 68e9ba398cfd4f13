// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Viewer is the request-scoped publication context: the clock to evaluate
// publication against and the capability bits of whoever is asking.
// Pure data, no side effects.
type Viewer struct {
	Now           time.Time
	Authenticated bool
	Staff         bool
	PreviewOn     bool
}

// PreviewAllowed reports whether preview mode is honoured for this viewer.
// The session toggle only counts for staff.
func (v Viewer) PreviewAllowed() bool {
	return v.Staff && v.PreviewOn
}

// Anonymous returns a viewer with no capabilities at the given instant.
func Anonymous(now time.Time) Viewer {
	return Viewer{Now: now}
}
