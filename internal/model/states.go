// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Internal article state keys. The displayed names are configurable and an
// entry removed from the configured mapping suppresses that state.
const (
	StatePinned    = "pinned"
	StateFeatured  = "featured"
	StatePrivate   = "private"
	StateDraft     = "draft"
	StateAvailable = "available"
	StateNotYet    = "not-yet"
	StatePassed    = "passed"
)

// DefaultStateNames maps every internal state key to itself.
func DefaultStateNames() map[string]string {
	return map[string]string{
		StatePinned:    StatePinned,
		StateFeatured:  StateFeatured,
		StatePrivate:   StatePrivate,
		StateDraft:     StateDraft,
		StateAvailable: StateAvailable,
		StateNotYet:    StateNotYet,
		StatePassed:    StatePassed,
	}
}

// ComputeStates returns the article state set in a fixed order. Time-based
// states (not-yet, passed) are only emitted when now is given and the
// article is available; a draft never gets them. A state key missing from
// names is suppressed.
func ComputeStates(a *Article, now *time.Time, names map[string]string) []string {
	states := make([]string, 0, 4)

	appendState := func(key string) {
		if name, ok := names[key]; ok {
			states = append(states, name)
		}
	}

	if a.Pinned {
		appendState(StatePinned)
	}
	if a.Featured {
		appendState(StateFeatured)
	}
	if a.Private {
		appendState(StatePrivate)
	}

	if a.Status < StatusAvailable {
		appendState(StateDraft)
	} else {
		appendState(StateAvailable)

		if now != nil {
			if a.PublishDatetime().After(*now) {
				appendState(StateNotYet)
			}
			if a.PublishEnd.Valid && a.PublishEnd.Time.Before(*now) {
				appendState(StatePassed)
			}
		}
	}

	return states
}
