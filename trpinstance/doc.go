// Package trpinstance defines the immutable instance model for the
// Technician Routing Problem (TRP): interventions and depots (Node),
// crewed vehicles (Vehicle), and the distance/time matrices and derived
// constants they share (Instance).
//
// An Instance is built once by New (or by ioformat.Parse, which decodes the
// JSON schema and calls New) and is never mutated afterward. All downstream
// packages — route, schedule, pulse, cluster, master — hold a *Instance by
// pointer and treat it as read-only, exactly as the rest of the module
// expects of any shared, construct-once value.
//
// Preprocessing classifies each intervention as ambiguous (its duration fits
// in the midday gap and its window straddles midday) or unambiguous
// (tightened to whichever half of the day it must run in), and computes the
// coefficient M used to price uncovered work so that outsourcing is always
// dominated by a feasible routing (see BigMMode).
package trpinstance

import "errors"

// Sentinel errors for instance construction and preprocessing.
var (
	// ErrMalformed indicates a structurally invalid instance (e.g. mismatched
	// matrix dimensions, unknown node index).
	ErrMalformed = errors.New("trpinstance: malformed instance")

	// ErrInconsistentDepot indicates that a vehicle's technicians do not all
	// share the same home depot (ope_base).
	ErrInconsistentDepot = errors.New("trpinstance: vehicle technicians do not share a depot")

	// ErrWindowTooTight indicates a node's time window is shorter than its
	// own duration (start_window + duration > end_window), checked once
	// preprocessing has run.
	ErrWindowTooTight = errors.New("trpinstance: time window tighter than duration")

	// ErrNoVehicles indicates an instance was built with zero vehicles.
	ErrNoVehicles = errors.New("trpinstance: instance has no vehicles")
)
