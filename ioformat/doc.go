// Package ioformat parses the instance JSON document of spec §6
// (const_manager, loc_manager, step_manager, tech_manager) into a
// trpinstance.Instance, and marshals a solved result back into the output
// JSON document (KPIs, routes, CG parameters, evolution block).
//
// Stays on encoding/json rather than a schema-validation library: the
// teacher pack never parses external wire formats (its inputs are
// in-memory core.Graph/matrix.Matrix values), so there is no corpus
// precedent for a heavier JSON/schema library here, and the document shape
// is simple enough that struct tags are the idiomatic, teacher-consistent
// choice.
package ioformat
