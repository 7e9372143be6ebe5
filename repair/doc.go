// Package repair implements the post-optimization repair pass of spec
// §4.8: when an integer solution covers one intervention from two or more
// chosen routes, Dedup removes the duplicate from every route except
// the one where removing it would save the least travel cost (the
// triangle-inequality saving of dropping a node between its neighbors),
// leaving routes that become depot-only deactivated.
//
// A single pass over already-computed structure (route sequences), rather
// than re-deriving it: every route is already built, Dedup only edits
// sequences and re-resolves the handful that changed.
package repair
