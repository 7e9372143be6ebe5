// Package trplog is a thin github.com/rs/zerolog wrapper shared by colgen,
// branchprice, and pulse for progress/warning logging (spec §6.3).
//
// A CLI-driven solver reporting column-generation rounds and branch-and-price
// nodes across long runs needs structured, leveled output, gated behind a
// verbose flag the same way a high-volume debug trace normally is: a bool
// switch gates a log line.
package trplog
