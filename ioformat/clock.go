package ioformat

import "github.com/technician-routing/trp/trpinstance"

// filteredCapacityLabels are dropped from const_manager.capacities_labels
// (spec §6.1): these three track logistics quantities the routing model
// does not constrain on.
var filteredCapacityLabels = map[string]bool{"JOU": true, "MA": true, "AP": true}

func filterCapacityLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if !filteredCapacityLabels[l] {
			out = append(out, l)
		}
	}

	return out
}

// toWorkdayMinutes converts an absolute clock minute into work-day minutes
// with the lunch break excised (spec §6.1): the morning shift
// [StartMorning, EndMorning] maps to [0, MidDay], the afternoon shift
// [StartAfternoon, EndAfternoon] maps to [MidDay, EndDay], and anything
// outside working hours (including the lunch break itself) clamps to the
// nearest boundary.
func toWorkdayMinutes(clock int) int {
	switch {
	case clock <= trpinstance.StartMorning:
		return 0
	case clock <= trpinstance.EndMorning:
		return clock - trpinstance.StartMorning
	case clock <= trpinstance.StartAfternoon:
		return trpinstance.MidDay
	case clock <= trpinstance.EndAfternoon:
		return trpinstance.MidDay + (clock - trpinstance.StartAfternoon)
	default:
		return trpinstance.EndDay
	}
}

// flattenSkills sums a list-of-skill-groups into the per-skill headcount
// trpinstance.Node.Skills expects: each inner group names the skills one
// needed technician must hold, so the outer list's length is the number of
// technicians the intervention requires.
func flattenSkills(groups [][]string) map[string]int {
	out := make(map[string]int)
	for _, group := range groups {
		for _, s := range group {
			out[s]++
		}
	}

	return out
}
