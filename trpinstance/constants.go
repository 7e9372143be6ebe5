package trpinstance

// Work-day constants, in minutes, shared uniformly by trpinstance, schedule,
// route and pulse (design note: "global work-day constants" — a deliberate
// set of named module constants rather than instance-carried fields, since
// no instance observed so far varies them).
const (
	StartMorning     = 470
	EndMorning       = 720
	StartAfternoon   = 810
	EndAfternoon     = 1010
	LunchBreak       = 90
	MidDay           = 250
	EndDay           = 450
	LongIntervention = 120
)
