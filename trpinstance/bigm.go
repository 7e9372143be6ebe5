package trpinstance

// computeBigMGlobal computes a single global outsourcing-cost coefficient:
//
//	M = (EndDay - min(durations > 0)) * maxSpeed * costPerKm / gcd(durations)
//
// maxSpeed is the largest distance/time ratio observed over any ordered
// pair of nodes with a strictly positive travel time.
func computeBigMGlobal(nodes []Node, timeMatrix, distMatrix [][]int, costPerKm float64) float64 {
	minDuration, gcdDurations, ok := durationStats(nodes)
	if !ok {
		return 0
	}
	maxSpeed := maxSpeedRatio(timeMatrix, distMatrix)

	return float64(EndDay-minDuration) * maxSpeed * costPerKm / float64(gcdDurations)
}

// computeBigMPerVehicle computes a per-vehicle-scaled outsourcing-cost
// coefficient:
//
//	M = ( numVehicles * (EndDay - min(durations > 0)) * maxSpeed * costPerKm
//	      + (sum(vehicle.FixedCost) - min(vehicle.FixedCost)) ) / gcd(durations)
func computeBigMPerVehicle(nodes []Node, vehicles []Vehicle, timeMatrix, distMatrix [][]int, costPerKm float64) float64 {
	minDuration, gcdDurations, ok := durationStats(nodes)
	if !ok {
		return 0
	}
	maxSpeed := maxSpeedRatio(timeMatrix, distMatrix)

	var sumFixed, minFixed float64
	for i, v := range vehicles {
		sumFixed += v.FixedCost
		if i == 0 || v.FixedCost < minFixed {
			minFixed = v.FixedCost
		}
	}
	maxFixedExpectOne := sumFixed - minFixed

	numerator := float64(len(vehicles))*float64(EndDay-minDuration)*maxSpeed*costPerKm + maxFixedExpectOne

	return numerator / float64(gcdDurations)
}

// durationStats returns the minimum strictly-positive duration and the GCD
// of all strictly-positive durations across nodes. ok is false if no node
// has a positive duration (an instance made up solely of depots).
func durationStats(nodes []Node) (minDuration, gcdDurations int, ok bool) {
	first := true
	for _, n := range nodes {
		if n.Duration <= 0 {
			continue
		}
		if first {
			minDuration = n.Duration
			gcdDurations = n.Duration
			first = false
			continue
		}
		if n.Duration < minDuration {
			minDuration = n.Duration
		}
		gcdDurations = gcdInt(gcdDurations, n.Duration)
	}

	return minDuration, gcdDurations, !first
}

func gcdInt(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}

	return a
}

// maxSpeedRatio returns the largest distance/time ratio over all ordered
// node pairs with a strictly positive travel time, or 0 if none exists.
func maxSpeedRatio(timeMatrix, distMatrix [][]int) float64 {
	var maxSpeed float64
	for i := range timeMatrix {
		for j := range timeMatrix[i] {
			if timeMatrix[i][j] <= 0 {
				continue
			}
			speed := float64(distMatrix[i][j]) / float64(timeMatrix[i][j])
			if speed > maxSpeed {
				maxSpeed = speed
			}
		}
	}

	return maxSpeed
}
