package service

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/fleetops/fleet-api/internal/model"
)

// In-memory passes over already-fetched rows. None of this is a hot
// path; the result sets are dashboard-sized.

// HasAllCapabilities reports whether the robot holds every required
// capability (exact element match).
func HasAllCapabilities(robot model.Robot, required []string) bool {
	for _, want := range required {
		found := false
		for _, have := range robot.Capabilities {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// MatchingRobots keeps the robots able to take on a task requiring the
// given capabilities.
func MatchingRobots(robots []model.Robot, required []string) []model.Robot {
	matched := make([]model.Robot, 0, len(robots))
	for _, r := range robots {
		if HasAllCapabilities(r, required) {
			matched = append(matched, r)
		}
	}
	return matched
}

// SortByCapabilityCount orders robots by the size of their capability
// list, ascending unless reverse is set. The input slice is not
// modified.
func SortByCapabilityCount(robots []model.Robot, reverse bool) []model.Robot {
	sorted := make([]model.Robot, len(robots))
	copy(sorted, robots)
	sort.SliceStable(sorted, func(i, j int) bool {
		if reverse {
			return len(sorted[i].Capabilities) > len(sorted[j].Capabilities)
		}
		return len(sorted[i].Capabilities) < len(sorted[j].Capabilities)
	})
	return sorted
}

// FilterByTelemetryCount keeps robots with at least min telemetry rows
// given a robot-id to count mapping.
func FilterByTelemetryCount(robots []model.Robot, counts map[uuid.UUID]int, min int) []model.Robot {
	kept := make([]model.Robot, 0, len(robots))
	for _, r := range robots {
		if counts[r.ID] >= min {
			kept = append(kept, r)
		}
	}
	return kept
}

// UrgencyScore weighs priority (60%, saturating at priority 10)
// against deadline proximity (up to 40%, inversely proportional to the
// hours remaining). Tasks without a future deadline get no deadline
// component.
func UrgencyScore(task model.Task, now time.Time) float64 {
	score := math.Min(1.0, float64(task.Priority)/10.0) * 0.6
	if task.Deadline != nil && task.Deadline.After(now) {
		hoursLeft := task.Deadline.Sub(now).Hours()
		score += math.Max(0.0, math.Min(0.4, 0.4/math.Max(1, hoursLeft)))
	}
	return score
}

// RankByUrgency keeps tasks scoring at least minScore and orders them
// most urgent first.
func RankByUrgency(tasks []model.Task, minScore float64, now time.Time) []model.Task {
	ranked := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if UrgencyScore(t, now) >= minScore {
			ranked = append(ranked, t)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return UrgencyScore(ranked[i], now) > UrgencyScore(ranked[j], now)
	})
	return ranked
}

// FilterAnomalies keeps points deviating from the set's mean by more
// than mean*multiplier.
func FilterAnomalies(points []model.TelemetryPoint, multiplier float64) []model.TelemetryPoint {
	if len(points) == 0 {
		return nil
	}

	var total float64
	for _, p := range points {
		total += p.MetricValue
	}
	average := total / float64(len(points))
	threshold := average * multiplier

	anomalies := make([]model.TelemetryPoint, 0)
	for _, p := range points {
		if math.Abs(p.MetricValue-average) > threshold {
			anomalies = append(anomalies, p)
		}
	}
	return anomalies
}
