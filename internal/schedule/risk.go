package schedule

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/wbs/internal/dates"
	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/wbstree"
)

// behindThresholdPct is how far task progress may trail elapsed time
// before a node is flagged.
const behindThresholdPct = 25.0

type RiskInput struct {
	Today        time.Time
	PlannedStart *time.Time
	PlannedEnd   *time.Time
	ActualStart  *time.Time
	ActualEnd    *time.Time
	// DoneTasks and TotalTasks count the node's own tasks. TotalTasks zero
	// means no progress data.
	DoneTasks  int
	TotalTasks int
}

type RiskResult struct {
	Level          domain.RiskLevel
	DaysLeft       *int
	ProgressPct    float64
	TimeElapsedPct float64
	Reason         string
}

func daysBetween(from, to time.Time) int {
	return int(math.Round(dates.Truncate(to).Sub(dates.Truncate(from)).Hours() / 24))
}

// ComputeRisk grades one node. Finished nodes are done, nodes without a
// planned end are on track, and past-due unfinished nodes are critical.
// Otherwise a missed start or task progress trailing the elapsed share of
// the planned span marks the node at risk.
func ComputeRisk(in RiskInput) RiskResult {
	var res RiskResult
	if in.TotalTasks > 0 {
		res.ProgressPct = float64(in.DoneTasks) / float64(in.TotalTasks) * 100
	}

	if in.ActualEnd != nil {
		res.Level = domain.RiskDone
		res.Reason = "finished"
		if in.PlannedEnd != nil {
			if late := daysBetween(*in.PlannedEnd, *in.ActualEnd); late > 0 {
				res.Reason = fmt.Sprintf("finished %d days late", late)
			}
		}
		return res
	}

	if in.PlannedEnd == nil {
		res.Level = domain.RiskOnTrack
		res.Reason = "no planned end"
		return res
	}

	daysLeft := daysBetween(in.Today, *in.PlannedEnd)
	res.DaysLeft = &daysLeft

	if in.PlannedStart != nil && in.PlannedEnd.After(*in.PlannedStart) {
		span := in.PlannedEnd.Sub(*in.PlannedStart).Hours()
		elapsed := dates.Truncate(in.Today).Sub(*in.PlannedStart).Hours()
		res.TimeElapsedPct = math.Max(0, math.Min(100, elapsed/span*100))
	}

	switch {
	case daysLeft < 0:
		res.Level = domain.RiskCritical
		res.Reason = fmt.Sprintf("overdue by %d days", -daysLeft)
	case in.ActualStart == nil && in.PlannedStart != nil && in.Today.After(*in.PlannedStart):
		res.Level = domain.RiskAtRisk
		if daysLeft <= 3 {
			res.Level = domain.RiskCritical
		}
		res.Reason = fmt.Sprintf("not started, planned %d days ago", daysBetween(*in.PlannedStart, in.Today))
	case in.TotalTasks > 0 && res.TimeElapsedPct > 0 && res.ProgressPct+behindThresholdPct < res.TimeElapsedPct:
		res.Level = domain.RiskAtRisk
		res.Reason = fmt.Sprintf("%.0f%% of tasks done, %.0f%% of time elapsed", res.ProgressPct, res.TimeElapsedPct)
	case in.TotalTasks > 0 && in.DoneTasks < in.TotalTasks && daysLeft <= 3:
		res.Level = domain.RiskAtRisk
		res.Reason = fmt.Sprintf("due in %d days with open tasks", daysLeft)
	default:
		res.Level = domain.RiskOnTrack
		res.Reason = fmt.Sprintf("%d days left", daysLeft)
	}
	return res
}

// NodeRisk pairs a node with its grade.
type NodeRisk struct {
	Node  *domain.WBSNode
	Depth int
	RiskResult
}

// Risks grades every node in display order. Tasks with StatusDone count as
// done and tasks with StatusIgnore are left out.
func Risks(ds *domain.Dataset, today time.Time) []NodeRisk {
	done := make(map[string]int)
	total := make(map[string]int)
	for _, t := range ds.Tasks {
		if t.WBSID == nil || t.Status == domain.StatusIgnore {
			continue
		}
		total[*t.WBSID]++
		if t.Status == domain.StatusDone {
			done[*t.WBSID]++
		}
	}

	entries := wbstree.FlattenDepthFirst(ds.WBS)
	out := make([]NodeRisk, 0, len(entries))
	for _, e := range entries {
		n := e.Node
		out = append(out, NodeRisk{
			Node:  n,
			Depth: e.Depth,
			RiskResult: ComputeRisk(RiskInput{
				Today:        today,
				PlannedStart: n.PlannedStart,
				PlannedEnd:   n.PlannedEnd,
				ActualStart:  n.ActualStart,
				ActualEnd:    n.ActualEnd,
				DoneTasks:    done[n.ID],
				TotalTasks:   total[n.ID],
			}),
		})
	}
	return out
}

// RiskPriority returns a sort priority (lower = more urgent).
func RiskPriority(r domain.RiskLevel) int {
	switch r {
	case domain.RiskCritical:
		return 0
	case domain.RiskAtRisk:
		return 1
	case domain.RiskOnTrack:
		return 2
	default:
		return 3
	}
}

// SortByUrgency orders risks by:
//  1. level: critical > at_risk > on_track > done
//  2. days left, fewest first (nil last)
//  3. node name
//  4. node id
func SortByUrgency(risks []NodeRisk) {
	sort.SliceStable(risks, func(i, j int) bool {
		a, b := risks[i], risks[j]

		if pa, pb := RiskPriority(a.Level), RiskPriority(b.Level); pa != pb {
			return pa < pb
		}
		if (a.DaysLeft == nil) != (b.DaysLeft == nil) {
			return a.DaysLeft != nil
		}
		if a.DaysLeft != nil && *a.DaysLeft != *b.DaysLeft {
			return *a.DaysLeft < *b.DaysLeft
		}
		if a.Node.Name != b.Node.Name {
			return a.Node.Name < b.Node.Name
		}
		return a.Node.ID < b.Node.ID
	})
}
