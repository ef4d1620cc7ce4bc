package balancer

import (
	"cs-balancer/models"
	"slices"
)

// state is one immutable snapshot of the assignment loop. Each round builds
// a new state from the previous one; caller-owned slices are never touched.
type state struct {
	agents    []models.Agent
	customers []models.Customer
	leader    models.Leader
}

// Balance returns the id of the agent serving the most customers, or 0 when
// there is no single winner (no available agents, no customers or a tie).
func Balance(agents []models.Agent, customers []models.Customer, away []int) int {
	return Run(agents, customers, away).WinnerID
}

// Run performs the full balancing pass and reports every round.
func Run(agents []models.Agent, customers []models.Customer, away []int) models.Outcome {
	available := Available(agents, away)
	outcome := models.Outcome{
		Available: len(available),
		Customers: len(customers),
		Waiting:   len(customers),
		Rounds:    make([]models.Round, 0),
		Counts:    make([]int, 0),
	}

	if len(available) == 0 {
		outcome.Reason = models.ReasonNoAgents
		return outcome
	}
	if len(customers) == 0 {
		outcome.Reason = models.ReasonNoCustomers
		return outcome
	}

	s := state{agents: available, customers: customers}
	// Stop once the leader can no longer be beaten by what is left.
	for len(s.customers) >= s.leader.Count && len(s.agents) > 0 {
		next, round, ok := step(s)
		if !ok {
			break
		}
		round.Number = len(outcome.Rounds) + 1
		outcome.Rounds = append(outcome.Rounds, round)
		outcome.Counts = append(outcome.Counts, round.Assigned)
		s = next
	}

	outcome.Leader = s.leader
	outcome.Waiting = len(s.customers)

	switch {
	case len(outcome.Rounds) == 0:
		outcome.Reason = models.ReasonNoAssignment
	case isTie(outcome.Counts, s.leader.Count):
		outcome.Tied = true
		outcome.Reason = models.ReasonTie
	default:
		outcome.WinnerID = s.leader.ID
		outcome.Reason = models.ReasonWinner
	}
	return outcome
}

// Available returns the agents whose id is not in away, preserving order.
func Available(agents []models.Agent, away []int) []models.Agent {
	excluded := make(map[int]struct{}, len(away))
	for _, id := range away {
		excluded[id] = struct{}{}
	}

	available := make([]models.Agent, 0, len(agents))
	for _, a := range agents {
		if _, ok := excluded[a.ID]; !ok {
			available = append(available, a)
		}
	}
	return available
}

// step runs a single round. ok is false when no agent qualifies for the
// cheapest remaining customer.
func step(s state) (state, models.Round, bool) {
	if len(s.customers) == 0 {
		return s, models.Round{}, false
	}

	qualified := qualifiedAgents(s.agents, lowestCustomerScore(s.customers))
	if len(qualified) == 0 {
		return s, models.Round{}, false
	}

	idx := lowestAgent(qualified)
	assignee := qualified[idx]
	remaining := unassignedAbove(s.customers, assignee.Score)
	assigned := len(s.customers) - len(remaining)

	leader := s.leader
	if assigned > leader.Count {
		leader = models.Leader{ID: assignee.ID, Count: assigned}
	}

	next := state{
		// Agents below the cheapest customer can never qualify again, so the
		// next pool is the qualified set minus the assignee.
		agents:    slices.Delete(qualified, idx, idx+1),
		customers: remaining,
		leader:    leader,
	}
	round := models.Round{
		AgentID:    assignee.ID,
		AgentScore: assignee.Score,
		Assigned:   assigned,
		Remaining:  len(remaining),
	}
	return next, round, true
}

func lowestCustomerScore(customers []models.Customer) int {
	lowest := customers[0].Score
	for _, c := range customers[1:] {
		if c.Score < lowest {
			lowest = c.Score
		}
	}
	return lowest
}

// qualifiedAgents returns a new slice of the agents able to serve a customer
// with the given score.
func qualifiedAgents(agents []models.Agent, score int) []models.Agent {
	qualified := make([]models.Agent, 0, len(agents))
	for _, a := range agents {
		if a.Score >= score {
			qualified = append(qualified, a)
		}
	}
	return qualified
}

// lowestAgent returns the index of the lowest scored agent. Equal scores
// resolve to the first one in input order.
func lowestAgent(agents []models.Agent) int {
	best := 0
	for i, a := range agents[1:] {
		if a.Score < agents[best].Score {
			best = i + 1
		}
	}
	return best
}

// unassignedAbove keeps the customers an agent with the given score cannot serve.
func unassignedAbove(customers []models.Customer, score int) []models.Customer {
	remaining := make([]models.Customer, 0, len(customers))
	for _, c := range customers {
		if c.Score > score {
			remaining = append(remaining, c)
		}
	}
	return remaining
}

// isTie reports whether count occurs more than once in counts. One occurrence
// is dropped from a copy and the rest is searched again.
func isTie(counts []int, count int) bool {
	rest := slices.Clone(counts)
	if i := slices.Index(rest, count); i >= 0 {
		rest = slices.Delete(rest, i, i+1)
	}
	return slices.Contains(rest, count)
}
