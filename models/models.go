package models

// Agent is a CustomerSuccess representative. An agent may serve any customer
// whose score does not exceed its own.
type Agent struct {
	ID    int `json:"id"`
	Score int `json:"score"`
}

// Customer is a single account waiting to be served.
type Customer struct {
	ID    int `json:"id"`
	Score int `json:"score"`
}

// Input represents one balancing request as read from an input file.
type Input struct {
	Agents    []Agent
	Customers []Customer
	// Away lists the ids of agents that must not take part in the run
	Away []int
}

// Leader is the agent holding the highest assigned count seen so far.
type Leader struct {
	ID    int `json:"id"`
	Count int `json:"count"`
}

// Round records what happened in one iteration of the assignment loop.
type Round struct {
	Number     int `json:"round"`
	AgentID    int `json:"agent_id"`
	AgentScore int `json:"agent_score"`
	Assigned   int `json:"assigned"`
	Remaining  int `json:"remaining"`
}

// Reasons reported on an Outcome
const (
	ReasonWinner       = "winner"
	ReasonNoAgents     = "no_agents"
	ReasonNoCustomers  = "no_customers"
	ReasonTie          = "tie"
	ReasonNoAssignment = "no_assignment"
)

// Outcome is the full result of a balancing run. WinnerID is 0 whenever
// there is no single winner; Reason says why.
type Outcome struct {
	WinnerID  int     `json:"winner_id"`
	Reason    string  `json:"reason"`
	Leader    Leader  `json:"leader"`
	Rounds    []Round `json:"rounds"`
	Counts    []int   `json:"counts"`
	Tied      bool    `json:"tied"`
	Available int     `json:"available_agents"`
	Customers int     `json:"customers"`
	// Waiting counts customers still unassigned when the loop stopped. The
	// loop stops as soon as the leader cannot be beaten, so some of them may
	// have been servable by an agent that never ran.
	Waiting int `json:"waiting"`
}

// Assigned returns the number of customers that ended up with an agent.
func (o Outcome) Assigned() int {
	total := 0
	for _, c := range o.Counts {
		total += c
	}
	return total
}
