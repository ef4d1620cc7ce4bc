package formatter

import (
	"cs-balancer/models"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Report holds prepared outcome data used by all formatters
type Report struct {
	WinnerID  int            `json:"winner_id"`
	Reason    string         `json:"reason"`
	Leader    models.Leader  `json:"leader"`
	Available int            `json:"available_agents"`
	Customers int            `json:"customers"`
	Assigned  int            `json:"assigned"`
	Waiting   int            `json:"waiting"`
	Rounds    []models.Round `json:"rounds"`
}

// prepareReport flattens an outcome for formatting
func prepareReport(outcome models.Outcome) Report {
	rounds := outcome.Rounds
	if rounds == nil {
		rounds = []models.Round{}
	}
	return Report{
		WinnerID:  outcome.WinnerID,
		Reason:    outcome.Reason,
		Leader:    outcome.Leader,
		Available: outcome.Available,
		Customers: outcome.Customers,
		Assigned:  outcome.Assigned(),
		Waiting:   outcome.Waiting,
		Rounds:    rounds,
	}
}

// FormatText returns the text representation of the outcome
func FormatText(outcome models.Outcome) string {
	report := prepareReport(outcome)
	var sb strings.Builder

	for _, r := range report.Rounds {
		sb.WriteString(fmt.Sprintf("round %d : agent=%d score=%d ; assigned=%d, remaining=%d\n",
			r.Number, r.AgentID, r.AgentScore, r.Assigned, r.Remaining))
	}

	sb.WriteString(fmt.Sprintf("agents=%d customers=%d assigned=%d waiting=%d\n",
		report.Available, report.Customers, report.Assigned, report.Waiting))
	sb.WriteString(resultLine(report))
	sb.WriteString("\n")
	return sb.String()
}

// FormatJSON returns the JSON representation of the outcome
func FormatJSON(outcome models.Outcome) string {
	jsonBytes, _ := json.MarshalIndent(prepareReport(outcome), "", "  ")
	return string(jsonBytes)
}

// FormatCSV returns the CSV representation of the outcome: one row per round
// followed by a result row.
func FormatCSV(outcome models.Outcome) string {
	report := prepareReport(outcome)
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	writer.Write([]string{"Round", "Agent", "Agent Score", "Assigned", "Remaining"})
	for _, r := range report.Rounds {
		writer.Write([]string{
			strconv.Itoa(r.Number),
			strconv.Itoa(r.AgentID),
			strconv.Itoa(r.AgentScore),
			strconv.Itoa(r.Assigned),
			strconv.Itoa(r.Remaining),
		})
	}
	writer.Write([]string{"result", strconv.Itoa(report.WinnerID), report.Reason,
		strconv.Itoa(report.Leader.Count), strconv.Itoa(report.Waiting)})

	writer.Flush()
	return sb.String()
}

// resultLine describes the winner, or why there is none
func resultLine(report Report) string {
	switch report.Reason {
	case models.ReasonWinner:
		return fmt.Sprintf("winner=%d (%d customers)", report.WinnerID, report.Leader.Count)
	case models.ReasonTie:
		return fmt.Sprintf("winner=0 ; tie at %d customers", report.Leader.Count)
	case models.ReasonNoAgents:
		return "winner=0 ; no available agents"
	case models.ReasonNoCustomers:
		return "winner=0 ; no customers"
	default:
		return "winner=0 ; no agent qualified for any customer"
	}
}
