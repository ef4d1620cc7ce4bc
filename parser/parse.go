package parser

import (
	"cs-balancer/errors"
	"cs-balancer/models"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Section names used in RecordError.
const (
	SectionAgent    = "agent"
	SectionCustomer = "customer"
	SectionAway     = "away"
)

// validate checks decoded records before they reach the balancer.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Parse reads CSV data from the reader and returns the balancing input.
// Lines starting with '#' are headers/comments. A header whose first column
// names a section (Agents, Customers or Away) switches the section for all
// subsequent rows until the next section header; other '#' lines are ignored.
// Agent and customer rows hold "id, score". Away rows hold one or more agent ids.
func Parse(r io.Reader) (models.Input, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var (
		input   models.Input
		section string
		seen    = make(map[int]struct{})
	)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.Input{}, fmt.Errorf("error reading CSV: %w", err)
		}
		// csv.Reader skips blank lines, so take the line from the reader
		lineNum, _ := reader.FieldPos(0)

		if len(record) > 0 && strings.HasPrefix(record[0], "#") {
			if s, ok := sectionFromHeader(record[0]); ok {
				section = s
			}
			continue
		}

		recErr := func(err error) error {
			return &errors.RecordError{Section: section, Line: lineNum, Record: record, Err: err}
		}

		switch section {
		case SectionAgent:
			id, score, err := parseScored(record)
			if err == nil {
				err = checkAgentID(id, seen)
			}
			if err != nil {
				return models.Input{}, recErr(err)
			}
			input.Agents = append(input.Agents, models.Agent{ID: id, Score: score})
		case SectionCustomer:
			id, score, err := parseScored(record)
			if err != nil {
				return models.Input{}, recErr(err)
			}
			input.Customers = append(input.Customers, models.Customer{ID: id, Score: score})
		case SectionAway:
			for _, field := range record {
				field = strings.TrimSpace(field)
				if field == "" {
					continue
				}
				id, err := strconv.Atoi(field)
				if err != nil {
					return models.Input{}, recErr(fmt.Errorf("%w: %v", errors.ErrInvalidID, err))
				}
				input.Away = append(input.Away, id)
			}
		default:
			return models.Input{}, &errors.RecordError{Section: "unknown", Line: lineNum, Record: record, Err: errors.ErrNoSection}
		}
	}

	return input, nil
}

// parseScored parses an "id, score" row.
func parseScored(record []string) (int, int, error) {
	if len(record) != 2 {
		return 0, 0, errors.ErrInvalidFieldCount
	}

	idField := strings.TrimSpace(record[0])
	scoreField := strings.TrimSpace(record[1])
	if idField == "" {
		return 0, 0, errors.ErrMissingID
	}
	if scoreField == "" {
		return 0, 0, errors.ErrMissingScore
	}

	id, err := strconv.Atoi(idField)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", errors.ErrInvalidID, err)
	}
	score, err := strconv.Atoi(scoreField)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", errors.ErrInvalidScore, err)
	}
	return id, score, nil
}

// checkAgentID enforces positive, unique agent ids and records id in seen.
func checkAgentID(id int, seen map[int]struct{}) error {
	if err := validate.Var(id, "gt=0"); err != nil {
		return fmt.Errorf("%w: %d", errors.ErrInvalidID, id)
	}
	if _, dup := seen[id]; dup {
		return fmt.Errorf("%w: %d", errors.ErrDuplicateAgentID, id)
	}
	seen[id] = struct{}{}
	return nil
}

func sectionFromHeader(field string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(field, "#")))
	switch name {
	case "agents", "agent", "customersuccess", "customer success":
		return SectionAgent, true
	case "customers", "customer":
		return SectionCustomer, true
	case "away", "customersuccessaway", "customer success away":
		return SectionAway, true
	default:
		return "", false
	}
}
