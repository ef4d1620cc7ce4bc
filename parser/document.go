package parser

import (
	"cs-balancer/errors"
	"cs-balancer/models"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// document is the YAML/JSON shape of an input file.
type document struct {
	Agents    []rawRecord `yaml:"agents"`
	Customers []rawRecord `yaml:"customers"`
	Away      []yaml.Node `yaml:"away"`
}

// rawRecord keeps the raw nodes so that an absent field (a zero Node) is told
// apart from an explicit zero.
type rawRecord struct {
	ID    yaml.Node `yaml:"id" validate:"required"`
	Score yaml.Node `yaml:"score" validate:"required"`
}

// ParseYAML reads a YAML (or JSON) document of the form
//
//	agents:    [{id: 1, score: 60}, ...]
//	customers: [{id: 1, score: 90}, ...]
//	away:      [2, 4]
//
// Records missing id or score, or holding non-integer values, are rejected.
func ParseYAML(r io.Reader) (models.Input, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return models.Input{}, fmt.Errorf("error decoding document: %w", err)
	}

	var input models.Input
	seen := make(map[int]struct{})

	for i, rec := range doc.Agents {
		id, score, err := rec.decode()
		if err == nil {
			err = checkAgentID(id, seen)
		}
		if err != nil {
			return models.Input{}, &errors.RecordError{Section: SectionAgent, Index: i, Err: err}
		}
		input.Agents = append(input.Agents, models.Agent{ID: id, Score: score})
	}

	for i, rec := range doc.Customers {
		id, score, err := rec.decode()
		if err != nil {
			return models.Input{}, &errors.RecordError{Section: SectionCustomer, Index: i, Err: err}
		}
		input.Customers = append(input.Customers, models.Customer{ID: id, Score: score})
	}

	if doc.Away != nil {
		input.Away = make([]int, 0, len(doc.Away))
	}
	for i := range doc.Away {
		id, err := decodeInt(&doc.Away[i], errors.ErrMissingID, errors.ErrInvalidID)
		if err != nil {
			return models.Input{}, &errors.RecordError{Section: SectionAway, Index: i, Err: err}
		}
		input.Away = append(input.Away, id)
	}

	return input, nil
}

func (r rawRecord) decode() (int, int, error) {
	if err := validate.Struct(r); err != nil {
		var ve validator.ValidationErrors
		if stderrors.As(err, &ve) && len(ve) > 0 && ve[0].Field() == "Score" {
			return 0, 0, errors.ErrMissingScore
		}
		return 0, 0, errors.ErrMissingID
	}

	id, err := decodeInt(&r.ID, errors.ErrMissingID, errors.ErrInvalidID)
	if err != nil {
		return 0, 0, err
	}
	score, err := decodeInt(&r.Score, errors.ErrMissingScore, errors.ErrInvalidScore)
	if err != nil {
		return 0, 0, err
	}
	return id, score, nil
}

func decodeInt(node *yaml.Node, missing, invalid error) (int, error) {
	if node.ShortTag() == "!!null" {
		return 0, missing
	}
	if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!int" {
		return 0, fmt.Errorf("%w: %q", invalid, node.Value)
	}
	var v int
	if err := node.Decode(&v); err != nil {
		return 0, fmt.Errorf("%w: %v", invalid, err)
	}
	return v, nil
}
