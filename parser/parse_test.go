package parser_test

import (
	"errors"
	"strings"
	"testing"

	customerrors "cs-balancer/errors"
	"cs-balancer/models"
	"cs-balancer/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		input         string
		expectedData  models.Input
		expectedError error
	}{
		"ValidInput_AllSections": {
			input: `
#Agents, Score
1, 60
2, 20
#Customers, Score
1, 90
2, 20
#Away
2
`,
			expectedData: models.Input{
				Agents:    []models.Agent{{ID: 1, Score: 60}, {ID: 2, Score: 20}},
				Customers: []models.Customer{{ID: 1, Score: 90}, {ID: 2, Score: 20}},
				Away:      []int{2},
			},
		},
		"ValidInput_CommentsAndRepeatedSections": {
			input: `
# balancing input for the spring cohort
#Customers, Score
7, 15
#Agents, Score
3, 40
#Customers, Score
8, 25
`,
			expectedData: models.Input{
				Agents:    []models.Agent{{ID: 3, Score: 40}},
				Customers: []models.Customer{{ID: 7, Score: 15}, {ID: 8, Score: 25}},
			},
		},
		"ValidInput_AwayOnOneLine": {
			input: `
#Agents
1, 10
2, 20
3, 30
#Away
1, 3
`,
			expectedData: models.Input{
				Agents: []models.Agent{{ID: 1, Score: 10}, {ID: 2, Score: 20}, {ID: 3, Score: 30}},
				Away:   []int{1, 3},
			},
		},
		"Error_MissingScore": {
			input: `
#Agents
1,
`,
			expectedError: customerrors.ErrMissingScore,
		},
		"Error_MissingID": {
			input: `
#Customers
, 20
`,
			expectedError: customerrors.ErrMissingID,
		},
		"Error_InvalidScore": {
			input: `
#Customers
1, high
`,
			expectedError: customerrors.ErrInvalidScore,
		},
		"Error_InvalidAgentID": {
			input: `
#Agents
0, 20
`,
			expectedError: customerrors.ErrInvalidID,
		},
		"Error_DuplicateAgentID": {
			input: `
#Agents
1, 20
1, 30
`,
			expectedError: customerrors.ErrDuplicateAgentID,
		},
		"Error_InvalidFieldCount": {
			input: `
#Agents
1, 20, 30
`,
			expectedError: customerrors.ErrInvalidFieldCount,
		},
		"Error_InvalidAwayID": {
			input: `
#Away
two
`,
			expectedError: customerrors.ErrInvalidID,
		},
		"Error_RecordBeforeSection": {
			input: `
1, 20
`,
			expectedError: customerrors.ErrNoSection,
		},
		"EmptyInput": {
			input:        "",
			expectedData: models.Input{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			data, err := parser.Parse(strings.NewReader(tt.input))

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.ErrorIs(t, err, customerrors.ErrInvalidRecord)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedData, data)
		})
	}
}

func TestParse_ErrorCarriesLine(t *testing.T) {
	input := `
#Agents, Score
1, 60

2, abc
`
	_, err := parser.Parse(strings.NewReader(input))
	require.Error(t, err)

	var recErr *customerrors.RecordError
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, 5, recErr.Line)
	assert.Equal(t, parser.SectionAgent, recErr.Section)
	assert.Equal(t, []string{"2", "abc"}, recErr.Record)
}

func TestParseYAML(t *testing.T) {
	tests := map[string]struct {
		input         string
		expectedData  models.Input
		expectedError error
		section       string
		index         int
	}{
		"ValidYAML": {
			input: `
agents:
  - {id: 1, score: 60}
  - {id: 3, score: 95}
customers:
  - {id: 1, score: 90}
  - {id: 2, score: 0}
away: [3]
`,
			expectedData: models.Input{
				Agents:    []models.Agent{{ID: 1, Score: 60}, {ID: 3, Score: 95}},
				Customers: []models.Customer{{ID: 1, Score: 90}, {ID: 2, Score: 0}},
				Away:      []int{3},
			},
		},
		"ValidJSON": {
			input: `{"agents": [{"id": 4, "score": 75}], "customers": [{"id": 9, "score": 10}], "away": []}`,
			expectedData: models.Input{
				Agents:    []models.Agent{{ID: 4, Score: 75}},
				Customers: []models.Customer{{ID: 9, Score: 10}},
				Away:      []int{},
			},
		},
		"ZeroScoreKept": {
			input: `
agents:
  - {id: 2, score: 0}
`,
			expectedData: models.Input{
				Agents: []models.Agent{{ID: 2, Score: 0}},
			},
		},
		"EmptyDocument": {
			input:        "",
			expectedData: models.Input{},
		},
		"Error_MissingScore": {
			input: `
agents:
  - {id: 1, score: 60}
  - {id: 2}
`,
			expectedError: customerrors.ErrMissingScore,
			section:       parser.SectionAgent,
			index:         1,
		},
		"Error_NullScore": {
			input: `
customers:
  - {id: 1, score: null}
`,
			expectedError: customerrors.ErrMissingScore,
			section:       parser.SectionCustomer,
		},
		"Error_MissingID": {
			input: `
customers:
  - {score: 10}
`,
			expectedError: customerrors.ErrMissingID,
			section:       parser.SectionCustomer,
		},
		"Error_NonNumericScore": {
			input: `
customers:
  - {id: 1, score: "ninety"}
`,
			expectedError: customerrors.ErrInvalidScore,
			section:       parser.SectionCustomer,
		},
		"Error_DuplicateAgentID": {
			input: `
agents:
  - {id: 5, score: 10}
  - {id: 5, score: 20}
`,
			expectedError: customerrors.ErrDuplicateAgentID,
			section:       parser.SectionAgent,
			index:         1,
		},
		"Error_NullID": {
			input: `
customers:
  - {id: 1, score: 5}
  - {id: ~, score: 3}
`,
			expectedError: customerrors.ErrMissingID,
			section:       parser.SectionCustomer,
			index:         1,
		},
		"Error_QuotedScore": {
			input:         `{"agents": [{"id": 1, "score": "10"}]}`,
			expectedError: customerrors.ErrInvalidScore,
			section:       parser.SectionAgent,
		},
		"Error_NonIntegerAwayID": {
			input: `
agents:
  - {id: 1, score: 10}
away: [1, two]
`,
			expectedError: customerrors.ErrInvalidID,
			section:       parser.SectionAway,
			index:         1,
		},
		"Error_NullAwayID": {
			input: `
away: [null]
`,
			expectedError: customerrors.ErrMissingID,
			section:       parser.SectionAway,
		},
		"Error_NegativeAgentID": {
			input: `
agents:
  - {id: -2, score: 10}
`,
			expectedError: customerrors.ErrInvalidID,
			section:       parser.SectionAgent,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			data, err := parser.ParseYAML(strings.NewReader(tt.input))

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.ErrorIs(t, err, customerrors.ErrInvalidRecord)

				var recErr *customerrors.RecordError
				require.True(t, errors.As(err, &recErr))
				assert.Equal(t, tt.section, recErr.Section)
				assert.Equal(t, tt.index, recErr.Index)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedData, data)
		})
	}
}

func TestParseYAML_MalformedDocument(t *testing.T) {
	_, err := parser.ParseYAML(strings.NewReader("agents: [1, 2"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, customerrors.ErrInvalidRecord)
}
