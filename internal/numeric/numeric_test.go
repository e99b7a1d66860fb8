package numeric

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type NumericTestSuite struct {
	suite.Suite
}

func TestNumericSuite(t *testing.T) {
	suite.Run(t, new(NumericTestSuite))
}

func (s *NumericTestSuite) TestParse() {
	testCases := []struct {
		description string
		input       any
		expected    float64
	}{
		{"nil collapses to zero", nil, 0},
		{"float passes through", 12.5, 12.5},
		{"int converts", 42, 42},
		{"numeric string", "12.50", 12.5},
		{"comma decimal separator", "12,50", 12.5},
		{"whitespace trimmed", "  7.25  ", 7.25},
		{"empty string", "", 0},
		{"garbage string", "abc", 0},
		{"NaN sanitized", math.NaN(), 0},
		{"infinity sanitized", math.Inf(1), 0},
		{"unsupported type", []int{1}, 0},
	}

	for _, tc := range testCases {
		s.Run(tc.description, func() {
			s.Equal(tc.expected, Parse(tc.input))
		})
	}
}

func (s *NumericTestSuite) TestParseIsTotal() {
	// Whatever comes in, something finite comes out.
	inputs := []any{nil, "", "x", "1e309", math.NaN(), math.Inf(-1), struct{}{}}
	for _, input := range inputs {
		v := Parse(input)
		s.False(math.IsNaN(v) || math.IsInf(v, 0))
	}
}

func (s *NumericTestSuite) TestParseInput() {
	testCases := []struct {
		input    string
		expected float64
		valid    bool
	}{
		{"12,5", 12.5, true},
		{"12.5", 12.5, true},
		{"", 0, true},
		{"abc", 0, false},
		{"12..5", 0, false},
	}

	for _, tc := range testCases {
		v, ok := ParseInput(tc.input)
		s.Equal(tc.valid, ok, "input %q", tc.input)
		s.Equal(tc.expected, v, "input %q", tc.input)
	}
}

func (s *NumericTestSuite) TestFormatComma() {
	testCases := []struct {
		input    float64
		expected string
	}{
		{12.5, "12,5"},
		{12, "12"},
		{0.01, "0,01"},
		{-4.2, "-4,2"},
		{math.NaN(), "0"},
	}

	for _, tc := range testCases {
		s.Equal(tc.expected, FormatComma(tc.input))
	}
}

func (s *NumericTestSuite) TestRound2() {
	s.Equal(12.35, Round2(12.345001))
	s.Equal(12.34, Round2(12.344999))
	s.Equal(0.0, Round2(math.Inf(1)))
}

func (s *NumericTestSuite) TestAmount_UnmarshalLeniently() {
	testCases := []struct {
		description string
		payload     string
		expected    float64
	}{
		{"JSON number", `{"v": 12.5}`, 12.5},
		{"quoted decimal", `{"v": "12.50"}`, 12.5},
		{"quoted comma decimal", `{"v": "12,50"}`, 12.5},
		{"null", `{"v": null}`, 0},
		{"garbage string", `{"v": "abc"}`, 0},
		{"missing field", `{}`, 0},
	}

	for _, tc := range testCases {
		s.Run(tc.description, func() {
			var target struct {
				V Amount `json:"v"`
			}
			s.Require().NoError(json.Unmarshal([]byte(tc.payload), &target))
			s.Equal(tc.expected, target.V.Float())
		})
	}
}

func (s *NumericTestSuite) TestAmount_MarshalsAsNumber() {
	payload, err := json.Marshal(struct {
		V Amount `json:"v"`
	}{V: 12.5})

	s.Require().NoError(err)
	s.JSONEq(`{"v": 12.5}`, string(payload))
}
