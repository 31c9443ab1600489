package validator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func (s *ValidatorTestSuite) TestIsValidGrade() {
	tests := []struct {
		desc       string
		grade      float64
		expIsValid bool
	}{
		{
			desc:       "below range",
			grade:      0.5,
			expIsValid: false,
		},
		{
			desc:       "lower bound",
			grade:      1,
			expIsValid: true,
		},
		{
			desc:       "half point grade",
			grade:      9.5,
			expIsValid: true,
		},
		{
			desc:       "upper bound",
			grade:      10,
			expIsValid: true,
		},
		{
			desc:       "above range",
			grade:      10.5,
			expIsValid: false,
		},
		{
			desc:       "negative",
			grade:      -3,
			expIsValid: false,
		},
	}

	for _, t := range tests {
		s.Equal(t.expIsValid, IsValidGrade(t.grade), t.desc)
	}
}

func TestValidatorSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}
