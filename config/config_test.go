package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halbux/gogmab/config"
	"github.com/halbux/gogmab/gmaberr"
)

func validOptions() config.Options {
	return config.Options{
		Bounds:         []config.Bound{{0, 10}, {0, 10}},
		PopulationSize: 10,
		MutationRate:   0.1,
		CrossoverRate:  0.9,
		MutationSpan:   0.5,
	}
}

func TestValidateAcceptsWellFormedOptions(t *testing.T) {
	v, err := config.Validate(validOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, v.Dimension)
	assert.Equal(t, []int32{0, 0}, v.Lower)
	assert.Equal(t, []int32{10, 10}, v.Upper)
}

func TestValidateRejectsZeroDimension(t *testing.T) {
	opts := validOptions()
	opts.Bounds = nil
	_, err := config.Validate(opts)
	require.ErrorIs(t, err, gmaberr.ErrInvalidBounds)
}

func TestValidateRejectsInvertedBounds(t *testing.T) {
	opts := validOptions()
	opts.Bounds[0] = config.Bound{Lower: 5, Upper: 1}
	_, err := config.Validate(opts)
	require.ErrorIs(t, err, gmaberr.ErrInvalidBounds)
}

func TestValidateRejectsSingleDimensionWithCrossover(t *testing.T) {
	opts := validOptions()
	opts.Bounds = []config.Bound{{0, 10}}
	_, err := config.Validate(opts)
	require.ErrorIs(t, err, gmaberr.ErrInvalidBounds)
}

func TestValidateRejectsBoxSmallerThanPopulation(t *testing.T) {
	opts := config.Options{
		Bounds:         []config.Bound{{0, 2}},
		PopulationSize: 4,
		CrossoverRate:  0,
	}
	_, err := config.Validate(opts)
	require.ErrorIs(t, err, gmaberr.ErrInvalidBounds)
}

func TestValidateRejectsOddPopulationSize(t *testing.T) {
	opts := validOptions()
	opts.PopulationSize = 5
	_, err := config.Validate(opts)
	require.ErrorIs(t, err, gmaberr.ErrInvalidHyperparameters)
}

func TestValidateRejectsOutOfRangeRates(t *testing.T) {
	opts := validOptions()
	opts.MutationRate = 1.5
	_, err := config.Validate(opts)
	require.ErrorIs(t, err, gmaberr.ErrInvalidHyperparameters)

	opts = validOptions()
	opts.CrossoverRate = -0.1
	_, err = config.Validate(opts)
	require.ErrorIs(t, err, gmaberr.ErrInvalidHyperparameters)
}

func TestValidateDerivesDeterministicSeedWhenProvided(t *testing.T) {
	seed := uint64(42)
	opts := validOptions()
	opts.Seed = &seed

	v, err := config.Validate(opts)
	require.NoError(t, err)
	assert.Equal(t, seed, v.Seed)
}

func TestValidateDrawsEntropySeedWhenAbsent(t *testing.T) {
	v1, err := config.Validate(validOptions())
	require.NoError(t, err)
	v2, err := config.Validate(validOptions())
	require.NoError(t, err)

	// Vanishingly unlikely to collide; this just checks a seed was
	// actually drawn rather than left at its zero value every time.
	assert.NotEqual(t, v1.Seed, v2.Seed)
}

func TestValidateBudget(t *testing.T) {
	require.NoError(t, config.ValidateBudget(100, 10))

	err := config.ValidateBudget(0, 10)
	require.ErrorIs(t, err, gmaberr.ErrInvalidHyperparameters)

	err = config.ValidateBudget(5, 10)
	require.ErrorIs(t, err, gmaberr.ErrBudgetExhaustedNoEvaluations)
}
