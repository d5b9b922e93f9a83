package flatmesh

import (
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// MaxRecursionLimit caps Tolerances.RecursionLimit. A cubic is never split
// into more than 2^(MaxRecursionLimit+1) segments.
const MaxRecursionLimit = 16

var ErrInvalidTolerances = errors.New("flatmesh: invalid tolerances")

// Tolerances controls adaptive subdivision. The zero value is not useful; start
// from [DefaultTolerances].
type Tolerances struct {
	// Maximum perpendicular deviation of a control point from the chord
	// before subdivision stops.
	DistanceTolerance float64 `toml:"distance_tolerance" envconfig:"DISTANCE_TOLERANCE" default:"0.5"`
	// Area threshold below which three points are treated as collinear.
	ColinearityEpsilon float64 `toml:"colinearity_epsilon" envconfig:"COLINEARITY_EPSILON" default:"0.5"`
	// If AngleTolerance is below AngleEpsilon, angle checks are skipped and
	// only distances are considered.
	AngleEpsilon float64 `toml:"angle_epsilon" envconfig:"ANGLE_EPSILON" default:"0.01"`
	// Maximum change of direction, in radians, that allows subdivision to
	// stop early.
	AngleTolerance float64 `toml:"angle_tolerance" envconfig:"ANGLE_TOLERANCE" default:"0"`
	// Angle, in radians, beyond which a corner is kept verbatim. 0 disables
	// cusp detection.
	CuspLimit float64 `toml:"cusp_limit" envconfig:"CUSP_LIMIT" default:"0"`
	// Maximum subdivision depth, clamped to MaxRecursionLimit.
	RecursionLimit int `toml:"recursion_limit" envconfig:"RECURSION_LIMIT" default:"8"`
}

func DefaultTolerances() Tolerances {
	return Tolerances{
		DistanceTolerance:  0.5,
		ColinearityEpsilon: 0.5,
		AngleEpsilon:       0.01,
		AngleTolerance:     0,
		CuspLimit:          0,
		RecursionLimit:     8,
	}
}

func (tol Tolerances) Validate() error {
	switch {
	case tol.DistanceTolerance < 0:
		return fmt.Errorf("%w: negative distance tolerance %g", ErrInvalidTolerances, tol.DistanceTolerance)
	case tol.ColinearityEpsilon < 0:
		return fmt.Errorf("%w: negative colinearity epsilon %g", ErrInvalidTolerances, tol.ColinearityEpsilon)
	case tol.AngleEpsilon < 0:
		return fmt.Errorf("%w: negative angle epsilon %g", ErrInvalidTolerances, tol.AngleEpsilon)
	case tol.AngleTolerance < 0:
		return fmt.Errorf("%w: negative angle tolerance %g", ErrInvalidTolerances, tol.AngleTolerance)
	case tol.CuspLimit < 0:
		return fmt.Errorf("%w: negative cusp limit %g", ErrInvalidTolerances, tol.CuspLimit)
	case tol.RecursionLimit < 0:
		return fmt.Errorf("%w: negative recursion limit %d", ErrInvalidTolerances, tol.RecursionLimit)
	}
	return nil
}

// ParseTolerances decodes tolerances from a TOML document. Keys that are
// absent keep their default values.
//
//	distance_tolerance = 0.25
//	cusp_limit = 2.5
//	recursion_limit = 10
func ParseTolerances(data []byte) (Tolerances, error) {
	tol := DefaultTolerances()
	if err := toml.Unmarshal(data, &tol); err != nil {
		return Tolerances{}, fmt.Errorf("flatmesh: parsing tolerances: %w", err)
	}
	if err := tol.Validate(); err != nil {
		return Tolerances{}, err
	}
	return tol, nil
}

// TolerancesFromEnv reads tolerances from environment variables named
// PREFIX_DISTANCE_TOLERANCE, PREFIX_COLINEARITY_EPSILON, PREFIX_ANGLE_EPSILON,
// PREFIX_ANGLE_TOLERANCE, PREFIX_CUSP_LIMIT and PREFIX_RECURSION_LIMIT. Unset
// variables keep their default values.
func TolerancesFromEnv(prefix string) (Tolerances, error) {
	var tol Tolerances
	if err := envconfig.Process(prefix, &tol); err != nil {
		return Tolerances{}, fmt.Errorf("flatmesh: reading tolerances: %w", err)
	}
	if err := tol.Validate(); err != nil {
		return Tolerances{}, err
	}
	return tol, nil
}
