package round

import (
	"errors"
	"fmt"
)

// Validation codes reported in ConfigError.Code.
const (
	CodeNoLevels      = "NO_LEVELS"
	CodeLevelNumber   = "LEVEL_NUMBER"
	CodeEmptyLevel    = "EMPTY_LEVEL"
	CodeNoDistractor  = "NO_DISTRACTOR"
	CodeRequiredScore = "REQUIRED_SCORE"
	CodeTimeLimit     = "TIME_LIMIT"
)

// ConfigError describes one violation found in a level table.
type ConfigError struct {
	Code    string
	Level   int // 1-based level number as declared, 0 for table-wide errors
	Message string
}

func (e ConfigError) Error() string {
	if e.Level == 0 {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] level %d: %s", e.Code, e.Level, e.Message)
}

// ValidateLevels checks the table invariants the engine relies on:
//   - at least one level, numbered contiguously from 1
//   - every level has items and a positive required score
//   - every item has at least one distractor to stand beside it
//   - time limits are not negative
//
// All violations are returned joined; nil means the table is playable.
func ValidateLevels(levels []Level) error {
	if len(levels) == 0 {
		return ConfigError{Code: CodeNoLevels, Message: "table has no levels"}
	}

	var errs []error
	for i, lvl := range levels {
		if lvl.Number != i+1 {
			errs = append(errs, ConfigError{
				Code:    CodeLevelNumber,
				Level:   lvl.Number,
				Message: fmt.Sprintf("expected level number %d at position %d", i+1, i),
			})
		}
		if len(lvl.Items) == 0 {
			errs = append(errs, ConfigError{
				Code:    CodeEmptyLevel,
				Level:   lvl.Number,
				Message: "level has no items",
			})
			continue
		}
		if lvl.RequiredScore <= 0 {
			errs = append(errs, ConfigError{
				Code:    CodeRequiredScore,
				Level:   lvl.Number,
				Message: fmt.Sprintf("required score must be positive, got %d", lvl.RequiredScore),
			})
		}
		if lvl.TimeLimit < 0 {
			errs = append(errs, ConfigError{
				Code:    CodeTimeLimit,
				Level:   lvl.Number,
				Message: fmt.Sprintf("time limit must not be negative, got %d", lvl.TimeLimit),
			})
		}

		distinct := len(lvl.pool())
		for _, it := range lvl.Items {
			if len(it.Decoys) == 0 && distinct < 2 {
				errs = append(errs, ConfigError{
					Code:    CodeNoDistractor,
					Level:   lvl.Number,
					Message: fmt.Sprintf("item %q has no distractor to pair with", it.ID),
				})
				break
			}
		}
	}

	return errors.Join(errs...)
}
