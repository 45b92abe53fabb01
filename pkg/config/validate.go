package config

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// cronParser accepts standard five-field expressions and descriptors such as "@every 5m".
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ParseCronSchedule parses schedule with the same parser the scheduler uses.
func ParseCronSchedule(schedule string) (cron.Schedule, error) {
	if strings.TrimSpace(schedule) == "" {
		return nil, fmt.Errorf("invalid cron schedule: cannot be empty")
	}
	s, err := cronParser.Parse(schedule)
	if err != nil {
		return nil, fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}
	return s, nil
}

// ValidateCronSchedule returns an error if schedule cannot be parsed.
//
// Example:
//
//	ValidateCronSchedule("*/15 * * * *") // nil
//	ValidateCronSchedule("@every 1m")    // nil
//	ValidateCronSchedule("every minute") // error
func ValidateCronSchedule(schedule string) error {
	_, err := ParseCronSchedule(schedule)
	return err
}

// ValidateRange returns an error unless min <= value <= max.
func ValidateRange[T cmp.Ordered](value, min, max T) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%v) cannot be greater than max (%v)", min, max)
	}
	if value < min || value > max {
		return fmt.Errorf("value %v is out of range [%v, %v]", value, min, max)
	}
	return nil
}

// ValidatePositive returns an error unless value > 0.
func ValidatePositive[T cmp.Ordered](value T) error {
	var zero T
	if value <= zero {
		return fmt.Errorf("must be positive, got %v", value)
	}
	return nil
}

// ValidateNonNegative returns an error if value < 0. Zero usually means "disabled".
func ValidateNonNegative[T cmp.Ordered](value T) error {
	var zero T
	if value < zero {
		return fmt.Errorf("must not be negative, got %v", value)
	}
	return nil
}

// ValidateOneOf returns an error unless value equals one of allowed.
func ValidateOneOf(value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("value %q must be one of [%s]", value, strings.Join(allowed, ", "))
}
