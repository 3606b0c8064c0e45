package config

import "github.com/ayoisaiah/tomato/internal/apperr"

var (
	errInitFailed = &apperr.Error{
		Message: "unable to initialise tomato settings from the configuration file",
	}

	errInvalidPeriod = &apperr.Error{
		Message: "please provide a valid time period",
	}

	errInvalidStartDate = &apperr.Error{
		Message: "please provide a valid start date",
	}

	errInvalidDateRange = &apperr.Error{
		Message: "the start time must be earlier than the end time",
	}
)
