package engine

import "github.com/pkg/errors"

var (
	// ErrFileNotFound is returned when an indicator export does not exist.
	ErrFileNotFound = errors.New("indicator file not found")

	// ErrMissingColumn is returned when a requested year column or the
	// country column is absent from the header.
	ErrMissingColumn = errors.New("missing column")

	// ErrUnknownCountry is returned when a country is not a column of a view.
	ErrUnknownCountry = errors.New("unknown country")

	// ErrMisaligned is returned when correlated series differ in length.
	ErrMisaligned = errors.New("series are not aligned")
)
