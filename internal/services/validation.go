package services

import (
	"fmt"
	"strings"

	"bookclub/internal/models"
)

// Club-wide limits checked by ValidateBook.
const (
	MaxBookPages       = 500
	MinPublicationYear = 1950
	MinSeriesOrder     = 1
)

// BookAttributes are the book fields a validation request may carry. Nil fields are not checked.
type BookAttributes struct {
	Pages           *int    `json:"pages"`
	Genre           *string `json:"genre"`
	PublicationYear *int    `json:"publication_year"`
	SeriesOrder     *int    `json:"series_order"`
	SessionID       *uint   `json:"session_id"`
}

// ValidationResult reports whether a book passes and why not.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateBook checks the club-wide rules and then each session constraint.
// It has no side effects: an invalid book can still be created.
func ValidateBook(attrs BookAttributes, constraints []models.BookConstraint) ValidationResult {
	errs := []string{}

	if attrs.Pages != nil && *attrs.Pages > MaxBookPages {
		errs = append(errs, fmt.Sprintf("Book exceeds %d pages", MaxBookPages))
	}
	if attrs.PublicationYear != nil && *attrs.PublicationYear < MinPublicationYear {
		errs = append(errs, "Publication year too old")
	}
	if attrs.SeriesOrder != nil && *attrs.SeriesOrder < MinSeriesOrder {
		errs = append(errs, fmt.Sprintf("Series order must be at least %d", MinSeriesOrder))
	}

	for i := range constraints {
		errs = append(errs, checkConstraint(attrs, &constraints[i])...)
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func checkConstraint(attrs BookAttributes, c *models.BookConstraint) []string {
	var errs []string
	if c.MaxPages != nil && attrs.Pages != nil && *attrs.Pages > *c.MaxPages {
		errs = append(errs, fmt.Sprintf("Book exceeds session limit of %d pages", *c.MaxPages))
	}
	if genres := c.Genres(); len(genres) > 0 && attrs.Genre != nil && !containsFold(genres, *attrs.Genre) {
		errs = append(errs, fmt.Sprintf("Genre must be one of: %s", strings.Join(genres, ", ")))
	}
	if c.MinPublicationYear != nil && attrs.PublicationYear != nil && *attrs.PublicationYear < *c.MinPublicationYear {
		errs = append(errs, fmt.Sprintf("Publication year must be %d or later", *c.MinPublicationYear))
	}
	if c.MaxPublicationYear != nil && attrs.PublicationYear != nil && *attrs.PublicationYear > *c.MaxPublicationYear {
		errs = append(errs, fmt.Sprintf("Publication year must be %d or earlier", *c.MaxPublicationYear))
	}
	if c.MinSeriesOrder != nil && attrs.SeriesOrder != nil && *attrs.SeriesOrder < *c.MinSeriesOrder {
		errs = append(errs, fmt.Sprintf("Series order must be at least %d for this session", *c.MinSeriesOrder))
	}
	return errs
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, strings.TrimSpace(s)) {
			return true
		}
	}
	return false
}
