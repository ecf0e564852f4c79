package movie

import (
	"fmt"
	"math"
	"strings"
)

// Field names one of the filter selectors.
type Field string

const (
	FieldRating Field = "rating"
	FieldGenre  Field = "genre"
	FieldYear   Field = "year"
	FieldVotes  Field = "votes"
)

// AllFields lists the selector fields in display order.
var AllFields = []Field{FieldRating, FieldGenre, FieldYear, FieldVotes}

// Inputs holds the raw values of the search controls, exactly as the user
// left them.
type Inputs struct {
	Query  string
	Rating string
	Genre  string
	Year   string
	Votes  string
}

// With returns a copy of in with the given selector set to value.
func (in Inputs) With(f Field, value string) (Inputs, error) {
	switch f {
	case FieldRating:
		in.Rating = value
	case FieldGenre:
		in.Genre = value
	case FieldYear:
		in.Year = value
	case FieldVotes:
		in.Votes = value
	default:
		return in, fmt.Errorf("unknown filter field %q", f)
	}

	return in, nil
}

// Get returns the current value of the given selector.
func (in Inputs) Get(f Field) string {
	switch f {
	case FieldRating:
		return in.Rating
	case FieldGenre:
		return in.Genre
	case FieldYear:
		return in.Year
	case FieldVotes:
		return in.Votes
	}

	return ""
}

// Criteria is the normalized form of [Inputs] that [Filter] applies.
// A zero MinRating or MinVotes, and an empty string field, is an absent
// constraint.
type Criteria struct {
	Query     string
	Genre     string
	Year      string
	MinRating float64
	MinVotes  float64
}

// ParseCriteria normalizes the raw control values. Numeric values that are
// empty, unparseable or zero become absent constraints.
func ParseCriteria(in Inputs) Criteria {
	return Criteria{
		Query:     strings.ToLower(strings.TrimSpace(in.Query)),
		MinRating: presentOrZero(ParseFloat(in.Rating)),
		Genre:     in.Genre,
		Year:      in.Year,
		MinVotes:  presentOrZero(ParseInt(in.Votes)),
	}
}

// HasMinRating reports whether the rating constraint is active.
func (c Criteria) HasMinRating() bool {
	return c.MinRating != 0
}

// HasMinVotes reports whether the votes constraint is active.
func (c Criteria) HasMinVotes() bool {
	return c.MinVotes != 0
}

// IsZero reports whether no constraint is active.
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

func presentOrZero(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}

	return f
}
