package movie

import "strings"

// normalized is a record with its string-typed numeric fields parsed once,
// so the predicates below compare plain numbers. Unparseable values are NaN
// and fail every comparison.
type normalized struct {
	title  string
	rating float64
	votes  float64
}

func normalize(r *Record) normalized {
	return normalized{
		title:  strings.ToLower(r.Title),
		rating: ParseFloat(r.Rating),
		votes:  ParseVotes(r.Votes),
	}
}

// Filter returns the records of catalog that satisfy every active
// constraint in c, in their original order. The catalog is not modified.
func Filter(catalog []Record, c Criteria) []Record {
	results := make([]Record, 0, len(catalog))

	for i := range catalog {
		if c.Match(&catalog[i]) {
			results = append(results, catalog[i])
		}
	}

	return results
}

// Match reports whether r satisfies every active constraint in c.
func (c Criteria) Match(r *Record) bool {
	n := normalize(r)

	if c.Query != "" && !strings.Contains(n.title, c.Query) {
		return false
	}

	// Negated >= rather than <, so a NaN rating or vote count fails.
	if c.HasMinRating() && !(n.rating >= c.MinRating) {
		return false
	}

	if c.Genre != "" && !strings.Contains(r.Genre, c.Genre) {
		return false
	}

	if c.Year != "" && !strings.HasPrefix(r.Year, c.Year) {
		return false
	}

	if c.HasMinVotes() && !(n.votes >= c.MinVotes) {
		return false
	}

	return true
}
