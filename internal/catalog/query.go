package catalog

import (
	"strconv"
	"strings"
)

// Query is a request body in the catalog's query language.
// Empty clauses are omitted when rendered.
type Query struct {
	Search string
	Fields []string
	Where  []string
	Sort   string
	Limit  int
}

// String renders the query, e.g.
//
//	search "zelda"; fields id,name; where cover != null; limit 20;
func (q Query) String() string {
	var clauses []string

	if search := SearchTerm(q.Search); search != "" {
		clauses = append(clauses, `search "`+search+`";`)
	}
	if len(q.Fields) > 0 {
		clauses = append(clauses, "fields "+strings.Join(q.Fields, ",")+";")
	}
	if len(q.Where) > 0 {
		clauses = append(clauses, "where "+strings.Join(q.Where, " & ")+";")
	}
	if q.Sort != "" {
		clauses = append(clauses, "sort "+q.Sort+";")
	}
	if q.Limit > 0 {
		clauses = append(clauses, "limit "+strconv.Itoa(q.Limit)+";")
	}

	return strings.Join(clauses, " ")
}

var searchStripper = strings.NewReplacer(`"`, "", `\`, "")

// SearchTerm returns title as it is sent inside the quoted search clause.
// Quotes and backslashes cannot be escaped in that literal, so they are removed.
func SearchTerm(title string) string {
	return strings.TrimSpace(searchStripper.Replace(title))
}

func featuredQuery(nowUnix int64) Query {
	return Query{
		Fields: []string{"id", "name", "summary", "cover.*", "screenshots.*", "first_release_date"},
		Where: []string{
			"aggregated_rating_count != 0",
			"first_release_date != null",
			"first_release_date < " + strconv.FormatInt(nowUnix, 10),
			"cover != null",
			"screenshots != null",
		},
		Sort:  "first_release_date desc",
		Limit: FeaturedLimit,
	}
}

func searchQuery(title string) Query {
	return Query{
		Search: title,
		Fields: []string{"id", "name", "cover.*", "release_dates.*"},
		Where:  []string{"release_dates.human != null", "release_dates.date != null", "cover != null"},
		Limit:  SearchLimit,
	}
}

func detailQuery(id int64) Query {
	return Query{
		Fields: []string{"name", "summary", "cover.*", "release_dates.*"},
		Where:  []string{"id = " + strconv.FormatInt(id, 10)},
	}
}
