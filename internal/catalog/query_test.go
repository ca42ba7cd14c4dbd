package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryString(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  string
	}{
		{
			name: "search",
			query: Query{
				Search: "zelda",
				Fields: []string{"id", "name", "cover.*", "release_dates.*"},
				Where:  []string{"cover != null"},
				Limit:  20,
			},
			want: `search "zelda"; fields id,name,cover.*,release_dates.*; where cover != null; limit 20;`,
		},
		{
			name:  "quotes stripped",
			query: Query{Search: `a" ; fields *; "b`, Fields: []string{"id"}},
			want:  `search "a ; fields *; b"; fields id;`,
		},
		{
			name:  "blank search omitted",
			query: Query{Search: `  `, Fields: []string{"id"}, Sort: "name asc"},
			want:  `fields id; sort name asc;`,
		},
		{
			name:  "backslashes stripped",
			query: Query{Search: `halo\`, Fields: []string{"id"}},
			want:  `search "halo"; fields id;`,
		},
		{
			name:  "only quotes omitted",
			query: Query{Search: `"" \"`, Fields: []string{"id"}},
			want:  `fields id;`,
		},
		{
			name:  "empty",
			query: Query{},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.String())
		})
	}
}
