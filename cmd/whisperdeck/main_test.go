package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectCopyArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"whisperdeck"},
			want: []string{"whisperdeck"},
		},
		{
			name: "index first token",
			in:   []string{"whisperdeck", "2"},
			want: []string{"whisperdeck", "copy", "2"},
		},
		{
			name: "index after value flag",
			in:   []string{"whisperdeck", "--dir", "./tmp-deck", "0"},
			want: []string{"whisperdeck", "--dir", "./tmp-deck", "copy", "0"},
		},
		{
			name: "index after equals flag",
			in:   []string{"whisperdeck", "--dir=./tmp-deck", "0"},
			want: []string{"whisperdeck", "--dir=./tmp-deck", "copy", "0"},
		},
		{
			name: "index after bool flag",
			in:   []string{"whisperdeck", "--print", "1"},
			want: []string{"whisperdeck", "--print", "copy", "1"},
		},
		{
			name: "index after double dash",
			in:   []string{"whisperdeck", "--", "3"},
			want: []string{"whisperdeck", "--", "copy", "3"},
		},
		{
			name: "numeric value of a value flag is not an index",
			in:   []string{"whisperdeck", "--dir", "7"},
			want: []string{"whisperdeck", "--dir", "7"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"whisperdeck", "users", "rm", "0"},
			want: []string{"whisperdeck", "users", "rm", "0"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"whisperdeck", "wat"},
			want: []string{"whisperdeck", "wat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectCopyArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectCopyArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
