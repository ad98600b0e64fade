package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidateName(t *testing.T) {
	testCases := []struct {
		file string
		want string
		rule string
	}{
		{"Batman #001 (2016).cbz", "Batman", "issue_and_year"},
		{"Saga v03 (2014).cbz", "Saga", "volume_marker"},
		{"Batman: Year One 01.cbz", "Batman", "colon_subtitle"},
		{"Bone Volume 2.cbr", "Bone", "volume_word"},
		{"Berserk Vol. 12.cbz", "Berserk", "volume_word"},
		{"Batman #001.cbz", "Batman", "issue_marker"},
		{"Hellboy Issue 4.cbz", "Hellboy", "issue_marker"},
		{"Sandman No. 8.cbz", "Sandman", "issue_marker"},
		{"Spider-Man 2099 005.cbr", "Spider-Man", "year_only"},
		{"Batman - The Long Halloween.cbz", "Batman", "dash_subtitle"},
		{"Spawn 300.cbz", "Spawn", "trailing_long_number"},
		{"Some_Indie_Book_01.cbz", "Some Indie Book", "trailing_short_number"},
		{"xmen141.cbz", "xmen", "trailing_digits"},
		{"[Digital] Maus.pdf", "Maus", "first_word"},
		{"X.cbz", "X", "whole_name"},
	}
	for _, tc := range testCases {
		t.Run(tc.file, func(t *testing.T) {
			got, rule := candidateName(tc.file)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.rule, rule)
			assert.Equal(t, tc.want, CandidateName(tc.file))
		})
	}
}

func TestCandidateNameSkipsShortCaptures(t *testing.T) {
	// "X" from the issue marker is too short and no later rule applies.
	got, rule := candidateName("X #1 Special.cbz")
	assert.Equal(t, "X #1 Special", got)
	assert.Equal(t, "whole_name", rule)
}
