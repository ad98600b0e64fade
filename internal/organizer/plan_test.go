package organizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrsandeep/comic-sorter/internal/models"
)

func record(path string, source models.Source, series, publisher, folder string) *models.ComicMetadata {
	rec := models.NewComicMetadata(source)
	rec.Path = path
	rec.OriginalFilename = path
	rec.Series = series
	rec.Publisher = publisher
	rec.SuggestedFolder = folder
	return rec
}

func TestBuildPlan(t *testing.T) {
	records := []*models.ComicMetadata{
		record("/in/Batman 001.cbz", models.SourceComicInfo, "Batman", "DC Comics", "DC Comics/Batman"),
		record("/in/Rat Queens 01.cbz", models.SourceFilenameAnalysis, "", "", "Unsorted/Rat Queens 01"),
		record("/in/Rat Queens 02.cbz", models.SourceFilenameAnalysis, "", "", "Unsorted/Rat Queens 02"),
		record("/in/Loose.cbz", models.SourceFilenameAnalysis, "", "", "Unsorted/Loose"),
		nil,
	}
	groups := []models.SeriesGroup{
		{Name: "Rat Queens", Files: []string{"/in/Rat Queens 01.cbz", "/in/Rat Queens 02.cbz"}},
		{Name: "Batman", Files: []string{"/in/Batman 001.cbz"}},
	}

	plan := BuildPlan(records, groups)

	assert.Len(t, plan, 4)
	assert.Equal(t, "DC Comics/Batman", plan[0].Folder, "records with a series keep their folder")
	assert.Equal(t, "Unsorted/Rat Queens", plan[1].Folder)
	assert.Equal(t, "Unsorted/Rat Queens", plan[2].Folder)
	assert.Equal(t, "Unsorted/Loose", plan[3].Folder)
	assert.Same(t, records[1], plan[1].Record)
	assert.Equal(t, "/in/Loose.cbz", plan[3].Source)
}

func TestBuildPlanKeepsKnownPublisher(t *testing.T) {
	rec := record("", models.SourceFilenameAnalysis, "", "Image Comics", "Unsorted/x")
	rec.OriginalFilename = "Monstress 01.cbz"
	groups := []models.SeriesGroup{{Name: "Monstress", Files: []string{"Monstress 01.cbz", "Monstress 02.cbz"}}}

	plan := BuildPlan([]*models.ComicMetadata{rec}, groups)

	assert.Equal(t, "Monstress 01.cbz", plan[0].Source)
	assert.Equal(t, "Image Comics/Monstress", plan[0].Folder)
}

func TestBuildPlanRegroupsPublisherDetectedIssues(t *testing.T) {
	var records []*models.ComicMetadata
	var files []string
	for _, n := range []string{"001", "002", "003"} {
		path := "/in/Rat Queens " + n + " (Image Comics).cbz"
		records = append(records, record(path, models.SourcePublisherDetection,
			"Rat Queens "+n, "Image Comics", "Image Comics/Rat Queens "+n))
		files = append(files, path)
	}
	records = append(records, record("/in/Saga 01.cbz", models.SourcePatternMatch, "Saga", "Image Comics", "Image Comics/Saga"))
	groups := []models.SeriesGroup{
		{Name: "Rat Queens", Files: files},
		{Name: "Saga Of Something", Files: []string{"/in/Saga 01.cbz"}},
	}

	plan := BuildPlan(records, groups)

	require.Len(t, plan, 4)
	for _, a := range plan[:3] {
		assert.Equal(t, "Image Comics/Rat Queens", a.Folder)
	}
	assert.Equal(t, "Image Comics/Saga", plan[3].Folder, "catalog series keep their folder")
}
