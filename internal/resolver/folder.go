package resolver

import (
	"github.com/vrsandeep/comic-sorter/internal/models"
	"github.com/vrsandeep/comic-sorter/internal/util"
)

// folder builds a "publisher/series" suggestion with two non-empty segments.
// An unusable series falls back to fallback, then to "Unknown".
func folder(publisher, series, fallback string) string {
	pub := util.SanitizeSegment(publisher)
	if pub == "" {
		pub = models.UnsortedPublisher
	}
	name := util.SanitizeSegment(series)
	if name == "" {
		name = util.SanitizeSegment(fallback)
	}
	if name == "" {
		name = "Unknown"
	}
	return util.JoinFolder(pub, name)
}
