package web

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	keySubmissionCount = "Showing %d submissions from the sheet."
	keyReadingTime     = "%d min read"
)

func init() {
	message.Set(language.English, keySubmissionCount,
		plural.Selectf(1, "%d",
			"=0", "No submissions found in the sheet yet.",
			"=1", "Showing 1 submission from the sheet.",
			"other", "Showing %d submissions from the sheet.",
		))
}

var printer = message.NewPrinter(language.English)

// SubmissionCount is the pluralised count line of the admin listing.
func SubmissionCount(n int) string {
	return printer.Sprintf(keySubmissionCount, n)
}

func readingTime(minutes int) string {
	return printer.Sprintf(keyReadingTime, minutes)
}
