// Package export renders a result set as spreadsheet-safe CSV.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"ytscout/internal/models"
)

// Filename is the suggested download name for an exported result set.
const Filename = "ytscout-results.csv"

var header = []string{
	"videoId", "title", "channelTitle", "publishedAt",
	"durationSec", "viewCount", "likeCount", "url",
}

// BuildCSV renders one row per item. Every cell is quoted with doubled
// quotes, lines end in CRLF, and the output starts with a UTF-8 BOM so
// Excel detects the encoding. Cells starting with = + - @ get a leading
// apostrophe so spreadsheets never evaluate them as formulas.
func BuildCSV(items []*models.Video) []byte {
	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	buf.WriteString(strings.Join(header, ","))
	buf.WriteString("\r\n")

	for _, it := range items {
		likes := ""
		if it.LikeCount != nil {
			likes = fmt.Sprintf("%d", *it.LikeCount)
		}
		writeRow(&buf, []string{
			it.VideoID,
			it.Title,
			it.ChannelTitle,
			it.PublishedAt.UTC().Format(time.RFC3339),
			fmt.Sprintf("%d", it.DurationSec),
			fmt.Sprintf("%d", it.ViewCount),
			likes,
			"https://www.youtube.com/watch?v=" + it.VideoID,
		})
	}

	return buf.Bytes()
}

func writeRow(buf *bytes.Buffer, cells []string) {
	for i, c := range cells {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(cell(c))
	}
	buf.WriteString("\r\n")
}

func cell(s string) string {
	if strings.HasPrefix(s, "=") || strings.HasPrefix(s, "+") ||
		strings.HasPrefix(s, "-") || strings.HasPrefix(s, "@") {
		s = "'" + s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
