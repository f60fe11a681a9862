package classifications

import (
	"cmp"
	"math"
	"slices"
	"strings"
)

// topChapterLimit bounds the chapter frequency ranking.
const topChapterLimit = 5

// Statistics summarizes the stored record set.
type Statistics struct {
	Total             int            `json:"total"`
	DualUseCount      int            `json:"dual_use_count"`
	AverageConfidence int            `json:"average_confidence"`
	TopChapters       []ChapterCount `json:"top_chapters"`
}

// ChapterCount is a chapter bucket with its record frequency.
type ChapterCount struct {
	Chapter string `json:"chapter"`
	Count   int    `json:"count"`
}

// StatRow is the narrow record projection statistics are computed from.
type StatRow struct {
	Confidence int
	IsDualUse  bool
	Chapter    string
}

// Aggregate computes summary statistics over the record projection in
// process: total count, dual-use count, rounded mean confidence, and the
// five most frequent chapter buckets ordered by descending count (ties
// broken by chapter for determinism).
func Aggregate(rows []StatRow) Statistics {
	stats := Statistics{
		Total:       len(rows),
		TopChapters: []ChapterCount{},
	}

	if len(rows) == 0 {
		return stats
	}

	var confidenceSum int
	buckets := make(map[string]int)

	for _, row := range rows {
		confidenceSum += row.Confidence
		if row.IsDualUse {
			stats.DualUseCount++
		}
		buckets[ChapterBucket(row.Chapter)]++
	}

	stats.AverageConfidence = int(math.Round(float64(confidenceSum) / float64(len(rows))))

	for chapter, count := range buckets {
		stats.TopChapters = append(stats.TopChapters, ChapterCount{
			Chapter: chapter,
			Count:   count,
		})
	}

	slices.SortFunc(stats.TopChapters, func(a, b ChapterCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Chapter, b.Chapter)
	})

	if len(stats.TopChapters) > topChapterLimit {
		stats.TopChapters = stats.TopChapters[:topChapterLimit]
	}

	return stats
}

// ChapterBucket extracts the bucket token from a chapter label: the text
// preceding the first " - " separator, trimmed. Labels without the
// separator bucket under the whole trimmed label.
func ChapterBucket(label string) string {
	bucket, _, found := strings.Cut(label, " - ")
	if !found {
		return strings.TrimSpace(label)
	}
	return strings.TrimSpace(bucket)
}
