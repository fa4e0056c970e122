package models

import "github.com/damacus/media-shelf/internal/utils"

// CategoryCount is one bar of a category histogram
type CategoryCount struct {
	Label   string
	Count   int
	Percent float64
}

// LibraryStats summarises the media under a prefix
type LibraryStats struct {
	Items           int
	TotalSize       int64
	TotalDurationMs int64
	Quality         []CategoryCount
	Sizes           []CategoryCount
}

// NewLibraryStats aggregates items into quality and size histograms
func NewLibraryStats(items []MediaItem) LibraryStats {
	quality := make([]string, 0, len(items))
	sizes := make([]string, 0, len(items))
	stats := LibraryStats{Items: len(items)}

	for _, item := range items {
		stats.TotalSize += item.Size
		stats.TotalDurationMs += item.DurationMs
		quality = append(quality, item.Quality)
		sizes = append(sizes, item.SizeCategory)
	}

	stats.Quality = CountCategories(utils.QualityCategories, quality)
	stats.Sizes = CountCategories(utils.SizeCategories, sizes)
	return stats
}

// CountCategories counts values per label, keeping the order of labels.
// Values that are not in labels are ignored.
func CountCategories(labels, values []string) []CategoryCount {
	index := make(map[string]int, len(labels))
	counts := make([]CategoryCount, len(labels))
	for i, label := range labels {
		index[label] = i
		counts[i].Label = label
	}

	total := 0
	for _, v := range values {
		if i, ok := index[v]; ok {
			counts[i].Count++
			total++
		}
	}

	for i := range counts {
		counts[i].Percent = utils.CalculatePercentage(float64(counts[i].Count), float64(total))
	}
	return counts
}
