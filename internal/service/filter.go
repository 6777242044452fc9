package service

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/model"
)

// fold lowercases s for case-insensitive matching. A Caser is stateful, so a
// fresh one is used per call.
func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

// NormalizeKeyword trims and lowercases a deny-list entry.
func NormalizeKeyword(s string) string {
	return fold(strings.TrimSpace(s))
}

// CheckQuery rejects a query that contains any denied keyword, ignoring
// case. The returned error is a *BlockedQueryError naming the first match.
func CheckQuery(query string, denied []string) error {
	q := fold(query)
	for _, kw := range denied {
		if kw != "" && strings.Contains(q, kw) {
			return &BlockedQueryError{Keyword: kw}
		}
	}
	return nil
}

// FilterVideos drops every video whose title or description contains a
// denied keyword. Input order is preserved and the input is not modified.
func FilterVideos(videos []model.VideoSummary, denied []string) []model.VideoSummary {
	out := make([]model.VideoSummary, 0, len(videos))
	for _, v := range videos {
		if !containsDenied(v, denied) {
			out = append(out, v)
		}
	}
	return out
}

func containsDenied(v model.VideoSummary, denied []string) bool {
	if len(denied) == 0 {
		return false
	}
	title := fold(v.Title)
	desc := fold(v.Description)
	for _, kw := range denied {
		if kw == "" {
			continue
		}
		if strings.Contains(title, kw) || strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

// Dedupe keeps the first occurrence of each video id.
func Dedupe(videos []model.VideoSummary) []model.VideoSummary {
	seen := make(map[string]struct{}, len(videos))
	out := make([]model.VideoSummary, 0, len(videos))
	for _, v := range videos {
		if _, dup := seen[v.VideoID]; dup {
			continue
		}
		seen[v.VideoID] = struct{}{}
		out = append(out, v)
	}
	return out
}

// SortByRecency stable-sorts videos newest first, in place.
func SortByRecency(videos []model.VideoSummary) {
	slices.SortStableFunc(videos, func(a, b model.VideoSummary) int {
		return cmp.Compare(b.PublishedAt.UnixNano(), a.PublishedAt.UnixNano())
	})
}

// Apply runs the full visibility pipeline: deny-list filter, dedupe,
// optional recency sort, then truncation to limit.
func Apply(videos []model.VideoSummary, denied []string, limit int, sortByRecency bool) []model.VideoSummary {
	out := Dedupe(FilterVideos(videos, denied))
	if sortByRecency {
		SortByRecency(out)
	}
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
