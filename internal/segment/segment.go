// Package segment turns cleaned resume lines into two ordered lists of
// logical items: experience entries and project entries. A single
// section-aware merge pass decides, line by line, whether a line starts a
// new item or continues the previous one; three repair passes then undo the
// mis-segmentations the greedy pass is statistically prone to.
//
// The engine is pure and total: any finite input, including an empty one,
// yields a well-formed pair of lists. Malformed input degrades into a
// different segmentation, never an error.
package segment

// Version identifies the current heuristics revision. It is persisted with
// each snapshot so stale parses can be detected and re-segmented.
const Version = "seg-2026-08-30-a"

// Split segments cleaned input lines into (experience, projects). Input
// order is preserved within each list. Leading bullet markers are stripped
// from the final items.
func Split(lines []string) (experience, projects []string) {
	merged := mergeLines(lines)
	experience, projects = splitSections(merged)

	projects = SplitTrailingTitles(projects)
	projects = MergeShortTitles(projects)
	projects = RescueBulletFragments(projects)

	return stripBullets(experience), stripBullets(projects)
}

// stripBullets removes leading list markers from every item. The repair
// passes need the markers to recognize bullets, so this runs last.
func stripBullets(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := StripBullet(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
