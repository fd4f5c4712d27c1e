package segment

import (
	"reflect"
	"testing"
)

func TestSplitTrailingTitles(t *testing.T) {
	items := []string{
		"maintained infra Billing Portal",
		"- Shipped the final release.",
		"Ledger Sync",
	}
	got := SplitTrailingTitles(items)
	want := []string{
		"maintained",
		"infra Billing Portal",
		"- Shipped the final release.",
		"Ledger Sync",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitTrailingTitles = %v, want %v", got, want)
	}
}

func TestMergeShortTitles_MergesPair(t *testing.T) {
	got := MergeShortTitles([]string{"Suspicious", "Activity Detection"})
	want := []string{"Suspicious Activity Detection"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeShortTitles = %v, want %v", got, want)
	}
}

func TestMergeShortTitles_WordLimits(t *testing.T) {
	// First item over four words: no merge.
	got := MergeShortTitles([]string{"One Two Three Four Five", "Alpha"})
	want := []string{"One Two Three Four Five", "Alpha"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeShortTitles = %v, want %v", got, want)
	}

	// Four plus four words is exactly the limit: merge.
	got = MergeShortTitles([]string{"Alpha Beta Gamma Delta", "One Two Three Four"})
	want = []string{"Alpha Beta Gamma Delta One Two Three Four"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeShortTitles = %v, want %v", got, want)
	}
}

func TestMergeShortTitles_ConsumesPairsEagerly(t *testing.T) {
	// A merged pair is not re-merged with the item after it in the same
	// pass; the scan advances past both.
	got := MergeShortTitles([]string{"Alpha", "Beta", "a bullet continuation line"})
	want := []string{"Alpha Beta", "a bullet continuation line"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeShortTitles = %v, want %v", got, want)
	}
}

func TestMergeShortTitles_NonTitleNeighbors(t *testing.T) {
	got := MergeShortTitles([]string{"- built the exporter", "Beta Dashboard"})
	want := []string{"- built the exporter", "Beta Dashboard"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeShortTitles = %v, want %v", got, want)
	}
}

func TestRescueBulletFragments_SingleToken(t *testing.T) {
	items := []string{"- built dashboards for ops MetricsHub", "Live View"}
	got := RescueBulletFragments(items)
	want := []string{"- built dashboards for ops", "MetricsHub Live View"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RescueBulletFragments = %v, want %v", got, want)
	}
}

func TestRescueBulletFragments_TwoTokens(t *testing.T) {
	items := []string{"- improved the pipeline for Data Works", "Studio"}
	got := RescueBulletFragments(items)
	want := []string{"- improved the pipeline for", "Data Works Studio"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RescueBulletFragments = %v, want %v", got, want)
	}
}

func TestRescueBulletFragments_DanglingDashCleanup(t *testing.T) {
	items := []string{"- built the exporter - Data Works", "Studio"}
	got := RescueBulletFragments(items)
	want := []string{"- built the exporter", "Data Works Studio"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RescueBulletFragments = %v, want %v", got, want)
	}
}

func TestRescueBulletFragments_PunctuationGuard(t *testing.T) {
	// A bullet that already ends in terminal punctuation keeps its tail.
	items := []string{"- shipped the final release.", "Gamma Tool"}
	got := RescueBulletFragments(items)
	if !reflect.DeepEqual(got, items) {
		t.Errorf("RescueBulletFragments = %v, want unchanged %v", got, items)
	}
}

func TestRescueBulletFragments_NoFragment(t *testing.T) {
	// Bullet ends in lowercase text: nothing rescuable.
	items := []string{"- processed data sources", "Beta Dashboard"}
	got := RescueBulletFragments(items)
	if !reflect.DeepEqual(got, items) {
		t.Errorf("RescueBulletFragments = %v, want unchanged %v", got, items)
	}
}

func TestRescueBulletFragments_RequiresTitleNext(t *testing.T) {
	// Next item is not a plausible title: the fragment stays on the bullet.
	items := []string{"- built dashboards for ops MetricsHub", "a long continuation line about it"}
	got := RescueBulletFragments(items)
	if !reflect.DeepEqual(got, items) {
		t.Errorf("RescueBulletFragments = %v, want unchanged %v", got, items)
	}
}
