package matcher

import "testing"

func TestPrepareFiltersAndNormalizes(t *testing.T) {
	entries := []Entry{
		{Ticker: "AAPL", Title: "Apple Inc.", AssetType: "Stock"},
		{Ticker: "SPY", Title: "SPDR S&P 500 ETF Trust", AssetType: "Stock"},
		{Ticker: "XYZ", Title: "Some Warrant", AssetType: "Warrant"},
		{Ticker: "MSFT", Title: "Microsoft Corporation"},
		{Ticker: "MSFT", Title: "Microsoft Corporation"},
		{Ticker: "BLNK", Title: "   "},
	}

	c := Prepare(entries, DefaultConfig())

	if c.Len() != 2 {
		t.Fatalf("corpus size = %d, want 2 (got %+v)", c.Len(), c.Entries)
	}
	if c.Entries[0].Ticker != "AAPL" || c.Entries[0].NormalizedTitle != "apple" {
		t.Errorf("first entry = %+v, want AAPL/apple", c.Entries[0])
	}
	if c.Entries[1].Ticker != "MSFT" || c.Entries[1].NormalizedTitle != "microsoft" {
		t.Errorf("second entry = %+v, want MSFT/microsoft", c.Entries[1])
	}
}

func TestPrepareKeepsUnclassifiedEntries(t *testing.T) {
	c := Prepare([]Entry{{Ticker: "ACME", Title: "Acme Inc."}}, DefaultConfig())
	if c.Len() != 1 {
		t.Fatalf("entry without asset classification was dropped")
	}
}

func TestPrepareDistinctVersions(t *testing.T) {
	entries := []Entry{{Ticker: "ACME", Title: "Acme Inc."}}
	a := Prepare(entries, DefaultConfig())
	b := Prepare(entries, DefaultConfig())
	if a.Version == b.Version {
		t.Fatalf("two prepared corpora share version %d", a.Version)
	}
}

func TestPrepareGroupsSharedNormalizedTitles(t *testing.T) {
	entries := []Entry{
		{Ticker: "ACME", Title: "Acme Inc."},
		{Ticker: "ACMB", Title: "Acme Corp"},
	}
	c := Prepare(entries, DefaultConfig())

	rows := c.entriesFor("acme")
	if len(rows) != 2 {
		t.Fatalf("entriesFor(acme) = %d rows, want 2", len(rows))
	}
	if rows[0].Ticker != "ACME" || rows[1].Ticker != "ACMB" {
		t.Errorf("rows out of corpus order: %+v", rows)
	}
	if len(c.titles) != 1 {
		t.Errorf("distinct titles = %d, want 1", len(c.titles))
	}
}

func TestCorpusLenNil(t *testing.T) {
	var c *Corpus
	if c.Len() != 0 {
		t.Fatal("nil corpus should report zero length")
	}
}

func TestSpaceNilForSingleTitle(t *testing.T) {
	c := Prepare([]Entry{{Ticker: "ACME", Title: "Acme Inc."}}, DefaultConfig())
	if c.Space() != nil {
		t.Fatal("single-title corpus should not fit a vector space")
	}
}

func TestSpaceFittedOnce(t *testing.T) {
	c := Prepare([]Entry{
		{Ticker: "AAPL", Title: "Apple Inc."},
		{Ticker: "MSFT", Title: "Microsoft Corporation"},
	}, DefaultConfig())

	first := c.Space()
	if first == nil {
		t.Fatal("two-title corpus should fit a vector space")
	}
	if second := c.Space(); second != first {
		t.Error("Space() returned a different instance on second call")
	}
}
