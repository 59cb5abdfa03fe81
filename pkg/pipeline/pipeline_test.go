package pipeline

import (
	"bytes"
	"context"
	"testing"

	"github.com/expogrid/hallplan/pkg/cache"
	"github.com/expogrid/hallplan/pkg/hall"
)

func testGeometry() hall.Geometry {
	return hall.Default()
}

func TestExecuteAllFormats(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Formats: []string{FormatSVG, FormatDOT, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	for _, f := range []string{FormatSVG, FormatDOT, FormatJSON} {
		if len(result.Artifacts[f]) == 0 {
			t.Errorf("no %s artifact produced", f)
		}
	}
	if result.Layout == nil || len(result.Layout.Booths) == 0 {
		t.Fatal("no booths in layout")
	}
	if result.PlanHash == "" {
		t.Error("missing plan hash")
	}
	if result.CacheInfo.PlanHit {
		t.Error("null cache cannot produce a plan hit")
	}
}

func TestExecuteIdempotent(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	a, err := runner.Execute(context.Background(), Options{Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatal(err)
	}
	b, err := runner.Execute(context.Background(), Options{Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatal(err)
	}

	if a.PlanHash != b.PlanHash {
		t.Error("identical inputs produced different plan hashes")
	}
	if !bytes.Equal(a.Artifacts[FormatJSON], b.Artifacts[FormatJSON]) {
		t.Error("identical inputs produced different serialized layouts")
	}
}

func TestExecutePlanCacheHit(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	first, err := runner.Execute(context.Background(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.PlanHit {
		t.Error("first run should miss")
	}

	second, err := runner.Execute(context.Background(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.PlanHit {
		t.Error("second run should hit the plan cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if first.PlanHash != second.PlanHash {
		t.Error("cache round trip changed the plan hash")
	}
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	if _, err := runner.Execute(context.Background(), Options{}); err != nil {
		t.Fatal(err)
	}
	second, err := runner.Execute(context.Background(), Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if second.CacheInfo.PlanHit {
		t.Error("refresh run must not hit the cache")
	}
}

func TestOptionsRejectInvalidFormat(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{Formats: []string{"png"}})
	if err == nil {
		t.Error("unsupported format should be rejected")
	}
}

func TestOptionsRejectBadCorridorWidth(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{SecondaryWidth: 5})
	if err == nil {
		t.Error("out-of-range corridor width should be rejected")
	}
}

func TestPlanKeyVariesWithOptions(t *testing.T) {
	base := Options{}
	wide := Options{SecondaryWidth: 3.5}
	if err := base.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if err := wide.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	keyer := cache.NewDefaultKeyer()
	g := testGeometry()
	if keyer.PlanKey(base.PlanKeyOpts(g)) == keyer.PlanKey(wide.PlanKeyOpts(g)) {
		t.Error("different corridor widths should produce different plan keys")
	}
}
