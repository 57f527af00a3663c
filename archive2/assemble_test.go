package archive2

import (
	"testing"

	"github.com/wx88d/nexrad/model"
)

func TestResolveSitePrefersRegistryIDWithVOLHeights(t *testing.T) {
	volSite := &model.Site{SiteHeightMeters: 412, TowerHeightMeters: 30}

	site, ok := resolveSite("KABR", volSite)
	if !ok {
		t.Fatal("resolveSite() ok = false, want true")
	}
	if site.ID != "KABR" {
		t.Errorf("ID = %q, want KABR", site.ID)
	}
	if site.LatitudeDegrees != 45.45583 {
		t.Errorf("LatitudeDegrees = %v, want registry value", site.LatitudeDegrees)
	}
	if site.SiteHeightMeters != 412 || site.TowerHeightMeters != 30 {
		t.Errorf("heights = (%d, %d), want VOL-block values (412, 30)", site.SiteHeightMeters, site.TowerHeightMeters)
	}
}

func TestResolveSiteRegistryOnly(t *testing.T) {
	site, ok := resolveSite("KABR", nil)
	if !ok {
		t.Fatal("resolveSite() ok = false, want true")
	}
	if site.ID != "KABR" || site.LatitudeDegrees != 45.45583 {
		t.Errorf("got %+v, want registry-only KABR entry", site)
	}
	if site.SiteHeightMeters != 0 || site.TowerHeightMeters != 0 {
		t.Errorf("heights = (%d, %d), want zero with no VOL block", site.SiteHeightMeters, site.TowerHeightMeters)
	}
}

func TestResolveSiteVOLOnlyNoRegistryMatch(t *testing.T) {
	volSite := &model.Site{LatitudeDegrees: 1.5, LongitudeDegrees: -2.5, SiteHeightMeters: 7}

	site, ok := resolveSite("ZZZZ", volSite)
	if !ok {
		t.Fatal("resolveSite() ok = false, want true")
	}
	if site.ID != "ZZZZ" {
		t.Errorf("ID = %q, want ZZZZ", site.ID)
	}
	if site.LatitudeDegrees != 1.5 || site.LongitudeDegrees != -2.5 || site.SiteHeightMeters != 7 {
		t.Errorf("got %+v, want VOL-block-only coordinates", site)
	}
}

func TestResolveSiteNeitherSourceAvailable(t *testing.T) {
	if _, ok := resolveSite("ZZZZ", nil); ok {
		t.Error("resolveSite() ok = true, want false with no registry match and no VOL block")
	}
}

func TestAssembleScanRequiresVCP(t *testing.T) {
	if _, err := assembleScan("KABR", nil, nil, nil); err != ErrMissingCoveragePattern {
		t.Errorf("assembleScan() error = %v, want ErrMissingCoveragePattern", err)
	}
}

func TestAssembleScanWithoutResolvableSite(t *testing.T) {
	vcp := &model.VolumeCoveragePattern{}
	scan, err := assembleScan("ZZZZ", nil, nil, vcp)
	if err != nil {
		t.Fatal(err)
	}
	if scan.Site != nil {
		t.Errorf("Site = %+v, want nil", scan.Site)
	}
}

func TestAssembleScanWithResolvableSite(t *testing.T) {
	vcp := &model.VolumeCoveragePattern{}
	scan, err := assembleScan("KABR", nil, nil, vcp)
	if err != nil {
		t.Fatal(err)
	}
	if scan.Site == nil || scan.Site.ID != "KABR" {
		t.Fatalf("Site = %+v, want KABR", scan.Site)
	}
}
