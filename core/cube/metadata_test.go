package cube

import (
	"errors"
	"reflect"
	"testing"
)

// sentinel2Doc mirrors a classic Sentinel-2 collection document.
func sentinel2Doc() map[string]any {
	return map[string]any{
		"properties": map[string]any{
			"cube:dimensions": map[string]any{
				"bands": map[string]any{"type": "bands", "values": []any{"B02", "B03", "B04", "B08"}},
			},
			"eo:bands": []any{
				map[string]any{"name": "B02", "common_name": "blue", "center_wavelength": 0.4966},
				map[string]any{"name": "B03", "common_name": "green", "center_wavelength": 0.560},
				map[string]any{"name": "B04", "common_name": "red", "center_wavelength": 0.6645},
				map[string]any{"name": "B08", "common_name": "nir", "center_wavelength": 0.8351},
			},
		},
	}
}

// TestParseCollectionMetadata verifies band names, common names, and
// wavelengths are merged from cube:dimensions and eo:bands.
func TestParseCollectionMetadata(t *testing.T) {
	metadata := ParseCollectionMetadata("SENTINEL2_RADIOMETRY_10M", sentinel2Doc())
	if metadata.ID != "SENTINEL2_RADIOMETRY_10M" {
		t.Errorf("unexpected id %q", metadata.ID)
	}
	if !reflect.DeepEqual(metadata.BandNames(), []string{"B02", "B03", "B04", "B08"}) {
		t.Errorf("unexpected band names %v", metadata.BandNames())
	}
	if metadata.Bands[2].CommonName != "red" {
		t.Errorf("expected common name red, got %q", metadata.Bands[2].CommonName)
	}
	if metadata.Bands[3].CenterWavelength != 0.8351 {
		t.Errorf("expected wavelength 0.8351, got %v", metadata.Bands[3].CenterWavelength)
	}
}

// TestParseCollectionMetadataTopLevel verifies 1.x documents without a
// properties wrapper parse too.
func TestParseCollectionMetadataTopLevel(t *testing.T) {
	doc := map[string]any{
		"cube:dimensions": map[string]any{
			"bands": map[string]any{"type": "bands", "values": []any{"SCENECLASSIFICATION", "MASKFOO"}},
		},
	}
	metadata := ParseCollectionMetadata("SENTINEL2_SCF", doc)
	if !reflect.DeepEqual(metadata.BandNames(), []string{"SCENECLASSIFICATION", "MASKFOO"}) {
		t.Errorf("unexpected band names %v", metadata.BandNames())
	}
}

// TestParseCollectionMetadataEmpty verifies collections without band metadata.
func TestParseCollectionMetadataEmpty(t *testing.T) {
	metadata := ParseCollectionMetadata("MASK", map[string]any{})
	if len(metadata.Bands) != 0 {
		t.Errorf("expected no bands, got %v", metadata.Bands)
	}
}

// TestBandIndex verifies index, name, and common-name resolution.
func TestBandIndex(t *testing.T) {
	metadata := ParseCollectionMetadata("S2", sentinel2Doc())

	cases := []struct {
		ref   any
		index int
	}{
		{0, 0},
		{2, 2},
		{"B04", 2},
		{"red", 2},
		{"nir", 3},
	}
	for _, c := range cases {
		index, err := metadata.BandIndex(c.ref)
		if err != nil {
			t.Errorf("BandIndex(%v) failed: %v", c.ref, err)
			continue
		}
		if index != c.index {
			t.Errorf("BandIndex(%v): expected %d, got %d", c.ref, c.index, index)
		}
	}
}

// TestBandIndexUnknown verifies unresolvable references fail with ErrUnknownBand.
func TestBandIndexUnknown(t *testing.T) {
	metadata := ParseCollectionMetadata("S2", sentinel2Doc())
	for _, ref := range []any{"B99", 7, -1, 3.5} {
		if _, err := metadata.BandIndex(ref); !errors.Is(err, ErrUnknownBand) {
			t.Errorf("BandIndex(%v): expected ErrUnknownBand, got %v", ref, err)
		}
	}
}

// TestParseAPIVersion verifies version strings map to schema generations.
func TestParseAPIVersion(t *testing.T) {
	cases := []struct {
		reported string
		version  APIVersion
	}{
		{"0.4.0", V040},
		{"0.4.2", V040},
		{"1.0.0", V100},
		{"1.2.0", V100},
	}
	for _, c := range cases {
		got, err := ParseAPIVersion(c.reported)
		if err != nil {
			t.Errorf("ParseAPIVersion(%q) failed: %v", c.reported, err)
			continue
		}
		if got != c.version {
			t.Errorf("ParseAPIVersion(%q): expected %s, got %s", c.reported, c.version, got)
		}
	}
	if _, err := ParseAPIVersion("0.3.1"); err == nil {
		t.Error("expected error for unsupported version")
	}
}
