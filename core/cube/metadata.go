package cube

import "fmt"

// Band describes one spectral band of a collection.
type Band struct {
	Name             string
	CommonName       string
	CenterWavelength float64
}

// CollectionMetadata is the band metadata of one source collection, parsed
// from the backend's collection document. It resolves band names and common
// names ("red") to the positional index band math operates on.
type CollectionMetadata struct {
	ID    string
	Bands []Band
}

// ParseCollectionMetadata extracts band metadata from a collection document.
// Band names come from the bands entry of cube:dimensions; common names and
// wavelengths are merged in from eo:bands when present. Collections without
// band metadata yield an empty band list.
func ParseCollectionMetadata(id string, doc map[string]any) CollectionMetadata {
	metadata := CollectionMetadata{ID: id}

	properties, _ := doc["properties"].(map[string]any)
	if properties == nil {
		// 1.x documents carry these fields at the top level.
		properties = doc
	}

	if dimensions, ok := properties["cube:dimensions"].(map[string]any); ok {
		for _, dimension := range dimensions {
			entry, ok := dimension.(map[string]any)
			if !ok || entry["type"] != "bands" {
				continue
			}
			values, _ := entry["values"].([]any)
			for _, value := range values {
				if name, ok := value.(string); ok {
					metadata.Bands = append(metadata.Bands, Band{Name: name})
				}
			}
		}
	}

	if eoBands, ok := properties["eo:bands"].([]any); ok {
		for _, value := range eoBands {
			entry, ok := value.(map[string]any)
			if !ok {
				continue
			}
			name, _ := entry["name"].(string)
			commonName, _ := entry["common_name"].(string)
			wavelength, _ := entry["center_wavelength"].(float64)
			merged := false
			for i := range metadata.Bands {
				if metadata.Bands[i].Name == name {
					metadata.Bands[i].CommonName = commonName
					metadata.Bands[i].CenterWavelength = wavelength
					merged = true
					break
				}
			}
			if !merged && name != "" {
				metadata.Bands = append(metadata.Bands, Band{Name: name, CommonName: commonName, CenterWavelength: wavelength})
			}
		}
	}

	return metadata
}

// BandNames returns the band names in index order.
func (m CollectionMetadata) BandNames() []string {
	names := make([]string, len(m.Bands))
	for i, band := range m.Bands {
		names[i] = band.Name
	}
	return names
}

// BandIndex resolves a band reference to its positional index. An int is
// bounds-checked; a string is matched against band names first, then common
// names.
func (m CollectionMetadata) BandIndex(band any) (int, error) {
	switch b := band.(type) {
	case int:
		if b < 0 || b >= len(m.Bands) {
			return 0, fmt.Errorf("%w: index %d out of range for collection %q (%d bands)", ErrUnknownBand, b, m.ID, len(m.Bands))
		}
		return b, nil
	case string:
		for i, candidate := range m.Bands {
			if candidate.Name == b {
				return i, nil
			}
		}
		for i, candidate := range m.Bands {
			if candidate.CommonName == b {
				return i, nil
			}
		}
		return 0, fmt.Errorf("%w: %q in collection %q (bands: %v)", ErrUnknownBand, b, m.ID, m.BandNames())
	default:
		return 0, fmt.Errorf("%w: band reference must be an int or string, got %T", ErrUnknownBand, band)
	}
}

// subset returns a copy of the metadata restricted to the given bands, in the
// requested order.
func (m CollectionMetadata) subset(bands []string) (CollectionMetadata, error) {
	restricted := CollectionMetadata{ID: m.ID}
	for _, name := range bands {
		index, err := m.BandIndex(name)
		if err != nil {
			return restricted, err
		}
		restricted.Bands = append(restricted.Bands, m.Bands[index])
	}
	return restricted, nil
}
