package catalog

// Lang identifies a supported UI language.
type Lang string

const (
	Zh Lang = "zh"
	En Lang = "en"
	Ja Lang = "ja"
)

// ParseLang normalises a language string, defaulting to Cantonese.
func ParseLang(s string) Lang {
	switch s {
	case "en":
		return En
	case "ja":
		return Ja
	default:
		return Zh
	}
}

// Localize returns the item's label for the given language, falling back to
// the English label when the requested language is absent.
func Localize(item Item, lang Lang) string {
	var label string
	switch lang {
	case Zh:
		label = item.Zh
	case Ja:
		label = item.Ja
	case En:
		label = item.En
	}
	if label == "" {
		label = item.En
	}
	return label
}

// ResolveDistrictLabel resolves a free-form district value back to its
// localized catalog label. Unmatched text is returned unchanged: user-entered
// manual areas are valid, uncatalogued values, not errors.
func ResolveDistrictLabel(value string, lang Lang) string {
	if value == AllDistricts {
		return Localize(allDistrictsItem, lang)
	}
	if d := DistrictByID(value); d != nil {
		return Localize(d.Item, lang)
	}
	if d := DistrictByName(value); d != nil {
		return Localize(d.Item, lang)
	}
	return value
}
