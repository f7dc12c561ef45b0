package domain

import (
	"strings"

	"github.com/hkopendata/mobile-post-services/api/internal/apperr"
)

// Language selects which variant of the language-grouped fields to expose.
type Language string

const (
	LangEN  Language = "en"
	LangTC  Language = "tc"
	LangSC  Language = "sc"
	LangAll Language = "all"
)

// ParseLanguage validates a lang query value. Empty defaults to English so
// single-language consumers keep working without the parameter.
func ParseLanguage(raw string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return LangEN, nil
	case LangEN:
		return LangEN, nil
	case LangTC:
		return LangTC, nil
	case LangSC:
		return LangSC, nil
	case LangAll:
		return LangAll, nil
	default:
		return "", apperr.Newf(apperr.CodeInvalidLanguage, "unsupported language %q", raw)
	}
}

// LocalizedPost is the single-language display projection of a MobilePost.
// Each field holds the requested language's value, falling back to English,
// falling back to the empty string. The fallback never cascades further.
type LocalizedPost struct {
	Name     string
	District string
	Location string
	Address  string
}

// Localize resolves the four language-grouped fields for lang. lang=all is
// resolved as English: the all-columns projection is built by the boundary
// layer from the raw columns, with these EN aliases alongside.
func (p MobilePost) Localize(lang Language) LocalizedPost {
	return LocalizedPost{
		Name:     resolve(lang, p.NameEN, p.NameTC, p.NameSC),
		District: resolve(lang, p.DistrictEN, p.DistrictTC, p.DistrictSC),
		Location: resolve(lang, p.LocationEN, p.LocationTC, p.LocationSC),
		Address:  resolve(lang, p.AddressEN, p.AddressTC, p.AddressSC),
	}
}

func resolve(lang Language, en, tc, sc string) string {
	var preferred string
	switch lang {
	case LangTC:
		preferred = tc
	case LangSC:
		preferred = sc
	default:
		preferred = en
	}
	if preferred != "" {
		return preferred
	}
	return en
}
