package application

import (
	"sort"
	"strings"

	"github.com/hkopendata/mobile-post-services/api/internal/apperr"
	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/domain"
)

// SortKey enumerates the accepted sortBy values. Name and district are
// virtual keys: they order by the language-resolved value the client sees.
type SortKey string

const (
	SortByID        SortKey = "id"
	SortBySeq       SortKey = "seq"
	SortByDistrict  SortKey = "district"
	SortByOpenHour  SortKey = "openHour"
	SortByCloseHour SortKey = "closeHour"
	SortByName      SortKey = "name"
)

// SortSpec is a validated ordering: key, direction and the language the
// virtual keys resolve against.
type SortSpec struct {
	Key        SortKey
	Descending bool
	Lang       domain.Language
}

// ParseSort validates sortBy/sortDir. Empty values default to id ascending.
func ParseSort(sortBy, sortDir string, lang domain.Language) (SortSpec, error) {
	spec := SortSpec{Key: SortByID, Lang: lang}

	switch key := SortKey(strings.TrimSpace(sortBy)); key {
	case "":
	case SortByID, SortBySeq, SortByDistrict, SortByOpenHour, SortByCloseHour, SortByName:
		spec.Key = key
	default:
		return SortSpec{}, apperr.Newf(apperr.CodeInvalidParameter, "unsupported sortBy %q", sortBy)
	}

	switch strings.ToLower(strings.TrimSpace(sortDir)) {
	case "", "asc":
	case "desc":
		spec.Descending = true
	default:
		return SortSpec{}, apperr.Newf(apperr.CodeInvalidParameter, "sortDir %q must be asc or desc", sortDir)
	}

	return spec, nil
}

// SortPosts orders posts in place. Ties always break by ascending id so the
// pagination window is reproducible across pages and engines.
func SortPosts(posts []domain.MobilePost, spec SortSpec) {
	less := spec.less()
	sort.SliceStable(posts, func(i, j int) bool {
		switch cmp := less(posts[i], posts[j]); {
		case cmp < 0:
			return !spec.Descending
		case cmp > 0:
			return spec.Descending
		default:
			return posts[i].ID < posts[j].ID
		}
	})
}

// less returns a three-way comparison on the primary key only.
func (s SortSpec) less() func(a, b domain.MobilePost) int {
	lang := s.Lang
	if lang == domain.LangAll || lang == "" {
		lang = domain.LangEN
	}
	switch s.Key {
	case SortBySeq:
		return func(a, b domain.MobilePost) int {
			return compareIntPtr(a.Seq, b.Seq)
		}
	case SortByDistrict:
		return func(a, b domain.MobilePost) int {
			return strings.Compare(a.Localize(lang).District, b.Localize(lang).District)
		}
	case SortByName:
		return func(a, b domain.MobilePost) int {
			return strings.Compare(a.Localize(lang).Name, b.Localize(lang).Name)
		}
	case SortByOpenHour:
		return func(a, b domain.MobilePost) int {
			return strings.Compare(a.OpenHour, b.OpenHour)
		}
	case SortByCloseHour:
		return func(a, b domain.MobilePost) int {
			return strings.Compare(a.CloseHour, b.CloseHour)
		}
	default:
		return func(a, b domain.MobilePost) int {
			return strings.Compare(a.ID, b.ID)
		}
	}
}

// compareIntPtr orders nil sequence numbers after present ones.
func compareIntPtr(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}
