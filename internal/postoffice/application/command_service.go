package application

import (
	"context"
	"strings"

	"github.com/hkopendata/mobile-post-services/api/internal/apperr"
	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/domain"
)

type commandService struct {
	repo PostRepository
}

// NewCommandService returns the write-side use-cases over repo.
func NewCommandService(repo PostRepository) CommandService {
	return &commandService{repo: repo}
}

func (s *commandService) Create(ctx context.Context, cmd CreateCommand) (*domain.MobilePost, error) {
	post := &domain.MobilePost{
		MobileCode: strings.TrimSpace(cmd.MobileCode),
		Seq:        cmd.Seq,

		NameEN:     strings.TrimSpace(cmd.NameEN),
		NameTC:     strings.TrimSpace(cmd.NameTC),
		NameSC:     strings.TrimSpace(cmd.NameSC),
		DistrictEN: strings.TrimSpace(cmd.DistrictEN),
		DistrictTC: strings.TrimSpace(cmd.DistrictTC),
		DistrictSC: strings.TrimSpace(cmd.DistrictSC),
		LocationEN: strings.TrimSpace(cmd.LocationEN),
		LocationTC: strings.TrimSpace(cmd.LocationTC),
		LocationSC: strings.TrimSpace(cmd.LocationSC),
		AddressEN:  strings.TrimSpace(cmd.AddressEN),
		AddressTC:  strings.TrimSpace(cmd.AddressTC),
		AddressSC:  strings.TrimSpace(cmd.AddressSC),

		OpenHour:      cmd.OpenHour,
		CloseHour:     cmd.CloseHour,
		DayOfWeekCode: cmd.DayOfWeekCode,
		Latitude:      cmd.Latitude,
		Longitude:     cmd.Longitude,
	}
	if err := post.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *commandService) Update(ctx context.Context, id string, patch domain.Patch) (*domain.MobilePost, error) {
	if patch.IsEmpty() {
		return nil, apperr.New(apperr.CodeNoUpdatableFields, "")
	}
	if patch.OpenHour != nil {
		normalized, err := domain.ValidateTime(*patch.OpenHour)
		if err != nil {
			return nil, err
		}
		patch.OpenHour = &normalized
	}
	if patch.CloseHour != nil {
		normalized, err := domain.ValidateTime(*patch.CloseHour)
		if err != nil {
			return nil, err
		}
		patch.CloseHour = &normalized
	}
	if patch.DayOfWeekCode != nil {
		if err := domain.ValidateDayOfWeek(*patch.DayOfWeekCode); err != nil {
			return nil, err
		}
	}
	// Coordinates may be patched individually only when the counterpart is
	// already stored; a pair supplied in one patch is checked as a pair.
	if patch.Latitude != nil || patch.Longitude != nil {
		if patch.Latitude != nil && patch.Longitude != nil {
			if err := domain.ValidateCoordinates(patch.Latitude, patch.Longitude); err != nil {
				return nil, err
			}
		} else {
			current, err := s.repo.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			lat, lon := current.Latitude, current.Longitude
			if patch.Latitude != nil {
				lat = patch.Latitude
			}
			if patch.Longitude != nil {
				lon = patch.Longitude
			}
			if err := domain.ValidateCoordinates(lat, lon); err != nil {
				return nil, err
			}
		}
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *commandService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
