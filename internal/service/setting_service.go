package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/research-editing-site/internal/models"
	"github.com/research-editing-site/internal/repository"
	"github.com/research-editing-site/internal/validation"
)

type settingService struct {
	settings repository.SettingRepository
	log      zerolog.Logger
}

func newSettingService(settings repository.SettingRepository, log zerolog.Logger) SettingService {
	return &settingService{
		settings: settings,
		log:      log.With().Str("service", "setting").Logger(),
	}
}

// All returns every setting, seeding the defaults first when the table is
// empty. Seeding happens at most once; later reads see stored values only.
func (s *settingService) All(ctx context.Context) ([]models.Setting, error) {
	count, err := s.settings.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count settings: %w", err)
	}

	if count == 0 {
		s.log.Info().Int("defaults", len(models.DefaultSettings)).Msg("Seeding default settings")
		for i := range models.DefaultSettings {
			seed := models.DefaultSettings[i]
			if err := s.settings.Upsert(ctx, &seed); err != nil {
				return nil, fmt.Errorf("seed setting %s: %w", seed.Key, err)
			}
		}
	}

	return s.settings.List(ctx)
}

// Update changes the string value of an existing setting. Returns
// (nil, nil, nil) for unknown keys; settings are created by seeding, not
// through this path.
func (s *settingService) Update(ctx context.Context, key, value string) (*models.Setting, []validation.ValidationError, error) {
	if errs := validation.ValidateSettingValue(key, value); len(errs) > 0 {
		return nil, errs, nil
	}

	setting, err := s.settings.Get(ctx, key)
	if err != nil {
		return nil, nil, fmt.Errorf("load setting: %w", err)
	}
	if setting == nil {
		return nil, nil, nil
	}

	setting.Value = value
	if err := s.settings.Upsert(ctx, setting); err != nil {
		return nil, nil, fmt.Errorf("update setting: %w", err)
	}

	s.log.Info().Str("key", key).Msg("Setting updated")
	return setting, nil, nil
}
