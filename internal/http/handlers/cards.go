// Package handlers implements the card API and the web form endpoints.
package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"cardrender/internal/cache"
	"cardrender/internal/config"
	"cardrender/internal/domain"
	"cardrender/internal/infra/logging"
	"cardrender/internal/names"
	"cardrender/internal/render"
	"cardrender/internal/web"
)

// cardTemplate is a render template plus its presentation settings.
type cardTemplate struct {
	render.Template
	Form         string
	DownloadName string
	FilePrefix   string
}

func (t cardTemplate) multi() bool { return t.Form == config.FormMulti }

// filenames returns one download name per card.
func (t cardTemplate) filenames(list []string) []string {
	if !t.multi() && len(list) == 1 {
		return []string{t.DownloadName}
	}
	return names.UniqueFilenames(t.FilePrefix, list)
}

// CardService bundles the configured templates and the rendering
// dependencies shared by all card endpoints.
type CardService struct {
	cfg       config.Config
	renderer  *render.Renderer
	cache     *cache.Cards
	views     *web.Views
	templates map[string]cardTemplate
	ids       []string
}

// NewCardService builds the service. rdb may be nil, which disables the
// card cache.
func NewCardService(cfg config.Config, rdb *redis.Client) (*CardService, error) {
	views, err := web.NewViews()
	if err != nil {
		return nil, fmt.Errorf("parse views: %w", err)
	}
	svc := &CardService{
		cfg:       cfg,
		renderer:  render.NewRenderer(),
		views:     views,
		templates: make(map[string]cardTemplate, len(cfg.Cards.Templates)),
		ids:       cfg.Cards.TemplateIDs(),
	}
	for id, tc := range cfg.Cards.Templates {
		tpl, err := render.TemplateFromConfig(id, tc)
		if err != nil {
			return nil, err
		}
		svc.templates[id] = cardTemplate{
			Template:     tpl,
			Form:         tc.Form,
			DownloadName: tc.DownloadName,
			FilePrefix:   tc.FilePrefix,
		}
	}
	if rdb != nil && cfg.Cache.CardCacheEnabled {
		svc.cache = cache.NewCards(rdb, cfg.Cache.CardCacheTTL)
	}
	return svc, nil
}

func (svc *CardService) template(id string) (cardTemplate, error) {
	tpl, ok := svc.templates[id]
	if !ok {
		return cardTemplate{}, fmt.Errorf("%w: %q", domain.ErrUnknownTemplate, id)
	}
	return tpl, nil
}

func (svc *CardService) validate(list []string) error {
	err := names.Validate(list, svc.cfg.Limits.MaxNames, svc.cfg.Limits.MaxNameRunes)
	switch {
	case errors.Is(err, domain.ErrTooManyNames):
		return fmt.Errorf("%w: %d given, at most %d allowed", err, len(list), svc.cfg.Limits.MaxNames)
	case errors.Is(err, domain.ErrNameTooLong):
		return fmt.Errorf("%w: at most %d characters allowed", err, svc.cfg.Limits.MaxNameRunes)
	}
	return err
}

// renderCard serves name from the cache or renders it. Only cards drawn with
// the requested font are cached.
func (svc *CardService) renderCard(ctx context.Context, tpl cardTemplate, name string) (render.Card, bool, error) {
	key := cache.Key(tpl.Template, name)
	if png, ok := svc.cache.Get(ctx, key); ok {
		return render.Card{PNG: png, Font: render.RequestedFont}, true, nil
	}

	card, err := svc.renderer.Render(tpl.Template, name)
	if err != nil {
		return card, false, err
	}
	if card.Font == render.FallbackFont {
		logging.Warn("Card rendered with fallback font", "template", tpl.ID, "error", card.FontErr)
	} else {
		svc.cache.Set(ctx, key, card.PNG)
	}
	return card, false, nil
}

// httpError maps domain errors onto fiber errors for the JSON error handler.
func httpError(err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnknownTemplate):
		status = fiber.StatusNotFound
	case errors.Is(err, domain.ErrEmptyInput):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrTooManyNames):
		status = fiber.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrNameTooLong):
		status = fiber.StatusBadRequest
	case errors.Is(err, domain.ErrTemplateNotFound):
		logging.Error("Card template unavailable", "error", err)
		return fiber.NewError(status, "card template unavailable")
	default:
		logging.Error("Card rendering failed", "error", err)
		return fiber.NewError(status, "card rendering failed")
	}
	return fiber.NewError(status, err.Error())
}
