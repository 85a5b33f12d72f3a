package handlers

import (
	"mime"

	"github.com/gofiber/fiber/v2"

	"cardrender/internal/bundle"
	"cardrender/internal/infra/logging"
	"cardrender/internal/names"
	"cardrender/internal/render"
)

const (
	HeaderCardFont  = "X-Card-Font"
	HeaderCardCache = "X-Card-Cache"
)

type templateInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Form  string `json:"form"`
}

// HandleTemplates lists the configured templates.
func (svc *CardService) HandleTemplates(c *fiber.Ctx) error {
	out := make([]templateInfo, 0, len(svc.ids))
	for _, id := range svc.ids {
		tpl := svc.templates[id]
		out = append(out, templateInfo{ID: id, Title: tpl.Title, Form: tpl.Form})
	}
	return c.JSON(fiber.Map{
		"default":   svc.cfg.Cards.DefaultTemplate,
		"templates": out,
	})
}

// HandleCard renders one card as PNG. With download=1 it is sent as an
// attachment.
func (svc *CardService) HandleCard(c *fiber.Ctx) error {
	tpl, err := svc.template(c.Params("template"))
	if err != nil {
		return httpError(err)
	}
	list := names.FromValues([]string{c.Query("name")})
	if err := svc.validate(list); err != nil {
		return httpError(err)
	}

	card, hit, err := svc.renderCard(c.UserContext(), tpl, list[0])
	if err != nil {
		return httpError(err)
	}

	disposition := "inline"
	if c.QueryBool("download") {
		disposition = "attachment"
	}
	c.Set(HeaderCardFont, card.Font.String())
	c.Set(HeaderCardCache, cacheStatus(hit))
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition, contentDisposition(disposition, tpl.filenames(list)[0]))
	return c.Send(card.PNG)
}

// HandleBundle renders every submitted name and returns the cards as one zip.
// Names come from the multi-line "names" field and repeated "name" fields.
func (svc *CardService) HandleBundle(c *fiber.Ctx) error {
	tpl, err := svc.template(c.Params("template"))
	if err != nil {
		return httpError(err)
	}
	list := append(names.Parse(c.FormValue("names")), names.FromValues(formValues(c, "name"))...)
	if err := svc.validate(list); err != nil {
		return httpError(err)
	}

	filenames := names.UniqueFilenames(tpl.FilePrefix, list)
	entries := make([]bundle.Entry, 0, len(list))
	outcome := render.RequestedFont
	for i, name := range list {
		card, _, err := svc.renderCard(c.UserContext(), tpl, name)
		if err != nil {
			return httpError(err)
		}
		if card.Font == render.FallbackFont {
			outcome = render.FallbackFont
		}
		entries = append(entries, bundle.Entry{Filename: filenames[i], Data: card.PNG})
	}

	zip, err := bundle.Build(entries)
	if err != nil {
		return httpError(err)
	}
	logging.Info("Card bundle built", "template", tpl.ID, "cards", len(entries), "request_id", c.GetRespHeader(fiber.HeaderXRequestID))

	c.Set(HeaderCardFont, outcome.String())
	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, contentDisposition("attachment", bundle.Filename))
	return c.Send(zip)
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// contentDisposition encodes non-ASCII filenames per RFC 2231.
func contentDisposition(kind, filename string) string {
	return mime.FormatMediaType(kind, map[string]string{"filename": filename})
}

// formValues returns every value of a repeated form field, for urlencoded
// and multipart bodies.
func formValues(c *fiber.Ctx, key string) []string {
	if form, err := c.MultipartForm(); err == nil {
		return form.Value[key]
	}
	var out []string
	for _, v := range c.Request().PostArgs().PeekMulti(key) {
		out = append(out, string(v))
	}
	return out
}
