package handlers

import (
	"bytes"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"cardrender/internal/domain"
	"cardrender/internal/names"
	"cardrender/internal/render"
	"cardrender/internal/web"
)

// HandleIndex redirects to the default template's form.
func (svc *CardService) HandleIndex(c *fiber.Ctx) error {
	return c.Redirect("/forms/" + svc.cfg.Cards.DefaultTemplate)
}

// HandleForm shows the empty form of a template.
func (svc *CardService) HandleForm(c *fiber.Ctx) error {
	tpl, err := svc.template(c.Params("template"))
	if err != nil {
		return httpError(err)
	}
	return svc.renderPage(c, fiber.StatusOK, svc.page(c, tpl))
}

// HandleLanguage flips the UI language cookie and returns to the form.
func (svc *CardService) HandleLanguage(c *fiber.Ctx) error {
	lang := web.Language(c.Cookies(web.LangCookie), svc.cfg.Cards.DefaultLanguage)
	c.Cookie(&fiber.Cookie{
		Name:     web.LangCookie,
		Value:    web.Toggle(lang),
		Path:     "/",
		Expires:  time.Now().AddDate(1, 0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	back := c.FormValue("return")
	if !localPath(back) {
		back = "/"
	}
	return c.Redirect(back, fiber.StatusSeeOther)
}

// HandleSubmit renders the cards for the submitted names and shows them on
// the results page. Blank input re-renders the form with a warning.
func (svc *CardService) HandleSubmit(c *fiber.Ctx) error {
	tpl, err := svc.template(c.Params("template"))
	if err != nil {
		return httpError(err)
	}

	page := svc.page(c, tpl)
	var list []string
	if tpl.multi() {
		page.Input = c.FormValue("names")
		list = names.Parse(page.Input)
	} else {
		page.Input = c.FormValue("name")
		list = names.FromValues([]string{page.Input})
	}

	if err := svc.validate(list); err != nil {
		status := fiber.StatusOK
		switch {
		case errors.Is(err, domain.ErrEmptyInput):
			page.Warning = page.Strings.EmptyInput
		case errors.Is(err, domain.ErrTooManyNames):
			page.Warning = page.Strings.TooManyNames
			status = fiber.StatusRequestEntityTooLarge
		default:
			page.Warning = page.Strings.NameTooLong
			status = fiber.StatusBadRequest
		}
		return svc.renderPage(c, status, page)
	}

	filenames := tpl.filenames(list)
	for i, name := range list {
		card, _, err := svc.renderCard(c.UserContext(), tpl, name)
		if err != nil {
			return httpError(err)
		}
		if card.Font == render.FallbackFont {
			page.Fallback = true
		}
		page.Cards = append(page.Cards, web.CardView{
			Name:     name,
			Filename: filenames[i],
			DataURI:  web.DataURI(card.PNG),
		})
	}
	if len(list) > 1 {
		page.ZipNames = strings.Join(list, "\n")
	}
	return svc.renderPage(c, fiber.StatusOK, page)
}

func (svc *CardService) page(c *fiber.Ctx, tpl cardTemplate) web.Page {
	lang := web.Language(c.Cookies(web.LangCookie), svc.cfg.Cards.DefaultLanguage)
	links := make([]web.TemplateLink, 0, len(svc.ids))
	for _, id := range svc.ids {
		title := svc.templates[id].Title
		if title == "" {
			title = id
		}
		links = append(links, web.TemplateLink{ID: id, Title: title})
	}
	return web.Page{
		Strings:    web.Translations(lang),
		Lang:       lang,
		TemplateID: tpl.ID,
		Heading:    tpl.Title,
		Multi:      tpl.multi(),
		Templates:  links,
		Logo:       svc.cfg.Assets.Logo,
	}
}

func (svc *CardService) renderPage(c *fiber.Ctx, status int, page web.Page) error {
	var buf bytes.Buffer
	if err := svc.views.Render(&buf, page); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

// localPath accepts only same-origin absolute paths as redirect targets.
func localPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "/\\")
}
