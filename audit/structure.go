package audit

import (
	"github.com/go-rod/rod"

	"github.com/dredding8/malibu-ui-private/models"
)

const structureJS = `(prefix) => {
	const count = (sel) => document.querySelectorAll(sel).length;
	return {
		navElements: count('nav, [role="navigation"]'),
		menuItems: count('nav a, nav button, [role="menuitem"]'),
		breadcrumbs: count('[class*="' + prefix + 'Breadcrumbs"], .breadcrumb'),
		h1: count('h1'),
		h2: count('h2'),
		h3: count('h3'),
		headingsTotal: count('h1, h2, h3, h4, h5, h6'),
		cards: count('[class*="' + prefix + 'Card"], .card'),
		tables: count('table'),
		lists: count('ul, ol'),
		buttons: count('button, [role="button"]'),
		inputs: count('input, textarea, select'),
		links: count('a[href]'),
		forms: count('form'),
		toolkitComponents: count('[class*="' + prefix + '"]'),
		icons: count('[class*="' + prefix + 'SvgIcon"], [class*="' + prefix + 'Icon"]'),
		dialogs: count('[class*="' + prefix + 'Dialog"], [class*="' + prefix + 'Drawer"]')
	};
}`

// CollectStructure tallies the page's structural and interactive elements
// in a single evaluation. prefix is the UI-toolkit class prefix used to
// count toolkit-rendered components.
func CollectStructure(p *rod.Page, prefix string) (models.StructureCounts, error) {
	res, err := p.Eval(structureJS, prefix)
	if err != nil {
		return models.StructureCounts{}, err
	}

	v := res.Value
	return models.StructureCounts{
		NavElements:       v.Get("navElements").Int(),
		MenuItems:         v.Get("menuItems").Int(),
		Breadcrumbs:       v.Get("breadcrumbs").Int(),
		HeadingsH1:        v.Get("h1").Int(),
		HeadingsH2:        v.Get("h2").Int(),
		HeadingsH3:        v.Get("h3").Int(),
		HeadingsTotal:     v.Get("headingsTotal").Int(),
		Cards:             v.Get("cards").Int(),
		Tables:            v.Get("tables").Int(),
		Lists:             v.Get("lists").Int(),
		Buttons:           v.Get("buttons").Int(),
		Inputs:            v.Get("inputs").Int(),
		Links:             v.Get("links").Int(),
		Forms:             v.Get("forms").Int(),
		ToolkitComponents: v.Get("toolkitComponents").Int(),
		Icons:             v.Get("icons").Int(),
		Dialogs:           v.Get("dialogs").Int(),
	}, nil
}
