package tui

import "strings"

type page int

const (
	pageDashboard page = iota
	pageInventory
	pageSettings
	pageHelp
)

type pageDef struct {
	page  page
	name  string
	label string
}

var pageDefs = []pageDef{
	{page: pageDashboard, name: "dashboard", label: "대시보드"},
	{page: pageInventory, name: "inventory", label: "재고"},
	{page: pageSettings, name: "settings", label: "설정"},
	{page: pageHelp, name: "help", label: "도움말"},
}

func (p page) String() string {
	for _, d := range pageDefs {
		if d.page == p {
			return d.name
		}
	}
	return "dashboard"
}

func pageByName(name string) (page, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, d := range pageDefs {
		if d.name == name {
			return d.page, true
		}
	}
	return pageDashboard, false
}

// pageRouter keeps exactly one page active.
type pageRouter struct {
	active page
}

// initialPage resolves the configured start page; "last" uses the page
// remembered from the previous session. Anything unknown is the dashboard.
func initialPage(configured, last string) page {
	if strings.EqualFold(strings.TrimSpace(configured), "last") {
		configured = last
	}
	p, _ := pageByName(configured)
	return p
}

// selectPage activates p. The returned bool is true when the inventory must
// be (re)loaded, which happens on every selection of the inventory page.
func (r pageRouter) selectPage(p page) (pageRouter, bool) {
	r.active = p
	return r, p == pageInventory
}

func (r pageRouter) next() page {
	return page((int(r.active) + 1) % len(pageDefs))
}

func (r pageRouter) prev() page {
	return page((int(r.active) + len(pageDefs) - 1) % len(pageDefs))
}
