package core

import (
	"net"
	"net/url"
	"strings"

	"github.com/inovacc/horizon/internal/clock"
	"github.com/inovacc/horizon/internal/model"
	"golang.org/x/net/publicsuffix"
)

const faviconService = "https://www.google.com/s2/favicons?domain="

// pendingNav is a scheduled navigation completion. gen identifies the
// navigation that scheduled it; a completion whose gen no longer matches the
// tab's pending entry is stale and dropped.
type pendingNav struct {
	gen   uint64
	url   string
	timer clock.Timer
}

// NavigateTab points a tab at url and starts loading it. With pushHistory the
// current page is appended to the tab's back stack first, unless it is blank.
// Any completion still pending for the tab is canceled.
func (s *TabStore) NavigateTab(id, rawURL string, pushHistory bool) error {
	s.mu.Lock()
	defer s.unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return notFound("tab", id)
	}

	target := normalizeURL(rawURL)
	if target == "" {
		return violation("navigate tab", "url is empty")
	}

	t := &s.tabs[i]
	if pushHistory && !model.IsBlankURL(t.URL) {
		s.history[id] = append(s.history[id], model.HistoryEntry{URL: t.URL, Title: t.Title})
	}

	s.navigateLocked(i, target)
	s.commitLocked()

	return nil
}

// GoBack pops the most recent history entry and navigates to it without
// recording a new entry. The popped title is shown until the load completes.
// A tab without history is left as is.
func (s *TabStore) GoBack(id string) error {
	s.mu.Lock()
	defer s.unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return notFound("tab", id)
	}

	h := s.history[id]
	if len(h) == 0 {
		return nil
	}

	prev := h[len(h)-1]
	s.history[id] = h[:len(h)-1]

	s.navigateLocked(i, prev.URL)
	s.tabs[i].Title = prev.Title
	s.commitLocked()

	return nil
}

// Flush applies every pending navigation completion immediately.
func (s *TabStore) Flush() {
	s.mu.Lock()
	defer s.unlock()

	if len(s.pending) == 0 {
		return
	}

	for id, p := range s.pending {
		p.timer.Stop()
		s.completeLocked(id, p)
	}

	s.commitLocked()
}

// Close settles pending navigations and stops their timers. The store stays
// usable afterwards.
func (s *TabStore) Close() error {
	s.Flush()

	return nil
}

func (s *TabStore) navigateLocked(i int, target string) {
	t := &s.tabs[i]
	t.URL = target
	t.IsLoading = true
	t.LastAccessed = s.clock.Now()

	s.scheduleLocked(t.ID, target)
}

// scheduleLocked arms the completion for a navigation of tab id, replacing
// any completion already pending for it.
func (s *TabStore) scheduleLocked(id, target string) {
	s.cancelLocked(id)

	s.gen++
	p := &pendingNav{gen: s.gen, url: target}
	p.timer = s.clock.AfterFunc(s.delay, func() { s.onNavigated(id, p.gen) })
	s.pending[id] = p
}

func (s *TabStore) cancelLocked(id string) {
	if p, ok := s.pending[id]; ok {
		p.timer.Stop()
		delete(s.pending, id)
	}
}

func (s *TabStore) onNavigated(id string, gen uint64) {
	s.mu.Lock()
	defer s.unlock()

	p, ok := s.pending[id]
	if !ok || p.gen != gen {
		s.logger.Debug("stale navigation completion dropped", "tab", id, "gen", gen)

		return
	}

	s.completeLocked(id, p)
	s.commitLocked()
}

func (s *TabStore) completeLocked(id string, p *pendingNav) {
	delete(s.pending, id)

	i := s.indexLocked(id)
	if i < 0 {
		return
	}

	t := &s.tabs[i]
	t.IsLoading = false

	if model.IsBlankURL(p.url) {
		t.Favicon = ""

		return
	}

	t.Title = deriveTitle(p.url)
	t.Favicon = faviconURL(p.url)
}

// normalizeURL trims raw and adds an https scheme when none is given.
// Blank-page URLs are kept as they are.
func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || model.IsBlankURL(raw) || strings.HasPrefix(raw, "about:") {
		return raw
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	return raw
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	return strings.ToLower(u.Hostname())
}

// deriveTitle turns a URL into a display title: the registrable domain
// without its public suffix, capitalized. "https://www.example.com/x" gives
// "Example". Hosts without a registrable domain, such as IP addresses or
// localhost, are capitalized as they are.
func deriveTitle(raw string) string {
	host := strings.TrimPrefix(hostOf(raw), "www.")
	if host == "" {
		return raw
	}

	if net.ParseIP(host) != nil {
		return host
	}

	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return capitalize(host)
	}

	suffix, _ := publicsuffix.PublicSuffix(etld1)

	return capitalize(strings.TrimSuffix(etld1, "."+suffix))
}

func faviconURL(raw string) string {
	host := hostOf(raw)
	if host == "" {
		return ""
	}

	return faviconService + url.QueryEscape(host)
}
