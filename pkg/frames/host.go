package frames

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/goliatone/go-formframe/pkg/behavior"
	"github.com/goliatone/go-formframe/pkg/dom"
)

// Navigation is a request to load Address. A non-empty Region restricts the
// swap to the region with that id.
type Navigation struct {
	Address string
	Region  string
}

// Host holds one document and navigates it.
type Host struct {
	opts Options
	base *url.URL

	mu       sync.Mutex
	doc      *dom.Document
	location *url.URL
	inflight map[string]*flight
	seq      uint64

	wg    sync.WaitGroup
	errMu sync.Mutex
	errs  []error
}

type flight struct {
	id     uint64
	cancel context.CancelFunc
}

// New creates a host resolving relative addresses against base.
func New(base string, fns ...OptionFn) (*Host, error) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return nil, fmt.Errorf("frames: parse base: %w", err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("frames: base %q must be absolute", base)
	}
	return &Host{
		opts:     NewOptions(fns...),
		base:     u,
		location: u,
		inflight: map[string]*flight{},
	}, nil
}

// Location returns the address of the current document.
func (h *Host) Location() *url.URL {
	h.mu.Lock()
	defer h.mu.Unlock()
	copied := *h.location
	return &copied
}

// Document returns the current document. Use Inspect while navigations may
// be in flight.
func (h *Host) Document() *dom.Document {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.doc
}

// Inspect runs fn with exclusive access to the current document.
func (h *Host) Inspect(fn func(*dom.Document)) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(h.doc)
}

// Load performs a full document navigation to address.
func (h *Host) Load(ctx context.Context, address string) error {
	return h.Navigate(ctx, Navigation{Address: address})
}

// Navigate performs nav synchronously.
func (h *Host) Navigate(ctx context.Context, nav Navigation) error {
	if nav.Region == "" {
		return h.navigateDocument(ctx, http.MethodGet, nav.Address, nil, 0)
	}
	return h.navigateRegion(ctx, nav, 0)
}

// Follow navigates to the address stored on el, scoped to the region it
// references, if any.
func (h *Host) Follow(ctx context.Context, el *dom.Element) error {
	h.mu.Lock()
	nav := navigationFor(el)
	h.mu.Unlock()
	return h.Navigate(ctx, nav)
}

func navigationFor(el *dom.Element) Navigation {
	region, _ := el.Attr(behavior.FrameAttr)
	return Navigation{Address: behavior.Address(el), Region: strings.TrimSpace(region)}
}

// Change reports a new value on a control of the current document. With
// scripting enabled the enhanced pipelines run and the resulting region
// navigations start in the background; call Wait to collect them.
func (h *Host) Change(ctx context.Context, control *dom.Element) (behavior.Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.doc == nil {
		return behavior.Result{}, ErrNoDocument
	}
	if !h.opts.Scripting {
		return behavior.Result{}, nil
	}
	page, err := behavior.Attach(h.doc, h.activator(ctx))
	if err != nil {
		return behavior.Result{}, err
	}
	res, _ := page.Change(control)
	return res, nil
}

// Select sets the value of the named control and reports the change.
func (h *Host) Select(ctx context.Context, name, value string) (behavior.Result, error) {
	h.mu.Lock()
	if h.doc == nil {
		h.mu.Unlock()
		return behavior.Result{}, ErrNoDocument
	}
	control, err := h.doc.First(fmt.Sprintf("[name=%q]", name))
	if err != nil || control == nil {
		h.mu.Unlock()
		return behavior.Result{}, fmt.Errorf("frames: control %q not found", name)
	}
	if !control.SetValue(value) {
		h.mu.Unlock()
		return behavior.Result{}, fmt.Errorf("frames: control %q has no option %q", name, value)
	}
	h.mu.Unlock()
	return h.Change(ctx, control)
}

// activator returns the activation used by attached pipelines. It is called
// with h.mu held: it reads the target synchronously so the navigation sees the
// address as encoded at dispatch time, then fetches in the background.
func (h *Host) activator(ctx context.Context) behavior.ActivatorFunc {
	return func(target *dom.Element) {
		nav := navigationFor(target)
		key := nav.Region

		h.seq++
		id := h.seq
		fctx, cancel := context.WithCancel(ctx)
		if prev, ok := h.inflight[key]; ok {
			prev.cancel()
		}
		h.inflight[key] = &flight{id: id, cancel: cancel}

		h.wg.Add(1)
		go func() {
			defer h.wg.Done()
			defer cancel()

			var err error
			if nav.Region == "" {
				err = h.navigateDocument(fctx, http.MethodGet, nav.Address, nil, id)
			} else {
				err = h.navigateRegion(fctx, nav, id)
			}

			h.mu.Lock()
			if cur, ok := h.inflight[key]; ok && cur.id == id {
				delete(h.inflight, key)
			}
			h.mu.Unlock()

			if err != nil && !errors.Is(err, ErrSuperseded) {
				h.opts.Logger.Warn("frames: navigation failed", "url", nav.Address, "region", nav.Region, "error", err)
				h.errMu.Lock()
				h.errs = append(h.errs, err)
				h.errMu.Unlock()
			}
		}()
	}
}

// Wait blocks until background navigations finish and returns their errors.
func (h *Host) Wait() error {
	h.wg.Wait()
	h.errMu.Lock()
	defer h.errMu.Unlock()
	err := errors.Join(h.errs...)
	h.errs = nil
	return err
}

// Submit submits the form owning submitter the way a browser does without
// scripts: every successful control is sent, as the query for GET and as an
// urlencoded body for POST. The response replaces the document.
func (h *Host) Submit(ctx context.Context, submitter *dom.Element) error {
	h.mu.Lock()
	if h.doc == nil {
		h.mu.Unlock()
		return ErrNoDocument
	}
	form := submitter.Form(h.doc)
	if form == nil {
		h.mu.Unlock()
		return fmt.Errorf("frames: submitter has no form")
	}
	values := form.FormValues(submitter)

	method := firstAttr(submitter, form, "formmethod", "method")
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = http.MethodGet
	}
	action := firstAttr(submitter, form, "formaction", "action")
	if strings.TrimSpace(action) == "" {
		action = h.location.String()
	}
	h.mu.Unlock()

	if method == http.MethodGet {
		return h.navigateDocument(ctx, http.MethodGet, replaceQuery(action, values.Encode()), nil, 0)
	}
	return h.navigateDocument(ctx, http.MethodPost, action, values, 0)
}

func firstAttr(submitter, form *dom.Element, submitterAttr, formAttr string) string {
	if value, ok := submitter.Attr(submitterAttr); ok {
		return value
	}
	value, _ := form.Attr(formAttr)
	return value
}

func replaceQuery(address, query string) string {
	if i := strings.IndexByte(address, '#'); i >= 0 {
		address = address[:i]
	}
	if i := strings.IndexByte(address, '?'); i >= 0 {
		address = address[:i]
	}
	return address + "?" + query
}

// navigateDocument replaces the whole document with the response. Like a
// browser it renders error responses too, reporting them as *StatusError.
// A non-zero id identifies a background flight keyed by the empty region;
// once replaced by a newer flight it is dropped.
func (h *Host) navigateDocument(ctx context.Context, method, address string, form url.Values, id uint64) error {
	resp, err := h.fetch(ctx, method, address, "", form)
	if err != nil {
		if h.superseded("", id) {
			return fmt.Errorf("%w: %s", ErrSuperseded, address)
		}
		return err
	}
	if h.opts.Scripting {
		// Enhance on load so the fallback controls are hidden before the
		// first change, as the browser runtime does.
		if _, err := behavior.Attach(resp.doc, behavior.ActivatorFunc(func(*dom.Element) {})); err != nil {
			h.opts.Logger.Warn("frames: enhance document", "url", resp.url.String(), "error", err)
		}
	}
	h.mu.Lock()
	if id != 0 {
		if cur, ok := h.inflight[""]; !ok || cur.id != id {
			h.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrSuperseded, address)
		}
	}
	h.doc = resp.doc
	h.location = resp.url
	h.mu.Unlock()
	h.opts.Logger.Debug("frames: document loaded", "url", resp.url.String(), "status", resp.status)
	if resp.status < 200 || resp.status > 299 {
		return &StatusError{Code: resp.status, URL: resp.url.String()}
	}
	return nil
}

// navigateRegion swaps the children of one region. id identifies the flight
// when run in the background; a flight replaced in the meantime is dropped.
func (h *Host) navigateRegion(ctx context.Context, nav Navigation, id uint64) error {
	h.mu.Lock()
	if h.doc == nil {
		h.mu.Unlock()
		return ErrNoDocument
	}
	if _, ok := h.doc.Region(nav.Region); !ok {
		h.mu.Unlock()
		return fmt.Errorf("%w: %q in current document", ErrRegionMissing, nav.Region)
	}
	h.mu.Unlock()

	resp, err := h.fetch(ctx, http.MethodGet, nav.Address, nav.Region, nil)
	if err != nil {
		if h.superseded(nav.Region, id) {
			return fmt.Errorf("%w: %s", ErrSuperseded, nav.Address)
		}
		return err
	}
	if resp.status < 200 || resp.status > 299 {
		return &StatusError{Code: resp.status, URL: resp.url.String()}
	}
	incoming, ok := resp.doc.Region(nav.Region)
	if !ok {
		return fmt.Errorf("%w: %q in response from %s", ErrRegionMissing, nav.Region, resp.url)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if id != 0 {
		if cur, ok := h.inflight[nav.Region]; !ok || cur.id != id {
			return fmt.Errorf("%w: %s", ErrSuperseded, nav.Address)
		}
	}
	current, ok := h.doc.Region(nav.Region)
	if !ok {
		return fmt.Errorf("%w: %q in current document", ErrRegionMissing, nav.Region)
	}
	current.ReplaceChildren(incoming)
	h.opts.Logger.Debug("frames: region replaced", "region", nav.Region, "url", resp.url.String())
	return nil
}

func (h *Host) superseded(key string, id uint64) bool {
	if id == 0 {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	cur, ok := h.inflight[key]
	return !ok || cur.id != id
}

type response struct {
	doc    *dom.Document
	url    *url.URL
	status int
}

func (h *Host) fetch(ctx context.Context, method, address, region string, form url.Values) (response, error) {
	h.mu.Lock()
	base := h.location
	h.mu.Unlock()

	ref, err := url.Parse(address)
	if err != nil {
		return response{}, fmt.Errorf("frames: parse address %q: %w", address, err)
	}
	target := base.ResolveReference(ref)

	if h.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opts.Timeout)
		defer cancel()
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return response{}, fmt.Errorf("frames: build request: %w", err)
	}
	req.Header.Set("Accept", "text/html")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if region != "" {
		req.Header.Set(h.opts.RegionHeader, region)
	}

	res, err := h.opts.Client.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("frames: fetch %s: %w", target, err)
	}
	defer func() { _ = res.Body.Close() }()

	doc, err := dom.Parse(res.Body)
	if err != nil {
		return response{}, fmt.Errorf("frames: read %s: %w", target, err)
	}
	final := target
	if res.Request != nil && res.Request.URL != nil {
		final = res.Request.URL
	}
	return response{doc: doc, url: final, status: res.StatusCode}, nil
}
