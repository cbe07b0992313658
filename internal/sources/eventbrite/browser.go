package eventbrite

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

// Browser is a headless Chrome session scoped to one batch of detail
// fetches. Open it, fetch, and Close it; the session must not outlive the
// query it serves.
type Browser struct {
	allocCtx context.Context
	cancel   context.CancelFunc

	settle         time.Duration
	timeout        time.Duration
	detailSelector string
}

// NewBrowser starts the shared exec allocator for a batch. Each detail fetch
// gets its own tab context off this allocator.
func (s *Scraper) NewBrowser(ctx context.Context) *Browser {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(s.cfg.UserAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)

	return &Browser{
		allocCtx:       allocCtx,
		cancel:         cancel,
		settle:         s.cfg.SettleTimeout,
		timeout:        s.cfg.Timeout,
		detailSelector: s.cfg.DetailSelector,
	}
}

func (b *Browser) Close() {
	b.cancel()
}

// DetailTexts loads an event page, waits the settle timeout for client-side
// rendering, and returns the text content of every node under the detail
// selector. The blocks are opaque descriptive text, never structured data.
func (b *Browser) DetailTexts(ctx context.Context, pageURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The allocator context already carries the caller's cancellation; each
	// tab only adds its own deadline on top.
	tabCtx, cancelTab := chromedp.NewContext(b.allocCtx)
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, b.timeout+b.settle)
	defer cancelTimeout()

	script := fmt.Sprintf(
		`Array.from(document.querySelectorAll(%q)).map(el => el.textContent.trim()).filter(t => t.length > 0)`,
		b.detailSelector,
	)

	var texts []string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(pageURL),
		chromedp.Sleep(b.settle),
		chromedp.Evaluate(script, &texts),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: render %s: %v", ErrSourceUnavailable, pageURL, err)
	}

	return texts, nil
}

// FetchDetails retrieves detail text for each link concurrently behind one
// shared browser session. Results are collected per task and merged after
// the join; one page's failure never aborts the others.
func (s *Scraper) FetchDetails(ctx context.Context, links []string) map[string][]string {
	if len(links) == 0 {
		return nil
	}

	browser := s.NewBrowser(ctx)
	defer browser.Close()

	workers := s.cfg.DetailWorkers
	if workers > len(links) {
		workers = len(links)
	}

	type task struct {
		index int
		url   string
	}

	tasks := make(chan task)
	results := make([][]string, len(links))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				texts, err := browser.DetailTexts(ctx, t.url)
				if err != nil {
					slog.Warn("Eventbrite detail fetch failed", "url", t.url, "error", err)
					continue
				}
				results[t.index] = texts
			}
		}()
	}

	for i, link := range links {
		tasks <- task{index: i, url: link}
	}
	close(tasks)
	wg.Wait()

	details := make(map[string][]string, len(links))
	for i, link := range links {
		if len(results[i]) > 0 {
			details[link] = results[i]
		}
	}

	return details
}
