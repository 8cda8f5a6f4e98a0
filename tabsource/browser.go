package tabsource

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// BrowserConfig controls how a live export page is loaded.
type BrowserConfig struct {
	// Remote is the WebSocket URL of an external Chrome instance.
	// Empty = launch a local Chrome via launcher.
	Remote string `yaml:"remote"`

	// NoStealth disables the stealth page setup. Stealth is on by default
	// because export portals tend to gate automated sessions.
	NoStealth bool `yaml:"no_stealth"`

	// NavTimeout bounds navigation plus load. Default: 30s.
	NavTimeout time.Duration `yaml:"nav_timeout"`

	// SettleDelay is extra wait after load for script-rendered tables.
	SettleDelay time.Duration `yaml:"settle_delay"`

	// ResourceBlocking lists resource types to block (images, fonts, media,
	// stylesheets). The table is markup; pixels are not needed.
	ResourceBlocking []string `yaml:"resource_blocking"`

	Logger *slog.Logger `yaml:"-"`
}

func (c *BrowserConfig) defaults() {
	if c.NavTimeout <= 0 {
		c.NavTimeout = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// LoadRendered navigates to pageURL in a Chrome tab and returns the rendered
// DOM serialised as outer HTML. The browser is closed before returning.
func LoadRendered(ctx context.Context, pageURL string, cfg BrowserConfig) ([]byte, error) {
	cfg.defaults()
	log := cfg.Logger

	var wsURL string
	var lnch *launcher.Launcher

	if cfg.Remote != "" {
		wsURL = cfg.Remote
		log.Info("tabsource: connecting to remote browser", "url", wsURL)
	} else {
		l := launcher.New().
			Headless(true).
			Set("disable-blink-features", "AutomationControlled")
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("tabsource: launch browser: %w", err)
		}
		wsURL = u
		lnch = l
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		if lnch != nil {
			lnch.Cleanup()
		}
		return nil, fmt.Errorf("tabsource: connect browser: %w", err)
	}
	defer func() {
		b.Close()
		if lnch != nil {
			lnch.Cleanup()
		}
	}()

	var page *rod.Page
	var err error
	if cfg.NoStealth {
		page, err = b.Page(proto.TargetCreateTarget{URL: ""})
	} else {
		page, err = stealth.Page(b)
	}
	if err != nil {
		return nil, fmt.Errorf("tabsource: create tab: %w", err)
	}

	blockResources(page, cfg.ResourceBlocking)

	navCtx, cancel := context.WithTimeout(ctx, cfg.NavTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		return nil, fmt.Errorf("tabsource: navigate %s: %w", pageURL, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		log.Warn("tabsource: wait load timeout", "url", pageURL, "error", err)
	}
	if cfg.SettleDelay > 0 {
		select {
		case <-time.After(cfg.SettleDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	res, err := page.Context(ctx).Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return nil, fmt.Errorf("tabsource: serialise DOM: %w", err)
	}
	return []byte(res.Value.Str()), nil
}

// resourceTypes maps config names to the CDP resource types they block.
var resourceTypes = map[string]proto.NetworkResourceType{
	"images":      proto.NetworkResourceTypeImage,
	"fonts":       proto.NetworkResourceTypeFont,
	"media":       proto.NetworkResourceTypeMedia,
	"stylesheets": proto.NetworkResourceTypeStylesheet,
	"scripts":     proto.NetworkResourceTypeScript,
}

// blockedTypes normalises the configured names (case, whitespace, singular
// or plural) into CDP resource types. Unknown names are dropped, so a config
// typo degrades to loading that resource rather than failing the run.
func blockedTypes(names []string) map[proto.NetworkResourceType]bool {
	set := make(map[proto.NetworkResourceType]bool, len(names))
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		if t, ok := resourceTypes[key]; ok {
			set[t] = true
		} else if t, ok := resourceTypes[key+"s"]; ok {
			set[t] = true
		}
	}
	return set
}

// blockResources intercepts requests and drops the blocked resource types
// before they hit the network.
func blockResources(page *rod.Page, names []string) {
	blocked := blockedTypes(names)
	if len(blocked) == 0 {
		return
	}

	router := page.HijackRequests()
	router.MustAdd("*", func(h *rod.Hijack) {
		if blocked[h.Request.Type()] {
			h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
			return
		}
		h.ContinueRequest(&proto.FetchContinueRequest{})
	})
	go router.Run()
}
