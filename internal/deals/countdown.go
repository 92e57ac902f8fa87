package deals

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	catalogdomain "github.com/freshmart/storefront/internal/catalog/domain"
	"github.com/freshmart/storefront/internal/platform/logger"
)

// Countdown keeps the weekly-deals banner's "ends in" string fresh. The
// promotional window closes Sunday 23:59:59 local time; a scheduler
// recomputes the remaining time on a fixed interval.
type Countdown struct {
	mu        sync.RWMutex
	remaining string

	scheduler *cron.Cron
	stopOnce  sync.Once
	now       func() time.Time
}

// NewCountdown starts the refresh scheduler with the given cron spec
// (seconds field included).
func NewCountdown(spec string) (*Countdown, error) {
	c := &Countdown{
		scheduler: cron.New(cron.WithSeconds()),
		now:       time.Now,
	}
	c.refresh()
	if _, err := c.scheduler.AddFunc(spec, c.refresh); err != nil {
		return nil, fmt.Errorf("invalid countdown schedule %q: %w", spec, err)
	}
	c.scheduler.Start()
	logger.Info("Weekly-deals countdown scheduler started", "spec", spec)
	return c, nil
}

// Remaining returns the current countdown string, e.g. "2d 5h 41m".
func (c *Countdown) Remaining() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.remaining
}

// Stop halts the scheduler. Safe to call more than once; after the first
// call returns, no further refreshes fire.
func (c *Countdown) Stop() {
	c.stopOnce.Do(func() {
		ctx := c.scheduler.Stop()
		<-ctx.Done()
	})
}

func (c *Countdown) refresh() {
	remaining := FormatRemaining(NextWeekEnd(c.now()).Sub(c.now()))
	c.mu.Lock()
	c.remaining = remaining
	c.mu.Unlock()
}

// NextWeekEnd returns the end of the current promotional week: the
// upcoming Sunday at 23:59:59. On a Sunday the window runs to the
// following Sunday.
func NextWeekEnd(now time.Time) time.Time {
	days := 7 - int(now.Weekday())
	sunday := now.AddDate(0, 0, days)
	return time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 23, 59, 59, 0, now.Location())
}

// FormatRemaining renders a duration as "Xd Yh Zm", or "Expired" when the
// window has closed.
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "Expired"
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
}

// DiscountPercent is the banner's saving figure: the discount relative to
// the original price, rounded to the nearest integer percent (half away
// from zero). Products without an original price have no discount.
func DiscountPercent(p catalogdomain.Product) int {
	if p.OriginalPrice == nil || *p.OriginalPrice <= 0 {
		return 0
	}
	return int(math.Round((*p.OriginalPrice - p.Price) / *p.OriginalPrice * 100))
}
