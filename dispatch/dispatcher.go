package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"autoblog/metrics"
	"autoblog/store"
	"autoblog/types"
)

// Report summarises one queue scan.
type Report struct {
	Delivered int
	Poisoned  int
	Failed    int
	Pending   int
}

// Dispatcher drains the queue for one platform.
type Dispatcher struct {
	Store    *store.Store
	Platform Platform
	// Single stops the scan after the first successful delivery.
	Single  bool
	Logger  logrus.FieldLogger
	Now     func() time.Time
	Metrics *metrics.Collector
}

// New creates a dispatcher with a wall clock.
func New(st *store.Store, p Platform, logger logrus.FieldLogger, m *metrics.Collector) *Dispatcher {
	return &Dispatcher{
		Store:    st,
		Platform: p,
		Logger:   logger.WithField("platform", p.Name()),
		Now:      time.Now,
		Metrics:  m,
	}
}

// ProcessQueue scans the queue in filename order and delivers at most one
// unit per item. Delivery failures are logged and leave the marker alone.
// A failed write of one item is logged and the scan moves on; those
// failures are returned together once the scan ends. Only cancellation
// ends the scan early.
func (d *Dispatcher) ProcessQueue(ctx context.Context) (Report, error) {
	var (
		report      Report
		persistErrs []error
	)
	platform := d.Platform.Name()

	entries, err := d.Store.ListQueue()
	if err != nil {
		return report, err
	}

	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if e.Err != nil {
			d.Logger.WithError(e.Err).WithField("item", e.Name).Warn("Skipping unreadable queue item")
			continue
		}
		item := e.Item
		if !item.Targets(platform) || item.Marker(platform).IsDelivered() {
			continue
		}

		delivered, err := d.processItem(ctx, e.Name, item, &report)
		if err != nil {
			d.Logger.WithError(err).WithField("item", e.Name).Error("Failed to persist queue item; continuing")
			persistErrs = append(persistErrs, err)
		}
		if !item.Marker(platform).IsDelivered() {
			report.Pending++
		}
		if delivered && d.Single {
			report.Pending += d.countPending(entries[i+1:])
			break
		}
	}

	d.finish(report)
	return report, errors.Join(persistErrs...)
}

func (d *Dispatcher) processItem(ctx context.Context, name string, item *types.QueueItem, report *Report) (bool, error) {
	platform := d.Platform.Name()
	marker := item.Marker(platform)
	log := d.Logger.WithField("item", name)

	content, ok := item.Content.For(platform)
	if !ok || !content.IsStructured() {
		log.Warn("No usable content; marking delivered without posting")
		report.Poisoned++
		d.Metrics.ObserveDelivery(platform, metrics.Poisoned)
		return false, d.save(name, item, types.Delivered())
	}

	total := content.Units()
	if saturated := marker.Saturate(total); saturated.IsDelivered() {
		return false, d.save(name, item, saturated)
	}

	unit := marker.Cursor()
	log = log.WithField("unit", fmt.Sprintf("%d/%d", unit+1, total))
	next := marker.Advance(total)

	text := content.RenderUnit(unit)
	if text == "" {
		log.Warn("Unit renders empty; marking delivered without posting")
		report.Poisoned++
		d.Metrics.ObserveDelivery(platform, metrics.Poisoned)
		return false, d.save(name, item, next)
	}

	if err := d.deliver(ctx, text); err != nil {
		derr := &DeliveryError{Platform: platform, Item: name, Cause: err}
		log.WithError(derr).Error("Delivery failed; will retry next run")
		report.Failed++
		d.Metrics.ObserveDelivery(platform, metrics.Failed)
		return false, nil
	}

	now := d.Now()
	item.StampDelivery(platform, now)
	if err := d.save(name, item, next); err != nil {
		// The platform accepted the unit, so single mode still stops here.
		report.Delivered++
		d.Metrics.ObserveDelivery(platform, metrics.Delivered)
		return true, err
	}
	report.Delivered++
	d.Metrics.ObserveDelivery(platform, metrics.Delivered)
	log.WithField("marker", next.String()).Info("Delivered")

	if err := d.Store.RecordStats(types.StatSNS, now); err != nil {
		log.WithError(err).Warn("Failed to record stats")
	}
	return true, nil
}

// deliver calls the platform, turning a panic into an error so one bad
// item cannot end the scan.
func (d *Dispatcher) deliver(ctx context.Context, text string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return d.Platform.Deliver(ctx, text)
}

func (d *Dispatcher) save(name string, item *types.QueueItem, m types.Marker) error {
	item.SetMarker(d.Platform.Name(), m)
	if err := d.Store.SaveQueueItem(name, item); err != nil {
		return fmt.Errorf("dispatch: persist %s: %w", name, err)
	}
	return nil
}

func (d *Dispatcher) countPending(entries []store.QueueEntry) int {
	n := 0
	for _, e := range entries {
		if e.Item != nil && e.Item.Targets(d.Platform.Name()) && !e.Item.Marker(d.Platform.Name()).IsDelivered() {
			n++
		}
	}
	return n
}

func (d *Dispatcher) finish(report Report) {
	d.Metrics.SetPending(d.Platform.Name(), report.Pending)
	d.Logger.WithFields(logrus.Fields{
		"delivered": report.Delivered,
		"poisoned":  report.Poisoned,
		"failed":    report.Failed,
		"pending":   report.Pending,
	}).Info("Queue scan finished")
}
