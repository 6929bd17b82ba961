package dispatch

import (
	"context"
	"fmt"
	"log"

	"MarketDigest/internal/recorder"
	"MarketDigest/internal/report"
)

// Sender delivers report text to the chat channel.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// Dispatcher runs one end-to-end report: assemble, record, deliver. On any
// failure it makes exactly one additional best-effort attempt to deliver a
// plain-text failure notice, swallowing that attempt's own error.
type Dispatcher struct {
	Assembler *report.Assembler
	Notifier  Sender
	Recorder  recorder.Recorder
}

// RunAndReport executes one report run. The returned error reflects the
// primary outcome; the fallback notice never changes it.
func (d *Dispatcher) RunAndReport(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("report run panicked: %v", r)
			log.Printf("[ERROR] %v", err)
			d.notifyFailure(ctx, err)
		}
	}()

	log.Println("[INFO] running report")
	rep := d.Assembler.Assemble(ctx)
	if n := rep.Failures(); n > 0 {
		log.Printf("[WARN] %d symbol(s) failed, reported as failure lines", n)
	}

	err = d.Notifier.Send(ctx, rep.Text)
	d.record(rep, err == nil)
	if err != nil {
		log.Printf("[ERROR] send report: %v", err)
		d.notifyFailure(ctx, err)
		return err
	}

	log.Printf("[INFO] report delivered (%d symbols, %d failures)", len(rep.Results), rep.Failures())
	return nil
}

// notifyFailure is the single best-effort fallback notification. Terminal:
// its own failure is logged and swallowed.
func (d *Dispatcher) notifyFailure(ctx context.Context, cause error) {
	notice := fmt.Sprintf("❌ 보고서 실행 중 오류 발생: %v", cause)
	if err := d.Notifier.Send(ctx, notice); err != nil {
		log.Printf("[ERROR] failure notice also undeliverable: %v", err)
	}
}

func (d *Dispatcher) record(rep *report.Report, delivered bool) {
	run := &recorder.RunRecord{
		StartedAt: rep.GeneratedAt,
		Delivered: delivered,
		Failures:  rep.Failures(),
		Report:    rep.Text,
	}
	for _, r := range rep.Results {
		s := recorder.Snapshot{
			Group:  r.Group,
			Name:   r.Name,
			Symbol: r.Symbol,
			OK:     r.Err == "",
			Note:   r.Err,
		}
		if r.Record != nil {
			s.Value = r.Record.Value
			s.DailyPct = r.Record.DailyChangePct
			s.WeeklyPct = r.Record.WeeklyChangePct
			s.Volume = r.Record.Volume
			s.Low52w = r.Record.Low52w
			s.High52w = r.Record.High52w
		} else if r.Rate != nil {
			s.Value = r.Rate.Rate
			s.DailyPct = r.Rate.DailyChangePct
			s.WeeklyPct = r.Rate.WeeklyChangePct
			if !r.Rate.Supported {
				s.OK = false
				s.Note = "no rate"
			}
		}
		run.Snapshots = append(run.Snapshots, s)
	}

	if err := d.Recorder.RecordRun(run); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
}
