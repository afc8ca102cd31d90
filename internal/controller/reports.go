package controller

import (
	"context"

	"github.com/rs/zerolog/log"

	"taskdesk/internal/busy"
	"taskdesk/internal/model"
	"taskdesk/internal/notify"
)

// Exporter fetches the spreadsheet reports.
type Exporter interface {
	ExportTasksReport(ctx context.Context) (model.Report, error)
	ExportUsersReport(ctx context.Context) (model.Report, error)
}

// Reports downloads reports. Downloads have their own tracker so they never
// raise the global busy indicator.
type Reports struct {
	svc         Exporter
	downloading *busy.Tracker
	notifier    notify.Notifier
}

func NewReports(svc Exporter, notifier notify.Notifier) *Reports {
	return &Reports{svc: svc, downloading: busy.New(), notifier: notifier}
}

// Downloading reports whether a download is in flight.
func (r *Reports) Downloading() bool {
	return r.downloading.IsBusy()
}

func (r *Reports) Tasks(ctx context.Context) (model.Report, bool) {
	return r.download(ctx, "tasks", r.svc.ExportTasksReport)
}

func (r *Reports) Users(ctx context.Context) (model.Report, bool) {
	return r.download(ctx, "users", r.svc.ExportUsersReport)
}

func (r *Reports) download(ctx context.Context, kind string, fetch func(context.Context) (model.Report, error)) (model.Report, bool) {
	var report model.Report
	err := r.downloading.Track(ctx, func(ctx context.Context) error {
		var err error
		report, err = fetch(ctx)
		return err
	})
	if err != nil {
		log.Err(err).Str("report", kind).Msg("error downloading report")
		r.notifier.Error("Failed to download report")
		return model.Report{}, false
	}
	return report, true
}
