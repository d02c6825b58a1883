package main

import (
	"errors"
	"time"

	"hospital_duty_kiosk/internal/app"
	"hospital_duty_kiosk/internal/domain/registry"
	"hospital_duty_kiosk/internal/infra/config"
	"hospital_duty_kiosk/internal/infra/docparse"
	"hospital_duty_kiosk/internal/infra/logger"
	"hospital_duty_kiosk/internal/infra/metrics"
	"hospital_duty_kiosk/internal/infra/moh"
	"hospital_duty_kiosk/internal/infra/snapshot"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// kiosk holds the wired components shared by all subcommands.
type kiosk struct {
	cfg      *config.AppConfig
	log      *logrus.Logger
	registry *prometheus.Registry
	service  *app.ScheduleService
}

func newRootCmd() *cobra.Command {
	k := &kiosk{}

	root := &cobra.Command{
		Use:   "kiosk",
		Short: "Athens on-duty hospital kiosk backend",
		Long: "Fetches the Ministry of Health duty schedule for Attica hospitals, serves it to the kiosk\n" +
			"and manages the cardiology clinic's monthly on-call roster.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return k.init()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(k), newDutiesCmd(k), newShiftsCmd(k))
	return root
}

func (k *kiosk) init() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg)

	k.cfg = cfg
	k.log = logger.Log
	k.registry = prometheus.NewRegistry()
	k.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	kioskMetrics := metrics.NewKioskMetrics(k.registry)

	ministry := moh.NewClient(cfg.ListingURL, cfg.HTTPTimeout, cfg.Location, logger.Component("moh"))
	extractor := app.NewDutyExtractor(
		ministry,
		ministry,
		docparse.NewDecoder(),
		registry.Default(),
		cfg.LookbackDays,
		kioskMetrics,
		logger.Component("duty_extractor"),
	)
	k.service = app.NewScheduleService(
		extractor,
		docparse.NewDecoder(),
		app.NewScheduleStore(),
		snapshot.NewDutyFile(cfg.DutySnapshotPath, cfg.Location),
		snapshot.NewShiftFile(cfg.ShiftSnapshotPath, cfg.Location),
		kioskMetrics,
		logger.Component("schedule_service"),
	)
	return nil
}

// loadShifts restores the persisted roster. A missing snapshot is not an error.
func (k *kiosk) loadShifts() {
	current, err := k.service.LoadShiftSnapshot(nowIn(k.cfg.Location))
	switch {
	case errors.Is(err, app.ErrNoSnapshot):
		k.log.Info("No shift snapshot found")
	case err != nil:
		k.log.WithError(err).Warn("Could not load shift snapshot")
	case !current:
		k.log.Warn("Shift snapshot is for another month")
	}
}

func nowIn(loc *time.Location) time.Time {
	return time.Now().In(loc)
}
