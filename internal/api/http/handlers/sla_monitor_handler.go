package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/service"
)

// SLAMonitor is the monitor surface exposed over HTTP.
type SLAMonitor interface {
	Status(ctx context.Context) (domain.MonitorStats, error)
	Statistics(ctx context.Context) (service.SLAStatistics, error)
	Trigger(ctx context.Context) (domain.MonitorRun, error)
	ClearJobs(ctx context.Context) error
}

// SLAMonitorHandler serves /sla-monitor.
type SLAMonitorHandler struct {
	monitor SLAMonitor
}

// NewSLAMonitorHandler constructs handler.
func NewSLAMonitorHandler(monitor SLAMonitor) *SLAMonitorHandler {
	return &SLAMonitorHandler{monitor: monitor}
}

// Status GET /sla-monitor/status.
func (h *SLAMonitorHandler) Status(c *fiber.Ctx) error {
	stats, err := h.monitor.Status(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// Statistics GET /sla-monitor/statistics.
func (h *SLAMonitorHandler) Statistics(c *fiber.Ctx) error {
	report, err := h.monitor.Statistics(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(report)
}

// Trigger POST /sla-monitor/trigger runs a pass and returns its outcome.
func (h *SLAMonitorHandler) Trigger(c *fiber.Ctx) error {
	run, err := h.monitor.Trigger(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "SLA check completed", "run": run})
}

// ClearJobs DELETE /sla-monitor/jobs.
func (h *SLAMonitorHandler) ClearJobs(c *fiber.Ctx) error {
	if err := h.monitor.ClearJobs(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "SLA monitor jobs cleared"})
}
