package auditor

import (
	"context"
	"errors"
	"time"

	"yieldpool/core"
	"yieldpool/pkg/vault"
	"yieldpool/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
)

const (
	checkpointKey = "audit_checkpoint"
	resultKey     = "audit_result"
)

// Auditor check the pool invariants and keep the outcome in the property store
type Auditor struct {
	worker.BaseJob
	poolService core.IPoolService
	property    property.Store
}

// New new auditor
func New(
	location string,
	poolSrv core.IPoolService,
	property property.Store,
) *Auditor {
	auditor := Auditor{
		poolService: poolSrv,
		property:    property,
	}

	if err := auditor.Schedule(location, "@every 10m", func() error {
		return auditor.onWork(context.Background())
	}); err != nil {
		panic(err)
	}

	return &auditor
}

func (w *Auditor) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "auditor")

	pool, err := w.poolService.Audit(ctx)
	if errors.Is(err, core.ErrPoolNotFound) {
		return nil
	}

	result := "ok"
	if err != nil {
		if !vault.IsFatal(err) {
			log.WithError(err).Errorln("audit")
			return err
		}

		log.WithError(err).Errorln("pool invariants broken")
		result = err.Error()
	}

	if err := w.property.Save(ctx, resultKey, result); err != nil {
		log.WithError(err).Errorln("property.Save", resultKey)
		return err
	}

	if result != "ok" {
		return nil
	}

	// time of the last clean audit
	if err := w.property.Save(ctx, checkpointKey, time.Now()); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	log.WithField("version", pool.Version).Debugln("pool audited")
	return nil
}
