package jobs

import "context"

// SweepMaintenance restores vehicles whose maintenance cool-down has
// elapsed. The same sweep runs inside every sync read; this job keeps the
// fleet recovering even when nobody is looking at it.
func (jr *JobRunner) SweepMaintenance() {
	jr.runWithRecovery("SweepMaintenance", func() {
		restored, err := jr.report.SweepMaintenance(context.Background())
		if err != nil {
			jr.log.Error("Failed to sweep maintenance cool-downs", "error", err)
			return
		}
		jr.log.Info("Swept maintenance cool-downs", "restored", restored)
	})
}
