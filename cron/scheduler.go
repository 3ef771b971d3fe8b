package cron

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// StartCron schedules every registered job plus extra, and starts the scheduler.
func StartCron(extra map[string]Job) (*cron.Cron, error) {
	c := cron.New()
	all := Jobs()
	for name, j := range extra {
		all[name] = j
	}
	for name, j := range all {
		run := j.Run
		if _, err := c.AddFunc(j.Schedule, func() { run() }); err != nil {
			return nil, fmt.Errorf("failed to register job %s: %w", name, err)
		}
	}
	c.Start()
	return c, nil
}
