// Package sweeper runs the daily absence finalization. The trigger time and
// time zone come from configuration; a redis lock keeps the sweep
// single-flight per calendar day across instances.
package sweeper

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// AttendanceMarker is what the sweeper needs from the attendance
// repository.
type AttendanceMarker interface {
	MarkAbsentees(ctx context.Context, day time.Time) (int, error)
}

type Sweeper struct {
	attendance AttendanceMarker
	redisDB    *redis.Client
	location   *time.Location
	sweepTime  string
	cron       *cron.Cron
}

func New(attendance AttendanceMarker, redisDB *redis.Client, location *time.Location, sweepTime string) *Sweeper {
	return &Sweeper{
		attendance: attendance,
		redisDB:    redisDB,
		location:   location,
		sweepTime:  sweepTime,
	}
}

// cronSpec turns a "HH:MM" wall clock time into a daily cron expression.
func cronSpec(sweepTime string) (string, error) {
	t, err := time.Parse("15:04", sweepTime)
	if err != nil {
		return "", errors.Wrapf(err, "invalid sweep time %q", sweepTime)
	}
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour()), nil
}

// Start schedules the daily run in the facility's time zone.
func (s *Sweeper) Start() error {
	spec, err := cronSpec(s.sweepTime)
	if err != nil {
		return err
	}

	s.cron = cron.New(cron.WithLocation(s.location))
	if _, err = s.cron.AddFunc(spec, s.Run); err != nil {
		return errors.Wrap(err, "scheduling absence sweep")
	}
	s.cron.Start()

	return nil
}

func (s *Sweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Run executes one sweep for today. The redis lock is keyed on the calendar
// date, so a retried or concurrently triggered run for the same day is a
// no-op; a failed day is not retried (the next day's sweep has its own key).
func (s *Sweeper) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	day := time.Now().In(s.location)
	lockKey := fmt.Sprintf("attendance:sweep:%s", day.Format("2006-01-02"))

	acquired, err := s.redisDB.SetNX(ctx, lockKey, 1, 48*time.Hour).Result()
	if err != nil {
		log.Println("absence sweep: acquiring lock:", err)
		return
	}
	if !acquired {
		log.Println("absence sweep: already ran for", day.Format("2006-01-02"))
		return
	}

	marked, err := s.attendance.MarkAbsentees(ctx, day)
	if err != nil {
		log.Println("absence sweep:", err)
		return
	}

	log.Printf("absence sweep: marked %d students absent for %s", marked, day.Format("2006-01-02"))
}
