package main

import (
	"context"
	"log"
	"time"

	"agenda/internal/cache"
	"agenda/internal/config"
	"agenda/internal/db"
	"agenda/internal/model"
	"agenda/internal/repository"
	"agenda/internal/service"
)

// seedEvent is one demo fixture attached to a user by email.
type seedEvent struct {
	email       string
	title       string
	description string
	start       time.Time
	duration    time.Duration
	eventType   string
	color       string
	recurrence  model.Recurrence
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Event{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	users := service.NewUserService(repository.NewUserRepository(gormDB), cacheClient)
	events := service.NewEventService(users, repository.NewEventRepository(gormDB), cacheClient)

	ctx := context.Background()
	created := 0
	for _, fixture := range fixtures() {
		_, err := events.Create(ctx, fixture.email, service.EventInput{
			Title:       fixture.title,
			Description: fixture.description,
			StartTime:   fixture.start,
			EndTime:     fixture.start.Add(fixture.duration),
			Type:        fixture.eventType,
			Color:       fixture.color,
			Recurrence:  fixture.recurrence,
		})
		if err != nil {
			log.Fatalf("Failed to seed event %q: %v", fixture.title, err)
		}
		created++
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Events created: %d", created)
}

func fixtures() []seedEvent {
	nextMonday := time.Now().UTC().Truncate(24 * time.Hour)
	for nextMonday.Weekday() != time.Monday {
		nextMonday = nextMonday.AddDate(0, 0, 1)
	}
	morning := nextMonday.Add(9 * time.Hour)

	return []seedEvent{
		{
			email:       "demo@example.com",
			title:       "Standup",
			description: "Daily team sync",
			start:       morning,
			duration:    15 * time.Minute,
			eventType:   "meeting",
			color:       "#28a745",
			recurrence:  model.RecurrenceDaily,
		},
		{
			email:       "demo@example.com",
			title:       "Sprint planning",
			description: "Plan the next sprint",
			start:       morning.Add(2 * time.Hour),
			duration:    time.Hour,
			eventType:   "meeting",
			color:       "#28a745",
			recurrence:  model.RecurrenceWeekly,
		},
		{
			email:       "demo@example.com",
			title:       "Pay rent",
			description: "",
			start:       time.Date(nextMonday.Year(), nextMonday.Month(), 1, 8, 0, 0, 0, time.UTC).AddDate(0, 1, 0),
			duration:    30 * time.Minute,
			eventType:   "reminder",
			color:       "#dc3545",
			recurrence:  model.RecurrenceMonthly,
		},
		{
			email:       "guest@example.com",
			title:       "Dentist",
			description: "Annual checkup",
			start:       morning.AddDate(0, 0, 3),
			duration:    45 * time.Minute,
			eventType:   "task",
			color:       "#007BFF",
			recurrence:  model.RecurrenceNone,
		},
	}
}
