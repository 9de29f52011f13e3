package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"trainmice/internal/models"
)

var (
	gatewayURL = flag.String("gateway", "http://localhost:8082", "Admin gateway base URL")
	token      = flag.String("token", "", "Bearer token for the gateway API")
	trainers   = flag.String("trainers", "trainer-1", "Comma-separated trainer IDs to seed")
	weeks      = flag.Int("weeks", 4, "Number of upcoming weeks to seed")
	dryRun     = flag.Bool("dry-run", false, "Show what would be created without making changes")
)

// Seeds demo availability through the gateway: weekdays AVAILABLE, weekends
// NOT_AVAILABLE, for every trainer and week requested.
type AvailabilitySeeder struct {
	client *http.Client
}

func main() {
	flag.Parse()

	slog.Info("Starting availability seeder...")

	seeder := &AvailabilitySeeder{client: &http.Client{Timeout: 15 * time.Second}}

	for _, trainerID := range strings.Split(*trainers, ",") {
		trainerID = strings.TrimSpace(trainerID)
		if trainerID == "" {
			continue
		}
		if err := seeder.SeedTrainer(trainerID); err != nil {
			slog.Error("Failed to seed trainer", "trainer_id", trainerID, "error", err)
			os.Exit(1)
		}
		slog.Info("Seeded trainer availability", "trainer_id", trainerID, "weeks", *weeks)
	}

	slog.Info("Availability seeding completed successfully!")
}

func (s *AvailabilitySeeder) SeedTrainer(trainerID string) error {
	// Start from next Monday so the seeded window is always in the future
	day := time.Now().AddDate(0, 0, 1)
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, 1)
	}

	for week := 0; week < *weeks; week++ {
		monday := day.AddDate(0, 0, week*7)
		friday := monday.AddDate(0, 0, 4)
		saturday := monday.AddDate(0, 0, 5)
		sunday := monday.AddDate(0, 0, 6)

		if err := s.createRange(trainerID, monday, friday, models.SlotStatusAvailable); err != nil {
			return err
		}
		if err := s.createRange(trainerID, saturday, sunday, models.SlotStatusNotAvailable); err != nil {
			return err
		}
	}

	return nil
}

func (s *AvailabilitySeeder) createRange(trainerID string, start, end time.Time, status string) error {
	req := models.CreateAvailabilityRequest{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Status:    status,
	}

	if *dryRun {
		slog.Info("[DRY RUN] Would create availability",
			"trainer_id", trainerID, "start", req.StartDate, "end", req.EndDate, "status", status)
		return nil
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/trainers/%s/availability", *gatewayURL, trainerID)
	httpReq, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if *token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+*token)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("gateway returned %d for %s..%s", resp.StatusCode, req.StartDate, req.EndDate)
	}

	slog.Info("Created availability range",
		"trainer_id", trainerID, "start", req.StartDate, "end", req.EndDate, "status", status)
	return nil
}
