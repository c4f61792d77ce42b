package backend

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/bookingdash/internal/domain"
)

// SeedEntry is one booking in the seed file.
type SeedEntry struct {
	ID          string  `yaml:"id"`
	Customer    string  `yaml:"customer"`
	Address     string  `yaml:"address"`
	ScheduledAt string  `yaml:"scheduled_at"`
	Total       float64 `yaml:"total"`
	Paid        bool    `yaml:"paid"`
	Status      string  `yaml:"status"`
}

// SeedFile is the root structure of the seed YAML:
//
//	bookings:
//	  - customer: Jean Tremblay
//	    address: 123 Main St
//	    scheduled_at: 2025-03-01T10:00:00-05:00
//	    total: 149.50
//	    status: CONFIRMED
type SeedFile struct {
	Bookings []SeedEntry `yaml:"bookings"`
}

// SeedLoader reads initial bookings from a YAML file.
type SeedLoader struct {
	filePath string
}

// NewSeedLoader creates a loader for filePath.
func NewSeedLoader(filePath string) *SeedLoader {
	return &SeedLoader{filePath: filePath}
}

// Load reads, parses and maps the seed file.
func (l *SeedLoader) Load() ([]domain.Booking, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed maps seed YAML to bookings. Entries without an id get a fresh
// one; a missing status means NEW.
func ParseSeed(data []byte) ([]domain.Booking, error) {
	var file SeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	out := make([]domain.Booking, 0, len(file.Bookings))
	seen := make(map[string]struct{}, len(file.Bookings))

	for i, e := range file.Bookings {
		status := domain.StatusNew
		if s := strings.TrimSpace(e.Status); s != "" {
			parsed, err := domain.ParseStatus(strings.ToUpper(s))
			if err != nil {
				return nil, fmt.Errorf("seed entry %d: %w", i, err)
			}
			status = parsed
		}

		d := domain.Draft{
			CustomerName:   e.Customer,
			Address:        e.Address,
			ScheduledAtISO: e.ScheduledAt,
			TotalCAD:       e.Total,
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i, err)
		}
		d = d.Normalized()

		id := strings.TrimSpace(e.ID)
		if id == "" {
			id = uuid.NewString()
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("seed entry %d: duplicate id %q", i, id)
		}
		seen[id] = struct{}{}

		out = append(out, domain.Booking{
			ID:             id,
			CustomerName:   d.CustomerName,
			Address:        d.Address,
			ScheduledAtISO: d.ScheduledAtISO,
			TotalCAD:       d.TotalCAD,
			Paid:           e.Paid,
			Status:         status,
		})
	}
	return out, nil
}
