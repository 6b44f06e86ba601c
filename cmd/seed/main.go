package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"homebooking/internal/catalog"
	"homebooking/internal/database"
	"homebooking/internal/form"
	"homebooking/internal/modules/booking"
	"homebooking/internal/pkg/utils"
	"homebooking/internal/repository"
)

// seed fills a local SQL booking table with sample requests for UI and
// export testing. It never talks to Google Sheets.
func main() {
	dsn := flag.String("db", "booking.db", "SQLite path or postgres:// URL")
	count := flag.Int("n", 12, "number of bookings to create")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Connect(*dsn, logger)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	repo := repository.NewBookingRowRepository(db)
	ctx := context.Background()
	if err := repo.EnsureHeaders(ctx); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	loc, err := utils.LoadLocation("")
	if err != nil {
		log.Fatal(err)
	}
	svc := booking.NewService(repo, nil, loc, logger)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	today := time.Now().In(loc)

	for i := 0; i < *count; i++ {
		req := sampleRequest(rng, i, today)
		if _, err := svc.CreateBooking(ctx, req); err != nil {
			log.Fatalf("booking %d: %v", i+1, err)
		}
	}

	rows, err := repo.List(ctx)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Seed complete: %d booking rows in %s", len(rows)-1, *dsn)
}

var (
	sampleNames = []string{
		"Juan Dela Cruz", "Maria Santos", "Jose Reyes", "Ana Garcia",
		"Ramon Bautista", "Liza Mendoza", "Carlo Aquino", "Grace Villanueva",
	}
	sampleStreets = []string{
		"Rizal St, Brgy. San Antonio, Makati City",
		"Unit 12B, Tower 2, Ortigas Center, Pasig City",
		"Blk 4 Lot 9, Camella Homes, Las Pinas City",
		"Katipunan Ave, Brgy. Loyola Heights, Quezon City",
	}
	sampleProblems = []string{
		"Water is dripping from the ceiling near the bathroom.",
		"Breaker trips whenever the aircon and microwave run together.",
		"Unit is noisy and no longer cooling the room.",
		"Cabinet door hinges are broken and the door will not close.",
	}
)

func pick(rng *rand.Rand, opts []catalog.Option) string {
	return opts[rng.Intn(len(opts))].Value
}

func sampleRequest(rng *rand.Rand, i int, today time.Time) booking.CreateBookingRequest {
	name := sampleNames[i%len(sampleNames)]
	serviceType := pick(rng, catalog.ServiceTypes)

	preferred := today.AddDate(0, 0, 1+rng.Intn(14))
	preferredISO := preferred.UTC().Format(form.TimestampLayout)

	req := booking.CreateBookingRequest{
		FullName:               name,
		PhoneNumber:            fmt.Sprintf("+63 917 %03d %04d", rng.Intn(1000), rng.Intn(10000)),
		EmailAddress:           fmt.Sprintf("customer%d@example.com", i+1),
		PropertyType:           pick(rng, catalog.PropertyTypes),
		ServiceAddress:         sampleStreets[rng.Intn(len(sampleStreets))],
		ServiceType:            serviceType,
		SpecificService:        pick(rng, catalog.SpecificServices(serviceType)),
		UrgencyLevel:           pick(rng, catalog.UrgencyLevels),
		ProblemDescription:     sampleProblems[rng.Intn(len(sampleProblems))],
		PreferredDate:          &preferredISO,
		PreferredTime:          pick(rng, catalog.TimeBands),
		PreferredContactMethod: pick(rng, catalog.ContactMethods),
		BestTimeToCall:         pick(rng, catalog.CallTimes),
	}

	// every third booking carries the optional fields
	if i%3 == 0 {
		alt := preferred.AddDate(0, 0, 2).UTC().Format(form.TimestampLayout)
		req.AlternativeDate = &alt
		req.AlternativeTime = pick(rng, catalog.TimeBands)
		req.BudgetRange = pick(rng, catalog.BudgetRanges)
		req.AccessInstructions = "Call the guard house on arrival."
	}
	return req
}
