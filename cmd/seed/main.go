// Package main provides a CLI tool for seeding the database with demo data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"medstock/internal/core/id"
	"medstock/internal/core/types"
	"medstock/internal/infrastructure/storage/postgres"
	"medstock/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	ownerID, created, err := seedDemoUser(ctx, pool, log)
	if err != nil {
		log.Fatalw("failed to seed demo user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if !created {
			log.Info("demo user already existed, skipping demo data")
		} else if err := seedDemoData(ctx, pool, log, ownerID); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

// seedDemoUser creates the demo pharmacist account, or returns the existing
// one. The second return reports whether the user was created by this run.
func seedDemoUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) (id.ID, bool, error) {
	email := os.Getenv("DEMO_EMAIL")
	if email == "" {
		email = "demo@medstock.io"
	}

	password := os.Getenv("DEMO_PASSWORD")
	if password == "" {
		password = "Demo1234!"
	}

	var existingID id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM auth_users WHERE LOWER(email) = LOWER($1)`,
		email,
	).Scan(&existingID)
	if err == nil {
		log.Infow("demo user already exists", "email", email, "user_id", existingID)
		return existingID, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return id.Nil(), false, fmt.Errorf("check demo user exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return id.Nil(), false, fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	now := time.Now().UTC()

	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO auth_users (id, email, password_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, true, $4, $4)
	`, userID, email, string(passwordHash), now)
	if err != nil {
		return id.Nil(), false, fmt.Errorf("insert demo user: %w", err)
	}

	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO auth_profiles (id, user_id, full_name, phone, address, created_at, updated_at)
		VALUES ($1, $2, 'Demo Pharmacist', '+1-555-0100', '12 High Street', $3, $3)
	`, id.New(), userID, now)
	if err != nil {
		return id.Nil(), false, fmt.Errorf("insert demo profile: %w", err)
	}

	log.Infow("demo user created", "email", email, "user_id", userID)
	return userID, true, nil
}

// seedDemoData loads a small pharmacy inventory for the demo user.
// All rows go through the COPY protocol in a single transaction.
func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger, ownerID id.ID) error {
	log.Info("seeding demo data...")

	txManager := postgres.NewTxManager(pool)
	inserter := postgres.NewBatchInserter(txManager)
	now := time.Now().UTC()

	// Manufacturers
	manufacturers := []struct {
		name    string
		contact string
		phone   string
		address string
	}{
		{"Cipla Ltd", "R. Mehta", "+91-22-2482-6000", "Mumbai Central, Mumbai"},
		{"Sun Pharma", "A. Shah", "+91-22-4324-4324", "Goregaon East, Mumbai"},
		{"GSK Pharmaceuticals", "J. Carter", "+44-20-8047-5000", "Brentford, London"},
	}

	manufacturerIDs := make([]id.ID, len(manufacturers))
	manufacturerRows := make([][]any, len(manufacturers))
	for i, m := range manufacturers {
		manufacturerIDs[i] = id.New()
		manufacturerRows[i] = []any{
			manufacturerIDs[i], ownerID, m.name, m.contact, m.phone, m.address,
			1, now, now,
		}
	}

	// Medicines: a mix of fresh, soon-to-expire and already expired stock
	// so the dashboard has something to show.
	medicines := []struct {
		name     string
		code     string
		mfr      int // index into manufacturerIDs
		cost     string
		mrp      string
		mfgDate  time.Time
		expDate  time.Time
		quantity int
	}{
		{"Paracetamol 500mg", "MED-00001", 0, "1.20", "2.50", now.AddDate(-1, 0, 0), now.AddDate(1, 6, 0), 240},
		{"Amoxicillin 250mg", "MED-00002", 0, "3.40", "6.00", now.AddDate(0, -8, 0), now.AddDate(0, 0, 20), 60},
		{"Cetirizine 10mg", "MED-00003", 1, "0.80", "1.75", now.AddDate(0, -6, 0), now.AddDate(2, 0, 0), 180},
		{"Ibuprofen 400mg", "MED-00004", 1, "1.50", "3.20", now.AddDate(-2, 0, 0), now.AddDate(0, -1, 0), 30},
		{"Salbutamol Inhaler", "MED-00005", 2, "95.00", "145.00", now.AddDate(0, -3, 0), now.AddDate(1, 0, 0), 25},
	}

	medicineIDs := make([]id.ID, len(medicines))
	medicineRows := make([][]any, len(medicines))
	for i, m := range medicines {
		medicineIDs[i] = id.New()
		medicineRows[i] = []any{
			medicineIDs[i], ownerID, m.name, m.code, manufacturerIDs[m.mfr],
			types.MustMoney(m.cost), types.MustMoney(m.mrp),
			m.mfgDate, m.expDate, m.quantity,
			1, now, now,
		}
	}

	// Transactions: purchases that produced the stock above, plus some sales.
	transactions := []struct {
		med     int // index into medicineIDs
		ttype   string
		partner string
		price   string
		qty     int
		daysAgo int
	}{
		{0, "BOUGHT", "MediSupply Wholesale", "1.20", 300, 45},
		{1, "BOUGHT", "MediSupply Wholesale", "3.40", 100, 40},
		{2, "BOUGHT", "PharmaDirect", "0.80", 200, 35},
		{3, "BOUGHT", "PharmaDirect", "1.50", 50, 60},
		{4, "BOUGHT", "GSK Distribution", "95.00", 30, 30},
		{0, "SOLD", "Walk-in customer", "2.50", 60, 20},
		{1, "SOLD", "City Clinic", "6.00", 40, 15},
		{2, "SOLD", "Walk-in customer", "1.75", 20, 10},
		{3, "SOLD", "Walk-in customer", "3.20", 20, 8},
		{4, "SOLD", "City Clinic", "145.00", 5, 3},
	}

	transactionRows := make([][]any, len(transactions))
	for i, t := range transactions {
		transactionRows[i] = []any{
			id.New(), ownerID, medicineIDs[t.med], t.ttype, t.partner,
			types.MustMoney(t.price), t.qty,
			now.AddDate(0, 0, -t.daysAgo),
		}
	}

	err := txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		n, err := inserter.CopyFromSlice(ctx, "cat_manufacturers",
			[]string{"id", "owner_id", "name", "contact_person", "phone", "address", "version", "created_at", "updated_at"},
			manufacturerRows)
		if err != nil {
			return fmt.Errorf("copy manufacturers: %w", err)
		}
		log.Infow("manufacturers seeded", "count", n)

		n, err = inserter.CopyFromSlice(ctx, "cat_medicines",
			[]string{"id", "owner_id", "name", "code", "manufacturer_id", "cost_price", "mrp", "mfg_date", "exp_date", "quantity_on_hand", "version", "created_at", "updated_at"},
			medicineRows)
		if err != nil {
			return fmt.Errorf("copy medicines: %w", err)
		}
		log.Infow("medicines seeded", "count", n)

		n, err = inserter.CopyFromSlice(ctx, "ledger_transactions",
			[]string{"id", "owner_id", "medicine_id", "type", "partner_name", "unit_price", "quantity", "created_at"},
			transactionRows)
		if err != nil {
			return fmt.Errorf("copy transactions: %w", err)
		}
		log.Infow("transactions seeded", "count", n)

		return nil
	})
	if err != nil {
		return err
	}

	log.Info("demo data seeded successfully")
	return nil
}
