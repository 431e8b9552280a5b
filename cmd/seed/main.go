// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/auth"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/catalogs/product"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/registers/stock"
	"github.com/Bench-10/LJean-IMS-sub002/internal/infrastructure/storage/postgres"
	"github.com/Bench-10/LJean-IMS-sub002/internal/infrastructure/storage/postgres/auth_repo"
	"github.com/Bench-10/LJean-IMS-sub002/internal/infrastructure/storage/postgres/catalog_repo"
	"github.com/Bench-10/LJean-IMS-sub002/internal/infrastructure/storage/postgres/register_repo"
	"github.com/Bench-10/LJean-IMS-sub002/pkg/logger"
)

func main() {
	_ = godotenv.Load()

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

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)
	branchID, err := seedBranch(ctx, pool, log)
	if err != nil {
		log.Fatalw("failed to seed branch", "error", err)
	}

	if err := seedOwner(ctx, txManager, log, branchID); err != nil {
		log.Fatalw("failed to seed owner account", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoProducts(ctx, txManager, log, branchID); err != nil {
			log.Fatalw("failed to seed demo products", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedBranch(ctx context.Context, pool *postgres.Pool, log *logger.Logger) (id.ID, error) {
	branchName := os.Getenv("BRANCH_NAME")
	if branchName == "" {
		branchName = "Main Branch"
	}

	var existingID id.ID
	err := pool.QueryRow(ctx,
		`SELECT branch_id FROM branches WHERE branch_name = $1`,
		branchName,
	).Scan(&existingID)
	if err == nil {
		log.Infow("branch already exists", "branch", branchName, "branch_id", existingID)
		return existingID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return id.Nil(), fmt.Errorf("check branch exists: %w", err)
	}

	branchID := id.New()
	_, err = pool.Exec(ctx,
		`INSERT INTO branches (branch_id, branch_name, created_at) VALUES ($1, $2, $3)`,
		branchID, branchName, time.Now(),
	)
	if err != nil {
		return id.Nil(), fmt.Errorf("insert branch: %w", err)
	}

	log.Infow("branch created", "branch", branchName, "branch_id", branchID)
	return branchID, nil
}

func seedOwner(ctx context.Context, txm *postgres.TxManager, log *logger.Logger, branchID id.ID) error {
	username := os.Getenv("OWNER_USERNAME")
	if username == "" {
		username = "owner"
	}
	password := os.Getenv("OWNER_PASSWORD")
	if password == "" {
		password = "Owner123!"
	}

	users := auth_repo.NewUserRepo(txm)
	exists, err := users.Exists(ctx, username)
	if err != nil {
		return fmt.Errorf("check owner exists: %w", err)
	}
	if exists {
		log.Infow("owner account already exists", "username", username)
		return nil
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	owner := auth.NewUser(username, string(passwordHash), "Store Owner", auth.RoleOwner, branchID)
	if err := users.Create(ctx, owner); err != nil {
		return fmt.Errorf("create owner: %w", err)
	}

	log.Infow("owner account created", "username", username, "user_id", owner.ID)
	return nil
}

func seedDemoProducts(ctx context.Context, txm *postgres.TxManager, log *logger.Logger, branchID id.ID) error {
	products := catalog_repo.NewProductRepo(txm)
	stockRepo := register_repo.NewStockRepo(txm)

	demo := []struct {
		name     string
		baseUnit string
		price    float64
		stock    float64
		units    []product.SellingUnit
	}{
		{
			name: "Portland Cement", baseUnit: "g", price: 0.009, stock: 2_000_000,
			units: []product.SellingUnit{
				{Unit: "g", UnitPrice: 0.009, BaseQuantityPerSellUnit: 1, IsBase: true},
				{Unit: "kg", UnitPrice: 8.5, BaseQuantityPerSellUnit: 1000},
			},
		},
		{
			name: "Latex Paint", baseUnit: "ml", price: 0.12, stock: 400_000,
			units: []product.SellingUnit{
				{Unit: "ml", UnitPrice: 0.12, BaseQuantityPerSellUnit: 1, IsBase: true},
				{Unit: "ltr", UnitPrice: 110, BaseQuantityPerSellUnit: 1000},
				{Unit: "gal", UnitPrice: 410, BaseQuantityPerSellUnit: 3785},
			},
		},
		{
			name: "Common Nails", baseUnit: "pcs", price: 0.5, stock: 50_000,
			units: []product.SellingUnit{
				{Unit: "pcs", UnitPrice: 0.5, BaseQuantityPerSellUnit: 1, IsBase: true},
				{Unit: "bag", UnitPrice: 220, BaseQuantityPerSellUnit: 500},
			},
		},
	}

	for _, d := range demo {
		p := product.NewProduct(branchID, id.Nil(), d.name, d.baseUnit, d.price)
		p.Quantity = d.stock
		p.SellingUnits = d.units
		if err := products.Create(ctx, p); err != nil {
			return fmt.Errorf("create %s: %w", d.name, err)
		}
		if err := stockRepo.InsertBatch(ctx, &stock.Batch{
			ProductID:     p.ID,
			QuantityAdded: d.stock,
			QuantityLeft:  d.stock,
			DateAdded:     time.Now(),
			Validity:      time.Now().AddDate(2, 0, 0),
		}); err != nil {
			return fmt.Errorf("seed stock for %s: %w", d.name, err)
		}
		log.Infow("demo product created", "name", d.name, "product_id", p.ID)
	}
	return nil
}
