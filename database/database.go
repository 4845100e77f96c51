package database

import (
	"aerocert/models"
	trainingModels "aerocert/models/training"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// LiveCertificateIndex is the partial unique index holding one live
// certificate per training. Soft-deleted certificates are excluded so a
// training can be reissued after its certificate is deleted.
const LiveCertificateIndex = "uniq_certificates_live_training"

// ConnectDb establishes a connection to PostgreSQL
func ConnectDb() {
	// Build the PostgreSQL connection string
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	// Open database connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		os.Exit(2)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	// Run database migrations
	RunMigrations(db)

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// RunMigrations performs database migrations. Exposed so tests can migrate an
// in-memory database with the same model set.
func RunMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.Profile{},
		&models.JobCategory{},
		&models.Airport{},
		&models.AirportAssignment{},
		&models.OrgSettings{},
		&trainingModels.TrainingProgram{},
		&trainingModels.Training{},
		&trainingModels.Examination{},
		&trainingModels.SkillCheck{},
		&trainingModels.Certificate{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// AutoMigrate cannot express a partial index; both Postgres and sqlite
	// accept this form
	err = db.Exec(fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s ON certificates (training_id) WHERE is_deleted = false",
		LiveCertificateIndex,
	)).Error
	if err != nil {
		log.Fatalf("Index migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}
