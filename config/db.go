package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"boda-backend/models"
	"boda-backend/seating"
)

var DB *gorm.DB

func baseMySQLConfig() *gomysql.Config {
	cfg := gomysql.NewConfig()
	cfg.Net = "tcp"
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	cfg := baseMySQLConfig()
	cfg.User = u.User.Username()
	cfg.Passwd, _ = u.User.Password()

	port := u.Port()
	if port == "" {
		port = "3306"
	}
	cfg.Addr = net.JoinHostPort(u.Hostname(), port)

	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	if cfg.DBName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	for key, values := range u.Query() {
		if len(values) == 0 {
			continue
		}
		switch key {
		case "parseTime", "loc":
			// fixed by baseMySQLConfig
		default:
			cfg.Params[key] = values[0]
		}
	}
	return cfg.FormatDSN(), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	cfg := baseMySQLConfig()
	cfg.User = envOrDefault("DB_USER", "root")
	cfg.Passwd = os.Getenv("DB_PASS")
	cfg.Addr = net.JoinHostPort(envOrDefault("DB_HOST", "127.0.0.1"), envOrDefault("DB_PORT", "3306"))
	cfg.DBName = envOrDefault("DB_NAME", "boda_db")
	return cfg.FormatDSN(), nil
}

// sampleGuests is the starter guest list loaded when SEED_GUESTS is set.
var sampleGuests = []models.Guest{
	{Nombre: "Marcelino Díaz Martínez", Acompanantes: datatypes.JSONSlice[models.Companion]{{Nombre: "Niño", EsNino: true}}},
	{Nombre: "Rosalía Mendoza Ortega", Acompanantes: datatypes.JSONSlice[models.Companion]{{Nombre: "Niño", EsNino: true}}},
	{Nombre: "Said Emmanuel", BoletosExtraNinos: 1},
	{Nombre: "Said Emmanuel +1", BoletosExtraNinos: 1},
	{Nombre: "Más 10", BoletosExtraNinos: 10},
}

// SeedDatabase makes sure a current layout exists and, when asked, loads the sample
// guests into an empty guest table.
func SeedDatabase(db *gorm.DB, slots int, withGuests bool) {
	var layoutCount int64
	db.Model(&models.Layout{}).Count(&layoutCount)
	if layoutCount == 0 {
		initial := models.Layout{Espacios: datatypes.JSONSlice[seating.Slot](seating.EmptyGrid(slots)), Version: seating.CurrentVersion}
		if err := db.Create(&initial).Error; err != nil {
			log.Printf("warning: failed to create initial layout: %v", err)
		} else {
			log.Printf("✅ initial layout created with %d empty slots", slots)
		}
	} else {
		log.Println("ℹ️ layout already present")
	}

	if !withGuests {
		return
	}
	var guestCount int64
	db.Model(&models.Guest{}).Count(&guestCount)
	if guestCount > 0 {
		log.Println("Guests already seeded")
		return
	}
	guests := append([]models.Guest(nil), sampleGuests...)
	if err := db.Create(&guests).Error; err != nil {
		log.Printf("warning: failed to seed guests: %v", err)
		return
	}
	log.Printf("Guests seeded: %d", len(guests))
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}
	DB = db

	if err := DB.AutoMigrate(
		&models.Guest{},
		&models.Layout{},
		&models.Task{},
		&models.Expense{},
		&models.Vendor{},
		&models.Document{},
		&models.Inspiration{},
		&models.Song{},
	); err != nil {
		return err
	}

	SeedDatabase(DB, LayoutSlots(), SeedGuests())
	return nil
}
