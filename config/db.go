package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"guesthouse-backend/models"
	"guesthouse-backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
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

	user := utils.EnvOrDefault("DB_USER", "root")
	pass := utils.EnvOrDefault("DB_PASS", "")
	host := utils.EnvOrDefault("DB_HOST", "127.0.0.1")
	port := utils.EnvOrDefault("DB_PORT", "3306")
	dbName := utils.EnvOrDefault("DB_NAME", "guesthouse_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase inserts the baseline records an empty install needs: a default
// admin, the room types the allocator ranks, a few rooms, and the charge
// catalog including the "Extra Person" entry the overflow surcharge is priced
// from.
func SeedDatabase() {
	// ---------------- Admins ----------------
	var adminCount int64
	DB.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(utils.EnvOrDefault("ADMIN_DEFAULT_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Admin User",
				Username: "admin@guesthouse.local",
				Password: string(hash),
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	// ---------------- RoomTypes ----------------
	var rtCount int64
	DB.Model(&models.RoomType{}).Count(&rtCount)
	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{TypeName: "Couple", Description: "Double bed for two", MaxGuests: 2},
			{TypeName: "Quad", Description: "Four single beds", MaxGuests: 4},
			{TypeName: "Family", Description: "Family suite", MaxGuests: 6},
			{TypeName: "Dormitory", Description: "Shared dormitory", MaxGuests: 8},
		}
		DB.Create(&roomTypes)
		log.Println("RoomTypes seeded")
	}

	// ---------------- Rooms ----------------
	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		var types []models.RoomType
		DB.Find(&types)
		typeID := map[string]*uint{}
		for i := range types {
			typeID[types[i].TypeName] = &types[i].ID
		}

		rooms := []models.Room{
			{RoomNumber: "101", Type: "Couple", Status: "Available", Floor: "1", Tariff: 1000, MaxOccupancy: 2, RoomTypeID: typeID["Couple"]},
			{RoomNumber: "102", Type: "Couple", Status: "Available", Floor: "1", Tariff: 1200, MaxOccupancy: 2, RoomTypeID: typeID["Couple"]},
			{RoomNumber: "201", Type: "Quad", Status: "Available", Floor: "2", Tariff: 1500, MaxOccupancy: 4, RoomTypeID: typeID["Quad"]},
			{RoomNumber: "301", Type: "Family", Status: "Available", Floor: "3", Tariff: 3000, MaxOccupancy: 6, RoomTypeID: typeID["Family"]},
			{RoomNumber: "401", Type: "Dormitory", Status: "Available", Floor: "4", Tariff: 2400, MaxOccupancy: 8, RoomTypeID: typeID["Dormitory"]},
		}
		if err := DB.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
		} else {
			log.Println("Rooms seeded")
		}
	}

	// ---------------- Charge catalog ----------------
	var chargeCount int64
	DB.Model(&models.ChargeCatalogItem{}).Count(&chargeCount)
	if chargeCount == 0 {
		items := []models.ChargeCatalogItem{
			{Name: "Extra Person", DefaultRate: 300, RateType: "per_person_night", Active: true},
			{Name: "Kitchen Use", DefaultRate: 500, RateType: "per_day", Active: true},
			{Name: "Conference Hall", DefaultRate: 2000, RateType: "per_day", Active: true},
			{Name: "Laundry", DefaultRate: 150, RateType: "per_unit", Active: true},
		}
		if err := DB.Create(&items).Error; err != nil {
			log.Fatalf("Failed to seed charge catalog: %v", err)
		}
		log.Println("Charge catalog seeded")
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.Admin{},
		&models.RoomType{},
		&models.Customer{},
		&models.Room{},
		&models.ChargeCatalogItem{},
		&models.Reservation{},
		&models.ReservationRoom{},
		&models.ReservationGuest{},
		&models.ReservationCharge{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
