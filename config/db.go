package config

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"tourism-pricing-backend/models"

	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

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

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode())
	return dsn, nil
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

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "tourism_pricing")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	)
	return dsn, nil
}

func mustJSON(v interface{}) datatypes.JSON {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Fatalf("Error encoding seed data: %v", err)
	}
	return datatypes.JSON(raw)
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

// SeedDatabase inserts a small demo catalog and discount registry when the
// tables are empty, so the booking wizard has something to quote against.
func SeedDatabase() {
	// ---------------- Resources ----------------
	var resourceCount int64
	DB.Model(&models.Resource{}).Count(&resourceCount)
	if resourceCount == 0 {
		groupMin := 10
		resources := []models.Resource{
			{
				Name:         "Musée des Beaux-Arts",
				ResourceType: "CulturalSite",
				City:         "Lyon",
				Currency:     "EUR",
				BasePrices: mustJSON(map[models.GuestCategory]float64{
					models.GuestAdult:  12,
					models.GuestChild:  6,
					models.GuestSenior: 9,
					models.GuestInfant: 0,
				}),
				Rules: mustJSON([]models.PricingRule{
					{
						Type: models.RuleGroup,
						Conditions: &models.RuleConditions{
							MinGuests: &groupMin,
						},
						Pricing: models.RulePricing{Type: models.PricingPercentage, Value: -10},
					},
				}),
				Taxes: mustJSON([]models.Tax{
					{Name: "TVA", Rate: 20, Inclusive: true},
				}),
				Fees: mustJSON([]models.Fee{
					{ID: "booking", Name: "Booking fee", Amount: 2, Type: "service", Mandatory: true},
				}),
			},
			{
				Name:         "Guided Old Town Tour",
				ResourceType: "Activity",
				City:         "Annecy",
				Currency:     "EUR",
				BasePrices: mustJSON(map[models.GuestCategory]float64{
					models.GuestAdult: 25,
					models.GuestChild: 12,
				}),
				Rules: mustJSON([]models.PricingRule{
					{
						Type: models.RuleSeasonal,
						Conditions: &models.RuleConditions{
							DaysOfWeek: []int{0, 6}, // weekends
						},
						Pricing: models.RulePricing{Type: models.PricingPercentage, Value: 20},
					},
				}),
				Taxes: mustJSON([]models.Tax{
					{Name: "TVA", Rate: 20, Inclusive: false},
				}),
				TimeSlots: mustJSON([]models.TimeSlot{
					{ID: "morning", StartTime: "09:00", EndTime: "11:00", Capacity: 20, Available: 20, PriceModifier: 1},
					{ID: "afternoon", StartTime: "14:00", EndTime: "16:00", Capacity: 20, Available: 20, PriceModifier: 1},
					{ID: "sunset", StartTime: "19:00", EndTime: "21:00", Capacity: 12, Available: 12, PriceModifier: 1.25},
				}),
				CancellationPolicy: mustJSON(models.CancellationPolicy{
					Rules: []models.CancellationRule{
						{HoursBeforeStart: 48, RefundPercentage: 100, Fee: 0},
						{HoursBeforeStart: 24, RefundPercentage: 50, Fee: 5},
					},
				}),
			},
		}
		if err := DB.Create(&resources).Error; err != nil {
			log.Printf("warning: failed to seed resources: %v", err)
		} else {
			log.Println("Resources seeded")
		}
	}

	// ---------------- Discount codes ----------------
	var discountCount int64
	DB.Model(&models.DiscountCode{}).Count(&discountCount)
	if discountCount == 0 {
		codes := []models.DiscountCode{
			{
				Code:   "WELCOME10",
				Type:   models.DiscountPercentage,
				Value:  10,
				Active: true,
			},
			{
				Code:  "SUMMER25",
				Type:  models.DiscountFixed,
				Value: 25,
				Conditions: mustJSON(models.DiscountConditions{
					MinAmount: floatPtr(100),
				}),
				Active: true,
			},
			{
				Code:  "GROUP15",
				Type:  models.DiscountPercentage,
				Value: 15,
				Conditions: mustJSON(models.DiscountConditions{
					MaxAmount:  floatPtr(50),
					UsageLimit: intPtr(500),
				}),
				Active: true,
			},
		}
		if err := DB.Create(&codes).Error; err != nil {
			log.Printf("warning: failed to seed discount codes: %v", err)
		} else {
			log.Println("Discount codes seeded")
		}
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

	if err := DB.AutoMigrate(
		&models.Resource{},
		&models.DiscountCode{},
		&models.BookingQuote{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
