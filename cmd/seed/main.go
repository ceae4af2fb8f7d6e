package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"arogya-backend/internal/auth"
	"arogya-backend/internal/catalog"
	"arogya-backend/internal/config"
	"arogya-backend/internal/db"
	"arogya-backend/internal/directory"
	"arogya-backend/internal/ledger"
	"arogya-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seedUser struct {
	Username    string
	Email       string
	PasswordEnv string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal(err)
	}

	adminUsers := []seedUser{
		{
			Username:    envOrDefault("ADMIN_USER", "admin"),
			Email:       envOrDefault("ADMIN_EMAIL", ""),
			PasswordEnv: "ADMIN_PASSWORD",
		},
	}

	for _, admin := range adminUsers {
		password := os.Getenv(admin.PasswordEnv)
		if password == "" {
			log.Printf("seed admin: %s missing, skipping (%s)", admin.Username, admin.PasswordEnv)
			continue
		}
		if err := seedAdminUser(ctx, cols, admin.Username, admin.Email, password, cfg.Timezone); err != nil {
			log.Fatalf("seed admin error for %s: %v", admin.Username, err)
		}
	}

	if os.Getenv("SEED_DEMO_BOOKINGS") == "true" {
		if err := seedDemoBookings(ctx, cols, cfg.Timezone); err != nil {
			log.Fatalf("seed demo bookings: %v", err)
		}
	}

	log.Println("seed completed")
}

func seedAdminUser(ctx context.Context, cols *db.Collections, username, email, password string, loc *time.Location) error {
	if cols == nil || cols.Users == nil {
		return nil
	}
	if username == "" || password == "" {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	filter := bson.M{"username": username}
	update := adminUserUpdate(username, email, hash, time.Now().In(loc))
	_, err = cols.Users.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// adminUserUpdate builds the upsert document. A field may appear in $set or
// $setOnInsert but not both; $set already applies on insert, so email lives
// only there.
func adminUserUpdate(username, email, hash string, now time.Time) bson.M {
	set := bson.M{
		"passwordHash": hash,
		"role":         models.UserRoleAdmin,
		"updatedAt":    now,
	}
	if email != "" {
		set["email"] = email
	}
	return bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID().Hex(),
			"username":  username,
			"createdAt": now,
		},
	}
}

// seedDemoBookings pre-fills a few slots in one area so rankings and
// availability have something to chew on. Already-taken slots are skipped.
func seedDemoBookings(ctx context.Context, cols *db.Collections, loc *time.Location) error {
	demo := catalog.Location{
		Country:  "India",
		State:    "Maharashtra",
		District: "Mumbai City",
		Area:     "Dadar",
	}
	doctors := directory.Generate(demo)
	if len(doctors) == 0 {
		return nil
	}

	led := ledger.NewMongo(cols.Bookings)
	date := time.Now().In(loc).AddDate(0, 0, 1).Format("2006-01-02")
	slots := []string{"9:00 AM", "10:00 AM", "2:00 PM"}

	for i, slot := range slots {
		doctor := doctors[i%len(doctors)]
		_, err := led.Reserve(ctx, doctor.ID, date, slot, "")
		if err != nil && !errors.Is(err, ledger.ErrSlotTaken) {
			return err
		}
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
