package main

import (
	"flag"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"drinkjoy/backend/internal/catalog"
	"drinkjoy/backend/internal/store"
)

func main() {
	var (
		dbPath     = flag.String("db", filepath.FromSlash("data/drinkjoy.db"), "Path to SQLite database")
		drinksPath = flag.String("drinks", filepath.FromSlash("assets/drinks.json"), "Path to drinks JSON file")
		replace    = flag.Bool("replace", true, "Replace the existing catalog instead of upserting")
	)
	flag.Parse()

	db, err := store.Open(*dbPath, true)
	if err != nil {
		logrus.Fatalf("open database: %v", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logrus.WithError(cerr).Warn("close database")
		}
	}()

	start := time.Now()
	drinks, err := catalog.LoadFile(*drinksPath)
	if err != nil {
		logrus.Fatalf("load drinks: %v", err)
	}
	logrus.WithFields(logrus.Fields{
		"file":   *drinksPath,
		"drinks": len(drinks),
	}).Info("drinks file loaded")

	service := catalog.NewService(db)
	if *replace {
		count, err := service.Replace(drinks)
		if err != nil {
			logrus.Fatalf("replace catalog: %v", err)
		}
		logrus.WithFields(logrus.Fields{
			"drinks":   count,
			"duration": time.Since(start).Round(time.Millisecond),
		}).Info("catalog replaced")
		return
	}

	for _, drink := range drinks {
		if err := service.Save(drink); err != nil {
			logrus.Fatalf("save drink %s: %v", drink.ID, err)
		}
	}
	logrus.WithFields(logrus.Fields{
		"drinks":   len(drinks),
		"duration": time.Since(start).Round(time.Millisecond),
	}).Info("catalog upserted")
}
