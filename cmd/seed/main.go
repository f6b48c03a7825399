// README: Seeds a demo transit network, fleet, and admin account.
package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"cabway/internal/auth"
	"cabway/internal/config"
	"cabway/internal/infra"
	"cabway/internal/modules/fleet"
	"cabway/internal/modules/transit"
	"cabway/internal/modules/user"
)

type routeDef struct {
	from, to    string
	durationMin int
}

type cabDef struct {
	name           string
	pricePerMinute float64
	cabType        fleet.CabType
}

var (
	locationNames = []string{"Downtown", "Harbor", "Midtown", "University", "Stadium", "Airport"}

	routeDefs = []routeDef{
		{"Downtown", "Harbor", 5},
		{"Downtown", "Midtown", 7},
		{"Harbor", "Midtown", 4},
		{"Harbor", "University", 12},
		{"Midtown", "University", 9},
		{"Midtown", "Stadium", 11},
		{"University", "Stadium", 6},
		{"University", "Airport", 16},
		{"Stadium", "Airport", 10},
	}

	cabDefs = []cabDef{
		{"City Runner", 1.0, fleet.CabTypeUberX},
		{"Harbor Comfort", 1.5, fleet.CabTypeXL},
		{"Midtown Express", 2.0, fleet.CabTypeBlack},
		{"Campus Cruiser", 2.5, fleet.CabTypeBlackSUV},
		{"Skyline Premier", 3.0, fleet.CabTypePremium},
	}
)

func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load config")
	}

	ctx := context.Background()
	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.WithError(err).Fatal("connect postgres")
	}
	defer dbPool.Close()

	transitSvc := transit.NewService(transit.NewPostgresStore(dbPool), nil, nil)
	fleetSvc := fleet.NewService(fleet.NewPostgresStore(dbPool), nil)
	userSvc := user.NewService(user.NewPostgresStore(dbPool), auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL))

	locations := map[string]transit.Location{}
	for _, name := range locationNames {
		l, err := transitSvc.CreateLocation(ctx, name)
		if err != nil {
			log.WithError(err).WithField("location", name).Fatal("seed location")
		}
		locations[name] = l
		log.WithField("location", name).Info("created location")
	}

	for _, r := range routeDefs {
		if _, err := transitSvc.CreateRoute(ctx, locations[r.from].ID, locations[r.to].ID, r.durationMin); err != nil {
			log.WithError(err).WithFields(logrus.Fields{"from": r.from, "to": r.to}).Fatal("seed route")
		}
	}
	log.WithField("count", len(routeDefs)).Info("created routes")

	for _, c := range cabDefs {
		if _, err := fleetSvc.Create(ctx, c.name, c.pricePerMinute, c.cabType, ""); err != nil {
			log.WithError(err).WithField("cab", c.name).Fatal("seed cab")
		}
	}
	log.WithField("count", len(cabDefs)).Info("created cabs")

	adminPassword := os.Getenv("CABWAY_SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin-change-me"
	}
	if _, err := userSvc.Signup(ctx, "Admin", "admin@cabway.local", adminPassword, user.RoleAdmin); err != nil {
		log.WithError(err).Fatal("seed admin account")
	}
	log.Info("created admin account admin@cabway.local")
}
