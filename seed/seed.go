// Package seed loads the demo catalog, accounts and history.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vonvha/Nutri-Smart/models"
	"github.com/vonvha/Nutri-Smart/services"
	"github.com/vonvha/Nutri-Smart/utils"
)

//go:embed data.yaml
var defaultData []byte

type Food struct {
	Name     string  `yaml:"name"`
	Calories int     `yaml:"calories"`
	Protein  float64 `yaml:"protein"`
	Carbs    float64 `yaml:"carbs"`
	Fat      float64 `yaml:"fat"`
	Detail   string  `yaml:"detail"`
}

type Record struct {
	DaysAgo  int    `yaml:"daysAgo"`
	Calories int    `yaml:"calories"`
	Status   string `yaml:"status"`
}

type Notification struct {
	Type        string `yaml:"type"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	MinutesAgo  int    `yaml:"minutesAgo"`
	Read        bool   `yaml:"read"`
}

type User struct {
	Email         string                 `yaml:"email"`
	Name          string                 `yaml:"name"`
	Password      string                 `yaml:"password"`
	Profile       *services.ProfileInput `yaml:"profile"`
	Records       []Record               `yaml:"records"`
	Notifications []Notification         `yaml:"notifications"`
}

type Data struct {
	Foods []Food `yaml:"foods"`
	Users []User `yaml:"users"`
}

// Parse decodes seed data in the embedded YAML layout.
func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, pkgerrors.Wrap(err, "parse seed data")
	}
	return &d, nil
}

// Default returns the embedded seed data.
func Default() (*Data, error) {
	return Parse(defaultData)
}

type Seeder struct {
	db  *gorm.DB
	log zerolog.Logger
	now func() time.Time
}

func NewSeeder(db *gorm.DB, log zerolog.Logger) *Seeder {
	return &Seeder{db: db, log: log, now: time.Now}
}

// Reset empties every table the seeder writes to.
func (s *Seeder) Reset(ctx context.Context) error {
	tables := []any{
		&models.Notification{}, &models.Appointment{}, &models.UserDevice{},
		&models.Ingestion{}, &models.DailyRecord{}, &models.FoodItem{},
		&models.Profile{}, &models.User{},
	}
	for _, t := range tables {
		if err := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(t).Error; err != nil {
			return pkgerrors.Wrapf(err, "reset %T", t)
		}
	}
	return nil
}

// Run loads d. Rows that already exist are left untouched, so running it
// twice changes nothing.
func (s *Seeder) Run(ctx context.Context, d *Data) error {
	catalog := services.NewCatalogService(s.db)
	profiles := services.NewProfileService(s.db, nil)
	auth := services.NewAuthService(s.db, services.FakeTokens{})

	created := 0
	for _, f := range d.Foods {
		cal, p, c, fat := f.Calories, f.Protein, f.Carbs, f.Fat
		_, isNew, err := catalog.ResolveOrCreate(ctx, f.Name, services.NutritionEstimate{
			Detail:   f.Detail,
			Calories: &cal,
			Protein:  &p,
			Carbs:    &c,
			Fat:      &fat,
		})
		if err != nil {
			return pkgerrors.Wrapf(err, "seed food %q", f.Name)
		}
		if isNew {
			created++
		}
	}
	s.log.Info().Int("foods", len(d.Foods)).Int("created", created).Msg("catalog seeded")

	for _, u := range d.Users {
		if err := s.seedUser(ctx, auth, profiles, u); err != nil {
			return pkgerrors.Wrapf(err, "seed user %s", u.Email)
		}
	}
	return nil
}

func (s *Seeder) seedUser(ctx context.Context, auth *services.AuthService, profiles *services.ProfileService, u User) error {
	_, err := auth.Register(ctx, services.RegisterRequest{Email: u.Email, Name: u.Name, Password: u.Password})
	if errors.Is(err, services.ErrEmailTaken) {
		s.log.Info().Str("user", u.Email).Msg("user exists, skipping")
		return nil
	}
	if err != nil {
		return err
	}

	targets := utils.DefaultTargets()
	if u.Profile != nil {
		t, err := profiles.SaveProfile(ctx, u.Email, *u.Profile)
		if err != nil {
			return err
		}
		targets = *t
	}

	now := s.now()
	for _, r := range u.Records {
		status := r.Status
		if status == "" {
			status = models.DailyStatusInProgress
		}
		rec := models.DailyRecord{
			UserEmail:        u.Email,
			Date:             utils.ISODate(now.AddDate(0, 0, -r.DaysAgo)),
			CaloriesConsumed: r.Calories,
			CaloriesTarget:   targets.Calories,
			Status:           status,
		}
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rec).Error
		if err != nil {
			return err
		}
	}

	for _, n := range u.Notifications {
		row := models.Notification{
			UserEmail:   u.Email,
			Type:        n.Type,
			Title:       n.Title,
			Description: n.Description,
			IsRead:      n.Read,
			CreatedAt:   now.Add(-time.Duration(n.MinutesAgo) * time.Minute),
		}
		if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
			return err
		}
	}

	s.log.Info().Str("user", u.Email).Int("target", targets.Calories).Msg("user seeded")
	return nil
}
