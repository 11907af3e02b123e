package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"vscreens/internal/auth"
	"vscreens/internal/config"
	"vscreens/internal/db"
	apperrors "vscreens/internal/errors"
	"vscreens/internal/logging"
	"vscreens/internal/repository"
	"vscreens/internal/service"
)

const fetchTimeout = 30 * time.Second

// SeedUser is one entry of the seed file.
type SeedUser struct {
	Username string       `json:"username"`
	Password string       `json:"password"`
	Screens  []SeedScreen `json:"screens"`
}

// SeedScreen is a screen owned by a SeedUser.
type SeedScreen struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type seedStats struct {
	usersCreated   int
	usersExisting  int
	usersSkipped   int
	screensCreated int
	screensSkipped int
}

func main() {
	source := flag.String("source", "seed.json", "seed file path or http(s) URL")
	flag.Parse()

	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogLevel)
	ctx := context.Background()

	log.Info(ctx, "starting seed script", "source", *source)

	if err := cfg.Validate(); err != nil {
		fatal(ctx, log, "invalid configuration", err)
	}

	gormDB, err := db.Open(cfg)
	if err != nil {
		fatal(ctx, log, "failed to connect to database", err)
	}
	if err := db.Migrate(gormDB, false); err != nil {
		fatal(ctx, log, "failed to run migrations", err)
	}

	users, err := loadSeedData(ctx, *source)
	if err != nil {
		fatal(ctx, log, "failed to load seed data", err)
	}
	log.Info(ctx, "seed data loaded", "users", len(users))

	// Credentials are never issued here; the key only satisfies the service.
	secret, err := auth.GenerateSecret()
	if err != nil {
		fatal(ctx, log, "generate signing key", err)
	}
	authService := service.NewAuthService(repository.NewUserRepository(gormDB), auth.NewJWTService(secret, 0), log)
	screenService := service.NewScreenService(repository.NewScreenRepository(gormDB), log)

	stats, err := seedUsers(ctx, authService, screenService, log, users)
	if err != nil {
		fatal(ctx, log, "failed to seed", err)
	}

	log.Info(ctx, "seed completed",
		"users_created", stats.usersCreated,
		"users_existing", stats.usersExisting,
		"users_skipped", stats.usersSkipped,
		"screens_created", stats.screensCreated,
		"screens_skipped", stats.screensSkipped,
	)
}

// loadSeedData reads the seed document from a local file or an http(s) URL.
func loadSeedData(ctx context.Context, source string) ([]SeedUser, error) {
	var body []byte
	var err error
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		body, err = fetch(ctx, source)
	} else {
		body, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}

	var users []SeedUser
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return users, nil
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seed data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("seed source returned status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// seedUsers registers each user, or signs in as an existing one, and creates
// the screens it does not own yet. Screens are matched by name.
func seedUsers(
	ctx context.Context,
	authService service.AuthService,
	screenService service.ScreenService,
	log logging.Logger,
	users []SeedUser,
) (seedStats, error) {
	var stats seedStats
	for _, u := range users {
		userID, created, err := ensureUser(ctx, authService, u)
		if err != nil {
			if errors.Is(err, apperrors.ErrStore) {
				return stats, fmt.Errorf("user %q: %w", u.Username, err)
			}
			log.Warn(ctx, "skipping user", "username", u.Username, "error", err)
			stats.usersSkipped++
			continue
		}
		if created {
			stats.usersCreated++
		} else {
			stats.usersExisting++
		}

		existing, err := screenService.List(ctx, userID)
		if err != nil {
			return stats, fmt.Errorf("list screens of %q: %w", u.Username, err)
		}
		owned := make(map[string]bool, len(existing))
		for _, s := range existing {
			owned[s.Name] = true
		}

		for _, s := range u.Screens {
			if owned[s.Name] {
				stats.screensSkipped++
				continue
			}
			if _, err := screenService.Create(ctx, userID, s.Name, s.Content); err != nil {
				if errors.Is(err, apperrors.ErrValidation) {
					log.Warn(ctx, "skipping screen with empty name", "username", u.Username)
					stats.screensSkipped++
					continue
				}
				return stats, fmt.Errorf("create screen %q for %q: %w", s.Name, u.Username, err)
			}
			owned[s.Name] = true
			stats.screensCreated++
		}
	}
	return stats, nil
}

func ensureUser(ctx context.Context, authService service.AuthService, u SeedUser) (uint, bool, error) {
	user, err := authService.Register(ctx, u.Username, u.Password)
	if err == nil {
		return user.ID, true, nil
	}
	if !errors.Is(err, apperrors.ErrDuplicateUsername) {
		return 0, false, err
	}

	userID, err := authService.Authenticate(ctx, u.Username, u.Password)
	if err != nil {
		return 0, false, err
	}
	return userID, false, nil
}

func fatal(ctx context.Context, log logging.Logger, msg string, err error) {
	log.Error(ctx, msg, "error", err)
	os.Exit(1)
}
