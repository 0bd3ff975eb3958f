package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/pft-wallet-cli/internal/config"
	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/bnema/pft-wallet-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	profileFileMode = 0o600
	profileDirMode  = 0o700
	tempFilePattern = ".profile-*.toml.tmp"
)

// ProfileRepository persists the last signed-in profile so later commands
// can restore the session without signing in again.
type ProfileRepository struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ProfileRepository = (*ProfileRepository)(nil)

func NewProfileRepository(cfg *viper.Viper) (*ProfileRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if cfg.GetString(config.KeyProfilePath) == "" {
		if err := config.Apply(cfg); err != nil {
			return nil, err
		}
	}

	path := cfg.GetString(config.KeyProfilePath)
	if path == "" {
		return nil, errors.New("profile path is empty")
	}
	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &ProfileRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *ProfileRepository) Path() string {
	return r.path
}

func (r *ProfileRepository) Load(ctx context.Context) (domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return domain.Profile{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Profile{}, err
	}
	if file.Profile == nil || file.Profile.Address == "" {
		return domain.Profile{}, domain.ErrProfileNotFound
	}

	return fromSchema(*file.Profile), nil
}

func (r *ProfileRepository) Save(ctx context.Context, profile domain.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if profile.Address.IsZero() {
		return errors.New("profile address is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	encoded := toSchema(profile)
	file.Profile = &encoded

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

// Clear removes the stored profile. Clearing a missing profile is a no-op.
func (r *ProfileRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove profile file: %w", err)
	}

	return nil
}

func (r *ProfileRepository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read profile file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode profile file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *ProfileRepository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.path), profileDirMode); err != nil {
		return fmt.Errorf("create profile directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode profile file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp profile file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp profile file: %w", err)
	}
	if err := tempFile.Chmod(profileFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp profile file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp profile file: %w", err)
	}
	if err := os.Rename(tempName, r.path); err != nil {
		return fmt.Errorf("replace profile file: %w", err)
	}
	cleanup = false

	if err := os.Chmod(r.path, profileFileMode); err != nil {
		return fmt.Errorf("chmod profile file: %w", err)
	}

	return nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve profile path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(profile domain.Profile) profileSchema {
	return profileSchema{
		Address:   string(profile.Address),
		Username:  profile.Username,
		UpdatedAt: formatTime(profile.UpdatedAt),
	}
}

func fromSchema(profile profileSchema) domain.Profile {
	return domain.Profile{
		Address:   domain.Address(profile.Address),
		Username:  profile.Username,
		UpdatedAt: parseTime(profile.UpdatedAt),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
