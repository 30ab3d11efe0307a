package store

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/bento/pkg/plan"
	"tableflip.dev/bento/pkg/task"
)

// StateKey is the fixed key of the persisted state blob. A change to the blob
// format needs a new key.
const StateKey = "bento-state-v2"

const (
	layoutISO = "2006-01-02"
	tempDir   = ".tmp"
)

// ErrCorrupt is returned when the stored blob cannot be decoded.
var ErrCorrupt = errors.New("store: persisted state is malformed")

// State is everything bento persists between runs.
type State struct {
	CurrentPlan         *plan.Plan `json:"currentPlan"`
	LifetimeCompletions int        `json:"lifetimeCompletions"`
}

// Persistence defines the persistence contract for the planner state.
type Persistence interface {
	// Load returns the stored state, or an empty state when nothing is stored.
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, s *State) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		TempDir:           filepath.Join(basePath, tempDir),
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// No cache: other processes rewrite the blob underneath us.
		CacheSizeMax: 0,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string

	mu   sync.Mutex
	last *[sha256.Size]byte
}

func (p *persistence) Load(ctx context.Context) (*State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !p.d.Has(StateKey) {
		return &State{}, nil
	}
	val, err := p.d.Read(StateKey)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &State{}, nil
		}
		return nil, fmt.Errorf("store: read %s: %w", StateKey, err)
	}
	return decodeState(val)
}

func (p *persistence) Save(ctx context.Context, s *State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil {
		return errors.New("store: nil state")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("store: encode state: %w", err)
	}
	p.remember(data)
	if err := p.d.Write(StateKey, data); err != nil {
		return fmt.Errorf("store: write %s: %w", StateKey, err)
	}
	return nil
}

func decodeState(val []byte) (*State, error) {
	s := &State{}
	if err := json.Unmarshal(val, s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if s.CurrentPlan != nil {
		if _, err := time.Parse(layoutISO, s.CurrentPlan.Date); err != nil {
			return nil, fmt.Errorf("%w: plan date %q", ErrCorrupt, s.CurrentPlan.Date)
		}
		if s.CurrentPlan.Tasks == nil {
			s.CurrentPlan.Tasks = []*task.Task{}
		}
		seen := make(map[string]struct{}, len(s.CurrentPlan.Tasks))
		for _, t := range s.CurrentPlan.Tasks {
			if t == nil {
				return nil, fmt.Errorf("%w: null task", ErrCorrupt)
			}
			if _, dup := seen[t.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate task id %s", ErrCorrupt, t.ID)
			}
			seen[t.ID] = struct{}{}
		}
	}
	return s, nil
}

// keyToPathTransform keeps every key flat in the base directory.
func keyToPathTransform(s string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: s,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
