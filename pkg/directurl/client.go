package directurl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bianoble/direct-url/internal/config"
	"github.com/bianoble/direct-url/internal/dist"
	"github.com/bianoble/direct-url/internal/engine"
	"github.com/bianoble/direct-url/internal/record"
)

// Options configures a direct-url client.
type Options struct {
	// SearchPaths are the directories holding dist-info directories. When
	// empty they come from DIRECT_URL_PATH, the config file, or the active
	// virtual environment, in that order.
	SearchPaths []string

	// ConfigPath is the project config file. Default: "direct-url.yaml".
	// A missing file is not an error.
	ConfigPath string

	// NoInherit skips the system and user config layers.
	NoInherit bool

	// Logger receives debug and warning records. Nil discards them.
	Logger *slog.Logger
}

// Client finds installed distributions and reads or writes their
// descriptors.
type Client struct {
	finder *dist.Finder
	logger *slog.Logger
}

// New creates a Client.
func New(opts Options) (*Client, error) {
	if opts.ConfigPath == "" {
		opts.ConfigPath = "direct-url.yaml"
	}

	loaded, err := config.LoadHierarchical(config.HierarchicalOptions{
		ProjectPath: opts.ConfigPath,
		NoInherit:   opts.NoInherit || config.EnvNoInherit(),
	})
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	paths := opts.SearchPaths
	if len(paths) == 0 {
		paths = config.ResolveSearchPaths(loaded.Config)
	}

	return &Client{
		finder: &dist.Finder{Paths: paths},
		logger: opts.Logger,
	}, nil
}

// SearchPaths returns the directories the client searches, in order.
func (c *Client) SearchPaths() []string {
	return c.finder.Paths
}

// Find returns the installed distribution named name.
func (c *Client) Find(name string) (*PathDistribution, error) {
	return c.finder.Find(name)
}

// Read parses the descriptor of the named distribution. The bool is false
// when the distribution has none.
func (c *Client) Read(name string) (Record, bool, error) {
	d, err := c.finder.Find(name)
	if err != nil {
		return nil, false, err
	}
	return dist.Read(d)
}

// Write replaces the descriptor of the named distribution with rec.
func (c *Client) Write(ctx context.Context, name string, rec Record, dryRun bool) (*WriteResult, error) {
	d, err := c.finder.Find(name)
	if err != nil {
		return nil, err
	}
	eng := &engine.WriteEngine{Logger: c.logger}
	return eng.Write(ctx, d, rec, engine.WriteOptions{DryRun: dryRun})
}

// IsEditable reports whether the named distribution is an editable
// directory install.
func (c *Client) IsEditable(ctx context.Context, name string) (bool, error) {
	s, err := c.Show(ctx, name)
	if err != nil {
		return false, err
	}
	return s.Kind == record.KindDirectory && s.Editable, nil
}

// Show summarizes the descriptor of the named distribution.
func (c *Client) Show(ctx context.Context, name string) (*Summary, error) {
	d, err := c.finder.Find(name)
	if err != nil {
		return nil, err
	}
	eng := &engine.ShowEngine{Logger: c.logger}
	return eng.Show(ctx, d)
}

// List summarizes every distribution on the search paths.
func (c *Client) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	eng := &engine.ListEngine{Finder: c.finder, Logger: c.logger}
	return eng.List(ctx, opts)
}
