package cliplink

// Config carries service construction parameters. Zero values are
// filled in by defaultConfig; injected components override the defaults
// built by NewService.
type Config struct {
	DBPath      string
	TempDir     string
	NumFrames   int
	TopN        int
	TextWeight  float64
	BrandWeight float64

	Logger      Logger
	FrameSource FrameSource
	Labeler     Labeler
	Finder      Finder
	Ranker      Ranker
	Storage     Storage
}

type Option func(*Config)

func WithDBPath(path string) Option {
	return func(c *Config) {
		c.DBPath = path
	}
}

func WithTempDir(dir string) Option {
	return func(c *Config) {
		c.TempDir = dir
	}
}

func WithNumFrames(n int) Option {
	return func(c *Config) {
		c.NumFrames = n
	}
}

func WithTopN(n int) Option {
	return func(c *Config) {
		c.TopN = n
	}
}

// WithWeights sets the text/brand score weights. They should sum to 1;
// the default ranker normalizes them if they do not.
func WithWeights(text, brand float64) Option {
	return func(c *Config) {
		c.TextWeight = text
		c.BrandWeight = brand
	}
}

func WithLogger(log Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

func WithFrameSource(fs FrameSource) Option {
	return func(c *Config) {
		c.FrameSource = fs
	}
}

func WithLabeler(l Labeler) Option {
	return func(c *Config) {
		c.Labeler = l
	}
}

func WithFinder(f Finder) Option {
	return func(c *Config) {
		c.Finder = f
	}
}

func WithRanker(r Ranker) Option {
	return func(c *Config) {
		c.Ranker = r
	}
}

func WithStorage(s Storage) Option {
	return func(c *Config) {
		c.Storage = s
	}
}

func defaultConfig() *Config {
	return &Config{
		DBPath:      "cliplink.sqlite3",
		TempDir:     "/tmp",
		NumFrames:   3,
		TopN:        5,
		TextWeight:  0.7,
		BrandWeight: 0.3,
	}
}
