package cliplink

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/himanishpuri/ClipLink/pkg/cliplink/brand"
	"github.com/himanishpuri/ClipLink/pkg/cliplink/rank"
	"github.com/himanishpuri/ClipLink/pkg/cliplink/search"
	"github.com/himanishpuri/ClipLink/pkg/cliplink/storage"
	"github.com/himanishpuri/ClipLink/pkg/cliplink/video"
	"github.com/himanishpuri/ClipLink/pkg/cliplink/vision"
	"github.com/himanishpuri/ClipLink/pkg/logger"
	"github.com/himanishpuri/ClipLink/pkg/models"
	"github.com/himanishpuri/ClipLink/pkg/utils"
)

// Candidates fetched from the finder before ranking trims to top-N.
const findLimit = 10

type service struct {
	cfg      *Config
	log      Logger
	frames   FrameSource
	labeler  Labeler
	finder   Finder
	ranker   Ranker
	store    Storage
	caps     models.Capabilities
	closeOne sync.Once
	closeErr error
}

// NewService wires the full pipeline. Components not supplied through
// options are built from their defaults; the vision labeler and
// embedding ranker degrade gracefully when their credentials are
// absent.
func NewService(opts ...Option) (Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	log := cfg.Logger
	if log == nil {
		log = logger.GetLogger()
	}

	s := &service{cfg: cfg, log: log}

	if cfg.Storage != nil {
		s.store = cfg.Storage
	} else {
		store, err := storage.NewDBClientWithPath(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening catalog: %w", err)
		}
		s.store = store
	}
	s.caps.Catalog = true

	if cfg.FrameSource != nil {
		s.frames = cfg.FrameSource
	} else {
		baseLog, _ := log.(*logger.Logger)
		s.frames = video.NewExtractor(cfg.TempDir, baseLog)
	}

	if cfg.Labeler != nil {
		s.labeler = cfg.Labeler
		s.caps.Vision = cfg.Labeler.Available()
	} else {
		baseLog, _ := log.(*logger.Logger)
		client, err := vision.NewClient(context.Background(), baseLog)
		if err != nil {
			log.Warnf("Vision labeling disabled: %v", err)
		} else {
			s.labeler = client
			s.caps.Vision = true
		}
	}

	if cfg.Finder != nil {
		s.finder = cfg.Finder
		s.caps.Search = true
	} else {
		baseLog, _ := log.(*logger.Logger)
		var backends []search.Backend
		cse := search.NewGoogleCSE(baseLog)
		if cse.Available() {
			backends = append(backends, cse)
			s.caps.Search = true
		} else {
			log.Warnf("Google CSE not configured, skipping web search backend")
		}
		backends = append(backends, search.NewAmazon(baseLog))
		backends = append(backends, search.NewCatalogBackend(s.store))
		s.finder = search.NewChainFinder(baseLog, backends...)
	}

	if cfg.Ranker != nil {
		s.ranker = cfg.Ranker
	} else {
		baseLog, _ := log.(*logger.Logger)
		embedder := rank.NewOpenAIEmbedder()
		s.caps.Embeddings = embedder.Available()
		if !embedder.Available() {
			log.Warnf("OpenAI not configured, ranking will use lexical similarity")
		}
		s.ranker = rank.NewWeightedRanker(embedder, cfg.TextWeight, cfg.BrandWeight, cfg.TopN, baseLog)
	}

	return s, nil
}

func (s *service) Capabilities() models.Capabilities {
	return s.caps
}

func (s *service) AnalyzeClip(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	if err := utils.ValidateVideoURL(req.URL); err != nil {
		return nil, &models.InputError{Msg: err.Error()}
	}

	numFrames := req.NumFrames
	if numFrames <= 0 {
		numFrames = s.cfg.NumFrames
	}

	frames, err := s.frames.ExtractFrames(ctx, req.URL, numFrames)
	if err != nil {
		return nil, err
	}
	s.log.Infof("Extracted %d frames from %s", len(frames), req.URL)

	merged, labeled, err := s.labelFrames(ctx, frames)
	if err != nil {
		return nil, err
	}

	brandID := brand.Detect(merged)
	if brandID != "" {
		s.log.Infof("Detected brand: %s", brandID)
	}

	query := search.BuildQuery(brandID, merged.Labels, req.Note)
	s.log.Infof("Search query: %q", query)

	candidates, err := s.finder.Find(ctx, query, brandID, findLimit)
	if err != nil {
		return nil, err
	}

	ranked := s.ranker.Rank(ctx, candidates, query, brandID, s.cfg.TopN)

	return &AnalyzeResult{
		Products:        ranked,
		Labels:          merged.Labels,
		Brand:           brandID,
		Query:           query,
		FramesExtracted: len(frames),
		FramesLabeled:   labeled,
	}, nil
}

// labelFrames annotates every frame concurrently. Individual frame
// failures are tolerated; the call fails only when no frame at all
// could be labeled.
func (s *service) labelFrames(ctx context.Context, frames []models.Frame) (*models.LabelSet, int, error) {
	if s.labeler == nil || !s.labeler.Available() {
		return nil, 0, &models.VisionError{Err: fmt.Errorf("vision labeling is not configured")}
	}

	sets := make([]*models.LabelSet, len(frames))
	g, gctx := errgroup.WithContext(ctx)

	for i, frame := range frames {
		g.Go(func() error {
			set, err := s.labeler.Label(gctx, frame)
			if err != nil {
				s.log.Warnf("Labeling frame %d (%.1fs) failed: %v", frame.Index, frame.OffsetSec, err)
				return nil
			}
			sets[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	labeled := 0
	for _, set := range sets {
		if set != nil {
			labeled++
		}
	}
	if labeled == 0 {
		if ctx.Err() != nil {
			return nil, 0, ctx.Err()
		}
		return nil, 0, &models.VisionError{Err: fmt.Errorf("all %d frames failed to label", len(frames))}
	}

	return vision.Merge(sets), labeled, nil
}

func (s *service) SearchProducts(ctx context.Context, query string, topK int) ([]models.RankedResult, error) {
	if query == "" {
		return nil, &models.InputError{Msg: "query must not be empty"}
	}

	limit := findLimit
	if topK > limit {
		limit = topK
	}

	candidates, err := s.finder.Find(ctx, query, "", limit)
	if err != nil {
		return nil, err
	}

	n := topK
	if n <= 0 {
		n = s.cfg.TopN
	}
	return s.ranker.Rank(ctx, candidates, query, "", n), nil
}

func (s *service) Close() error {
	s.closeOne.Do(func() {
		if s.labeler != nil {
			if err := s.labeler.Close(); err != nil {
				s.closeErr = err
			}
		}
		if s.store != nil {
			if err := s.store.Close(); err != nil && s.closeErr == nil {
				s.closeErr = err
			}
		}
	})
	return s.closeErr
}
