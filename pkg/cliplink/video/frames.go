package video

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/himanishpuri/ClipLink/pkg/logger"
	"github.com/himanishpuri/ClipLink/pkg/models"
	"github.com/himanishpuri/ClipLink/pkg/utils"
)

// Fraction of the video trimmed from each end before sampling, to skip
// intros and outros.
const edgeTrimFraction = 0.10

// Extractor downloads a video and samples still frames from it. All
// files live in a per-request directory that is removed on every exit
// path.
type Extractor struct {
	tempDir    string
	downloader *Downloader
	log        *logger.Logger
}

func NewExtractor(tempDir string, log *logger.Logger) *Extractor {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Extractor{
		tempDir:    tempDir,
		downloader: NewDownloader(log),
		log:        log,
	}
}

// ExtractFrames downloads videoURL and samples count frames, skipping
// the first and last 10% of the duration and spacing the rest evenly.
func (x *Extractor) ExtractFrames(ctx context.Context, videoURL string, count int) ([]models.Frame, error) {
	if count < 1 {
		count = 1
	}

	workDir := filepath.Join(x.tempDir, "cliplink_"+uuid.NewString())
	if err := utils.MakeDir(workDir); err != nil {
		return nil, &models.ExtractionError{Path: workDir, Err: err}
	}
	defer utils.DeleteDir(workDir)

	videoPath, err := x.downloader.Download(ctx, videoURL, workDir)
	if err != nil {
		return nil, err
	}

	duration, err := probeDuration(ctx, videoPath)
	if err != nil {
		return nil, &models.ExtractionError{Path: videoPath, Err: err}
	}
	if duration <= 0 {
		return nil, &models.ExtractionError{Path: videoPath, Err: fmt.Errorf("video has zero duration")}
	}

	offsets := frameOffsets(duration, count)

	frames := make([]models.Frame, 0, count)
	for i, offset := range offsets {
		framePath := filepath.Join(workDir, fmt.Sprintf("frame_%04d.jpg", i))
		if err := extractFrameAt(ctx, videoPath, offset, framePath); err != nil {
			if ctx.Err() != nil {
				return nil, &models.ExtractionError{Path: videoPath, Err: ctx.Err()}
			}
			x.log.Warnf("Failed to extract frame at %.2fs: %v", offset, err)
			continue
		}
		data, err := os.ReadFile(framePath)
		if err != nil || len(data) == 0 {
			x.log.Warnf("Frame at %.2fs is empty or unreadable", offset)
			continue
		}
		frames = append(frames, models.Frame{Data: data, OffsetSec: offset, Index: len(frames)})
	}

	// Some containers seek poorly; fall back to a single decode pass
	// that dumps one frame per second and keep the first count of them.
	if len(frames) == 0 {
		frames, err = x.extractSequential(ctx, videoPath, workDir, count)
		if err != nil {
			return nil, err
		}
	}

	if len(frames) == 0 {
		return nil, &models.ExtractionError{Path: videoPath, Err: fmt.Errorf("no frames could be decoded")}
	}

	x.log.Infof("Extracted %d/%d frames from %s", len(frames), count, videoURL)
	return frames, nil
}

func (x *Extractor) extractSequential(ctx context.Context, videoPath, workDir string, count int) ([]models.Frame, error) {
	seqDir := filepath.Join(workDir, "seq")
	if err := utils.MakeDir(seqDir); err != nil {
		return nil, &models.ExtractionError{Path: videoPath, Err: err}
	}

	cmd := exec.CommandContext(
		ctx,
		"ffmpeg",
		"-y",
		"-v", "quiet",
		"-i", videoPath,
		"-vf", "fps=1",
		"-q:v", "2",
		filepath.Join(seqDir, "frame_%04d.jpg"),
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return nil, &models.ExtractionError{Path: videoPath, Err: ctx.Err()}
		}
		return nil, &models.ExtractionError{Path: videoPath, Err: fmt.Errorf("ffmpeg sequential pass: %v (%s)", err, out)}
	}

	entries, err := os.ReadDir(seqDir)
	if err != nil {
		return nil, &models.ExtractionError{Path: videoPath, Err: err}
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".jpg") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	frames := make([]models.Frame, 0, count)
	for i, name := range names {
		if len(frames) >= count {
			break
		}
		data, err := os.ReadFile(filepath.Join(seqDir, name))
		if err != nil || len(data) == 0 {
			continue
		}
		frames = append(frames, models.Frame{Data: data, OffsetSec: float64(i), Index: len(frames)})
	}
	return frames, nil
}

// frameOffsets returns count timestamps inside (10%, 90%) of duration,
// evenly spaced. A single frame lands on the midpoint.
func frameOffsets(duration float64, count int) []float64 {
	start := duration * edgeTrimFraction
	usable := duration * (1 - 2*edgeTrimFraction)

	if count == 1 {
		return []float64{start + usable/2}
	}

	offsets := make([]float64, count)
	interval := usable / float64(count-1)
	for i := range offsets {
		offsets[i] = start + float64(i)*interval
	}
	return offsets
}

func extractFrameAt(ctx context.Context, videoPath string, offset float64, outPath string) error {
	cmd := exec.CommandContext(
		ctx,
		"ffmpeg",
		"-y",
		"-v", "quiet",
		"-ss", strconv.FormatFloat(offset, 'f', 3, 64),
		"-i", videoPath,
		"-frames:v", "1",
		"-q:v", "2",
		outPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg: %v (%s)", err, out)
	}
	return nil
}

type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func probeDuration(ctx context.Context, path string) (float64, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
	}

	cmd := exec.CommandContext(
		ctx,
		"ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return 0, fmt.Errorf("parsing ffprobe output: %w", err)
	}

	duration, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing duration %q: %w", probe.Format.Duration, err)
	}
	return duration, nil
}
