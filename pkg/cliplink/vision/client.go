package vision

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"

	"github.com/himanishpuri/ClipLink/pkg/logger"
	"github.com/himanishpuri/ClipLink/pkg/models"
)

const (
	maxLabelResults  = 10
	labelCallTimeout = 60 * time.Second
)

// Client wraps the Cloud Vision annotator. One Label call is one
// network round trip covering labels, logos and OCR text together.
type Client struct {
	annotator *vision.ImageAnnotatorClient
	log       *logger.Logger
}

// ClientOptionsFromEnv builds credential options from
// GOOGLE_APPLICATION_CREDENTIALS_JSON (inline JSON) or
// GOOGLE_APPLICATION_CREDENTIALS (file path). Empty means application
// default credentials.
func ClientOptionsFromEnv() []option.ClientOption {
	creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	opts := []option.ClientOption{}
	if creds == "" {
		return opts
	}
	if strings.HasPrefix(creds, "{") {
		opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
	} else {
		opts = append(opts, option.WithCredentialsFile(creds))
	}
	return opts
}

func NewClient(ctx context.Context, log *logger.Logger) (*Client, error) {
	if log == nil {
		log = logger.GetLogger()
	}

	annotator, err := vision.NewImageAnnotatorClient(ctx, ClientOptionsFromEnv()...)
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}

	return &Client{annotator: annotator, log: log}, nil
}

func (c *Client) Available() bool {
	return c != nil && c.annotator != nil
}

func (c *Client) Close() error {
	if c == nil || c.annotator == nil {
		return nil
	}
	return c.annotator.Close()
}

// Label annotates one frame. Returned slices are empty, never nil, and
// confidences are clamped to [0,1].
func (c *Client) Label(ctx context.Context, frame models.Frame) (*models.LabelSet, error) {
	if !c.Available() {
		return nil, &models.VisionError{Err: fmt.Errorf("vision client not configured")}
	}

	ctx, cancel := context.WithTimeout(ctx, labelCallTimeout)
	defer cancel()

	img := maybeDownscale(frame.Data)

	req := &visionpb.AnnotateImageRequest{
		Image: &visionpb.Image{Content: img},
		Features: []*visionpb.Feature{
			{Type: visionpb.Feature_LABEL_DETECTION, MaxResults: maxLabelResults},
			{Type: visionpb.Feature_LOGO_DETECTION},
			{Type: visionpb.Feature_TEXT_DETECTION},
		},
	}

	resp, err := c.annotator.BatchAnnotateImages(ctx, &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{req},
	})
	if err != nil {
		return nil, &models.VisionError{Err: err}
	}
	if resp == nil || len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return emptyLabelSet(), nil
	}

	r0 := resp.Responses[0]
	if r0.Error != nil && r0.Error.Message != "" {
		return nil, &models.VisionError{Err: fmt.Errorf("annotate error: %s", r0.Error.Message)}
	}

	set := emptyLabelSet()

	for _, a := range r0.LabelAnnotations {
		if a == nil || a.Description == "" {
			continue
		}
		set.Labels = append(set.Labels, models.Label{
			Text:       a.Description,
			Confidence: clamp01(float64(a.Score)),
		})
	}

	for _, a := range r0.LogoAnnotations {
		if a == nil || a.Description == "" {
			continue
		}
		set.Logos = append(set.Logos, models.Logo{
			Text:       a.Description,
			Confidence: clamp01(float64(a.Score)),
		})
	}

	// The first text annotation carries the full OCR text; split it
	// into lines so brand detection can scan them individually.
	if len(r0.TextAnnotations) > 0 && r0.TextAnnotations[0] != nil {
		for _, line := range strings.Split(r0.TextAnnotations[0].Description, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				set.Texts = append(set.Texts, line)
			}
		}
	}

	c.log.Debugf("Frame %d: %d labels, %d logos, %d text lines",
		frame.Index, len(set.Labels), len(set.Logos), len(set.Texts))
	return set, nil
}

func emptyLabelSet() *models.LabelSet {
	return &models.LabelSet{
		Labels: []models.Label{},
		Logos:  []models.Logo{},
		Texts:  []string{},
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
