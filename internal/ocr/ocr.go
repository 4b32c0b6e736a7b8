// Package ocr wraps the external text-detection service behind a small
// interface so the receipt pipeline can be tested without network calls.
package ocr

import (
	"context"
	"fmt"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// TextExtractor converts raw image bytes to a text blob. An image containing
// no detectable text returns "" with a nil error.
type TextExtractor interface {
	DetectText(ctx context.Context, image []byte) (string, error)
}

// VisionExtractor implements TextExtractor with the Cloud Vision API.
type VisionExtractor struct {
	client *vision.ImageAnnotatorClient
}

// NewVisionExtractor creates a Vision-backed extractor with a shared client.
func NewVisionExtractor(ctx context.Context, opts ...option.ClientOption) (*VisionExtractor, error) {
	client, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewVisionExtractor: creating vision client: %w", err)
	}
	return &VisionExtractor{client: client}, nil
}

// Close releases the underlying client connection.
func (e *VisionExtractor) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// DetectText runs TEXT_DETECTION over the image and returns the first
// annotation's description, which Vision populates with the full detected
// text.
func (e *VisionExtractor) DetectText(ctx context.Context, image []byte) (string, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image:    &visionpb.Image{Content: image},
				Features: []*visionpb.Feature{{Type: visionpb.Feature_TEXT_DETECTION}},
			},
		},
	}

	resp, err := e.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("DetectText: %w", err)
	}
	return textFromResponse(resp)
}

// textFromResponse pulls the detected text out of a batch response. An image
// with no detectable text yields "" with a nil error; a per-image annotation
// error is surfaced as an error.
func textFromResponse(resp *visionpb.BatchAnnotateImagesResponse) (string, error) {
	responses := resp.GetResponses()
	if len(responses) == 0 {
		return "", nil
	}

	r := responses[0]
	if s := r.GetError(); s != nil {
		return "", fmt.Errorf("DetectText: annotation failed: %s", s.GetMessage())
	}

	annotations := r.GetTextAnnotations()
	if len(annotations) == 0 {
		return "", nil
	}
	return annotations[0].GetDescription(), nil
}
