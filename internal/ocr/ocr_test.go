package ocr

import (
	"strings"
	"testing"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	statuspb "google.golang.org/genproto/googleapis/rpc/status"
)

func TestTextFromResponse(t *testing.T) {
	tests := []struct {
		name    string
		resp    *visionpb.BatchAnnotateImagesResponse
		want    string
		wantErr string
	}{
		{
			name: "full text in first annotation",
			resp: &visionpb.BatchAnnotateImagesResponse{
				Responses: []*visionpb.AnnotateImageResponse{
					{
						TextAnnotations: []*visionpb.EntityAnnotation{
							{Description: "Corner Store\nTotal $14.50"},
							{Description: "Corner"},
						},
					},
				},
			},
			want: "Corner Store\nTotal $14.50",
		},
		{
			name: "no annotations means no text",
			resp: &visionpb.BatchAnnotateImagesResponse{
				Responses: []*visionpb.AnnotateImageResponse{{}},
			},
			want: "",
		},
		{
			name: "empty batch means no text",
			resp: &visionpb.BatchAnnotateImagesResponse{},
			want: "",
		},
		{
			name: "per-image error is surfaced",
			resp: &visionpb.BatchAnnotateImagesResponse{
				Responses: []*visionpb.AnnotateImageResponse{
					{Error: &statuspb.Status{Message: "image too large"}},
				},
			},
			wantErr: "image too large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := textFromResponse(tt.resp)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want it to contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("textFromResponse: %v", err)
			}
			if got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
		})
	}
}
