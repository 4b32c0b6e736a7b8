package imagefetch

import "testing"

func TestSplitGCSURI(t *testing.T) {
	tests := []struct {
		uri        string
		wantBucket string
		wantObject string
		wantErr    bool
	}{
		{"gs://receipts/2024/r3.jpg", "receipts", "2024/r3.jpg", false},
		{"gs://bucket/file.png", "bucket", "file.png", false},
		{"gs://bucket", "", "", true},
		{"gs://bucket/", "", "", true},
		{"https://example.com/a.jpg", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			bucket, object, err := splitGCSURI(tt.uri)
			if (err != nil) != tt.wantErr {
				t.Fatalf("splitGCSURI(%q) error = %v, wantErr %v", tt.uri, err, tt.wantErr)
			}
			if bucket != tt.wantBucket || object != tt.wantObject {
				t.Errorf("splitGCSURI(%q) = %q, %q; want %q, %q", tt.uri, bucket, object, tt.wantBucket, tt.wantObject)
			}
		})
	}
}
