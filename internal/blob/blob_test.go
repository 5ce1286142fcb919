package blob

import (
	"context"
	"testing"
)

func TestObjectKey(t *testing.T) {
	cases := []struct {
		prefix, name, want string
	}{
		{"", "features.csv", "features.csv"},
		{"nhl", "features.csv", "nhl/features.csv"},
		{"/nhl/2023/", "features.csv", "nhl/2023/features.csv"},
	}
	for _, c := range cases {
		if got := ObjectKey(c.prefix, c.name); got != c.want {
			t.Errorf("ObjectKey(%q, %q) = %q, want %q", c.prefix, c.name, got, c.want)
		}
	}
}

func TestNormaliseEndpoint(t *testing.T) {
	cases := map[string]string{
		"http://localhost:9000":   "http://localhost:9000",
		"https://r2.example.com":  "https://r2.example.com",
		"minio.internal:9000":     "https://minio.internal:9000",
		"s3.eu-west-1.wasabi.com": "https://s3.eu-west-1.wasabi.com",
	}
	for in, want := range cases {
		if got := normaliseEndpoint(in); got != want {
			t.Errorf("normaliseEndpoint(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewRequiresBucketAndRegion(t *testing.T) {
	if _, err := New(context.Background(), Config{Region: "us-east-1"}); err == nil {
		t.Error("expected error without bucket")
	}
	if _, err := New(context.Background(), Config{Bucket: "b"}); err == nil {
		t.Error("expected error without region")
	}
}

func TestLocation(t *testing.T) {
	u, err := New(context.Background(), Config{
		Bucket: "features", Region: "us-east-1",
		AccessKey: "k", SecretKey: "s", Endpoint: "localhost:9000", ForcePathStyle: true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := u.Location("nhl/features.csv"); got != "s3://features/nhl/features.csv" {
		t.Errorf("Location = %q", got)
	}
}
