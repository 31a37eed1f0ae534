package storage

import (
	"strings"
	"testing"
)

func TestObjectKey(t *testing.T) {
	key, err := ObjectKey("Greek Yogurt 0%", "IMG_001.JPG")
	if err != nil {
		t.Fatalf("key: %v", err)
	}
	if !strings.HasPrefix(key, "foods/greek-yogurt-0-") || !strings.HasSuffix(key, ".jpg") {
		t.Fatalf("key = %q", key)
	}

	if _, err := ObjectKey("Rice", "notes.txt"); err == nil {
		t.Fatalf("text file accepted")
	}

	key, _ = ObjectKey("  ", "a.png")
	if !strings.HasPrefix(key, "foods/food-") {
		t.Fatalf("empty name key = %q", key)
	}
}

func TestPublicURL(t *testing.T) {
	m := &MinIO{bucket: "foods", publicBase: "http://127.0.0.1:9000"}
	if got := m.PublicURL("foods/rice-ab12cd34.png"); got != "http://127.0.0.1:9000/foods/foods/rice-ab12cd34.png" {
		t.Fatalf("url = %q", got)
	}
	if got := m.PublicURL(""); got != "" {
		t.Fatalf("empty key url = %q", got)
	}
}
