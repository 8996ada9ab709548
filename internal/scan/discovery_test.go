package scan

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFindByExtensionExactSuffix(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.yaml"))
	writeFile(t, filepath.Join(root, "b.yml"))
	writeFile(t, filepath.Join(root, "c.txt"))

	got := FindByExtension(root, "yaml")
	if len(got) != 1 || filepath.Base(got[0]) != "a.yaml" {
		t.Errorf("expected exactly a.yaml, got %v", got)
	}
}

func TestFindByExtensionRecursesWithoutPruning(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "top.sh"))
	writeFile(t, filepath.Join(root, "node_modules", "dep.sh"))
	writeFile(t, filepath.Join(root, "sub", "deep", "nested.sh"))

	got := FindByExtension(root, "sh")
	names := make([]string, len(got))
	for i, p := range got {
		names[i] = filepath.Base(p)
	}
	sort.Strings(names)
	want := []string{"dep.sh", "nested.sh", "top.sh"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, names)
			break
		}
	}
}

func TestFindByNameExactMatch(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "requirements.txt"))
	writeFile(t, filepath.Join(root, "sub", "requirements.txt"))
	writeFile(t, filepath.Join(root, "requirements-dev.txt"))

	got := FindByName(root, "requirements.txt")
	if len(got) != 2 {
		t.Errorf("expected 2 matches, got %v", got)
	}
}

func TestFindEmptyTreeYieldsEmpty(t *testing.T) {
	got := FindByExtension(t.TempDir(), "yaml")
	if len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}

func TestFindMissingRootYieldsEmpty(t *testing.T) {
	got := FindByName(filepath.Join(t.TempDir(), "does-not-exist"), "pom.xml")
	if len(got) != 0 {
		t.Errorf("expected no matches for missing root, got %v", got)
	}
}
