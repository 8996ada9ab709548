package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestRegistryCoversAllDeclaredTypes(t *testing.T) {
	reg := NewRegistry()
	declared := []ScanType{
		TypeAnsible, TypeAWS, TypeBash, TypeBom, TypeCredScan, TypeGolang,
		TypeJava, TypeKotlin, TypeKubernetes, TypeNodejs, TypePython,
		TypeRust, TypeTerraform, TypeYaml,
	}
	for _, st := range declared {
		_, hasTemplate := reg.Template(st)
		_, hasPipeline := reg.Pipeline(st)
		if !hasTemplate && !hasPipeline {
			t.Errorf("%s is registered in neither form", st)
		}
		if hasTemplate && hasPipeline {
			t.Errorf("%s is registered in both forms", st)
		}
	}
	if got := len(reg.Types()); got != len(declared) {
		t.Errorf("expected %d registered types, got %d: %v", len(declared), got, reg.Types())
	}
}

func TestDispatchUnknownTypeIsFatal(t *testing.T) {
	err := Dispatch(context.Background(), NewRegistry(), "fortran", Options{Src: t.TempDir()})
	if err == nil {
		t.Fatal("expected configuration error for unregistered scan type")
	}
}

func TestDispatchEmptyTypeIsNoop(t *testing.T) {
	out := filepath.Join(t.TempDir(), "reports")
	err := Dispatch(context.Background(), NewRegistry(), "", Options{Src: t.TempDir(), ReportsDir: out})
	if err != nil {
		t.Fatalf("empty type should be a no-op, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Errorf("no-op dispatch should not create the reports dir")
	}
}

func TestLoadOverridesReplacesTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.yaml")
	content := "yaml:\n  - spectral\n  - lint\n  - \"filelist=yml\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write tools file: %v", err)
	}

	reg := NewRegistry()
	if err := reg.LoadOverrides(path); err != nil {
		t.Fatalf("LoadOverrides: %v", err)
	}
	tmpl, ok := reg.Template(TypeYaml)
	if !ok {
		t.Fatal("yaml template missing after override")
	}
	if tmpl[0] != "spectral" {
		t.Errorf("override not applied, got %v", tmpl)
	}
}

func TestLoadOverridesRejectsEmptyCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.yaml")
	if err := os.WriteFile(path, []byte("yaml: []\n"), 0644); err != nil {
		t.Fatalf("write tools file: %v", err)
	}
	if err := NewRegistry().LoadOverrides(path); err == nil {
		t.Error("expected error for empty command list")
	}
}

func TestLoadOverridesMissingFile(t *testing.T) {
	if err := NewRegistry().LoadOverrides(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing tools file")
	}
}
