package scan

import "sort"

// detectionRule ties manifest filenames or file extensions to a scan type.
type detectionRule struct {
	names []string
	exts  []string
	t     ScanType
}

var detectionRules = []detectionRule{
	{names: []string{"requirements.txt", "Pipfile", "poetry.lock", "setup.py"}, t: TypePython},
	{names: []string{"pom.xml", "build.gradle"}, exts: []string{"java"}, t: TypeJava},
	{names: []string{"package.json"}, t: TypeNodejs},
	{names: []string{"go.mod", "go.sum"}, t: TypeGolang},
	{names: []string{"Cargo.lock"}, t: TypeRust},
	{exts: []string{"tf"}, t: TypeTerraform},
	{exts: []string{"sh"}, t: TypeBash},
	{exts: []string{"kt"}, t: TypeKotlin},
	{exts: []string{"yaml", "yml"}, t: TypeYaml},
}

// DetectTypes inspects the source tree and returns every scan type that
// applies, sorted for deterministic dispatch order. Any detected project also
// gets a credential scan. An unrecognized tree yields an empty slice and the
// caller runs nothing.
func DetectTypes(src string) []ScanType {
	found := make(map[ScanType]bool)
	for _, rule := range detectionRules {
		for _, name := range rule.names {
			if len(FindByName(src, name)) > 0 {
				found[rule.t] = true
				break
			}
		}
		if found[rule.t] {
			continue
		}
		for _, ext := range rule.exts {
			if len(FindByExtension(src, ext)) > 0 {
				found[rule.t] = true
				break
			}
		}
	}
	if len(found) > 0 {
		found[TypeCredScan] = true
	}
	out := make([]ScanType, 0, len(found))
	for t := range found {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
