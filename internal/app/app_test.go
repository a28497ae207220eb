package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bprna/internal/output"
	"bprna/pkg/api"
)

const helix = "../../core/stfile/testdata/helix.st"

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errb bytes.Buffer
	code = RunContext(context.Background(), args, &out, &errb)
	return code, out.String(), errb.String()
}

func write(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func TestSummary(t *testing.T) {
	code, out, errs := run(t, "summary", helix)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errs)
	}
	for _, want := range []string{"name: bpRNA_toy_helix\n", "stem: 3\n", "evaluated: 4\n", "failed: 2\n", "total_energy: -14.42\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestEnergySortedText(t *testing.T) {
	code, out, errs := run(t, "energy", "--sort", "-t", "3", helix)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errs)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if lines[0] != output.EnergyTSVHeader {
		t.Fatalf("header = %q", lines[0])
	}
	var labels []string
	for _, l := range lines[1:] {
		labels = append(labels, strings.SplitN(l, "\t", 2)[0])
	}
	if strings.Join(labels, ",") != "S1,S2,S3,B1,H1,I1" {
		t.Fatalf("row order = %v", labels)
	}
	if !strings.Contains(errs, "energy undefined") || !strings.Contains(errs, "label=H1") {
		t.Fatalf("undefined energies should be logged at warn:\n%s", errs)
	}
}

func TestEnergyLenientJSON(t *testing.T) {
	code, out, errs := run(t, "energy", "--lenient", "-o", "json", "-q", helix)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errs)
	}
	var rows []api.EnergyV1
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("bad json: %v\n%s", err, out)
	}
	if len(rows) != 6 {
		t.Fatalf("rows = %d", len(rows))
	}
	for _, r := range rows {
		if r.Energy == nil || r.Error != "" {
			t.Fatalf("lenient row %s failed: %q", r.Label, r.Error)
		}
	}
	if errs != "" {
		t.Fatalf("quiet run logged: %s", errs)
	}
}

func TestEnergyNoHeaderFromFlag(t *testing.T) {
	_, out, _ := run(t, "energy", "--no-header", "-q", helix)
	if strings.Contains(out, output.EnergyTSVHeader) {
		t.Fatalf("header printed with --no-header:\n%s", out)
	}
}

func TestEnergyParamsFile(t *testing.T) {
	p := write(t, "p.yaml", "name: custom\ninherit: default\nstack:\n  \"GC:CG\": -10\n")
	code, out, errs := run(t, "summary", "--params", p, helix)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errs)
	}
	if !strings.Contains(out, "params: custom\n") {
		t.Fatalf("custom params not used:\n%s", out)
	}
}

func TestEnergyNothingToEvaluate(t *testing.T) {
	fn := write(t, "flat.st", "#Name: flat\n#Length: 4\nACGU\n....\nEEEE\nNNNN\nE1 1..4 \"ACGU\"\n")
	code, _, errs := run(t, "energy", fn)
	if code != ExitNoResult {
		t.Fatalf("exit %d, want %d; stderr: %s", code, ExitNoResult, errs)
	}
}

func TestComponentsKindFilter(t *testing.T) {
	code, out, errs := run(t, "components", "--kind", "bulge", "--no-header", helix)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errs)
	}
	if out != "B1\tbulge\t6..6\tA\tS1,S2\t\n" {
		t.Fatalf("out = %q", out)
	}
	code, _, errs = run(t, "components", "--kind", "widget", helix)
	if code != ExitUsage || !strings.Contains(errs, "unknown component kind") {
		t.Fatalf("exit %d stderr %q", code, errs)
	}
}

func TestNeighborsAndShow(t *testing.T) {
	code, out, _ := run(t, "neighbors", "--no-header", helix, "I1")
	if code != 0 || out != "I1\touter\tS2\tS2\nI1\tinner\tS3\tS3\n" {
		t.Fatalf("neighbors exit %d out %q", code, out)
	}
	code, out, _ = run(t, "show", helix, "H1")
	if code != 0 || !strings.HasPrefix(out, "Hairpin: H1  hairpin  15..26\n") {
		t.Fatalf("show exit %d out:\n%s", code, out)
	}
	code, out, _ = run(t, "show", "-o", "jsonl", helix, "H1")
	var v api.ComponentV1
	if code != 0 || json.Unmarshal([]byte(out), &v) != nil || v.Label != "H1" || v.Closing[0].Pair != "CG" {
		t.Fatalf("show jsonl exit %d out %q", code, out)
	}
}

func TestExportMsgpack(t *testing.T) {
	code, out, errs := run(t, "export", "-o", "msgpack", helix)
	if code != 0 || len(out) == 0 {
		t.Fatalf("exit %d, %d bytes, stderr: %s", code, len(out), errs)
	}
}

func TestUsageErrors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"missing file arg", []string{"energy"}, "accepts 1 arg"},
		{"unknown flag", []string{"energy", "--frobnicate", helix}, "unknown flag"},
		{"unknown command", []string{"fold", helix}, "unknown command"},
		{"bad output", []string{"energy", "-o", "xml", helix}, `output "xml"`},
		{"wrong extension", []string{"summary", "x.txt"}, "not a structure-type"},
		{"missing file", []string{"summary", "nope.st"}, "cannot access"},
		{"unknown label", []string{"neighbors", helix, "S9"}, "not found"},
		{"no neighbors", []string{"neighbors", helix, "NCBP1"}, "no neighbor data"},
		{"bad params", []string{"summary", "--params", "nope.yaml", helix}, "params"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			code, _, errs := run(t, c.args...)
			if code != ExitUsage {
				t.Fatalf("exit %d, want %d; stderr: %s", code, ExitUsage, errs)
			}
			if !strings.Contains(errs, c.want) {
				t.Fatalf("stderr %q does not mention %q", errs, c.want)
			}
		})
	}
}

func TestMalformedFileIsInputError(t *testing.T) {
	fn := write(t, "bad.st", "#Name: t\n#Length: 4\nACGU\n....\nEEEE\nNNNN\nE1 1..x \"ACGU\"\n")
	code, _, errs := run(t, "components", fn)
	if code != ExitUsage || !strings.Contains(errs, "line 7") {
		t.Fatalf("exit %d stderr %q", code, errs)
	}
}

func TestVersionAndHelp(t *testing.T) {
	code, out, _ := run(t, "--version")
	if code != 0 || !strings.HasPrefix(out, "bprna version ") {
		t.Fatalf("version exit %d out %q", code, out)
	}
	code, out, _ = run(t)
	if code != 0 || !strings.Contains(out, "energy") || !strings.Contains(out, "Usage:") {
		t.Fatalf("help exit %d out %q", code, out)
	}
}

func TestConfigFileAndEnv(t *testing.T) {
	cfg := write(t, "bprna.yaml", "output: jsonl\nlenient: true\n")
	t.Setenv("BPRNA_QUIET", "true")
	code, out, errs := run(t, "--config", cfg, "energy", helix)
	if code != 0 {
		t.Fatalf("exit %d stderr %s", code, errs)
	}
	if n := strings.Count(out, "\n"); n != 6 || strings.Contains(out, `"error"`) {
		t.Fatalf("config file not applied:\n%s", out)
	}
	if errs != "" {
		t.Fatalf("BPRNA_QUIET not applied: %s", errs)
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errb bytes.Buffer
	if code := RunContext(ctx, []string{"energy", helix}, &out, &errb); code != ExitCanceled {
		t.Fatalf("exit %d, want %d", code, ExitCanceled)
	}
}
